package services

import (
	"context"
	"errors"
	"fmt"

	"fwc_backend/internal/models"
	"fwc_backend/internal/repository"

	"gorm.io/gorm"
)

type PartyService interface {
	// Resolve looks up a customer and freezes it into a PartySnapshot.
	// overrideType, when non-empty, replaces the stored customer type.
	Resolve(ctx context.Context, customerID uint, overrideType string) (models.PartySnapshot, error)
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomer(ctx context.Context, id uint) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id uint, customer *models.Customer) error
	DeleteCustomer(ctx context.Context, id uint) error
	ListCustomers(ctx context.Context, customerType string) ([]models.Customer, error)
	ListAgents(ctx context.Context) ([]models.Customer, error)
}

type partyService struct {
	repo repository.CustomerRepository
}

func NewPartyService(repo repository.CustomerRepository) PartyService {
	return &partyService{repo: repo}
}

func (s *partyService) Resolve(ctx context.Context, customerID uint, overrideType string) (models.PartySnapshot, error) {
	customer, err := s.repo.GetByID(customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PartySnapshot{}, fmt.Errorf("%w: customer %d", models.ErrNotFound, customerID)
		}
		return models.PartySnapshot{}, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}

	customerType := customer.CustomerType
	if overrideType != "" {
		customerType = overrideType
	}
	if customerType == "" {
		customerType = string(models.TypeUser)
	}

	snapshot := models.PartySnapshot{
		CustomerID:   &customer.ID,
		CustomerName: customer.CustomerName,
		Address:      customer.Address,
		MobileNumber: customer.MobileNumber,
		Email:        customer.Email,
		District:     customer.District,
		State:        customer.State,
		CustomerType: customerType,
	}

	if customerType == string(models.TypeCustomerAgent) && customer.AgentID != nil {
		agent, err := s.repo.GetByID(*customer.AgentID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return models.PartySnapshot{}, fmt.Errorf("%w: %v", models.ErrPersistence, err)
			}
			// Dangling agent reference: keep the snapshot without a name.
		} else {
			snapshot.AgentName = agent.CustomerName
		}
	}
	return snapshot, nil
}

func (s *partyService) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	if customer.CustomerName == "" {
		return fmt.Errorf("%w: customer name is required", models.ErrValidation)
	}
	if customer.CustomerType == "" {
		customer.CustomerType = string(models.TypeCustomer)
	}
	if customer.CustomerType == string(models.TypeCustomerAgent) && customer.AgentID == nil {
		return fmt.Errorf("%w: agent_id is required for customer type %q", models.ErrValidation, models.TypeCustomerAgent)
	}
	if err := s.repo.Create(customer); err != nil {
		return fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return nil
}

func (s *partyService) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	customer, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer %d", models.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return customer, nil
}

func (s *partyService) UpdateCustomer(ctx context.Context, id uint, customer *models.Customer) error {
	existing, err := s.GetCustomer(ctx, id)
	if err != nil {
		return err
	}
	customer.ID = existing.ID
	customer.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(customer); err != nil {
		return fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return nil
}

func (s *partyService) DeleteCustomer(ctx context.Context, id uint) error {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return nil
}

func (s *partyService) ListCustomers(ctx context.Context, customerType string) ([]models.Customer, error) {
	customers, err := s.repo.List(customerType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return customers, nil
}

func (s *partyService) ListAgents(ctx context.Context) ([]models.Customer, error) {
	agents, err := s.repo.Agents()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return agents, nil
}
