package repository

import (
	"fwc_backend/internal/models"

	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *models.Customer) error
	GetByID(id uint) (*models.Customer, error)
	Update(customer *models.Customer) error
	Delete(id uint) error
	List(customerType string) ([]models.Customer, error)
	Agents() ([]models.Customer, error)
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepository) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.First(&customer, id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

func (r *customerRepository) Delete(id uint) error {
	return r.db.Delete(&models.Customer{}, id).Error
}

func (r *customerRepository) List(customerType string) ([]models.Customer, error) {
	query := r.db.Model(&models.Customer{})
	if customerType != "" {
		query = query.Where("customer_type = ?", customerType)
	}

	var customers []models.Customer
	err := query.Find(&customers).Error
	return customers, err
}

func (r *customerRepository) Agents() ([]models.Customer, error) {
	var agents []models.Customer
	err := r.db.Where("customer_type = ?", string(models.TypeAgent)).Find(&agents).Error
	return agents, err
}
