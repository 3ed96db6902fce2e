package services

import (
	"context"
	"errors"
	"fmt"

	"fwc_backend/internal/cache"
	"fwc_backend/internal/models"
	"fwc_backend/internal/repository"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type CatalogService interface {
	// Lookup resolves a (category, id) pair to its authoritative unit
	// attributes, or ErrNotFound.
	Lookup(ctx context.Context, category string, id uint) (*models.CatalogEntry, error)
	Categories(ctx context.Context) ([]string, error)
	List(ctx context.Context, category string, onlyAvailable bool) ([]models.CatalogEntry, error)
	AddEntry(ctx context.Context, entry *models.CatalogEntry) error
	SetAvailability(ctx context.Context, id uint, available bool) error
}

type catalogService struct {
	repo  repository.CatalogRepository
	cache *cache.Client
	log   zerolog.Logger
}

func NewCatalogService(repo repository.CatalogRepository, cacheClient *cache.Client, log zerolog.Logger) CatalogService {
	return &catalogService{repo: repo, cache: cacheClient, log: log}
}

func (s *catalogService) Lookup(ctx context.Context, category string, id uint) (*models.CatalogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: catalog lookup: %v", models.ErrPersistence, err)
	}
	entry, err := s.repo.GetByCategoryAndID(category, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d of type %s", models.ErrNotFound, id, category)
		}
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return entry, nil
}

// Categories reads through the redis cache. A cache failure degrades to
// the database; it never fails the request.
func (s *catalogService) Categories(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		cached, err := s.cache.GetCategories(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("category cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	categories, err := s.repo.Categories()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}

	if s.cache != nil {
		if err := s.cache.SetCategories(ctx, categories); err != nil {
			s.log.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return categories, nil
}

func (s *catalogService) List(ctx context.Context, category string, onlyAvailable bool) ([]models.CatalogEntry, error) {
	entries, err := s.repo.List(category, onlyAvailable)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return entries, nil
}

func (s *catalogService) AddEntry(ctx context.Context, entry *models.CatalogEntry) error {
	if entry.ProductName == "" || entry.Category == "" {
		return fmt.Errorf("%w: product name and category are required", models.ErrValidation)
	}
	if entry.Price < 0 || entry.Discount < 0 {
		return fmt.Errorf("%w: price and discount must be non-negative", models.ErrValidation)
	}
	if err := s.repo.Create(entry); err != nil {
		return fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *catalogService) SetAvailability(ctx context.Context, id uint, available bool) error {
	status := "off"
	if available {
		status = "on"
	}
	if err := s.repo.SetStatus(id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d", models.ErrNotFound, id)
		}
		return fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *catalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCategories(ctx); err != nil {
		s.log.Warn().Err(err).Msg("category cache invalidation failed")
	}
}
