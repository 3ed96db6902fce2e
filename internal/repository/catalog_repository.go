package repository

import (
	"fwc_backend/internal/models"

	"gorm.io/gorm"
)

type CatalogRepository interface {
	Create(entry *models.CatalogEntry) error
	// GetByCategoryAndID is a single parameterized query against the
	// shared catalog table; no per-category table names are built.
	GetByCategoryAndID(category string, id uint) (*models.CatalogEntry, error)
	List(category string, onlyAvailable bool) ([]models.CatalogEntry, error)
	Categories() ([]string, error)
	SetStatus(id uint, status string) error
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) Create(entry *models.CatalogEntry) error {
	return r.db.Create(entry).Error
}

func (r *catalogRepository) GetByCategoryAndID(category string, id uint) (*models.CatalogEntry, error) {
	var entry models.CatalogEntry
	err := r.db.Where("category = ? AND id = ?", category, id).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *catalogRepository) List(category string, onlyAvailable bool) ([]models.CatalogEntry, error) {
	query := r.db.Model(&models.CatalogEntry{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if onlyAvailable {
		query = query.Where("status = ?", "on")
	}

	var entries []models.CatalogEntry
	err := query.Order("category, id").Find(&entries).Error
	return entries, err
}

func (r *catalogRepository) Categories() ([]string, error) {
	var categories []string
	err := r.db.Model(&models.CatalogEntry{}).Distinct("category").Order("category").Pluck("category", &categories).Error
	return categories, err
}

func (r *catalogRepository) SetStatus(id uint, status string) error {
	result := r.db.Model(&models.CatalogEntry{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
