package repository

import (
	"fwc_backend/internal/models"

	"gorm.io/gorm"
)

type TransportRepository interface {
	Append(detail *models.TransportDetail) error
	ListByOrderID(orderID string) ([]models.TransportDetail, error)
	DeleteForOrder(orderID string) error
}

type transportRepository struct {
	db *gorm.DB
}

func NewTransportRepository(db *gorm.DB) TransportRepository {
	return &transportRepository{db: db}
}

func (r *transportRepository) Append(detail *models.TransportDetail) error {
	return r.db.Create(detail).Error
}

func (r *transportRepository) ListByOrderID(orderID string) ([]models.TransportDetail, error) {
	var details []models.TransportDetail
	err := r.db.Where("order_id = ?", orderID).Order("created_at ASC").Find(&details).Error
	return details, err
}

func (r *transportRepository) DeleteForOrder(orderID string) error {
	return r.db.Where("order_id = ?", orderID).Delete(&models.TransportDetail{}).Error
}
