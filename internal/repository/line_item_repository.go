package repository

import (
	"fwc_backend/internal/models"

	"gorm.io/gorm"
)

type LineItemRepository interface {
	// Replace swaps out the full item set for an order in one go; items
	// are immutable individually.
	Replace(kind models.OrderKind, orderRef string, items []models.LineItem) error
	GetForOrder(kind models.OrderKind, orderRef string) ([]models.LineItem, error)
	DeleteForOrder(kind models.OrderKind, orderRef string) error
}

type lineItemRepository struct {
	db *gorm.DB
}

func NewLineItemRepository(db *gorm.DB) LineItemRepository {
	return &lineItemRepository{db: db}
}

func (r *lineItemRepository) Replace(kind models.OrderKind, orderRef string, items []models.LineItem) error {
	if err := r.DeleteForOrder(kind, orderRef); err != nil {
		return err
	}
	for i := range items {
		items[i].ID = 0
		items[i].OrderKind = kind
		items[i].OrderRef = orderRef
		items[i].Position = i
	}
	return r.db.Create(&items).Error
}

func (r *lineItemRepository) GetForOrder(kind models.OrderKind, orderRef string) ([]models.LineItem, error) {
	var items []models.LineItem
	err := r.db.
		Where("order_kind = ? AND order_ref = ?", kind, orderRef).
		Order("position ASC").
		Find(&items).Error
	return items, err
}

func (r *lineItemRepository) DeleteForOrder(kind models.OrderKind, orderRef string) error {
	return r.db.Where("order_kind = ? AND order_ref = ?", kind, orderRef).Delete(&models.LineItem{}).Error
}
