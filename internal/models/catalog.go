package models

import (
	"time"

	"gorm.io/gorm"
)

// CatalogEntry is one product row. All categories share this table;
// the (category, id) index replaces the original one-table-per-category
// layout.
type CatalogEntry struct {
	ID           uint           `json:"id" gorm:"primaryKey;index:idx_catalog_category_id,priority:2"`
	Category     string         `json:"product_type" gorm:"index:idx_catalog_category_id,priority:1;not null"`
	SerialNumber string         `json:"serial_number"`
	ProductName  string         `json:"productname" gorm:"not null"`
	Price        float64        `json:"price" gorm:"not null"`
	Discount     float64        `json:"discount"`
	Per          string         `json:"per"`
	Status       string         `json:"status" gorm:"default:'on'"` // on, off
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}
