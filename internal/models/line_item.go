package models

import "time"

// ProductTypeCustom marks a freeform line item that is trusted as
// given instead of being resolved against the catalog.
const ProductTypeCustom = "custom"

// LineItem is one product entry within an order. The full set is
// replaced wholesale whenever an order's items are updated.
type LineItem struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	OrderKind OrderKind `json:"-" gorm:"type:varchar(10);index:idx_line_items_order,priority:1;not null"`
	OrderRef  string    `json:"-" gorm:"index:idx_line_items_order,priority:2;not null"`
	Position  int       `json:"-" gorm:"not null"`

	ProductID   uint    `json:"id"`
	ProductType string  `json:"product_type" gorm:"not null"`
	ProductName string  `json:"productname" gorm:"not null"`
	Price       float64 `json:"price" gorm:"not null"`
	Discount    float64 `json:"discount"`
	Quantity    int     `json:"quantity" gorm:"not null"`
	Per         string  `json:"per"`

	CreatedAt time.Time `json:"-"`
}
