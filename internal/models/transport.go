package models

import "time"

// PaymentMethodBank requires a transaction id and a positive amount
// paid before a booking may move to paid.
const PaymentMethodBank = "bank"

// TransportDetail is one dispatch record for a booking. Rows are
// append-only; redispatching adds a new row instead of overwriting.
type TransportDetail struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	OrderID          string    `json:"order_id" gorm:"index;not null"`
	TransportName    string    `json:"transport_name" gorm:"not null"`
	LRNumber         string    `json:"lr_number" gorm:"column:lr_number;not null"`
	TransportContact string    `json:"transport_contact"`
	CreatedAt        time.Time `json:"created_at"`
}
