package models

import "time"

// OrderKind discriminates between a quotation (pre-sale estimate) and a
// booking (confirmed order).
type OrderKind string

const (
	KindQuotation OrderKind = "quotation"
	KindBooking   OrderKind = "booking"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusBooked     OrderStatus = "booked"
	StatusPaid       OrderStatus = "paid"
	StatusPacked     OrderStatus = "packed"
	StatusDispatched OrderStatus = "dispatched"
	StatusDelivered  OrderStatus = "delivered"
	StatusCanceled   OrderStatus = "canceled"
)

// quotationTransitions and bookingTransitions are the only legal status
// moves. Anything absent here is rejected.
var quotationTransitions = map[OrderStatus][]OrderStatus{
	StatusPending: {StatusBooked, StatusCanceled},
}

var bookingTransitions = map[OrderStatus][]OrderStatus{
	StatusBooked:     {StatusPaid, StatusCanceled},
	StatusPaid:       {StatusPacked},
	StatusPacked:     {StatusDispatched},
	StatusDispatched: {StatusDelivered},
}

func transitionsFor(kind OrderKind) map[OrderStatus][]OrderStatus {
	if kind == KindQuotation {
		return quotationTransitions
	}
	return bookingTransitions
}

// ValidStatus reports whether s belongs to the fixed enumeration for kind.
func ValidStatus(kind OrderKind, s OrderStatus) bool {
	if kind == KindQuotation {
		return s == StatusPending || s == StatusBooked || s == StatusCanceled
	}
	switch s {
	case StatusBooked, StatusPaid, StatusPacked, StatusDispatched, StatusDelivered, StatusCanceled:
		return true
	}
	return false
}

// CanTransition reports whether from -> to is legal for kind. A no-op
// (from == to) is not a transition.
func CanTransition(kind OrderKind, from, to OrderStatus) bool {
	for _, next := range transitionsFor(kind)[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PartySnapshot carries the denormalized customer fields captured at
// order creation time, so the document stays correct even if the
// customer record later changes.
type PartySnapshot struct {
	CustomerID   *uint  `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Address      string `json:"address"`
	MobileNumber string `json:"mobile_number"`
	Email        string `json:"email"`
	District     string `json:"district"`
	State        string `json:"state"`
	CustomerType string `json:"customer_type"`
	AgentName    string `json:"agent_name,omitempty"`
}

type Quotation struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	QuotationID string `json:"quotation_id" gorm:"unique;not null"`
	PartySnapshot
	NetRate            float64     `json:"net_rate"`
	YouSave            float64     `json:"you_save"`
	PromoDiscount      float64     `json:"promo_discount"`
	AdditionalDiscount float64     `json:"additional_discount"`
	Total              float64     `json:"total" gorm:"not null"`
	Status             OrderStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	PDFPath            string      `json:"pdf" gorm:"column:pdf"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

type Booking struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	OrderID string `json:"order_id" gorm:"unique;not null"`
	// QuotationID links back to the quotation this booking was created
	// from, if any.
	QuotationID *string `json:"quotation_id"`
	PartySnapshot
	NetRate            float64     `json:"net_rate"`
	YouSave            float64     `json:"you_save"`
	PromoDiscount      float64     `json:"promo_discount"`
	AdditionalDiscount float64     `json:"additional_discount"`
	Total              float64     `json:"total" gorm:"not null"`
	Status             OrderStatus `json:"status" gorm:"type:varchar(20);default:'booked'"`
	PaymentMethod      string      `json:"payment_method"`
	TransactionID      string      `json:"transaction_id"`
	AmountPaid         float64     `json:"amount_paid"`
	PDFPath            string      `json:"pdf" gorm:"column:pdf"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}
