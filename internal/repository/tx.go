package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repos bundles the repositories a single order transaction touches.
type Repos struct {
	Quotations QuotationRepository
	Bookings   BookingRepository
	Items      LineItemRepository
	Transport  TransportRepository
	Outbox     OutboxRepository
}

// TxManager runs a function against transaction-scoped repositories.
// An error from fn rolls the whole transaction back.
type TxManager interface {
	Do(ctx context.Context, fn func(r Repos) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) Do(ctx context.Context, fn func(r Repos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(Repos{
			Quotations: NewQuotationRepository(tx),
			Bookings:   NewBookingRepository(tx),
			Items:      NewLineItemRepository(tx),
			Transport:  NewTransportRepository(tx),
			Outbox:     NewOutboxRepository(tx),
		})
	})
}
