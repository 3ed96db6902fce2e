package models

import "time"

type NotifyChannel string

const (
	ChannelEmail    NotifyChannel = "email"
	ChannelWhatsApp NotifyChannel = "whatsapp"
)

const (
	OutboxPending = "pending"
	OutboxSent    = "sent"
	OutboxFailed  = "failed"
)

// NotificationOutbox is a notification intent enqueued inside the
// order transaction and dispatched best-effort after commit, so a crash
// between commit and send leaves a recoverable row instead of a lost
// notification.
type NotificationOutbox struct {
	ID        string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Channel   NotifyChannel `json:"channel" gorm:"type:varchar(10);not null"`
	Recipient string        `json:"recipient" gorm:"not null"`
	OrderKind OrderKind     `json:"order_kind" gorm:"type:varchar(10);not null"`
	OrderRef  string        `json:"order_ref" gorm:"not null"`
	// Event names the lifecycle moment, e.g. "quotation_created",
	// "booking_created", "status_paid", "status_dispatched".
	Event     string    `json:"event" gorm:"not null"`
	PDFPath   string    `json:"pdf_path"`
	Status    string    `json:"status" gorm:"default:'pending'"`
	Attempts  int       `json:"attempts"`
	LastError string    `json:"last_error"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
