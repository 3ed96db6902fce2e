package repository

import (
	"fwc_backend/internal/models"

	"gorm.io/gorm"
)

type OutboxRepository interface {
	Enqueue(entries []models.NotificationOutbox) error
	MarkSent(id string) error
	MarkFailed(id string, attempts int, lastError string) error
	// ListPending returns undispatched entries, oldest first, for
	// recovery after a crash between commit and dispatch.
	ListPending(limit int) ([]models.NotificationOutbox, error)
}

type outboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) Enqueue(entries []models.NotificationOutbox) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.Create(&entries).Error
}

func (r *outboxRepository) MarkSent(id string) error {
	return r.db.Model(&models.NotificationOutbox{}).Where("id = ?", id).
		Update("status", models.OutboxSent).Error
}

func (r *outboxRepository) MarkFailed(id string, attempts int, lastError string) error {
	return r.db.Model(&models.NotificationOutbox{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     models.OutboxFailed,
			"attempts":   attempts,
			"last_error": lastError,
		}).Error
}

func (r *outboxRepository) ListPending(limit int) ([]models.NotificationOutbox, error) {
	var entries []models.NotificationOutbox
	err := r.db.Where("status = ?", models.OutboxPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
