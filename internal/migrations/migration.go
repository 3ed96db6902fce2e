package migrations

import (
	"context"
	"errors"

	"fwc_backend/internal/models"
	"fwc_backend/internal/repository"
	"fwc_backend/internal/services"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Run migrates the schema and seeds the admin login.
func Run(db *gorm.DB, adminUsername, adminPassword string, log zerolog.Logger) error {
	log.Info().Msg("running database migrations")

	err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.CatalogEntry{},
		&models.Quotation{},
		&models.Booking{},
		&models.LineItem{},
		&models.TransportDetail{},
		&models.NotificationOutbox{},
	)
	if err != nil {
		return err
	}

	return seedAdmin(db, adminUsername, adminPassword, log)
}

func seedAdmin(db *gorm.DB, username, password string, log zerolog.Logger) error {
	if username == "" || password == "" {
		return nil
	}

	userService := services.NewUserService(repository.NewUserRepository(db))
	if _, err := userService.CreateUser(context.Background(), username, password, "admin"); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil
		}
		log.Warn().Err(err).Msg("failed to seed admin user")
		return nil
	}
	log.Info().Str("username", username).Msg("admin user created")
	return nil
}
