package app

import (
	"contact-book/services"
	"contact-book/storage"
	"contact-book/validator"
	"log/slog"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Contacts  *services.ContactService
	Photos    *storage.LocalPhotos
	Backup    services.BackupWorker // nil when Drive backup is not configured
	Validator *validator.Validator
	Logger    *slog.Logger
}

// New creates a new App instance with all dependencies
func New(contacts *services.ContactService, photos *storage.LocalPhotos, backup services.BackupWorker, logger *slog.Logger) *App {
	return &App{
		Contacts:  contacts,
		Photos:    photos,
		Backup:    backup,
		Validator: validator.New(),
		Logger:    logger,
	}
}
