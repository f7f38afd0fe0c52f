package services

import (
	"context"
	"contact-book/database"
	"contact-book/models"
	"contact-book/sync"
	"io"
)

// ContactRepository defines the interface for contact data access
type ContactRepository interface {
	InsertContact(ctx context.Context, contact *models.Contact) (int64, error)
	UpdateContact(ctx context.Context, contact *models.Contact) error
	DeleteContact(ctx context.Context, contact *models.Contact) error
	GetContact(ctx context.Context, id int64) (*models.Contact, error)
	GetAllContacts(ctx context.Context) ([]models.Contact, error)
	GetFavoriteContacts(ctx context.Context) ([]models.Contact, error)
	GetNonFavoriteContacts(ctx context.Context) ([]models.Contact, error)
	Subscribe(ctx context.Context, q database.Query) (*database.Subscription, error)
}

// PhotoStore copies picked photos into app-private storage.
// Interface for testability - production uses storage.LocalPhotos
type PhotoStore interface {
	Import(contactName string, src io.Reader) string
	DefaultImage() string
}

// BackupWorker defines the interface for off-device backup
type BackupWorker interface {
	BackupNow()
	Status() sync.Status
}
