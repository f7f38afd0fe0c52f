package drive

import (
	"bytes"
	"context"
	"contact-book/database"
	"contact-book/models"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
)

const (
	contactsFileName = "contacts.json"
	photosFolderName = "photos"
)

// Snapshot is the document written to contacts.json
type Snapshot struct {
	ExportedAt    time.Time        `json:"exported_at"`
	SchemaVersion int              `json:"schema_version"`
	Contacts      []models.Contact `json:"contacts"`
}

// Service uploads contact backups into the contact-book Drive folder
type Service struct {
	client  *Client
	files   *FileManager
	folders *FolderManager
}

func NewService(ctx context.Context, creds Credentials) (*Service, error) {
	client, err := NewClient(ctx, creds)
	if err != nil {
		return nil, err
	}

	return &Service{
		client:  client,
		files:   NewFileManager(client),
		folders: NewFolderManager(client),
	}, nil
}

// encodeSnapshot renders contacts as an indented contacts.json document
func encodeSnapshot(contacts []models.Contact, exportedAt time.Time) ([]byte, error) {
	if contacts == nil {
		contacts = []models.Contact{}
	}

	return json.MarshalIndent(Snapshot{
		ExportedAt:    exportedAt.UTC(),
		SchemaVersion: database.SchemaVersion,
		Contacts:      contacts,
	}, "", "  ")
}

// BackupContacts replaces contacts.json with the given contacts
func (s *Service) BackupContacts(contacts []models.Contact) error {
	rootFolderID, err := s.folders.GetRootFolder()
	if err != nil {
		return fmt.Errorf("failed to get root folder: %w", err)
	}

	data, err := encodeSnapshot(contacts, time.Now())
	if err != nil {
		return err
	}

	if err := s.files.Upsert(contactsFileName, rootFolderID, "application/json", bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to upload %s: %w", contactsFileName, err)
	}

	return nil
}

// BackupPhoto uploads a local photo file under its base name
func (s *Service) BackupPhoto(path string) error {
	rootFolderID, err := s.folders.GetRootFolder()
	if err != nil {
		return fmt.Errorf("failed to get root folder: %w", err)
	}

	photosFolderID, err := s.folders.GetOrCreate(photosFolderName, rootFolderID)
	if err != nil {
		return fmt.Errorf("failed to get photos folder: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return s.files.Upsert(filepath.Base(path), photosFolderID, "image/jpeg", f)
}

// GetCurrentToken returns the current OAuth token
func (s *Service) GetCurrentToken() (*oauth2.Token, error) {
	return s.client.GetCurrentToken()
}
