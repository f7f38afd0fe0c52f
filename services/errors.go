package services

import "errors"

// Common service-level errors
var (
	// Contact errors
	ErrContactNotFound  = errors.New("contact not found")
	ErrInvalidContactID = errors.New("invalid contact id")

	// Backup errors
	ErrBackupDisabled = errors.New("backup is not configured")
)
