package database

import (
	"context"
	"contact-book/models"
	"database/sql"
	"fmt"
)

// ==================== CONTACT OPERATIONS ====================

// Tables migrated from older schemas may hold NULL text columns
const contactColumns = `id, COALESCE(image, ''), COALESCE(name, ''), COALESCE(phoneNumber, ''),
	COALESCE(email, ''), COALESCE(isFavorite, 0)`

// InsertContact stores a new contact. A zero ID lets SQLite assign one, which is
// written back to the contact. An ID that already exists is ignored and 0 is returned.
func (r *Repository) InsertContact(ctx context.Context, contact *models.Contact) (int64, error) {
	var (
		res sql.Result
		err error
	)

	if contact.ID == 0 {
		res, err = r.db.ExecContext(ctx, `
			INSERT INTO contacts (image, name, phoneNumber, email, isFavorite)
			VALUES (?, ?, ?, ?, ?)
		`, contact.Image, contact.Name, contact.PhoneNumber, contact.Email, boolToInt(contact.IsFavorite))
	} else {
		res, err = r.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO contacts (id, image, name, phoneNumber, email, isFavorite)
			VALUES (?, ?, ?, ?, ?, ?)
		`, contact.ID, contact.Image, contact.Name, contact.PhoneNumber, contact.Email, boolToInt(contact.IsFavorite))
	}
	if err != nil {
		return 0, fmt.Errorf("insert contact: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, nil
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	contact.ID = id

	r.live.publish(ctx, r)
	return id, nil
}

// UpdateContact overwrites every field of the row with contact.ID.
// Unknown IDs are a no-op.
func (r *Repository) UpdateContact(ctx context.Context, contact *models.Contact) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE contacts SET
			image = ?,
			name = ?,
			phoneNumber = ?,
			email = ?,
			isFavorite = ?
		WHERE id = ?
	`, contact.Image, contact.Name, contact.PhoneNumber, contact.Email, boolToInt(contact.IsFavorite), contact.ID)
	if err != nil {
		return fmt.Errorf("update contact %d: %w", contact.ID, err)
	}

	r.publishIfChanged(ctx, res)
	return nil
}

// DeleteContact removes the row with contact.ID. Unknown IDs are a no-op.
func (r *Repository) DeleteContact(ctx context.Context, contact *models.Contact) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM contacts WHERE id = ?", contact.ID)
	if err != nil {
		return fmt.Errorf("delete contact %d: %w", contact.ID, err)
	}

	r.publishIfChanged(ctx, res)
	return nil
}

func (r *Repository) GetContact(ctx context.Context, id int64) (*models.Contact, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = ?`, id)

	contact, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return contact, nil
}

// GetAllContacts returns every contact in table order
func (r *Repository) GetAllContacts(ctx context.Context) ([]models.Contact, error) {
	return r.queryContacts(ctx, `SELECT `+contactColumns+` FROM contacts`)
}

func (r *Repository) GetFavoriteContacts(ctx context.Context) ([]models.Contact, error) {
	return r.queryContacts(ctx, `SELECT `+contactColumns+` FROM contacts WHERE isFavorite = 1 ORDER BY name`)
}

func (r *Repository) GetNonFavoriteContacts(ctx context.Context) ([]models.Contact, error) {
	return r.queryContacts(ctx, `SELECT `+contactColumns+` FROM contacts WHERE isFavorite = 0 ORDER BY name`)
}

func (r *Repository) CountContacts(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contacts").Scan(&count)
	return count, err
}

func (r *Repository) queryContacts(ctx context.Context, query string, args ...interface{}) ([]models.Contact, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Initialize with empty slice to avoid returning nil
	contacts := make([]models.Contact, 0)
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *contact)
	}

	return contacts, rows.Err()
}

func (r *Repository) publishIfChanged(ctx context.Context, res sql.Result) {
	affected, err := res.RowsAffected()
	if err != nil || affected == 0 {
		return
	}
	r.live.publish(ctx, r)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContact(row rowScanner) (*models.Contact, error) {
	var contact models.Contact
	var isFavorite int
	if err := row.Scan(
		&contact.ID, &contact.Image, &contact.Name,
		&contact.PhoneNumber, &contact.Email, &isFavorite,
	); err != nil {
		return nil, err
	}
	contact.IsFavorite = isFavorite == 1
	return &contact, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
