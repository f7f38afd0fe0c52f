package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SchemaVersion is stored in PRAGMA user_version after a successful migration.
// Version 4 added contacts.isFavorite.
const SchemaVersion = 4

type DB struct {
	*sql.DB
}

func New(dbPath string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &DB{db}, nil
}

const createContactsTable = `CREATE TABLE IF NOT EXISTS contacts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	image TEXT NOT NULL DEFAULT '',
	name TEXT NOT NULL DEFAULT '',
	phoneNumber TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	isFavorite INTEGER NOT NULL DEFAULT 0
)`

// Migrate brings the contacts table up to SchemaVersion. Tables created before
// isFavorite existed get the column added in place; only if that fails is the
// table dropped and recreated.
func (db *DB) Migrate() error {
	if _, err := db.Exec(createContactsTable); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	hasFavorite, err := db.hasColumn("contacts", "isFavorite")
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if !hasFavorite {
		if _, err := db.Exec(`ALTER TABLE contacts ADD COLUMN isFavorite INTEGER NOT NULL DEFAULT 0`); err != nil {
			slog.Warn("additive migration failed, recreating contacts table", "error", err)
			if err := db.recreateContacts(); err != nil {
				return fmt.Errorf("destructive migration failed: %w", err)
			}
		} else {
			slog.Info("added isFavorite column to contacts")
		}
	}

	queries := []string{
		`CREATE INDEX IF NOT EXISTS idx_contacts_favorite_name ON contacts(isFavorite, name)`,
		fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion),
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// Version reports PRAGMA user_version
func (db *DB) Version() (int, error) {
	var version int
	err := db.QueryRow("PRAGMA user_version").Scan(&version)
	return version, err
}

func (db *DB) hasColumn(table, column string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}

	return false, rows.Err()
}

func (db *DB) recreateContacts() error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DROP TABLE IF EXISTS contacts`); err != nil {
		return err
	}
	if _, err := tx.Exec(createContactsTable); err != nil {
		return err
	}

	return tx.Commit()
}

func (db *DB) Close() error {
	return db.DB.Close()
}
