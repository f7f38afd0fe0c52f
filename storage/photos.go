package storage

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// PhotoExt is appended to every imported photo
const PhotoExt = ".jpg"

// PhotoStore keeps contact photos in an app-private directory
type PhotoStore interface {
	// Import copies src into the store under a name derived from contactName
	// and returns the stored path, or "" if the copy failed.
	Import(contactName string, src io.Reader) string

	// DefaultImage is the bundled photo used when none was chosen
	DefaultImage() string
}

// LocalPhotos is a PhotoStore backed by a directory on the local filesystem
type LocalPhotos struct {
	dir          string
	defaultImage string
	logger       *slog.Logger
}

var _ PhotoStore = (*LocalPhotos)(nil)

// NewLocalPhotos creates dir if needed
func NewLocalPhotos(dir, defaultImage string, logger *slog.Logger) (*LocalPhotos, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create photo directory: %w", err)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &LocalPhotos{
		dir:          abs,
		defaultImage: defaultImage,
		logger:       logger,
	}, nil
}

func (p *LocalPhotos) Dir() string {
	return p.dir
}

func (p *LocalPhotos) DefaultImage() string {
	return p.defaultImage
}

// FileName derives the stored file name for a contact. Two contacts with the
// same name share a file; the later import wins.
func FileName(contactName string) string {
	name := strings.TrimSpace(contactName)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		name = "contact"
	}
	return name + PhotoExt
}

func (p *LocalPhotos) Import(contactName string, src io.Reader) string {
	path := filepath.Join(p.dir, FileName(contactName))

	if err := p.copyTo(path, src); err != nil {
		p.logger.Error("failed to import photo", "contact", contactName, "path", path, "error", err)
		return ""
	}

	return path
}

// copyTo writes src to a temp file in the store and renames it onto path, so
// a failed copy leaves any existing photo at path untouched
func (p *LocalPhotos) copyTo(path string, src io.Reader) error {
	if src == nil {
		return fmt.Errorf("no photo stream")
	}

	tmp, err := os.CreateTemp(p.dir, ".import-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return nil
}

// Contains reports whether path points into the store directory
func (p *LocalPhotos) Contains(path string) bool {
	if path == "" {
		return false
	}
	rel, err := filepath.Rel(p.dir, path)
	if err != nil {
		return false
	}
	if rel == "." || rel == ".." || filepath.IsAbs(rel) {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
