package sync

import (
	"context"
	"contact-book/listing"
	"contact-book/models"
	"fmt"
	"log"
	"os"
	"time"
)

// ==================== BACKUP EXECUTION ====================

// backupPending uploads the latest snapshot when it changed since the last
// successful run, or unconditionally when force is set
// Returns true if work was found, false otherwise
func (w *Worker) backupPending(force bool) bool {
	w.mu.Lock()
	if !w.dirty && !force {
		w.mu.Unlock()
		return false
	}
	contacts := w.snapshot
	w.dirty = false
	w.mu.Unlock()

	result := w.backup(context.Background(), contacts)

	w.mu.Lock()
	defer w.mu.Unlock()

	if result.err != nil {
		// Leave the snapshot pending so the next tick retries it
		w.dirty = true
		w.lastError = result.err.Error()
		if result.photosFailed > 0 {
			log.Printf("[Backup Worker] %d photos failed to upload", result.photosFailed)
		}
		if result.tokenExpired {
			log.Printf("[Backup Worker] Drive token expired or revoked, update GOOGLE_REFRESH_TOKEN: %v", result.err)
		} else {
			log.Printf("[Backup Worker] Backup failed: %v", result.err)
		}
		return true
	}

	now := time.Now()
	w.lastBackupAt = &now
	w.lastError = ""
	log.Printf("[Backup Worker] Backed up %d contacts, %d photos uploaded, %d unchanged",
		result.contactCount, result.photosUploaded, result.photosSkipped)

	return true
}

// backup writes contacts and the photos they reference to cloud storage
func (w *Worker) backup(ctx context.Context, contacts []models.Contact) *backupResult {
	result := &backupResult{}

	provider, err := w.storageFactory(ctx)
	if err != nil {
		result.fail(fmt.Errorf("failed to connect to cloud storage: %w", err))
		return result
	}

	sorted := listing.SortByName(contacts)
	if err := provider.BackupContacts(sorted); err != nil {
		result.fail(err)
		return result
	}
	result.contactCount = len(sorted)

	for _, path := range w.photoPaths(sorted) {
		info, err := os.Stat(path)
		if err != nil {
			// Photo was replaced or removed after the snapshot was taken
			continue
		}

		if w.photoUnchanged(path, info.ModTime()) {
			result.photosSkipped++
			continue
		}

		if err := provider.BackupPhoto(path); err != nil {
			result.photosFailed++
			result.fail(fmt.Errorf("failed to upload photo %s: %w", path, err))
			if result.tokenExpired {
				break
			}
			continue
		}

		w.mu.Lock()
		w.uploaded[path] = info.ModTime()
		w.mu.Unlock()
		result.photosUploaded++
	}

	w.trackTokenRefresh(provider)

	return result
}

// photoPaths returns the distinct local photo paths referenced by contacts
func (w *Worker) photoPaths(contacts []models.Contact) []string {
	if w.photos == nil {
		return nil
	}

	seen := make(map[string]bool)
	var paths []string
	for _, c := range contacts {
		if c.Image == "" || seen[c.Image] || !w.photos.Contains(c.Image) {
			continue
		}
		seen[c.Image] = true
		paths = append(paths, c.Image)
	}
	return paths
}

func (w *Worker) photoUnchanged(path string, modTime time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	last, ok := w.uploaded[path]
	return ok && last.Equal(modTime)
}
