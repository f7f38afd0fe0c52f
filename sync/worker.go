package sync

import (
	"context"
	"contact-book/database"
	"contact-book/models"
	"log"
	"sync"
	"time"
)

// StorageService interface defines storage operations needed by the backup worker
type StorageService interface {
	BackupContacts(contacts []models.Contact) error
	BackupPhoto(path string) error
}

// StorageFactory creates storage service instances
type StorageFactory func(ctx context.Context) (StorageService, error)

// ContactSource provides the live contact list to back up
type ContactSource interface {
	Subscribe(ctx context.Context, q database.Query) (*database.Subscription, error)
}

// PhotoLocator reports whether an image path belongs to the local photo store
type PhotoLocator interface {
	Contains(path string) bool
}

// Status describes the outcome of the most recent backup run
type Status struct {
	Running      bool       `json:"running"`
	Pending      bool       `json:"pending"`
	LastBackupAt *time.Time `json:"last_backup_at,omitempty"`
	LastError    string     `json:"last_error,omitempty"`
}

// Worker keeps an off-device copy of the contact list up to date
// See domain-specific files:
// - executor.go: Core backup execution logic
// - retry.go: Retry and failure classification
// - token_manager.go: OAuth token refresh tracking
type Worker struct {
	source          ContactSource
	photos          PhotoLocator
	storageFactory  StorageFactory
	baseInterval    time.Duration
	maxInterval     time.Duration
	currentInterval time.Duration

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	trigger  chan struct{}
	wg       sync.WaitGroup

	// Latest snapshot from the live query and whether it still needs uploading
	snapshot []models.Contact
	dirty    bool

	uploaded     map[string]time.Time
	lastBackupAt *time.Time
	lastError    string
	tokenExpiry  time.Time
}

// NewWorker creates a new backup worker instance
func NewWorker(source ContactSource, photos PhotoLocator, storageFactory StorageFactory) *Worker {
	return &Worker{
		source:          source,
		photos:          photos,
		storageFactory:  storageFactory,
		baseInterval:    2 * time.Minute, // Base interval while contacts keep changing
		maxInterval:     5 * time.Minute, // Max interval when no work
		currentInterval: 2 * time.Minute, // Start with base interval
		trigger:         make(chan struct{}, 1),
		uploaded:        make(map[string]time.Time),
	}
}

// Start subscribes to the contact list and begins the background backup loop
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	sub, err := w.source.Subscribe(ctx, database.QueryAll)
	if err != nil {
		return err
	}

	// The initial snapshot is delivered during Subscribe
	w.snapshot = <-sub.C
	w.dirty = true
	w.running = true
	w.stopChan = make(chan struct{})

	log.Println("[Backup Worker] Starting background backup worker")

	w.wg.Add(1)
	go w.run(sub, w.stopChan)
	return nil
}

// Stop gracefully stops the background backup worker and waits for it to exit
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}

	log.Println("[Backup Worker] Stopping background backup worker")
	close(w.stopChan)
	w.running = false
	w.mu.Unlock()

	w.wg.Wait()
}

// BackupNow requests an immediate backup without waiting for it to finish
func (w *Worker) BackupNow() {
	select {
	case w.trigger <- struct{}{}:
	default:
		// A run is already queued
	}
}

// Status returns the state of the worker and its last run
func (w *Worker) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()

	return Status{
		Running:      w.running,
		Pending:      w.dirty,
		LastBackupAt: w.lastBackupAt,
		LastError:    w.lastError,
	}
}

// run is the main worker loop with adaptive backoff
func (w *Worker) run(sub *database.Subscription, stop <-chan struct{}) {
	defer w.wg.Done()
	defer sub.Close()

	ticker := time.NewTicker(w.currentInterval)
	defer ticker.Stop()

	// Run immediately on start
	w.backupPending(false)

	for {
		select {
		case contacts, ok := <-sub.C:
			if !ok {
				return
			}
			w.mu.Lock()
			w.snapshot = contacts
			w.dirty = true
			w.mu.Unlock()
		case <-w.trigger:
			w.backupPending(true)
		case <-ticker.C:
			hadWork := w.backupPending(false)

			// Adaptive backoff: increase interval when no work, reset when there's work
			w.mu.Lock()
			if hadWork {
				if w.currentInterval != w.baseInterval {
					w.currentInterval = w.baseInterval
					ticker.Reset(w.currentInterval)
					log.Printf("[Backup Worker] Work found, reset interval to %v", w.currentInterval)
				}
			} else {
				if w.currentInterval < w.maxInterval {
					w.currentInterval = w.maxInterval
					ticker.Reset(w.currentInterval)
					log.Printf("[Backup Worker] No work, increased interval to %v", w.currentInterval)
				}
			}
			w.mu.Unlock()
		case <-stop:
			return
		}
	}
}
