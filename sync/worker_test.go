package sync

import (
	"context"
	"contact-book/database"
	"contact-book/models"
	"contact-book/storage"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStorage records every upload it receives
type fakeStorage struct {
	mu          sync.Mutex
	snapshots   [][]models.Contact
	photos      []string
	contactsErr error
}

func (f *fakeStorage) BackupContacts(contacts []models.Contact) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.contactsErr != nil {
		return f.contactsErr
	}
	f.snapshots = append(f.snapshots, contacts)
	return nil
}

func (f *fakeStorage) BackupPhoto(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.photos = append(f.photos, path)
	return nil
}

func (f *fakeStorage) lastSnapshot() []models.Contact {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.snapshots) == 0 {
		return nil
	}
	return f.snapshots[len(f.snapshots)-1]
}

func (f *fakeStorage) uploadedPhotos() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.photos...)
}

func setupTestRepo(t *testing.T) *database.Repository {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })

	return database.NewRepository(db)
}

func setupWorker(t *testing.T, factory StorageFactory) (*Worker, *database.Repository, *storage.LocalPhotos) {
	t.Helper()

	repo := setupTestRepo(t)
	photos, err := storage.NewLocalPhotos(filepath.Join(t.TempDir(), "photos"), "/static/default-avatar.jpg", nil)
	require.NoError(t, err)

	w := NewWorker(repo, photos, factory)
	w.baseInterval = 20 * time.Millisecond
	w.maxInterval = 50 * time.Millisecond
	w.currentInterval = 20 * time.Millisecond
	t.Cleanup(w.Stop)

	return w, repo, photos
}

func staticFactory(s StorageService) StorageFactory {
	return func(ctx context.Context) (StorageService, error) {
		return s, nil
	}
}

func names(contacts []models.Contact) []string {
	out := make([]string, len(contacts))
	for i, c := range contacts {
		out[i] = c.Name
	}
	return out
}

func TestWorker_Backup(t *testing.T) {
	ctx := context.Background()
	fake := &fakeStorage{}
	w, repo, photos := setupWorker(t, staticFactory(fake))

	photoPath := photos.Import("Bob", strings.NewReader("jpeg"))
	require.NotEmpty(t, photoPath)

	_, err := repo.InsertContact(ctx, &models.Contact{Name: "Bob", Image: photoPath})
	require.NoError(t, err)
	_, err = repo.InsertContact(ctx, &models.Contact{Name: "alice", Image: photos.DefaultImage()})
	require.NoError(t, err)

	require.NoError(t, w.Start(ctx))

	t.Run("Initial run uploads a sorted snapshot and local photos", func(t *testing.T) {
		require.Eventually(t, func() bool { return fake.lastSnapshot() != nil }, 2*time.Second, 10*time.Millisecond)

		assert.Equal(t, []string{"alice", "Bob"}, names(fake.lastSnapshot()))
		assert.Equal(t, []string{photoPath}, fake.uploadedPhotos())
	})

	t.Run("Changes are backed up", func(t *testing.T) {
		_, err := repo.InsertContact(ctx, &models.Contact{Name: "Carol"})
		require.NoError(t, err)

		require.Eventually(t, func() bool {
			return len(fake.lastSnapshot()) == 3
		}, 2*time.Second, 10*time.Millisecond)
		assert.Equal(t, []string{"alice", "Bob", "Carol"}, names(fake.lastSnapshot()))
	})

	t.Run("Unchanged photos are not uploaded again", func(t *testing.T) {
		w.BackupNow()

		require.Eventually(t, func() bool {
			fake.mu.Lock()
			defer fake.mu.Unlock()
			return len(fake.snapshots) >= 3
		}, 2*time.Second, 10*time.Millisecond)
		assert.Len(t, fake.uploadedPhotos(), 1)
	})

	t.Run("Status reports the last run", func(t *testing.T) {
		status := w.Status()
		assert.True(t, status.Running)
		require.NotNil(t, status.LastBackupAt)
		assert.Empty(t, status.LastError)
	})
}

func TestWorker_RetriesFailedBackup(t *testing.T) {
	ctx := context.Background()
	fake := &fakeStorage{}

	var mu sync.Mutex
	attempts := 0
	factory := func(ctx context.Context) (StorageService, error) {
		mu.Lock()
		defer mu.Unlock()

		attempts++
		if attempts == 1 {
			return nil, errors.New("connection refused")
		}
		return fake, nil
	}

	w, repo, _ := setupWorker(t, factory)
	_, err := repo.InsertContact(ctx, &models.Contact{Name: "Alice"})
	require.NoError(t, err)

	require.NoError(t, w.Start(ctx))

	require.Eventually(t, func() bool { return fake.lastSnapshot() != nil }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"Alice"}, names(fake.lastSnapshot()))

	require.Eventually(t, func() bool { return w.Status().LastBackupAt != nil }, 2*time.Second, 10*time.Millisecond)
	assert.Empty(t, w.Status().LastError)
}

func TestWorker_StartStop(t *testing.T) {
	ctx := context.Background()
	w, _, _ := setupWorker(t, staticFactory(&fakeStorage{}))

	require.NoError(t, w.Start(ctx))
	require.NoError(t, w.Start(ctx))
	assert.True(t, w.Status().Running)

	w.Stop()
	w.Stop()
	assert.False(t, w.Status().Running)

	// BackupNow never blocks, even when nothing is consuming triggers
	w.BackupNow()
	w.BackupNow()
}

func TestWorker_BackupTokenExpired(t *testing.T) {
	fake := &fakeStorage{contactsErr: errors.New(`oauth2: "invalid_grant" "Token has been expired or revoked."`)}
	w, _, photos := setupWorker(t, staticFactory(fake))

	photoPath := filepath.Join(photos.Dir(), "Alice.jpg")
	require.NoError(t, os.WriteFile(photoPath, []byte("jpeg"), 0644))

	result := w.backup(context.Background(), []models.Contact{{Name: "Alice", Image: photoPath}})

	require.Error(t, result.err)
	assert.True(t, result.tokenExpired)
	assert.Zero(t, result.contactCount)
	assert.Empty(t, fake.uploadedPhotos())
}

func TestIsTokenExpiredError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "invalid grant", err: errors.New(`oauth2: cannot fetch token: "invalid_grant"`), want: true},
		{name: "expired", err: errors.New("Token has been expired or revoked."), want: true},
		{name: "unauthorized", err: errors.New("googleapi: Error 401: Invalid Credentials"), want: true},
		{name: "network", err: errors.New("dial tcp: connection refused"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTokenExpiredError(tt.err))
		})
	}
}
