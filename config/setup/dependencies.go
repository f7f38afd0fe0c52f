package setup

import (
	"context"
	"contact-book/app"
	"contact-book/config"
	"contact-book/database"
	"contact-book/drive"
	"contact-book/services"
	"contact-book/storage"
	"contact-book/sync"
	"log/slog"
)

// InitDatabase initializes the SQLite database and runs migrations
func InitDatabase(dbPath string, logger *slog.Logger) (*database.DB, error) {
	db, err := database.New(dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	version, _ := db.Version()
	logger.Info("database initialized", "path", dbPath, "schema_version", version)
	return db, nil
}

// InitApp initializes the application with all dependencies.
// The returned worker is nil when Drive backup is not configured.
func InitApp(db *database.DB, cfg *config.Config, logger *slog.Logger) (*app.App, *sync.Worker, error) {
	// Create repository
	repo := database.NewRepository(db)

	photos, err := storage.NewLocalPhotos(cfg.PhotoDir, cfg.DefaultImage, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("photo store initialized", "dir", photos.Dir())

	contacts := services.NewContactService(repo, photos)

	var backup services.BackupWorker
	var worker *sync.Worker
	if cfg.BackupEnabled() {
		creds := drive.Credentials{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RefreshToken: cfg.GoogleRefreshToken,
		}

		// Create backup storage factory using Drive
		storageFactory := func(ctx context.Context) (sync.StorageService, error) {
			return drive.NewService(ctx, creds)
		}

		// Start backup worker
		worker = sync.NewWorker(repo, photos, storageFactory)
		if err := worker.Start(context.Background()); err != nil {
			return nil, nil, err
		}
		backup = worker
		logger.Info("backup worker started", "folder", drive.RootFolderName)
	} else {
		logger.Info("drive backup disabled, GOOGLE_* credentials not set")
	}

	// Create App with all dependencies injected
	application := app.New(contacts, photos, backup, logger)
	logger.Info("application initialized with dependency injection")

	return application, worker, nil
}

// Shutdown performs graceful shutdown of all services
func Shutdown(backupWorker *sync.Worker, db *database.DB, logger *slog.Logger) {
	logger.Info("shutting down services...")

	// Stop backup worker
	if backupWorker != nil {
		backupWorker.Stop()
		logger.Info("backup worker stopped")
	}

	// Close database
	if db != nil {
		db.Close()
		logger.Info("database closed")
	}
}
