package setup

import (
	"contact-book/app"
	"contact-book/config"
	"contact-book/handlers"
	"contact-book/middleware"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(fiberApp *fiber.App, application *app.App) {
	auth := middleware.TokenRequired(config.AppConfig.APIToken)

	// Imported contact photos
	photos := fiberApp.Group("/photos", auth)
	photos.Static("/", application.Photos.Dir(), fiber.Static{
		Compress:      true,
		CacheDuration: 10 * time.Second,
		MaxAge:        60,
	})

	// Public routes
	fiberApp.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	// API routes
	api := fiberApp.Group("/api", auth)

	api.Get("/contacts", handlers.ListContacts(application))
	api.Get("/contacts/favorites", handlers.ListFavorites(application))
	api.Get("/contacts/others", handlers.ListOthers(application))
	api.Get("/contacts/stream", handlers.StreamContacts(application))
	api.Get("/contacts/:id", handlers.GetContact(application))
	api.Post("/contacts", handlers.CreateContact(application))
	api.Put("/contacts/:id", handlers.UpdateContact(application))
	api.Put("/contacts/:id/photo", handlers.ChangePhoto(application))
	api.Post("/contacts/:id/favorite", handlers.ToggleFavorite(application))
	api.Delete("/contacts/:id", handlers.DeleteContact(application))
	api.Get("/backup", handlers.GetBackupStatus(application))
	api.Post("/backup", handlers.TriggerBackup(application))
}
