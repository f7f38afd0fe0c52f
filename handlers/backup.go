package handlers

import (
	"contact-book/app"
	"contact-book/services"

	"github.com/gofiber/fiber/v2"
)

func backupDisabled(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": services.ErrBackupDisabled.Error()})
}

// TriggerBackup queues an immediate Drive backup
func TriggerBackup(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if a.Backup == nil {
			return backupDisabled(c)
		}

		a.Backup.BackupNow()

		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "Backup queued"})
	}
}

// GetBackupStatus reports the outcome of the last backup run
func GetBackupStatus(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if a.Backup == nil {
			return backupDisabled(c)
		}

		return success(c, fiber.Map{"backup": a.Backup.Status()})
	}
}
