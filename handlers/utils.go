package handlers

import (
	"contact-book/services"
	"contact-book/validator"
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func success(c *fiber.Ctx, data fiber.Map) error {
	return c.JSON(data)
}

func created(c *fiber.Ctx, data fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": message})
}

func validationError(c *fiber.Ctx, err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  errs.Error(),
			"fields": errs,
		})
	}
	return badRequest(c, err.Error())
}

func serverErrorWithDetails(c *fiber.Ctx, message string, err error) error {
	requestID := ""
	if id, ok := c.Locals("requestID").(string); ok {
		requestID = id
	}

	slog.Error("server error",
		"request_id", requestID,
		"method", c.Method(),
		"path", c.Path(),
		"message", message,
		"error", err,
	)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}

// contactError maps service errors for a single contact onto a response
func contactError(c *fiber.Ctx, message string, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidContactID):
		return badRequest(c, err.Error())
	case errors.Is(err, services.ErrContactNotFound):
		return notFound(c, err.Error())
	default:
		return serverErrorWithDetails(c, message, err)
	}
}

// contactID parses the :id route parameter. Malformed ids become 0, which
// the service rejects as invalid.
func contactID(c *fiber.Ctx) int64 {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
