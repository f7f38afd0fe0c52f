package handlers

import (
	"contact-book/app"
	"contact-book/listing"
	"contact-book/models"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// ==================== QUERY OPERATIONS ====================

// ListContacts returns all contacts grouped by initial, filtered by ?q=
func ListContacts(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := utils.CopyString(c.Query("q"))

		contacts, err := a.Contacts.All(c.UserContext())
		if err != nil {
			return serverErrorWithDetails(c, "Failed to load contacts", err)
		}

		groups := listing.Search(query, contacts)

		count := 0
		for _, g := range groups {
			count += len(g.Contacts)
		}

		return success(c, fiber.Map{
			"query":  query,
			"count":  count,
			"groups": groups,
		})
	}
}

// ListFavorites returns favorite contacts ordered by name
func ListFavorites(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		contacts, err := a.Contacts.Favorites(c.UserContext())
		if err != nil {
			return serverErrorWithDetails(c, "Failed to load favorites", err)
		}

		return success(c, fiber.Map{"contacts": contacts})
	}
}

// ListOthers returns non-favorite contacts ordered by name
func ListOthers(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		contacts, err := a.Contacts.NonFavorites(c.UserContext())
		if err != nil {
			return serverErrorWithDetails(c, "Failed to load contacts", err)
		}

		return success(c, fiber.Map{"contacts": contacts})
	}
}

// GetContact returns a single contact
func GetContact(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		contact, err := a.Contacts.Get(c.UserContext(), contactID(c))
		if err != nil {
			return contactError(c, "Failed to load contact", err)
		}

		return success(c, fiber.Map{"contact": contact})
	}
}

// ==================== MUTATING OPERATIONS ====================

// CreateContact adds a contact from a JSON or multipart body. A multipart
// "photo" part is copied into the photo store.
func CreateContact(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateContactRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		photo, err := openPhoto(c)
		if err != nil {
			return badRequest(c, "Invalid photo upload")
		}
		if photo != nil {
			defer photo.Close()
		}

		contact, err := a.Contacts.AddWithPhoto(c.UserContext(), req, readerOrNil(photo))
		if err != nil {
			return serverErrorWithDetails(c, "Failed to create contact", err)
		}

		return created(c, fiber.Map{"contact": contact})
	}
}

// UpdateContact replaces the editable fields of a contact
func UpdateContact(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UpdateContactRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		contact, err := a.Contacts.Edit(c.UserContext(), contactID(c), req)
		if err != nil {
			return contactError(c, "Failed to update contact", err)
		}

		return success(c, fiber.Map{"contact": contact})
	}
}

// ChangePhoto replaces a contact's photo with the uploaded "photo" part.
// When the copy fails the contact keeps its current image.
func ChangePhoto(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		photo, err := openPhoto(c)
		if err != nil {
			return badRequest(c, "Invalid photo upload")
		}
		if photo == nil {
			return badRequest(c, "photo is required")
		}
		defer photo.Close()

		contact, err := a.Contacts.ChangePhoto(c.UserContext(), contactID(c), photo)
		if err != nil {
			return contactError(c, "Failed to change photo", err)
		}

		return success(c, fiber.Map{"contact": contact})
	}
}

// ToggleFavorite flips a contact's favorite flag
func ToggleFavorite(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		contact, err := a.Contacts.Get(ctx, contactID(c))
		if err != nil {
			return contactError(c, "Failed to load contact", err)
		}

		toggled, err := a.Contacts.ToggleFavorite(ctx, *contact)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to update favorite", err)
		}

		return success(c, fiber.Map{"contact": toggled})
	}
}

// DeleteContact removes a contact. Deleting a missing contact succeeds.
func DeleteContact(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := contactID(c)
		if id <= 0 {
			return badRequest(c, "invalid contact id")
		}

		if err := a.Contacts.Delete(c.UserContext(), &models.Contact{ID: id}); err != nil {
			return serverErrorWithDetails(c, "Failed to delete contact", err)
		}

		return success(c, fiber.Map{"message": "Contact deleted"})
	}
}

// openPhoto returns the uploaded "photo" part, or nil when the request has none
func openPhoto(c *fiber.Ctx) (multipart.File, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	headers := form.File["photo"]
	if len(headers) == 0 {
		return nil, nil
	}
	header := headers[0]

	return header.Open()
}

// readerOrNil keeps a nil multipart.File from becoming a non-nil io.Reader
func readerOrNil(f multipart.File) io.Reader {
	if f == nil {
		return nil
	}
	return f
}
