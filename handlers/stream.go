package handlers

import (
	"bufio"
	"contact-book/app"
	"contact-book/database"
	"contact-book/models"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// streamKeepAlive is how often an idle stream sends a comment line, which
// also detects clients that went away
const streamKeepAlive = 15 * time.Second

// StreamContacts streams a live query as Server-Sent Events. Every emission
// of the query becomes one "contacts" event carrying the full list.
func StreamContacts(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query, err := database.ParseQuery(c.Query("query"))
		if err != nil {
			return badRequest(c, err.Error())
		}

		sub, err := a.Contacts.Subscribe(c.UserContext(), query)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to subscribe to contacts", err)
		}

		c.Set(fiber.HeaderContentType, "text/event-stream")
		c.Set(fiber.HeaderCacheControl, "no-cache")
		c.Set(fiber.HeaderConnection, "keep-alive")
		c.Set("X-Accel-Buffering", "no")

		done := c.Context().Done()
		logger := a.Logger

		c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
			defer sub.Close()

			keepAlive := time.NewTicker(streamKeepAlive)
			defer keepAlive.Stop()

			for {
				select {
				case contacts, ok := <-sub.C:
					if !ok {
						return
					}
					if err := writeContactsEvent(w, contacts); err != nil {
						logger.Debug("contact stream closed", "query", query.String(), "error", err)
						return
					}
				case <-keepAlive.C:
					if _, err := w.WriteString(": keep-alive\n\n"); err != nil {
						return
					}
					if err := w.Flush(); err != nil {
						logger.Debug("contact stream closed", "query", query.String(), "error", err)
						return
					}
				case <-done:
					return
				}
			}
		})

		return nil
	}
}

// writeContactsEvent writes one "contacts" event and flushes it to the client
func writeContactsEvent(w *bufio.Writer, contacts []models.Contact) error {
	if contacts == nil {
		contacts = []models.Contact{}
	}

	data, err := json.Marshal(contacts)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "event: contacts\ndata: %s\n\n", data); err != nil {
		return err
	}
	return w.Flush()
}
