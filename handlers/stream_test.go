package handlers_test

import (
	"bufio"
	"context"
	"contact-book/models"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readEvent returns the payload of the next "contacts" event on the stream
func readEvent(t *testing.T, r *bufio.Reader) []models.Contact {
	t.Helper()

	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)

		data, ok := strings.CutPrefix(strings.TrimRight(line, "\n"), "data: ")
		if !ok {
			continue
		}

		var contacts []models.Contact
		require.NoError(t, json.Unmarshal([]byte(data), &contacts))
		return contacts
	}
}

func TestStreamContacts(t *testing.T) {
	application, cleanup := setupTestDB(t)
	defer cleanup()

	fiberApp := setupTestApp(application)

	t.Run("Unknown query", func(t *testing.T) {
		resp, body := doJSON(t, fiberApp, http.MethodGet, "/api/contacts/stream?query=recent", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body["error"], "recent")
	})

	t.Run("Emits the favorites list as it changes", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)

		go func() { _ = fiberApp.Listener(ln) }()
		defer fiberApp.ShutdownWithTimeout(2 * time.Second)

		client := &http.Client{Timeout: 5 * time.Second}
		resp, err := client.Get("http://" + ln.Addr().String() + "/api/contacts/stream?query=favorites")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

		reader := bufio.NewReader(resp.Body)
		assert.Empty(t, readEvent(t, reader))

		alice := addContact(t, application, "Alice")
		_, err = application.Contacts.ToggleFavorite(context.Background(), *alice)
		require.NoError(t, err)

		// Intermediate snapshots may be coalesced; the latest one must arrive
		var favorites []models.Contact
		for i := 0; i < 3 && len(favorites) == 0; i++ {
			favorites = readEvent(t, reader)
		}
		require.Len(t, favorites, 1)
		assert.Equal(t, "Alice", favorites[0].Name)
		assert.True(t, favorites[0].IsFavorite)
	})
}
