package sync

import (
	"log"

	"golang.org/x/oauth2"
)

// ==================== TOKEN REFRESH TRACKING ====================

// tokenReporter is implemented by storage services that expose their OAuth token
type tokenReporter interface {
	GetCurrentToken() (*oauth2.Token, error)
}

// trackTokenRefresh logs when the access token was refreshed during a backup run
func (w *Worker) trackTokenRefresh(provider StorageService) {
	reporter, ok := provider.(tokenReporter)
	if !ok {
		return
	}

	currentToken, err := reporter.GetCurrentToken()
	if err != nil || currentToken == nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	// Only log if the token actually changed
	if !currentToken.Expiry.Equal(w.tokenExpiry) {
		if !w.tokenExpiry.IsZero() {
			log.Printf("[Backup Worker] Access token was refreshed, now valid until %s", currentToken.Expiry.Format("2006-01-02 15:04:05"))
		}
		w.tokenExpiry = currentToken.Expiry
	}
}
