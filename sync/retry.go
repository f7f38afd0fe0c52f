package sync

import (
	"strings"
)

// ==================== RETRY LOGIC ====================

// backupResult holds the result of a backup run
type backupResult struct {
	contactCount   int
	photosUploaded int
	photosSkipped  int
	photosFailed   int
	tokenExpired   bool
	err            error
}

// fail records err, keeping the first failure as the reported cause
func (r *backupResult) fail(err error) {
	if r.err == nil {
		r.err = err
	}
	if isTokenExpiredError(err) {
		r.tokenExpired = true
	}
}

// isTokenExpiredError checks if an error is related to token expiration
func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()
	return strings.Contains(errMsg, "token expired") ||
		strings.Contains(errMsg, "Token has been expired") ||
		strings.Contains(errMsg, "invalid_grant") ||
		strings.Contains(errMsg, "401")
}
