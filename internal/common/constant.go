// Package common contains constants and sentinel errors shared by the client
// packages.
package common

import "time"

const (
	// AuthorizationHeader carries "Bearer <identity token>" on API calls.
	AuthorizationHeader = "Authorization"

	// RequestIDHeader correlates client log lines with backend requests.
	RequestIDHeader = "X-Request-ID"

	// DateLayout is the calendar-date format used by the backend.
	DateLayout = "2006-01-02"

	// SessionTimeout is the fixed inactivity window after which a stored
	// session is discarded.
	SessionTimeout = 24 * time.Hour

	// ExpiryCheckInterval is how often a signed-in session is checked for
	// inactivity.
	ExpiryCheckInterval = 30 * time.Second
)
