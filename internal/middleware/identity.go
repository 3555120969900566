package middleware

// identity.go defines the context keys shared by the auth middleware and
// the handlers, and the helpers that read them back.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-ticket-cms/internal/service"
)

const (
	// AccountIDKey holds the authenticated account id (string).
	AccountIDKey = "account_id"
	// SessionKey holds the resolved service.Session.
	SessionKey = "session"
)

// AccountID returns the authenticated account id, or "" for anonymous
// requests.
func AccountID(c echo.Context) string {
	if s, ok := c.Get(AccountIDKey).(string); ok {
		return s
	}
	return ""
}

// CurrentSession returns the session stored by RequireSession.
func CurrentSession(c echo.Context) (service.Session, bool) {
	s, ok := c.Get(SessionKey).(service.Session)
	return s, ok
}

// currentUserID is the identity component of rate-limit keys.
func currentUserID(c echo.Context) string {
	if id := AccountID(c); id != "" {
		return id
	}
	return "anon"
}
