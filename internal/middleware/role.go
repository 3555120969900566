package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http" // http package defines standard HTTP status codes
	"time"

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context

	"github.com/iliyamo/movie-ticket-cms/internal/service"
)

// Resolver resolves an account id into a session.
type Resolver interface {
	Resolve(ctx context.Context, accountID string) (service.Session, error)
}

// RequireSession resolves the account placed in the context by JWTAuth and
// stores the resulting session under SessionKey.  An account that no
// longer exists is treated as signed out (401).
func RequireSession(r Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := AccountID(c)
			if id == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			s, err := r.Resolve(ctx, id)
			if errors.Is(err, service.ErrNoSession) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}
			if err != nil {
				slog.Error("session resolve failed", "account_id", id, "err", err)
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
			}
			c.Set(SessionKey, s)
			return next(c)
		}
	}
}

// RequireAdmin aborts with 403 unless the session resolved by
// RequireSession belongs to an admin.  A missing session is a 401.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, ok := CurrentSession(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}
			if !s.IsAdmin() {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "Forbidden"})
			}
			return next(c)
		}
	}
}
