package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/movie-ticket-cms/internal/utils" // access token parsing
)

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// stores the token's subject (the account id) in the request context under
// AccountIDKey.  Requests without a valid token are rejected with 401.  The
// role is not taken from the token; RequireAdmin resolves it per request.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearer(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}
			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}
			c.Set(AccountIDKey, claims.Subject)
			return next(c)
		}
	}
}

// OptionalJWT behaves like JWTAuth but lets anonymous and invalid requests
// through without an account id.
func OptionalJWT(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw, ok := bearer(c); ok {
				if claims, err := utils.ParseAccessToken(secret, raw); err == nil {
					c.Set(AccountIDKey, claims.Subject)
				}
			}
			return next(c)
		}
	}
}

// bearer extracts the token of an "Authorization: Bearer <token>" header.
func bearer(c echo.Context) (string, bool) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	return raw, raw != ""
}
