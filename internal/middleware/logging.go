package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-ticket-cms/internal/logger"
)

// RequestLogger attaches base, tagged with the request id, to the request
// context.  It must run after echo's RequestID middleware.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			l := base.With("request_id", c.Response().Header().Get(echo.HeaderXRequestID))
			c.SetRequest(req.WithContext(logger.WithContext(req.Context(), l)))
			return next(c)
		}
	}
}
