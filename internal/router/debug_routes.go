package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-ticket-cms/internal/handler"
	"github.com/iliyamo/movie-ticket-cms/internal/middleware"
)

// RegisterDebug registers the development helpers under /api/debug.  The
// caller decides whether to mount them at all; the bearer token is
// optional so the auth probe can report anonymous requests too.
func RegisterDebug(e *echo.Echo, d *handler.DebugHandler, jwtSecret string) {
	g := e.Group("/api/debug", middleware.OptionalJWT(jwtSecret))
	g.POST("/make-admin", d.MakeAdmin)
	g.GET("/auth", d.Auth)
}
