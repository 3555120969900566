package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-ticket-cms/internal/handler"
	"github.com/iliyamo/movie-ticket-cms/internal/middleware"
)

// RegisterAdmin registers the admin surface under /api/admin.  Every route
// requires a valid JWT, a resolvable session and a stored admin profile:
// anonymous callers get 401, everyone else without the role 403.
func RegisterAdmin(e *echo.Echo, m *handler.MovieHandler, u *handler.UsersHandler, jwtSecret string, sessions middleware.Resolver) {
	g := e.Group(
		"/api/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireSession(sessions),
		middleware.RequireAdmin(),
	)

	// ---- Movies ----
	g.GET("/movies", m.List)
	g.GET("/movies/stats", m.Stats) // static segment wins over :id
	g.POST("/movies", m.Create)
	g.GET("/movies/:id", m.Get)
	g.PUT("/movies/:id", m.Update)
	g.DELETE("/movies/:id", m.Delete) // soft delete

	// ---- Users ----
	g.GET("/users", u.List)
}
