package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/movie-ticket-cms/internal/handler"    // handlers that implement the endpoints
	"github.com/iliyamo/movie-ticket-cms/internal/middleware" // JWT, session and admin middlewares
)

// RegisterRoutes registers the operational routes: the health check and,
// when metrics is true, the Prometheus scrape endpoint.
func RegisterRoutes(e *echo.Echo, db handler.Pinger, metrics bool) {
	// Load balancers and monitoring systems probe /healthz.
	e.GET("/healthz", handler.Health(db))
	if metrics {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}
}

// RegisterAuth registers all authentication‑related routes under
// /api/auth.  limiter guards the credential endpoints; me and profile need
// a resolved session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, sessions middleware.Resolver, limiter echo.MiddlewareFunc) {
	g := e.Group("/api/auth")

	// Operations that do not require an existing session.  Each of these
	// handlers is responsible for generating or exchanging tokens.
	g.POST("/sign-up", a.SignUp, limiter)
	g.POST("/sign-in", a.SignIn, limiter)
	g.POST("/refresh", a.Refresh, limiter)
	// Sign-out accepts either a refresh token in the body or a bearer
	// token, so the bearer is optional here.
	g.POST("/sign-out", a.SignOut, middleware.OptionalJWT(jwtSecret))

	session := []echo.MiddlewareFunc{middleware.JWTAuth(jwtSecret), middleware.RequireSession(sessions)}
	g.GET("/me", a.Me, session...)
	g.PUT("/profile", a.UpdateProfile, session...)
}

// RegisterPublic registers unauthenticated catalog reads.  cache wraps the
// listing so repeated page loads are served from Redis.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	e.GET("/api/movies/latest", p.Latest, cache)
}
