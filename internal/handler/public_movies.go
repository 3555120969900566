package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-ticket-cms/internal/model"
)

const (
	defaultLatestLimit = 8
	maxLatestLimit     = 50
)

// PublicHandler serves unauthenticated catalog reads.
type PublicHandler struct {
	Movies MovieStore
}

// Latest handles GET /api/movies/latest[?limit=n]: the newest active
// movies as cards.  limit defaults to 8 and is capped at 50.
func (h *PublicHandler) Latest(c echo.Context) error {
	limit := defaultLatestLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return jsonError(c, http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = min(n, maxLatestLimit)
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	movies, err := h.Movies.Latest(ctx, limit)
	if err != nil {
		return internalError(c, "latest movies", err)
	}
	cards := make([]model.MovieCard, 0, len(movies))
	for _, m := range movies {
		// the store already filters, but a soft-deleted row must never leak
		if !m.IsActive {
			continue
		}
		cards = append(cards, m.Card())
	}
	return c.JSON(http.StatusOK, echo.Map{"movies": cards})
}
