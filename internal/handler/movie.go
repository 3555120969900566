package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-ticket-cms/internal/logger"
	"github.com/iliyamo/movie-ticket-cms/internal/middleware"
	"github.com/iliyamo/movie-ticket-cms/internal/model"
	"github.com/iliyamo/movie-ticket-cms/internal/queue"
	"github.com/iliyamo/movie-ticket-cms/internal/repository"
	"github.com/iliyamo/movie-ticket-cms/internal/service"
	"github.com/iliyamo/movie-ticket-cms/internal/validate"
)

// MovieHandler serves the admin movie endpoints.  Every successful write
// publishes a catalog event and purges the public cache; neither side
// effect can fail the request.
type MovieHandler struct {
	Movies MovieStore
	Events service.Publisher
	Purge  CachePurger
}

func NewMovieHandler(movies MovieStore, events service.Publisher, purge CachePurger) *MovieHandler {
	if movies == nil {
		panic("nil movie store passed to NewMovieHandler")
	}
	if events == nil {
		events = service.NopPublisher{}
	}
	return &MovieHandler{Movies: movies, Events: events, Purge: purge}
}

// List handles GET /api/admin/movies[?active=true|false].
func (h *MovieHandler) List(c echo.Context) error {
	var active *bool
	if raw := c.QueryParam("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return jsonError(c, http.StatusBadRequest, "active must be true or false")
		}
		active = &v
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	movies, err := h.Movies.List(ctx, active)
	if err != nil {
		return internalError(c, "list movies", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"movies": movies})
}

// Stats handles GET /api/admin/movies/stats.
func (h *MovieHandler) Stats(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	movies, err := h.Movies.List(ctx, nil)
	if err != nil {
		return internalError(c, "movie stats", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"stats": model.SummarizeMovies(movies)})
}

// Get handles GET /api/admin/movies/:id.
func (h *MovieHandler) Get(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	m, err := h.Movies.GetByID(ctx, c.Param("id"))
	if errors.Is(err, repository.ErrMovieNotFound) {
		return jsonError(c, http.StatusNotFound, "Movie not found")
	}
	if err != nil {
		return internalError(c, "get movie", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"movie": m})
}

// Create handles POST /api/admin/movies.  New movies are always active.
func (h *MovieHandler) Create(c echo.Context) error {
	in, err := readMovie(c)
	if err != nil {
		return inputError(c, "read movie", err)
	}
	in.Movie.IsActive = true

	ctx, cancel := dbCtx(c)
	defer cancel()

	m, err := h.Movies.Create(ctx, in.Movie)
	if err != nil {
		return internalError(c, "create movie", err)
	}
	h.afterWrite(c, queue.MovieCreated, m)
	return c.JSON(http.StatusCreated, echo.Map{"movie": m})
}

// Update handles PUT /api/admin/movies/:id.  is_active changes only when
// the body carries it as a boolean.
func (h *MovieHandler) Update(c echo.Context) error {
	in, err := readMovie(c)
	if err != nil {
		return inputError(c, "read movie", err)
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	m, err := h.Movies.Update(ctx, c.Param("id"), in.Movie, in.SetActive)
	if errors.Is(err, repository.ErrMovieNotFound) {
		return jsonError(c, http.StatusNotFound, "Movie not found")
	}
	if err != nil {
		return internalError(c, "update movie", err)
	}
	ev := queue.MovieUpdated
	if in.SetActive != nil && !*in.SetActive {
		ev = queue.MovieDeactivated
	}
	h.afterWrite(c, ev, m)
	return c.JSON(http.StatusOK, echo.Map{"movie": m})
}

// Delete handles DELETE /api/admin/movies/:id as a soft delete.
func (h *MovieHandler) Delete(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	m, err := h.Movies.SetActive(ctx, c.Param("id"), false)
	if errors.Is(err, repository.ErrMovieNotFound) {
		return jsonError(c, http.StatusNotFound, "Movie not found")
	}
	if err != nil {
		return internalError(c, "delete movie", err)
	}
	h.afterWrite(c, queue.MovieDeactivated, m)
	return c.JSON(http.StatusOK, echo.Map{"movie": m})
}

func (h *MovieHandler) afterWrite(c echo.Context, t queue.EventType, m model.Movie) {
	ctx, cancel := dbCtx(c)
	defer cancel()

	service.PublishBestEffort(ctx, h.Events, service.NewMovieEvent(t, m, middleware.AccountID(c)))
	if h.Purge != nil {
		if err := h.Purge(ctx); err != nil {
			logger.FromContext(c.Request().Context()).Warn("cache purge failed", "movie_id", m.ID, "err", err)
		}
	}
}

func readMovie(c echo.Context) (validate.MovieInput, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return validate.MovieInput{}, &validate.Error{Field: "body", Message: "Invalid JSON body"}
	}
	return validate.Movie(body)
}
