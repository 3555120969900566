// Package handler exposes the HTTP handlers of the API.  Handlers validate
// input, call the stores and shape the JSON; every error body is
// {"error": "<message>"}.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-ticket-cms/internal/logger"
	"github.com/iliyamo/movie-ticket-cms/internal/middleware"
	"github.com/iliyamo/movie-ticket-cms/internal/validate"
)

// dbTimeout bounds every database round trip made by a handler.
const dbTimeout = 5 * time.Second

func dbCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

func jsonError(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"error": msg})
}

// internalError logs err through the request logger and answers with a
// generic 500; store errors never reach the client.
func internalError(c echo.Context, op string, err error) error {
	logger.FromContext(c.Request().Context()).Error(op+" failed",
		"err", err,
		"account_id", middleware.AccountID(c))
	return jsonError(c, http.StatusInternalServerError, "Internal server error")
}

// inputError answers validation failures with 400 and anything else as
// an internal error.
func inputError(c echo.Context, op string, err error) error {
	if validate.IsValidation(err) {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}
	return internalError(c, op, err)
}
