package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// UsersHandler serves the admin user listing.
type UsersHandler struct {
	Profiles ProfileStore
}

// List handles GET /api/admin/users, newest first.
func (h *UsersHandler) List(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	users, err := h.Profiles.List(ctx)
	if err != nil {
		return internalError(c, "list users", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}
