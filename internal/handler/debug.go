package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-ticket-cms/internal/logger"
	"github.com/iliyamo/movie-ticket-cms/internal/middleware"
	"github.com/iliyamo/movie-ticket-cms/internal/model"
	"github.com/iliyamo/movie-ticket-cms/internal/repository"
	"github.com/iliyamo/movie-ticket-cms/internal/service"
)

// DebugHandler backs the development-only /api/debug routes.  The router
// mounts them only when DEBUG_ROUTES_ENABLED is set.
type DebugHandler struct {
	Profiles ProfileStore
	Sessions middleware.Resolver
}

type makeAdminReq struct {
	UserID string `json:"userId"`
}

// MakeAdmin handles POST /api/debug/make-admin {userId}.
func (h *DebugHandler) MakeAdmin(c echo.Context) error {
	var req makeAdminReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid JSON body")
	}
	id := strings.TrimSpace(req.UserID)
	if id == "" {
		return jsonError(c, http.StatusBadRequest, "User ID required")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	err := h.Profiles.SetRole(ctx, id, model.RoleAdmin)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return jsonError(c, http.StatusNotFound, "User not found")
	}
	if err != nil {
		return internalError(c, "make admin", err)
	}
	logger.FromContext(c.Request().Context()).Warn("debug: user promoted to admin", "user_id", id, "by", middleware.AccountID(c))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "User is now admin"})
}

// Auth handles GET /api/debug/auth: a summary of how the bearer resolves.
func (h *DebugHandler) Auth(c echo.Context) error {
	id := middleware.AccountID(c)
	if id == "" {
		return c.JSON(http.StatusOK, echo.Map{"authenticated": false})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	s, err := h.Sessions.Resolve(ctx, id)
	if errors.Is(err, service.ErrNoSession) {
		return c.JSON(http.StatusOK, echo.Map{"authenticated": false, "account_id": id, "reason": "account not found"})
	}
	if err != nil {
		return internalError(c, "debug auth", err)
	}
	source := "stored"
	if s.Synthesized {
		source = "synthesized"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"authenticated":  true,
		"account_id":     s.Account.ID,
		"email":          s.Account.Email,
		"profile":        s.Profile,
		"profile_source": source,
		"is_admin":       s.IsAdmin(),
	})
}
