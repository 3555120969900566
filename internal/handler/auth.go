package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-ticket-cms/internal/config"
	"github.com/iliyamo/movie-ticket-cms/internal/logger"
	"github.com/iliyamo/movie-ticket-cms/internal/middleware"
	"github.com/iliyamo/movie-ticket-cms/internal/model"
	"github.com/iliyamo/movie-ticket-cms/internal/repository"
	"github.com/iliyamo/movie-ticket-cms/internal/utils"
	"github.com/iliyamo/movie-ticket-cms/internal/validate"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg      config.AuthConfig
	Accounts AccountStore
	Profiles ProfileStore
	Tokens   TokenStore
	Sessions middleware.Resolver
}

func NewAuthHandler(cfg config.AuthConfig, a AccountStore, p ProfileStore, t TokenStore, s middleware.Resolver) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Accounts: a, Profiles: p, Tokens: t, Sessions: s}
}

// ----- DTOs -----

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type authResp struct {
	User    model.User `json:"user"`
	Access  tokenPart  `json:"access"`
	Refresh tokenPart  `json:"refresh"`
}

// SignUp creates an account with role "user", best-effort creates its
// profile row and returns a token pair immediately.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req validate.SignUpInput
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid JSON body")
	}
	if err := validate.SignUp(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	fullName := req.FullName
	meta := model.Metadata{FullName: &fullName, Phone: req.Phone, Role: model.RoleUser}
	acc, err := h.Accounts.Create(ctx, req.Email, req.Password, meta, h.Cfg.BcryptCost)
	switch {
	case errors.Is(err, repository.ErrEmailExists):
		return jsonError(c, http.StatusConflict, "Email already registered")
	case errors.Is(err, utils.ErrPasswordTooLong):
		return jsonError(c, http.StatusBadRequest, "Password is too long")
	case err != nil:
		return internalError(c, "sign-up", err)
	}

	profile, err := h.Profiles.Create(ctx, model.ProfileFromAccount(acc))
	if err != nil {
		// the session resolver creates the row on the next request
		logger.FromContext(c.Request().Context()).Warn("sign-up: profile insert failed", "account_id", acc.ID, "err", err)
		profile = model.ProfileFromAccount(acc)
	}

	resp, err := h.issue(ctx, acc.ID, acc.Email)
	if err != nil {
		return internalError(c, "issue tokens", err)
	}
	resp.User = profile
	return c.JSON(http.StatusCreated, resp)
}

// SignIn verifies credentials and returns a new pair.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req validate.SignInInput
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid JSON body")
	}
	if err := validate.SignIn(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	acc, err := h.Accounts.GetByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return jsonError(c, http.StatusUnauthorized, "Invalid email or password")
	}
	if err != nil {
		return internalError(c, "sign-in lookup", err)
	}
	if !utils.VerifyPassword(acc.PasswordHash, req.Password) {
		return jsonError(c, http.StatusUnauthorized, "Invalid email or password")
	}

	resp, err := h.issue(ctx, acc.ID, acc.Email)
	if err != nil {
		return internalError(c, "issue tokens", err)
	}
	resp.User = h.profileFor(ctx, acc)
	return c.JSON(http.StatusOK, resp)
}

// Refresh validates a refresh token by hash, revokes it and issues a new
// pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req validate.RefreshInput
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid JSON body")
	}
	if err := validate.Struct(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}
	hash := utils.HashRefreshRaw(req.RefreshToken)

	ctx, cancel := dbCtx(c)
	defer cancel()

	accountID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if errors.Is(err, repository.ErrInvalidRefresh) {
		return jsonError(c, http.StatusUnauthorized, "Invalid refresh token")
	}
	if err != nil {
		return internalError(c, "validate refresh", err)
	}
	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		return internalError(c, "revoke refresh", err)
	}

	acc, err := h.Accounts.GetByID(ctx, accountID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return jsonError(c, http.StatusUnauthorized, "Invalid refresh token")
	}
	if err != nil {
		return internalError(c, "load account", err)
	}

	resp, err := h.issue(ctx, acc.ID, acc.Email)
	if err != nil {
		return internalError(c, "issue tokens", err)
	}
	resp.User = h.profileFor(ctx, acc)
	return c.JSON(http.StatusOK, resp)
}

// SignOut revokes the refresh token in the body.  Without one, a valid
// bearer token revokes every refresh token of the account.
func (h *AuthHandler) SignOut(c echo.Context) error {
	var req validate.RefreshInput
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid JSON body")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if req.RefreshToken != "" {
		hash := utils.HashRefreshRaw(req.RefreshToken)
		if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
			if errors.Is(err, repository.ErrInvalidRefresh) {
				return jsonError(c, http.StatusUnauthorized, "Invalid refresh token")
			}
			return internalError(c, "validate refresh", err)
		}
		if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
			return internalError(c, "sign-out", err)
		}
		return c.NoContent(http.StatusNoContent)
	}
	if id := middleware.AccountID(c); id != "" {
		if err := h.Tokens.RevokeAllForAccount(ctx, id); err != nil {
			return internalError(c, "sign-out", err)
		}
		return c.NoContent(http.StatusNoContent)
	}
	return jsonError(c, http.StatusBadRequest, "Provide Authorization header or refresh_token")
}

// Me returns the account, its profile and whether it may use the admin
// surface.  It runs behind RequireSession.
func (h *AuthHandler) Me(c echo.Context) error {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		return jsonError(c, http.StatusUnauthorized, "Unauthorized")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user":     s.Account,
		"profile":  s.Profile,
		"is_admin": s.IsAdmin(),
	})
}

// UpdateProfile changes full_name and/or phone on both the account
// metadata and the profile row.  An empty phone clears it.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		return jsonError(c, http.StatusUnauthorized, "Unauthorized")
	}
	var req validate.ProfileInput
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid JSON body")
	}
	if err := validate.Profile(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	meta := s.Account.Metadata
	if req.FullName != nil {
		meta.FullName = req.FullName
	}
	if req.Phone != nil {
		meta.Phone = req.Phone
		if *req.Phone == "" {
			meta.Phone = nil
		}
	}
	if err := h.Accounts.UpdateMetadata(ctx, s.Account.ID, meta); err != nil {
		return internalError(c, "update metadata", err)
	}

	err := h.Profiles.UpdateContact(ctx, s.Account.ID, req.FullName, req.Phone)
	if err != nil && !errors.Is(err, repository.ErrProfileNotFound) {
		return internalError(c, "update profile", err)
	}
	profile, err := h.Profiles.GetByID(ctx, s.Account.ID)
	if err != nil {
		// no stored row yet: answer from the metadata just written
		s.Account.Metadata = meta
		profile = model.ProfileFromAccount(s.Account)
	}
	return c.JSON(http.StatusOK, echo.Map{"profile": profile})
}

// issue creates an access token and a stored refresh token.
func (h *AuthHandler) issue(ctx context.Context, accountID, email string) (authResp, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, accountID, email, h.Cfg.AccessTTLMin)
	if err != nil {
		return authResp{}, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return authResp{}, err
	}
	if err := h.Tokens.StoreRefresh(ctx, accountID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return authResp{}, err
	}
	return authResp{
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
	}, nil
}

// profileFor resolves the profile shown in token responses, falling back
// to the account metadata.
func (h *AuthHandler) profileFor(ctx context.Context, acc model.Account) model.User {
	if h.Sessions != nil {
		if s, err := h.Sessions.Resolve(ctx, acc.ID); err == nil {
			return s.Profile
		}
	}
	return model.ProfileFromAccount(acc)
}
