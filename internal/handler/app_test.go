package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/movie-ticket-cms/internal/config"
	"github.com/iliyamo/movie-ticket-cms/internal/middleware"
	"github.com/iliyamo/movie-ticket-cms/internal/model"
	"github.com/iliyamo/movie-ticket-cms/internal/service"
	"github.com/iliyamo/movie-ticket-cms/internal/utils"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testApp struct {
	e        *echo.Echo
	movies   *memMovies
	accounts *memAccounts
	profiles *memProfiles
	tokens   *memTokens
	events   *recordingPublisher
	purges   int
}

// newTestApp wires the handlers onto echo the same way the router does.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	a := &testApp{
		e:        echo.New(),
		movies:   newMemMovies(),
		accounts: newMemAccounts(),
		profiles: newMemProfiles(),
		tokens:   newMemTokens(),
		events:   &recordingPublisher{},
	}
	cfg := config.AuthConfig{JWTSecret: testSecret, AccessTTLMin: 15, RefreshTTLDays: 7, BcryptCost: bcrypt.MinCost}
	sessions := service.NewSessionResolver(a.accounts, a.profiles)
	purge := func(context.Context) error { a.purges++; return nil }

	mh := NewMovieHandler(a.movies, a.events, purge)
	uh := &UsersHandler{Profiles: a.profiles}
	ah := NewAuthHandler(cfg, a.accounts, a.profiles, a.tokens, sessions)
	ph := &PublicHandler{Movies: a.movies}
	dh := &DebugHandler{Profiles: a.profiles, Sessions: sessions}

	admin := a.e.Group("/api/admin", middleware.JWTAuth(testSecret), middleware.RequireSession(sessions), middleware.RequireAdmin())
	admin.GET("/movies", mh.List)
	admin.GET("/movies/stats", mh.Stats)
	admin.POST("/movies", mh.Create)
	admin.GET("/movies/:id", mh.Get)
	admin.PUT("/movies/:id", mh.Update)
	admin.DELETE("/movies/:id", mh.Delete)
	admin.GET("/users", uh.List)

	session := []echo.MiddlewareFunc{middleware.JWTAuth(testSecret), middleware.RequireSession(sessions)}
	auth := a.e.Group("/api/auth")
	auth.POST("/sign-up", ah.SignUp)
	auth.POST("/sign-in", ah.SignIn)
	auth.POST("/refresh", ah.Refresh)
	auth.POST("/sign-out", ah.SignOut, middleware.OptionalJWT(testSecret))
	auth.GET("/me", ah.Me, session...)
	auth.PUT("/profile", ah.UpdateProfile, session...)

	a.e.GET("/api/movies/latest", ph.Latest)

	debug := a.e.Group("/api/debug", middleware.OptionalJWT(testSecret))
	debug.POST("/make-admin", dh.MakeAdmin)
	debug.GET("/auth", dh.Auth)
	return a
}

// do sends body (a string is sent verbatim, anything else as JSON).
func (a *testApp) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// seedUser stores an account plus profile with the given role and returns
// the account id and an access token.
func (a *testApp) seedUser(t *testing.T, email string, role model.Role) (string, string) {
	t.Helper()
	ctx := context.Background()
	acc, err := a.accounts.Create(ctx, email, "secret1", model.Metadata{Role: model.RoleUser}, bcrypt.MinCost)
	require.NoError(t, err)
	_, err = a.profiles.Create(ctx, model.User{ID: acc.ID, Email: acc.Email, Role: role})
	require.NoError(t, err)
	at, err := utils.NewAccessToken(testSecret, acc.ID, acc.Email, 15)
	require.NoError(t, err)
	return acc.ID, at.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	require.Equal(t, msg, decode(t, rec)["error"])
}

