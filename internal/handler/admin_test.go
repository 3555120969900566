package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-ticket-cms/internal/model"
)

func TestMakeAdmin(t *testing.T) {
	a := newTestApp(t)
	id, token := a.seedUser(t, "ann@example.com", model.RoleUser)

	assertError(t, a.do(t, http.MethodPost, "/api/debug/make-admin", "", map[string]any{}), http.StatusBadRequest, "User ID required")
	assertError(t, a.do(t, http.MethodPost, "/api/debug/make-admin", "", `{"userId":`), http.StatusBadRequest, "Invalid JSON body")
	assertError(t, a.do(t, http.MethodPost, "/api/debug/make-admin", "", map[string]any{"userId": "ghost"}), http.StatusNotFound, "User not found")

	rec := a.do(t, http.MethodPost, "/api/debug/make-admin", "", map[string]any{"userId": id})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User is now admin", body["message"])

	rec = a.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["is_admin"])
	assert.Equal(t, http.StatusOK, a.do(t, http.MethodGet, "/api/admin/movies", token, nil).Code)
}

func TestDebugAuth(t *testing.T) {
	a := newTestApp(t)
	id, token := a.seedUser(t, "ann@example.com", model.RoleUser)

	rec := a.do(t, http.MethodGet, "/api/debug/auth", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["authenticated"])

	rec = a.do(t, http.MethodGet, "/api/debug/auth", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, id, body["account_id"])
	assert.Equal(t, "stored", body["profile_source"])
	assert.Equal(t, false, body["is_admin"])
}

func TestAdminUsersList(t *testing.T) {
	a := newTestApp(t)
	_, admin := a.seedUser(t, "admin@example.com", model.RoleAdmin)
	_, user := a.seedUser(t, "ann@example.com", model.RoleUser)

	rec := a.do(t, http.MethodGet, "/api/admin/users", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["users"].([]any), 2)

	assertError(t, a.do(t, http.MethodGet, "/api/admin/users", user, nil), http.StatusForbidden, "Forbidden")
}

func TestAdminRoutesDenyNonAdmins(t *testing.T) {
	a := newTestApp(t)
	_, user := a.seedUser(t, "ann@example.com", model.RoleUser)
	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/admin/movies"},
		{http.MethodGet, "/api/admin/movies/stats"},
		{http.MethodPost, "/api/admin/movies"},
		{http.MethodGet, "/api/admin/movies/m1"},
		{http.MethodPut, "/api/admin/movies/m1"},
		{http.MethodDelete, "/api/admin/movies/m1"},
		{http.MethodGet, "/api/admin/users"},
	}
	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			body := map[string]any{"title": "Heat"}
			assertError(t, a.do(t, r.method, r.path, "", body), http.StatusUnauthorized, "Unauthorized")
			assertError(t, a.do(t, r.method, r.path, user, body), http.StatusForbidden, "Forbidden")
		})
	}
	assert.Empty(t, a.movies.rows)
}
