package users_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaleims/api/internal/users"
	_ "github.com/yaleims/api/testing"
)

func slogDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRoleRouter(repo users.Repository) http.Handler {
	handler := users.NewHandler(slogDiscard(), users.NewService(repo, "yale.edu", nil))
	r := chi.NewRouter()
	handler.MountRoutes(r)
	return r
}

func postRole(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/role", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestSetRoleEndpointSuccess(t *testing.T) {
	repo := newMockRepository()
	repo.records["a@yale.edu"] = &users.User{NetID: "a", Email: "a@yale.edu", Role: users.RoleUser}

	res := postRole(t, newRoleRouter(repo), `{"email":"a@yale.edu","role":"captain","sport":"soccer"}`)

	require.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `{"success":true}`, res.Body.String())
	assert.Equal(t, []string{"soccer"}, repo.records["a@yale.edu"].TeamsCaptainOf)
}

func TestSetRoleEndpointCaptainWithoutSport(t *testing.T) {
	repo := newMockRepository()
	repo.records["a@yale.edu"] = &users.User{NetID: "a", Email: "a@yale.edu", Role: users.RoleUser}

	res := postRole(t, newRoleRouter(repo), `{"email":"a@yale.edu","role":"captain"}`)

	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestSetRoleEndpointUnknownTarget(t *testing.T) {
	res := postRole(t, newRoleRouter(newMockRepository()), `{"email":"ghost@yale.edu","role":"admin"}`)

	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestSetRoleEndpointMissingFields(t *testing.T) {
	router := newRoleRouter(newMockRepository())

	assert.Equal(t, http.StatusBadRequest, postRole(t, router, `{"role":"admin"}`).Code)
	assert.Equal(t, http.StatusBadRequest, postRole(t, router, `{"email":"a@yale.edu"}`).Code)
	assert.Equal(t, http.StatusBadRequest, postRole(t, router, `not json`).Code)
	assert.Equal(t, http.StatusBadRequest, postRole(t, router, `{"email":"not-an-email","role":"admin"}`).Code)
}

func TestSetRoleEndpointUnknownRole(t *testing.T) {
	repo := newMockRepository()
	repo.records["a@yale.edu"] = &users.User{NetID: "a", Email: "a@yale.edu"}

	res := postRole(t, newRoleRouter(repo), `{"email":"a@yale.edu","role":"emperor"}`)

	assert.Equal(t, http.StatusBadRequest, res.Code)
}
