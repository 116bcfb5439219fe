package authz_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaleims/api/internal/authz"
	"github.com/yaleims/api/internal/token"
	_ "github.com/yaleims/api/testing"
)

func TestAuthorize(t *testing.T) {
	cases := []struct {
		name     string
		granted  []string
		required []string
		want     bool
	}{
		{"single overlap", []string{"user"}, []string{"user"}, true},
		{"superset claims", []string{"user", "captain"}, []string{"captain", "admin"}, true},
		{"no overlap", []string{"user"}, []string{"admin", "dev"}, false},
		{"empty granted", nil, []string{"user"}, false},
		{"empty required denies", []string{"admin"}, nil, false},
		{"both empty denies", nil, nil, false},
		{"case insensitive granted", []string{"Admin"}, []string{"admin"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			claims := &token.Claims{NetID: "abc123", MRoles: tc.granted}
			assert.Equal(t, tc.want, authz.Authorize(claims, tc.required))
		})
	}
}

func TestAuthorizeNilClaimsDenies(t *testing.T) {
	assert.False(t, authz.Authorize(nil, []string{"user"}))
}

func protectedHandler(t *testing.T, roles ...string) http.Handler {
	t.Helper()
	mw := authz.Middleware{}
	return mw.RequireAny(roles...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestRequireAnyWithoutPrincipalAnswers401(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	res := httptest.NewRecorder()

	protectedHandler(t, "admin").ServeHTTP(res, req)

	require.Equal(t, http.StatusUnauthorized, res.Code)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, res.Body.String())
}

func TestRequireAnyWithIneligibleRoleAnswers403(t *testing.T) {
	claims := &token.Claims{NetID: "abc123", MRoles: []string{"user"}}
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req = req.WithContext(token.ContextWithClaims(req.Context(), claims))
	res := httptest.NewRecorder()

	protectedHandler(t, "admin", "dev").ServeHTTP(res, req)

	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestRequireAnyPassesEligibleRole(t *testing.T) {
	claims := &token.Claims{NetID: "abc123", MRoles: []string{"user", "captain"}}
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req = req.WithContext(token.ContextWithClaims(req.Context(), claims))
	res := httptest.NewRecorder()

	protectedHandler(t, "captain").ServeHTTP(res, req)

	assert.Equal(t, http.StatusNoContent, res.Code)
}

func TestRequireAnyWithNoRequirementDenies(t *testing.T) {
	claims := &token.Claims{NetID: "abc123", MRoles: []string{"admin"}}
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req = req.WithContext(token.ContextWithClaims(req.Context(), claims))
	res := httptest.NewRecorder()

	protectedHandler(t).ServeHTTP(res, req)

	assert.Equal(t, http.StatusForbidden, res.Code)
}
