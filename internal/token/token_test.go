package token_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaleims/api/internal/shared"
	"github.com/yaleims/api/internal/token"
	_ "github.com/yaleims/api/testing"
)

const secret = "test-secret"

func mint(t *testing.T, ttl time.Duration) string {
	t.Helper()
	signed, err := token.NewIssuer(secret, ttl).Mint(token.Claims{
		NetID:  "abc123",
		Email:  "abc123@yale.edu",
		Role:   "user",
		MRoles: []string{"user"},
	})
	require.NoError(t, err)
	return signed
}

func TestMintAndVerifyRoundTrip(t *testing.T) {
	signed := mint(t, time.Hour)

	result, err := token.NewVerifier(secret).Verify(signed)
	require.NoError(t, err)
	require.True(t, result.LoggedIn)
	require.NotNil(t, result.Claims)
	assert.Equal(t, "abc123", result.Claims.NetID)
	assert.Equal(t, "abc123@yale.edu", result.Claims.Email)
	assert.Equal(t, []string{"user"}, result.Claims.MRoles)
	assert.False(t, result.Purge)
}

func TestVerifyAbsentTokenIsAnonymous(t *testing.T) {
	result, err := token.NewVerifier(secret).Verify("")
	require.NoError(t, err)
	assert.False(t, result.LoggedIn)
	assert.False(t, result.Purge, "nothing to purge when no token was presented")
}

func TestVerifyExpiredTokenPurges(t *testing.T) {
	signed := mint(t, -time.Minute)

	result, err := token.NewVerifier(secret).Verify(signed)
	require.NoError(t, err)
	assert.False(t, result.LoggedIn)
	assert.True(t, result.Purge)
}

func TestVerifyGarbagePurges(t *testing.T) {
	result, err := token.NewVerifier(secret).Verify("not-a-token")
	require.NoError(t, err)
	assert.False(t, result.LoggedIn)
	assert.True(t, result.Purge)
}

func TestVerifyWrongSecretPurges(t *testing.T) {
	signed := mint(t, time.Hour)

	result, err := token.NewVerifier("another-secret").Verify(signed)
	require.NoError(t, err)
	assert.False(t, result.LoggedIn)
	assert.True(t, result.Purge)
}

func TestVerifyRejectsMissingNetID(t *testing.T) {
	claims := token.Claims{Email: "abc123@yale.edu"}
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	result, err := token.NewVerifier(secret).Verify(signed)
	require.NoError(t, err)
	assert.False(t, result.LoggedIn)
	assert.True(t, result.Purge)
}

func TestVerifyRejectsUnsignedAlgorithm(t *testing.T) {
	claims := token.Claims{NetID: "abc123", Email: "abc123@yale.edu"}
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	signed, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	result, err := token.NewVerifier(secret).Verify(signed)
	require.NoError(t, err)
	assert.False(t, result.LoggedIn)
	assert.True(t, result.Purge)
}

func TestUnconfiguredSecretIsAServerFault(t *testing.T) {
	_, err := token.NewIssuer("", time.Hour).Mint(token.Claims{NetID: "abc123"})
	require.ErrorIs(t, err, shared.ErrConfiguration)

	_, err = token.NewVerifier("").Verify("anything")
	require.ErrorIs(t, err, shared.ErrConfiguration)
}

func TestFromRequestPrefersBearer(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: token.CookieName, Value: "from-cookie"})
	req.Header.Set("Authorization", "Bearer from-header")

	assert.Equal(t, "from-header", token.FromRequest(req))
}

func TestFromRequestFallsBackToCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: token.CookieName, Value: "from-cookie"})

	assert.Equal(t, "from-cookie", token.FromRequest(req))
}

func TestCookieAttributes(t *testing.T) {
	cookie := token.NewCookie("value", time.Hour)
	assert.Equal(t, "token", cookie.Name)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)

	cleared := token.ClearCookie()
	assert.Equal(t, "token", cleared.Name)
	assert.Equal(t, -1, cleared.MaxAge)
	assert.True(t, cleared.HttpOnly)
}
