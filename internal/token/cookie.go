package token

import (
	"net/http"
	"strings"
	"time"
)

// CookieName is the single cookie carrying the session token.
const CookieName = "token"

// NewCookie builds the session cookie. Only the session issuance path
// should call this.
func NewCookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearCookie builds a deletion cookie with the same attributes, so the
// browser actually drops the credential.
func ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}

// FromRequest extracts the raw token from a request. The functions tier is
// called with a bearer header carrying the cookie's value; the edge tier
// reads the cookie itself. Bearer wins when both are present.
func FromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if rest, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(rest)
		}
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}
