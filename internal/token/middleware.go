package token

import (
	"log/slog"
	"net/http"

	"github.com/yaleims/api/internal/platform/httpx"
)

// Middleware resolves the request's principal before any handler runs.
// Anonymous requests pass through untouched; authorization is decided
// further down the chain. Dead tokens are purged so the browser stops
// resending them.
func (v *Verifier) Middleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result, err := v.Verify(FromRequest(r))
			if err != nil {
				if logger != nil {
					logger.Error("token verification unavailable", slog.Any("error", err))
				}
				httpx.RespondError(w, err)
				return
			}
			if result.Purge {
				http.SetCookie(w, ClearCookie())
			}
			if result.LoggedIn {
				r = r.WithContext(ContextWithClaims(r.Context(), result.Claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}
