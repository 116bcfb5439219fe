package authz

import (
	"log/slog"
	"net/http"

	"github.com/yaleims/api/internal/platform/httpx"
	"github.com/yaleims/api/internal/token"
)

// Middleware wires role checks for HTTP handlers on both tiers.
type Middleware struct {
	Logger *slog.Logger
}

// RequireAny ensures the request carries an authenticated principal whose
// capability set intersects the required roles. Missing principal answers
// 401; authenticated but ineligible answers 403.
func (m Middleware) RequireAny(roles ...string) func(http.Handler) http.Handler {
	normalized := normalizeRoles(roles)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := token.FromContext(r.Context())
			if claims == nil {
				httpx.Unauthorized(w)
				return
			}
			if !Authorize(claims, normalized) {
				if m.Logger != nil {
					m.Logger.Warn("role check failed",
						slog.String("netid", claims.NetID),
						slog.String("path", r.URL.Path))
				}
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
