package proxy

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yaleims/api/internal/authz"
	"github.com/yaleims/api/internal/platform/httpx"
	"github.com/yaleims/api/internal/token"
	"github.com/yaleims/api/internal/users"
)

// Handler exposes the gated edge wrappers in front of downstream function
// endpoints. The role gate runs before anything is forwarded; the functions
// tier re-checks with the same predicate on arrival.
type Handler struct {
	logger *slog.Logger
	client *Client
	authz  authz.Middleware
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, client *Client, authz authz.Middleware) *Handler {
	return &Handler{logger: logger, client: client, authz: authz}
}

// MountRoutes registers the wrapper routes with their role requirements.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.authz.RequireAny(users.RoleUser, users.RoleCaptain, users.RoleCollegeRep, users.RoleAdmin, users.RoleDev))
		r.Post("/api/bets/place", h.forward(PlaceBet))
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.RequireAny(users.RoleCaptain, users.RoleCollegeRep, users.RoleAdmin, users.RoleDev))
		r.Post("/api/matches/score", h.forward(ScoreMatch))
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.RequireAny(users.RoleAdmin, users.RoleDev))
		r.Post("/api/admin/role", h.forward(SetRole))
	})
}

func (h *Handler) forward(endpoint Endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.client.Call(r.Context(), endpoint, token.FromRequest(r), r.Body)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.Status)
		_, _ = w.Write(resp.Body)
	}
}
