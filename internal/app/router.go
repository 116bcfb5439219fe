package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/yaleims/api/internal/auth"
	"github.com/yaleims/api/internal/authz"
	"github.com/yaleims/api/internal/observability"
	"github.com/yaleims/api/internal/proxy"
	"github.com/yaleims/api/internal/scoring"
	"github.com/yaleims/api/internal/token"
	"github.com/yaleims/api/internal/users"
)

// EdgeRouterParams groups dependencies for the edge-tier router.
type EdgeRouterParams struct {
	Logger       *slog.Logger
	Config       *Config
	Tokens       *token.Verifier
	AuthHandler  *auth.Handler
	ProxyHandler *proxy.Handler
	Metrics      *observability.Metrics
}

// NewEdgeRouter constructs the edge-tier router: auth endpoints plus the
// gated wrappers that forward privileged actions downstream.
func NewEdgeRouter(params EdgeRouterParams) http.Handler {
	r := chi.NewRouter()
	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Tokens:  params.Tokens,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}
	r.Use(chimw.Logger)

	mountHealth(r)
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	// Tighter limit on the CAS handshake; it is the only network-bound path.
	r.Group(func(r chi.Router) {
		r.Use(httprate.Limit(20, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		params.AuthHandler.MountRoutes(r)
	})
	params.ProxyHandler.MountRoutes(r)
	return r
}

// FunctionsRouterParams groups dependencies for the functions-tier router.
type FunctionsRouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	Tokens         *token.Verifier
	Authz          authz.Middleware
	UsersHandler   *users.Handler
	ScoringHandler *scoring.Handler
	Metrics        *observability.Metrics
}

// NewFunctionsRouter constructs the functions-tier router. Every privileged
// route sits behind the same authenticated-and-role-eligible gate the edge
// applies before forwarding.
func NewFunctionsRouter(params FunctionsRouterParams) http.Handler {
	r := chi.NewRouter()
	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Tokens:  params.Tokens,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}
	r.Use(chimw.Logger)

	mountHealth(r)
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(params.Authz.RequireAny(users.RoleAdmin, users.RoleDev))
		params.UsersHandler.MountRoutes(r)
	})
	r.Group(func(r chi.Router) {
		r.Use(params.Authz.RequireAny(users.RoleCaptain, users.RoleCollegeRep, users.RoleAdmin, users.RoleDev))
		r.Post("/api/matches/score", params.ScoringHandler.ScoreMatch)
	})
	r.Group(func(r chi.Router) {
		r.Use(params.Authz.RequireAny(users.RoleUser, users.RoleCaptain, users.RoleCollegeRep, users.RoleAdmin, users.RoleDev))
		r.Post("/api/bets/place", params.ScoringHandler.PlaceBet)
	})
	return r
}

func mountHealth(r chi.Router) {
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
}
