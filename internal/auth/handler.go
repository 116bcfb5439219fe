// Package auth serves the edge-tier authentication endpoints: the CAS login
// redirect, the callback that exchanges a ticket for a session cookie, and
// the verify/logout pair the frontend polls.
package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yaleims/api/internal/cas"
	"github.com/yaleims/api/internal/observability"
	"github.com/yaleims/api/internal/platform/httpx"
	"github.com/yaleims/api/internal/token"
	"github.com/yaleims/api/internal/users"
)

// Handler wires HTTP endpoints for the authentication flow.
type Handler struct {
	logger    *slog.Logger
	users     *users.Service
	sso       cas.Verifier
	issuer    *token.Issuer
	tokens    *token.Verifier
	endpoints cas.Endpoints
	ttl       time.Duration
	metrics   *observability.Metrics
}

// NewHandler constructs a Handler instance. metrics may be nil in tests.
func NewHandler(logger *slog.Logger, userService *users.Service, sso cas.Verifier, issuer *token.Issuer, tokens *token.Verifier, endpoints cas.Endpoints, ttl time.Duration, metrics *observability.Metrics) *Handler {
	return &Handler{
		logger:    logger,
		users:     userService,
		sso:       sso,
		issuer:    issuer,
		tokens:    tokens,
		endpoints: endpoints,
		ttl:       ttl,
		metrics:   metrics,
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/api/auth/login", h.login)
	r.Get("/api/auth/redirect", h.callback)
	r.Get("/api/auth/verify", h.verify)
	r.Get("/api/auth/logout", h.logout)
}

// login sends the browser to the CAS login page with our callback as the
// service parameter.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	from := sanitizeFrom(r.URL.Query().Get("from"))
	http.Redirect(w, r, h.endpoints.LoginURL(from), http.StatusFound)
}

// callback is the only place session cookies are created. It validates the
// CAS ticket, provisions the role store record on first login, mints the
// claims snapshot and sends the browser back where it started.
func (h *Handler) callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from := sanitizeFrom(query.Get("from"))
	serviceURL := h.endpoints.ServiceURL(from)

	identity, err := h.sso.Verify(r.Context(), query.Get("ticket"), serviceURL)
	if err != nil {
		if errors.Is(err, cas.ErrNoTicket) {
			http.Redirect(w, r, h.endpoints.LoginURL(from), http.StatusFound)
			return
		}
		h.logger.Warn("cas ticket validation failed", slog.Any("error", err))
		h.metrics.ObserveLogin("invalid_ticket")
		httpx.Problem(w, http.StatusUnauthorized, "Authentication Failed", "ticket was not accepted")
		return
	}

	user, err := h.users.EnsureUser(r.Context(), identity.NetID)
	if err != nil {
		h.logger.Error("ensure user", slog.String("netid", identity.NetID), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	signed, err := h.issuer.Mint(token.Claims{
		NetID:         user.NetID,
		Email:         user.Email,
		Role:          user.Role,
		MRoles:        user.MRoles,
		Username:      user.Username,
		College:       user.College,
		Points:        user.Points,
		MatchesPlayed: user.MatchesPlayed,
	})
	if err != nil {
		h.logger.Error("mint token", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	h.metrics.ObserveLogin("success")
	http.SetCookie(w, token.NewCookie(signed, h.ttl))
	http.Redirect(w, r, from, http.StatusFound)
}

type verifiedUser struct {
	NetID string `json:"netid"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

type verifyResponse struct {
	IsLoggedIn bool          `json:"isLoggedIn"`
	User       *verifiedUser `json:"user,omitempty"`
}

// verify reports the session state. A missing or dead cookie is a normal
// logged-out answer, never an error; only a missing signing secret is.
func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	result, err := h.tokens.Verify(token.FromRequest(r))
	if err != nil {
		h.logger.Error("verify session", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if result.Purge {
		http.SetCookie(w, token.ClearCookie())
	}
	if !result.LoggedIn {
		httpx.JSON(w, http.StatusOK, verifyResponse{IsLoggedIn: false})
		return
	}
	httpx.JSON(w, http.StatusOK, verifyResponse{
		IsLoggedIn: true,
		User: &verifiedUser{
			NetID: result.Claims.NetID,
			Email: result.Claims.Email,
			Role:  result.Claims.Role,
		},
	})
}

// logout clears the cookie and returns to the app root. The token itself
// stays valid until expiry; there is no server-side revocation.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, token.ClearCookie())
	http.Redirect(w, r, "/", http.StatusFound)
}

// sanitizeFrom keeps redirects on our own origin. Anything that is not a
// plain absolute path collapses to the root.
func sanitizeFrom(from string) string {
	if from == "" || !strings.HasPrefix(from, "/") || strings.HasPrefix(from, "//") {
		return "/"
	}
	return from
}
