package scoring

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/yaleims/api/internal/platform/httpx"
	"github.com/yaleims/api/internal/token"
)

// Handler wires the scoring and betting endpoints. Role gating is installed
// by the router; handlers only need the verified principal for attribution.
type Handler struct {
	logger    *slog.Logger
	repo      Repository
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, repo Repository) *Handler {
	return &Handler{logger: logger, repo: repo, validator: validator.New()}
}

type scoreRequest struct {
	MatchID   string `json:"matchId" validate:"required"`
	HomeScore *int   `json:"homeScore" validate:"required,gte=0"`
	AwayScore *int   `json:"awayScore" validate:"required,gte=0"`
}

// ScoreMatch records a final score against a match. The router gates it to
// scoring-eligible roles.
func (h *Handler) ScoreMatch(w http.ResponseWriter, r *http.Request) {
	claims := token.FromContext(r.Context())
	if claims == nil {
		httpx.Unauthorized(w)
		return
	}
	var req scoreRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := h.repo.RecordScore(r.Context(), req.MatchID, *req.HomeScore, *req.AwayScore, claims.NetID); err != nil {
		h.logger.Error("record score", slog.String("match", req.MatchID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

type betRequest struct {
	MatchID string `json:"matchId" validate:"required"`
	Pick    string `json:"pick" validate:"required,oneof=home away draw"`
}

// PlaceBet appends the caller's wager to a match. Any signed-in role may
// bet; the router installs that gate.
func (h *Handler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	claims := token.FromContext(r.Context())
	if claims == nil {
		httpx.Unauthorized(w)
		return
	}
	var req betRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := h.repo.AddBettor(r.Context(), req.MatchID, Bettor{NetID: claims.NetID, Pick: req.Pick}); err != nil {
		h.logger.Error("place bet", slog.String("match", req.MatchID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
