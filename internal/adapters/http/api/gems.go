// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"

	"github.com/okian/meshrank/internal/domain/types"
)

// Fallback gem score floor when no floor is configured.
const defaultMinGemScore = 50.0

// GemsHandler handles hidden-gem discovery requests.
type GemsHandler struct {
	deps        Dependencies
	maxTopN     int
	minGemScore float64
}

// NewGemsHandler creates a new gems handler. minGemScore is the floor
// applied when the query omits min_gem_score.
func NewGemsHandler(deps Dependencies, maxTopN int, minGemScore float64) *GemsHandler {
	if minGemScore <= 0 {
		minGemScore = defaultMinGemScore
	}
	return &GemsHandler{deps: deps, maxTopN: maxTopN, minGemScore: minGemScore}
}

type gemsResponse struct {
	UserID string                    `json:"user_id"`
	Count  int                       `json:"count"`
	Gems   []types.GemRecommendation `json:"gems"`
}

// HandleGetGems handles GET /gems/{user_id}?top_n=N&min_gem_score=F.
func (h *GemsHandler) HandleGetGems(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_gems"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	userID := strings.TrimPrefix(r.URL.Path, "/gems/")
	if userID == "" || strings.Contains(userID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	topN, ok := parseTopN(r, h.maxTopN)
	if !ok {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}
	minGemScore, ok := parseFloatQuery(r, "min_gem_score", h.minGemScore)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	gems, err := h.deps.HiddenGems(r.Context(), userID, topN, minGemScore)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, gemsResponse{
		UserID: userID,
		Count:  len(gems),
		Gems:   gems,
	})
}
