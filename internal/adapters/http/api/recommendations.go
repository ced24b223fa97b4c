// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/meshrank/internal/domain/types"
)

// Query defaults for the ranking endpoints.
const (
	defaultTopN = 10
)

// RecommendationsHandler handles connection recommendation requests.
type RecommendationsHandler struct {
	deps    Dependencies
	maxTopN int
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps Dependencies, maxTopN int) *RecommendationsHandler {
	return &RecommendationsHandler{deps: deps, maxTopN: maxTopN}
}

type recommendationsResponse struct {
	UserID          string                 `json:"user_id"`
	Strategy        string                 `json:"strategy"`
	Count           int                    `json:"count"`
	Recommendations []types.Recommendation `json:"recommendations"`
}

// HandleGetRecommendations handles
// GET /recommendations/{user_id}?top_n=N&min_compatibility=F&strategy=S.
func (h *RecommendationsHandler) HandleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_recommendations"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	userID := strings.TrimPrefix(r.URL.Path, "/recommendations/")
	if userID == "" || strings.Contains(userID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	topN, ok := parseTopN(r, h.maxTopN)
	if !ok {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}
	minCompatibility, ok := parseFloatQuery(r, "min_compatibility", 0)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	strategy := r.URL.Query().Get("strategy")

	recs, err := h.deps.Recommend(r.Context(), userID, topN, minCompatibility, strategy)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if strategy == "" {
		strategy = "balanced"
	}
	writeJSON(w, http.StatusOK, recommendationsResponse{
		UserID:          userID,
		Strategy:        strategy,
		Count:           len(recs),
		Recommendations: recs,
	})
}

// parseTopN reads the top_n query parameter, applying the default and the
// configured cap. Returns false on malformed or out-of-range values.
func parseTopN(r *http.Request, maxTopN int) (int, bool) {
	raw := r.URL.Query().Get("top_n")
	if raw == "" {
		return defaultTopN, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	if maxTopN > 0 && n > maxTopN {
		return 0, false
	}
	return n, true
}

// parseFloatQuery reads an optional float query parameter.
func parseFloatQuery(r *http.Request, key string, fallback float64) (float64, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
