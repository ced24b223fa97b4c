// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/okian/meshrank/internal/domain/recommend"
)

// EvaluateHandler handles single-pair evaluation requests.
type EvaluateHandler struct {
	deps Dependencies
}

// NewEvaluateHandler creates a new evaluate handler.
func NewEvaluateHandler(deps Dependencies) *EvaluateHandler {
	return &EvaluateHandler{deps: deps}
}

// HandleGetEvaluation handles GET /evaluate/{user_id}/{candidate_id}.
func (h *EvaluateHandler) HandleGetEvaluation(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_evaluation"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/evaluate/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	eval, err := h.deps.Evaluate(r.Context(), parts[0], parts[1])
	if err != nil {
		if errors.Is(err, recommend.ErrPairNotFound) || errors.Is(err, recommend.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, eval)
}
