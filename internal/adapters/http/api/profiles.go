// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/meshrank/internal/domain/model"
)

// ProfilesHandler handles profile ingestion requests.
type ProfilesHandler struct {
	deps Dependencies
}

// NewProfilesHandler creates a new profiles handler.
func NewProfilesHandler(deps Dependencies) *ProfilesHandler {
	return &ProfilesHandler{deps: deps}
}

// profilesRequest mirrors the schema for POST /profiles.
type profilesRequest struct {
	Profiles []model.Profile `json:"profiles"`
}

func (p profilesRequest) validate() error {
	if len(p.Profiles) == 0 {
		return errors.New("profiles must not be empty")
	}
	for i := range p.Profiles {
		if p.Profiles[i].ProfileID == "" {
			return errors.New("every profile needs a profile_id")
		}
	}
	return nil
}

type ingestResponse struct {
	Status        string `json:"status"`
	Accepted      int    `json:"accepted"`
	PairsEnqueued int    `json:"pairs_enqueued"`
}

// HandlePostProfiles handles POST /profiles requests.
func (h *ProfilesHandler) HandlePostProfiles(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_profiles"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req profilesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	accepted, enqueued, err := h.deps.IngestProfiles(r.Context(), req.Profiles)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusAccepted, ingestResponse{
		Status:        "accepted",
		Accepted:      accepted,
		PairsEnqueued: enqueued,
	})
}
