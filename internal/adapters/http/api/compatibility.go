// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/meshrank/internal/domain/model"
)

// Score bands for the standalone scoring endpoints.
const (
	highlyRecommendedScore = 80.0
	recommendedScore       = 60.0
	considerScore          = 40.0

	strongFactorScore   = 70.0
	networkFactorScore  = 60.0
	locationFactorScore = 80.0

	maxFeatureValue = 100.0
	maxGapYears     = 60
)

// CompatibilityHandler handles standalone feature scoring requests.
type CompatibilityHandler struct {
	deps Dependencies
}

// NewCompatibilityHandler creates a new compatibility handler.
func NewCompatibilityHandler(deps Dependencies) *CompatibilityHandler {
	return &CompatibilityHandler{deps: deps}
}

// scoreRequest mirrors the schema for POST /compatibility: the base
// sub-scores of one ordered pair.
type scoreRequest struct {
	SkillMatch           float64 `json:"skill_match_score"`
	SkillComplementarity float64 `json:"skill_complementarity_score"`
	NetworkValueAToB     float64 `json:"network_value_a_to_b"`
	NetworkValueBToA     float64 `json:"network_value_b_to_a"`
	CareerAlignment      float64 `json:"career_alignment_score"`
	ExperienceGap        int     `json:"experience_gap"`
	IndustryMatch        float64 `json:"industry_match"`
	GeographicScore      float64 `json:"geographic_score"`
	SeniorityMatch       float64 `json:"seniority_match"`
}

func (s scoreRequest) validate() error {
	ranged := map[string]float64{
		"skill_match_score":           s.SkillMatch,
		"skill_complementarity_score": s.SkillComplementarity,
		"network_value_a_to_b":        s.NetworkValueAToB,
		"network_value_b_to_a":        s.NetworkValueBToA,
		"career_alignment_score":      s.CareerAlignment,
		"industry_match":              s.IndustryMatch,
		"geographic_score":            s.GeographicScore,
		"seniority_match":             s.SeniorityMatch,
	}
	for name, v := range ranged {
		if v < 0 || v > maxFeatureValue {
			return fmt.Errorf("%s must be in [0,100], got %v", name, v)
		}
	}
	if s.ExperienceGap < 0 || s.ExperienceGap > maxGapYears {
		return fmt.Errorf("experience_gap must be in [0,%d], got %d", maxGapYears, s.ExperienceGap)
	}
	return nil
}

// vector converts the request into the internal feature vector shape.
func (s scoreRequest) vector() model.FeatureVector {
	return model.FeatureVector{
		SkillMatch:           s.SkillMatch,
		SkillComplementarity: s.SkillComplementarity,
		NetworkValueAToB:     s.NetworkValueAToB,
		NetworkValueBToA:     s.NetworkValueBToA,
		CareerAlignment:      s.CareerAlignment,
		ExperienceGap:        s.ExperienceGap,
		IndustryMatch:        s.IndustryMatch,
		GeographicScore:      s.GeographicScore,
		SeniorityMatch:       s.SeniorityMatch,
	}
}

type scoreResponse struct {
	CompatibilityScore float64 `json:"compatibility_score"`
	Recommendation     string  `json:"recommendation"`
	Explanation        string  `json:"explanation"`
}

// HandleScore handles POST /compatibility requests.
func (h *CompatibilityHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_compatibility"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	score, err := h.deps.PredictScore(r.Context(), req.vector())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, scoreResponse{
		CompatibilityScore: score,
		Recommendation:     scoreRecommendation(score),
		Explanation:        scoreExplanation(req),
	})
}

// scorePairRequest mirrors the schema for POST /score-pair: two full
// profiles scored directly, without ingesting them.
type scorePairRequest struct {
	ProfileA model.Profile `json:"profile_a"`
	ProfileB model.Profile `json:"profile_b"`
}

func (s scorePairRequest) validate() error {
	if strings.TrimSpace(s.ProfileA.ProfileID) == "" || strings.TrimSpace(s.ProfileB.ProfileID) == "" {
		return fmt.Errorf("both profiles need a profile_id")
	}
	return nil
}

// HandleScorePair handles POST /score-pair requests.
func (h *CompatibilityHandler) HandleScorePair(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_score_pair"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req scorePairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	fv, err := h.deps.ScoreFeatures(r.Context(), req.ProfileA, req.ProfileB)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, fv)
}

// batchScoreRequest mirrors the schema for POST /batch-score.
type batchScoreRequest struct {
	Pairs []batchPair `json:"pairs"`
}

type batchPair struct {
	PairID string `json:"pair_id"`
	scoreRequest
}

type batchPairResult struct {
	PairID             string  `json:"pair_id"`
	CompatibilityScore float64 `json:"compatibility_score"`
	Recommendation     string  `json:"recommendation"`
}

type batchScoreResponse struct {
	Results []batchPairResult `json:"results"`
	Count   int               `json:"count"`
}

// HandleBatchScore handles POST /batch-score requests.
func (h *CompatibilityHandler) HandleBatchScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_batch_score"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req batchScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if len(req.Pairs) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	results := make([]batchPairResult, 0, len(req.Pairs))
	for i := range req.Pairs {
		pair := &req.Pairs[i]
		if err := pair.validate(); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if strings.TrimSpace(pair.PairID) == "" {
			pair.PairID = uuid.NewString()
		}
		score, err := h.deps.PredictScore(r.Context(), pair.vector())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
			return
		}
		results = append(results, batchPairResult{
			PairID:             pair.PairID,
			CompatibilityScore: score,
			Recommendation:     scoreRecommendation(score),
		})
	}
	writeJSON(w, http.StatusOK, batchScoreResponse{Results: results, Count: len(results)})
}

// scoreRecommendation bands a score into a human-readable verdict.
func scoreRecommendation(score float64) string {
	switch {
	case score >= highlyRecommendedScore:
		return "Highly Recommended - Excellent mutual benefit potential"
	case score >= recommendedScore:
		return "Recommended - Good compatibility"
	case score >= considerScore:
		return "Consider - Moderate compatibility"
	default:
		return "Not Recommended - Limited mutual benefit"
	}
}

// scoreExplanation names the dominant factors behind a score.
func scoreExplanation(req scoreRequest) string {
	factors := []string{}
	if req.SkillComplementarity > strongFactorScore {
		factors = append(factors, "Strong skill complementarity")
	}
	if req.CareerAlignment > strongFactorScore {
		factors = append(factors, "Good career stage alignment")
	}
	if req.NetworkValueAToB > networkFactorScore || req.NetworkValueBToA > networkFactorScore {
		factors = append(factors, "Valuable network connections")
	}
	if req.IndustryMatch > locationFactorScore {
		factors = append(factors, "Same industry")
	}
	if req.GeographicScore > locationFactorScore {
		factors = append(factors, "Geographic proximity")
	}
	if len(factors) == 0 {
		return "Limited mutual benefit factors"
	}
	return strings.Join(factors, " | ")
}
