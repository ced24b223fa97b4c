// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/meshrank/internal/domain/model"
	"github.com/okian/meshrank/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// IngestProfiles normalizes and stores a batch of profiles and
	// triggers a corpus rescoring pass. Returns accepted profile count
	// and enqueued pair count.
	IngestProfiles(ctx context.Context, batch []model.Profile) (int, int, error)

	// PredictScore scores an externally supplied feature vector.
	PredictScore(ctx context.Context, fv model.FeatureVector) (float64, error)

	// ScoreFeatures scores two ad-hoc profiles without touching the
	// stores, returning the full feature vector.
	ScoreFeatures(ctx context.Context, user, target model.Profile) (model.FeatureVector, error)

	// Read operations expose precomputed rankings.
	Recommend(ctx context.Context, userID string, topN int, minCompatibility float64, strategy string) ([]types.Recommendation, error)
	HiddenGems(ctx context.Context, userID string, topN int, minGemScore float64) ([]types.GemRecommendation, error)
	Evaluate(ctx context.Context, userID, candidateID string) (types.Evaluation, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler          *HealthHandler
	statsHandler           *StatsHandler
	profilesHandler        *ProfilesHandler
	compatibilityHandler   *CompatibilityHandler
	recommendationsHandler *RecommendationsHandler
	gemsHandler            *GemsHandler
	evaluateHandler        *EvaluateHandler
}

// NewServer creates a new API server with all handlers. minGemScore is
// the configured gem floor used when queries omit min_gem_score.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxTopN int, minGemScore float64) *Server {
	return &Server{
		healthHandler:          NewHealthHandler(),
		statsHandler:           NewStatsHandler(statsProvider),
		profilesHandler:        NewProfilesHandler(deps),
		compatibilityHandler:   NewCompatibilityHandler(deps),
		recommendationsHandler: NewRecommendationsHandler(deps, maxTopN),
		gemsHandler:            NewGemsHandler(deps, maxTopN, minGemScore),
		evaluateHandler:        NewEvaluateHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/profiles", MetricsMiddleware(s.profilesHandler.HandlePostProfiles, "profiles"))
	mux.HandleFunc("/compatibility", MetricsMiddleware(s.compatibilityHandler.HandleScore, "compatibility"))
	mux.HandleFunc("/batch-score", MetricsMiddleware(s.compatibilityHandler.HandleBatchScore, "batch_score"))
	mux.HandleFunc("/score-pair", MetricsMiddleware(s.compatibilityHandler.HandleScorePair, "score_pair"))
	mux.HandleFunc("/recommendations/", MetricsMiddleware(s.recommendationsHandler.HandleGetRecommendations, "recommendations"))
	mux.HandleFunc("/gems/", MetricsMiddleware(s.gemsHandler.HandleGetGems, "gems"))
	mux.HandleFunc("/evaluate/", MetricsMiddleware(s.evaluateHandler.HandleGetEvaluation, "evaluate"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
