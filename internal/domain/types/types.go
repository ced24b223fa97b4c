// Package types contains common types used across the application
package types

import "github.com/okian/meshrank/internal/domain/model"

// Recommendation is one ranked candidate returned to a user.
type Recommendation struct {
	CandidateID            string               `json:"candidate_id"`
	RankingScore           float64              `json:"ranking_score"`
	CompatibilityScore     float64              `json:"compatibility_score"`
	JobOpportunityScore    float64              `json:"predicted_job_opportunity_score"`
	MentorshipValueScore   float64              `json:"predicted_mentorship_value"`
	CollaborationPotential float64              `json:"predicted_collaboration_potential"`
	ROITimeframe           model.ROITimeframe   `json:"roi_timeframe"`
	Candidate              model.ProfileSummary `json:"candidate"`
}

// GemRecommendation is one hidden-gem candidate returned to a user.
type GemRecommendation struct {
	CandidateID        string               `json:"candidate_id"`
	GemScore           float64              `json:"gem_score"`
	GemType            string               `json:"gem_type"`
	GemReason          string               `json:"gem_reason"`
	CompatibilityScore float64              `json:"compatibility_score"`
	Candidate          model.ProfileSummary `json:"candidate"`
}

// ROIBlock groups the predicted return metrics of a single evaluation.
type ROIBlock struct {
	JobOpportunity         float64            `json:"job_opportunity"`
	MentorshipValue        float64            `json:"mentorship_value"`
	CollaborationPotential float64            `json:"collaboration_potential"`
	ExpectedTimeframe      model.ROITimeframe `json:"expected_timeframe"`
}

// RedFlagBlock summarizes the candidate's red-flag signals in an evaluation.
type RedFlagBlock struct {
	HasRedFlags  bool    `json:"has_red_flags"`
	RedFlagScore float64 `json:"red_flag_score"`
	Reasons      string  `json:"reasons"`
}

// GemBlock summarizes the candidate's hidden-gem signals in an evaluation.
type GemBlock struct {
	IsGem    bool    `json:"is_gem"`
	GemScore float64 `json:"gem_score"`
	GemType  string  `json:"gem_type"`
}

// Evaluation is the full structured answer for a single (user, candidate)
// pair.
type Evaluation struct {
	CompatibilityScore float64              `json:"compatibility_score"`
	Verdict            string               `json:"recommendation"`
	ROI                ROIBlock             `json:"roi_metrics"`
	Candidate          model.ProfileSummary `json:"candidate_info"`
	RedFlags           RedFlagBlock         `json:"red_flags"`
	HiddenGem          GemBlock             `json:"hidden_gem"`
	Explanation        string               `json:"explanation"`
}
