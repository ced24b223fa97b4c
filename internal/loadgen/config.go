package loadgen

import "time"

// Config holds configuration for a load run.
type Config struct {
	BaseURL     string        // Base URL of the service
	NumProfiles int           // Number of synthetic profiles to generate
	TopN        int           // Number of recommendations to fetch per user
	Strategy    string        // Ranking strategy to request
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	OutputFile  string        // Output file for generated profiles
	LogFile     string        // Log file for run output
	Verbose     bool          // Enable verbose logging
}

// Profile mirrors the ingestion schema of POST /profiles.
type Profile struct {
	ProfileID       string   `json:"profile_id"`
	Name            string   `json:"name"`
	Headline        string   `json:"headline"`
	About           string   `json:"about"`
	YearsExperience int      `json:"years_experience"`
	SeniorityLevel  string   `json:"seniority_level"`
	Industry        string   `json:"industry"`
	Location        string   `json:"location"`
	Connections     int      `json:"connections"`
	CurrentRole     string   `json:"current_role"`
	CurrentCompany  string   `json:"current_company"`
	JobCategory     string   `json:"job_category"`
	Skills          []string `json:"skills"`
	Needs           []string `json:"needs"`
	CanOffer        []string `json:"can_offer"`
}

// Recommendation mirrors one entry of the recommendations response.
type Recommendation struct {
	CandidateID        string  `json:"candidate_id"`
	RankingScore       float64 `json:"ranking_score"`
	CompatibilityScore float64 `json:"compatibility_score"`
}

// recommendationsResponse mirrors GET /recommendations/{user_id}.
type recommendationsResponse struct {
	UserID          string           `json:"user_id"`
	Count           int              `json:"count"`
	Recommendations []Recommendation `json:"recommendations"`
}

// ingestResponse mirrors the response of POST /profiles.
type ingestResponse struct {
	Status        string `json:"status"`
	Accepted      int    `json:"accepted"`
	PairsEnqueued int    `json:"pairs_enqueued"`
}

// statsResponse carries the fields of GET /stats the runner polls on.
type statsResponse struct {
	QueueLength int `json:"queueLength"`
	ScoredPairs int `json:"scoredPairs"`
}

// Stats holds run statistics.
type Stats struct {
	ProfilesGenerated    int
	ProfilesAccepted     int
	PairsEnqueued        int
	UsersQueried         int
	RecommendationsTotal int
	VerificationFailures int
	StartTime            time.Time
	EndTime              time.Time
	Duration             time.Duration
}
