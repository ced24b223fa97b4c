package model

// ScoreJob is one unit of pair-scoring work: compute the feature vector
// for the ordered (user, candidate) pair. JobID is assigned at enqueue
// time and used for tracing.
type ScoreJob struct {
	JobID       string `json:"job_id"`
	UserID      string `json:"user_id"`
	CandidateID string `json:"candidate_id"`
}
