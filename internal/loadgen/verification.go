package loadgen

import (
	"context"
	"fmt"

	"github.com/okian/meshrank/pkg/logger"
)

// Score bounds every returned recommendation must respect.
const (
	minScore = 0.0
	maxScore = 100.0
)

// verifyResults checks the returned recommendation lists against the
// service's ordering and range guarantees.
func verifyResults(ctx context.Context, config *Config, results map[string][]Recommendation, stats *Stats) error {
	logger.Get().Info(ctx, "verifying recommendation invariants", logger.Int("users", len(results)))

	failures := 0
	for userID, recs := range results {
		if err := verifyUser(userID, recs, config.TopN); err != nil {
			failures++
			logger.Get().Warn(ctx, "verification failure", logger.String("userID", userID), logger.Error(err))
		}
	}

	stats.VerificationFailures = failures
	if failures > 0 {
		return fmt.Errorf("%d of %d users failed verification", failures, len(results))
	}
	logger.Get().Info(ctx, "all recommendation invariants hold")
	return nil
}

// verifyUser checks one user's list: size cap, descending ranking order,
// score bounds, no self-recommendation.
func verifyUser(userID string, recs []Recommendation, topN int) error {
	if len(recs) > topN {
		return fmt.Errorf("got %d recommendations, cap is %d", len(recs), topN)
	}
	for i, rec := range recs {
		if rec.CandidateID == userID {
			return fmt.Errorf("entry %d recommends the user to themselves", i)
		}
		if rec.CompatibilityScore < minScore || rec.CompatibilityScore > maxScore {
			return fmt.Errorf("entry %d compatibility score %.3f out of bounds", i, rec.CompatibilityScore)
		}
		if i > 0 && recs[i].RankingScore > recs[i-1].RankingScore {
			return fmt.Errorf("entry %d ranked above entry %d despite lower position", i, i-1)
		}
	}
	return nil
}
