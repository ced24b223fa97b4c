// Package recommend filters and ranks candidate connections for a user
// from precomputed pair scores and per-profile detector outputs.
package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/okian/meshrank/internal/domain/model"
	"github.com/okian/meshrank/internal/domain/types"
)

// Defaults for filtering and ranking.
const (
	defaultRedFlagThreshold = 50.0
	defaultTopN             = 10
	connectVerdictScore     = 70.0
	considerVerdictScore    = 50.0
	redFlagBlockThreshold   = 50.0
	gemBlockThreshold       = 70.0
)

// Strategy names a weighting scheme used to order candidates.
type Strategy string

// Supported ranking strategies.
const (
	StrategyBalanced      Strategy = "balanced"
	StrategyCompatibility Strategy = "compatibility"
	StrategyROI           Strategy = "roi"
	StrategyMentorship    Strategy = "mentorship"
	StrategyCollaboration Strategy = "collaboration"
)

// ParseStrategy normalizes a strategy name; anything unknown degrades to
// balanced.
func ParseStrategy(raw string) Strategy {
	switch Strategy(raw) {
	case StrategyCompatibility, StrategyROI, StrategyMentorship, StrategyCollaboration:
		return Strategy(raw)
	default:
		return StrategyBalanced
	}
}

// PairSource exposes precomputed feature vectors. PairsFor must return
// pairs in stable insertion order so ranking ties break deterministically.
type PairSource interface {
	PairsFor(ctx context.Context, userID string) ([]model.FeatureVector, error)
	Pair(ctx context.Context, userID, candidateID string) (model.FeatureVector, error)
}

// ProfileSource exposes profiles with their derived detector scores.
type ProfileSource interface {
	Profile(ctx context.Context, id string) (*model.Profile, error)
}

// Option applies a configuration option to the Recommender.
type Option func(*Recommender)

// WithRedFlagThreshold sets the red-flag score above which candidates are
// dropped.
func WithRedFlagThreshold(threshold float64) Option {
	return func(r *Recommender) {
		if threshold > 0 {
			r.redFlagThreshold = threshold
		}
	}
}

// WithoutRedFlagFilter disables red-flag filtering entirely.
func WithoutRedFlagFilter() Option {
	return func(r *Recommender) {
		r.filterRedFlags = false
	}
}

// Recommender ranks candidates for users. It holds no mutable state of
// its own; all data comes from the pair and profile sources.
type Recommender struct {
	pairs    PairSource
	profiles ProfileSource

	filterRedFlags   bool
	redFlagThreshold float64
}

// New creates a Recommender over the given sources.
func New(pairs PairSource, profiles ProfileSource, opts ...Option) *Recommender {
	r := &Recommender{
		pairs:            pairs,
		profiles:         profiles,
		filterRedFlags:   true,
		redFlagThreshold: defaultRedFlagThreshold,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recommend returns the top candidates for a user, ordered by ranking
// score descending. A user with no scored pairs gets an empty list, not an
// error.
func (r *Recommender) Recommend(ctx context.Context, userID string, topN int, minCompatibility float64, strategy Strategy) ([]types.Recommendation, error) {
	if topN <= 0 {
		topN = defaultTopN
	}

	pairs, err := r.pairs.PairsFor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load pairs for %s: %w", userID, err)
	}

	recs := make([]types.Recommendation, 0, len(pairs))
	for i := range pairs {
		fv := &pairs[i]
		if fv.CompatibilityScore < minCompatibility {
			continue
		}
		candidate, err := r.profiles.Profile(ctx, fv.TargetID)
		if err != nil {
			continue
		}
		if r.filterRedFlags && candidate.Scores.RedFlagScore > r.redFlagThreshold {
			continue
		}
		recs = append(recs, types.Recommendation{
			CandidateID:            fv.TargetID,
			RankingScore:           rankingScore(fv, strategy),
			CompatibilityScore:     fv.CompatibilityScore,
			JobOpportunityScore:    fv.JobOpportunityScore,
			MentorshipValueScore:   fv.MentorshipValueScore,
			CollaborationPotential: fv.CollaborationPotential,
			ROITimeframe:           fv.ROITimeframe,
			Candidate:              candidate.Summary(),
		})
	}

	// Stable sort keeps insertion order on ties.
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].RankingScore > recs[j].RankingScore
	})

	if len(recs) > topN {
		recs = recs[:topN]
	}
	return recs, nil
}

// rankingScore applies the strategy's weighting scheme.
func rankingScore(fv *model.FeatureVector, strategy Strategy) float64 {
	switch strategy {
	case StrategyROI:
		return fv.CompatibilityScore*0.4 +
			fv.JobOpportunityScore*0.25 +
			fv.MentorshipValueScore*0.2 +
			fv.CollaborationPotential*0.15
	case StrategyMentorship:
		return fv.MentorshipValueScore*0.6 + fv.CompatibilityScore*0.4
	case StrategyCollaboration:
		return fv.CollaborationPotential*0.6 + fv.CompatibilityScore*0.4
	case StrategyCompatibility, StrategyBalanced:
		return fv.CompatibilityScore
	default:
		return fv.CompatibilityScore
	}
}

// HiddenGems ranks candidates by gem score instead of compatibility.
func (r *Recommender) HiddenGems(ctx context.Context, userID string, topN int, minGemScore float64) ([]types.GemRecommendation, error) {
	if topN <= 0 {
		topN = defaultTopN
	}

	pairs, err := r.pairs.PairsFor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load pairs for %s: %w", userID, err)
	}

	gems := make([]types.GemRecommendation, 0)
	for i := range pairs {
		fv := &pairs[i]
		candidate, err := r.profiles.Profile(ctx, fv.TargetID)
		if err != nil {
			continue
		}
		if candidate.Scores.GemScore < minGemScore {
			continue
		}
		gems = append(gems, types.GemRecommendation{
			CandidateID:        fv.TargetID,
			GemScore:           candidate.Scores.GemScore,
			GemType:            candidate.Scores.GemType,
			GemReason:          candidate.Scores.GemReason,
			CompatibilityScore: fv.CompatibilityScore,
			Candidate:          candidate.Summary(),
		})
	}

	sort.SliceStable(gems, func(i, j int) bool {
		return gems[i].GemScore > gems[j].GemScore
	})

	if len(gems) > topN {
		gems = gems[:topN]
	}
	return gems, nil
}

// Evaluate returns the full structured evaluation of one (user, candidate)
// pair, or a sentinel error if either the pair or the candidate is absent.
func (r *Recommender) Evaluate(ctx context.Context, userID, candidateID string) (types.Evaluation, error) {
	fv, err := r.pairs.Pair(ctx, userID, candidateID)
	if err != nil {
		return types.Evaluation{}, fmt.Errorf("pair %s/%s: %w", userID, candidateID, ErrPairNotFound)
	}

	candidate, err := r.profiles.Profile(ctx, candidateID)
	if err != nil {
		return types.Evaluation{}, fmt.Errorf("candidate %s: %w", candidateID, ErrProfileNotFound)
	}

	return types.Evaluation{
		CompatibilityScore: fv.CompatibilityScore,
		Verdict:            verdict(fv.CompatibilityScore),
		ROI: types.ROIBlock{
			JobOpportunity:         fv.JobOpportunityScore,
			MentorshipValue:        fv.MentorshipValueScore,
			CollaborationPotential: fv.CollaborationPotential,
			ExpectedTimeframe:      fv.ROITimeframe,
		},
		Candidate: candidate.Summary(),
		RedFlags: types.RedFlagBlock{
			HasRedFlags:  candidate.Scores.RedFlagScore > redFlagBlockThreshold,
			RedFlagScore: candidate.Scores.RedFlagScore,
			Reasons:      candidate.Scores.RedFlagReasons,
		},
		HiddenGem: types.GemBlock{
			IsGem:    candidate.Scores.GemScore > gemBlockThreshold,
			GemScore: candidate.Scores.GemScore,
			GemType:  candidate.Scores.GemType,
		},
		Explanation: fv.Explanation,
	}, nil
}

func verdict(score float64) string {
	switch {
	case score >= connectVerdictScore:
		return "CONNECT"
	case score >= considerVerdictScore:
		return "CONSIDER"
	default:
		return "SKIP"
	}
}
