package predictor

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"
)

// Default configuration for the fallback predictor.
const (
	defaultMinLatency = 0 * time.Millisecond
	defaultMaxLatency = 0 * time.Millisecond
	defaultRandomSeed = 42
	maxScoreValue     = 100
)

// Option applies a configuration option to the WeightedSum predictor.
type Option func(*WeightedSum)

// WithLatencyRange enables simulated latency, modeling a remote model
// service. Disabled by default.
func WithLatencyRange(minLatency, maxLatency time.Duration) Option {
	return func(p *WeightedSum) {
		if minLatency > 0 && maxLatency > minLatency {
			p.minLatency = minLatency
			p.maxLatency = maxLatency
		}
	}
}

// WithCoefficients replaces the linear coefficients applied to the base
// sub-scores. Keys follow the wire names of the scoring request.
func WithCoefficients(coeffs map[string]float64) Option {
	return func(p *WeightedSum) {
		if len(coeffs) > 0 {
			p.coefficients = coeffs
		}
	}
}

// WeightedSum is the deterministic fallback Predictor: a linear blend of
// the base sub-scores with small corrections from the engineered terms.
type WeightedSum struct {
	coefficients map[string]float64
	minLatency   time.Duration
	maxLatency   time.Duration

	// rngMu guards rng; one predictor instance serves every worker.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewWeightedSum creates the fallback predictor.
func NewWeightedSum(opts ...Option) *WeightedSum {
	p := &WeightedSum{
		coefficients: map[string]float64{
			"skill_match_score":           0.15,
			"skill_complementarity_score": 0.20,
			"network_value_a_to_b":        0.10,
			"network_value_b_to_a":        0.10,
			"career_alignment_score":      0.20,
			"industry_match":              0.10,
			"geographic_score":            0.05,
			"seniority_match":             0.10,
		},
		minLatency: defaultMinLatency,
		maxLatency: defaultMaxLatency,
		rng:        rand.New(rand.NewSource(defaultRandomSeed)), //nolint:gosec // deterministic seed for reproducible testing
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Predict computes the refined score, honoring ctx for cancellation when
// latency simulation is enabled.
func (p *WeightedSum) Predict(ctx context.Context, f Features) (float64, error) {
	if p.maxLatency > p.minLatency {
		p.rngMu.Lock()
		jitter := p.rng.Int63n(int64(p.maxLatency - p.minLatency))
		p.rngMu.Unlock()
		latency := p.minLatency + time.Duration(jitter)
		select {
		case <-ctx.Done():
			return 0, fmt.Errorf("predictor cancelled: %w", ctx.Err())
		case <-time.After(latency):
		}
	}

	values := map[string]float64{
		"skill_match_score":           f.SkillMatch,
		"skill_complementarity_score": f.SkillComplementarity,
		"network_value_a_to_b":        f.NetworkValueAToB,
		"network_value_b_to_a":        f.NetworkValueBToA,
		"career_alignment_score":      f.CareerAlignment,
		"industry_match":              f.IndustryMatch,
		"geographic_score":            f.GeographicScore,
		"seniority_match":             f.SeniorityMatch,
	}

	score := 0.0
	for key, coeff := range p.coefficients {
		score += values[key] * coeff
	}

	// Small interaction corrections, mirroring the trained model's
	// engineered features.
	score += f.IsMentorshipGap * 5
	score += f.SkillXNetwork * 0.05
	score -= f.NetworkValueDiff * 0.02

	if math.IsNaN(score) {
		score = 0
	}
	return math.Max(0, math.Min(maxScoreValue, score)), nil
}
