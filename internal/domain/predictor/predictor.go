// Package predictor defines the contract for refining the aggregate
// compatibility score with an external model. The core stays implementable
// and testable without a trained artifact: WeightedSum satisfies the same
// interface deterministically.
package predictor

import (
	"context"

	"github.com/okian/meshrank/internal/domain/model"
)

// Features is the ordered named feature vector consumed by a predictor:
// the nine base sub-scores plus engineered derivatives, matching the
// training contract of the external model.
type Features struct {
	SkillMatch           float64
	SkillComplementarity float64
	NetworkValueAToB     float64
	NetworkValueBToA     float64
	CareerAlignment      float64
	ExperienceGap        float64
	IndustryMatch        float64
	GeographicScore      float64
	SeniorityMatch       float64

	// Engineered derivatives, computed by FeaturesFromVector.
	NetworkValueAvg  float64
	NetworkValueDiff float64
	SkillTotal       float64
	SkillBalance     float64
	ExpGapSquared    float64
	IsMentorshipGap  float64
	IsPeer           float64
	SkillXNetwork    float64
	CareerXIndustry  float64
}

// FeaturesFromVector derives the predictor input from a feature vector,
// including the engineered interaction terms.
func FeaturesFromVector(fv *model.FeatureVector) Features {
	f := Features{
		SkillMatch:           fv.SkillMatch,
		SkillComplementarity: fv.SkillComplementarity,
		NetworkValueAToB:     fv.NetworkValueAToB,
		NetworkValueBToA:     fv.NetworkValueBToA,
		CareerAlignment:      fv.CareerAlignment,
		ExperienceGap:        float64(fv.ExperienceGap),
		IndustryMatch:        fv.IndustryMatch,
		GeographicScore:      fv.GeographicScore,
		SeniorityMatch:       fv.SeniorityMatch,
	}

	f.NetworkValueAvg = (f.NetworkValueAToB + f.NetworkValueBToA) / 2
	f.NetworkValueDiff = abs(f.NetworkValueAToB - f.NetworkValueBToA)
	f.SkillTotal = f.SkillMatch + f.SkillComplementarity
	f.SkillBalance = f.SkillMatch * f.SkillComplementarity / 100
	f.ExpGapSquared = f.ExperienceGap * f.ExperienceGap
	if f.ExperienceGap >= 3 && f.ExperienceGap <= 7 {
		f.IsMentorshipGap = 1
	}
	if f.ExperienceGap <= 2 {
		f.IsPeer = 1
	}
	f.SkillXNetwork = f.SkillComplementarity * f.NetworkValueAvg / 100
	f.CareerXIndustry = f.CareerAlignment * f.IndustryMatch / 100

	return f
}

// Predictor refines a compatibility score from the feature vector. The
// output is expected in [0,100] but callers MUST clamp regardless.
// Implementations may call out to an external service; errors and timeouts
// surface to the caller as recoverable failures, never a fabricated score.
type Predictor interface {
	Predict(ctx context.Context, f Features) (float64, error)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
