package predictor

import "math"

// Red-flag penalty bands applied to the target's red_flag_score.
const (
	severeFlagThreshold   = 75.0
	highFlagThreshold     = 50.0
	moderateFlagThreshold = 25.0

	severeFlagMultiplier   = 0.80
	highFlagMultiplier     = 0.90
	moderateFlagMultiplier = 0.95
)

// ApplyRedFlagPenalty discounts a compatibility score by the target's
// red-flag score. Applied regardless of whether the score came from the
// feature engine or an external predictor; the result is clamped to
// [0,100].
func ApplyRedFlagPenalty(score, targetRedFlagScore float64) float64 {
	switch {
	case targetRedFlagScore > severeFlagThreshold:
		score *= severeFlagMultiplier
	case targetRedFlagScore > highFlagThreshold:
		score *= highFlagMultiplier
	case targetRedFlagScore > moderateFlagThreshold:
		score *= moderateFlagMultiplier
	}
	return math.Max(0, math.Min(100, score))
}
