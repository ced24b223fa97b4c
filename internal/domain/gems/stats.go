// Package gems flags undervalued, high-potential profiles using
// corpus-wide skill statistics.
package gems

import (
	"strings"

	"github.com/okian/meshrank/internal/domain/model"
)

// SkillStats is a read-only snapshot of skill rarity across the whole
// profile corpus. It must be built before any gem analysis and is safe for
// concurrent readers.
type SkillStats struct {
	rarity        map[string]float64
	totalProfiles int
}

// BuildSkillStats aggregates skill frequencies over the full corpus in one
// pass and bands them into rarity scores. Rarity is monotonically
// non-increasing in frequency: a rarer skill never scores lower.
func BuildSkillStats(profiles []*model.Profile) *SkillStats {
	counts := make(map[string]int)
	for _, p := range profiles {
		for skill := range p.SkillSet() {
			counts[skill]++
		}
	}

	stats := &SkillStats{
		rarity:        make(map[string]float64, len(counts)),
		totalProfiles: len(profiles),
	}
	if stats.totalProfiles == 0 {
		return stats
	}

	for skill, count := range counts {
		frequency := float64(count) / float64(stats.totalProfiles)
		stats.rarity[skill] = rarityForFrequency(frequency)
	}
	return stats
}

// rarityForFrequency bands a corpus frequency into a 10-100 rarity score.
func rarityForFrequency(frequency float64) float64 {
	switch {
	case frequency < 0.05:
		return 90 + (0.05-frequency)*200
	case frequency < 0.15:
		return 70 + (0.15-frequency)*100
	case frequency < 0.30:
		return 40 + (0.30-frequency)*100
	default:
		score := 40 - frequency*50
		if score < 10 {
			return 10
		}
		return score
	}
}

// Rarity returns the rarity score of a skill and whether it was observed
// in the corpus.
func (s *SkillStats) Rarity(skill string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	score, ok := s.rarity[strings.ToLower(strings.TrimSpace(skill))]
	return score, ok
}

// Size returns the number of distinct skills observed.
func (s *SkillStats) Size() int {
	if s == nil {
		return 0
	}
	return len(s.rarity)
}

// Empty reports whether the snapshot carries any corpus data. The detector
// falls back to a fixed high-value-skill heuristic when it does.
func (s *SkillStats) Empty() bool {
	return s == nil || len(s.rarity) == 0
}
