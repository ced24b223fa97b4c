package compat

// Factor names accepted in a weight table. Unknown names are ignored by the
// aggregation so historical tables keep working.
const (
	FactorSkills     = "skills"
	FactorNetwork    = "network"
	FactorCareer     = "career"
	FactorGeography  = "geography"
	FactorMentorship = "mentorship"
	FactorIndustry   = "industry"
	FactorSeniority  = "seniority"
)

// Weights maps factor names to their share of the aggregate compatibility
// score. The reference heuristics went through several incompatible weight
// tables; each survives here as a named preset and callers may inject their
// own via WithWeights.
type Weights map[string]float64

// DefaultWeights is the four-factor table: skills 40%, network 30%, career
// alignment 20%, geography 10%.
func DefaultWeights() Weights {
	return Weights{
		FactorSkills:    0.40,
		FactorNetwork:   0.30,
		FactorCareer:    0.20,
		FactorGeography: 0.10,
	}
}

// MentorshipWeights is the seven-factor table that leads with mentorship
// potential and role fit.
func MentorshipWeights() Weights {
	return Weights{
		FactorMentorship: 0.22,
		FactorNetwork:    0.18,
		FactorSkills:     0.18,
		FactorSeniority:  0.14,
		FactorCareer:     0.10,
		FactorGeography:  0.10,
		FactorIndustry:   0.08,
	}
}

// ROIWeights spreads weight across every factor, used when ranking by
// expected return rather than raw fit.
func ROIWeights() Weights {
	return Weights{
		FactorSkills:     0.25,
		FactorNetwork:    0.20,
		FactorMentorship: 0.20,
		FactorCareer:     0.15,
		FactorIndustry:   0.10,
		FactorGeography:  0.10,
	}
}

// PresetWeights resolves a preset by name. Unknown names fall back to the
// default table.
func PresetWeights(name string) Weights {
	switch name {
	case "mentorship", "v2":
		return MentorshipWeights()
	case "roi", "v3":
		return ROIWeights()
	default:
		return DefaultWeights()
	}
}
