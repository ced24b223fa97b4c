// Package model contains domain models passed between layers.
package model

import "strings"

// Seniority is the normalized career level of a profile.
type Seniority string

// Known seniority levels, ordered from junior to executive.
const (
	SeniorityEntry     Seniority = "entry"
	SeniorityMid       Seniority = "mid"
	SenioritySenior    Seniority = "senior"
	SeniorityExecutive Seniority = "executive"
)

// Rank encodes the seniority on a 0-3 scale. Unknown values degrade to
// entry (0) rather than erroring.
func (s Seniority) Rank() int {
	switch s {
	case SeniorityEntry:
		return 0
	case SeniorityMid:
		return 1
	case SenioritySenior:
		return 2
	case SeniorityExecutive:
		return 3
	default:
		return 0
	}
}

// ParseSeniority normalizes a free-text seniority value. Anything outside
// the known set falls back to entry.
func ParseSeniority(raw string) Seniority {
	switch Seniority(strings.ToLower(strings.TrimSpace(raw))) {
	case SeniorityMid:
		return SeniorityMid
	case SenioritySenior:
		return SenioritySenior
	case SeniorityExecutive:
		return SeniorityExecutive
	default:
		return SeniorityEntry
	}
}

// ExperienceEntry is one role held by a profile, most recent first.
type ExperienceEntry struct {
	Title          string `json:"title"`
	Company        string `json:"company"`
	DurationMonths int    `json:"duration_months"`
}

// EducationEntry is one school attended by a profile.
type EducationEntry struct {
	School string `json:"school"`
	Degree string `json:"degree"`
}

// Profile is a normalized professional profile. Profiles are produced by
// the ingestion boundary and are read-only to the engines, except for the
// derived Scores block which is written once per batch pass.
type Profile struct {
	ProfileID        string            `json:"profile_id"`
	Name             string            `json:"name"`
	Headline         string            `json:"headline"`
	About            string            `json:"about"`
	YearsExperience  int               `json:"years_experience"`
	SeniorityLevel   Seniority         `json:"seniority_level"`
	Industry         string            `json:"industry"`
	Location         string            `json:"location"`
	RemotePreference string            `json:"remote_preference"`
	Connections      int               `json:"connections"`
	CurrentRole      string            `json:"current_role"`
	CurrentCompany   string            `json:"current_company"`
	JobCategory      string            `json:"job_category"`
	Skills           []string          `json:"skills"`
	Needs            []string          `json:"needs"`
	CanOffer         []string          `json:"can_offer"`
	Experience       []ExperienceEntry `json:"experience"`
	Education        []EducationEntry  `json:"education"`

	// Derived per-profile scores, written by the batch pass.
	Scores DerivedScores `json:"derived_scores"`
}

// DerivedScores holds detector outputs attached to a profile after a batch
// pass. They are immutable inputs to the recommender.
type DerivedScores struct {
	RedFlagScore      float64 `json:"red_flag_score"`
	RedFlagReasons    string  `json:"red_flag_reasons"`
	EngagementQuality float64 `json:"engagement_quality_score"`
	GemScore          float64 `json:"gem_score"`
	GemType           string  `json:"gem_type"`
	GemReason         string  `json:"gem_reason"`
}

// Normalize applies documented defaults for absent fields and lowercases
// case-insensitive attributes. Called once at the ingestion boundary so the
// engines never have to guard against nil collections.
func (p *Profile) Normalize() {
	p.ProfileID = strings.TrimSpace(p.ProfileID)
	p.SeniorityLevel = ParseSeniority(string(p.SeniorityLevel))
	if p.JobCategory == "" {
		p.JobCategory = "other"
	}
	p.JobCategory = strings.ToLower(strings.TrimSpace(p.JobCategory))
	if p.YearsExperience < 0 {
		p.YearsExperience = 0
	}
	if p.Connections < 0 {
		p.Connections = 0
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Needs == nil {
		p.Needs = []string{}
	}
	if p.CanOffer == nil {
		p.CanOffer = []string{}
	}
	if p.Experience == nil {
		p.Experience = []ExperienceEntry{}
	}
	if p.Education == nil {
		p.Education = []EducationEntry{}
	}
}

// SkillSet returns the profile's skills as a case-insensitive set.
func (p *Profile) SkillSet() map[string]struct{} {
	return toSet(p.Skills)
}

// NeedSet returns the profile's stated needs as a case-insensitive set.
func (p *Profile) NeedSet() map[string]struct{} {
	return toSet(p.Needs)
}

// OfferSet returns what the profile can offer as a case-insensitive set.
func (p *Profile) OfferSet() map[string]struct{} {
	return toSet(p.CanOffer)
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		key := strings.ToLower(strings.TrimSpace(item))
		if key == "" {
			continue
		}
		set[key] = struct{}{}
	}
	return set
}
