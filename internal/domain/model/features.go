package model

// ROITimeframe estimates how quickly value is realized from a connection.
type ROITimeframe string

// Timeframe bands keyed off the aggregate compatibility score.
const (
	TimeframeWeeks    ROITimeframe = "weeks"
	TimeframeMonths   ROITimeframe = "months"
	TimeframeHalfYear ROITimeframe = "6-12 months"
	TimeframeLongTerm ROITimeframe = "long-term"
)

// FeatureVector is the full scoring output for an ordered profile pair
// (user, target). It is NOT symmetric: network value, mentorship and the
// explanation differ by direction. Every sub-score is in [0,100] except
// ExperienceGap, which is the raw absolute year difference.
type FeatureVector struct {
	UserID   string `json:"profile_a_id"`
	TargetID string `json:"profile_b_id"`

	SkillMatch           float64 `json:"skill_match_score"`
	SkillComplementarity float64 `json:"skill_complementarity_score"`
	NetworkValueAToB     float64 `json:"network_value_a_to_b"`
	NetworkValueBToA     float64 `json:"network_value_b_to_a"`
	CareerAlignment      float64 `json:"career_alignment_score"`
	ExperienceGap        int     `json:"experience_gap"`
	IndustryMatch        float64 `json:"industry_match"`
	GeographicScore      float64 `json:"geographic_score"`
	SeniorityMatch       float64 `json:"seniority_match"`
	MentorshipPotential  float64 `json:"mentorship_potential"`

	CompatibilityScore float64 `json:"compatibility_score"`

	JobOpportunityScore    float64      `json:"predicted_job_opportunity_score"`
	MentorshipValueScore   float64      `json:"predicted_mentorship_value"`
	CollaborationPotential float64      `json:"predicted_collaboration_potential"`
	ROITimeframe           ROITimeframe `json:"roi_timeframe"`

	Explanation string `json:"mutual_benefit_explanation"`
}

// ProfileSummary is the candidate info attached to recommendations.
type ProfileSummary struct {
	ProfileID       string    `json:"profile_id"`
	Name            string    `json:"name"`
	Role            string    `json:"role"`
	Company         string    `json:"company"`
	Seniority       Seniority `json:"seniority"`
	Industry        string    `json:"industry"`
	YearsExperience int       `json:"years_experience"`
}

// Summary extracts the recommendation-facing fields of a profile.
func (p *Profile) Summary() ProfileSummary {
	return ProfileSummary{
		ProfileID:       p.ProfileID,
		Name:            p.Name,
		Role:            p.CurrentRole,
		Company:         p.CurrentCompany,
		Seniority:       p.SeniorityLevel,
		Industry:        p.Industry,
		YearsExperience: p.YearsExperience,
	}
}
