// Package compat computes the compatibility feature vector for an ordered
// profile pair. All sub-scores land in [0,100]; the engine never errors on
// missing or unknown profile fields.
package compat

import (
	"math"
	"strings"

	"github.com/okian/meshrank/internal/domain/model"
)

// Scoring band constants shared by the sub-score calculators.
const (
	maxScore             = 100.0
	neutralGeoScore      = 50.0
	relatedIndustryScore = 70.0
	connectionScoreCap   = 50.0
	connectionsPerPoint  = 1000.0
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithWeights replaces the aggregate weight table. Nil or empty tables are
// ignored and the current table stays in effect.
func WithWeights(w Weights) Option {
	return func(e *Engine) {
		if len(w) == 0 {
			return
		}
		e.weights = make(Weights, len(w))
		for factor, weight := range w {
			if weight > 0 {
				e.weights[factor] = weight
			}
		}
	}
}

// WithRelatedIndustries sets the hand-maintained related-industry table.
// Keys and values are matched case-insensitively.
func WithRelatedIndustries(table map[string][]string) Option {
	return func(e *Engine) {
		if table != nil {
			e.relatedIndustries = lowerTable(table)
		}
	}
}

// WithRelatedRoles sets the role-family adjacency table used by the
// mentorship sub-score.
func WithRelatedRoles(table map[string][]string) Option {
	return func(e *Engine) {
		if table != nil {
			e.relatedRoles = lowerTable(table)
		}
	}
}

// Engine calculates compatibility features between profile pairs.
type Engine struct {
	weights           Weights
	relatedIndustries map[string][]string
	relatedRoles      map[string][]string
}

// NewEngine creates a feature engine with the default weight table and
// adjacency tables.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		weights:           DefaultWeights(),
		relatedIndustries: defaultRelatedIndustries(),
		relatedRoles:      defaultRelatedRoles(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CalculateFeatures produces the full feature vector for the ordered pair
// (user, target). The call is pure: identical inputs yield identical
// output.
func (e *Engine) CalculateFeatures(user, target *model.Profile) model.FeatureVector {
	fv := model.FeatureVector{
		UserID:   user.ProfileID,
		TargetID: target.ProfileID,

		SkillMatch:           e.skillMatch(user, target),
		SkillComplementarity: e.skillComplementarity(user, target),
		NetworkValueAToB:     e.networkValue(user, target),
		NetworkValueBToA:     e.networkValue(target, user),
		CareerAlignment:      e.careerAlignment(user, target),
		ExperienceGap:        experienceGap(user, target),
		IndustryMatch:        e.industryMatch(user, target),
		GeographicScore:      e.geographicScore(user, target),
		SeniorityMatch:       e.seniorityMatch(user, target),
		MentorshipPotential:  e.mentorshipPotential(user, target),
	}

	fv.CompatibilityScore = e.aggregate(&fv)

	fv.JobOpportunityScore = jobOpportunityScore(&fv)
	fv.MentorshipValueScore = mentorshipValueScore(&fv)
	fv.CollaborationPotential = collaborationScore(&fv)
	fv.ROITimeframe = roiTimeframe(fv.CompatibilityScore)

	fv.Explanation = e.explain(user, target, &fv)

	return fv
}

// skillMatch is the Jaccard similarity of the two skill sets, scaled to
// 0-100. Either set being empty yields 0.
func (e *Engine) skillMatch(a, b *model.Profile) float64 {
	skillsA := a.SkillSet()
	skillsB := b.SkillSet()
	if len(skillsA) == 0 || len(skillsB) == 0 {
		return 0
	}

	intersection := 0
	for skill := range skillsA {
		if _, ok := skillsB[skill]; ok {
			intersection++
		}
	}
	union := len(skillsA) + len(skillsB) - intersection
	return safeDivide(float64(intersection)*maxScore, float64(union))
}

// skillComplementarity measures how many of each side's needs the other can
// fulfill, over the total number of stated needs.
func (e *Engine) skillComplementarity(a, b *model.Profile) float64 {
	needsA, offersB := a.NeedSet(), b.OfferSet()
	needsB, offersA := b.NeedSet(), a.OfferSet()

	met := countIntersection(needsA, offersB) + countIntersection(needsB, offersA)
	total := len(needsA) + len(needsB)
	return safeDivide(float64(met)*maxScore, float64(total))
}

// networkValue estimates the value of from's network to to. Directional:
// driven by from's connection count and seniority plus the industry match.
func (e *Engine) networkValue(from, to *model.Profile) float64 {
	connectionScore := math.Min(float64(from.Connections)/connectionsPerPoint*connectionScoreCap, connectionScoreCap)
	industryBonus := e.industryMatch(from, to) * 0.3
	seniorityBonus := float64(from.SeniorityLevel.Rank() * 10)
	return math.Min(connectionScore+industryBonus+seniorityBonus, maxScore)
}

// careerAlignment bands the absolute experience gap: the 3-7 year
// mentor/mentee window scores highest.
func (e *Engine) careerAlignment(a, b *model.Profile) float64 {
	gap := experienceGap(a, b)
	switch {
	case gap >= 3 && gap <= 7:
		return 90
	case gap <= 2:
		return 80
	case gap <= 15:
		return 60
	default:
		return 40
	}
}

func experienceGap(a, b *model.Profile) int {
	gap := a.YearsExperience - b.YearsExperience
	if gap < 0 {
		gap = -gap
	}
	return gap
}

// industryMatch scores 100 for an exact case-insensitive match, otherwise a
// word-overlap similarity. Industries listed as related in the table are
// lifted to at least 70.
func (e *Engine) industryMatch(a, b *model.Profile) float64 {
	indA := strings.ToLower(strings.TrimSpace(a.Industry))
	indB := strings.ToLower(strings.TrimSpace(b.Industry))
	if indA == "" || indB == "" {
		return 0
	}
	if indA == indB {
		return maxScore
	}

	score := wordJaccard(indA, indB) * maxScore
	if e.industriesRelated(indA, indB) && score < relatedIndustryScore {
		score = relatedIndustryScore
	}
	return score
}

func (e *Engine) industriesRelated(a, b string) bool {
	for _, related := range e.relatedIndustries[a] {
		if related == b {
			return true
		}
	}
	for _, related := range e.relatedIndustries[b] {
		if related == a {
			return true
		}
	}
	return false
}

// geographicScore compares location strings. Unknown locations are neutral;
// remote preference softens the penalty for being far apart.
func (e *Engine) geographicScore(a, b *model.Profile) float64 {
	locA := strings.ToLower(strings.TrimSpace(a.Location))
	locB := strings.ToLower(strings.TrimSpace(b.Location))
	if locA == "" || locB == "" {
		return neutralGeoScore
	}
	if locA == locB {
		return maxScore
	}

	// Compare the trailing region token of A against B's tokens.
	regionParts := strings.Split(locA, ",")
	region := regionParts[len(regionParts)-1]
	for _, word := range strings.Fields(region) {
		if strings.Contains(locB, word) {
			return 75
		}
	}

	if strings.EqualFold(a.RemotePreference, "remote") || strings.EqualFold(b.RemotePreference, "remote") {
		return 60
	}
	return 30
}

// seniorityMatch bands the 0-3 seniority gap; one level apart is the ideal
// mentor/mentee pairing.
func (e *Engine) seniorityMatch(a, b *model.Profile) float64 {
	gap := a.SeniorityLevel.Rank() - b.SeniorityLevel.Rank()
	if gap < 0 {
		gap = -gap
	}
	switch gap {
	case 1:
		return 100
	case 0:
		return 85
	case 2:
		return 70
	default:
		return 50
	}
}

// mentorshipPotential asks: can the target mentor the user? The base band
// uses the signed experience gap, then role-family affinity adds a bonus.
func (e *Engine) mentorshipPotential(user, target *model.Profile) float64 {
	gap := target.YearsExperience - user.YearsExperience

	var base float64
	switch {
	case gap >= 3 && gap <= 10:
		base = 100
	case gap > 10:
		base = 70
	case gap > 0:
		base = 60
	default:
		base = 20
	}

	switch {
	case user.JobCategory == target.JobCategory:
		base += 20
	case e.rolesAdjacent(user.JobCategory, target.JobCategory):
		base += 10
	}
	return math.Min(base, maxScore)
}

func (e *Engine) rolesAdjacent(userRole, targetRole string) bool {
	for _, related := range e.relatedRoles[userRole] {
		if related == targetRole {
			return true
		}
	}
	return false
}

// aggregate folds the sub-scores into the weighted compatibility score,
// clamped to [0,100] and rounded to two decimals.
func (e *Engine) aggregate(fv *model.FeatureVector) float64 {
	values := map[string]float64{
		FactorSkills:     (fv.SkillMatch + fv.SkillComplementarity) / 2,
		FactorNetwork:    (fv.NetworkValueAToB + fv.NetworkValueBToA) / 2,
		FactorCareer:     fv.CareerAlignment,
		FactorGeography:  fv.GeographicScore,
		FactorMentorship: fv.MentorshipPotential,
		FactorIndustry:   fv.IndustryMatch,
		FactorSeniority:  fv.SeniorityMatch,
	}

	score := 0.0
	for factor, weight := range e.weights {
		if value, ok := values[factor]; ok {
			score += value * weight
		}
	}
	return clamp(round2(score))
}

// jobOpportunityScore predicts the likelihood of a job opportunity arising
// from the connection.
func jobOpportunityScore(fv *model.FeatureVector) float64 {
	score := 0.0
	if fv.ExperienceGap >= 3 {
		score += 30
	}
	if fv.IndustryMatch >= 70 {
		score += 30
	}
	score += networkAvg(fv) * 0.3
	if fv.SkillComplementarity >= 60 {
		score += 10
	}
	return math.Min(score, maxScore)
}

// mentorshipValueScore predicts the quality of a mentorship relationship.
func mentorshipValueScore(fv *model.FeatureVector) float64 {
	var score float64
	switch gap := fv.ExperienceGap; {
	case gap >= 3 && gap <= 7:
		score = 50
	case gap > 7 && gap <= 12:
		score = 35
	case gap > 12:
		score = 20
	default:
		score = 10
	}
	if fv.IndustryMatch >= 70 {
		score += 30
	}
	score += networkAvg(fv) * 0.2
	return math.Min(score, maxScore)
}

// collaborationScore predicts partnership potential; complementary skills
// between peers dominate.
func collaborationScore(fv *model.FeatureVector) float64 {
	score := 0.0
	switch {
	case fv.SkillComplementarity >= 70:
		score += 40
	case fv.SkillComplementarity >= 50:
		score += 25
	}
	if fv.ExperienceGap <= 3 {
		score += 30
	}
	if fv.IndustryMatch >= 60 {
		score += 20
	}
	if fv.GeographicScore >= 70 {
		score += 10
	}
	return math.Min(score, maxScore)
}

func roiTimeframe(compatibility float64) model.ROITimeframe {
	switch {
	case compatibility >= 80:
		return model.TimeframeWeeks
	case compatibility >= 60:
		return model.TimeframeMonths
	case compatibility >= 40:
		return model.TimeframeHalfYear
	default:
		return model.TimeframeLongTerm
	}
}

func networkAvg(fv *model.FeatureVector) float64 {
	return (fv.NetworkValueAToB + fv.NetworkValueBToA) / 2
}

func countIntersection(a, b map[string]struct{}) int {
	n := 0
	for key := range a {
		if _, ok := b[key]; ok {
			n++
		}
	}
	return n
}

// wordJaccard is the Jaccard similarity of the word sets of two strings,
// in [0,1].
func wordJaccard(a, b string) float64 {
	wordsA := toWordSet(a)
	wordsB := toWordSet(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}
	intersection := countIntersection(wordsA, wordsB)
	union := len(wordsA) + len(wordsB) - intersection
	return safeDivide(float64(intersection), float64(union))
}

func toWordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(s)) {
		set[word] = struct{}{}
	}
	return set
}

// safeDivide returns 0 when the denominator is 0.
func safeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(maxScore, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func lowerTable(table map[string][]string) map[string][]string {
	out := make(map[string][]string, len(table))
	for key, values := range table {
		lowered := make([]string, 0, len(values))
		for _, v := range values {
			lowered = append(lowered, strings.ToLower(strings.TrimSpace(v)))
		}
		out[strings.ToLower(strings.TrimSpace(key))] = lowered
	}
	return out
}

// defaultRelatedIndustries is the hand-maintained table that upgrades a
// partial industry mismatch to 70.
func defaultRelatedIndustries() map[string][]string {
	return lowerTable(map[string][]string{
		"technology": {"software", "internet", "information technology"},
		"finance":    {"banking", "financial services", "fintech", "investment"},
		"consulting": {"professional services", "management consulting"},
		"healthcare": {"biotech", "pharmaceuticals", "medical devices"},
		"media":      {"entertainment", "publishing", "advertising"},
	})
}

// defaultRelatedRoles is the role-family adjacency table used by the
// mentorship bonus.
func defaultRelatedRoles() map[string][]string {
	return map[string][]string{
		"data_science":     {"data_analytics", "data_engineering", "software_dev", "product"},
		"data_analytics":   {"data_science", "data_engineering", "product"},
		"data_engineering": {"data_science", "data_analytics", "software_dev"},
		"software_dev":     {"data_engineering", "data_science", "product"},
		"product":          {"data_analytics", "software_dev", "design", "data_science"},
		"design":           {"product", "software_dev"},
		"executive":        {"product", "data_science", "software_dev"},
		"student":          {"data_science", "software_dev", "data_analytics", "data_engineering"},
		"other":            {},
	}
}
