package gems

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/meshrank/internal/domain/model"
)

// Gem component weights and thresholds.
const (
	undervaluedWeight    = 0.30
	risingStarWeight     = 0.25
	superConnectorWeight = 0.25
	skillRarityWeight    = 0.20

	componentThreshold   = 50.0
	rarityThreshold      = 60.0
	gemTypeFloor         = 40.0
	rareSkillRarityFloor = 70.0
	unknownSkillRarity   = 30.0
	maxScore             = 100.0
)

// Result carries every hidden-gem signal for one profile.
type Result struct {
	UndervaluedScore    float64 `json:"undervalued_score"`
	RisingStarScore     float64 `json:"rising_star_score"`
	SuperConnectorScore float64 `json:"super_connector_score"`
	SkillRarityScore    float64 `json:"skill_rarity_score"`
	GemScore            float64 `json:"gem_score"`
	GemType             string  `json:"gem_type"`
	GemReason           string  `json:"gem_reason"`
}

// Option applies a configuration option to the Detector.
type Option func(*Detector)

// WithHighValueSkills replaces the fallback high-value skill set used when
// no corpus statistics are available.
func WithHighValueSkills(skills []string) Option {
	return func(d *Detector) {
		if len(skills) > 0 {
			d.highValueSkills = toSet(skills)
		}
	}
}

// WithTopCompanies replaces the top-tier company lexicon used by the
// rising-star score.
func WithTopCompanies(companies []string) Option {
	return func(d *Detector) {
		if len(companies) > 0 {
			d.topCompanies = companies
		}
	}
}

// WithSpecializedDomains replaces the skill clusters used by the
// super-connector score.
func WithSpecializedDomains(domains [][]string) Option {
	return func(d *Detector) {
		if len(domains) > 0 {
			d.specializedDomains = make([]map[string]struct{}, 0, len(domains))
			for _, domain := range domains {
				d.specializedDomains = append(d.specializedDomains, toSet(domain))
			}
		}
	}
}

// Detector scores profiles for hidden-gem potential. All lexicons are
// data, injected via options.
type Detector struct {
	highValueSkills    map[string]struct{}
	topCompanies       []string
	specializedDomains []map[string]struct{}
	valuableIndustries []string
}

// NewDetector creates a detector with the default lexicons.
func NewDetector(opts ...Option) *Detector {
	defaultDomains := defaultSpecializedDomains()
	specialized := make([]map[string]struct{}, 0, len(defaultDomains))
	for _, domain := range defaultDomains {
		specialized = append(specialized, toSet(domain))
	}
	d := &Detector{
		highValueSkills:    toSet(defaultHighValueSkills()),
		topCompanies:       defaultTopCompanies(),
		specializedDomains: specialized,
		valuableIndustries: []string{"technology", "finance", "consulting"},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Analyze scores one profile against the corpus snapshot. The snapshot may
// be empty, in which case skill rarity uses the fixed fallback heuristic.
func (d *Detector) Analyze(p *model.Profile, stats *SkillStats) Result {
	r := Result{
		UndervaluedScore:    undervaluedScore(p),
		RisingStarScore:     d.risingStarScore(p),
		SuperConnectorScore: d.superConnectorScore(p),
		SkillRarityScore:    d.skillRarityScore(p, stats),
	}
	r.GemScore = math.Min(
		r.UndervaluedScore*undervaluedWeight+
			r.RisingStarScore*risingStarWeight+
			r.SuperConnectorScore*superConnectorWeight+
			r.SkillRarityScore*skillRarityWeight,
		maxScore,
	)
	r.GemType = gemType(&r)
	r.GemReason = gemReason(&r, p)
	return r
}

// undervaluedScore rewards profiles whose network is far below the
// experience-implied expectation of roughly 100 connections per year.
func undervaluedScore(p *model.Profile) float64 {
	score := 0.0
	expected := float64(p.YearsExperience) * 100

	switch {
	case float64(p.Connections) < expected*0.3 && p.YearsExperience >= 3:
		score += 40
	case float64(p.Connections) < expected*0.5 && p.YearsExperience >= 2:
		score += 25
	}

	if len(p.Skills) >= 12 && p.Connections < 500 {
		score += 30
	}
	if len(p.Education) >= 1 && p.Connections < 300 {
		score += 15
	}
	if (p.SeniorityLevel == model.SenioritySenior || p.SeniorityLevel == model.SeniorityExecutive) && p.Connections < 1000 {
		score += 15
	}

	return math.Min(score, maxScore)
}

// risingStarScore rewards unusually fast career progression.
func (d *Detector) risingStarScore(p *model.Profile) float64 {
	score := 0.0

	switch {
	case p.SeniorityLevel == model.SenioritySenior && p.YearsExperience >= 5 && p.YearsExperience <= 8:
		score += 40
	case p.SeniorityLevel == model.SeniorityExecutive && p.YearsExperience >= 10 && p.YearsExperience <= 15:
		score += 50
	}

	expectedSkills := 5 + float64(p.YearsExperience)*1.5
	if float64(len(p.Skills)) > expectedSkills*1.5 {
		score += 30
	}

	if p.YearsExperience < 5 {
		for _, top := range d.topCompanies {
			if strings.Contains(p.CurrentCompany, top) {
				score += 30
				break
			}
		}
	}

	return math.Min(score, maxScore)
}

// superConnectorScore rewards a well-connected profile in a specialized
// niche while avoiding spam-scale networks.
func (d *Detector) superConnectorScore(p *model.Profile) float64 {
	score := 0.0

	switch c := p.Connections; {
	case c >= 1000 && c <= 4000:
		score += 40
	case c >= 500 && c < 1000:
		score += 25
	}

	skills := p.SkillSet()
	for _, domain := range d.specializedDomains {
		matched := 0
		for skill := range skills {
			if _, ok := domain[skill]; ok {
				matched++
			}
		}
		if matched >= 2 {
			score += 30
			break
		}
	}

	switch p.SeniorityLevel {
	case model.SeniorityExecutive:
		score += 20
	case model.SenioritySenior:
		score += 10
	}

	industry := strings.ToLower(p.Industry)
	for _, valuable := range d.valuableIndustries {
		if strings.Contains(industry, valuable) {
			score += 10
			break
		}
	}

	return math.Min(score, maxScore)
}

// skillRarityScore is the mean corpus rarity over the profile's skills,
// boosted when multiple skills are individually rare.
func (d *Detector) skillRarityScore(p *model.Profile, stats *SkillStats) float64 {
	if stats.Empty() {
		return d.skillRarityFallback(p)
	}

	skills := p.Skills
	if len(skills) == 0 {
		return 0
	}

	sum := 0.0
	rareCount := 0
	for _, skill := range skills {
		rarity, known := stats.Rarity(skill)
		if !known {
			rarity = unknownSkillRarity
		}
		sum += rarity
		if rarity > rareSkillRarityFloor {
			rareCount++
		}
	}
	avg := sum / float64(len(skills))

	switch {
	case rareCount >= 3:
		avg = math.Min(maxScore, avg*1.3)
	case rareCount >= 2:
		avg = math.Min(maxScore, avg*1.2)
	}
	return avg
}

// skillRarityFallback bands by overlap with the fixed high-value skill set
// when no corpus statistics exist.
func (d *Detector) skillRarityFallback(p *model.Profile) float64 {
	matched := 0
	for skill := range p.SkillSet() {
		if _, ok := d.highValueSkills[skill]; ok {
			matched++
		}
	}
	switch {
	case matched >= 4:
		return 80
	case matched >= 2:
		return 60
	case matched >= 1:
		return 40
	default:
		return 20
	}
}

// gemType is the argmax of the four components, or "none" below the floor.
func gemType(r *Result) string {
	best, bestScore := "undervalued", r.UndervaluedScore
	if r.RisingStarScore > bestScore {
		best, bestScore = "rising_star", r.RisingStarScore
	}
	if r.SuperConnectorScore > bestScore {
		best, bestScore = "super_connector", r.SuperConnectorScore
	}
	if r.SkillRarityScore > bestScore {
		best, bestScore = "rare_skills", r.SkillRarityScore
	}
	if bestScore < gemTypeFloor {
		return "none"
	}
	return best
}

func gemReason(r *Result, p *model.Profile) string {
	var parts []string
	if r.UndervaluedScore > componentThreshold {
		parts = append(parts, fmt.Sprintf("Undervalued: %d years experience but only %d connections", p.YearsExperience, p.Connections))
	}
	if r.RisingStarScore > componentThreshold {
		parts = append(parts, fmt.Sprintf("Rising star: %s level at %d years", p.SeniorityLevel, p.YearsExperience))
	}
	if r.SuperConnectorScore > componentThreshold {
		parts = append(parts, fmt.Sprintf("Super connector: %d connections in %s", p.Connections, p.Industry))
	}
	if r.SkillRarityScore > rarityThreshold {
		parts = append(parts, "Rare skills: has in-demand, uncommon expertise")
	}
	if len(parts) == 0 {
		return "Not a significant hidden gem"
	}
	return strings.Join(parts, " | ")
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[strings.ToLower(strings.TrimSpace(item))] = struct{}{}
	}
	return set
}

func defaultHighValueSkills() []string {
	return []string{
		"machine learning", "deep learning", "ai", "data science",
		"python", "cloud architecture", "kubernetes", "aws",
		"product management", "fundraising", "growth marketing",
		"ui/ux design", "react", "typescript", "go", "rust",
	}
}

func defaultTopCompanies() []string {
	return []string{
		"Google", "Microsoft", "Amazon", "Meta", "Apple",
		"Netflix", "Tesla", "Uber", "Airbnb", "Stripe",
	}
}

func defaultSpecializedDomains() [][]string {
	return [][]string{
		{"machine learning", "deep learning", "ai"},
		{"product management", "strategy", "growth"},
		{"fundraising", "vc", "investment"},
		{"design", "ui/ux design", "figma"},
	}
}
