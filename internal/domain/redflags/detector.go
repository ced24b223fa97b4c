// Package redflags flags low-value or inauthentic profiles from
// single-profile signals: connection collectors, job hoppers, ghost
// profiles and spam.
package redflags

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/meshrank/internal/domain/model"
)

// Detection thresholds.
const (
	collectorMinConnections = 5000
	spamConnectionFloor     = 8000
	jobHopperMaxMonths      = 6
	jobHopperMinShortJobs   = 3
	recentJobsWindow        = 5
	ghostSkillThreshold     = 3
	ghostAboutLength        = 50
	ghostExperienceEntries  = 2
	ghostSignalsRequired    = 3
	maxScore                = 100.0
)

// Result carries every red-flag signal for one profile.
type Result struct {
	IsConnectionCollector bool    `json:"is_connection_collector"`
	IsJobHopper           bool    `json:"is_job_hopper"`
	IsGhostProfile        bool    `json:"is_ghost_profile"`
	EngagementQuality     float64 `json:"engagement_quality_score"`
	SpamLikelihood        float64 `json:"spam_likelihood"`
	RedFlagScore          float64 `json:"red_flag_score"`
	Reasons               string  `json:"red_flag_reasons"`
}

// Option applies a configuration option to the Detector.
type Option func(*Detector)

// WithSpamKeywords replaces the spam keyword lexicon.
func WithSpamKeywords(keywords []string) Option {
	return func(d *Detector) {
		if len(keywords) > 0 {
			d.spamKeywords = lowerAll(keywords)
		}
	}
}

// WithVagueTitles replaces the vague-title lexicon.
func WithVagueTitles(titles []string) Option {
	return func(d *Detector) {
		if len(titles) > 0 {
			d.vagueTitles = lowerAll(titles)
		}
	}
}

// Detector analyzes single profiles for red flags. Lexicons are data,
// injected via options, so they can be updated and tested independently.
type Detector struct {
	spamKeywords []string
	vagueTitles  []string
}

// NewDetector creates a detector with the default lexicons.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		spamKeywords: defaultSpamKeywords(),
		vagueTitles:  defaultVagueTitles(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Analyze is a pure function of one profile.
func (d *Detector) Analyze(p *model.Profile) Result {
	r := Result{
		IsConnectionCollector: d.isConnectionCollector(p),
		IsJobHopper:           isJobHopper(p),
		IsGhostProfile:        d.isGhostProfile(p),
		EngagementQuality:     engagementQuality(p),
		SpamLikelihood:        d.spamLikelihood(p),
	}
	r.RedFlagScore = overallScore(&r)
	r.Reasons = reasons(&r, p)
	return r
}

// isConnectionCollector requires both scale and a vague title; a large
// network alone is not a flag.
func (d *Detector) isConnectionCollector(p *model.Profile) bool {
	if p.Connections < collectorMinConnections {
		return false
	}
	return d.hasVagueTitle(p.CurrentRole)
}

// isJobHopper counts short stints among the five most recent roles.
func isJobHopper(p *model.Profile) bool {
	if len(p.Experience) < jobHopperMinShortJobs {
		return false
	}
	window := p.Experience
	if len(window) > recentJobsWindow {
		window = window[:recentJobsWindow]
	}
	short := 0
	for _, job := range window {
		if job.DurationMonths < jobHopperMaxMonths {
			short++
		}
	}
	return short >= jobHopperMinShortJobs
}

// isGhostProfile needs at least three of the four thin-profile signals.
func (d *Detector) isGhostProfile(p *model.Profile) bool {
	signals := 0
	if len(p.Skills) < ghostSkillThreshold {
		signals++
	}
	title := strings.ToLower(p.CurrentRole)
	if d.hasVagueTitle(title) && len(strings.Fields(title)) <= 2 {
		signals++
	}
	if len(p.About) < ghostAboutLength {
		signals++
	}
	if len(p.Experience) < ghostExperienceEntries {
		signals++
	}
	return signals >= ghostSignalsRequired
}

// engagementQuality starts neutral at 50 and moves with profile
// completeness. The 500-3000 connection range is the sweet spot.
func engagementQuality(p *model.Profile) float64 {
	score := 50.0

	switch n := len(p.Skills); {
	case n >= 15:
		score += 15
	case n >= 10:
		score += 10
	case n < 5:
		score -= 15
	}

	switch n := len(p.Experience); {
	case n >= 4:
		score += 15
	case n <= 1:
		score -= 15
	}

	switch n := len(p.About); {
	case n > 200:
		score += 10
	case n < 50:
		score -= 10
	}

	if len(p.Education) >= 1 {
		score += 10
	}

	switch c := p.Connections; {
	case c >= 500 && c <= 3000:
		score += 10
	case c > 5000:
		score -= 10
	case c < 50:
		score -= 10
	}

	return math.Max(0, math.Min(maxScore, score))
}

// spamLikelihood scans headline, about and title for the spam lexicon and
// a handful of co-occurrence patterns.
func (d *Detector) spamLikelihood(p *model.Profile) float64 {
	title := strings.ToLower(p.CurrentRole)
	combined := strings.ToLower(p.Headline) + " " + strings.ToLower(p.About) + " " + title

	score := 0.0
	for _, keyword := range d.spamKeywords {
		if strings.Contains(combined, keyword) {
			score += 20
		}
	}

	if strings.Contains(combined, "dm me") || strings.Contains(combined, "message me") {
		score += 15
	}
	if strings.Contains(combined, "opportunity") && strings.Contains(combined, "financial") {
		score += 20
	}
	if strings.Contains(title, "recruiter") && strings.Contains(combined, "insurance") {
		score += 15
	}
	if p.Connections > spamConnectionFloor && d.hasVagueTitle(title) {
		score += 25
	}

	return math.Min(score, maxScore)
}

func overallScore(r *Result) float64 {
	score := 0.0
	if r.IsConnectionCollector {
		score += 25
	}
	if r.IsJobHopper {
		score += 20
	}
	if r.IsGhostProfile {
		score += 30
	}
	score += (maxScore - r.EngagementQuality) * 0.15
	score += r.SpamLikelihood * 0.20
	return math.Min(score, maxScore)
}

func reasons(r *Result, p *model.Profile) string {
	var parts []string
	if r.IsConnectionCollector {
		parts = append(parts, fmt.Sprintf("Connection collector (%d connections with generic title)", p.Connections))
	}
	if r.IsJobHopper {
		parts = append(parts, "Job hopper (3+ jobs in short period)")
	}
	if r.IsGhostProfile {
		parts = append(parts, "Ghost profile (minimal information and activity)")
	}
	if r.EngagementQuality < 40 {
		parts = append(parts, fmt.Sprintf("Low engagement quality (%.0f/100)", r.EngagementQuality))
	}
	if r.SpamLikelihood > 30 {
		parts = append(parts, fmt.Sprintf("Possible spam/MLM (%.0f%% likelihood)", r.SpamLikelihood))
	}
	if len(parts) == 0 {
		return "No significant red flags"
	}
	return strings.Join(parts, " | ")
}

func (d *Detector) hasVagueTitle(title string) bool {
	title = strings.ToLower(title)
	for _, vague := range d.vagueTitles {
		if strings.Contains(title, vague) {
			return true
		}
	}
	return false
}

func lowerAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, strings.ToLower(strings.TrimSpace(item)))
	}
	return out
}

func defaultSpamKeywords() []string {
	return []string{
		"mlm", "multi-level", "network marketing", "be your own boss",
		"financial freedom", "unlimited income", "work from home opportunity",
		"crypto trading", "forex signals", "insurance agent recruiting",
	}
}

func defaultVagueTitles() []string {
	return []string{
		"professional", "consultant", "freelancer", "entrepreneur",
		"expert", "specialist", "strategist", "advisor",
	}
}
