package compat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/meshrank/internal/domain/model"
)

// Explanation thresholds.
const (
	actionThreshold      = 60.0
	sameLocationGeoScore = 90.0
	maxListedItems       = 3
)

// explain builds the human-readable mutual-benefit explanation. Clause
// order is fixed: relationship type, what they offer you, what you offer
// them, shared skills, action items, location note.
func (e *Engine) explain(user, target *model.Profile, fv *model.FeatureVector) string {
	var b strings.Builder

	roleB := orDefault(target.CurrentRole, "professional")
	companyB := orDefault(target.CurrentCompany, "their company")

	switch gap := fv.ExperienceGap; {
	case gap >= 3 && gap <= 7:
		if target.YearsExperience > user.YearsExperience {
			fmt.Fprintf(&b, "MENTORSHIP: They're a %s at %s with %d years experience. ", roleB, companyB, target.YearsExperience)
			b.WriteString("Can mentor you on: career growth, industry insights, navigating challenges.")
		} else {
			fmt.Fprintf(&b, "REVERSE MENTORSHIP: You have %d more years experience. ", gap)
			b.WriteString("You can mentor them while learning fresh perspectives.")
		}
	case gap <= 2:
		fmt.Fprintf(&b, "PEER COLLABORATION: Similar experience levels (%d vs %d years). ", user.YearsExperience, target.YearsExperience)
		b.WriteString("Best for: exchanging ideas, co-learning, potential partnerships.")
	default:
		fmt.Fprintf(&b, "ADVISORY: %d year experience gap creates valuable perspective sharing. ", gap)
	}

	if helps := sortedIntersection(user.NeedSet(), target.OfferSet()); len(helps) > 0 {
		fmt.Fprintf(&b, " They can help with: %s.", strings.Join(truncate(helps), ", "))
	}
	if offers := sortedIntersection(target.NeedSet(), user.OfferSet()); len(offers) > 0 {
		fmt.Fprintf(&b, " You can help with: %s.", strings.Join(truncate(offers), ", "))
	}
	if shared := sortedIntersection(user.SkillSet(), target.SkillSet()); len(shared) > 0 {
		fmt.Fprintf(&b, " Shared expertise: %s.", strings.Join(truncate(shared), ", "))
	}

	b.WriteString(" ACTION: ")
	if fv.JobOpportunityScore >= actionThreshold {
		b.WriteString("Ask about job opportunities/referrals. ")
	}
	if fv.MentorshipValueScore >= actionThreshold {
		b.WriteString("Request coffee chat for career advice. ")
	}
	if fv.CollaborationPotential >= actionThreshold {
		b.WriteString("Explore collaboration opportunities. ")
	}

	if fv.GeographicScore >= sameLocationGeoScore {
		b.WriteString(" Same location - suggest in-person meeting.")
	}

	return b.String()
}

// sortedIntersection keeps the explanation deterministic regardless of map
// iteration order.
func sortedIntersection(a, b map[string]struct{}) []string {
	items := make([]string, 0)
	for key := range a {
		if _, ok := b[key]; ok {
			items = append(items, key)
		}
	}
	sort.Strings(items)
	return items
}

func truncate(items []string) []string {
	if len(items) > maxListedItems {
		return items[:maxListedItems]
	}
	return items
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
