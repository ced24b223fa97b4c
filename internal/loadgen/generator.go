package loadgen

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"

	"github.com/google/uuid"
	"github.com/okian/meshrank/pkg/logger"
)

// Pools the generator draws from. Skewed on purpose: a few common skills
// dominate the corpus so skill rarity has something to detect.
var (
	commonSkills = []string{
		"python", "javascript", "communication", "leadership", "sql",
		"project management", "excel", "react", "java", "agile",
	}
	rareSkills = []string{
		"rust", "quantum computing", "compiler design", "webassembly",
		"formal verification", "fpga", "cryptography", "erlang",
	}
	needs = []string{
		"mentorship", "funding", "hiring", "go-to-market", "engineering",
		"design", "sales", "introductions",
	}
	offers = []string{
		"mentorship", "funding", "hiring", "go-to-market", "engineering",
		"design", "sales", "introductions",
	}
	industries  = []string{"technology", "finance", "healthcare", "consulting", "education"}
	locations   = []string{"san francisco", "new york", "london", "berlin", "remote"}
	seniorities = []string{"entry", "mid", "senior", "executive"}
	categories  = []string{"engineering", "product", "sales", "marketing", "other"}
	roles       = []string{
		"software engineer", "product manager", "data scientist",
		"engineering manager", "designer", "account executive",
	}
	companies = []string{
		"acme corp", "globex", "initech", "umbrella labs", "stark industries",
	}
)

// Distribution constants.
const (
	rareSkillChance   = 10 // percent of profiles carrying a rare skill
	maxCommonSkills   = 5
	maxNeeds          = 3
	maxOffers         = 3
	maxYears          = 25
	maxConnections    = 9000
	percentDivisor    = 100
	connectionBuckets = 4
)

// randInt returns a random int in [0, n) using crypto/rand.
func randInt(n int) int {
	if n <= 0 {
		return 0
	}
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// pick returns a random element of pool.
func pick(pool []string) string {
	return pool[randInt(len(pool))]
}

// pickN returns up to n distinct random elements of pool.
func pickN(pool []string, n int) []string {
	if n >= len(pool) {
		n = len(pool)
	}
	seen := make(map[int]struct{}, n)
	out := make([]string, 0, n)
	for len(out) < n {
		i := randInt(len(pool))
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, pool[i])
	}
	return out
}

// generateProfiles creates the requested number of synthetic profiles with
// unique ids.
func generateProfiles(ctx context.Context, config *Config, stats *Stats) ([]Profile, error) {
	logger.Get().Info(ctx, "generating synthetic profiles", logger.Int("numProfiles", config.NumProfiles))

	profiles := make([]Profile, config.NumProfiles)
	for i := range profiles {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		profiles[i] = generateSingleProfile(i)
	}

	stats.ProfilesGenerated = len(profiles)
	logger.Get().Info(ctx, "generated profiles successfully", logger.Int("count", len(profiles)))
	return profiles, nil
}

// generateSingleProfile creates one profile with a skewed but plausible
// attribute distribution.
func generateSingleProfile(index int) Profile {
	years := randInt(maxYears + 1)
	seniority := seniorities[minInt(years/7, len(seniorities)-1)]

	skills := pickN(commonSkills, 1+randInt(maxCommonSkills))
	if randInt(percentDivisor) < rareSkillChance {
		skills = append(skills, pick(rareSkills))
	}

	// Connection counts cluster low with a long tail; the tail feeds the
	// connection-collector red flag.
	connections := randInt(maxConnections / connectionBuckets)
	if randInt(percentDivisor) < rareSkillChance {
		connections = randInt(maxConnections)
	}

	role := pick(roles)
	return Profile{
		ProfileID:       uuid.NewString(),
		Name:            "profile-" + strconv.Itoa(index),
		Headline:        role + " at " + pick(companies),
		About:           "Working on " + pick(commonSkills) + " and " + pick(needs) + ".",
		YearsExperience: years,
		SeniorityLevel:  seniority,
		Industry:        pick(industries),
		Location:        pick(locations),
		Connections:     connections,
		CurrentRole:     role,
		CurrentCompany:  pick(companies),
		JobCategory:     pick(categories),
		Skills:          skills,
		Needs:           pickN(needs, 1+randInt(maxNeeds)),
		CanOffer:        pickN(offers, 1+randInt(maxOffers)),
	}
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
