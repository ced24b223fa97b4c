package gems_test

import (
	"fmt"
	"testing"

	gems "github.com/okian/meshrank/internal/domain/gems"
	"github.com/okian/meshrank/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func corpusWith(profiles ...*model.Profile) []*model.Profile {
	for _, p := range profiles {
		p.Normalize()
	}
	return profiles
}

func TestBuildSkillStats(t *testing.T) {
	Convey("Given a corpus where one skill is ubiquitous and one is rare", t, func() {
		corpus := make([]*model.Profile, 0, 30)
		for i := 0; i < 30; i++ {
			p := &model.Profile{
				ProfileID: fmt.Sprintf("p-%d", i),
				Skills:    []string{"excel"},
			}
			if i == 0 {
				p.Skills = append(p.Skills, "quantum computing")
			}
			corpus = append(corpus, p)
		}

		Convey("When skill statistics are built", func() {
			stats := gems.BuildSkillStats(corpusWith(corpus...))

			Convey("Then the snapshot should not be empty", func() {
				So(stats.Empty(), ShouldBeFalse)
				So(stats.Size(), ShouldEqual, 2)
			})

			Convey("Then the rare skill should outscore the common one", func() {
				rare, knownRare := stats.Rarity("quantum computing")
				common, knownCommon := stats.Rarity("excel")

				So(knownRare, ShouldBeTrue)
				So(knownCommon, ShouldBeTrue)
				So(rare, ShouldBeGreaterThan, common)
				So(rare, ShouldBeGreaterThanOrEqualTo, 90)
				So(common, ShouldBeLessThanOrEqualTo, 40)
			})

			Convey("Then lookups should be case-insensitive", func() {
				upper, known := stats.Rarity("  Quantum Computing ")
				So(known, ShouldBeTrue)
				So(upper, ShouldBeGreaterThanOrEqualTo, 90)
			})

			Convey("Then an unobserved skill should report unknown", func() {
				_, known := stats.Rarity("underwater basket weaving")
				So(known, ShouldBeFalse)
			})
		})
	})

	Convey("Given an empty corpus", t, func() {
		stats := gems.BuildSkillStats(nil)

		Convey("Then the snapshot should be empty and safe to query", func() {
			So(stats.Empty(), ShouldBeTrue)
			So(stats.Size(), ShouldEqual, 0)

			_, known := stats.Rarity("go")
			So(known, ShouldBeFalse)
		})
	})

	Convey("Given rarity as a function of frequency", t, func() {
		Convey("Then rarity should never increase with frequency", func() {
			corpusSize := 100
			previous := 101.0
			for count := 1; count <= corpusSize; count += 7 {
				corpus := make([]*model.Profile, corpusSize)
				for i := 0; i < corpusSize; i++ {
					p := &model.Profile{ProfileID: fmt.Sprintf("p-%d", i)}
					if i < count {
						p.Skills = []string{"probe"}
					}
					p.Normalize()
					corpus[i] = p
				}
				rarity, known := gems.BuildSkillStats(corpus).Rarity("probe")
				So(known, ShouldBeTrue)
				So(rarity, ShouldBeLessThanOrEqualTo, previous)
				previous = rarity
			}
		})
	})
}

func TestAnalyzeUndervalued(t *testing.T) {
	Convey("Given a gem detector", t, func() {
		detector := gems.NewDetector()

		Convey("When a senior profile has far fewer connections than expected", func() {
			p := &model.Profile{
				ProfileID:       "undervalued",
				YearsExperience: 10,
				SeniorityLevel:  model.SenioritySenior,
				Connections:     150,
				Skills: []string{
					"go", "python", "sql", "kafka", "spark", "airflow",
					"dbt", "terraform", "kubernetes", "aws", "gcp", "redis",
				},
				Education: []model.EducationEntry{{School: "State University"}},
			}
			p.Normalize()

			r := detector.Analyze(p, gems.BuildSkillStats(nil))

			Convey("Then the undervalued component should dominate", func() {
				So(r.UndervaluedScore, ShouldBeGreaterThan, 50)
				So(r.GemType, ShouldEqual, "undervalued")
				So(r.GemReason, ShouldContainSubstring, "Undervalued")
			})

			Convey("And the blended gem score should stay within bounds", func() {
				So(r.GemScore, ShouldBeBetweenOrEqual, 0, 100)
			})
		})

		Convey("When a profile has the network its experience implies", func() {
			p := &model.Profile{
				ProfileID:       "average",
				YearsExperience: 5,
				Connections:     600,
				Skills:          []string{"excel", "word"},
			}
			p.Normalize()

			r := detector.Analyze(p, gems.BuildSkillStats(nil))

			Convey("Then the undervalued component should be 0", func() {
				So(r.UndervaluedScore, ShouldEqual, 0)
			})
		})
	})
}

func TestAnalyzeRisingStar(t *testing.T) {
	Convey("Given a gem detector", t, func() {
		detector := gems.NewDetector()

		Convey("When a profile reached senior level unusually fast", func() {
			p := &model.Profile{
				ProfileID:       "fast",
				YearsExperience: 6,
				SeniorityLevel:  model.SenioritySenior,
				CurrentCompany:  "Stripe",
				Connections:     2000,
				Skills: []string{
					"go", "python", "sql", "kafka", "spark", "airflow", "dbt",
					"terraform", "kubernetes", "aws", "gcp", "redis", "react",
					"typescript", "grpc", "postgres", "docker", "linux", "git",
					"ci/cd", "prometheus", "grafana",
				},
			}
			p.Normalize()

			r := detector.Analyze(p, gems.BuildSkillStats(nil))

			Convey("Then the rising star component should fire", func() {
				So(r.RisingStarScore, ShouldBeGreaterThanOrEqualTo, 70)
				So(r.GemReason, ShouldContainSubstring, "Rising star")
			})
		})

		Convey("When career progression is ordinary", func() {
			p := &model.Profile{
				ProfileID:       "ordinary",
				YearsExperience: 20,
				SeniorityLevel:  model.SenioritySenior,
				Skills:          []string{"management"},
			}
			p.Normalize()

			r := detector.Analyze(p, gems.BuildSkillStats(nil))

			Convey("Then the rising star component should be 0", func() {
				So(r.RisingStarScore, ShouldEqual, 0)
			})
		})
	})
}

func TestAnalyzeSkillRarity(t *testing.T) {
	Convey("Given a corpus snapshot with one rare specialist", t, func() {
		detector := gems.NewDetector()
		corpus := make([]*model.Profile, 0, 30)
		for i := 0; i < 29; i++ {
			corpus = append(corpus, &model.Profile{
				ProfileID: fmt.Sprintf("common-%d", i),
				Skills:    []string{"excel", "communication"},
			})
		}
		specialist := &model.Profile{
			ProfileID:       "specialist",
			YearsExperience: 4,
			Connections:     400,
			Skills:          []string{"compilers", "llvm", "webassembly"},
		}
		corpus = append(corpus, specialist)
		stats := gems.BuildSkillStats(corpusWith(corpus...))

		Convey("When the specialist is analyzed against the snapshot", func() {
			r := detector.Analyze(specialist, stats)

			Convey("Then skill rarity should be boosted near the cap", func() {
				So(r.SkillRarityScore, ShouldBeGreaterThan, 90)
				So(r.GemType, ShouldEqual, "rare_skills")
				So(r.GemReason, ShouldContainSubstring, "Rare skills")
			})
		})

		Convey("When a common profile is analyzed against the snapshot", func() {
			r := detector.Analyze(corpus[0], stats)

			Convey("Then skill rarity should stay low", func() {
				So(r.SkillRarityScore, ShouldBeLessThan, 50)
			})
		})
	})

	Convey("Given no corpus snapshot", t, func() {
		detector := gems.NewDetector()

		Convey("When a profile holds several high-value skills", func() {
			p := &model.Profile{
				ProfileID: "fallback",
				Skills:    []string{"machine learning", "kubernetes", "go", "rust"},
			}
			p.Normalize()

			r := detector.Analyze(p, gems.BuildSkillStats(nil))

			Convey("Then the fixed fallback band should apply", func() {
				So(r.SkillRarityScore, ShouldEqual, 80)
			})
		})

		Convey("When a profile holds none of the high-value skills", func() {
			p := &model.Profile{
				ProfileID: "plain",
				Skills:    []string{"filing", "scheduling"},
			}
			p.Normalize()

			r := detector.Analyze(p, gems.BuildSkillStats(nil))

			Convey("Then the floor band should apply", func() {
				So(r.SkillRarityScore, ShouldEqual, 20)
			})
		})
	})
}

func TestAnalyzeGemType(t *testing.T) {
	Convey("Given a profile with no notable signals", t, func() {
		detector := gems.NewDetector()
		p := &model.Profile{
			ProfileID:       "plain",
			YearsExperience: 4,
			Connections:     450,
			Skills:          []string{"filing"},
		}
		p.Normalize()

		Convey("When it is analyzed", func() {
			r := detector.Analyze(p, gems.BuildSkillStats(nil))

			Convey("Then the gem type should be none", func() {
				So(r.GemType, ShouldEqual, "none")
				So(r.GemReason, ShouldEqual, "Not a significant hidden gem")
			})
		})
	})
}
