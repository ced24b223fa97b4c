package predictor_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/okian/meshrank/internal/domain/model"
	predictor "github.com/okian/meshrank/internal/domain/predictor"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFeaturesFromVector(t *testing.T) {
	Convey("Given a populated feature vector", t, func() {
		fv := &model.FeatureVector{
			SkillMatch:           40,
			SkillComplementarity: 80,
			NetworkValueAToB:     60,
			NetworkValueBToA:     20,
			CareerAlignment:      90,
			ExperienceGap:        5,
			IndustryMatch:        100,
			GeographicScore:      75,
			SeniorityMatch:       85,
		}

		Convey("When the predictor features are derived", func() {
			f := predictor.FeaturesFromVector(fv)

			Convey("Then the base sub-scores should carry over", func() {
				So(f.SkillMatch, ShouldEqual, 40)
				So(f.SkillComplementarity, ShouldEqual, 80)
				So(f.ExperienceGap, ShouldEqual, 5)
			})

			Convey("Then the engineered terms should be computed", func() {
				So(f.NetworkValueAvg, ShouldEqual, 40)
				So(f.NetworkValueDiff, ShouldEqual, 40)
				So(f.SkillTotal, ShouldEqual, 120)
				So(f.SkillBalance, ShouldEqual, 32)
				So(f.ExpGapSquared, ShouldEqual, 25)
				So(f.SkillXNetwork, ShouldEqual, 32)
				So(f.CareerXIndustry, ShouldEqual, 90)
			})

			Convey("Then the 3-7 year gap should mark a mentorship pairing", func() {
				So(f.IsMentorshipGap, ShouldEqual, 1)
				So(f.IsPeer, ShouldEqual, 0)
			})
		})

		Convey("When the gap is within 2 years", func() {
			fv.ExperienceGap = 1
			f := predictor.FeaturesFromVector(fv)

			Convey("Then the pairing should be flagged as peers", func() {
				So(f.IsPeer, ShouldEqual, 1)
				So(f.IsMentorshipGap, ShouldEqual, 0)
			})
		})
	})
}

func TestWeightedSumPredict(t *testing.T) {
	Convey("Given the default weighted-sum predictor", t, func() {
		p := predictor.NewWeightedSum()
		ctx := context.Background()

		Convey("When every base sub-score is at the maximum", func() {
			f := predictor.FeaturesFromVector(&model.FeatureVector{
				SkillMatch:           100,
				SkillComplementarity: 100,
				NetworkValueAToB:     100,
				NetworkValueBToA:     100,
				CareerAlignment:      100,
				ExperienceGap:        5,
				IndustryMatch:        100,
				GeographicScore:      100,
				SeniorityMatch:       100,
			})

			score, err := p.Predict(ctx, f)

			Convey("Then the score should clamp at 100", func() {
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 100)
			})
		})

		Convey("When every sub-score is zero", func() {
			score, err := p.Predict(ctx, predictor.Features{})

			Convey("Then the score should be 0", func() {
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 0)
			})
		})

		Convey("When the same features are scored twice", func() {
			f := predictor.FeaturesFromVector(&model.FeatureVector{
				SkillMatch:           55,
				SkillComplementarity: 70,
				NetworkValueAToB:     40,
				NetworkValueBToA:     60,
				CareerAlignment:      90,
				ExperienceGap:        4,
				IndustryMatch:        70,
				GeographicScore:      50,
				SeniorityMatch:       85,
			})

			first, err1 := p.Predict(ctx, f)
			second, err2 := p.Predict(ctx, f)

			Convey("Then the output should be deterministic", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(first, ShouldEqual, second)
				So(first, ShouldBeBetweenOrEqual, 0, 100)
			})
		})

		Convey("When custom coefficients are injected", func() {
			custom := predictor.NewWeightedSum(predictor.WithCoefficients(map[string]float64{
				"geographic_score": 1.0,
			}))
			f := predictor.Features{GeographicScore: 80}

			score, err := custom.Predict(ctx, f)

			Convey("Then only the configured factor should contribute", func() {
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 80)
			})
		})
	})

	Convey("Given a predictor with simulated latency", t, func() {
		p := predictor.NewWeightedSum(predictor.WithLatencyRange(50*time.Millisecond, 200*time.Millisecond))

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := p.Predict(ctx, predictor.Features{})

			Convey("Then the call should fail with the context error", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "cancelled")
			})
		})
	})
}

// A single predictor instance is shared by the whole worker pool, so the
// jitter draw must be safe under -race.
func TestWeightedSumConcurrentPredict(t *testing.T) {
	Convey("Given one predictor shared across goroutines", t, func() {
		p := predictor.NewWeightedSum(predictor.WithLatencyRange(time.Millisecond, 2*time.Millisecond))
		ctx := context.Background()
		f := predictor.FeaturesFromVector(&model.FeatureVector{
			SkillMatch:           55,
			SkillComplementarity: 70,
			NetworkValueAToB:     40,
			NetworkValueBToA:     60,
			CareerAlignment:      90,
			ExperienceGap:        4,
			IndustryMatch:        70,
			GeographicScore:      50,
			SeniorityMatch:       85,
		})

		Convey("When many predictions run in parallel", func() {
			const goroutines = 16
			results := make(chan float64, goroutines)
			errs := make(chan error, goroutines)

			var wg sync.WaitGroup
			for i := 0; i < goroutines; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					score, err := p.Predict(ctx, f)
					results <- score
					errs <- err
				}()
			}
			wg.Wait()
			close(results)
			close(errs)

			Convey("Then every call should succeed with the same score", func() {
				for err := range errs {
					So(err, ShouldBeNil)
				}
				first, ok := <-results
				So(ok, ShouldBeTrue)
				for score := range results {
					So(score, ShouldEqual, first)
				}
			})
		})
	})
}

func TestApplyRedFlagPenalty(t *testing.T) {
	Convey("Given a base compatibility score of 80", t, func() {
		base := 80.0

		Convey("When the target has a severe red-flag score", func() {
			So(predictor.ApplyRedFlagPenalty(base, 76), ShouldAlmostEqual, 64, 0.001)
		})

		Convey("When the target has a high red-flag score", func() {
			So(predictor.ApplyRedFlagPenalty(base, 60), ShouldAlmostEqual, 72, 0.001)
		})

		Convey("When the target has a moderate red-flag score", func() {
			So(predictor.ApplyRedFlagPenalty(base, 30), ShouldAlmostEqual, 76, 0.001)
		})

		Convey("When the target is clean", func() {
			So(predictor.ApplyRedFlagPenalty(base, 25), ShouldEqual, base)
			So(predictor.ApplyRedFlagPenalty(base, 0), ShouldEqual, base)
		})

		Convey("When the band boundaries are hit exactly", func() {
			// Boundaries are exclusive: a score of exactly 75 takes the
			// high band, exactly 50 the moderate band.
			So(predictor.ApplyRedFlagPenalty(base, 75), ShouldAlmostEqual, 72, 0.001)
			So(predictor.ApplyRedFlagPenalty(base, 50), ShouldAlmostEqual, 76, 0.001)
		})

		Convey("When the input score is out of range", func() {
			So(predictor.ApplyRedFlagPenalty(150, 0), ShouldEqual, 100)
			So(predictor.ApplyRedFlagPenalty(-10, 90), ShouldEqual, 0)
		})
	})
}
