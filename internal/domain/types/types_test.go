package types_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/meshrank/internal/domain/model"
	types "github.com/okian/meshrank/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRecommendation(t *testing.T) {
	Convey("Given a Recommendation struct", t, func() {
		Convey("When creating a populated recommendation", func() {
			rec := types.Recommendation{
				CandidateID:            "cand-123",
				RankingScore:           82.5,
				CompatibilityScore:     78.25,
				JobOpportunityScore:    60,
				MentorshipValueScore:   85,
				CollaborationPotential: 40,
				ROITimeframe:           model.TimeframeMonths,
				Candidate: model.ProfileSummary{
					ProfileID: "cand-123",
					Name:      "Candidate Name",
				},
			}

			Convey("Then it should hold the assigned values", func() {
				So(rec.CandidateID, ShouldEqual, "cand-123")
				So(rec.RankingScore, ShouldEqual, 82.5)
				So(rec.ROITimeframe, ShouldEqual, model.TimeframeMonths)
				So(rec.Candidate.ProfileID, ShouldEqual, rec.CandidateID)
			})

			Convey("Then it should marshal with the wire field names", func() {
				data, err := json.Marshal(rec)
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, `"candidate_id":"cand-123"`)
				So(string(data), ShouldContainSubstring, `"ranking_score":82.5`)
				So(string(data), ShouldContainSubstring, `"predicted_mentorship_value":85`)
				So(string(data), ShouldContainSubstring, `"roi_timeframe":"months"`)
			})
		})
	})
}

func TestEvaluation(t *testing.T) {
	Convey("Given an Evaluation struct", t, func() {
		eval := types.Evaluation{
			CompatibilityScore: 72,
			Verdict:            "CONNECT",
			ROI: types.ROIBlock{
				JobOpportunity:    55,
				ExpectedTimeframe: model.TimeframeWeeks,
			},
			RedFlags: types.RedFlagBlock{
				HasRedFlags:  true,
				RedFlagScore: 60,
				Reasons:      "Job hopper (3+ jobs in short period)",
			},
			HiddenGem: types.GemBlock{
				IsGem:    false,
				GemScore: 35,
			},
			Explanation: "PEER COLLABORATION: similar experience levels.",
		}

		Convey("When it is marshalled", func() {
			data, err := json.Marshal(eval)

			Convey("Then the verdict should serialize as recommendation", func() {
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, `"recommendation":"CONNECT"`)
				So(string(data), ShouldContainSubstring, `"roi_metrics"`)
				So(string(data), ShouldContainSubstring, `"has_red_flags":true`)
			})
		})
	})
}

func TestGemRecommendation(t *testing.T) {
	Convey("Given a GemRecommendation struct", t, func() {
		gem := types.GemRecommendation{
			CandidateID:        "gem-1",
			GemScore:           88,
			GemType:            "super_connector",
			GemReason:          "Super connector: 2500 connections in Technology",
			CompatibilityScore: 64,
		}

		Convey("When it is marshalled", func() {
			data, err := json.Marshal(gem)

			Convey("Then the gem fields should use their wire names", func() {
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, `"gem_score":88`)
				So(string(data), ShouldContainSubstring, `"gem_type":"super_connector"`)
			})
		})
	})
}
