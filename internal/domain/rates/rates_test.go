package rates_test

import (
	"testing"

	"github.com/fantacopilot/valuation/internal/domain/model"
	"github.com/fantacopilot/valuation/internal/domain/rates"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPer90(t *testing.T) {
	Convey("Given the per-90 helper", t, func() {
		Convey("When minutes are positive", func() {
			v, fell := rates.Per90(10, 1800)
			So(v, ShouldAlmostEqual, 0.5)
			So(fell, ShouldBeFalse)
		})

		Convey("When minutes are zero", func() {
			v, fell := rates.Per90(10, 0)
			So(v, ShouldEqual, 0)
			So(fell, ShouldBeTrue)
		})

		Convey("When minutes are negative", func() {
			v, fell := rates.Per90(10, -90)
			So(v, ShouldEqual, 0)
			So(fell, ShouldBeTrue)
		})
	})
}

func TestRatio(t *testing.T) {
	Convey("Given the safe ratio helper", t, func() {
		Convey("When the denominator is positive", func() {
			v, fell := rates.Ratio(3, 4)
			So(v, ShouldAlmostEqual, 0.75)
			So(fell, ShouldBeFalse)
		})

		Convey("When the denominator is zero", func() {
			v, fell := rates.Ratio(3, 0)
			So(v, ShouldEqual, 0)
			So(fell, ShouldBeTrue)
		})
	})
}

func TestCompute(t *testing.T) {
	Convey("Given a forward with a full season", t, func() {
		rec := model.PlayerSeasonRecord{
			PlayerName: "Bomber",
			Role:       model.Forward,
			Stats: model.Stats{
				Appearances:     30,
				Lineups:         28,
				MinutesPlayed:   2700,
				Goals:           15,
				Assists:         6,
				ShotsTotal:      60,
				ShotsOnTarget:   30,
				KeyPasses:       30,
				CrossesTotal:    30,
				CrossesAccurate: 10,
				Injuries:        3,
				RatingAverage:   6.8,
			},
		}

		Convey("When deriving the metric set", func() {
			m, fb := rates.Compute(rec)

			Convey("Then the per-90 rates are scaled to match minutes", func() {
				So(m.Get(model.MetricGoalsPer90), ShouldAlmostEqual, 0.5)
				So(m.Get(model.MetricAssistsPer90), ShouldAlmostEqual, 0.2)
				So(m.Get(model.MetricKeyPassesPer90), ShouldAlmostEqual, 1.0)
			})

			Convey("Then the success rates divide by attempts", func() {
				So(m.Get(model.MetricConversionRate), ShouldAlmostEqual, 0.25)
				So(m.Get(model.MetricShotsOnTargetRate), ShouldAlmostEqual, 0.5)
				So(m.Get(model.MetricCrossAccuracy), ShouldAlmostEqual, 1.0/3)
			})

			Convey("Then the reliability metrics use appearances", func() {
				So(m.Get(model.MetricStartingRate), ShouldAlmostEqual, 28.0/30)
				So(m.Get(model.MetricMinutesShare), ShouldAlmostEqual, 1.0)
				So(m.Get(model.MetricInjuryRisk), ShouldAlmostEqual, 1.0)
			})

			Convey("Then the composites combine their inputs", func() {
				So(m.Get(model.MetricWingThreatIndex), ShouldAlmostEqual, 1.0/3)
				So(m.Get(model.MetricRatingAverage), ShouldAlmostEqual, 6.8)
			})

			Convey("Then only the truly undefined ratios degrade", func() {
				fields := fallbackFields(fb)
				So(fields, ShouldContainKey, model.MetricDribbleSuccessRate)
				So(fields, ShouldContainKey, model.MetricPenSaveRate)
				So(fields, ShouldNotContainKey, model.MetricGoalsPer90)
				So(fields, ShouldNotContainKey, model.MetricConversionRate)
			})
		})
	})

	Convey("Given a player with zero minutes", t, func() {
		m, fb := rates.Compute(model.PlayerSeasonRecord{PlayerName: "Idle", Role: model.Midfielder})

		Convey("Then every rate degrades to zero instead of NaN", func() {
			So(m.Get(model.MetricGoalsPer90), ShouldEqual, 0)
			So(m.Get(model.MetricSavesPer90), ShouldEqual, 0)
			So(m.Get(model.MetricMinutesShare), ShouldEqual, 0)
			So(m.Get(model.MetricInjuryRisk), ShouldEqual, 0)
		})

		Convey("Then each degraded field is reported", func() {
			fields := fallbackFields(fb)
			So(fields, ShouldContainKey, model.MetricGoalsPer90)
			So(fields, ShouldContainKey, model.MetricStartingRate)
			for _, f := range fb {
				So(f.Stage, ShouldEqual, rates.StageName)
			}
		})
	})

	Convey("Given a goalkeeper", t, func() {
		rec := model.PlayerSeasonRecord{
			PlayerName: "Wall",
			Role:       model.Goalkeeper,
			Stats: model.Stats{
				Appearances:    20,
				Lineups:        20,
				MinutesPlayed:  1800,
				Saves:          60,
				GoalsConceded:  20,
				CleanSheets:    8,
				PenaltiesSaved: 1,
				PenaltiesTotal: 4,
			},
		}

		Convey("When deriving the metric set", func() {
			m, _ := rates.Compute(rec)

			Convey("Then the keeper rates come out", func() {
				So(m.Get(model.MetricSavesPer90), ShouldAlmostEqual, 3.0)
				So(m.Get(model.MetricSaveSuccessRate), ShouldAlmostEqual, 0.75)
				So(m.Get(model.MetricPenSaveRate), ShouldAlmostEqual, 0.25)
				So(m.Get(model.MetricCleanSheetRate), ShouldAlmostEqual, 0.4)
			})
		})
	})
}

func fallbackFields(fb []model.Fallback) map[string]struct{} {
	out := make(map[string]struct{}, len(fb))
	for _, f := range fb {
		out[f.Field] = struct{}{}
	}
	return out
}
