package service_test

import (
	"context"
	"testing"

	"github.com/fantacopilot/valuation/internal/adapters/tabular"
	app "github.com/fantacopilot/valuation/internal/app"
	"github.com/fantacopilot/valuation/internal/domain/model"
	"github.com/fantacopilot/valuation/internal/domain/tags"
	"github.com/fantacopilot/valuation/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func row(name string, role model.Role, season int, team string, stats model.Stats) tabular.Row {
	return tabular.Row{Record: model.PlayerSeasonRecord{
		PlayerName: name,
		Role:       role,
		Season:     season,
		StatsTeam:  team,
		Stats:      stats,
	}}
}

func fullSeason(goals, assists float64) model.Stats {
	return model.Stats{
		Appearances:   34,
		Lineups:       33,
		MinutesPlayed: 3000,
		Goals:         goals,
		Assists:       assists,
		ShotsTotal:    goals * 4,
		ShotsOnTarget: goals * 2,
		KeyPasses:     30,
		RatingAverage: 6.6,
	}
}

func testInput() *tabular.ReadResult {
	rows := []tabular.Row{
		// Twin forwards with identical seasons.
		row("Twin A", model.Forward, 2425, "Inter", fullSeason(15, 4)),
		row("Twin B", model.Forward, 2425, "Milan", fullSeason(15, 4)),
		// A quieter forward.
		row("Quiet", model.Forward, 2425, "Lecce", fullSeason(4, 2)),
		// Midfielders.
		row("Regista", model.Midfielder, 2425, "Roma", fullSeason(5, 9)),
		row("Box2Box", model.Midfielder, 2425, "Atalanta", fullSeason(8, 5)),
		// Defenders.
		row("Stopper", model.Defender, 2425, "Juventus", model.Stats{
			Appearances: 36, Lineups: 36, MinutesPlayed: 3240,
			Tackles: 90, Interceptions: 60, Clearances: 120, ShotsBlocked: 30,
			DuelsTotal: 200, DuelsWon: 130, CleanSheets: 15, GoalsConceded: 20,
			RatingAverage: 6.7,
		}),
		row("Backup", model.Defender, 2425, "Juventus", model.Stats{
			Appearances: 12, Lineups: 4, MinutesPlayed: 500,
			Tackles: 10, Interceptions: 8, Clearances: 20,
			GoalsConceded: 10, RatingAverage: 6.0,
		}),
		// Keepers, one of them idle.
		row("Titolarissimo", model.Goalkeeper, 2425, "Napoli", model.Stats{
			Appearances: 38, Lineups: 38, MinutesPlayed: 3420,
			Saves: 110, GoalsConceded: 30, CleanSheets: 16,
			PenaltiesSaved: 2, PenaltiesTotal: 6, RatingAverage: 6.9,
		}),
		row("Panchinaro", model.Goalkeeper, 2425, "Napoli", model.Stats{}),
		// A duplicate scrape of Twin A with stale partial minutes.
		row("Twin A", model.Forward, 2425, "Inter", fullSeason(7, 2)),
		// A row from an old season, outside the window.
		row("Veterano", model.Midfielder, 2223, "Genoa", fullSeason(6, 6)),
		row("Veterano", model.Midfielder, 2324, "Genoa", fullSeason(6, 6)),
		row("Veterano", model.Midfielder, 2425, "Genoa", fullSeason(6, 6)),
	}
	return &tabular.ReadResult{Rows: rows, Ingested: len(rows)}
}

func TestRun(t *testing.T) {
	Convey("Given a season of scraped statistics", t, func() {
		svc := app.New()

		Convey("When running the pipeline", func() {
			res, err := svc.Run(context.Background(), testInput())
			So(err, ShouldBeNil)

			byName := make(map[string]model.Valuation, len(res.Players))
			for _, p := range res.Players {
				byName[p.Record.PlayerName] = p
			}

			Convey("Then duplicates collapse and old seasons drop", func() {
				So(res.RowsCollapsed, ShouldEqual, 1)
				So(res.RowsDropped, ShouldEqual, 2) // Veterano 2223 and 2324
				So(len(res.Players), ShouldEqual, 10)
			})

			Convey("Then the duplicate with fewer minutes lost", func() {
				So(byName["Twin A"].Record.Stats.Goals, ShouldEqual, 15)
			})

			Convey("Then every player got a full valuation row", func() {
				for _, p := range res.Players {
					So(p.PriceExpected, ShouldBeGreaterThanOrEqualTo, 1)
					So(p.RangeLow, ShouldBeLessThanOrEqualTo, p.RangeHigh)
					So(p.Stars, ShouldBeBetweenOrEqual, 0, 5)
					So(len(p.Tags), ShouldBeLessThanOrEqualTo, tags.MaxTags)
					So(len(p.Perf), ShouldEqual, 4)
				}
			})

			Convey("Then identical twins value identically", func() {
				a, b := byName["Twin A"], byName["Twin B"]
				So(a.RolePerf, ShouldAlmostEqual, b.RolePerf)
				So(a.PerfPercentile, ShouldAlmostEqual, b.PerfPercentile)
				So(a.XFPSeason, ShouldAlmostEqual, b.XFPSeason)
				So(a.PriceExpected, ShouldEqual, b.PriceExpected)
				So(a.Stars, ShouldEqual, b.Stars)
				So(a.Tags, ShouldResemble, b.Tags)
			})

			Convey("Then the prolific twins out-earn the quiet forward", func() {
				So(byName["Twin A"].XFPSeason, ShouldBeGreaterThan, byName["Quiet"].XFPSeason)
				So(byName["Twin A"].PriceExpected, ShouldBeGreaterThanOrEqualTo, byName["Quiet"].PriceExpected)
			})

			Convey("Then the twins earn the Bomber badge", func() {
				So(byName["Twin A"].Tags, ShouldContain, tags.TagBomber)
			})

			Convey("Then the idle keeper floors instead of exploding", func() {
				idle := byName["Panchinaro"]
				So(idle.XFPSeason, ShouldEqual, 0)
				So(idle.PriceExpected, ShouldEqual, 1)
				So(len(idle.Fallbacks), ShouldBeGreaterThan, 0)
			})

			Convey("Then the fallback total covers every player's list", func() {
				var sum int
				for _, p := range res.Players {
					sum += len(p.Fallbacks)
				}
				So(res.TotalFallbacks, ShouldBeGreaterThanOrEqualTo, sum)
			})
		})

		Convey("When ranking stars by performance instead of price", func() {
			svc := app.New(app.WithStarSource(app.StarsByPerf))
			res, err := svc.Run(context.Background(), testInput())
			So(err, ShouldBeNil)

			Convey("Then ratings still stay in range", func() {
				for _, p := range res.Players {
					So(p.Stars, ShouldBeBetweenOrEqual, 0, 5)
				}
			})
		})

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := svc.Run(ctx, testInput())

			Convey("Then the run aborts", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When every row was rejected upstream", func() {
			res, err := svc.Run(context.Background(), &tabular.ReadResult{Ingested: 3, Rejected: 3})
			So(err, ShouldBeNil)

			Convey("Then the result is empty but well-formed", func() {
				So(res.Players, ShouldBeEmpty)
				So(res.RowsIngested, ShouldEqual, 3)
			})
		})
	})
}
