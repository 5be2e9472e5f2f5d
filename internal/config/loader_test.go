package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fantacopilot/valuation/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given no file and no environment overrides", t, func() {
		os.Unsetenv("FANTA_CONFIG")

		Convey("When loading", func() {
			cfg, err := config.Load()

			Convey("Then the defaults come back validated", func() {
				So(err, ShouldBeNil)
				So(cfg.LeagueBudget, ShouldEqual, 500)
				So(cfg.InputPath, ShouldEqual, "player_statistics.csv")
			})
		})
	})

	Convey("Given environment overrides", t, func() {
		os.Setenv("FANTA_LEAGUE_BUDGET", "650")
		os.Setenv("FANTA_STAR_SOURCE", "perf")
		defer os.Unsetenv("FANTA_LEAGUE_BUDGET")
		defer os.Unsetenv("FANTA_STAR_SOURCE")

		Convey("When loading", func() {
			cfg, err := config.Load()

			Convey("Then the overrides win over the defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.LeagueBudget, ShouldEqual, 650)
				So(cfg.StarSource, ShouldEqual, "perf")
			})
		})
	})

	Convey("Given a YAML config file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "fanta.yaml")
		yaml := "league_budget: 1000\nnum_teams: 10\noutput: out.csv\n"
		So(os.WriteFile(path, []byte(yaml), 0o600), ShouldBeNil)
		os.Setenv("FANTA_CONFIG", path)
		defer os.Unsetenv("FANTA_CONFIG")

		Convey("When loading", func() {
			cfg, err := config.Load()

			Convey("Then file values layer over the defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.LeagueBudget, ShouldEqual, 1000)
				So(cfg.NumTeams, ShouldEqual, 10)
				So(cfg.OutputPath, ShouldEqual, "out.csv")
				So(cfg.StarBins, ShouldEqual, 10)
			})
		})

		Convey("When an env var contradicts the file", func() {
			os.Setenv("FANTA_NUM_TEAMS", "12")
			defer os.Unsetenv("FANTA_NUM_TEAMS")

			cfg, err := config.Load()

			Convey("Then the env var has the last word", func() {
				So(err, ShouldBeNil)
				So(cfg.NumTeams, ShouldEqual, 12)
			})
		})
	})

	Convey("Given a config file that fails validation", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "fanta.yaml")
		So(os.WriteFile(path, []byte("league_budget: -5\n"), 0o600), ShouldBeNil)
		os.Setenv("FANTA_CONFIG", path)
		defer os.Unsetenv("FANTA_CONFIG")

		Convey("When loading", func() {
			_, err := config.Load()

			Convey("Then the invalid value is rejected", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})

	Convey("Given a missing config file", t, func() {
		os.Setenv("FANTA_CONFIG", "/nonexistent/fanta.yaml")
		defer os.Unsetenv("FANTA_CONFIG")

		Convey("When loading", func() {
			_, err := config.Load()

			Convey("Then loading fails with the load sentinel", func() {
				So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
			})
		})
	})
}
