// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load() layers defaults, optional YAML file, and environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"github.com/fantacopilot/valuation/internal/domain/model"
	"github.com/fantacopilot/valuation/internal/domain/pricing"
)

// Config contains process configuration for one pipeline run.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// InputPath is the raw player-statistics CSV.
	InputPath string `koanf:"input"`

	// OutputPath receives the valuation table CSV.
	OutputPath string `koanf:"output"`

	// MetricsAddr optionally serves Prometheus metrics while a batch run
	// is in flight, e.g. ":9091". Empty disables the endpoint.
	MetricsAddr string `koanf:"metrics_addr"`

	// LeagueBudget is the credits each manager can spend at auction.
	LeagueBudget int `koanf:"league_budget"`

	// NumTeams is the number of managers in the league.
	NumTeams int `koanf:"num_teams"`

	// QuotaTit is the required starters per role, keyed GK/DEF/MID/FWD.
	QuotaTit map[string]int `koanf:"quota_tit"`

	// RoleBudgetWeight is each role's share of the total credit pool,
	// keyed GK/DEF/MID/FWD. Shares must sum to 1.0.
	RoleBudgetWeight map[string]float64 `koanf:"role_budget_weight"`

	// StarSource selects what the star bins rank: "price" or "perf".
	StarSource string `koanf:"star_source"`

	// StarBins is the target quantile bin count for star ratings.
	StarBins int `koanf:"star_bins"`

	// MinAppearances gates the starter pool used for price conversion.
	MinAppearances int `koanf:"min_appearances"`

	// SeasonWindow keeps only the N most recent seasons before scoring.
	SeasonWindow int `koanf:"season_window"`
}

// New creates a Config with the standard 8-manager league defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		InputPath:    "player_statistics.csv",
		OutputPath:   "player_valuations.csv",
		LeagueBudget: pricing.DefaultLeagueBudget,
		NumTeams:     pricing.DefaultNumTeams,
		QuotaTit: map[string]int{
			"GK": 1, "DEF": 3, "MID": 4, "FWD": 3,
		},
		RoleBudgetWeight: map[string]float64{
			"FWD": 0.40, "MID": 0.31, "DEF": 0.21, "GK": 0.08,
		},
		StarSource:     "price",
		StarBins:       10,
		MinAppearances: pricing.DefaultMinAppearances,
		SeasonWindow:   2,
	}
}

// League converts the string-keyed config maps into the role-keyed league
// parameters the allocator consumes. Callers must Load (and therefore
// validate) first: unknown role keys are ignored here.
func (c *Config) League() pricing.League {
	quota := make(map[model.Role]int, len(c.QuotaTit))
	for code, n := range c.QuotaTit {
		if role, err := model.ParseRole(code); err == nil {
			quota[role] = n
		}
	}
	weight := make(map[model.Role]float64, len(c.RoleBudgetWeight))
	for code, w := range c.RoleBudgetWeight {
		if role, err := model.ParseRole(code); err == nil {
			weight[role] = w
		}
	}
	return pricing.League{
		Budget:         c.LeagueBudget,
		NumTeams:       c.NumTeams,
		Quota:          quota,
		BudgetWeight:   weight,
		MinAppearances: c.MinAppearances,
	}
}
