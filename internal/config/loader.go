package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/fantacopilot/valuation/internal/domain/model"
)

// budgetWeightTolerance bounds how far the role shares may drift from 1.0
// before the config is rejected instead of silently skewing every price.
const budgetWeightTolerance = 0.01

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if FANTA_CONFIG is set
//  3. env (prefix FANTA_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("FANTA_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: FANTA_LEAGUE_BUDGET, FANTA_NUM_TEAMS, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("FANTA_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "fanta_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the pipeline would otherwise turn into
// silently-wrong prices.
func (c *Config) Validate() error {
	if c.LeagueBudget <= 0 {
		return fmt.Errorf("%w: league_budget must be positive, got %d", ErrInvalidConfig, c.LeagueBudget)
	}
	if c.NumTeams <= 0 {
		return fmt.Errorf("%w: num_teams must be positive, got %d", ErrInvalidConfig, c.NumTeams)
	}
	if c.StarSource != "price" && c.StarSource != "perf" {
		return fmt.Errorf("%w: star_source must be price or perf, got %q", ErrInvalidConfig, c.StarSource)
	}

	var weightSum float64
	for code, w := range c.RoleBudgetWeight {
		if _, err := model.ParseRole(code); err != nil {
			return fmt.Errorf("%w: role_budget_weight key %q: %w", ErrInvalidConfig, code, err)
		}
		if w < 0 {
			return fmt.Errorf("%w: role_budget_weight[%s] must not be negative", ErrInvalidConfig, code)
		}
		weightSum += w
	}
	if math.Abs(weightSum-1.0) > budgetWeightTolerance {
		return fmt.Errorf("%w: role_budget_weight shares sum to %.3f, want 1.0", ErrInvalidConfig, weightSum)
	}

	for code, n := range c.QuotaTit {
		if _, err := model.ParseRole(code); err != nil {
			return fmt.Errorf("%w: quota_tit key %q: %w", ErrInvalidConfig, code, err)
		}
		if n <= 0 {
			return fmt.Errorf("%w: quota_tit[%s] must be positive", ErrInvalidConfig, code)
		}
	}
	return nil
}
