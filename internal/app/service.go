// Package service wires the valuation pipeline: dedupe, rate derivation,
// normalization, role scoring, xFP estimation, pricing, tags, and stars.
package service

import (
	"context"
	"time"

	"github.com/fantacopilot/valuation/internal/adapters/tabular"
	"github.com/fantacopilot/valuation/internal/domain/dedupe"
	"github.com/fantacopilot/valuation/internal/domain/model"
	"github.com/fantacopilot/valuation/internal/domain/normalize"
	"github.com/fantacopilot/valuation/internal/domain/pricing"
	"github.com/fantacopilot/valuation/internal/domain/rates"
	"github.com/fantacopilot/valuation/internal/domain/scoring"
	"github.com/fantacopilot/valuation/internal/domain/stars"
	"github.com/fantacopilot/valuation/internal/domain/tags"
	"github.com/fantacopilot/valuation/internal/domain/xfp"
	"github.com/fantacopilot/valuation/pkg/logger"
	"github.com/fantacopilot/valuation/pkg/metrics"
)

// Star rating sources.
const (
	StarsByPrice = "price"
	StarsByPerf  = "perf"
)

// Service runs the valuation pipeline over one ingested table.
type Service struct {
	scorer       *scoring.Scorer
	league       pricing.League
	starSource   string
	starBins     int
	seasonWindow int

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithScorer replaces the default role-weighted scorer.
func WithScorer(sc *scoring.Scorer) Option {
	return func(s *Service) {
		if sc != nil {
			s.scorer = sc
		}
	}
}

// WithLeague sets the auction parameters used for pricing.
func WithLeague(l pricing.League) Option {
	return func(s *Service) {
		if l.NumTeams > 0 && l.Budget > 0 {
			s.league = l
		}
	}
}

// WithStarSource selects what the star bins rank: price or perf.
func WithStarSource(src string) Option {
	return func(s *Service) {
		if src == StarsByPrice || src == StarsByPerf {
			s.starSource = src
		}
	}
}

// WithStarBins sets the target quantile bin count for star ratings.
func WithStarBins(n int) Option {
	return func(s *Service) {
		if n >= 2 {
			s.starBins = n
		}
	}
}

// WithSeasonWindow sets how many recent seasons survive ingestion.
func WithSeasonWindow(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.seasonWindow = n
		}
	}
}

// New constructs a Service with the standard league defaults.
func New(opts ...Option) *Service {
	s := &Service{
		scorer:       scoring.New(),
		league:       pricing.DefaultLeague(),
		starSource:   StarsByPrice,
		starBins:     stars.DefaultBins,
		seasonWindow: dedupe.DefaultSeasonWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run values every player in the ingested table. The only error condition
// is context cancellation; data problems degrade to fallbacks instead.
func (s *Service) Run(ctx context.Context, in *tabular.ReadResult) (*model.Result, error) {
	if s.logger == nil {
		s.logger = logger.Get()
	}

	res := &model.Result{RowsIngested: in.Ingested}
	metrics.AddRowsIngested(in.Ingested)
	metrics.AddRowsRejected(in.Rejected)

	// Ingestion fallbacks travel with the row that survives deduping.
	ingestFallbacks := make(map[string][]model.Fallback, len(in.Rows))
	records := make([]model.PlayerSeasonRecord, 0, len(in.Rows))
	for _, row := range in.Rows {
		records = append(records, row.Record)
		if len(row.Fallbacks) > 0 {
			ingestFallbacks[row.Record.RowKey()] = row.Fallbacks
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stage := func(name string, fn func()) {
		start := time.Now()
		fn()
		metrics.ObserveStageDuration(name, time.Since(start).Seconds())
	}

	stage("dedupe", func() {
		var collapsed int
		records, collapsed = dedupe.Collapse(records)
		afterCollapse := len(records)
		records = dedupe.RecentSeasons(records, s.seasonWindow)
		records = dedupe.LatestPerPlayer(records)

		res.RowsCollapsed = collapsed
		res.RowsDropped = afterCollapse - len(records)
		metrics.AddRowsCollapsed(collapsed)
	})

	if len(records) == 0 {
		s.logger.Warn(ctx, "no players survived ingestion",
			logger.Int("ingested", in.Ingested),
			logger.Int("rejected", in.Rejected),
		)
		return res, nil
	}

	players := make([]model.Valuation, len(records))
	pool := make([]model.Metrics, len(records))

	stage(rates.StageName, func() {
		for i, rec := range records {
			m, fb := rates.Compute(rec)
			players[i] = model.Valuation{
				Record:    rec,
				Metrics:   m,
				Fallbacks: append(ingestFallbacks[rec.RowKey()], fb...),
			}
			pool[i] = m
		}
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stage(normalize.StageName, func() {
		for _, fb := range normalize.ZScore(pool, s.scorer.MetricNames()) {
			// Population-level degradations: constant columns, flat rescale.
			s.logger.Warn(ctx, "normalization degraded",
				logger.String("field", fb.Field),
			)
			res.TotalFallbacks++
		}
	})

	stage("scoring", func() {
		rolePerf := make([]float64, len(players))
		defActions := make([]float64, len(players))
		for i := range players {
			p := &players[i]
			p.Perf = s.scorer.Score(p.Metrics)
			p.RolePerf = p.Perf[p.Record.Role]
			rolePerf[i] = p.RolePerf
			defActions[i] = p.Metrics.Get(model.MetricDefActionsPer90)
		}

		perfPct := normalize.PercentileRank(rolePerf)
		defPct := normalize.PercentileRank(defActions)
		for i := range players {
			p := &players[i]
			p.PerfPercentile = perfPct[i]
			p.Metrics[model.MetricPerformancePercentile] = perfPct[i]
			p.Metrics[model.MetricDefActionsPer90Rank] = defPct[i]
		}
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stage("xfp", func() {
		for i := range players {
			p := &players[i]
			est := xfp.Compute(p.Record.Role, p.Metrics, p.Record.Stats.Appearances)
			p.XFP90 = est.Per90
			p.XFPSeason = est.Season
		}
	})

	stage(pricing.StageName, func() {
		cands := make([]pricing.Candidate, len(players))
		for i, p := range players {
			cands[i] = pricing.Candidate{
				Role:        p.Record.Role,
				XFPSeason:   p.XFPSeason,
				Appearances: p.Record.Stats.Appearances,
			}
		}
		for i, est := range pricing.Allocate(s.league, cands) {
			p := &players[i]
			p.PriceExpected = est.Price
			p.RangeLow = est.RangeLow
			p.RangeHigh = est.RangeHigh
			if est.FallbackRate {
				p.Fallbacks = append(p.Fallbacks,
					model.Fallback{Stage: pricing.StageName, Field: "conversion_rate"})
			}
		}
	})

	stage("tags", func() {
		for i := range players {
			p := &players[i]
			p.Tags = tags.Classify(tags.Input{
				Role:            p.Record.Role,
				Metrics:         p.Metrics,
				PerfPercentile:  p.PerfPercentile,
				DefActionsRank:  p.Metrics.Get(model.MetricDefActionsPer90Rank),
				PenaltiesScored: p.Record.Stats.PenaltiesScored,
				PenaltyGoals:    p.Record.Stats.GoalsPenalties,
				Goals:           p.Record.Stats.Goals,
			})
		}
	})

	stage("stars", func() {
		s.assignStars(players)
	})

	rolePrice := make(map[model.Role]float64, len(model.Roles))
	fallbacksByStage := make(map[string]int)
	for i := range players {
		res.TotalFallbacks += len(players[i].Fallbacks)
		for _, f := range players[i].Fallbacks {
			fallbacksByStage[f.Stage]++
		}
		rolePrice[players[i].Record.Role] += float64(players[i].PriceExpected)
	}
	for stageName, n := range fallbacksByStage {
		metrics.AddFallbacks(stageName, n)
	}
	for _, role := range model.Roles {
		metrics.SetRolePriceTotal(role.String(), rolePrice[role])
	}
	metrics.AddPlayersValued(len(players))
	metrics.SetLastRun(float64(time.Now().Unix()))

	res.Players = players
	s.logger.Info(ctx, "valuation complete",
		logger.Int("players", len(players)),
		logger.Int("collapsed", res.RowsCollapsed),
		logger.Int("dropped", res.RowsDropped),
		logger.Int("fallbacks", res.TotalFallbacks),
	)
	return res, nil
}

// assignStars buckets each role's population separately so a mid-table
// defender is never compared against forwards.
func (s *Service) assignStars(players []model.Valuation) {
	byRole := make(map[model.Role][]int, len(model.Roles))
	for i, p := range players {
		byRole[p.Record.Role] = append(byRole[p.Record.Role], i)
	}

	for _, idx := range byRole {
		vals := make([]float64, len(idx))
		for j, i := range idx {
			if s.starSource == StarsByPerf {
				vals[j] = players[i].RolePerf
			} else {
				vals[j] = float64(players[i].PriceExpected)
			}
		}
		ratings := stars.Assign(vals, s.starBins)
		for j, i := range idx {
			players[i].Stars = ratings[j]
		}
	}
}
