package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fantacopilot/valuation/internal/adapters/tabular"
	app "github.com/fantacopilot/valuation/internal/app"
	"github.com/fantacopilot/valuation/internal/config"
	"github.com/fantacopilot/valuation/pkg/logger"
	"github.com/fantacopilot/valuation/pkg/metrics"
)

// Metrics endpoint timeouts.
const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Optional Prometheus endpoint for scrapes while the batch runs.
	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsSrv = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: readHeaderTimeout,
		}
		go func() {
			log.Info(ctx, "serving metrics", logger.String("addr", cfg.MetricsAddr))
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error(ctx, "metrics server failed", logger.Error(err))
			}
		}()
	}

	log.Info(ctx, "reading player statistics", logger.String("input", cfg.InputPath))
	in, err := tabular.ReadFile(cfg.InputPath)
	if err != nil {
		log.Error(ctx, "ingestion failed", logger.Error(err))
		os.Exit(1)
	}
	log.Info(ctx, "ingested table",
		logger.Int("rows", in.Ingested),
		logger.Int("rejected", in.Rejected),
	)

	svc := app.New(
		app.WithLogger(log),
		app.WithLeague(cfg.League()),
		app.WithStarSource(cfg.StarSource),
		app.WithStarBins(cfg.StarBins),
		app.WithSeasonWindow(cfg.SeasonWindow),
	)

	res, err := svc.Run(ctx, in)
	if err != nil {
		log.Error(ctx, "valuation aborted", logger.Error(err))
		os.Exit(1)
	}

	if err := tabular.WriteFile(cfg.OutputPath, res); err != nil {
		log.Error(ctx, "export failed", logger.Error(err))
		os.Exit(1)
	}
	log.Info(ctx, "wrote valuation table",
		logger.String("output", cfg.OutputPath),
		logger.Int("players", len(res.Players)),
		logger.Int("fallbacks", res.TotalFallbacks),
	)

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			log.Error(ctx, "metrics server shutdown failed", logger.Error(err))
		}
	}
}
