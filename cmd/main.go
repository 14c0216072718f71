// Command fairsplit reads a scored roster, races constrained and
// unconstrained annealing scenarios in parallel, and writes the best
// balanced grouping it found. Ctrl+C stops the search early and still
// reports the best results so far.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/okian/fairsplit/internal/adapters/report"
	"github.com/okian/fairsplit/internal/adapters/roster"
	"github.com/okian/fairsplit/internal/config"
	"github.com/okian/fairsplit/internal/engine/anneal"
	"github.com/okian/fairsplit/internal/engine/race"
	"github.com/okian/fairsplit/pkg/logger"
	"github.com/okian/fairsplit/pkg/metrics"
)

// displayInterval is how often the live progress line refreshes.
const displayInterval = 500 * time.Millisecond

// metricsServerTimeouts for the optional exposition endpoint.
const (
	metricsReadTimeout       = 10 * time.Second
	metricsReadHeaderTimeout = 5 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM. Interrupting stops every
	// worker within one iteration; each still yields its best solution.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, cfg.MetricsAddr)
	}

	participants, err := roster.ReadExcel(cfg.InputFile)
	if err != nil {
		log.Error(ctx, "roster rejected", logger.String("input", cfg.InputFile), logger.Error(err))
		os.Exit(1)
	}
	if err := roster.ValidateGroupCount(participants, cfg.GroupCount); err != nil {
		log.Error(ctx, "roster rejected", logger.Error(err))
		os.Exit(1)
	}
	log.Info(ctx, "roster loaded",
		logger.Int("participants", len(participants)),
		logger.Int("groups", cfg.GroupCount),
	)

	orch := race.New(
		race.WithReplicas(cfg.Replicas),
		race.WithPolishPasses(cfg.PolishPasses),
	)

	displayDone := make(chan struct{})
	var displayOnce sync.Once
	go liveDisplay(ctx, orch, displayDone)
	stopDisplay := func() { displayOnce.Do(func() { close(displayDone) }) }
	defer stopDisplay()

	result, err := orch.Run(ctx, participants, cfg.GroupCount, scenarios(cfg))
	stopDisplay()
	fmt.Println()
	if err != nil {
		log.Error(ctx, "race failed", logger.Error(err))
		os.Exit(1)
	}

	fmt.Print(report.Summary(result))

	if cfg.OutputFile != "" {
		if err := report.WriteExcel(cfg.OutputFile, result); err != nil {
			log.Error(ctx, "failed to write report", logger.String("output", cfg.OutputFile), logger.Error(err))
			os.Exit(1)
		}
		log.Info(ctx, "report written", logger.String("output", cfg.OutputFile))
	}
}

// scenarios derives the two standard scenario configurations from the
// process config.
func scenarios(cfg *config.Config) []anneal.Params {
	base := anneal.Params{
		TimeBudget:      time.Duration(cfg.TimeBudgetSeconds) * time.Second,
		InitialTemp:     cfg.InitialTemp,
		CoolingFactor:   cfg.CoolingFactor,
		TempFloor:       cfg.TempFloor,
		ReheatFraction:  cfg.ReheatFraction,
		ReheatAfter:     cfg.ReheatAfter,
		ReheatBurst:     cfg.ReheatBurst,
		RecomputeEvery:  cfg.RecomputeEvery,
		SwapProbability: cfg.SwapProbability,
		FocusWindow:     cfg.FocusWindow,
		RetryLimit:      cfg.RetryLimit,
		ProgressEvery:   cfg.ProgressEvery,
		ProgressMinGap:  time.Duration(cfg.ProgressMinGapMS) * time.Millisecond,
	}

	constrained := base
	constrained.Scenario = "constrained"
	constrained.Constrained = true

	unconstrained := base
	unconstrained.Scenario = "unconstrained"
	unconstrained.Constrained = false

	return []anneal.Params{constrained, unconstrained}
}

// liveDisplay rewrites one status line with the best cost per scenario until
// the race ends.
func liveDisplay(ctx context.Context, orch *race.Orchestrator, done <-chan struct{}) {
	ticker := time.NewTicker(displayInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			best := orch.BestKnown()
			if len(best) == 0 {
				continue
			}
			line := "\r"
			for _, scenario := range []string{"constrained", "unconstrained"} {
				if cost, ok := best[scenario]; ok {
					line += fmt.Sprintf("best %s: %.4f  ", scenario, cost)
				} else {
					line += fmt.Sprintf("best %s: init...  ", scenario)
				}
			}
			fmt.Print(line)
		}
	}
}

// serveMetrics exposes the Prometheus registry until ctx is cancelled.
func serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       metricsReadTimeout,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	logger.Get().Info(ctx, "serving metrics", logger.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Get().Warn(ctx, "metrics server stopped", logger.Error(err))
	}
}
