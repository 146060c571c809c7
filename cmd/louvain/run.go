package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/vxgraph/louvain/internal/config"
	"github.com/vxgraph/louvain/internal/loader"
	"github.com/vxgraph/louvain/internal/louvain"
	"github.com/vxgraph/louvain/internal/louvaingraph"
	"github.com/vxgraph/louvain/internal/telemetry"
	"github.com/vxgraph/louvain/internal/watch"
)

// drive wires the loader, graph builder, and Louvain engine into the
// epoch-by-epoch driver loop described in §2/§6, optionally wrapped in
// tracing, metrics, and watch-mode re-execution.
func drive(ctx context.Context, cfg *config.Config, logger *slog.Logger, runID string) error {
	var tp *telemetry.TracerProvider
	if cfg.Trace {
		var err error
		tp, err = telemetry.NewTracerProvider(ctx, runID)
		if err != nil {
			return err
		}
		defer tp.Shutdown(context.Background())
	}

	var metrics *telemetry.Metrics
	if cfg.MetricsAddr != "" {
		var err error
		metrics, err = telemetry.NewMetrics()
		if err != nil {
			return err
		}
		defer metrics.Shutdown(context.Background())

		srvCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := telemetry.Serve(srvCtx, cfg.MetricsAddr); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	run := func(ctx context.Context) error {
		return runOnce(ctx, cfg, logger, metrics)
	}

	if !cfg.Watch {
		return run(ctx)
	}

	debounce := time.Duration(cfg.WatchDebounceMillis) * time.Millisecond
	logger.Info("watching for changes", "path", cfg.InputPath, "debounce", debounce)
	return watch.Run(ctx, cfg.InputPath, debounce, run)
}

// runOnce performs exactly one from-scratch pass: load, build, then the
// epoch loop, printing the lines described in §6.
func runOnce(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *telemetry.Metrics) error {
	ctx, end := telemetry.StartStage(ctx, "loader.read")
	edges, err := loader.Load(ctx, cfg.InputPath, loader.Options{Workers: cfg.Workers})
	end(err)
	if err != nil {
		return err
	}

	ctx, end = telemetry.StartStage(ctx, "graph.build")
	g, err := louvaingraph.Build(ctx, edges, 1, louvaingraph.Options{Workers: cfg.Workers})
	end(err)
	if err != nil {
		return err
	}

	q0 := 0.0
	if g.NumVertices() > 0 {
		q0 = louvain.Modularity(g)
	}
	fmt.Printf("init: communities=%d, degrees=%d, modularity=%g\n", g.NumCommunities(), g.TotalDegree, q0)

	if g.NumVertices() == 0 {
		return nil
	}

	prevCommunities := g.NumCommunities()
	for epoch := 1; epoch <= cfg.MaxEpochs; epoch++ {
		epochCtx, endEpoch := telemetry.StartStage(ctx, "louvain.epoch")
		started := time.Now()

		var progress *telemetry.Progress
		if cfg.Progress && telemetry.ProgressEnabled() {
			progress = telemetry.NewProgress(os.Stdout, cfg.MaxPasses)
		}

		next, q, err := louvain.Run(epochCtx, g, louvain.Options{
			MaxPasses: cfg.MaxPasses,
			Epsilon:   cfg.Epsilon,
			OnPass: func(pass int, modularity float64, moved int) {
				if progress != nil {
					progress.Update(pass)
				}
				if metrics != nil {
					metrics.VerticesMoved.Add(epochCtx, int64(moved))
				}
			},
		})
		if progress != nil {
			progress.Finish()
		}
		endEpoch(err)
		if err != nil {
			return err
		}

		if metrics != nil {
			metrics.EpochDuration.Record(epochCtx, time.Since(started).Seconds())
			metrics.Modularity.Record(epochCtx, q)
		}

		communities := next.NumVertices()
		fmt.Printf("epoch %d: communities=%d, degrees=%d, modularity=%g\n", epoch, communities, g.TotalDegree, q)

		if communities >= prevCommunities {
			break
		}
		prevCommunities = communities
		g = next
	}

	return nil
}
