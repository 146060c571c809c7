// Command louvain computes a hierarchical community partition of an
// undirected graph using the Louvain modularity-maximization method.
//
// Usage:
//
//	louvain <edge-file>
//
// The edge file is plain text, one "u v" vertex-ID pair per line. Output is
// one line per epoch reporting the community count, total degree, and
// modularity reached.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vxgraph/louvain/internal/config"
)

var (
	flagWorkers     int
	flagMaxEpochs   int
	flagMaxPasses   int
	flagEpsilon     float64
	flagConfigPath  string
	flagProgress    bool
	flagTrace       bool
	flagMetricsAddr string
	flagWatch       bool
	flagLogJSON     bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "louvain <edge-file>",
		Short: "Partition a graph into communities with the Louvain method",
		Long: `louvain reads an edge-list file, builds a weighted adjacency graph, and
repeatedly applies local-moving and contraction until the number of
communities stops shrinking, reporting the modularity reached at each
epoch.`,
		Args: cobra.ExactArgs(1),
		RunE: runRoot,
	}

	cmd.Flags().IntVar(&flagWorkers, "workers", 0, "worker-pool size (0 = runtime.NumCPU())")
	cmd.Flags().IntVar(&flagMaxEpochs, "max-epochs", 0, "cap on outer contraction epochs (0 = default)")
	cmd.Flags().IntVar(&flagMaxPasses, "max-passes", 0, "cap on inner local-moving passes per epoch (0 = default)")
	cmd.Flags().Float64Var(&flagEpsilon, "epsilon", 0, "inner-loop convergence threshold (0 = default)")
	cmd.Flags().StringVar(&flagConfigPath, "config", "", "optional YAML config file")
	cmd.Flags().BoolVar(&flagProgress, "progress", true, "print \\r<pass>/<cap> progress during local moving")
	cmd.Flags().BoolVar(&flagTrace, "trace", false, "export OpenTelemetry spans to stdout")
	cmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "serve GET /metrics and /healthz on this address (empty disables)")
	cmd.Flags().BoolVar(&flagWatch, "watch", false, "re-run the whole pipeline whenever the edge file changes")
	cmd.Flags().BoolVar(&flagLogJSON, "log-json", false, "emit structured logs as JSON instead of text")

	return cmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	flagConfig := config.Config{
		InputPath:   args[0],
		Workers:     flagWorkers,
		MaxEpochs:   flagMaxEpochs,
		MaxPasses:   flagMaxPasses,
		Epsilon:     flagEpsilon,
		MetricsAddr: flagMetricsAddr,
	}

	cfg, err := config.Load(flagConfigPath, flagConfig)
	if err != nil {
		return err
	}

	// Boolean flags only flip a default-false value to true under
	// applyOverrides' non-zero merge rule (internal/config), so an
	// explicit false (e.g. --progress=false) is applied directly here
	// once Changed() confirms the user actually passed the flag.
	if cmd.Flags().Changed("progress") {
		cfg.Progress = flagProgress
	}
	if cmd.Flags().Changed("trace") {
		cfg.Trace = flagTrace
	}
	if cmd.Flags().Changed("watch") {
		cfg.Watch = flagWatch
	}
	if cmd.Flags().Changed("log-json") {
		cfg.LogJSON = flagLogJSON
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	runID := uuid.NewString()
	logger := newLogger(cfg.LogJSON, runID)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return drive(ctx, cfg, logger, runID)
}

func newLogger(jsonOutput bool, runID string) *slog.Logger {
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler).With("run_id", runID)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error returned from the run to the process exit code
// described in §6/§7: usage errors are 1, everything else is 1 as well
// since this is a single-command CLI with no partial-success states.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
