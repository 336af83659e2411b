// Package main provides the CLI entry point for ilpbench, a CPU
// pipeline micro-benchmark suite.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/weiihann/ilpbench/gemstats"
	"github.com/weiihann/ilpbench/report"
	"github.com/weiihann/ilpbench/runner"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "ilpbench",
		Short: "CPU pipeline micro-benchmark suite",
		Long: `Ilpbench runs three micro-benchmark kernels that exercise distinct
CPU pipeline behaviors (branch prediction, instruction-level parallelism,
and dependency chains) and compares gem5 simulation results across
pipeline configurations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(logger))
	root.AddCommand(newAnalyzeCmd(logger))

	return root
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	var (
		workloads  []string
		repeats    int
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run micro-benchmark workloads",
		Long: `Run one or more of the pipeline workloads in-process, timing each
run and reporting latency percentiles across repeats.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWorkloads(
				cmd.Context(), logger, workloads, repeats, outputJSON,
			)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&workloads, "workloads", runner.KnownWorkloads(),
		"Workloads to run (branch,parallel,simpleloop)")
	flags.IntVar(&repeats, "repeats", 1,
		"Times to run each workload")
	flags.BoolVar(&outputJSON, "json", false,
		"Output results as JSON instead of table")

	return cmd
}

func runWorkloads(
	ctx context.Context,
	logger *slog.Logger,
	names []string,
	repeats int,
	outputJSON bool,
) error {
	if len(names) == 0 {
		return fmt.Errorf(
			"at least one workload must be specified via --workloads",
		)
	}

	logger.InfoContext(ctx, "starting benchmark run",
		slog.Any("workloads", names),
		slog.Int("repeats", repeats),
	)

	results := make([]runner.Result, 0, len(names))

	for _, name := range names {
		r := runner.NewRunner(name, logger)

		result, err := r.Run(ctx, runner.RunConfig{Repeats: repeats})
		if err != nil {
			return fmt.Errorf("run %s: %w", name, err)
		}

		results = append(results, *result)
	}

	if outputJSON {
		if err := report.GenerateJSON(os.Stdout, results); err != nil {
			return fmt.Errorf("generate JSON report: %w", err)
		}
	} else {
		if err := report.Generate(os.Stdout, results); err != nil {
			return fmt.Errorf("generate report: %w", err)
		}
	}

	logger.InfoContext(ctx, "benchmark run complete")

	return nil
}

func newAnalyzeCmd(logger *slog.Logger) *cobra.Command {
	var (
		resultsDir string
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze gem5 simulation results",
		Long: `Parse gem5 stats.txt dumps from an experiment results tree
(<dir>/<experiment>/<workload>/stats.txt) and report IPC, branch
prediction accuracy, and cache hit rates per experiment and workload.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return analyzeResults(
				cmd.Context(), logger, resultsDir, outputJSON,
			)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&resultsDir, "results", "results",
		"Directory containing gem5 experiment results")
	flags.BoolVar(&outputJSON, "json", false,
		"Output analysis as JSON instead of table")

	return cmd
}

func analyzeResults(
	ctx context.Context,
	logger *slog.Logger,
	resultsDir string,
	outputJSON bool,
) error {
	logger.InfoContext(ctx, "analyzing gem5 results",
		slog.String("results_dir", resultsDir),
	)

	experiments, err := gemstats.LoadExperiments(logger, resultsDir)
	if err != nil {
		return fmt.Errorf("load experiments: %w", err)
	}

	if outputJSON {
		if err := report.GenerateAnalysisJSON(os.Stdout, experiments); err != nil {
			return fmt.Errorf("generate JSON analysis: %w", err)
		}
	} else {
		if err := report.GenerateAnalysis(os.Stdout, experiments); err != nil {
			return fmt.Errorf("generate analysis: %w", err)
		}
	}

	return nil
}
