package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"
	"github.com/weiihann/ilpbench/workload"
)

// KnownWorkloads returns the list of runnable workload names.
func KnownWorkloads() []string {
	return []string{"branch", "parallel", "simpleloop"}
}

// RunConfig holds parameters for executing one workload.
type RunConfig struct {
	Repeats int
}

// Runner executes a single named workload.
type Runner struct {
	Name   string
	Logger *slog.Logger
}

// NewRunner creates a Runner for the named workload.
func NewRunner(name string, logger *slog.Logger) *Runner {
	return &Runner{
		Name:   name,
		Logger: logger.With(slog.String("workload", name)),
	}
}

// Run executes the workload cfg.Repeats times (at least once) and
// returns the aggregated result. Final values and captured output come
// from the last run; latency percentiles are computed across all runs.
func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	repeats := cfg.Repeats
	if repeats < 1 {
		repeats = 1
	}

	// Elapsed times are recorded in microseconds and reported in
	// milliseconds; anything under a microsecond rounds up to the
	// histogram floor.
	hist := hdrhistogram.New(1, int64(time.Hour/time.Microsecond), 3)

	result := &Result{
		Workload: r.Name,
		Runs:     repeats,
	}

	for run := 1; run <= repeats; run++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run %s: %w", r.Name, err)
		}

		var out bytes.Buffer

		start := time.Now()
		finalValue, err := execute(r.Name, &out)
		elapsed := time.Since(start)

		if err != nil {
			return nil, fmt.Errorf("run %s: %w", r.Name, err)
		}

		us := elapsed.Microseconds()
		if us < 1 {
			us = 1
		}

		if err := hist.RecordValue(us); err != nil {
			return nil, fmt.Errorf("record elapsed for %s: %w", r.Name, err)
		}

		result.FinalValue = finalValue
		result.Output = out.String()
		result.TotalMs += float64(us) / 1000

		r.Logger.Info("workload run finished",
			slog.Int("run", run),
			slog.Duration("elapsed", elapsed),
		)
	}

	result.MinMs = float64(hist.Min()) / 1000
	result.P50Ms = float64(hist.ValueAtQuantile(50)) / 1000
	result.P99Ms = float64(hist.ValueAtQuantile(99)) / 1000
	result.MaxMs = float64(hist.Max()) / 1000

	return result, nil
}

// execute runs the named workload once with its default constants,
// writing its banners to w, and returns the printed final value(s).
func execute(name string, w io.Writer) (string, error) {
	switch name {
	case "branch":
		res := workload.NewBranch(workload.BranchConfig{}).Run(w)

		return fmt.Sprintf("sum=%d", res.Sum), nil

	case "parallel":
		res, err := workload.NewParallel(workload.ParallelConfig{}).Run(w)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("sum=%d", res.Sum), nil

	case "simpleloop":
		res := workload.NewSimpleLoop(workload.SimpleLoopConfig{}).Run(w)

		return fmt.Sprintf("result1=%d result2=%d result3=%d",
			res.Result1, res.Result2, res.Result3), nil

	default:
		return "", fmt.Errorf("unknown workload %q", name)
	}
}
