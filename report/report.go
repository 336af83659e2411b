// Package report formats workload run results and gem5 analysis data
// into comparison tables.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/weiihann/ilpbench/gemstats"
	"github.com/weiihann/ilpbench/runner"
)

// Generate writes a markdown comparison table for the given run results.
// Slowdown is relative to the workload with the fastest median run.
func Generate(w io.Writer, results []runner.Result) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to report")
	}

	fastest := findFastest(results)

	fmt.Fprintln(w, "## Workload Results")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "| Workload | Runs | Min | P50 | P99 | Max "+
		"| Slowdown | Final |")
	fmt.Fprintln(w, "|----------|------|-----|-----|-----|-----"+
		"|----------|-------|")

	for _, r := range results {
		slowdown := 1.0
		if fastest > 0 && r.P50Ms > 0 {
			slowdown = r.P50Ms / fastest
		}

		fmt.Fprintf(w, "| %s | %d | %s | %s | %s | %s | %.2fx | %s |\n",
			r.Workload,
			r.Runs,
			formatMs(r.MinMs),
			formatMs(r.P50Ms),
			formatMs(r.P99Ms),
			formatMs(r.MaxMs),
			slowdown,
			r.FinalValue,
		)
	}

	return nil
}

// GenerateJSON writes run results as JSON to w.
func GenerateJSON(w io.Writer, results []runner.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(results)
}

// GenerateAnalysis writes a markdown comparison table for parsed gem5
// experiment results, one row per experiment/workload pair.
func GenerateAnalysis(w io.Writer, experiments map[string]gemstats.Experiment) error {
	if len(experiments) == 0 {
		return fmt.Errorf("no experiments to report")
	}

	fmt.Fprintln(w, "## gem5 Performance Comparison")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "| Experiment | Workload | IPC | Branch Acc "+
		"| DCache Hit | L2 Hit | Sim Time |")
	fmt.Fprintln(w, "|------------|----------|-----|------------"+
		"|------------|--------|----------|")

	for _, exp := range sortedKeys(experiments) {
		workloads := experiments[exp]

		for _, wl := range sortedKeys(workloads) {
			m := workloads[wl]

			fmt.Fprintf(w, "| %s | %s | %.4f | %s | %s | %s | %.6fs |\n",
				exp,
				wl,
				m.IPC,
				formatRate(m.BranchAccuracy()),
				formatRate(m.DCacheHitRate()),
				formatRate(m.L2CacheHitRate()),
				m.SimSeconds,
			)
		}
	}

	return nil
}

// GenerateAnalysisJSON writes parsed gem5 experiments as JSON to w.
func GenerateAnalysisJSON(w io.Writer, experiments map[string]gemstats.Experiment) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(experiments)
}

func findFastest(results []runner.Result) float64 {
	fastest := math.MaxFloat64
	for _, r := range results {
		if r.P50Ms > 0 && r.P50Ms < fastest {
			fastest = r.P50Ms
		}
	}

	if fastest == math.MaxFloat64 {
		return 0
	}

	return fastest
}

func formatMs(ms float64) string {
	if ms < 1000 {
		return fmt.Sprintf("%.2fms", ms)
	}

	return fmt.Sprintf("%.2fs", ms/1000)
}

func formatRate(rate float64) string {
	if rate == 0 {
		return "-"
	}

	return fmt.Sprintf("%.2f%%", rate*100)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
