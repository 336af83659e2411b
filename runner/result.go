// Package runner executes the micro-benchmark workloads in-process and
// aggregates per-run timing into latency percentiles.
package runner

// Result holds the aggregated outcome of executing one workload.
type Result struct {
	Workload   string  `json:"workload"`
	Runs       int     `json:"runs"`
	MinMs      float64 `json:"min_ms"`
	P50Ms      float64 `json:"p50_ms"`
	P99Ms      float64 `json:"p99_ms"`
	MaxMs      float64 `json:"max_ms"`
	TotalMs    float64 `json:"total_ms"`
	FinalValue string  `json:"final_value"`
	Output     string  `json:"output,omitempty"`
}
