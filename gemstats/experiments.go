package gemstats

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Experiment maps workload name to its parsed metrics.
type Experiment map[string]Metrics

// LoadExperiments walks resultsDir, treating each subdirectory as an
// experiment (e.g. basic_pipeline, branch_prediction, superscalar) and
// each directory below it as a workload run holding a stats.txt dump.
// Workload directories without a stats file are skipped with a warning;
// experiments that yield no workloads are dropped.
func LoadExperiments(logger *slog.Logger, resultsDir string) (map[string]Experiment, error) {
	entries, err := os.ReadDir(resultsDir)
	if err != nil {
		return nil, fmt.Errorf("read results dir: %w", err)
	}

	experiments := make(map[string]Experiment)

	for _, exp := range entries {
		if !exp.IsDir() {
			continue
		}

		expDir := filepath.Join(resultsDir, exp.Name())

		workloads, err := os.ReadDir(expDir)
		if err != nil {
			return nil, fmt.Errorf("read experiment %s: %w", exp.Name(), err)
		}

		data := make(Experiment)

		for _, wl := range workloads {
			if !wl.IsDir() {
				continue
			}

			statsPath := filepath.Join(expDir, wl.Name(), "stats.txt")

			m, err := ParseFile(statsPath)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					logger.Warn("stats file missing",
						slog.String("path", statsPath),
					)

					continue
				}

				return nil, err
			}

			data[wl.Name()] = m
		}

		if len(data) > 0 {
			experiments[exp.Name()] = data
		}
	}

	return experiments, nil
}
