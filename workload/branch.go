package workload

import (
	"fmt"
	"io"
)

// DefaultBranchIterations is the iteration count of the branch workload
// when none is configured.
const DefaultBranchIterations = 100000

// BranchConfig controls the branch workload. Zero fields fall back to
// defaults: DefaultBranchIterations and a time-seeded Source.
type BranchConfig struct {
	Iterations int
	Source     Source
}

// BranchResult holds the final accumulator value of a branch run.
type BranchResult struct {
	Sum int32 `json:"sum"`
}

// Branch exercises a mix of predictable and data-dependent conditional
// branches over a fixed iteration count. The accumulator is a 32-bit
// signed integer with wraparound on overflow.
type Branch struct {
	iterations int
	src        Source
}

// NewBranch creates a Branch workload from the given config.
func NewBranch(cfg BranchConfig) *Branch {
	if cfg.Iterations == 0 {
		cfg.Iterations = DefaultBranchIterations
	}
	if cfg.Source == nil {
		cfg.Source = NewTimeSource()
	}

	return &Branch{
		iterations: cfg.Iterations,
		src:        cfg.Source,
	}
}

// Run executes the kernel, writing the start and completion banners to w.
func (b *Branch) Run(w io.Writer) BranchResult {
	fmt.Fprintf(w, "Starting branch-intensive workload with %d iterations\n",
		b.iterations)

	var sum int32

	for i := 0; i < b.iterations; i++ {
		randomVal := int32(b.src.IntN(100))

		// Predictable branch: taken on every 4th iteration.
		if i%4 == 0 {
			sum += randomVal * 2
		} else {
			sum += randomVal
		}

		// Data-dependent branch: unpredictable for a uniform source.
		if randomVal > 50 {
			sum += int32(i)
			if randomVal > 75 {
				sum *= 2
			}
		} else {
			sum -= int32(i)
			if randomVal < 25 {
				sum /= 2
			}
		}

		// Range guard keyed on the accumulator itself.
		if sum > 1000000 {
			sum %= 1000000
			if sum < 500000 {
				sum += randomVal * int32(i)
			}
		}
	}

	fmt.Fprintf(w, "Branch-intensive computation completed: sum=%d\n", sum)

	return BranchResult{Sum: sum}
}
