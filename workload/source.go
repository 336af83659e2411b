// Package workload implements three CPU pipeline micro-benchmark kernels:
// a branch-heavy loop, a data-parallel unrolled array transform, and a
// scalar dependency chain. Each kernel prints a start banner and a
// completion banner with its final accumulated value(s).
package workload

import (
	mrand "math/rand"
	"time"
)

// Source supplies the random draws for the branch workload. The default
// implementation is seeded from wall-clock time, so branch results vary
// run to run; tests substitute a fixed sequence instead.
type Source interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
}

type timeSource struct {
	rng *mrand.Rand
}

// NewTimeSource returns a Source seeded from the current time.
func NewTimeSource() Source {
	return &timeSource{
		rng: mrand.New(mrand.NewSource(time.Now().UnixNano())),
	}
}

func (s *timeSource) IntN(n int) int {
	return s.rng.Intn(n)
}
