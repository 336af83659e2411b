package workload

import (
	"fmt"
	"io"
)

// DefaultSimpleLoopIterations is the iteration count of the simple loop
// workload when none is configured.
const DefaultSimpleLoopIterations = 1000000

// SimpleLoopConfig controls the simple loop workload.
type SimpleLoopConfig struct {
	Iterations int
}

// SimpleLoopResult holds the three result scalars from the final
// iteration.
type SimpleLoopResult struct {
	Result1 int32 `json:"result1"`
	Result2 int32 `json:"result2"`
	Result3 int32 `json:"result3"`
}

// SimpleLoop is the dependency-chain kernel: two independent operations
// per iteration feeding a third that depends on both, with the low bytes
// folded back into the scalars. Fully deterministic.
type SimpleLoop struct {
	iterations int
}

// NewSimpleLoop creates a SimpleLoop workload from the given config.
func NewSimpleLoop(cfg SimpleLoopConfig) *SimpleLoop {
	if cfg.Iterations == 0 {
		cfg.Iterations = DefaultSimpleLoopIterations
	}

	return &SimpleLoop{iterations: cfg.Iterations}
}

// Run executes the kernel, writing the start and completion banners to w.
func (s *SimpleLoop) Run(w io.Writer) SimpleLoopResult {
	fmt.Fprintf(w, "Starting simple loop workload with %d iterations\n",
		s.iterations)

	st := newLoopState()
	for i := 0; i < s.iterations; i++ {
		st.step()
	}

	fmt.Fprintf(w, "Computation completed: result1=%d, result2=%d, result3=%d\n",
		st.result1, st.result2, st.result3)

	return SimpleLoopResult{
		Result1: st.result1,
		Result2: st.result2,
		Result3: st.result3,
	}
}

// loopState carries the four scalars and three results across iterations.
type loopState struct {
	a, b, c, d                int32
	result1, result2, result3 int32
}

func newLoopState() loopState {
	return loopState{a: 1, b: 2, c: 3, d: 4}
}

// step computes two independent results and a third dependent on both,
// then folds the low bytes back into the scalars.
func (s *loopState) step() {
	s.result1 = s.a + s.b
	s.result2 = s.c * s.d
	s.result3 = s.result1 + s.result2

	s.a = s.result1 & 0xFF
	s.b = s.result2 & 0xFF
	s.c = s.result3 & 0xFF
	s.d = (s.a + s.b + s.c) & 0xFF
}
