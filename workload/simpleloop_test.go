package workload

import (
	"bytes"
	"strings"
	"testing"
)

func TestSimpleLoopGoldenTrace(t *testing.T) {
	// Exact state after each of the first 10 iterations, starting from
	// a,b,c,d = 1,2,3,4.
	want := []struct {
		a, b, c, d, r1, r2, r3 int32
	}{
		{3, 12, 15, 30, 3, 12, 15},
		{15, 194, 209, 162, 15, 450, 465},
		{209, 66, 19, 38, 209, 33858, 34067},
		{19, 210, 229, 202, 275, 722, 997},
		{229, 178, 151, 46, 229, 46258, 46487},
		{151, 34, 185, 114, 407, 6946, 7353},
		{185, 98, 27, 54, 185, 21090, 21275},
		{27, 178, 205, 154, 283, 1458, 1741},
		{205, 82, 31, 62, 205, 31570, 31775},
		{31, 130, 161, 66, 287, 1922, 2209},
	}

	st := newLoopState()

	for i, w := range want {
		st.step()

		got := [7]int32{st.a, st.b, st.c, st.d, st.result1, st.result2, st.result3}
		expected := [7]int32{w.a, w.b, w.c, w.d, w.r1, w.r2, w.r3}

		if got != expected {
			t.Errorf("iteration %d: state = %v, want %v", i+1, got, expected)
		}
	}
}

func TestSimpleLoopRun(t *testing.T) {
	s := NewSimpleLoop(SimpleLoopConfig{Iterations: 10})

	var buf bytes.Buffer
	res := s.Run(&buf)

	want := SimpleLoopResult{Result1: 287, Result2: 1922, Result3: 2209}
	if res != want {
		t.Errorf("result = %+v, want %+v", res, want)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 output lines, got %d:\n%s", len(lines), buf.String())
	}

	if lines[0] != "Starting simple loop workload with 10 iterations" {
		t.Errorf("unexpected start banner: %q", lines[0])
	}

	wantDone := "Computation completed: result1=287, result2=1922, result3=2209"
	if lines[1] != wantDone {
		t.Errorf("completion banner = %q, want %q", lines[1], wantDone)
	}
}

func TestSimpleLoopDeterministic(t *testing.T) {
	var buf1, buf2 bytes.Buffer

	res1 := NewSimpleLoop(SimpleLoopConfig{Iterations: 1000}).Run(&buf1)
	res2 := NewSimpleLoop(SimpleLoopConfig{Iterations: 1000}).Run(&buf2)

	if res1 != res2 {
		t.Errorf("results differ: %+v vs %+v", res1, res2)
	}
	if buf1.String() != buf2.String() {
		t.Error("output is not byte-identical across runs")
	}
}

func TestSimpleLoopDefaults(t *testing.T) {
	s := NewSimpleLoop(SimpleLoopConfig{})

	var buf bytes.Buffer
	s.Run(&buf)

	want := "Starting simple loop workload with 1000000 iterations"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("expected default iteration banner, got:\n%s", buf.String())
	}
}
