package workload

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// failingAllocator fails the failAt-th allocation (1-based; 0 never
// fails) and counts releases.
type failingAllocator struct {
	failAt int
	allocs int
	frees  int
}

func (f *failingAllocator) Alloc(n int) ([]int32, error) {
	f.allocs++
	if f.allocs == f.failAt {
		return nil, errors.New("out of memory")
	}

	return make([]int32, n), nil
}

func (f *failingAllocator) Free([]int32) {
	f.frees++
}

func makeBuffers(n int) (a, b, c, d []int32) {
	a = make([]int32, n)
	b = make([]int32, n)
	c = make([]int32, n)
	d = make([]int32, n)
	initBuffers(a, b, c, d)

	return a, b, c, d
}

func TestTransformPassReference(t *testing.T) {
	a, b, c, d := makeBuffers(16)
	transformPass(a, b, c, d)

	// Per index i in the touched range: add lane 3i, multiply lane 9i,
	// shift lane 8i, so A becomes 20i and B the XOR of the low bytes.
	// The last block (12..15) lies beyond the len-4 bound and keeps its
	// initialized values.
	wantA := []int32{0, 20, 40, 60, 80, 100, 120, 140, 160, 180, 200, 220,
		12, 13, 14, 15}
	wantB := []int32{0, 10, 20, 18, 40, 34, 36, 42, 80, 74, 68, 66,
		24, 26, 28, 30}

	for i := range wantA {
		if a[i] != wantA[i] {
			t.Errorf("a[%d] = %d, want %d", i, a[i], wantA[i])
		}
		if b[i] != wantB[i] {
			t.Errorf("b[%d] = %d, want %d", i, b[i], wantB[i])
		}
	}

	// C and D are never written.
	for i := range c {
		if c[i] != int32(i)*3 {
			t.Errorf("c[%d] = %d, want %d", i, c[i], int32(i)*3)
		}
		if d[i] != int32(i)*4 {
			t.Errorf("d[%d] = %d, want %d", i, d[i], int32(i)*4)
		}
	}
}

func TestTransformPassRemainder(t *testing.T) {
	// With 15 elements the loop bound is 11, so blocks start at 0, 4
	// and 8; the trailing three elements stay untouched.
	a, b, c, d := makeBuffers(15)
	transformPass(a, b, c, d)

	for i := 12; i < 15; i++ {
		if a[i] != int32(i) {
			t.Errorf("a[%d] = %d, want untouched %d", i, a[i], i)
		}
		if b[i] != int32(i)*2 {
			t.Errorf("b[%d] = %d, want untouched %d", i, b[i], int32(i)*2)
		}
	}

	if a[11] == 11 {
		t.Error("a[11] should have been transformed")
	}
}

func TestParallelChecksum(t *testing.T) {
	p := NewParallel(ParallelConfig{ArraySize: 16, Iterations: 1})

	var buf bytes.Buffer
	res, err := p.Run(&buf)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Sum != 1970 {
		t.Errorf("sum = %d, want 1970", res.Sum)
	}
	if !strings.Contains(buf.String(), "sum=1970") {
		t.Errorf("completion banner missing checksum:\n%s", buf.String())
	}
}

func TestParallelDeterministic(t *testing.T) {
	var buf1, buf2 bytes.Buffer

	res1, err := NewParallel(ParallelConfig{ArraySize: 64, Iterations: 3}).Run(&buf1)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	res2, err := NewParallel(ParallelConfig{ArraySize: 64, Iterations: 3}).Run(&buf2)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if res1.Sum != res2.Sum {
		t.Errorf("sums differ: %d vs %d", res1.Sum, res2.Sum)
	}
	if buf1.String() != buf2.String() {
		t.Error("output is not byte-identical across runs")
	}
}

func TestParallelAllocationFailure(t *testing.T) {
	for failAt := 1; failAt <= 4; failAt++ {
		t.Run(fmt.Sprintf("buffer_%d", failAt), func(t *testing.T) {
			alloc := &failingAllocator{failAt: failAt}
			p := NewParallel(ParallelConfig{
				ArraySize:  8,
				Iterations: 1,
				Allocator:  alloc,
			})

			var buf bytes.Buffer
			_, err := p.Run(&buf)
			if err == nil {
				t.Fatal("expected error on failed allocation")
			}

			if got := buf.String(); got != "Memory allocation failed\n" {
				t.Errorf("output = %q, want failure message only", got)
			}
			if alloc.frees != failAt-1 {
				t.Errorf("freed %d buffers, want %d", alloc.frees, failAt-1)
			}
		})
	}
}

func TestParallelReleasesBuffers(t *testing.T) {
	alloc := &failingAllocator{}
	p := NewParallel(ParallelConfig{
		ArraySize:  8,
		Iterations: 1,
		Allocator:  alloc,
	})

	var buf bytes.Buffer
	if _, err := p.Run(&buf); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if alloc.allocs != 4 {
		t.Errorf("allocated %d buffers, want 4", alloc.allocs)
	}
	if alloc.frees != 4 {
		t.Errorf("freed %d buffers, want 4", alloc.frees)
	}
}
