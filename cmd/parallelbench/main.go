// Command parallelbench runs the ILP-friendly workload standalone:
// unrolled independent transforms over four fixed-size buffers. Exits 1
// if any buffer allocation fails.
package main

import (
	"os"

	"github.com/weiihann/ilpbench/workload"
)

func main() {
	p := workload.NewParallel(workload.ParallelConfig{})
	if _, err := p.Run(os.Stdout); err != nil {
		os.Exit(1)
	}
}
