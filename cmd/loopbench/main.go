// Command loopbench runs the simple dependency-chain workload
// standalone: four scalars and a short add/multiply chain per iteration,
// fully deterministic.
package main

import (
	"os"

	"github.com/weiihann/ilpbench/workload"
)

func main() {
	s := workload.NewSimpleLoop(workload.SimpleLoopConfig{})
	s.Run(os.Stdout)
}
