// Command branchbench runs the branch-heavy workload standalone: a
// fixed iteration count of data-dependent branching over time-seeded
// random draws, with no flags or environment.
package main

import (
	"os"

	"github.com/weiihann/ilpbench/workload"
)

func main() {
	b := workload.NewBranch(workload.BranchConfig{})
	b.Run(os.Stdout)
}
