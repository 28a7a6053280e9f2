// Package separate implements the component separator (spec §4.C): it
// replaces unreachable ("infinite") pairs with a finite, controlled
// repulsion distance so disconnected crochet pieces don't carry an
// unbounded target distance into the stress solver.
//
// Grounded on the teacher's matrix/builder.go applyMetricClosure, which
// scans a matrix's upper triangle once and rewrites entries in place.
package separate

import (
	"github.com/svtassev/crochetlayout/graph"
	"github.com/svtassev/crochetlayout/graph/matrix"
)

// MinFactor is the threshold at or below which Run is a no-op (spec §4.C:
// "Driven by a configuration scalar separate > 0.01").
const MinFactor = 0.01

// Run overwrites every (i,j) pair, i<j, whose current distance exceeds
// the maximum finite non-sentinel distance D_max, replacing it with
// D_max * factor. No-op when factor <= MinFactor.
func Run(g *graph.Graph, factor float64) {
	if factor <= MinFactor {
		return
	}

	n := g.NumNodes
	dMax := -1.0
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			d := g.Dist.At(i, j)
			if d >= 0 && !matrix.IsSentinelInf(d) && d > dMax {
				dMax = d
			}
		}
	}

	if dMax < 0 {
		// Vacuous case: no finite non-sentinel pair exists at all (e.g. a
		// graph of only isolated nodes). spec §8 scenario 3 defines D_max
		// as 0 here, not the C++ original's incidental -1 sentinel.
		dMax = 0
	}

	target := dMax * factor
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			if g.Dist.At(i, j) > dMax {
				g.Dist.Set(i, j, target)
				g.Dist.Set(j, i, target)
			}
		}
	}
}
