// Package jacobian implements the dihedral Jacobian projection (spec
// §4.D, 3D only): a per-iteration geometric constraint that re-places a
// quadruple of nodes along the computed normal of a reference triangle,
// orienting local "fabric" patches consistently.
//
// Grounded on the Jacobian block of
// original_source/crochet-editor/old/graph.cpp's performLayout (3D
// branch) for exact numerics, and on gonum's own graph/layout/eades.go
// for representing layout positions as gonum.org/v1/gonum/spatial/r3.Vec
// values.
package jacobian

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/svtassev/crochetlayout/graph"
	"github.com/svtassev/crochetlayout/internal/geom"
)

// normEpsilon guards the cross-product normalization against a
// degenerate (zero-area) reference triangle (spec §4.D, §7).
const normEpsilon = 1e-7

// Apply projects every tuple in place onto the flat position buffer.
// i3 and i4 are overwritten even when pinned: this contradicts the pin
// invariant, but spec §9 directs a faithful behavior match over strict
// pin enforcement here.
func Apply(tuples []graph.JacobianTuple, positions []float64, dim int) {
	for _, jt := range tuples {
		p1 := geom.At(positions, jt.I1, dim)
		p2 := geom.At(positions, jt.I2, dim)
		p3 := geom.At(positions, jt.I3, dim)
		p4 := geom.At(positions, jt.I4, dim)

		vx := r3.Sub(p3, p1)
		vy := r3.Sub(p2, p3)
		vn := r3.Cross(vx, vy)

		norm := r3.Norm(vn) + normEpsilon
		vn = r3.Scale(1/norm, vn)

		newP4 := r3.Add(r3.Scale(0.5, r3.Add(p3, p4)), r3.Scale(jt.Value/2, vn))
		newP3 := r3.Sub(newP4, r3.Scale(jt.Value, vn))

		geom.Set(positions, jt.I4, dim, newP4)
		geom.Set(positions, jt.I3, dim, newP3)
	}
}
