// Package geom provides the small vector-arithmetic helpers shared by the
// stress solver, the Jacobian projection, and the physics relaxer: pulling
// a node's coordinates out of (or back into) a flat position buffer, and
// the delta/squared-norm primitives the force kernels need.
//
// Positions in this module are always stored as a flat []float64 of
// length N*dim (spec §3: "Coordinates live in a separate flat buffer
// positions[N*D]"), but the per-node arithmetic itself is naturally 3D
// vector algebra, so it is expressed with gonum's r3.Vec — the unused
// third component is simply zero in 2D layouts. Grounded on gonum's own
// graph/layout/eades.go, which represents force-directed layout positions
// as r3.Vec regardless of the requested output dimensionality.
package geom

import "gonum.org/v1/gonum/spatial/r3"

// At reads node i's coordinates out of a flat buffer of dimension dim.
func At(positions []float64, i, dim int) r3.Vec {
	var v r3.Vec
	for d := 0; d < dim; d++ {
		v[d] = positions[i*dim+d]
	}

	return v
}

// Set writes v's first dim components into node i's slot of a flat
// buffer.
func Set(positions []float64, i, dim int, v r3.Vec) {
	for d := 0; d < dim; d++ {
		positions[i*dim+d] = v[d]
	}
}

// Add accumulates v's first dim components into node i's slot.
func Add(positions []float64, i, dim int, v r3.Vec) {
	for d := 0; d < dim; d++ {
		positions[i*dim+d] += v[d]
	}
}

// Norm2 returns the squared Euclidean norm of v restricted to its first
// dim components.
func Norm2(v r3.Vec, dim int) float64 {
	var s float64
	for d := 0; d < dim; d++ {
		s += v[d] * v[d]
	}

	return s
}
