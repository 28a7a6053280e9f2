// Package matrix provides the dense, row-major distance matrix backing
// one Graph, plus its paired immediate-neighbor bitmap.
//
// The teacher library (katalvlaran/lvlath/matrix) supports several
// interchangeable backends (dense, sparse, incidence) behind a Matrix
// interface, because it must serve graphs of very different densities.
// This module only ever holds one dense N x N buffer for the lifetime of
// a single layout call, so the interface layer is dropped in favor of a
// single concrete struct (spec §9, "Flat matrices vs. nested containers").
package matrix

import "math"

// sentinelInf is the "infinite" placeholder used for unreachable pairs,
// matching the C++ original's const double INF = 1e300 (not
// math.Inf(1)) so that sqrt(sentinelInf) remains finite and usable as a
// threshold, per spec §4.C.
const sentinelInf = 1e300

// Dense is a flat, row-major N x N distance matrix with a parallel
// immediate-neighbor bitmap.
type Dense struct {
	n         int
	data      []float64
	immediate []bool
}

// NewDense allocates an n x n matrix: +sentinelInf off-diagonal, 0 on the
// diagonal, and immediate[i][i] = true for every i (spec §3).
func NewDense(n int) *Dense {
	d := &Dense{
		n:         n,
		data:      make([]float64, n*n),
		immediate: make([]bool, n*n),
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			d.data[i*n+j] = sentinelInf
		}
		d.immediate[i*n+i] = true
	}

	return d
}

// N returns the matrix dimension.
func (d *Dense) N() int { return d.n }

// At returns the stored distance between i and j.
func (d *Dense) At(i, j int) float64 { return d.data[i*d.n+j] }

// Set stores the distance between i and j (not symmetric by itself;
// callers wanting symmetry call Set twice, as Graph.AddEdge does).
func (d *Dense) Set(i, j int, v float64) { d.data[i*d.n+j] = v }

// Immediate reports whether (i,j) is a direct edge or i==j.
func (d *Dense) Immediate(i, j int) bool { return d.immediate[i*d.n+j] }

// SetImmediate marks (i,j) and (j,i) as immediate neighbors.
func (d *Dense) SetImmediate(i, j int) {
	d.immediate[i*d.n+j] = true
	d.immediate[j*d.n+i] = true
}

// IsSentinelInf reports whether v should be treated as "unreachable",
// using the same threshold as the original: values at or above
// sqrt(sentinelInf)-1 are sentinel infinities (spec §4.C).
func IsSentinelInf(v float64) bool {
	return v >= math.Sqrt(sentinelInf)-1
}

// SentinelInf returns the sentinel "infinite" distance value.
func SentinelInf() float64 { return sentinelInf }
