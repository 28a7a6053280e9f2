// Package physics implements the post-pass damped spring relaxation that
// runs after the stress solver: a rescale to match the APSP target scale,
// followed by a fixed number of kick-drift-kick integration steps with
// implicit damping (spec §4.E).
//
// Grounded on original_source/crochet-editor/old/graph.cpp's
// rescaleCoordinates and physicsStep for exact numerics.
package physics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/svtassev/crochetlayout/graph"
	"github.com/svtassev/crochetlayout/internal/geom"
)

// rescaleEpsilon guards the rescale ratio against a near-zero current
// edge-length sum (spec §4.E).
const rescaleEpsilon = 1e-9

// springEpsilon guards a spring force's direction against a near-zero
// current edge length (spec §4.E).
const springEpsilon = 1e-9

// Relaxer runs the physics post-pass for one Config.
type Relaxer struct {
	cfg Config
}

// NewRelaxer builds a Relaxer, applying opts over DefaultConfig().
func NewRelaxer(opts ...Option) *Relaxer {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Relaxer{cfg: cfg}
}

// Run applies the rescale-then-integrate post-pass in place, a no-op when
// ViscousIterations <= 0 (spec §4.E).
func (r *Relaxer) Run(g *graph.Graph, positions []float64, dim int) {
	if r.cfg.ViscousIterations <= 0 {
		return
	}

	r.rescale(g, positions, dim)
	r.integrate(g, positions, dim)
}

// rescale multiplies every unpinned coordinate by the ratio of summed
// target edge-lengths (read from the APSP matrix) to summed current
// edge-lengths, leaving positions untouched if the current sum is
// negligible (spec §4.E).
func (r *Relaxer) rescale(g *graph.Graph, positions []float64, dim int) {
	var current, target []float64

	for i := 0; i < g.NumNodes; i++ {
		for _, j := range g.Neighbors[i] {
			if j < i {
				continue
			}

			delta := geom.At(positions, i, dim).Sub(geom.At(positions, j, dim))
			current = append(current, math.Sqrt(geom.Norm2(delta, dim)))
			target = append(target, g.Dist.At(i, j))
		}
	}

	if len(current) == 0 {
		return
	}

	currentSum := floats.Sum(current)
	targetSum := floats.Sum(target)
	if currentSum <= rescaleEpsilon {
		return
	}

	scale := targetSum / currentSum
	for i := 0; i < g.NumNodes; i++ {
		if g.Pinned[i] {
			continue
		}

		geom.Set(positions, i, dim, r3.Scale(scale, geom.At(positions, i, dim)))
	}
}

// integrate runs ViscousIterations kick-drift-kick steps. Kick 1 is
// skipped on the very first step, so that step drifts with zero
// velocities and the spring forces computed before the loop never reach
// the velocities: kick 1 is a no-op on step zero.
func (r *Relaxer) integrate(g *graph.Graph, positions []float64, dim int) {
	n := g.NumNodes
	velocities := make([]float64, n*dim)
	forces := make([]float64, n*dim)

	dt := r.cfg.Timestep
	gamma := r.cfg.Damping

	for i := range forces {
		forces[i] = 0
	}
	r.springForces(g, positions, forces, dim)

	for iter := 0; iter < r.cfg.ViscousIterations; iter++ {
		if iter > 0 {
			r.kick(g, velocities, forces, dim, dt, gamma)
		}

		r.drift(g, positions, velocities, dim, dt)

		for i := range forces {
			forces[i] = 0
		}
		r.springForces(g, positions, forces, dim)

		r.kick(g, velocities, forces, dim, dt, gamma)
	}
}

// kick applies the implicit-damping velocity update to every unpinned
// node: v <- (dt*f + 2v) / (2 + dt*gamma).
func (r *Relaxer) kick(g *graph.Graph, velocities, forces []float64, dim int, dt, gamma float64) {
	for i := 0; i < g.NumNodes; i++ {
		if g.Pinned[i] {
			continue
		}

		for d := 0; d < dim; d++ {
			idx := i*dim + d
			velocities[idx] = (dt*forces[idx] + 2*velocities[idx]) / (2 + dt*gamma)
		}
	}
}

// drift advances every unpinned node's position by velocity*dt.
func (r *Relaxer) drift(g *graph.Graph, positions, velocities []float64, dim int, dt float64) {
	for i := 0; i < g.NumNodes; i++ {
		if g.Pinned[i] {
			continue
		}

		pos := geom.At(positions, i, dim).Add(r3.Scale(dt, geom.At(velocities, i, dim)))
		geom.Set(positions, i, dim, pos)
	}
}

// springForces recomputes the spring force for every edge from
// graph.DistToNeighbor (never the APSP matrix, per spec §4.E), adding the
// result into forces, skipping pinned endpoints.
func (r *Relaxer) springForces(g *graph.Graph, positions, forces []float64, dim int) {
	for i := 0; i < g.NumNodes; i++ {
		for idx, j := range g.Neighbors[i] {
			if j < i {
				continue
			}

			l := g.DistToNeighbor[i][idx]
			delta := geom.At(positions, i, dim).Sub(geom.At(positions, j, dim))
			d := math.Sqrt(geom.Norm2(delta, dim))
			if d <= springEpsilon {
				continue
			}

			force := (d - l) / d
			df := r3.Scale(force, delta)

			if !g.Pinned[i] {
				geom.Add(forces, i, dim, r3.Scale(-1, df))
			}
			if !g.Pinned[j] {
				geom.Add(forces, j, dim, df)
			}
		}
	}
}
