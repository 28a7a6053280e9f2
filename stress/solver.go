// Package stress implements the stress-minimization solver: the
// gradient-descent-like iteration with an annealing schedule, non-neighbor
// "inflation" forces, drift correction against pinned nodes, divergence
// detection with automatic learning-rate backoff, and up to eleven
// restart attempts (spec §4.D). This is the heart of the layout engine.
//
// Grounded on original_source/crochet-editor/old/graph.cpp's performLayout
// inner loop for exact numerics, and on the teacher's dijkstra/types.go
// Option/DefaultOptions pattern for configuration.
package stress

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mathext/prng"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/svtassev/crochetlayout/graph"
	"github.com/svtassev/crochetlayout/graph/matrix"
	"github.com/svtassev/crochetlayout/internal/geom"
	"github.com/svtassev/crochetlayout/stress/jacobian"
)

// maxAttempts bounds the restart loop (spec §4.D: "up to 11 attempts").
const maxAttempts = 11

// divergenceBound is the coordinate-magnitude divergence threshold
// (spec §4.D).
const divergenceBound = 1e5

// ErrInvalidDimension is returned for a requested dimension outside {2,3}.
var ErrInvalidDimension = errors.New("stress: dimension must be 2 or 3")

// Solver runs the stress-minimization iteration for one Config.
type Solver struct {
	cfg Config

	// attempts and finalLearningRate record the last Solve call's restart
	// history, exposed for diagnostics and the restart-correctness
	// property test (spec §8).
	attempts          int
	finalLearningRate float64
}

// NewSolver builds a Solver, applying opts over DefaultConfig().
func NewSolver(opts ...Option) *Solver {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Solver{cfg: cfg}
}

// Solve embeds g into dim-dimensional Euclidean space, returning the flat
// position buffer (length g.NumNodes*dim). It never returns a numerical
// error: divergence is handled internally via restart/backoff and, after
// exhausting all attempts, the final partial state is returned as-is
// (spec §7).
func (s *Solver) Solve(g *graph.Graph, dim int) ([]float64, error) {
	if dim != 2 && dim != 3 {
		return nil, fmt.Errorf("Solve: dim=%d: %w", dim, ErrInvalidDimension)
	}

	n := g.NumNodes
	edgeCount := countImmediatePairs(g)

	learningRate := s.cfg.LearningRate
	positions := make([]float64, n*dim)
	forces := make([]float64, n*dim)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		src := prng.NewMT19937()
		src.Seed(uint64(s.cfg.Seed))
		rng := rand.New(src)

		s.initPositions(g, positions, dim, rng)
		for i := range forces {
			forces[i] = 0
		}

		diverged := false
		for iter := 0; iter < s.cfg.Iterations; iter++ {
			t := float64(iter) / float64(s.cfg.Iterations)
			extraF := math.Sqrt(1-t) + 1e-3
			deflate := math.Pow(t, s.cfg.Inflate) + 1

			errSum := s.accumulateForces(g, positions, forces, dim, extraF, deflate)
			s.cfg.Logger.Printf("Iteration = %d Error = %g", iter, math.Sqrt(errSum/edgeCount))

			diverged = s.applyDriftCorrection(g, positions, forces, dim, learningRate)
			if diverged {
				learningRate /= 3
				s.cfg.Logger.Printf("Failed to converge. Learning rate reduced to: %g", learningRate)
				break
			}

			if dim == 3 {
				jacobian.Apply(g.Jacobians, positions, dim)
			}
		}

		s.attempts = attempt + 1
		s.finalLearningRate = learningRate

		if !diverged {
			break
		}
	}

	return positions, nil
}

// Attempts returns the number of restart attempts the last Solve call
// used (1 if it converged on the first try).
func (s *Solver) Attempts() int { return s.attempts }

// FinalLearningRate returns the learning rate the last Solve call ended
// with, after any divergence-triggered backoffs.
func (s *Solver) FinalLearningRate() float64 { return s.finalLearningRate }

// initPositions seeds positions per spec §4.D: pinned nodes, and unpinned
// nodes with a correctly-dimensioned initial position under ICGuess, copy
// their stored coordinates; everything else draws uniformly from
// [-5, +5] using the per-attempt PRNG.
func (s *Solver) initPositions(g *graph.Graph, positions []float64, dim int, rng *rand.Rand) {
	for i := 0; i < g.NumNodes; i++ {
		useStored := g.Pinned[i] || (s.cfg.ICGuess && len(g.InitialPos[i]) == dim)
		for d := 0; d < dim; d++ {
			if useStored {
				positions[i*dim+d] = g.InitialPos[i][d]
			} else {
				positions[i*dim+d] = (rng.Float64() - 0.5) * 10.0
			}
		}
	}
}

// accumulateForces runs one inner iteration's force-accumulation pass
// over every unordered pair (i,j), i<j, per spec §4.D, and returns the
// summed squared force over immediate-neighbor pairs (for diagnostics
// only).
func (s *Solver) accumulateForces(g *graph.Graph, positions, forces []float64, dim int, extraF, deflate float64) float64 {
	n := g.NumNodes
	var errSum float64

	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			if g.Pinned[i] && g.Pinned[j] {
				continue
			}

			l := g.Dist.At(i, j)
			if matrix.IsSentinelInf(l) || l <= 0 || l > s.cfg.RepulsionRadius {
				continue
			}
			l2 := l * l

			delta := geom.At(positions, i, dim).Sub(geom.At(positions, j, dim))
			d2 := geom.Norm2(delta, dim)

			force := 0.5 * (d2 - l2) / (d2 + 1e-3)

			if !g.Dist.Immediate(i, j) {
				if s.cfg.InflateEnabled {
					force *= extraF / (math.Pow(l2, deflate) + 1e-3)
				} else {
					force *= extraF / (l2 + 1e-3)
				}
			} else {
				errSum += force * force
			}

			df := delta.Scale(force)
			geom.Add(forces, i, dim, df)
			geom.Add(forces, j, dim, r3.Scale(-1, df))
		}
	}

	return errSum
}

// applyDriftCorrection subtracts the mean force on pinned nodes from the
// update applied to every unpinned node, then checks for divergence
// (spec §4.D). Returns true if this iteration diverged.
func (s *Solver) applyDriftCorrection(g *graph.Graph, positions, forces []float64, dim int, learningRate float64) bool {
	var meanPinned r3.Vec
	var nPinned float64
	for i := 0; i < g.NumNodes; i++ {
		if !g.Pinned[i] {
			continue
		}
		meanPinned = meanPinned.Add(geom.At(forces, i, dim))
		geom.Set(forces, i, dim, r3.Vec{})
		nPinned++
	}
	if nPinned > 0 {
		meanPinned = r3.Scale(1/nPinned, meanPinned)
	}

	diverged := false
	for i := 0; i < g.NumNodes; i++ {
		if g.Pinned[i] {
			continue
		}

		f := geom.At(forces, i, dim)
		update := r3.Scale(learningRate, f.Sub(meanPinned))
		newPos := geom.At(positions, i, dim).Sub(update)
		geom.Set(positions, i, dim, newPos)
		geom.Set(forces, i, dim, r3.Vec{})

		for d := 0; d < dim; d++ {
			x := newPos[d]
			if math.IsNaN(x) || math.Abs(x) > divergenceBound {
				diverged = true
			}
		}
	}

	return diverged
}

func countImmediatePairs(g *graph.Graph) float64 {
	var n float64
	for i := 0; i < g.NumNodes-1; i++ {
		for j := i + 1; j < g.NumNodes; j++ {
			if g.Dist.Immediate(i, j) {
				n++
			}
		}
	}

	return n
}
