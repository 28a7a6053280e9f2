// Package layout ties modules A through F together: it runs APSP,
// component separation, stress minimization, the physics relaxer, and
// finally serializes the result, mirroring the original performLayout
// entry point minus its C-ABI string marshalling (spec §4.F, §6).
//
// Grounded on original_source/crochet-editor/old/graph.cpp's jsOutput
// formatting loop for the output grammar, and on the teacher's
// dependency-ordered composition style in matrix/builder.go for how Run
// wires the stages together.
package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/svtassev/crochetlayout/apsp"
	"github.com/svtassev/crochetlayout/apsp/separate"
	"github.com/svtassev/crochetlayout/config"
	"github.com/svtassev/crochetlayout/graph"
	"github.com/svtassev/crochetlayout/physics"
	"github.com/svtassev/crochetlayout/stress"
)

// Run executes the full A-through-F pipeline over g and returns the
// serialized layout. g is mutated in place (its distance matrix is
// extended by APSP and separation); callers that need the original
// distances should build a fresh Graph per call.
func Run(cfg config.Config, g *graph.Graph) (string, error) {
	apsp.Run(g, true)
	separate.Run(g, cfg.SeparateFactor)

	solver := stress.NewSolver(
		stress.WithIterations(cfg.Iterations),
		stress.WithLearningRate(cfg.LearningRate),
		stress.WithRepulsionRadius(cfg.RepulsionRadius),
		stress.WithSeed(cfg.Seed),
		stress.WithICGuess(cfg.ICGuess),
		stress.WithLogger(cfg.Logger),
		withInflateIfEnabled(cfg),
	)

	positions, err := solver.Solve(g, cfg.Dim)
	if err != nil {
		return "", fmt.Errorf("layout.Run: %w", err)
	}

	relaxer := physics.NewRelaxer(
		physics.WithViscousIterations(cfg.ViscousIterations),
		physics.WithTimestep(cfg.ViscousTimestep),
		physics.WithDamping(cfg.ViscousDamping),
	)
	relaxer.Run(g, positions, cfg.Dim)

	return Serialize(g, positions, cfg.Dim), nil
}

// withInflateIfEnabled threads cfg's inflate setting into a stress.Option,
// returning a no-op option when inflation was never requested.
func withInflateIfEnabled(cfg config.Config) stress.Option {
	if !cfg.InflateEnabled {
		return func(*stress.Config) {}
	}

	return stress.WithInflate(cfg.Inflate)
}

// Serialize emits one `{"name": "...","pos": "x,y[,z]"},` record per node
// in node-index order (spec §4.F, §6).
func Serialize(g *graph.Graph, positions []float64, dim int) string {
	var b strings.Builder

	for i := 0; i < g.NumNodes; i++ {
		b.WriteString(`{"name": "`)
		b.WriteString(g.Nodes[i])
		b.WriteString(`","pos": "`)

		for d := 0; d < dim; d++ {
			if d > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatFloat(positions[i*dim+d], 'g', -1, 64))
		}

		b.WriteString("\"},\n")
	}

	return b.String()
}
