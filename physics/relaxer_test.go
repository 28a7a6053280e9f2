package physics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svtassev/crochetlayout/graph"
	"github.com/svtassev/crochetlayout/physics"
)

// TestRun_NoOpWhenViscousIterationsZero matches spec §4.E's guard: the
// relaxer must leave positions untouched when disabled.
func TestRun_NoOpWhenViscousIterationsZero(t *testing.T) {
	g := graph.New(2)
	require.NoError(t, g.AddNode(0, "A", nil, false))
	require.NoError(t, g.AddNode(1, "B", nil, false))
	require.NoError(t, g.AddEdge(0, 1, 1))

	positions := []float64{0, 0, 5, 5}
	want := append([]float64(nil), positions...)

	r := physics.NewRelaxer(physics.WithViscousIterations(0))
	r.Run(g, positions, 2)

	assert.Equal(t, want, positions)
}

// TestRun_RescaleMatchesTargetLength checks that after the rescale
// sub-step, two unpinned nodes sitting too close together are stretched
// toward the APSP-recorded target distance.
func TestRun_RescaleMatchesTargetLength(t *testing.T) {
	g := graph.New(2)
	require.NoError(t, g.AddNode(0, "A", nil, false))
	require.NoError(t, g.AddNode(1, "B", nil, false))
	require.NoError(t, g.AddEdge(0, 1, 10))

	positions := []float64{0, 0, 1, 0}

	r := physics.NewRelaxer(physics.WithViscousIterations(1), physics.WithTimestep(0.1), physics.WithDamping(1))
	r.Run(g, positions, 2)

	dx := positions[2] - positions[0]
	dy := positions[3] - positions[1]
	d := math.Sqrt(dx*dx + dy*dy)

	assert.InDelta(t, 10.0, d, 1.5)
}

// TestRun_PinnedNodesNeverMove matches spec §4.E's pin-exclusion in both
// the rescale and the integration sub-steps.
func TestRun_PinnedNodesNeverMove(t *testing.T) {
	g := graph.New(2)
	require.NoError(t, g.AddNode(0, "A", []float64{0, 0}, false))
	require.NoError(t, g.AddNode(1, "B", nil, false))
	require.NoError(t, g.AddEdge(0, 1, 3))

	positions := []float64{0, 0, 10, 10}

	r := physics.NewRelaxer(physics.WithViscousIterations(5))
	r.Run(g, positions, 2)

	assert.Equal(t, []float64{0, 0}, positions[0:2])
}

// TestRun_StaysFiniteUnderManyIterations is a smoke test that the
// integrator doesn't blow up for a small well-posed system.
func TestRun_StaysFiniteUnderManyIterations(t *testing.T) {
	g := graph.New(3)
	for i := 0; i < 3; i++ {
		require.NoError(t, g.AddNode(i, string(rune('A'+i)), nil, false))
	}
	require.NoError(t, g.AddEdge(0, 1, 1))
	require.NoError(t, g.AddEdge(1, 2, 1))
	require.NoError(t, g.AddEdge(0, 2, 1))

	positions := []float64{0, 0, 1, 0, 0.5, 0.8}

	r := physics.NewRelaxer(physics.WithViscousIterations(50))
	r.Run(g, positions, 2)

	for _, x := range positions {
		assert.False(t, math.IsNaN(x))
		assert.Less(t, math.Abs(x), 1e4)
	}
}
