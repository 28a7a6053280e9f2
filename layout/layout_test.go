package layout_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svtassev/crochetlayout/config"
	"github.com/svtassev/crochetlayout/graph"
	"github.com/svtassev/crochetlayout/layout"
)

func TestSerialize_EmitsOneLinePerNodeInOrder(t *testing.T) {
	g := graph.New(2)
	require.NoError(t, g.AddNode(0, "A", nil, false))
	require.NoError(t, g.AddNode(1, "B", nil, false))

	out := layout.Serialize(g, []float64{1, 2, 3, 4}, 2)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, 2)
	assert.Equal(t, `{"name": "A","pos": "1,2"},`, lines[0])
	assert.Equal(t, `{"name": "B","pos": "3,4"},`, lines[1])
}

func TestSerialize_ThreeDimensional(t *testing.T) {
	g := graph.New(1)
	require.NoError(t, g.AddNode(0, "A", nil, false))

	out := layout.Serialize(g, []float64{1, 2, 3}, 3)
	assert.Equal(t, `{"name": "A","pos": "1,2,3"},`+"\n", out)
}

// TestRun_EndToEndProducesOneRecordPerNode exercises the full A-through-F
// pipeline on a small connected graph.
func TestRun_EndToEndProducesOneRecordPerNode(t *testing.T) {
	g := graph.New(3)
	for i := 0; i < 3; i++ {
		require.NoError(t, g.AddNode(i, string(rune('A'+i)), nil, false))
	}
	require.NoError(t, g.AddEdge(0, 1, 1))
	require.NoError(t, g.AddEdge(1, 2, 1))
	require.NoError(t, g.AddEdge(0, 2, 1))

	cfg := config.New(config.WithSeed(1), config.WithIterations(50), config.WithViscousIterations(5))

	out, err := layout.Run(cfg, g)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, `{"name": "`))
		assert.True(t, strings.HasSuffix(line, `"},`))
	}
}

func TestRun_RejectsInvalidDimension(t *testing.T) {
	g := graph.New(1)
	require.NoError(t, g.AddNode(0, "A", nil, false))

	cfg := config.New()
	cfg.Dim = 5

	_, err := layout.Run(cfg, g)
	assert.Error(t, err)
}
