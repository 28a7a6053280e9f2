package parse_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svtassev/crochetlayout/parse"
)

func TestParse_DimensionLine(t *testing.T) {
	doc, err := parse.Parse(strings.NewReader("2\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Dim)
	assert.Equal(t, 2, doc.Config.Dim)
}

func TestParse_RejectsMissingOrInvalidDimension(t *testing.T) {
	_, err := parse.Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, parse.ErrMissingDimensionLine)

	_, err = parse.Parse(strings.NewReader("not-a-number\n"))
	assert.ErrorIs(t, err, parse.ErrMissingDimensionLine)

	_, err = parse.Parse(strings.NewReader("4\n"))
	assert.ErrorIs(t, err, parse.ErrMissingDimensionLine)
}

func TestParse_NodesWithAndWithoutPositions(t *testing.T) {
	input := `2
"A" {1,2}
"B"
`
	doc, err := parse.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, "A", doc.Nodes[0].Label)
	assert.Equal(t, []float64{1, 2}, doc.Nodes[0].Pos)
	assert.Equal(t, "B", doc.Nodes[1].Label)
	assert.Nil(t, doc.Nodes[1].Pos)
}

func TestParse_Edge(t *testing.T) {
	input := `2
"A"
"B"
"A" -- "B" 5.5
`
	doc, err := parse.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, doc.Edges, 1)
	assert.Equal(t, "A", doc.Edges[0].Source)
	assert.Equal(t, "B", doc.Edges[0].Target)
	assert.Equal(t, 5.5, doc.Edges[0].Length)
}

func TestParse_Jacobian(t *testing.T) {
	input := `3
"A"
"B"
"C"
"D"
"A" --- "B" --- "C" --- "D"---1.5
`
	doc, err := parse.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, doc.Jacobians, 1)
	assert.Equal(t, "A", doc.Jacobians[0].A)
	assert.Equal(t, "D", doc.Jacobians[0].D)
	assert.Equal(t, 1.5, doc.Jacobians[0].Value)
}

func TestParse_DisambiguatesIterationsFromViscousIterations(t *testing.T) {
	input := "2\niterations 42\nviscous_iterations 7\n"
	doc, err := parse.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 42, doc.Config.Iterations)
	assert.Equal(t, 7, doc.Config.ViscousIterations)
}

func TestParse_ScalarConfigLines(t *testing.T) {
	input := "2\nstart 42\nlearning_rate 0.25\nseparate 2.0\ninflate 3.0\nic_guess t\n"
	doc, err := parse.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, int64(42), doc.Config.Seed)
	assert.Equal(t, 0.25, doc.Config.LearningRate)
	assert.Equal(t, 2.0, doc.Config.SeparateFactor)
	assert.Equal(t, 3.0, doc.Config.Inflate)
	assert.True(t, doc.Config.InflateEnabled)
	assert.True(t, doc.Config.ICGuess)
}

func TestBuild_SkipsEdgeWithUnknownNode(t *testing.T) {
	input := `2
"A"
"A" -- "Ghost" 1
`
	doc, err := parse.Parse(strings.NewReader(input))
	require.NoError(t, err)

	g := parse.Build(doc)
	assert.Equal(t, 1, g.NumNodes)
	assert.Empty(t, g.Neighbors[0])
}

func TestBuild_WiresNodesAndEdges(t *testing.T) {
	input := `2
"A"
"B"
"A" -- "B" 3
`
	doc, err := parse.Parse(strings.NewReader(input))
	require.NoError(t, err)

	g := parse.Build(doc)
	require.Equal(t, 2, g.NumNodes)
	assert.Contains(t, g.Neighbors[0], 1)
	assert.Equal(t, 3.0, g.Dist.At(0, 1))
}
