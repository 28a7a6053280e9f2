// Package graph defines the Graph store: the node/edge/pin/Jacobian
// container that the rest of the layout engine builds on.
//
// A Graph is assembled once via AddNode/AddEdge/AddJacobian, then frozen
// before the APSP and stress stages mutate its distance matrix and read
// its neighbor lists. Graph itself never runs an algorithm; it is a plain
// data store, same as core.Graph in the teacher library but specialized
// to undirected, edge-weighted graphs with optional pinned positions.
package graph

import (
	"errors"
	"fmt"

	"github.com/svtassev/crochetlayout/graph/matrix"
)

// Sentinel errors for Graph construction. Algorithms must return these,
// never panic, on user-supplied graph data.
var (
	// ErrDuplicateNode indicates AddNode was called twice for the same index.
	ErrDuplicateNode = errors.New("graph: duplicate node index")

	// ErrSelfLoop indicates an edge was added from a node to itself.
	ErrSelfLoop = errors.New("graph: self-loops are not allowed")

	// ErrDuplicateEdge indicates the same unordered pair was added twice.
	ErrDuplicateEdge = errors.New("graph: duplicate edge")

	// ErrUnknownNode indicates an operation referenced an out-of-range node index.
	ErrUnknownNode = errors.New("graph: unknown node index")

	// ErrBadWeight indicates a non-positive or non-finite edge weight.
	ErrBadWeight = errors.New("graph: edge weight must be positive and finite")
)

// JacobianTuple pins node i3/i4 to lie on the normal of triangle
// (i1,i2,i3) at signed separation Value (spec §3, §4.D).
type JacobianTuple struct {
	I1, I2, I3, I4 int
	Value          float64
}

// Graph is the frozen-after-build container for one layout problem.
type Graph struct {
	// NumNodes is the node count N.
	NumNodes int

	// Nodes holds the stable external label per node index.
	Nodes []string

	// Neighbors[i] is the ordered list of node indices adjacent to i.
	Neighbors [][]int

	// DistToNeighbor[i] is parallel to Neighbors[i]: the edge's target length.
	DistToNeighbor [][]float64

	// Dist is the dense N x N target-distance matrix (the sentinel infinity
	// off-diagonal until APSP runs, 0 on the diagonal, edges overwritten to
	// their weight).
	Dist *matrix.Dense

	// Pinned[i] is true iff node i's coordinates must never move.
	Pinned []bool

	// InitialPos[i] holds the user- or guess-supplied coordinate vector for
	// node i, or nil if none was supplied.
	InitialPos [][]float64

	// Jacobians lists the dihedral constraints (3D only).
	Jacobians []JacobianTuple

	seenEdges map[[2]int]bool
}

// New allocates a Graph for exactly n nodes. All nodes start unlabeled,
// unpinned, with no neighbors and a distance matrix that is
// sentinel-infinite off the diagonal and zero on it.
func New(n int) *Graph {
	g := &Graph{
		NumNodes:       n,
		Nodes:          make([]string, n),
		Neighbors:      make([][]int, n),
		DistToNeighbor: make([][]float64, n),
		Dist:           matrix.NewDense(n),
		Pinned:         make([]bool, n),
		InitialPos:     make([][]float64, n),
		seenEdges:      make(map[[2]int]bool),
	}

	return g
}

// AddNode records the label for node i and, if pos is non-nil, its
// position. When icGuess is false a supplied pos pins the node; when
// icGuess is true the position is retained only as an initial guess and
// the node remains free to move (spec §4.A).
func (g *Graph) AddNode(i int, label string, pos []float64, icGuess bool) error {
	if i < 0 || i >= g.NumNodes {
		return fmt.Errorf("AddNode(%d): %w", i, ErrUnknownNode)
	}
	if g.Nodes[i] != "" {
		return fmt.Errorf("AddNode(%d, %q): %w", i, label, ErrDuplicateNode)
	}

	g.Nodes[i] = label
	if pos != nil {
		g.InitialPos[i] = pos
		g.Pinned[i] = !icGuess
	}

	return nil
}

// AddEdge inserts an undirected edge of weight w between u and v
// symmetrically into both neighbor lists and the distance matrix,
// marking both cells as immediate neighbors (spec §4.A).
func (g *Graph) AddEdge(u, v int, w float64) error {
	if u < 0 || u >= g.NumNodes {
		return fmt.Errorf("AddEdge: %w (u=%d)", ErrUnknownNode, u)
	}
	if v < 0 || v >= g.NumNodes {
		return fmt.Errorf("AddEdge: %w (v=%d)", ErrUnknownNode, v)
	}
	if u == v {
		return fmt.Errorf("AddEdge(%d): %w", u, ErrSelfLoop)
	}
	if w <= 0 || isNonFinite(w) {
		return fmt.Errorf("AddEdge(%d,%d,%g): %w", u, v, w, ErrBadWeight)
	}

	key := pairKey(u, v)
	if g.seenEdges[key] {
		return fmt.Errorf("AddEdge(%d,%d): %w", u, v, ErrDuplicateEdge)
	}
	g.seenEdges[key] = true

	g.Neighbors[u] = append(g.Neighbors[u], v)
	g.Neighbors[v] = append(g.Neighbors[v], u)
	g.DistToNeighbor[u] = append(g.DistToNeighbor[u], w)
	g.DistToNeighbor[v] = append(g.DistToNeighbor[v], w)

	g.Dist.Set(u, v, w)
	g.Dist.Set(v, u, w)
	g.Dist.SetImmediate(u, v)

	return nil
}

// AddJacobian registers a dihedral constraint. Indices are validated but
// the tuple is otherwise opaque to Graph; only the 3D stress solver
// interprets it (spec §3).
func (g *Graph) AddJacobian(jt JacobianTuple) error {
	for _, idx := range []int{jt.I1, jt.I2, jt.I3, jt.I4} {
		if idx < 0 || idx >= g.NumNodes {
			return fmt.Errorf("AddJacobian: %w (index=%d)", ErrUnknownNode, idx)
		}
	}
	g.Jacobians = append(g.Jacobians, jt)

	return nil
}

func pairKey(u, v int) [2]int {
	if u > v {
		u, v = v, u
	}

	return [2]int{u, v}
}

func isNonFinite(x float64) bool {
	return x != x || x > maxFinite || x < -maxFinite
}

const maxFinite = 1.7976931348623157e+308
