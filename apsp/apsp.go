// Package apsp extends a Graph's sparse edge weights into a dense
// target-distance matrix via one Dijkstra run per source (spec §4.B).
//
// Complexity: O(N * (E + N) log N) overall, one O((E+N) log N) Dijkstra
// run per source. Grounded on the teacher's container/heap-based
// dijkstra.go runner (nodeItem/nodePQ, init/process/relax), adapted from
// a string-keyed, int64-weighted single-source/single-target query to an
// int-indexed, float64-weighted all-sources sweep that writes directly
// into the Graph's dense matrix.
package apsp

import (
	"container/heap"
	"math"
	"sync"

	"github.com/svtassev/crochetlayout/graph"
	"github.com/svtassev/crochetlayout/graph/matrix"
)

// Run fills g.Dist with all-pairs shortest-path distances, leaving
// immediate-neighbor cells untouched (spec §4.B: "direct edge weights are
// never overwritten"). Disconnected pairs remain at the sentinel infinity.
//
// When parallel is true, one goroutine runs per source; each goroutine
// only ever writes its own destination row, so the fan-out is safe
// without additional synchronization beyond the WaitGroup join
// (spec §5: "embarrassingly parallel per source ... writes ... are
// row-disjoint").
func Run(g *graph.Graph, parallel bool) {
	if !parallel {
		for s := 0; s < g.NumNodes; s++ {
			dijkstraFrom(g, s)
		}

		return
	}

	var wg sync.WaitGroup
	wg.Add(g.NumNodes)
	for s := 0; s < g.NumNodes; s++ {
		s := s
		go func() {
			defer wg.Done()
			dijkstraFrom(g, s)
		}()
	}
	wg.Wait()
}

// dijkstraFrom runs a single-source Dijkstra from s and copies the
// result into g.Dist[s, *], skipping cells that are already immediate
// neighbors (spec §4.B).
func dijkstraFrom(g *graph.Graph, s int) {
	n := g.NumNodes
	dist := make([]float64, n)
	visited := make([]bool, n)
	for i := range dist {
		dist[i] = matrix.SentinelInf()
	}
	dist[s] = 0

	pq := make(nodePQ, 0, n)
	heap.Init(&pq)
	heap.Push(&pq, &nodeItem{node: s, dist: 0})

	for pq.Len() > 0 {
		top := heap.Pop(&pq).(*nodeItem)
		u := top.node

		if visited[u] {
			continue
		}

		// Required early exit: isolated components must not be visited
		// (spec §4.B).
		if math.IsInf(top.dist, 1) || matrix.IsSentinelInf(top.dist) {
			break
		}

		visited[u] = true

		neighbors := g.Neighbors[u]
		weights := g.DistToNeighbor[u]
		for k, v := range neighbors {
			if visited[v] {
				continue
			}
			nd := dist[u] + weights[k]
			if nd < dist[v] {
				dist[v] = nd
				heap.Push(&pq, &nodeItem{node: v, dist: nd})
			}
		}
	}

	for v := 0; v < n; v++ {
		if !g.Dist.Immediate(s, v) {
			g.Dist.Set(s, v, dist[v])
		}
	}
}

// nodeItem is one (node, tentative distance) entry in the priority queue.
type nodeItem struct {
	node int
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by ascending dist, using the
// same lazy-decrease-key strategy as the teacher's dijkstra package:
// stale entries are pushed rather than updated in place, and ignored on
// pop via the visited slice.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
