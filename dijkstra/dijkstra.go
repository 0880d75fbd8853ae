// Package dijkstra finds cheapest move paths between dataset knots.
//
// It runs Dijkstra's algorithm over a movegraph.Graph, where the weight of
// the move u→v is the cost of knot v. It uses a min-heap with a "lazy"
// decrease-key: improved distances push duplicates and stale entries are
// skipped when popped.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/knotgraph/movegraph"
)

// Dijkstra computes cheapest distances from Options.Source to every vertex
// of g. Unreachable vertices (and those beyond MaxCost) map to +Inf.
//
// Returns:
//
//   - dist: vertex key → cheapest distance.
//   - prev: predecessor map if ReturnPath, nil otherwise; "" for the source
//     and unreachable vertices.
//   - err:  ErrEmptySource, ErrNilGraph, ErrVertexNotFound, ErrBadMaxCost
//     or ErrNegativeCost.
func Dijkstra(g *movegraph.Graph, opts ...Option) (map[string]float64, map[string]string, error) {
	cfg := DefaultOptions("")
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, nil, cfg.err
	}
	if cfg.Source == "" {
		return nil, nil, ErrEmptySource
	}
	if g == nil {
		return nil, nil, ErrNilGraph
	}
	if !g.HasVertex(cfg.Source) {
		return nil, nil, fmt.Errorf("%w: [%s]", ErrVertexNotFound, cfg.Source)
	}

	// Fail fast on negative costs.
	vertices := g.Vertices()
	cost := make(map[string]float64, len(vertices))
	for _, v := range vertices {
		r, err := g.Record(v)
		if err != nil {
			return nil, nil, err
		}
		if r.Cost < 0 {
			return nil, nil, fmt.Errorf("%w: [%s] cost=%v", ErrNegativeCost, v, r.Cost)
		}
		cost[v] = r.Cost
	}

	r := &runner{
		g:       g,
		options: cfg,
		cost:    cost,
		dist:    make(map[string]float64, len(vertices)),
		prev:    make(map[string]string, len(vertices)),
		visited: make(map[string]bool, len(vertices)),
	}
	r.init(vertices)
	if err := r.process(); err != nil {
		return nil, nil, err
	}
	if !cfg.ReturnPath {
		return r.dist, nil, nil
	}
	return r.dist, r.prev, nil
}

// CheapestPath returns the cheapest key sequence from → to and its distance.
func CheapestPath(g *movegraph.Graph, from, to string) ([]string, float64, error) {
	if g != nil && !g.HasVertex(to) {
		return nil, 0, fmt.Errorf("%w: [%s]", ErrVertexNotFound, to)
	}
	dist, prev, err := Dijkstra(g, Source(from), WithReturnPath())
	if err != nil {
		return nil, 0, err
	}
	if math.IsInf(dist[to], 1) {
		return nil, 0, fmt.Errorf("%w: [%s] → [%s]", ErrNoPath, from, to)
	}
	var path []string
	for at := to; at != ""; at = prev[at] {
		path = append(path, at)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, dist[to], nil
}

// runner holds the mutable state of one execution.
type runner struct {
	g       *movegraph.Graph
	options Options
	cost    map[string]float64
	dist    map[string]float64
	prev    map[string]string
	visited map[string]bool
	pq      nodePQ
}

// init sets every distance to +Inf except the source and seeds the heap.
func (r *runner) init(vertices []string) {
	for _, v := range vertices {
		r.dist[v] = math.Inf(1)
		r.prev[v] = ""
	}
	r.dist[r.options.Source] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: r.options.Source, dist: 0})
}

// process pops the closest unfinished vertex until the heap empties or the
// frontier passes MaxCost.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		if r.visited[item.id] {
			continue
		}
		if item.dist > r.options.MaxCost {
			break
		}
		r.visited[item.id] = true
		if err := r.relax(item.id); err != nil {
			return err
		}
	}
	return nil
}

// relax tries to improve every neighbor of u through u.
func (r *runner) relax(u string) error {
	nbrs, err := r.g.NeighborIDs(u)
	if err != nil {
		return fmt.Errorf("dijkstra: failed to get neighbors of %q: %w", u, err)
	}
	for _, v := range nbrs {
		nd := r.dist[u] + r.cost[v]
		if nd > r.options.MaxCost || nd >= r.dist[v] {
			continue
		}
		r.dist[v] = nd
		r.prev[v] = u
		heap.Push(&r.pq, &nodeItem{id: v, dist: nd})
	}
	return nil
}

// nodeItem is a heap entry.
type nodeItem struct {
	id   string
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by dist, ties broken by id so
// that equal-cost paths resolve deterministically.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist == pq[j].dist {
		return pq[i].id < pq[j].id
	}
	return pq[i].dist < pq[j].dist
}
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
