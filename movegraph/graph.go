// Package movegraph materializes the move graph restricted to dataset knots,
// so that graph algorithms can run over it. It supports:
//
//   - Restriction to one parity bucket and to knots below a cost ceiling
//   - Vertex, edge and degree queries with deterministic (sorted) enumeration
//   - Identification of connected components ("islands" of dataset knots)
//
// Placeholders never become vertices: two dataset knots are joined only when
// a single move turns one into the other.
package movegraph

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/knotgraph/knot"
)

// Build collects the selected knots of ix as vertices and joins every pair
// one move apart. It calls ix.Neighbors on each selected knot, which
// refreshes their neighbor caches.
//
// Complexity: O(V·D²) time, O(V·D) memory for V selected knots of D angles.
func Build(ix *knot.Index, opts ...Option) (*Graph, error) {
	if ix == nil {
		return nil, ErrNilIndex
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	var selected []*knot.Record
	if o.Parity >= 0 {
		selected = ix.Bucket(o.Parity)
	} else {
		selected = ix.Records()
	}

	g := &Graph{
		modulus:   ix.Modulus(),
		vertices:  make(map[string]*knot.Record, len(selected)),
		adjacency: make(map[string]map[string]struct{}, len(selected)),
	}
	for _, r := range selected {
		if r.Cost < o.CostBelow {
			g.addVertex(r)
		}
	}
	for key, r := range g.vertices {
		for _, n := range ix.Neighbors(r) {
			if n.IsPlaceholder() {
				continue
			}
			nk := n.Key()
			if nk == key {
				continue
			}
			if _, ok := g.vertices[nk]; ok {
				g.addEdge(key, nk)
			}
		}
	}
	return g, nil
}

func (g *Graph) addVertex(r *knot.Record) {
	key := r.Key()
	g.vertices[key] = r
	g.adjacency[key] = make(map[string]struct{})
}

// addEdge inserts u–v once; the reverse call is a no-op.
func (g *Graph) addEdge(u, v string) {
	if _, ok := g.adjacency[u][v]; ok {
		return
	}
	g.adjacency[u][v] = struct{}{}
	g.adjacency[v][u] = struct{}{}
	g.edges++
}

// Modulus returns the angle modulus of the source index.
func (g *Graph) Modulus() int { return g.modulus }

// HasVertex reports whether the knot with key id is a vertex.
// Complexity: O(1).
func (g *Graph) HasVertex(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.vertices[id]
	return ok
}

// Record returns the dataset knot stored under id.
func (g *Graph) Record(id string) (*knot.Record, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.vertices[id]
	if !ok {
		return nil, fmt.Errorf("%w: [%s]", ErrVertexNotFound, id)
	}
	return r, nil
}

// HasEdge reports whether u and v are one move apart.
// Complexity: O(1).
func (g *Graph) HasEdge(u, v string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.adjacency[u][v]
	return ok
}

// NeighborIDs returns the keys adjacent to id, sorted ascending.
// Complexity: O(d·log d).
func (g *Graph) NeighborIDs(id string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	adj, ok := g.adjacency[id]
	if !ok {
		return nil, fmt.Errorf("%w: [%s]", ErrVertexNotFound, id)
	}
	out := make([]string, 0, len(adj))
	for v := range adj {
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

// Degree returns the number of dataset knots one move away from id.
func (g *Graph) Degree(id string) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	adj, ok := g.adjacency[id]
	if !ok {
		return 0, fmt.Errorf("%w: [%s]", ErrVertexNotFound, id)
	}
	return len(adj), nil
}

// Vertices returns all vertex keys sorted ascending.
// Complexity: O(V·log V).
func (g *Graph) Vertices() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, 0, len(g.vertices))
	for id := range g.vertices {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// VertexCount returns the number of vertices. Complexity: O(1).
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.vertices)
}

// EdgeCount returns the number of undirected edges. Complexity: O(1).
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edges
}
