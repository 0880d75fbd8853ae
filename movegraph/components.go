package movegraph

// ConnectedComponents finds the islands of dataset knots: maximal sets
// reachable from each other through single moves between dataset knots.
// Components are ordered by their smallest key; keys inside a component are
// in BFS order from that key, visiting neighbors in sorted order.
//
// Time:   O(V·log V + E·log d).
// Memory: O(V) for seen flags and output.
func (g *Graph) ConnectedComponents() [][]string {
	seen := make(map[string]bool, g.VertexCount())
	var comps [][]string

	for _, start := range g.Vertices() {
		if seen[start] {
			continue
		}
		comps = append(comps, g.reach(start, seen))
	}
	return comps
}

// ComponentOf returns the component holding id, in BFS order from id.
func (g *Graph) ComponentOf(id string) ([]string, error) {
	if !g.HasVertex(id) {
		return nil, ErrVertexNotFound
	}
	return g.reach(id, map[string]bool{}), nil
}

// reach collects every key reachable from start that is not yet in seen.
func (g *Graph) reach(start string, seen map[string]bool) []string {
	queue := []string{start}
	seen[start] = true
	for qi := 0; qi < len(queue); qi++ {
		nbrs, _ := g.NeighborIDs(queue[qi])
		for _, v := range nbrs {
			if !seen[v] {
				seen[v] = true
				queue = append(queue, v)
			}
		}
	}
	return queue
}
