package depgraph

// Upstream returns every node from which n can be reached, excluding n
// unless it lies on a cycle.
func (g *DependencyGraph) Upstream(n Node) []Node {
	return g.reachable(n, g.in, func(e Edge) Node { return e.From })
}

// Downstream returns every node reachable from n, excluding n unless it lies
// on a cycle.
func (g *DependencyGraph) Downstream(n Node) []Node {
	return g.reachable(n, g.out, func(e Edge) Node { return e.To })
}

// Lineage returns the focus nodes together with everything upstream and
// downstream of them. Focus nodes missing from the graph are skipped.
func (g *DependencyGraph) Lineage(focus []Node) []Node {
	keep := make(map[Node]bool)
	for _, n := range focus {
		if _, ok := g.index[n]; !ok {
			continue
		}
		keep[n] = true
		for _, up := range g.Upstream(n) {
			keep[up] = true
		}
		for _, down := range g.Downstream(n) {
			keep[down] = true
		}
	}

	var nodes []Node
	for _, n := range g.nodes {
		if keep[n] {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Path returns the edges of a shortest path from one node to another, or nil
// when to cannot be reached. Ties are broken by edge order, so the result is
// stable across builds.
func (g *DependencyGraph) Path(from, to Node) []Edge {
	start, ok := g.index[from]
	if !ok {
		return nil
	}
	target, ok := g.index[to]
	if !ok || start == target {
		return nil
	}

	via := make([]int, len(g.nodes))
	for i := range via {
		via[i] = -1
	}
	visited := make([]bool, len(g.nodes))
	visited[start] = true
	queue := []int{start}
	for len(queue) > 0 && !visited[target] {
		current := queue[0]
		queue = queue[1:]

		for _, ei := range g.out[current] {
			neighbor := g.index[g.edges[ei].To]
			if !visited[neighbor] {
				visited[neighbor] = true
				via[neighbor] = ei
				queue = append(queue, neighbor)
			}
		}
	}
	if !visited[target] {
		return nil
	}

	var path []Edge
	for at := target; at != start; {
		e := g.edges[via[at]]
		path = append(path, e)
		at = g.index[e.From]
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// reachable walks breadth-first from source along the given adjacency.
func (g *DependencyGraph) reachable(source Node, adjacency [][]int, next func(Edge) Node) []Node {
	start, ok := g.index[source]
	if !ok {
		return nil
	}

	visited := make([]bool, len(g.nodes))
	queue := []int{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, ei := range adjacency[current] {
			neighbor := g.index[next(g.edges[ei])]
			if !visited[neighbor] {
				visited[neighbor] = true
				queue = append(queue, neighbor)
			}
		}
	}

	var nodes []Node
	for i, seen := range visited {
		if seen {
			nodes = append(nodes, g.nodes[i])
		}
	}
	return nodes
}
