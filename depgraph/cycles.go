package depgraph

import (
	"fmt"
	"slices"

	graphlib "github.com/dominikbraun/graph"
)

// HasCycle reports whether the graph contains a directed cycle.
func (g *DependencyGraph) HasCycle() bool {
	return g.hasCycle
}

// detectCycle runs a depth-first search over all nodes in order with an
// explicit stack. Reaching a node that is still on the stack closes a cycle.
func (g *DependencyGraph) detectCycle() bool {
	const (
		white = iota
		grey
		black
	)
	color := make([]int, len(g.nodes))

	type frame struct {
		node int
		next int
	}

	for start := range g.nodes {
		if color[start] != white {
			continue
		}

		color[start] = grey
		stack := []frame{{node: start}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			out := g.out[top.node]
			if top.next == len(out) {
				color[top.node] = black
				stack = stack[:len(stack)-1]
				continue
			}

			to := g.index[g.edges[out[top.next]].To]
			top.next++
			switch color[to] {
			case grey:
				return true
			case white:
				color[to] = grey
				stack = append(stack, frame{node: to})
			}
		}
	}
	return false
}

// Cycles returns the groups of nodes that lie on a cycle together: the
// strongly connected components with more than one node, plus single nodes
// with an edge to themselves. Each group is sorted, and groups are ordered by
// their first node.
func (g *DependencyGraph) Cycles() ([][]Node, error) {
	if !g.hasCycle {
		return nil, nil
	}

	lib, err := g.Graphlib()
	if err != nil {
		return nil, err
	}
	components, err := graphlib.StronglyConnectedComponents(lib)
	if err != nil {
		return nil, fmt.Errorf("failed to compute strongly connected components: %w", err)
	}

	var cycles [][]Node
	for _, component := range components {
		nodes := make([]Node, 0, len(component))
		for _, id := range component {
			node, err := lib.Vertex(id)
			if err != nil {
				return nil, fmt.Errorf("failed to look up vertex %s: %w", id, err)
			}
			nodes = append(nodes, node)
		}
		if len(nodes) == 1 && !g.hasSelfLoop(nodes[0]) {
			continue
		}
		slices.SortFunc(nodes, compareNodes)
		cycles = append(cycles, nodes)
	}

	slices.SortFunc(cycles, func(a, b []Node) int {
		return compareNodes(a[0], b[0])
	})
	return cycles, nil
}

// InCycle reports which nodes lie on some cycle.
func (g *DependencyGraph) InCycle() (map[Node]bool, error) {
	cycles, err := g.Cycles()
	if err != nil {
		return nil, err
	}
	in := make(map[Node]bool)
	for _, cycle := range cycles {
		for _, n := range cycle {
			in[n] = true
		}
	}
	return in, nil
}

func (g *DependencyGraph) hasSelfLoop(n Node) bool {
	for _, e := range g.OutEdges(n) {
		if e.To == n {
			return true
		}
	}
	return false
}

// TopologicalOrder returns the nodes so that every edge points forward.
// Ties are broken by node order. It fails when the graph has a cycle.
func (g *DependencyGraph) TopologicalOrder() ([]Node, error) {
	if g.hasCycle {
		return nil, ErrCyclic
	}

	lib, err := g.Graphlib()
	if err != nil {
		return nil, err
	}
	ids, err := graphlib.StableTopologicalSort(lib, func(a, b string) bool {
		return g.byID(a) < g.byID(b)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sort graph: %w", err)
	}

	order := make([]Node, 0, len(ids))
	for _, id := range ids {
		order = append(order, g.nodes[g.byID(id)])
	}
	return order, nil
}

func (g *DependencyGraph) byID(id string) int {
	if i, ok := g.ids[id]; ok {
		return i
	}
	return -1
}
