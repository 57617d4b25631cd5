package depgraph

import (
	"log/slog"
	"slices"
)

// DependencyGraph is the typed graph assembled from one completed scan.
// It is read-only once built.
type DependencyGraph struct {
	nodes []Node
	index map[Node]int
	ids   map[string]int
	edges []Edge
	// out and in hold edge indices per node position, in edge order.
	out [][]int
	in  [][]int

	scanned  map[string]bool
	hasCycle bool
}

// Build assembles the graph from records. The input slice is not modified.
//
// Non-ignored records become file nodes. Outputs add a Produces edge from the
// file to the dataset, inputs a Consumes edge from the dataset to the file,
// and input files an InlineRuns edge from the file to the referenced file.
// Ignored records and references to them leave no trace in the graph.
func Build(records []DependencyRecord) *DependencyGraph {
	sorted := append([]DependencyRecord(nil), records...)
	SortRecords(sorted)

	b := newBuilder()
	ignored := make(map[string]bool)
	for _, r := range sorted {
		if r.Ignored {
			ignored[r.FilePath] = true
			continue
		}
		b.addNode(Node{Kind: FileNode, Path: r.FilePath})
		b.scanned[r.FilePath] = true
	}

	for _, r := range sorted {
		if r.Ignored {
			continue
		}
		file := Node{Kind: FileNode, Path: r.FilePath}

		for _, out := range r.OutputDatasets {
			dataset := b.addNode(Node{Kind: DatasetNode, Path: out})
			b.addEdge(file, dataset, Produces)
		}
		for _, in := range r.InputDatasets {
			dataset := b.addNode(Node{Kind: DatasetNode, Path: in})
			b.addEdge(dataset, file, Consumes)
		}
		for _, ref := range r.InputFiles {
			if ignored[ref] {
				slog.Debug("Skipping reference to ignored file", "file", r.FilePath, "reference", ref)
				continue
			}
			referenced := b.addNode(Node{Kind: FileNode, Path: ref})
			b.addEdge(file, referenced, InlineRuns)
		}
	}

	g := b.finish()
	slog.Debug("Built dependency graph", "nodes", len(g.nodes), "edges", len(g.edges), "cyclic", g.hasCycle)
	return g
}

type builder struct {
	nodes   map[Node]bool
	edges   map[Edge]bool
	scanned map[string]bool
}

func newBuilder() *builder {
	return &builder{
		nodes:   make(map[Node]bool),
		edges:   make(map[Edge]bool),
		scanned: make(map[string]bool),
	}
}

func (b *builder) addNode(n Node) Node {
	b.nodes[n] = true
	return n
}

func (b *builder) addEdge(from, to Node, t EdgeType) {
	b.edges[Edge{From: from, To: to, Type: t}] = true
}

func (b *builder) finish() *DependencyGraph {
	g := &DependencyGraph{
		nodes:   make([]Node, 0, len(b.nodes)),
		index:   make(map[Node]int, len(b.nodes)),
		ids:     make(map[string]int, len(b.nodes)),
		edges:   make([]Edge, 0, len(b.edges)),
		scanned: b.scanned,
	}

	for n := range b.nodes {
		g.nodes = append(g.nodes, n)
	}
	slices.SortFunc(g.nodes, compareNodes)
	for i, n := range g.nodes {
		g.index[n] = i
		g.ids[n.ID()] = i
	}

	for e := range b.edges {
		g.edges = append(g.edges, e)
	}
	slices.SortFunc(g.edges, compareEdges)

	g.out = make([][]int, len(g.nodes))
	g.in = make([][]int, len(g.nodes))
	for i, e := range g.edges {
		from := g.index[e.From]
		to := g.index[e.To]
		g.out[from] = append(g.out[from], i)
		g.in[to] = append(g.in[to], i)
	}

	g.hasCycle = g.detectCycle()
	return g
}

// Nodes returns every node ordered by path, files before datasets on ties.
func (g *DependencyGraph) Nodes() []Node {
	return append([]Node(nil), g.nodes...)
}

// Edges returns every edge in deterministic order.
func (g *DependencyGraph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// Node looks up a node by kind and path.
func (g *DependencyGraph) Node(kind NodeKind, path string) (Node, bool) {
	n := Node{Kind: kind, Path: path}
	_, ok := g.index[n]
	return n, ok
}

// OutEdges returns the edges leaving n.
func (g *DependencyGraph) OutEdges(n Node) []Edge {
	i, ok := g.index[n]
	if !ok {
		return nil
	}
	return g.edgesAt(g.out[i])
}

// InEdges returns the edges entering n.
func (g *DependencyGraph) InEdges(n Node) []Edge {
	i, ok := g.index[n]
	if !ok {
		return nil
	}
	return g.edgesAt(g.in[i])
}

func (g *DependencyGraph) edgesAt(indices []int) []Edge {
	edges := make([]Edge, 0, len(indices))
	for _, i := range indices {
		edges = append(edges, g.edges[i])
	}
	return edges
}

// Successors returns the distinct targets of edges leaving n.
func (g *DependencyGraph) Successors(n Node) []Node {
	var nodes []Node
	for _, e := range g.OutEdges(n) {
		nodes = append(nodes, e.To)
	}
	return uniqueSorted(nodes)
}

// Predecessors returns the distinct sources of edges entering n.
func (g *DependencyGraph) Predecessors(n Node) []Node {
	var nodes []Node
	for _, e := range g.InEdges(n) {
		nodes = append(nodes, e.From)
	}
	return uniqueSorted(nodes)
}

// InDegree counts the edges entering n.
func (g *DependencyGraph) InDegree(n Node) int {
	if i, ok := g.index[n]; ok {
		return len(g.in[i])
	}
	return 0
}

// OutDegree counts the edges leaving n.
func (g *DependencyGraph) OutDegree(n Node) int {
	if i, ok := g.index[n]; ok {
		return len(g.out[i])
	}
	return 0
}

func uniqueSorted(nodes []Node) []Node {
	slices.SortFunc(nodes, compareNodes)
	return slices.Compact(nodes)
}
