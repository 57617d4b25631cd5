package depgraph

import (
	"errors"
	"fmt"

	graphlib "github.com/dominikbraun/graph"
)

// NodeClass is the visual class of an exported node.
type NodeClass string

const (
	ClassRootDataset    NodeClass = "root-dataset"
	ClassScannedFile    NodeClass = "scanned-file"
	ClassDataset        NodeClass = "dataset"
	ClassReferencedFile NodeClass = "referenced-file"
)

// Export is a renderer-neutral description of the graph.
type Export struct {
	ProjectRoot string       `json:"projectRoot,omitempty"`
	Nodes       []ExportNode `json:"nodes"`
	Edges       []ExportEdge `json:"edges"`
	Cyclic      bool         `json:"cyclic"`
	Cycles      [][]string   `json:"cycles,omitempty"`
}

// ExportNode is one node of an Export.
type ExportNode struct {
	ID            string    `json:"id"`
	Path          string    `json:"path"`
	Kind          string    `json:"kind"`
	Class         NodeClass `json:"class"`
	Root          bool      `json:"root,omitempty"`
	MultiProducer bool      `json:"multiProducer,omitempty"`
	InCycle       bool      `json:"inCycle,omitempty"`
}

// ExportEdge is one edge of an Export. From and To are node IDs.
type ExportEdge struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Type    string `json:"type"`
	InCycle bool   `json:"inCycle,omitempty"`
}

// ExportOptions narrows what Export includes.
type ExportOptions struct {
	// Focus keeps only the lineage of these nodes when non-empty.
	Focus []Node
	// Only keeps exactly these nodes when non-empty. It is applied after Focus.
	Only []Node
	// TrimDanglingDatasets drops datasets that nothing consumes.
	TrimDanglingDatasets bool
}

// Class returns the visual class of n.
func (g *DependencyGraph) Class(n Node) NodeClass {
	switch {
	case n.Kind == FileNode && g.scanned[n.Path]:
		return ClassScannedFile
	case n.Kind == FileNode:
		return ClassReferencedFile
	case g.IsRootDataset(n):
		return ClassRootDataset
	default:
		return ClassDataset
	}
}

// Export describes the whole graph.
func (g *DependencyGraph) Export() (Export, error) {
	return g.ExportWith(ExportOptions{})
}

// ExportWith describes the part of the graph selected by opts. Classes and
// flags always reflect the full graph.
func (g *DependencyGraph) ExportWith(opts ExportOptions) (Export, error) {
	cycles, err := g.Cycles()
	if err != nil {
		return Export{}, err
	}
	component := make(map[Node]int)
	for i, cycle := range cycles {
		for _, n := range cycle {
			component[n] = i
		}
	}

	keep := g.selectNodes(opts)

	export := Export{
		Nodes:  []ExportNode{},
		Edges:  []ExportEdge{},
		Cyclic: g.hasCycle,
	}
	for i, n := range g.nodes {
		if !keep[n] {
			continue
		}
		_, inCycle := component[n]
		export.Nodes = append(export.Nodes, ExportNode{
			ID:            n.ID(),
			Path:          n.Path,
			Kind:          n.Kind.String(),
			Class:         g.Class(n),
			Root:          g.IsRootDataset(n),
			MultiProducer: n.Kind == DatasetNode && len(g.in[i]) > 1,
			InCycle:       inCycle,
		})
	}

	for _, e := range g.edges {
		if !keep[e.From] || !keep[e.To] {
			continue
		}
		fromComponent, fromInCycle := component[e.From]
		toComponent, toInCycle := component[e.To]
		export.Edges = append(export.Edges, ExportEdge{
			From:    e.From.ID(),
			To:      e.To.ID(),
			Type:    e.Type.String(),
			InCycle: fromInCycle && toInCycle && fromComponent == toComponent,
		})
	}

	for _, cycle := range cycles {
		ids := make([]string, 0, len(cycle))
		for _, n := range cycle {
			ids = append(ids, n.ID())
		}
		export.Cycles = append(export.Cycles, ids)
	}

	return export, nil
}

func (g *DependencyGraph) selectNodes(opts ExportOptions) map[Node]bool {
	candidates := g.nodes
	if len(opts.Focus) > 0 {
		candidates = g.Lineage(opts.Focus)
	}

	var only map[Node]bool
	if len(opts.Only) > 0 {
		only = make(map[Node]bool, len(opts.Only))
		for _, n := range opts.Only {
			only[n] = true
		}
	}

	keep := make(map[Node]bool, len(candidates))
	for _, n := range candidates {
		if only != nil && !only[n] {
			continue
		}
		if opts.TrimDanglingDatasets && n.Kind == DatasetNode && g.OutDegree(n) == 0 {
			continue
		}
		keep[n] = true
	}
	return keep
}

// Node attributes carried by the graph returned from Graphlib.
const (
	AttributeKind      = "kind"
	AttributeClass     = "class"
	AttributeShape     = "shape"
	AttributeFillColor = "fillcolor"
)

// ClassStyle is the Graphviz shape and fill colour used for a node class.
type ClassStyle struct {
	Shape string
	Fill  string
}

var classStyles = map[NodeClass]ClassStyle{
	ClassScannedFile:    {Shape: "note", Fill: "seagreen3"},
	ClassReferencedFile: {Shape: "note", Fill: "gold"},
	ClassRootDataset:    {Shape: "ellipse", Fill: "gold"},
	ClassDataset:        {Shape: "ellipse", Fill: "lightgrey"},
}

// StyleOf returns the style for class.
func StyleOf(class NodeClass) ClassStyle {
	return classStyles[class]
}

// Graphlib returns the graph as a github.com/dominikbraun/graph directed
// graph keyed by node ID, with kind, class, shape and fill colour attributes
// on every vertex and the edge type on every edge.
func (g *DependencyGraph) Graphlib() (graphlib.Graph[string, Node], error) {
	lib := graphlib.New(Node.ID, graphlib.Directed())

	for _, n := range g.nodes {
		class := g.Class(n)
		style := StyleOf(class)
		err := lib.AddVertex(n,
			graphlib.VertexAttribute(AttributeKind, n.Kind.String()),
			graphlib.VertexAttribute(AttributeClass, string(class)),
			graphlib.VertexAttribute(AttributeShape, style.Shape),
			graphlib.VertexAttribute(AttributeFillColor, style.Fill),
		)
		if err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
			return nil, fmt.Errorf("failed to add vertex %s: %w", n.ID(), err)
		}
	}

	for _, e := range g.edges {
		err := lib.AddEdge(e.From.ID(), e.To.ID(), graphlib.EdgeAttribute("type", e.Type.String()))
		if err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
			return nil, fmt.Errorf("failed to add edge %s -> %s: %w", e.From.ID(), e.To.ID(), err)
		}
	}

	return lib, nil
}
