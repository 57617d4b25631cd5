package depgraph

// NodeKind distinguishes files from datasets.
type NodeKind int

const (
	FileNode NodeKind = iota
	DatasetNode
)

func (k NodeKind) String() string {
	if k == DatasetNode {
		return "dataset"
	}
	return "file"
}

// Node is a vertex of the dependency graph. Its identity is the pair of kind
// and canonical path, so a file and a dataset never collide.
type Node struct {
	Kind NodeKind
	Path string
}

// ID returns the node identity as a string.
func (n Node) ID() string {
	return n.Kind.String() + ":" + n.Path
}

func (n Node) String() string {
	return n.ID()
}

func compareNodes(a, b Node) int {
	if a.Path != b.Path {
		if a.Path < b.Path {
			return -1
		}
		return 1
	}
	return int(a.Kind) - int(b.Kind)
}

// EdgeType labels how two nodes are related.
type EdgeType int

const (
	// Produces runs from a file to a dataset it writes.
	Produces EdgeType = iota
	// Consumes runs from a dataset to a file that reads it.
	Consumes
	// InlineRuns runs from a file to a file it pulls in.
	InlineRuns
)

func (t EdgeType) String() string {
	switch t {
	case Produces:
		return "produces"
	case Consumes:
		return "consumes"
	case InlineRuns:
		return "inline-runs"
	default:
		return "unknown"
	}
}

// Edge is a typed directed edge.
type Edge struct {
	From Node
	To   Node
	Type EdgeType
}

func compareEdges(a, b Edge) int {
	if c := compareNodes(a.From, b.From); c != 0 {
		return c
	}
	if c := compareNodes(a.To, b.To); c != 0 {
		return c
	}
	return int(a.Type) - int(b.Type)
}
