package depgraph

import "errors"

// ErrCyclic is returned by operations that need an acyclic graph.
var ErrCyclic = errors.New("dependency graph contains a cycle")

// RootDatasets returns the datasets no file produces.
func (g *DependencyGraph) RootDatasets() []Node {
	var roots []Node
	for i, n := range g.nodes {
		if n.Kind == DatasetNode && len(g.in[i]) == 0 {
			roots = append(roots, n)
		}
	}
	return roots
}

// IsRootDataset reports whether n is a dataset without a producer.
func (g *DependencyGraph) IsRootDataset(n Node) bool {
	i, ok := g.index[n]
	return ok && n.Kind == DatasetNode && len(g.in[i]) == 0
}

// ProducersOf returns the files that write the dataset at path.
func (g *DependencyGraph) ProducersOf(path string) []Node {
	return g.Predecessors(Node{Kind: DatasetNode, Path: path})
}

// ConsumersOf returns the files that read the dataset at path.
func (g *DependencyGraph) ConsumersOf(path string) []Node {
	return g.Successors(Node{Kind: DatasetNode, Path: path})
}

// MultiProducerDatasets returns the datasets written by more than one file.
func (g *DependencyGraph) MultiProducerDatasets() []Node {
	var datasets []Node
	for i, n := range g.nodes {
		if n.Kind == DatasetNode && len(g.in[i]) > 1 {
			datasets = append(datasets, n)
		}
	}
	return datasets
}

// IsScanned reports whether a non-ignored record exists for the file at path.
func (g *DependencyGraph) IsScanned(path string) bool {
	return g.scanned[path]
}

// IsProvisional reports whether the file at path is only known from an
// INPUT_FILE reference and was never scanned.
func (g *DependencyGraph) IsProvisional(path string) bool {
	_, ok := g.index[Node{Kind: FileNode, Path: path}]
	return ok && !g.scanned[path]
}

// Files returns the file nodes in order.
func (g *DependencyGraph) Files() []Node {
	return g.nodesOfKind(FileNode)
}

// Datasets returns the dataset nodes in order.
func (g *DependencyGraph) Datasets() []Node {
	return g.nodesOfKind(DatasetNode)
}

func (g *DependencyGraph) nodesOfKind(kind NodeKind) []Node {
	var nodes []Node
	for _, n := range g.nodes {
		if n.Kind == kind {
			nodes = append(nodes, n)
		}
	}
	return nodes
}
