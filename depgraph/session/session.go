// Package session runs a scan and builds the dependency graph from it.
package session

import (
	"context"

	"github.com/LegacyCodeHQ/datadag/depgraph"
	"github.com/LegacyCodeHQ/datadag/depgraph/pathresolver"
	"github.com/LegacyCodeHQ/datadag/depgraph/scanner"
)

// Session holds the records of one scan and the graph built from them.
// A session never changes; re-scanning produces a new one.
type Session struct {
	projectRoot string
	records     []depgraph.DependencyRecord
	diagnostics []scanner.Diagnostic
	graph       *depgraph.DependencyGraph
}

// Run scans with opts and builds the graph.
func Run(ctx context.Context, opts scanner.Options) (*Session, error) {
	result, err := scanner.Scan(ctx, opts)
	if err != nil {
		return nil, err
	}
	return New(result.ProjectRoot, result.Records, result.Diagnostics), nil
}

// New builds a session from records gathered elsewhere.
func New(projectRoot string, records []depgraph.DependencyRecord, diagnostics []scanner.Diagnostic) *Session {
	sorted := append([]depgraph.DependencyRecord(nil), records...)
	depgraph.SortRecords(sorted)

	return &Session{
		projectRoot: pathresolver.Clean(projectRoot),
		records:     sorted,
		diagnostics: append([]scanner.Diagnostic(nil), diagnostics...),
		graph:       depgraph.Build(sorted),
	}
}

func (s *Session) ProjectRoot() string {
	return s.projectRoot
}

func (s *Session) Records() []depgraph.DependencyRecord {
	return append([]depgraph.DependencyRecord(nil), s.records...)
}

// Record returns the record scanned for the file at path.
func (s *Session) Record(path string) (depgraph.DependencyRecord, bool) {
	for _, r := range s.records {
		if r.FilePath == path {
			return r, true
		}
	}
	return depgraph.DependencyRecord{}, false
}

func (s *Session) Graph() *depgraph.DependencyGraph {
	return s.graph
}

func (s *Session) Diagnostics() []scanner.Diagnostic {
	return append([]scanner.Diagnostic(nil), s.diagnostics...)
}

func (s *Session) HasCycle() bool {
	return s.graph.HasCycle()
}

// RootDatasets returns the canonical paths of datasets nothing produces.
func (s *Session) RootDatasets() []string {
	return paths(s.graph.RootDatasets())
}

// MultiProducerDatasets returns the canonical paths of datasets written by
// more than one file.
func (s *Session) MultiProducerDatasets() []string {
	return paths(s.graph.MultiProducerDatasets())
}

// Export describes the graph for renderers.
func (s *Session) Export(opts depgraph.ExportOptions) (depgraph.Export, error) {
	export, err := s.graph.ExportWith(opts)
	if err != nil {
		return depgraph.Export{}, err
	}
	export.ProjectRoot = s.projectRoot
	return export, nil
}

// Rel shows path relative to the project root.
func (s *Session) Rel(path string) string {
	return pathresolver.Rel(s.projectRoot, path)
}

// Lookup finds the nodes for a path given relative to the project root or
// absolute. Both a file and a dataset may match.
func (s *Session) Lookup(path string) []depgraph.Node {
	canonical := pathresolver.Clean(path)
	if !pathresolver.IsAbs(canonical) {
		canonical = pathresolver.Join(s.projectRoot, canonical)
	}

	var nodes []depgraph.Node
	for _, kind := range []depgraph.NodeKind{depgraph.FileNode, depgraph.DatasetNode} {
		if n, ok := s.graph.Node(kind, canonical); ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func paths(nodes []depgraph.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Path)
	}
	return out
}
