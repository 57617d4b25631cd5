package session

import (
	"fmt"
	"strings"

	"github.com/LegacyCodeHQ/datadag/depgraph"
	"github.com/LegacyCodeHQ/datadag/depgraph/dialect"
)

const cycleWarning = "CYCLES DETECTED, DAG IS NOT ACYCLIC!"

// Summary lists what every scanned file declares, ordered by path, followed
// by one line on the state of the graph.
func (s *Session) Summary() string {
	var sb strings.Builder

	for _, r := range s.records {
		s.writeRecord(&sb, r)
	}

	if len(s.records) > 0 {
		sb.WriteString("\n")
	}
	if s.graph.HasCycle() {
		sb.WriteString(cycleWarning + "\n")
	} else {
		fmt.Fprintf(&sb, "DAG is acyclic: %d files, %d datasets, %d edges\n",
			len(s.graph.Files()), len(s.graph.Datasets()), len(s.graph.Edges()))
	}

	return sb.String()
}

func (s *Session) writeRecord(sb *strings.Builder, r depgraph.DependencyRecord) {
	label := r.Dialect
	if d, ok := dialect.ByName(r.Dialect); ok {
		label = d.Label
	}

	fmt.Fprintf(sb, "%s:: %s", label, s.Rel(r.FilePath))
	if r.Ignored {
		sb.WriteString(" (ignored)")
	}
	sb.WriteString("\n")

	s.writeSection(sb, "INPUT FILES", r.InputFiles)
	s.writeSection(sb, "INPUT DATASETS", r.InputDatasets)
	s.writeSection(sb, "OUTPUT DATASETS", r.OutputDatasets)
}

func (s *Session) writeSection(sb *strings.Builder, title string, paths []string) {
	fmt.Fprintf(sb, "\t%s (found %d):\n", title, len(paths))
	for _, p := range paths {
		fmt.Fprintf(sb, "\t\t%s\n", s.Rel(p))
	}
}
