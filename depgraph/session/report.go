package session

import (
	"fmt"
	"strings"

	"github.com/LegacyCodeHQ/datadag/depgraph"
)

// Report extends the summary with the graph-level findings: root datasets,
// datasets with several producers, referenced files that were never scanned,
// cycles and scan diagnostics.
func (s *Session) Report() (string, error) {
	var sb strings.Builder
	sb.WriteString(s.Summary())
	sb.WriteString("\n")

	g := s.graph

	s.writeList(&sb, "ROOT DATASETS", s.RootDatasets())
	s.writeList(&sb, "MULTI-PRODUCER DATASETS", s.MultiProducerDatasets())

	var unscanned []string
	for _, n := range g.Files() {
		if g.IsProvisional(n.Path) {
			unscanned = append(unscanned, n.Path)
		}
	}
	s.writeList(&sb, "UNSCANNED INPUT FILES", unscanned)

	cycles, err := g.Cycles()
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&sb, "CYCLES (found %d):\n", len(cycles))
	for i, cycle := range cycles {
		parts := make([]string, 0, len(cycle))
		for _, n := range cycle {
			parts = append(parts, s.describe(n))
		}
		fmt.Fprintf(&sb, "\tC%d: %s\n", i+1, strings.Join(parts, ", "))
	}

	fmt.Fprintf(&sb, "DIAGNOSTICS (found %d):\n", len(s.diagnostics))
	for _, d := range s.diagnostics {
		fmt.Fprintf(&sb, "\t%s %s: %v\n", d.Kind, s.Rel(d.Path), d.Err)
	}

	return sb.String(), nil
}

func (s *Session) writeList(sb *strings.Builder, title string, paths []string) {
	fmt.Fprintf(sb, "%s (found %d):\n", title, len(paths))
	for _, p := range paths {
		fmt.Fprintf(sb, "\t%s\n", s.Rel(p))
	}
}

func (s *Session) describe(n depgraph.Node) string {
	return n.Kind.String() + " " + s.Rel(n.Path)
}
