package dot

import (
	"fmt"
	"strings"

	"github.com/LegacyCodeHQ/datadag/cmd/graph/formatters"
	"github.com/LegacyCodeHQ/datadag/depgraph"
)

// Formatter formats exported graphs as Graphviz DOT.
type Formatter struct{}

// Format converts the exported graph to Graphviz DOT format.
// A cyclic graph is drawn on a red background with its cycle highlighted.
func (f *Formatter) Format(e depgraph.Export, opts formatters.RenderOptions) (string, error) {
	var sb strings.Builder
	sb.WriteString("digraph dependencies {\n")
	sb.WriteString("  rankdir=LR;\n")
	if e.Cyclic {
		sb.WriteString("  bgcolor=red;\n")
	}
	sb.WriteString("  node [style=filled];\n")
	sb.WriteString("  edge [arrowsize=1.5];\n")

	if opts.Label != "" {
		sb.WriteString(fmt.Sprintf("  label=%q;\n", opts.Label))
		sb.WriteString("  labelloc=t;\n")
		sb.WriteString("  labeljust=l;\n")
		sb.WriteString("  fontsize=10;\n")
		sb.WriteString("  fontname=Courier;\n")
	}

	keys := formatters.NodeKeys(e)
	labels := formatters.NodeLabels(e)

	if len(e.Nodes) > 0 {
		sb.WriteString("\n")
	}
	for _, n := range e.Nodes {
		style := depgraph.StyleOf(n.Class)
		attrs := []string{
			fmt.Sprintf("label=%q", labels[n.ID]),
			"shape=" + style.Shape,
			"fillcolor=" + style.Fill,
		}
		if n.InCycle {
			attrs = append(attrs, "color=red", "penwidth=2")
		}
		sb.WriteString(fmt.Sprintf("  %q [%s];\n", keys[n.ID], strings.Join(attrs, ", ")))
	}

	if len(e.Edges) > 0 {
		sb.WriteString("\n")
	}
	for _, edge := range e.Edges {
		var attrs []string
		if edge.Type == depgraph.InlineRuns.String() {
			attrs = append(attrs, "style=dashed")
		}
		if edge.InCycle {
			attrs = append(attrs, "color=red", "penwidth=2")
		}

		line := fmt.Sprintf("  %q -> %q", keys[edge.From], keys[edge.To])
		if len(attrs) > 0 {
			line += " [" + strings.Join(attrs, ", ") + "]"
		}
		sb.WriteString(line + ";\n")
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}
