package why

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/datadag/cmd/graph"
	"github.com/LegacyCodeHQ/datadag/cmd/graph/formatters"
	"github.com/LegacyCodeHQ/datadag/cmd/scanopts"
	"github.com/LegacyCodeHQ/datadag/depgraph"
	"github.com/LegacyCodeHQ/datadag/depgraph/session"
)

const formatText = "text"

type whyOptions struct {
	outputFormat string
	scan         *scanopts.Options
}

// NewCommand returns a new why command instance.
func NewCommand() *cobra.Command {
	opts := &whyOptions{
		outputFormat: formatText,
	}

	cmd := &cobra.Command{
		Use:   "why <from> <to>",
		Short: "Show how one file or dataset depends on another",
		Long: `Show the shortest chain of directives linking two files or datasets, in
whichever direction it runs.

Examples:
  datadag why data/funda.sas7bdat code/load_data.do
  datadag why code/analysis.do code/data.sas -f mermaid`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhy(cmd, opts, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(
		&opts.outputFormat,
		"format",
		"f",
		opts.outputFormat,
		fmt.Sprintf("Output format (%s, %s)", formatText, formatters.SupportedFormats()))
	opts.scan = scanopts.Register(cmd)

	return cmd
}

func runWhy(cmd *cobra.Command, opts *whyOptions, fromArg, toArg string) error {
	var formatter formatters.Formatter
	if opts.outputFormat != formatText {
		f, err := graph.NewFormatter(opts.outputFormat)
		if err != nil {
			return fmt.Errorf("unknown format: %s (valid options: %s, %s)", opts.outputFormat, formatText, formatters.SupportedFormats())
		}
		formatter = f
	}

	sess, err := opts.scan.Session(cmd.Context(), cmd)
	if err != nil {
		return err
	}

	fromNodes := sess.Lookup(fromArg)
	if len(fromNodes) == 0 {
		return fmt.Errorf("from not found in dependency graph: %s", fromArg)
	}
	toNodes := sess.Lookup(toArg)
	if len(toNodes) == 0 {
		return fmt.Errorf("to not found in dependency graph: %s", toArg)
	}

	path := findPath(sess.Graph(), fromNodes, toNodes)
	if path == nil {
		path = findPath(sess.Graph(), toNodes, fromNodes)
	}

	var output string
	if formatter == nil {
		output = formatTextOutput(sess, fromArg, toArg, path)
	} else {
		output, err = formatGraphOutput(sess, formatter, path)
		if err != nil {
			return err
		}
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
	return err
}

func findPath(g *depgraph.DependencyGraph, from, to []depgraph.Node) []depgraph.Edge {
	for _, f := range from {
		for _, t := range to {
			if path := g.Path(f, t); path != nil {
				return path
			}
		}
	}
	return nil
}

func formatTextOutput(sess *session.Session, fromArg, toArg string, path []depgraph.Edge) string {
	if len(path) == 0 {
		return fmt.Sprintf("No dependency path between %s and %s", fromArg, toArg)
	}

	var sb strings.Builder
	first, last := path[0].From, path[len(path)-1].To
	fmt.Fprintf(&sb, "path from %s to %s (%d %s):\n", sess.Rel(first.Path), sess.Rel(last.Path), len(path), plural(len(path), "step", "steps"))
	for _, e := range path {
		fmt.Fprintf(&sb, "  %s %s %s %s %s\n", e.From.Kind, sess.Rel(e.From.Path), verb(e.Type), e.To.Kind, sess.Rel(e.To.Path))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func formatGraphOutput(sess *session.Session, formatter formatters.Formatter, path []depgraph.Edge) (string, error) {
	if len(path) == 0 {
		// An empty Only list means no filter, so build the empty export here.
		return formatter.Format(depgraph.Export{
			ProjectRoot: sess.ProjectRoot(),
			Nodes:       []depgraph.ExportNode{},
			Edges:       []depgraph.ExportEdge{},
		}, formatters.RenderOptions{})
	}

	only := make([]depgraph.Node, 0, len(path)+1)
	for _, e := range path {
		only = append(only, e.From, e.To)
	}
	export, err := sess.Export(depgraph.ExportOptions{Only: only})
	if err != nil {
		return "", fmt.Errorf("failed to export graph: %w", err)
	}
	return formatter.Format(export, formatters.RenderOptions{})
}

func verb(t depgraph.EdgeType) string {
	switch t {
	case depgraph.Produces:
		return "writes"
	case depgraph.Consumes:
		return "is read by"
	default:
		return "runs"
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
