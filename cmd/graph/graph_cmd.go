package graph

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/datadag/cmd/graph/formatters"
	"github.com/LegacyCodeHQ/datadag/cmd/scanopts"
	"github.com/LegacyCodeHQ/datadag/depgraph"
	"github.com/LegacyCodeHQ/datadag/depgraph/session"
)

type graphOptions struct {
	outputFormat string
	label        string
	focus        []string
	trimDangling bool
	generateURL  bool
	scan         *scanopts.Options
}

// NewCommand returns a new graph command instance.
func NewCommand() *cobra.Command {
	opts := &graphOptions{
		outputFormat: formatters.OutputFormatDOT.String(),
	}

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the data dependency graph of a project",
		Long: `Scan a project for dependency directives and print the graph of files
and datasets they describe.

Examples:
  datadag graph                                   # DOT for the current project
  datadag graph -f mermaid -u                     # mermaid.live URL
  datadag graph --focus code/analysis.do          # one file and its lineage
  datadag graph -f json --trim-dangling           # drop datasets nothing reads`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd, opts)
		},
	}

	// Add format flag
	cmd.Flags().StringVarP(
		&opts.outputFormat,
		"format",
		"f",
		opts.outputFormat,
		fmt.Sprintf("Output format (%s)", formatters.SupportedFormats()))
	cmd.Flags().StringVar(&opts.label, "label", "", "Title drawn on the graph (dot, mermaid)")
	cmd.Flags().StringSliceVar(&opts.focus, "focus", nil, "Only show the lineage of these files or datasets (comma-separated)")
	cmd.Flags().BoolVar(&opts.trimDangling, "trim-dangling", false, "Hide datasets that no file reads")
	// Add URL flag
	cmd.Flags().BoolVarP(&opts.generateURL, "url", "u", false, "Generate visualization URL (supported formats: mermaid)")

	opts.scan = scanopts.Register(cmd)

	return cmd
}

func runGraph(cmd *cobra.Command, opts *graphOptions) error {
	formatter, err := NewFormatter(opts.outputFormat)
	if err != nil {
		return err
	}

	sess, err := opts.scan.Session(cmd.Context(), cmd)
	if err != nil {
		return err
	}

	focus, err := resolveFocus(sess, opts.focus)
	if err != nil {
		return err
	}

	export, err := sess.Export(depgraph.ExportOptions{
		Focus:                focus,
		TrimDanglingDatasets: opts.trimDangling,
	})
	if err != nil {
		return fmt.Errorf("failed to export graph: %w", err)
	}

	output, err := formatter.Format(export, formatters.RenderOptions{Label: opts.label})
	if err != nil {
		return fmt.Errorf("failed to format graph: %w", err)
	}

	return emitOutput(cmd, opts, formatter, output)
}

func resolveFocus(sess *session.Session, paths []string) ([]depgraph.Node, error) {
	var focus []depgraph.Node
	var missing []string
	for _, p := range paths {
		nodes := sess.Lookup(p)
		if len(nodes) == 0 {
			missing = append(missing, p)
			continue
		}
		focus = append(focus, nodes...)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("not found in graph: %v", missing)
	}
	return focus, nil
}

func emitOutput(cmd *cobra.Command, opts *graphOptions, formatter formatters.Formatter, output string) error {
	if opts.generateURL {
		if generator, ok := formatter.(formatters.URLGenerator); ok {
			if urlStr, ok := generator.GenerateURL(output); ok {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), urlStr)
				return err
			}
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: URL generation is not supported for %s format\n\n", opts.outputFormat)
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), output)
	return err
}
