package show

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/datadag/cmd/scanopts"
)

// ErrCyclic is returned by show --strict when the graph has a cycle.
var ErrCyclic = errors.New("dependency graph is not acyclic")

type showOptions struct {
	summaryOnly bool
	strict      bool
	scan        *scanopts.Options
}

// NewCommand returns a new show command instance.
func NewCommand() *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show what every scanned file reads and writes",
		Long: `Scan a project and print, per file, the inputs and outputs its directives
declare, followed by root datasets, datasets with several producers, files
referenced but never scanned, cycles and scan diagnostics.

Examples:
  datadag show
  datadag show --summary
  datadag show --strict      # exit with an error when the graph has a cycle`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.summaryOnly, "summary", false, "Print only the per-file summary")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail when the graph has a cycle")

	opts.scan = scanopts.Register(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, opts *showOptions) error {
	sess, err := opts.scan.Session(cmd.Context(), cmd)
	if err != nil {
		return err
	}

	output := sess.Summary()
	if !opts.summaryOnly {
		output, err = sess.Report()
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
	}

	if _, err := fmt.Fprint(cmd.OutOrStdout(), output); err != nil {
		return err
	}

	if opts.strict && sess.HasCycle() {
		return ErrCyclic
	}
	return nil
}
