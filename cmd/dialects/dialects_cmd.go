package dialects

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/datadag/cmd/scanopts"
)

type dialectsOptions struct {
	verbose bool
	scan    *scanopts.Options
}

// NewCommand returns a new dialects command instance.
func NewCommand() *cobra.Command {
	opts := &dialectsOptions{}

	cmd := &cobra.Command{
		Use:   "dialects",
		Short: "List the comment dialects and the file extensions mapped to them",
		Long: `List every comment dialect directives can be written in, with the file
extensions that select it once the project's extension overrides are applied.

Examples:
  datadag dialects
  datadag dialects -v`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDialects(cmd, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show the comment style of each dialect")
	opts.scan = scanopts.Register(cmd)

	return cmd
}

func runDialects(cmd *cobra.Command, opts *dialectsOptions) error {
	cfg, err := opts.scan.Config(cmd)
	if err != nil {
		return err
	}
	scanOpts, err := cfg.ScannerOptions()
	if err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	for _, entry := range scanOpts.Dialects.Entries() {
		exts := "none"
		if len(entry.Extensions) > 0 {
			exts = strings.Join(entry.Extensions, ", ")
		}

		line := fmt.Sprintf("%s (%s)", entry.Name, exts)
		if opts.verbose {
			line = fmt.Sprintf("%-16s %-10s %s", entry.Name, entry.Style, exts)
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return err
		}
	}

	return nil
}
