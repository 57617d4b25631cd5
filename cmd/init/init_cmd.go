package initcmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/datadag/internal/config"
)

type initOptions struct {
	dir        string
	codePrefix string
	dataPrefix string
	force      bool
	quiet      bool
}

// NewCommand returns a new init command instance.
func NewCommand() *cobra.Command {
	opts := &initOptions{dir: "."}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter " + config.FileName + " in the project root",
		Long: `Write a starter settings file. Every datadag command run in the directory or
below it picks the file up.

With --force: Overwrites an existing settings file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "root", "r", opts.dir, "Directory to write the settings file in")
	cmd.Flags().StringVar(&opts.codePrefix, "code-prefix", "", "Directory under the project root holding the code")
	cmd.Flags().StringVar(&opts.dataPrefix, "data-prefix", "", "Directory under the project root holding the datasets")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing settings file")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress output")

	return cmd
}

func runInit(cmd *cobra.Command, opts *initOptions) error {
	info, err := os.Stat(opts.dir)
	if err != nil {
		return fmt.Errorf("failed to access %s: %w", opts.dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", opts.dir)
	}

	path := filepath.Join(opts.dir, config.FileName)
	_, err = os.Stat(path)
	fileExists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to access %s: %w", path, err)
	}
	if fileExists && !opts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.Default()
	cfg.CodePathPrefix = opts.codePrefix
	cfg.DataPathPrefix = opts.dataPrefix

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if !opts.quiet {
		absPath, err := filepath.Abs(path)
		if err != nil {
			absPath = path
		}
		if fileExists {
			fmt.Fprintf(cmd.OutOrStdout(), "Overwrote %s\n", absPath)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", absPath)
		}
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), "Next steps:")
		fmt.Fprintln(cmd.OutOrStdout(), "  - Run 'datadag show' to check the directives found")
		fmt.Fprintln(cmd.OutOrStdout(), "  - Run 'datadag graph -f mermaid -u' to visualize the pipeline")
	}

	return nil
}
