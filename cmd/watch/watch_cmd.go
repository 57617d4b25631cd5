package watch

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/datadag/cmd/scanopts"
	"github.com/LegacyCodeHQ/datadag/depgraph/scanner"
	"github.com/LegacyCodeHQ/datadag/depgraph/session"
	"github.com/LegacyCodeHQ/datadag/internal/config"
)

type watchOptions struct {
	summaryOnly bool
	scan        *scanopts.Options
}

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-scan the project whenever a source file changes",
		Long: `Watch the code directory of a project and print a fresh report each time a
file in a known dialect, the settings file or the .env file changes.

Examples:
  datadag watch
  datadag watch --summary`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.summaryOnly, "summary", false, "Print only the per-file summary on each change")
	opts.scan = scanopts.Register(cmd)

	return cmd
}

func runWatch(cmd *cobra.Command, opts *watchOptions) error {
	cfg, err := opts.scan.Config(cmd)
	if err != nil {
		return err
	}
	scanOpts, err := cfg.ScannerOptions()
	if err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	cache, err := scanner.NewExtractCache(0)
	if err != nil {
		return err
	}
	opts.scan.Cache = cache

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	out := cmd.OutOrStdout()
	p := newPrinter(out, isTerminal(out), func(ctx context.Context) (string, error) {
		// Settings are re-read so edits to datadag.yaml or .env apply.
		sess, err := opts.scan.Session(ctx, cmd)
		if err != nil {
			return "", err
		}
		return render(sess, opts.summaryOnly)
	})

	if err := p.rebuild(ctx); err != nil {
		return fmt.Errorf("initial scan failed: %w", err)
	}

	projectRoot, err := filepath.Abs(scanOpts.ProjectRoot)
	if err != nil {
		return fmt.Errorf("failed to resolve project root: %w", err)
	}
	codeRoot := filepath.Join(projectRoot, filepath.FromSlash(scanOpts.CodePrefix))
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s\n", codeRoot)
	fmt.Fprintf(cmd.ErrOrStderr(), "Press Ctrl+C to stop\n")

	w := watchSpec{
		root:         codeRoot,
		dialects:     scanOpts.Dialects,
		skipped:      skipSet(scanOpts.IgnoreFolders),
		extra:        []string{config.FileName, config.DotEnvFile},
		settingsDirs: settingsDirs(projectRoot, cfg.Path),
	}
	return watchAndRebuild(ctx, w, p)
}

// settingsDirs lists the directories holding the settings file and the
// project's .env file.
func settingsDirs(projectRoot, settingsPath string) []string {
	dirs := []string{projectRoot}
	if settingsPath != "" {
		if dir, err := filepath.Abs(filepath.Dir(settingsPath)); err == nil && dir != projectRoot {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func render(sess *session.Session, summaryOnly bool) (string, error) {
	if summaryOnly {
		return sess.Summary(), nil
	}
	return sess.Report()
}
