package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/datadag/cmd/dialects"
	"github.com/LegacyCodeHQ/datadag/cmd/graph"
	initcmd "github.com/LegacyCodeHQ/datadag/cmd/init"
	"github.com/LegacyCodeHQ/datadag/cmd/show"
	"github.com/LegacyCodeHQ/datadag/cmd/watch"
	"github.com/LegacyCodeHQ/datadag/cmd/why"
	"github.com/LegacyCodeHQ/datadag/internal/logging"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

var logLevel string
var logFormat string

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datadag",
		Short: "Trace how data flows through a research code base",
		Long: `Datadag reads the dependency directives written in the comments of SAS,
Stata, Python, R, LaTeX and notebook files, and builds the graph of which
steps read and write which datasets.

Use 'datadag --help' to see all available commands, or 'datadag <command> --help'
for detailed information about a specific command.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			slog.SetDefault(logging.New(logLevel, logFormat, cmd.ErrOrStderr()))
			return nil
		},
	}

	cmd.AddCommand(
		graph.NewCommand(),
		initcmd.NewCommand(),
		show.NewCommand(),
		dialects.NewCommand(),
		watch.NewCommand(),
		why.NewCommand(),
	)

	// Initialize annotations for version template
	cmd.Annotations = map[string]string{
		"buildDate": buildDate,
		"commit":    commit,
	}

	// Customize version template to show additional build info
	cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
