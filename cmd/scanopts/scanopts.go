// Package scanopts holds the flags shared by every command that scans a
// project.
package scanopts

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/datadag/depgraph/scanner"
	"github.com/LegacyCodeHQ/datadag/depgraph/session"
	"github.com/LegacyCodeHQ/datadag/internal/config"
)

// Options carries the scan flags of one command.
type Options struct {
	Root       string
	CodePrefix string
	DataPrefix string
	ConfigPath string
	Workers    int

	// LookupEnv reads DATADAG_* overrides. Nil means os.LookupEnv.
	LookupEnv func(string) (string, bool)
	// Cache is handed to every scan when set.
	Cache *scanner.ExtractCache
}

// Register adds the scan flags to cmd.
func Register(cmd *cobra.Command) *Options {
	opts := &Options{}

	cmd.Flags().StringVarP(&opts.Root, "root", "r", "", "Project root (default: from datadag.yaml or the current directory)")
	cmd.Flags().StringVar(&opts.CodePrefix, "code-prefix", "", "Directory under the project root holding the code")
	cmd.Flags().StringVar(&opts.DataPrefix, "data-prefix", "", "Directory under the project root holding the datasets")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", fmt.Sprintf("Settings file (default: nearest %s)", config.FileName))
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Files read concurrently (default: number of CPUs)")

	return opts
}

// Config layers the flags the user set over the discovered settings.
func (o *Options) Config(cmd *cobra.Command) (config.Config, error) {
	lookupEnv := o.LookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	startDir := o.Root
	if startDir == "" {
		startDir = "."
	}

	var cfg config.Config
	var err error
	if o.ConfigPath != "" {
		cfg, err = config.Load(o.ConfigPath)
		if err == nil {
			err = cfg.ApplyDotEnv()
		}
		if err == nil {
			err = cfg.ApplyEnv(lookupEnv)
		}
	} else {
		cfg, err = config.Discover(startDir, lookupEnv)
	}
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.ProjectRoot = o.Root
	}
	if flags.Changed("code-prefix") {
		cfg.CodePathPrefix = o.CodePrefix
	}
	if flags.Changed("data-prefix") {
		cfg.DataPathPrefix = o.DataPrefix
	}
	if flags.Changed("workers") {
		cfg.Workers = o.Workers
	}

	if cfg.Path != "" {
		slog.Debug("loaded settings", "path", cfg.Path, "project_root", cfg.ProjectRoot)
	}
	return cfg, nil
}

// Session scans the project the flags describe.
func (o *Options) Session(ctx context.Context, cmd *cobra.Command) (*session.Session, error) {
	cfg, err := o.Config(cmd)
	if err != nil {
		return nil, err
	}

	scanOpts, err := cfg.ScannerOptions()
	if err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	scanOpts.Logger = slog.Default()
	scanOpts.Cache = o.Cache

	sess, err := session.Run(ctx, scanOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to scan project: %w", err)
	}
	return sess, nil
}
