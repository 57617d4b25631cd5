package scanner

import (
	"log/slog"
	"runtime"

	"github.com/LegacyCodeHQ/datadag/depgraph/dialect"
	"github.com/LegacyCodeHQ/datadag/depgraph/registry"
)

// DefaultIgnoreFolders are directory names never descended into.
var DefaultIgnoreFolders = []string{".git", ".ipynb_checkpoints", "__pycache__"}

// Options configures one scan. Nothing is read from ambient state.
type Options struct {
	// ProjectRoot anchors every resolved path. Relative roots are made absolute.
	ProjectRoot string
	// CodePrefix is the directory under ProjectRoot that is walked and that
	// INPUT_FILE values are relative to.
	CodePrefix string
	// DataPrefix is the directory under ProjectRoot that dataset values are relative to.
	DataPrefix string
	// Dialects maps extensions to dialects. Nil means registry.Default().
	Dialects registry.Table
	// IgnoreFolders lists directory names to skip. Nil means DefaultIgnoreFolders.
	IgnoreFolders []string
	// Manual supplies directives for steps with no scannable source, keyed by
	// path relative to the code root.
	Manual map[string][]dialect.Directive
	// Workers bounds concurrent extraction. Zero means runtime.NumCPU().
	Workers int
	// ContentReader reads file content. Nil means the filesystem.
	ContentReader ContentReader
	// Cache, when set, is consulted before extracting and may be shared
	// between scans.
	Cache  *ExtractCache
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.ProjectRoot == "" {
		o.ProjectRoot = "."
	}
	if o.Dialects == nil {
		o.Dialects = registry.Default()
	}
	if o.IgnoreFolders == nil {
		o.IgnoreFolders = DefaultIgnoreFolders
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.ContentReader == nil {
		o.ContentReader = FilesystemContentReader()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
