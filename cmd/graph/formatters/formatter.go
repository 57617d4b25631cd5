package formatters

import "github.com/LegacyCodeHQ/datadag/depgraph"

// RenderOptions contains optional parameters for rendering an exported graph.
type RenderOptions struct {
	// Label is an optional title for the graph
	Label string
}

// Formatter is the interface that all graph formatters must implement.
type Formatter interface {
	// Format converts an exported dependency graph to text.
	Format(e depgraph.Export, opts RenderOptions) (string, error)
}

// URLGenerator is implemented by formatters whose output can be opened in an
// online editor.
type URLGenerator interface {
	GenerateURL(output string) (string, bool)
}
