package formatters

import (
	"encoding/json"

	"github.com/LegacyCodeHQ/datadag/depgraph"
)

// JSONFormatter formats exported graphs as JSON.
type JSONFormatter struct{}

// Format converts the exported graph to indented JSON.
// The opts parameter is accepted for interface compatibility but not used.
func (f *JSONFormatter) Format(e depgraph.Export, opts RenderOptions) (string, error) {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
