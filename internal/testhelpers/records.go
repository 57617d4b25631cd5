package testhelpers

import (
	"testing"

	"github.com/LegacyCodeHQ/datadag/depgraph"
	"github.com/stretchr/testify/require"
)

// WalkthroughRecords returns the records a scan of WalkthroughProject rooted
// at root produces.
func WalkthroughRecords(root string) []depgraph.DependencyRecord {
	return []depgraph.DependencyRecord{
		{
			FilePath:   root + "/code/analysis.do",
			Dialect:    "stata",
			InputFiles: []string{root + "/code/load_data.do"},
		},
		{
			FilePath:       root + "/code/data.sas",
			Dialect:        "sas",
			InputDatasets:  []string{root + "/data/funda.sas7bdat"},
			OutputDatasets: []string{root + "/data/stata_data.dta"},
		},
		{
			FilePath:      root + "/code/load_data.do",
			Dialect:       "stata",
			InputDatasets: []string{root + "/data/stata_data.dta"},
		},
	}
}

// CyclicRecords returns two steps that each read what the other writes.
func CyclicRecords(root string) []depgraph.DependencyRecord {
	return []depgraph.DependencyRecord{
		{
			FilePath:       root + "/code/A.do",
			Dialect:        "stata",
			InputDatasets:  []string{root + "/data/d2"},
			OutputDatasets: []string{root + "/data/d1"},
		},
		{
			FilePath:       root + "/code/B.do",
			Dialect:        "stata",
			InputDatasets:  []string{root + "/data/d1"},
			OutputDatasets: []string{root + "/data/d2"},
		},
	}
}

// ExportRecords builds a graph from records and exports it under root.
func ExportRecords(t *testing.T, root string, records []depgraph.DependencyRecord) depgraph.Export {
	t.Helper()
	export, err := depgraph.Build(records).Export()
	require.NoError(t, err)
	export.ProjectRoot = root
	return export
}
