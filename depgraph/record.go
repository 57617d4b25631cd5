package depgraph

import (
	"sort"
	"strings"

	"github.com/LegacyCodeHQ/datadag/depgraph/dialect"
)

// DependencyRecord is what one scanned file declares about its inputs and outputs.
// All path sets hold canonical paths, sorted and without duplicates.
type DependencyRecord struct {
	FilePath       string
	Dialect        string
	InputDatasets  []string
	InputFiles     []string
	OutputDatasets []string
	// Ignored records are reported but contribute nothing to the graph.
	Ignored    bool
	Directives []dialect.Directive
}

// Resolver maps a directive to the canonical path it names.
type Resolver func(d dialect.Directive) string

// NewDependencyRecord partitions directives into a record for filePath.
// Any truthy ignore flag marks the whole record as ignored; the path sets are
// populated either way. Directives with a blank value are dropped.
func NewDependencyRecord(filePath, dialectName string, directives []dialect.Directive, resolve Resolver) DependencyRecord {
	record := DependencyRecord{
		FilePath: filePath,
		Dialect:  dialectName,
	}

	inputDatasets := make(map[string]bool)
	inputFiles := make(map[string]bool)
	outputDatasets := make(map[string]bool)

	for _, d := range directives {
		if strings.TrimSpace(d.RawValue) == "" {
			continue
		}
		record.Directives = append(record.Directives, d)

		switch d.Kind {
		case dialect.IgnoreFlag:
			if d.Truthy() {
				record.Ignored = true
			}
		case dialect.InputDataset:
			inputDatasets[resolve(d)] = true
		case dialect.InputFile:
			inputFiles[resolve(d)] = true
		case dialect.OutputDataset:
			outputDatasets[resolve(d)] = true
		}
	}

	record.InputDatasets = sortedKeys(inputDatasets)
	record.InputFiles = sortedKeys(inputFiles)
	record.OutputDatasets = sortedKeys(outputDatasets)
	return record
}

// IsEmpty reports whether the record declares nothing.
func (r DependencyRecord) IsEmpty() bool {
	return len(r.InputDatasets) == 0 && len(r.InputFiles) == 0 && len(r.OutputDatasets) == 0
}

// SortRecords orders records by file path.
func SortRecords(records []DependencyRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].FilePath < records[j].FilePath
	})
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
