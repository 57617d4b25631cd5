package depgraph

import (
	"testing"

	"github.com/LegacyCodeHQ/datadag/depgraph/dialect"
	"github.com/stretchr/testify/assert"
)

func TestNewDependencyRecord(t *testing.T) {
	directives := []dialect.Directive{
		{Kind: dialect.OutputDataset, RawValue: "b.dta", Line: 1},
		{Kind: dialect.InputDataset, RawValue: "a.dta", Line: 2},
		{Kind: dialect.InputDataset, RawValue: "a.dta", Line: 3},
		{Kind: dialect.InputFile, RawValue: "load.do", Line: 4},
		{Kind: dialect.IgnoreFlag, RawValue: "yes", Line: 5},
	}

	r := NewDependencyRecord("/p/code/x.do", "stata", directives, func(d dialect.Directive) string {
		return "/p/" + d.RawValue
	})

	assert.Equal(t, []string{"/p/a.dta"}, r.InputDatasets)
	assert.Equal(t, []string{"/p/load.do"}, r.InputFiles)
	assert.Equal(t, []string{"/p/b.dta"}, r.OutputDatasets)
	assert.True(t, r.Ignored)
	assert.Len(t, r.Directives, 5)
	assert.False(t, r.IsEmpty())
}

func TestNewDependencyRecord_NoDirectives(t *testing.T) {
	r := NewDependencyRecord("/p/code/empty.do", "stata", nil, func(d dialect.Directive) string {
		return d.RawValue
	})

	assert.Empty(t, r.InputDatasets)
	assert.Empty(t, r.InputFiles)
	assert.Empty(t, r.OutputDatasets)
	assert.False(t, r.Ignored)
	assert.True(t, r.IsEmpty())
}

func TestNewDependencyRecord_DropsEmptyValues(t *testing.T) {
	directives := []dialect.Directive{
		{Kind: dialect.InputDataset, RawValue: "", Line: 1},
		{Kind: dialect.OutputDataset, RawValue: "  ", Line: 2},
		{Kind: dialect.InputFile, RawValue: "load.do", Line: 3},
	}

	r := NewDependencyRecord("/p/code/step.txt", "manual", directives, func(d dialect.Directive) string {
		return "/p/data/" + d.RawValue
	})

	assert.Empty(t, r.InputDatasets)
	assert.Empty(t, r.OutputDatasets)
	assert.Equal(t, []string{"/p/data/load.do"}, r.InputFiles)
	assert.Equal(t, []dialect.Directive{{Kind: dialect.InputFile, RawValue: "load.do", Line: 3}}, r.Directives)
}
