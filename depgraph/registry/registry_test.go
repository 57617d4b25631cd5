package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_FallsBackToLowerCase(t *testing.T) {
	table := Default()

	d, ok := table.Lookup(".R")
	require.True(t, ok)
	assert.Equal(t, "r", d.Name)

	d, ok = table.Lookup(".DO")
	require.True(t, ok)
	assert.Equal(t, "stata", d.Name)

	_, ok = table.Lookup(".go")
	assert.False(t, ok)

	_, ok = table.Lookup("")
	assert.False(t, ok)
}

func TestWithOverrides(t *testing.T) {
	table, err := Default().WithOverrides(map[string]string{
		"ipynb": "stata-notebook",
		".txt":  "",
		".jl":   "python",
	})
	require.NoError(t, err)

	d, ok := table.Lookup(".ipynb")
	require.True(t, ok)
	assert.Equal(t, "stata-notebook", d.Name)

	_, ok = table.Lookup(".txt")
	assert.False(t, ok)

	d, ok = table.Lookup(".jl")
	require.True(t, ok)
	assert.Equal(t, "python", d.Name)

	// The receiver is left untouched.
	d, _ = Default().Lookup(".ipynb")
	assert.Equal(t, "notebook", d.Name)
}

func TestWithOverrides_UnknownDialect(t *testing.T) {
	_, err := Default().WithOverrides(map[string]string{".f90": "fortran"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownDialect))
}

func TestEntries(t *testing.T) {
	entries := Default().Entries()

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"latex", "manual", "notebook", "python", "r", "sas", "stata", "stata-notebook"}, names)

	for _, e := range entries {
		if e.Name == "stata" {
			assert.Equal(t, []string{".ado", ".do"}, e.Extensions)
		}
		if e.Name == "stata-notebook" {
			assert.Empty(t, e.Extensions)
		}
	}
}
