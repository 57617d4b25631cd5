package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/LegacyCodeHQ/datadag/depgraph/dialect"
)

// ErrUnknownDialect is returned when an override names a dialect that does not exist.
var ErrUnknownDialect = errors.New("unknown dialect")

var defaultExtensions = map[string]dialect.Dialect{
	".sas":   dialect.SAS,
	".do":    dialect.Stata,
	".ado":   dialect.Stata,
	".py":    dialect.Python,
	".r":     dialect.R,
	".tex":   dialect.Latex,
	".ipynb": dialect.Notebook,
	".txt":   dialect.ManualSteps,
}

// Table maps file extensions (including the leading dot) to dialects.
type Table map[string]dialect.Dialect

// Default returns a fresh copy of the built-in extension table.
func Default() Table {
	table := make(Table, len(defaultExtensions))
	for ext, d := range defaultExtensions {
		table[ext] = d
	}
	return table
}

// Lookup returns the dialect for ext, trying the exact extension first and
// then its lower-case form.
func (t Table) Lookup(ext string) (dialect.Dialect, bool) {
	if ext == "" {
		return dialect.Dialect{}, false
	}
	if d, ok := t[ext]; ok {
		return d, true
	}
	d, ok := t[strings.ToLower(ext)]
	return d, ok
}

// WithOverrides returns a copy of t where each extension in overrides is
// mapped to the named dialect. An empty name removes the extension.
func (t Table) WithOverrides(overrides map[string]string) (Table, error) {
	table := make(Table, len(t)+len(overrides))
	for ext, d := range t {
		table[ext] = d
	}

	for ext, name := range overrides {
		ext = normalizeExtension(ext)
		if name == "" {
			delete(table, ext)
			continue
		}
		d, ok := dialect.ByName(name)
		if !ok {
			return nil, fmt.Errorf("extension %s: %w: %s", ext, ErrUnknownDialect, name)
		}
		table[ext] = d
	}
	return table, nil
}

func normalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Entry describes a dialect together with the extensions mapped to it.
type Entry struct {
	Name       string
	Label      string
	Style      string
	Extensions []string
}

// Entries lists every built-in dialect with the extensions t maps to it,
// in deterministic order.
func (t Table) Entries() []Entry {
	extsByName := make(map[string][]string)
	for ext, d := range t {
		extsByName[d.Name] = append(extsByName[d.Name], ext)
	}

	builtins := dialect.Builtins()
	entries := make([]Entry, 0, len(builtins))
	for _, d := range builtins {
		exts := extsByName[d.Name]
		sort.Strings(exts)
		entries = append(entries, Entry{
			Name:       d.Name,
			Label:      d.Label,
			Style:      d.Style.String(),
			Extensions: exts,
		})
	}
	return entries
}

// IsSupportedExtension reports whether the default table maps ext.
func IsSupportedExtension(ext string) bool {
	_, ok := Default().Lookup(ext)
	return ok
}
