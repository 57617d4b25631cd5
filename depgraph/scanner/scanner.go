// Package scanner walks a project tree and extracts one dependency record per
// file whose extension maps to a dialect.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/LegacyCodeHQ/datadag/depgraph"
	"github.com/LegacyCodeHQ/datadag/depgraph/dialect"
	"github.com/LegacyCodeHQ/datadag/depgraph/pathresolver"
)

// Result is the outcome of one scan.
type Result struct {
	// ProjectRoot is the absolute, slash-separated project root.
	ProjectRoot string
	// Records are sorted by file path.
	Records     []depgraph.DependencyRecord
	Diagnostics []Diagnostic
}

type candidate struct {
	osPath    string
	canonical string
	dialect   dialect.Dialect
}

// Scan walks ProjectRoot/CodePrefix and returns a record for every eligible
// file. Unreadable files become diagnostics and the scan carries on; only a
// missing scan root or a cancelled context fails the call.
func Scan(ctx context.Context, opts Options) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	opts = opts.withDefaults()

	absRoot, err := filepath.Abs(opts.ProjectRoot)
	if err != nil {
		return Result{}, fmt.Errorf("failed to resolve project root: %w", err)
	}
	resolver := pathresolver.Resolver{
		ProjectRoot: pathresolver.Clean(filepath.ToSlash(absRoot)),
		CodePrefix:  pathresolver.Clean(opts.CodePrefix),
		DataPrefix:  pathresolver.Clean(opts.DataPrefix),
	}

	codeRoot := filepath.Join(absRoot, filepath.FromSlash(resolver.CodePrefix))
	info, err := os.Stat(codeRoot)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read scan root: %w", err)
	}
	if !info.IsDir() {
		return Result{}, fmt.Errorf("scan root is not a directory: %s", codeRoot)
	}

	candidates, diagnostics, err := collectCandidates(codeRoot, resolver, opts)
	if err != nil {
		return Result{}, err
	}
	opts.Logger.Debug("Collected scan candidates", "root", codeRoot, "files", len(candidates))

	records := make([]*depgraph.DependencyRecord, len(candidates))
	failures := make([]*Diagnostic, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, c := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			record, diag := scanFile(c, resolver, opts.ContentReader, opts.Cache)
			if diag != nil {
				failures[i] = diag
				return nil
			}
			records[i] = &record
			opts.Logger.Debug("Scanned file", "path", c.canonical, "dialect", c.dialect.Name, "directives", len(record.Directives))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	result := Result{ProjectRoot: resolver.ProjectRoot}
	for i := range candidates {
		if failures[i] != nil {
			diagnostics = append(diagnostics, *failures[i])
			continue
		}
		result.Records = append(result.Records, *records[i])
	}

	result.Records = mergeManual(result.Records, opts.Manual, resolver)
	depgraph.SortRecords(result.Records)

	sort.SliceStable(diagnostics, func(i, j int) bool {
		return diagnostics[i].Path < diagnostics[j].Path
	})
	result.Diagnostics = diagnostics

	return result, nil
}

func collectCandidates(codeRoot string, resolver pathresolver.Resolver, opts Options) ([]candidate, []Diagnostic, error) {
	ignore := make(map[string]bool, len(opts.IgnoreFolders))
	for _, name := range opts.IgnoreFolders {
		ignore[name] = true
	}

	var candidates []candidate
	var diagnostics []Diagnostic

	err := filepath.WalkDir(codeRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == codeRoot {
				return err
			}
			diagnostics = append(diagnostics, Diagnostic{Path: canonicalPath(codeRoot, p, resolver), Kind: DiagnosticWalk, Err: err})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if p != codeRoot && ignore[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		fileDialect, ok := opts.Dialects.Lookup(filepath.Ext(p))
		if !ok {
			return nil
		}
		candidates = append(candidates, candidate{
			osPath:    p,
			canonical: canonicalPath(codeRoot, p, resolver),
			dialect:   fileDialect,
		})
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to walk %s: %w", codeRoot, err)
	}

	return candidates, diagnostics, nil
}

// canonicalPath gives a walked file the same identity an INPUT_FILE value
// relative to the code root resolves to.
func canonicalPath(codeRoot, p string, resolver pathresolver.Resolver) string {
	rel, err := filepath.Rel(codeRoot, p)
	if err != nil {
		return pathresolver.Clean(filepath.ToSlash(p))
	}
	return resolver.CodePath(filepath.ToSlash(rel))
}

func scanFile(c candidate, resolver pathresolver.Resolver, read ContentReader, cache *ExtractCache) (depgraph.DependencyRecord, *Diagnostic) {
	content, err := read(c.osPath)
	if err != nil {
		return depgraph.DependencyRecord{}, &Diagnostic{Path: c.canonical, Kind: DiagnosticRead, Err: err}
	}
	if !utf8.Valid(content) {
		return depgraph.DependencyRecord{}, &Diagnostic{Path: c.canonical, Kind: DiagnosticEncoding, Err: ErrEncoding}
	}

	directives := cache.extract(content, c.dialect)
	return depgraph.NewDependencyRecord(c.canonical, c.dialect.Name, directives, resolveFrom(resolver, path.Dir(c.canonical))), nil
}

func resolveFrom(resolver pathresolver.Resolver, fileDir string) depgraph.Resolver {
	return func(d dialect.Directive) string {
		return resolver.Resolve(d.RawValue, fileDir, d.Kind)
	}
}

// mergeManual adds the programmatic entries. An entry for a file that was
// also scanned extends that file's record.
func mergeManual(records []depgraph.DependencyRecord, manual map[string][]dialect.Directive, resolver pathresolver.Resolver) []depgraph.DependencyRecord {
	if len(manual) == 0 {
		return records
	}

	keys := make([]string, 0, len(manual))
	for key := range manual {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	byPath := make(map[string]int, len(records))
	for i, r := range records {
		byPath[r.FilePath] = i
	}

	codeRoot := resolver.CodePath("")
	for _, key := range keys {
		filePath := resolver.Resolve(key, codeRoot, dialect.InputFile)
		resolve := resolveFrom(resolver, path.Dir(filePath))

		if i, ok := byPath[filePath]; ok {
			combined := append(append([]dialect.Directive(nil), records[i].Directives...), manual[key]...)
			records[i] = depgraph.NewDependencyRecord(filePath, records[i].Dialect, combined, resolve)
			continue
		}

		records = append(records, depgraph.NewDependencyRecord(filePath, dialect.ManualSteps.Name, manual[key], resolve))
		byPath[filePath] = len(records) - 1
	}
	return records
}
