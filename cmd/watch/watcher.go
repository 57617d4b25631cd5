package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/LegacyCodeHQ/datadag/depgraph/registry"
	"github.com/LegacyCodeHQ/datadag/depgraph/scanner"
)

const debounceInterval = 300 * time.Millisecond

var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	".idea":        true,
	".vscode":      true,
}

// watchSpec says which tree to watch and which changes trigger a re-scan.
type watchSpec struct {
	root     string
	dialects registry.Table
	skipped  map[string]bool
	// extra names files that trigger a re-scan regardless of extension.
	extra []string
	// settingsDirs are watched without recursion for changes to extra files.
	settingsDirs []string
}

func skipSet(ignoreFolders []string) map[string]bool {
	if ignoreFolders == nil {
		ignoreFolders = scanner.DefaultIgnoreFolders
	}
	skipped := make(map[string]bool, len(skippedDirs)+len(ignoreFolders))
	for dir := range skippedDirs {
		skipped[dir] = true
	}
	for _, dir := range ignoreFolders {
		skipped[dir] = true
	}
	return skipped
}

const clearScreen = "\033[H\033[2J"

// printer writes the output of build, skipping rebuilds that produce the
// same text as the last one printed. On a terminal each report replaces the
// previous one.
type printer struct {
	mu      sync.Mutex
	out     io.Writer
	replace bool
	build   func(ctx context.Context) (string, error)
	last    string
	count   int
}

func newPrinter(out io.Writer, replace bool, build func(ctx context.Context) (string, error)) *printer {
	return &printer{out: out, replace: replace, build: build}
}

func (p *printer) rebuild(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	output, err := p.build(ctx)
	if err != nil {
		return err
	}
	if p.count > 0 && output == p.last {
		slog.Debug("Scan unchanged")
		return nil
	}

	switch {
	case p.replace:
		fmt.Fprint(p.out, clearScreen)
		if p.count > 0 {
			fmt.Fprintf(p.out, "rescan %d at %s\n\n", p.count, time.Now().Format(time.TimeOnly))
		}
	case p.count > 0:
		fmt.Fprintf(p.out, "\n=== rescan %d at %s ===\n\n", p.count, time.Now().Format(time.TimeOnly))
	}
	p.last = output
	p.count++
	_, err = io.WriteString(p.out, output)
	return err
}

func watchAndRebuild(ctx context.Context, w watchSpec, p *printer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchDirs(watcher, w.root, w.skipped); err != nil {
		return fmt.Errorf("failed to watch directories: %w", err)
	}
	for _, dir := range w.settingsDirs {
		if err := watcher.Add(dir); err != nil {
			slog.Debug("Settings directory not watched", "dir", dir, "error", err)
		}
	}

	var debounceTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Create) {
				addIfDirectory(watcher, event.Name, w.skipped)
			}

			if !isRelevantChange(event, w) {
				continue
			}
			slog.Debug("Change detected", "path", event.Name, "op", event.Op.String())

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceInterval, func() {
				if err := p.rebuild(ctx); err != nil {
					slog.Warn("Rescan failed", "error", err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "error", err)
		}
	}
}

func isRelevantChange(event fsnotify.Event, w watchSpec) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	base := filepath.Base(event.Name)
	for _, name := range w.extra {
		if base == name {
			return true
		}
	}

	rel, err := filepath.Rel(w.root, filepath.Dir(event.Name))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}

	_, ok := w.dialects.Lookup(filepath.Ext(event.Name))
	return ok
}

func addWatchDirs(watcher *fsnotify.Watcher, root string, skipped map[string]bool) error {
	return addWatchDirsWithAdder(root, skipped, watcher.Add)
}

func addWatchDirsWithAdder(root string, skipped map[string]bool, add func(string) error) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipped[d.Name()] {
			return filepath.SkipDir
		}
		if err := add(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		return nil
	})
}

func addIfDirectory(watcher *fsnotify.Watcher, path string, skipped map[string]bool) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.IsDir() {
		_ = addWatchDirs(watcher, path, skipped)
	}
}
