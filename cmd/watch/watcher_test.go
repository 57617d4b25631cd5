package watch

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/datadag/depgraph/registry"
)

func TestAddWatchDirsSkipsIgnoredFolders(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"code/sub", ".git/objects", "code/__pycache__"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	}

	var added []string
	adder := func(path string) error {
		added = append(added, path)
		return nil
	}

	require.NoError(t, addWatchDirsWithAdder(root, skipSet(nil), adder))

	assert.ElementsMatch(t, []string{
		root,
		filepath.Join(root, "code"),
		filepath.Join(root, "code", "sub"),
	}, added)
}

func TestAddWatchDirsIgnoresMissingDirectoriesFromAdder(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "missing-dir")
	require.NoError(t, os.MkdirAll(target, 0o755))

	adder := func(path string) error {
		if path == target {
			return fs.ErrNotExist
		}
		return nil
	}

	require.NoError(t, addWatchDirsWithAdder(root, skipSet(nil), adder))
}

func TestAddWatchDirsReportsAdderFailures(t *testing.T) {
	root := t.TempDir()
	boom := errors.New("too many watches")

	err := addWatchDirsWithAdder(root, skipSet(nil), func(string) error { return boom })
	require.ErrorIs(t, err, boom)
}

func TestAddWatchDirsSkipsBrokenSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires elevated privileges on Windows")
	}

	root := t.TempDir()
	linkPath := filepath.Join(root, "code", "latest")
	require.NoError(t, os.MkdirAll(filepath.Dir(linkPath), 0o755))
	require.NoError(t, os.Symlink("missing/target", linkPath))

	var added []string
	adder := func(path string) error {
		added = append(added, path)
		return nil
	}

	require.NoError(t, addWatchDirsWithAdder(root, skipSet(nil), adder))
	assert.NotContains(t, added, linkPath)
}

func TestSkipSetAddsConfiguredFolders(t *testing.T) {
	skipped := skipSet([]string{"scratch"})

	assert.True(t, skipped["scratch"])
	assert.True(t, skipped[".git"])
	assert.False(t, skipped["__pycache__"])
}

func TestIsRelevantChange(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "p", "code")
	w := watchSpec{
		root:     root,
		dialects: registry.Default(),
		extra:    []string{"datadag.yaml", ".env"},
	}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{name: "write to stata file", event: fsnotify.Event{Name: filepath.Join(root, "a.do"), Op: fsnotify.Write}, want: true},
		{name: "upper-case extension", event: fsnotify.Event{Name: filepath.Join(root, "sub", "A.SAS"), Op: fsnotify.Create}, want: true},
		{name: "removed notebook", event: fsnotify.Event{Name: filepath.Join(root, "n.ipynb"), Op: fsnotify.Remove}, want: true},
		{name: "chmod only", event: fsnotify.Event{Name: filepath.Join(root, "a.do"), Op: fsnotify.Chmod}, want: false},
		{name: "unknown extension", event: fsnotify.Event{Name: filepath.Join(root, "a.csv"), Op: fsnotify.Write}, want: false},
		{name: "source outside code root", event: fsnotify.Event{Name: filepath.Join(root, "..", "other.do"), Op: fsnotify.Write}, want: false},
		{name: "settings file", event: fsnotify.Event{Name: filepath.Join(root, "..", "datadag.yaml"), Op: fsnotify.Write}, want: true},
		{name: "dotenv file", event: fsnotify.Event{Name: filepath.Join(root, "..", ".env"), Op: fsnotify.Rename}, want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isRelevantChange(tc.event, w))
		})
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestPrinterSkipsUnchangedOutput(t *testing.T) {
	var out syncBuffer
	outputs := []string{"first\n", "first\n", "second\n"}
	calls := 0
	p := newPrinter(&out, false, func(context.Context) (string, error) {
		output := outputs[calls]
		calls++
		return output, nil
	})

	for range outputs {
		require.NoError(t, p.rebuild(context.Background()))
	}

	got := out.String()
	assert.Contains(t, got, "first\n")
	assert.Contains(t, got, "=== rescan 1 at ")
	assert.Contains(t, got, "second\n")
	assert.NotContains(t, got, "=== rescan 2")
}

func TestPrinterKeepsLastOutputOnError(t *testing.T) {
	var out syncBuffer
	fail := false
	p := newPrinter(&out, false, func(context.Context) (string, error) {
		if fail {
			return "", errors.New("scan failed")
		}
		return "ok\n", nil
	})

	require.NoError(t, p.rebuild(context.Background()))
	fail = true
	require.Error(t, p.rebuild(context.Background()))

	assert.Equal(t, "ok\n", out.String())
}

func TestPrinterClearsTerminal(t *testing.T) {
	var out syncBuffer
	outputs := []string{"first\n", "second\n"}
	calls := 0
	p := newPrinter(&out, true, func(context.Context) (string, error) {
		output := outputs[calls]
		calls++
		return output, nil
	})

	require.NoError(t, p.rebuild(context.Background()))
	assert.Equal(t, clearScreen+"first\n", out.String())

	require.NoError(t, p.rebuild(context.Background()))
	assert.Contains(t, out.String(), "first\n"+clearScreen+"rescan 1 at ")
	assert.True(t, strings.HasSuffix(out.String(), "second\n"))
}

func TestIsTerminal_NonFileWriter(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))
}

func TestWatchAndRebuildRescansOnChange(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.do"), []byte("/* OUTPUT: d1 */\n"), 0o644))

	var out syncBuffer
	var mu sync.Mutex
	builds := 0
	p := newPrinter(&out, false, func(context.Context) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		builds++
		return "build " + string(rune('0'+builds)) + "\n", nil
	})
	require.NoError(t, p.rebuild(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watchAndRebuild(ctx, watchSpec{
			root:     root,
			dialects: registry.Default(),
			skipped:  skipSet(nil),
		}, p)
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.do"), []byte("/* INPUT_DATASET: d1 */\n"), 0o644))

	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("build 2\n"))
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
