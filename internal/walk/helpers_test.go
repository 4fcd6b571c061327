package walk

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/karrick/godirwalk"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// makeTree creates the given entries under root. Entries ending in "/" are
// directories, everything else is an empty file.
func makeTree(t *testing.T, root string, entries ...string) {
	t.Helper()
	for _, e := range entries {
		p := filepath.Join(root, filepath.FromSlash(e))
		if strings.HasSuffix(e, "/") {
			require.NoError(t, os.MkdirAll(p, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("test"), 0644))
	}
}

// rel turns walk results back into slash-separated paths relative to root.
func rel(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

// sortedReadDir lists a directory in name order so tests can assert exact
// pre-order results.
func sortedReadDir(dir string) (godirwalk.Dirents, error) {
	entries, err := readDir(dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// denyReadDir behaves like sortedReadDir but fails with a permission error
// for the listed directories.
func denyReadDir(denied ...string) func(string) (godirwalk.Dirents, error) {
	return func(dir string) (godirwalk.Dirents, error) {
		for _, d := range denied {
			if dir == d {
				return nil, &fs.PathError{Op: "open", Path: dir, Err: fs.ErrPermission}
			}
		}
		return sortedReadDir(dir)
	}
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

// runWalker runs a walker with a sorted (optionally failing) directory reader.
func runWalker(t *testing.T, root string, globs []string, opts Options, denied ...string) ([]string, error) {
	t.Helper()
	set, err := newGlobSet(globs)
	require.NoError(t, err)
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	w := newWalker(nil, set, opts)
	w.readDir = denyReadDir(denied...)
	return w.run(root)
}

func skipIfPrivileged(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
}

// lockDir removes every permission bit from dir until the test ends.
func lockDir(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.Chmod(dir, 0))
	t.Cleanup(func() { _ = os.Chmod(dir, 0755) })
}
