package walk

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/karrick/godirwalk"
	"golang.org/x/text/unicode/norm"
)

// globSet matches an entry name when any of its patterns does. A nil set
// matches everything.
type globSet []string

func newGlobSet(patterns []string) (globSet, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w: no patterns given", ErrBadPattern)
	}
	set := make(globSet, 0, len(patterns))
	for _, p := range patterns {
		// Some filesystems hand back decomposed names.
		p = norm.NFC.String(p)
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: %q", ErrBadPattern, p)
		}
		set = append(set, p)
	}
	return set, nil
}

func (s globSet) match(name string) bool {
	if s == nil {
		return true
	}
	name = norm.NFC.String(name)
	for _, p := range s {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// readDir returns the entries of dir in the order the filesystem reports them.
// The directory handle does not outlive the call.
func readDir(dir string) (godirwalk.Dirents, error) {
	return godirwalk.ReadDirents(dir, nil)
}

// matching joins dir with the name of every entry accepted by set, keeping
// listing order.
func matching(dir string, entries godirwalk.Dirents, set globSet) []string {
	paths := make([]string, 0, len(entries))
	for _, de := range entries {
		if set.match(de.Name()) {
			paths = append(paths, filepath.Join(dir, de.Name()))
		}
	}
	return paths
}

// List returns every direct entry of directory, files and subdirectories
// alike, unsorted.
func List(directory string) ([]string, error) {
	return find(directory, nil)
}

// Find returns the direct entries of directory whose name matches glob.
func Find(directory, glob string) ([]string, error) {
	return FindAny(directory, []string{glob})
}

// FindAny returns the direct entries of directory whose name matches at
// least one of globs.
func FindAny(directory string, globs []string) ([]string, error) {
	set, err := newGlobSet(globs)
	if err != nil {
		return nil, err
	}
	return find(directory, set)
}

func find(directory string, set globSet) ([]string, error) {
	info, err := os.Stat(directory)
	if err != nil {
		return nil, classify(directory, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, directory)
	}

	entries, err := readDir(directory)
	if err != nil {
		return nil, classify(directory, err)
	}
	return matching(directory, entries, set), nil
}
