// Package pathutil holds small helpers for naming and placing files.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Basename strips the last dot-delimited suffix from name.
// "archive.tar.gz" becomes "archive.tar"; a name without a dot is unchanged.
func Basename(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return name
	}
	return name[:i]
}

// BasenameOf is Basename applied to the final element of path.
func BasenameOf(path string) string {
	return Basename(filepath.Base(path))
}

// Relative returns an absolute path relative to the filesystem root and
// leaves other paths as they are. The root itself becomes ".", the way
// filepath.Rel names an empty relative path.
func Relative(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	vol := filepath.VolumeName(path)
	rel, err := filepath.Rel(vol+string(filepath.Separator), path)
	if err != nil {
		return strings.TrimLeft(path[len(vol):], string(filepath.Separator))
	}
	return rel
}

// CreateParentDirectories creates every missing directory above path.
func CreateParentDirectories(path string) error {
	return CreateParentDirectoriesFs(afero.NewOsFs(), path)
}

// CreateParentDirectoriesFs is CreateParentDirectories on fsys. Paths without
// a parent element are a no-op.
func CreateParentDirectoriesFs(fsys afero.Fs, path string) error {
	parent := filepath.Dir(path)
	if parent == "." || parent == path {
		return nil
	}
	return fsys.MkdirAll(parent, os.ModePerm)
}
