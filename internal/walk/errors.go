package walk

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrNotFound is returned when a listed directory or walk root does not exist.
	ErrNotFound = errors.New("globwalk: no such file or directory")

	// ErrNotADirectory is returned by List and Find when the target is not a directory.
	ErrNotADirectory = errors.New("globwalk: not a directory")

	// ErrAccessDenied marks permission failures. Errors wrapping it also wrap
	// the underlying *fs.PathError, so errors.Is(err, fs.ErrPermission) holds.
	ErrAccessDenied = errors.New("globwalk: access denied")

	// ErrBadPattern is returned before any filesystem access when a glob is malformed.
	ErrBadPattern = errors.New("globwalk: syntax error in pattern")

	// ErrSymlinkLoop is reported when following a symlink leads back to one of
	// the directories currently being walked.
	ErrSymlinkLoop = errors.New("globwalk: symlink loop")
)

// classify wraps err with the sentinel matching its class. Errors that belong
// to no class are returned unchanged.
func classify(path string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrAccessDenied, path, err)
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	default:
		return err
	}
}

func isAccessDenied(err error) bool {
	return errors.Is(err, fs.ErrPermission) || errors.Is(err, ErrAccessDenied)
}
