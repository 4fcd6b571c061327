// Package walk lists directories and walks directory trees, collecting the
// entries that match a glob pattern at every level.
//
// A walk is synchronous: it lists one directory at a time, depth first,
// appending a directory's own matches before descending into its children.
// Permission failures met along the way are handled by an access-denied
// policy made of two independent settings, the severity the failure is
// logged at and the action taken afterwards.
package walk

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/karrick/godirwalk"
	"go.uber.org/zap"
)

// Unbounded is the MaxDepth value that places no limit on the walk.
const Unbounded uint = 0

// Options configures a recursive find. The zero value walks the whole tree
// without following symlinks, skipping unreadable subtrees after logging them
// at debug level.
type Options struct {
	MaxDepth        uint                 // Deepest directory level listed (root is 0); 0 means unbounded
	FollowSymlinks  bool                 // Descend into symlinks that point to directories
	AccessDenied    AccessDeniedAction   // What to do after a permission failure
	AccessDeniedLog AccessDeniedLogLevel // Severity used to log a permission failure
	Logger          *zap.Logger          // Defaults to an info-level production logger
}

// DefaultOptions returns the options used by FindRecursive.
func DefaultOptions() Options {
	return Options{
		MaxDepth:        Unbounded,
		AccessDenied:    ActionSkip,
		AccessDeniedLog: LogDebug,
	}
}

// errTerminate unwinds the recursion when the policy says ActionTerminate.
var errTerminate = errors.New("globwalk: walk terminated")

// walker holds the state of one recursive find. It is never shared between calls.
type walker struct {
	ctx     context.Context
	opts    Options
	globs   globSet
	logger  *zap.Logger
	readDir func(string) (godirwalk.Dirents, error)
	stat    func(string) (os.FileInfo, error)
	lstat   func(string) (os.FileInfo, error)
	onDir   func(string) // called for every directory successfully listed

	results   []string
	ancestors []os.FileInfo // only tracked when following symlinks

	dirs       int
	denied     int
	terminated bool
}

func newWalker(ctx context.Context, globs globSet, opts Options) *walker {
	if ctx == nil {
		ctx = context.Background()
	}
	return &walker{
		ctx:     ctx,
		opts:    opts,
		globs:   globs,
		logger:  opts.Logger,
		readDir: readDir,
		stat:    os.Stat,
		lstat:   os.Lstat,
		results: make([]string, 0),
	}
}

// FindRecursive walks the tree under root without a depth limit or symlink
// following, collecting every entry whose name matches glob.
func FindRecursive(root, glob string) ([]string, error) {
	return FindRecursiveWithOptions(context.Background(), root, []string{glob}, DefaultOptions())
}

// FindRecursiveFollow is FindRecursive with a choice of symlink following.
func FindRecursiveFollow(root, glob string, followSymlinks bool) ([]string, error) {
	return FindRecursiveDepth(root, glob, Unbounded, followSymlinks)
}

// FindRecursiveDepth is FindRecursive bounded to maxDepth directory levels.
func FindRecursiveDepth(root, glob string, maxDepth uint, followSymlinks bool) ([]string, error) {
	return FindRecursiveWithPolicy(root, glob, ActionSkip, LogDebug, maxDepth, followSymlinks)
}

// FindRecursiveWithPolicy is the fully parameterised single-pattern find.
func FindRecursiveWithPolicy(root, glob string, action AccessDeniedAction, logLevel AccessDeniedLogLevel, maxDepth uint, followSymlinks bool) ([]string, error) {
	return FindRecursiveAnyWithPolicy(root, []string{glob}, action, logLevel, maxDepth, followSymlinks)
}

// FindRecursiveAny collects entries matching any of globs in a single pass.
func FindRecursiveAny(root string, globs []string) ([]string, error) {
	return FindRecursiveWithOptions(context.Background(), root, globs, DefaultOptions())
}

// FindRecursiveAnyWithPolicy is the fully parameterised multi-pattern find.
func FindRecursiveAnyWithPolicy(root string, globs []string, action AccessDeniedAction, logLevel AccessDeniedLogLevel, maxDepth uint, followSymlinks bool) ([]string, error) {
	return FindRecursiveWithOptions(context.Background(), root, globs, Options{
		MaxDepth:        maxDepth,
		FollowSymlinks:  followSymlinks,
		AccessDenied:    action,
		AccessDeniedLog: logLevel,
	})
}

// FindRecursiveWithOptions walks the tree under root depth first and returns,
// in visiting order, every entry whose name matches one of globs.
//
// A permission failure is handled by opts.AccessDenied: ActionSkip drops the
// subtree, ActionTerminate returns the matches gathered so far with a nil
// error, and ActionFail returns an error wrapping ErrAccessDenied. Any other
// failure is logged at warn level and returned. The walk checks ctx before
// listing each directory and returns ctx.Err() once it is done.
//
// A root that is a symlink is only entered when opts.FollowSymlinks is set;
// otherwise it is treated like any other non-directory root and the result
// is empty.
func FindRecursiveWithOptions(ctx context.Context, root string, globs []string, opts Options) ([]string, error) {
	set, err := newGlobSet(globs)
	if err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = NewLogger(LogLevelInfo)
		defer opts.Logger.Sync()
	}
	return newWalker(ctx, set, opts).run(root)
}

func (w *walker) run(root string) ([]string, error) {
	start := time.Now()
	w.logger.Debug("starting walk",
		zap.String("root", root),
		zap.Strings("globs", w.globs),
		zap.Uint("max_depth", w.opts.MaxDepth),
		zap.Bool("follow_symlinks", w.opts.FollowSymlinks),
		zap.Stringer("on_access_denied", w.opts.AccessDenied),
	)

	err := w.walkRoot(root)
	if errors.Is(err, errTerminate) {
		w.terminated = true
		err = nil
	}

	w.logger.Debug("walk finished",
		zap.String("root", root),
		zap.Int("dirs", w.dirs),
		zap.Int("matches", len(w.results)),
		zap.Int("access_denied", w.denied),
		zap.Bool("terminated", w.terminated),
		zap.Duration("elapsed", time.Since(start)),
	)
	if err != nil {
		return nil, err
	}
	return w.results, nil
}

func (w *walker) walkRoot(root string) error {
	stat := w.lstat
	if w.opts.FollowSymlinks {
		stat = w.stat
	}
	info, err := stat(root)
	if err != nil {
		return w.visitFailed(root, err)
	}
	// A root that is not a directory has no entries to match. Without
	// symlink following that includes a link to a directory.
	if !info.IsDir() {
		return nil
	}
	return w.visit(root, info, 0)
}

// visit lists dir, records its matches and then descends into its child
// directories while depth allows.
func (w *walker) visit(dir string, info os.FileInfo, depth uint) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}

	entries, err := w.readDir(dir)
	if err != nil {
		return w.visitFailed(dir, err)
	}
	w.dirs++
	if w.onDir != nil {
		w.onDir(dir)
	}
	w.results = append(w.results, matching(dir, entries, w.globs)...)

	if w.opts.MaxDepth != Unbounded && depth >= w.opts.MaxDepth {
		return nil
	}

	if w.opts.FollowSymlinks {
		w.ancestors = append(w.ancestors, info)
		defer func() { w.ancestors = w.ancestors[:len(w.ancestors)-1] }()
	}

	for _, de := range entries {
		child := filepath.Join(dir, de.Name())
		descend, childInfo, err := w.shouldDescend(child, de)
		if err != nil {
			if err := w.visitFailed(child, err); err != nil {
				return err
			}
			continue
		}
		if !descend {
			continue
		}
		if err := w.visit(child, childInfo, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// shouldDescend reports whether the entry at path is a directory the walk
// must enter. Symlinks qualify only when following them and only when they
// resolve to a directory; links that cannot be resolved are plain entries.
func (w *walker) shouldDescend(path string, de *godirwalk.Dirent) (bool, os.FileInfo, error) {
	switch {
	case de.IsSymlink():
		if !w.opts.FollowSymlinks {
			return false, nil, nil
		}
		info, err := w.stat(path)
		if err != nil {
			if isAccessDenied(err) {
				return false, nil, err
			}
			// Dangling, self-referencing or otherwise unresolvable links
			// stay plain entries.
			w.logger.Debug("not following symlink",
				zap.String("path", path),
				zap.Error(err),
			)
			return false, nil, nil
		}
		if !info.IsDir() {
			return false, nil, nil
		}
		if w.onAncestorPath(info) {
			return false, nil, fmt.Errorf("%w: %s", ErrSymlinkLoop, path)
		}
		return true, info, nil
	case de.IsDir():
		if !w.opts.FollowSymlinks {
			return true, nil, nil
		}
		info, err := w.stat(path)
		if err != nil {
			return false, nil, err
		}
		return true, info, nil
	}
	return false, nil, nil
}

func (w *walker) onAncestorPath(info os.FileInfo) bool {
	for _, a := range w.ancestors {
		if a != nil && os.SameFile(a, info) {
			return true
		}
	}
	return false
}

// visitFailed applies the error policy to a failed visit of path. It returns
// nil when the walk should carry on with the next sibling.
func (w *walker) visitFailed(path string, err error) error {
	if !isAccessDenied(err) {
		w.logger.Warn(err.Error(),
			zap.String("path", path),
			zap.Error(err),
			zap.Stack("stack"),
		)
		return classify(path, err)
	}

	w.denied++
	switch w.opts.onAccessDenied(w.logger, path, err) {
	case verdictTerminate:
		return errTerminate
	case verdictFail:
		return classify(path, err)
	default:
		return nil
	}
}
