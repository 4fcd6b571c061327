package walk

import (
	"context"

	"github.com/TFMV/globwalk/internal/pathutil"
	internal "github.com/TFMV/globwalk/internal/walk"
	"go.uber.org/zap"
)

// Re-export the types from the internal package
type (
	// Options configures a recursive find.
	Options = internal.Options

	// AccessDeniedAction decides what a walk does after a permission failure.
	AccessDeniedAction = internal.AccessDeniedAction

	// AccessDeniedLogLevel is the severity used to report a permission failure.
	AccessDeniedLogLevel = internal.AccessDeniedLogLevel

	// LogLevel defines the verbosity of a logger built by NewLogger.
	LogLevel = internal.LogLevel

	// Re-export watch types
	WatchEvent   = internal.WatchEvent
	WatchOptions = internal.WatchOptions
	WatchResult  = internal.WatchResult
	WatchHandler = internal.WatchHandler
)

// Re-export the constants
const (
	Unbounded = internal.Unbounded

	// Access-denied actions
	ActionSkip      = internal.ActionSkip
	ActionTerminate = internal.ActionTerminate
	ActionFail      = internal.ActionFail

	// Access-denied log severities
	LogDebug = internal.LogDebug
	LogWarn  = internal.LogWarn
	LogInfo  = internal.LogInfo

	// Logger verbosity
	LogLevelError = internal.LogLevelError
	LogLevelWarn  = internal.LogLevelWarn
	LogLevelInfo  = internal.LogLevelInfo
	LogLevelDebug = internal.LogLevelDebug

	// Watch events
	EventInitial = internal.EventInitial
	EventCreate  = internal.EventCreate
	EventDelete  = internal.EventDelete
	EventRename  = internal.EventRename

	DefaultDebounce = internal.DefaultDebounce
)

// Re-export the error sentinels
var (
	ErrNotFound      = internal.ErrNotFound
	ErrNotADirectory = internal.ErrNotADirectory
	ErrAccessDenied  = internal.ErrAccessDenied
	ErrBadPattern    = internal.ErrBadPattern
	ErrSymlinkLoop   = internal.ErrSymlinkLoop
)

// List returns every direct entry of directory, unsorted.
func List(directory string) ([]string, error) {
	return internal.List(directory)
}

// Find returns the direct entries of directory whose name matches glob.
func Find(directory, glob string) ([]string, error) {
	return internal.Find(directory, glob)
}

// FindAny returns the direct entries of directory matching any of globs.
func FindAny(directory string, globs []string) ([]string, error) {
	return internal.FindAny(directory, globs)
}

// FindRecursive collects the entries matching glob in every directory under root.
func FindRecursive(root, glob string) ([]string, error) {
	return internal.FindRecursive(root, glob)
}

// FindRecursiveFollow is FindRecursive with a choice of symlink following.
func FindRecursiveFollow(root, glob string, followSymlinks bool) ([]string, error) {
	return internal.FindRecursiveFollow(root, glob, followSymlinks)
}

// FindRecursiveDepth is FindRecursive bounded to maxDepth directory levels.
func FindRecursiveDepth(root, glob string, maxDepth uint, followSymlinks bool) ([]string, error) {
	return internal.FindRecursiveDepth(root, glob, maxDepth, followSymlinks)
}

// FindRecursiveWithPolicy is the fully parameterised single-pattern find.
func FindRecursiveWithPolicy(root, glob string, action AccessDeniedAction, logLevel AccessDeniedLogLevel, maxDepth uint, followSymlinks bool) ([]string, error) {
	return internal.FindRecursiveWithPolicy(root, glob, action, logLevel, maxDepth, followSymlinks)
}

// FindRecursiveAny collects entries matching any of globs in a single pass.
func FindRecursiveAny(root string, globs []string) ([]string, error) {
	return internal.FindRecursiveAny(root, globs)
}

// FindRecursiveAnyWithPolicy is the fully parameterised multi-pattern find.
func FindRecursiveAnyWithPolicy(root string, globs []string, action AccessDeniedAction, logLevel AccessDeniedLogLevel, maxDepth uint, followSymlinks bool) ([]string, error) {
	return internal.FindRecursiveAnyWithPolicy(root, globs, action, logLevel, maxDepth, followSymlinks)
}

// FindRecursiveWithOptions is the context-aware find every other variant delegates to.
func FindRecursiveWithOptions(ctx context.Context, root string, globs []string, opts Options) ([]string, error) {
	return internal.FindRecursiveWithOptions(ctx, root, globs, opts)
}

// DefaultOptions returns unbounded depth, no symlink following, and skip + debug
// for access-denied handling.
func DefaultOptions() Options {
	return internal.DefaultOptions()
}

// ParseAccessDeniedAction parses "skip", "terminate" or "fail".
func ParseAccessDeniedAction(s string) (AccessDeniedAction, error) {
	return internal.ParseAccessDeniedAction(s)
}

// ParseAccessDeniedLogLevel parses "debug", "warn" or "info".
func ParseAccessDeniedLogLevel(s string) (AccessDeniedLogLevel, error) {
	return internal.ParseAccessDeniedLogLevel(s)
}

// NewLogger creates a zap logger with the specified log level.
func NewLogger(level LogLevel) *zap.Logger {
	return internal.NewLogger(level)
}

// Watch re-runs the find whenever entries appear, vanish or are renamed
// under root and hands every complete result to handler.
func Watch(ctx context.Context, root string, globs []string, opts Options, wopts WatchOptions, handler WatchHandler) error {
	return internal.Watch(ctx, root, globs, opts, wopts, handler)
}

// Basename strips the last dot-delimited suffix from name.
func Basename(name string) string {
	return pathutil.Basename(name)
}

// BasenameOf is Basename applied to the final element of path.
func BasenameOf(path string) string {
	return pathutil.BasenameOf(path)
}

// Relative strips the root from an absolute path.
func Relative(path string) string {
	return pathutil.Relative(path)
}

// CreateParentDirectories creates every missing directory above path.
func CreateParentDirectories(path string) error {
	return pathutil.CreateParentDirectories(path)
}
