package walk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchEvent names what caused a watch result to be delivered.
type WatchEvent string

const (
	EventInitial WatchEvent = "initial"
	EventCreate  WatchEvent = "create"
	EventDelete  WatchEvent = "delete"
	EventRename  WatchEvent = "rename"
)

// DefaultDebounce is how long Watch waits for the tree to settle before
// walking it again.
const DefaultDebounce = 100 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	Debounce time.Duration // Quiet period before re-walking; DefaultDebounce when zero
	Timeout  time.Duration // 0 means watch until ctx is done
}

// WatchResult carries the complete match list after a walk of the tree.
type WatchResult struct {
	Paths   []string   // Every match, as FindRecursiveWithOptions returns it
	Event   WatchEvent // Event that triggered the walk
	Trigger string     // Path named by the triggering event
	Error   error
}

// WatchHandler processes watch results. Returning an error stops Watch.
type WatchHandler func(ctx context.Context, result WatchResult) error

func defaultWatchHandler() WatchHandler {
	return func(ctx context.Context, result WatchResult) error {
		if result.Error != nil {
			return result.Error
		}
		fmt.Printf("%s: %d matches\n", strings.ToUpper(string(result.Event)), len(result.Paths))
		for _, p := range result.Paths {
			fmt.Println(p)
		}
		return nil
	}
}

// Watch walks root once, then walks it again every time an entry is created,
// removed or renamed in any directory the previous walk listed. Each walk
// delivers its full result to handler. Watch returns nil when ctx is done and
// the handler's error when it returns one.
func Watch(ctx context.Context, root string, globs []string, opts Options, wopts WatchOptions, handler WatchHandler) error {
	if handler == nil {
		handler = defaultWatchHandler()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if wopts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, wopts.Timeout)
		defer cancel()
	}
	if wopts.Debounce <= 0 {
		wopts.Debounce = DefaultDebounce
	}

	set, err := newGlobSet(globs)
	if err != nil {
		return err
	}
	if opts.Logger == nil {
		opts.Logger = NewLogger(LogLevelInfo)
		defer opts.Logger.Sync()
	}
	logger := opts.Logger

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	defer watcher.Close()

	rewalk := func(event WatchEvent, trigger string) error {
		w := newWalker(ctx, set, opts)
		w.onDir = func(dir string) {
			if err := watcher.Add(dir); err != nil {
				logger.Warn("error watching directory", zap.String("path", dir), zap.Error(err))
			}
		}
		paths, err := w.run(root)
		if ctx.Err() != nil {
			return nil
		}
		return handler(ctx, WatchResult{Paths: paths, Event: event, Trigger: trigger, Error: err})
	}

	if err := rewalk(EventInitial, root); err != nil {
		return err
	}

	debounce := time.NewTimer(time.Hour)
	debounce.Stop()
	defer debounce.Stop()

	var (
		lastEvent   WatchEvent
		lastTrigger string
	)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			kind, relevant := watchEventOf(event)
			if !relevant {
				continue
			}
			logger.Debug("filesystem event", zap.String("path", event.Name), zap.String("event", string(kind)))
			lastEvent, lastTrigger = kind, event.Name
			debounce.Reset(wopts.Debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if herr := handler(ctx, WatchResult{Error: fmt.Errorf("watcher error: %w", err)}); herr != nil {
				return herr
			}

		case <-debounce.C:
			if err := rewalk(lastEvent, lastTrigger); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return nil
				}
				return err
			}
		}
	}
}

// watchEventOf maps the fsnotify operations that change directory listings.
// Writes and mode changes leave names untouched and are ignored.
func watchEventOf(event fsnotify.Event) (WatchEvent, bool) {
	switch {
	case event.Has(fsnotify.Create):
		return EventCreate, true
	case event.Has(fsnotify.Remove):
		return EventDelete, true
	case event.Has(fsnotify.Rename):
		return EventRename, true
	}
	return "", false
}
