package walk

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

func TestWatchRedeliversCompleteList(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a.md", "sub/b.md", "sub/c.txt")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	results := make(chan WatchResult, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, root, []string{"*.md"}, Options{Logger: zap.NewNop()}, WatchOptions{Debounce: 50 * time.Millisecond},
			func(ctx context.Context, result WatchResult) error {
				results <- result
				return nil
			})
	}()

	select {
	case r := <-results:
		if r.Error != nil {
			t.Fatalf("initial walk failed: %v", r.Error)
		}
		if r.Event != EventInitial {
			t.Errorf("Expected initial event, got %s", r.Event)
		}
		if len(r.Paths) != 2 {
			t.Errorf("Expected 2 initial matches, got %d: %v", len(r.Paths), r.Paths)
		}
	case <-ctx.Done():
		t.Fatal("Timed out waiting for the initial walk")
	}

	// Give the watcher a moment to settle before changing the tree.
	time.Sleep(100 * time.Millisecond)
	newFile := filepath.Join(root, "sub", "new.md")
	if err := os.WriteFile(newFile, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	var found bool
	for !found {
		select {
		case r := <-results:
			if r.Error != nil {
				t.Logf("Watch error: %v", r.Error)
				continue
			}
			for _, p := range r.Paths {
				if p == newFile {
					found = true
				}
			}
			if found && len(r.Paths) != 3 {
				t.Errorf("Expected the full list of 3 matches, got %v", r.Paths)
			}
		case <-ctx.Done():
			t.Fatal("Timed out waiting for a walk that includes the new file")
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned %v after cancellation", err)
	}
}

func TestWatchStopsOnHandlerError(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a.md")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stop := os.ErrClosed
	err := Watch(ctx, root, []string{"*.md"}, Options{Logger: zap.NewNop()}, WatchOptions{},
		func(ctx context.Context, result WatchResult) error {
			return stop
		})
	if err != stop {
		t.Errorf("Expected handler error, got %v", err)
	}
}

func TestWatchTimeout(t *testing.T) {
	root := t.TempDir()

	start := time.Now()
	err := Watch(context.Background(), root, []string{"*"}, Options{Logger: zap.NewNop()}, WatchOptions{Timeout: 200 * time.Millisecond},
		func(ctx context.Context, result WatchResult) error { return nil })
	if err != nil {
		t.Errorf("Expected nil error on timeout, got %v", err)
	}
	if time.Since(start) < 200*time.Millisecond {
		t.Errorf("Watch returned before its timeout")
	}
}

func TestWatchEventOf(t *testing.T) {
	tests := []struct {
		op       fsnotify.Op
		want     WatchEvent
		relevant bool
	}{
		{fsnotify.Create, EventCreate, true},
		{fsnotify.Remove, EventDelete, true},
		{fsnotify.Rename, EventRename, true},
		{fsnotify.Write, "", false},
		{fsnotify.Chmod, "", false},
	}
	for _, tt := range tests {
		got, relevant := watchEventOf(fsnotify.Event{Name: "x", Op: tt.op})
		if got != tt.want || relevant != tt.relevant {
			t.Errorf("watchEventOf(%s) = %q, %v; want %q, %v", tt.op, got, relevant, tt.want, tt.relevant)
		}
	}
}
