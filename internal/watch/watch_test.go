package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWatcher_CoalescesChanges(t *testing.T) {
	dir := t.TempDir()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	onlyMarkdown := func(p string) bool { return strings.HasSuffix(p, ".md") }

	w, err := New(dir, 50*time.Millisecond, onlyMarkdown, log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	batches := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(paths []string) { batches <- paths })
	}()

	for _, name := range []string{"a.md", "b.md", "image.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	select {
	case got := <-batches:
		want := []string{filepath.Join(dir, "a.md"), filepath.Join(dir, "b.md")}
		if strings.Join(got, ",") != strings.Join(want, ",") {
			t.Errorf("expected %v, got %v", want, got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change batch")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcher_FollowsNewDirectories(t *testing.T) {
	dir := t.TempDir()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	w, err := New(dir, 50*time.Millisecond, nil, log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	batches := make(chan []string, 4)
	go w.Run(ctx, func(paths []string) { batches <- paths })

	sub := filepath.Join(dir, "_posts")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	// Give the watcher a moment to register the new directory.
	time.Sleep(100 * time.Millisecond)
	post := filepath.Join(sub, "new.md")
	if err := os.WriteFile(post, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case got := <-batches:
			for _, p := range got {
				if p == post {
					return
				}
			}
		case <-deadline:
			t.Fatal("expected change in the new directory")
		}
	}
}

func TestNew_MissingRoot(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if _, err := New(filepath.Join(t.TempDir(), "missing"), 0, nil, log); err == nil {
		t.Error("expected error for a missing root")
	}
}
