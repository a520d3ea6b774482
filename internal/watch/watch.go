// Package watch reports changes to the content directory, coalescing bursts
// of filesystem events into a single callback.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is the quiet period after the last event before a flush.
const DefaultDelay = 500 * time.Millisecond

// Filter reports whether a changed path is interesting.
type Filter func(path string) bool

// Watcher watches a directory tree.
type Watcher struct {
	fs     *fsnotify.Watcher
	root   string
	delay  time.Duration
	filter Filter
	log    *slog.Logger
}

// New starts watching root and every directory below it. A nil filter
// accepts every file.
func New(root string, delay time.Duration, filter Filter, log *slog.Logger) (*Watcher, error) {
	if delay <= 0 {
		delay = DefaultDelay
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{fs: fsw, root: root, delay: delay, filter: filter, log: log}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// skipDir matches directories that never hold content.
func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "_site"
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// Run delivers batches of changed paths to onChange until ctx is done. The
// watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) error {
	defer w.fs.Close()

	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.handle(ev, pending) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				timer.Reset(w.delay)
			}
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)

		case <-fire:
			fire = nil
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			clear(pending)
			sort.Strings(paths)
			onChange(paths)
		}
	}
}

// handle records ev and reports whether it should restart the quiet period.
func (w *Watcher) handle(ev fsnotify.Event, pending map[string]struct{}) bool {
	if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if skipDir(info.Name()) {
				return false
			}
			if err := w.addTree(ev.Name); err != nil {
				w.log.Warn("watch new directory failed", "path", ev.Name, "error", err)
			}
			return false
		}
	}
	if w.filter != nil && !w.filter(ev.Name) {
		return false
	}
	pending[ev.Name] = struct{}{}
	return true
}
