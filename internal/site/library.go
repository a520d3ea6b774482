// Package site loads the blog's posts and renders them into enhanced pages.
package site

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dgallion1/inkpost/internal/doctree"
	"github.com/dgallion1/inkpost/internal/excerpt"
	"github.com/dgallion1/inkpost/internal/parser"
)

// Library is the in-memory set of posts loaded from a content directory.
type Library struct {
	dir  string
	opts parser.Options
	log  *slog.Logger

	mu    sync.RWMutex
	posts map[string]*doctree.Post
}

func NewLibrary(dir string, opts parser.Options, log *slog.Logger) *Library {
	return &Library{
		dir:   dir,
		opts:  opts,
		log:   log,
		posts: make(map[string]*doctree.Post),
	}
}

// Load parses every supported file under the content directory and replaces
// the current set. Files that fail to parse are logged and skipped; a slug
// seen twice keeps the first file in walk order.
func (l *Library) Load(ctx context.Context) (int, error) {
	posts := make(map[string]*doctree.Post)
	err := filepath.WalkDir(l.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			// Jekyll output and hidden directories are never content.
			if path != l.dir && (strings.HasPrefix(d.Name(), ".") || d.Name() == "_site") {
				return filepath.SkipDir
			}
			return nil
		}
		if !parser.IsSupportedExtension(path) {
			return nil
		}
		post, err := l.parseFile(path)
		if err != nil {
			l.log.Warn("skipping post", "path", path, "error", err)
			return nil
		}
		if prev, dup := posts[post.Slug]; dup {
			l.log.Warn("duplicate slug, keeping first", "slug", post.Slug, "kept", prev.Source, "skipped", path)
			return nil
		}
		posts[post.Slug] = post
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walk content dir: %w", err)
	}

	l.mu.Lock()
	l.posts = posts
	l.mu.Unlock()
	l.log.Info("posts loaded", "dir", l.dir, "count", len(posts))
	return len(posts), nil
}

func (l *Library) parseFile(path string) (*doctree.Post, error) {
	p, err := parser.ForFile(path, l.opts)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rel, err := filepath.Rel(l.dir, path)
	if err != nil {
		rel = path
	}
	post, err := p.Parse(f, filepath.ToSlash(rel))
	if err != nil {
		return nil, err
	}
	if post.Summary == "" {
		post.Summary = excerpt.FromHTML(post.Body, excerpt.DefaultWords)
	}
	return post, nil
}

// Add inserts or replaces a post.
func (l *Library) Add(post *doctree.Post) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.posts[post.Slug] = post
}

// Get returns a post by slug.
func (l *Library) Get(slug string) (*doctree.Post, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.posts[slug]
	return p, ok
}

// List returns posts newest first, then by title.
func (l *Library) List(includeDrafts bool) []*doctree.Post {
	l.mu.RLock()
	out := make([]*doctree.Post, 0, len(l.posts))
	for _, p := range l.posts {
		if p.Draft && !includeDrafts {
			continue
		}
		out = append(out, p)
	}
	l.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Title < out[j].Title
	})
	return out
}
