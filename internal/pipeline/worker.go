package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgallion1/inkpost/internal/doctree"
	"github.com/dgallion1/inkpost/internal/enhance"
	"github.com/dgallion1/inkpost/internal/site"
	"github.com/dgallion1/inkpost/internal/stats"
)

// Worker processes a single site build job.
type Worker struct {
	library   *site.Library
	renderer  *site.Renderer
	log       *slog.Logger
	outputDir string
	latency   *stats.Latency

	maxConcurrentRender int
}

func NewWorker(lib *site.Library, r *site.Renderer, log *slog.Logger, outputDir string, maxRender int, latency *stats.Latency) *Worker {
	if maxRender <= 0 {
		maxRender = 1
	}
	return &Worker{
		library:             lib,
		renderer:            r,
		log:                 log,
		outputDir:           outputDir,
		latency:             latency,
		maxConcurrentRender: maxRender,
	}
}

// Process runs the full build for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID)
	if w.latency != nil {
		defer w.latency.Since(job.CreatedAt)
	}

	// Phase 1: Load
	if job.Reload {
		job.SetStatus(StatusLoading, "loading")
		if _, err := w.library.Load(ctx); err != nil {
			log.Error("load failed", "error", err)
			job.AddError(fmt.Sprintf("load: %s", err))
			job.SetStatus(StatusFailed, "loading")
			return
		}
	}
	posts := w.library.List(job.IncludeDrafts)
	job.SetTotalPosts(len(posts))

	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		log.Error("create output dir failed", "error", err)
		job.AddError(fmt.Sprintf("output dir: %s", err))
		job.SetStatus(StatusFailed, "loading")
		return
	}
	if _, err := writeIfChanged(filepath.Join(w.outputDir, "assets", "main.js"), enhance.Runtime); err != nil {
		log.Error("write runtime failed", "error", err)
		job.AddError(fmt.Sprintf("assets: %s", err))
		job.SetStatus(StatusFailed, "loading")
		return
	}

	// Phase 2: Render and write pages with bounded concurrency.
	job.SetStatus(StatusRendering, "rendering")
	type postResult struct {
		slug      string
		unchanged bool
		err       error
	}
	results := make(chan postResult, len(posts))
	sem := make(chan struct{}, w.maxConcurrentRender)

	for _, post := range posts {
		sem <- struct{}{}
		go func(p *doctree.Post) {
			defer func() { <-sem }()
			if ctx.Err() != nil {
				results <- postResult{slug: p.Slug, err: ctx.Err()}
				return
			}
			page, err := w.renderer.Render(p, "")
			if err != nil {
				results <- postResult{slug: p.Slug, err: err}
				return
			}
			job.IncrRendered()
			unchanged, err := writeIfChanged(filepath.Join(w.outputDir, "posts", p.Slug, "index.html"), []byte(page.HTML))
			results <- postResult{slug: p.Slug, unchanged: unchanged, err: err}
		}(post)
	}

	written := 0
	hadErrors := false
	for range posts {
		r := <-results
		if r.err != nil {
			log.Error("post build failed", "slug", r.slug, "error", r.err)
			job.AddError(fmt.Sprintf("%s: %s", r.slug, r.err))
			hadErrors = true
			continue
		}
		job.IncrWritten(r.unchanged)
		written++
	}

	// Phase 3: Index page.
	index, err := w.renderer.RenderIndex(posts)
	if err == nil {
		_, err = writeIfChanged(filepath.Join(w.outputDir, "index.html"), []byte(index))
	}
	if err != nil {
		log.Error("index write failed", "error", err)
		job.AddError(fmt.Sprintf("index: %s", err))
		hadErrors = true
	}

	log.Info("build complete", "posts", len(posts), "written", written, "errors", hadErrors)

	if hadErrors && written > 0 {
		job.SetStatus(StatusPartial, "done")
	} else if hadErrors {
		job.SetStatus(StatusFailed, "rendering")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
}

// writeIfChanged writes data to path unless the file already holds the same
// content. It reports whether the write was skipped.
func writeIfChanged(path string, data []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if ContentHashHex(existing) == ContentHashHex(data) {
			return true, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return false, err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return false, err
	}
	return false, nil
}
