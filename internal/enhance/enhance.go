// Package enhance runs the page enhancement routines over a rendered page,
// the server-side counterpart of the blog's page-load script.
package enhance

import (
	"log/slog"
	"time"

	"github.com/dgallion1/inkpost/internal/copycode"
	"github.com/dgallion1/inkpost/internal/dom"
	"github.com/dgallion1/inkpost/internal/links"
	"github.com/dgallion1/inkpost/internal/progress"
	"github.com/dgallion1/inkpost/internal/readtime"
	"github.com/dgallion1/inkpost/internal/theme"
	"github.com/dgallion1/inkpost/internal/toc"
	"golang.org/x/net/html"
)

// Options configures the routines.
type Options struct {
	ContentTag     string // Element marking the article body. Default "article".
	ContentClass   string // Required class on that element; empty accepts any.
	MetaClass      string // Metadata region inside the content. Default "post-meta".
	SiteHost       string // Links to other hosts are external.
	MinHeadings    int    // ToC threshold. Default 3.
	TOCTitle       string // Label above the outline.
	WordsPerMinute int    // Read-time speed. Default 200.

	CopyResetAfter time.Duration // Copy result label lifetime. Default 2s.
}

// Report summarizes one run.
type Report struct {
	Theme          theme.Theme `json:"theme,omitempty"`
	ProgressBar    bool        `json:"progress_bar"`
	TOC            toc.Result  `json:"-"`
	TOCInserted    bool        `json:"toc_inserted"`
	ReadMinutes    int         `json:"read_minutes"`
	LinksPatched   int         `json:"links_patched"`
	CopyButtons    int         `json:"copy_buttons"`
	ContentMissing bool        `json:"content_missing"`
}

// Enhancer applies every routine to a document.
type Enhancer struct {
	opts Options
	log  *slog.Logger
}

func New(opts Options, log *slog.Logger) *Enhancer {
	if opts.ContentTag == "" {
		opts.ContentTag = "article"
	}
	if opts.MetaClass == "" {
		opts.MetaClass = "post-meta"
	}
	if opts.CopyResetAfter <= 0 {
		opts.CopyResetAfter = copycode.DefaultResetAfter
	}
	if log == nil {
		log = slog.Default()
	}
	return &Enhancer{opts: opts, log: log}
}

// ContentRegion returns the element holding the article body, or nil.
func (e *Enhancer) ContentRegion(doc *html.Node) *html.Node {
	return dom.Find(doc, func(n *html.Node) bool {
		if !dom.IsElement(n, e.opts.ContentTag) {
			return false
		}
		return e.opts.ContentClass == "" || dom.HasClass(n, e.opts.ContentClass)
	})
}

// Apply runs the routines in page-load order. t is written to the root
// element's data-theme attribute unless empty. The routines touch disjoint
// parts of the page and a missing region only skips the routines that need it.
func (e *Enhancer) Apply(doc *html.Node, t theme.Theme) Report {
	start := time.Now()
	var r Report

	if t != "" && theme.Apply(doc, t) {
		r.Theme = t
	}
	r.ProgressBar = progress.Apply(doc)

	content := e.ContentRegion(doc)
	if content == nil {
		r.ContentMissing = true
		e.log.Debug("content region not found", "tag", e.opts.ContentTag, "class", e.opts.ContentClass)
		return r
	}

	r.TOC = toc.Apply(content, toc.Options{
		MinHeadings: e.opts.MinHeadings,
		Title:       e.opts.TOCTitle,
	})
	r.TOCInserted = r.TOC.Inserted
	r.ReadMinutes = readtime.Apply(content, readtime.Config{
		WordsPerMinute: e.opts.WordsPerMinute,
		MetaClass:      e.opts.MetaClass,
		SkipClass:      toc.BlockClass,
	})
	r.LinksPatched = links.Apply(content, e.opts.SiteHost)
	r.CopyButtons = copycode.Apply(content, e.opts.CopyResetAfter)

	e.log.Debug("page enhanced",
		"toc", r.TOCInserted,
		"headings", len(r.TOC.Headings),
		"read_minutes", r.ReadMinutes,
		"links_patched", r.LinksPatched,
		"copy_buttons", r.CopyButtons,
		"duration_us", time.Since(start).Microseconds(),
	)
	return r
}
