// Package toc builds a table of contents from the h2-h4 headings of an
// article and inserts it into the page.
package toc

import (
	"github.com/dgallion1/inkpost/internal/doctree"
	"github.com/dgallion1/inkpost/internal/dom"
	"golang.org/x/net/html"
)

// DefaultMinHeadings is the fewest headings an article needs to get an outline.
const DefaultMinHeadings = 3

// Options controls Apply.
type Options struct {
	MinHeadings int    // Fewer qualifying headings is a no-op. Default 3.
	Title       string // Label above the list. Default "Contents".
}

// Result describes what Apply did.
type Result struct {
	Inserted bool
	Headings []doctree.Heading
	Outline  *doctree.Outline
	Block    *html.Node // The inserted block; nil when nothing was inserted
}

// Apply scans content, builds the outline and inserts it after the first h1
// of content, or at the start of content when there is no h1.
func Apply(content *html.Node, opts Options) Result {
	if content == nil {
		return Result{}
	}
	if opts.MinHeadings <= 0 {
		opts.MinHeadings = DefaultMinHeadings
	}
	if opts.Title == "" {
		opts.Title = "Contents"
	}

	if dom.Find(content, IsBlock) != nil {
		return Result{}
	}

	// Count before touching ids so short articles are left exactly as they were.
	hs := collect(content)
	if len(hs) < opts.MinHeadings {
		return Result{}
	}
	assignIDs(hs)

	headings := make([]doctree.Heading, len(hs))
	for i, h := range hs {
		headings[i] = h.Heading
	}
	outline := Build(headings)
	block := Render(outline, opts.Title)

	if h1 := dom.Find(content, dom.ByTag("h1")); h1 != nil && h1 != content {
		dom.InsertAfter(h1, block)
	} else {
		dom.Prepend(content, block)
	}

	return Result{
		Inserted: true,
		Headings: headings,
		Outline:  outline,
		Block:    block,
	}
}

// Outline builds the outline of content without inserting anything.
// Headings without ids still receive their positional id.
func Outline(content *html.Node) *doctree.Outline {
	return Build(Scan(content))
}
