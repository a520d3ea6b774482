package doctree

import "time"

// Post is a parsed blog post ready to be rendered into a page.
type Post struct {
	Slug    string    // URL slug (from front matter or filename)
	Title   string    // Post title (from front matter, <title> or filename)
	Date    time.Time // Publication date (zero if unknown)
	Tags    []string  // Front matter tags
	Draft   bool      // Drafts are only served to authenticated callers
	Body    string    // Rendered HTML body (article content, no layout)
	Source  string    // Source filename
	Summary string    // Optional front matter description
}

// Heading is one h2-h4 element found in a page's content region.
type Heading struct {
	Level int    // 2, 3 or 4
	Text  string // Rendered text content
	ID    string // Existing id, or the positional fallback
	Index int    // Zero-based position among scanned headings
}

// Outline is the root of a table of contents. It carries no label.
type Outline struct {
	Children []*OutlineNode `json:"children"`
}

// OutlineNode is one table-of-contents entry.
type OutlineNode struct {
	Label    string         `json:"label"`
	Target   string         `json:"target"`
	Level    int            `json:"level"`
	Children []*OutlineNode `json:"children,omitempty"`
}

// Walk visits every node in pre-order with its depth (1 for top-level nodes).
func (o *Outline) Walk(fn func(n *OutlineNode, depth int)) {
	var walk func(nodes []*OutlineNode, depth int)
	walk = func(nodes []*OutlineNode, depth int) {
		for _, n := range nodes {
			fn(n, depth)
			walk(n.Children, depth+1)
		}
	}
	walk(o.Children, 1)
}

// Len returns the number of entries in the outline.
func (o *Outline) Len() int {
	n := 0
	o.Walk(func(*OutlineNode, int) { n++ })
	return n
}

// Equal reports whether two outlines have the same labels, targets and shape.
func (o *Outline) Equal(other *Outline) bool {
	if o == nil || other == nil {
		return o == other
	}
	return equalNodes(o.Children, other.Children)
}

func equalNodes(a, b []*OutlineNode) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Label != b[i].Label || a[i].Target != b[i].Target || a[i].Level != b[i].Level {
			return false
		}
		if !equalNodes(a[i].Children, b[i].Children) {
			return false
		}
	}
	return true
}
