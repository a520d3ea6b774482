package toc

import (
	"fmt"

	"github.com/dgallion1/inkpost/internal/doctree"
	"github.com/dgallion1/inkpost/internal/dom"
	"golang.org/x/net/html"
)

// MinLevel and MaxLevel bound the heading levels that appear in the outline.
const (
	MinLevel = 2
	MaxLevel = 4
)

// headingElement pairs a heading record with the element it was read from.
type headingElement struct {
	doctree.Heading
	node *html.Node
}

// collect returns the h2-h4 elements inside content in document order.
// The generated outline block is skipped so a rerun does not scan its links.
func collect(content *html.Node) []headingElement {
	var out []headingElement
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if IsBlock(n) {
			return
		}
		if level := dom.HeadingLevel(n); level >= MinLevel && level <= MaxLevel {
			out = append(out, headingElement{
				Heading: doctree.Heading{
					Level: level,
					Text:  dom.TextContent(n),
					Index: len(out),
				},
				node: n,
			})
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(content)
	return out
}

// assignIDs resolves each heading's identifier, writing the positional
// fallback onto elements that have none.
func assignIDs(hs []headingElement) {
	for i := range hs {
		if id, ok := dom.Attr(hs[i].node, "id"); ok && id != "" {
			hs[i].ID = id
			continue
		}
		hs[i].ID = PositionalID(hs[i].Index)
		dom.SetAttr(hs[i].node, "id", hs[i].ID)
	}
}

// PositionalID is the identifier given to the heading at index when it has none.
func PositionalID(index int) string {
	return fmt.Sprintf("heading-%d", index)
}

// Scan returns the headings of content and assigns missing identifiers.
func Scan(content *html.Node) []doctree.Heading {
	if content == nil {
		return nil
	}
	hs := collect(content)
	assignIDs(hs)
	out := make([]doctree.Heading, len(hs))
	for i, h := range hs {
		out[i] = h.Heading
	}
	return out
}
