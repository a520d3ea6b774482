package toc

import (
	"strconv"

	"github.com/dgallion1/inkpost/internal/doctree"
	"github.com/dgallion1/inkpost/internal/dom"
	"golang.org/x/net/html"
)

// BlockClass is the class of the rendered outline block.
const BlockClass = "toc"

// MarkerAttr is set on generated blocks only, so an author's own element with
// class "toc" is not mistaken for one.
const MarkerAttr = "data-toc-generated"

// IsBlock reports whether n is a generated outline block.
func IsBlock(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode || !dom.HasClass(n, BlockClass) {
		return false
	}
	_, ok := dom.Attr(n, MarkerAttr)
	return ok
}

// Render builds the outline block:
//
//	<nav class="toc" aria-label="Table of contents" data-toc-generated>
//	  <div class="toc-title">Contents</div>
//	  <ol><li><a href="#id">Label</a><ol>...</ol></li></ol>
//	</nav>
func Render(o *doctree.Outline, title string) *html.Node {
	nav := dom.Element("nav", "class", BlockClass, "aria-label", "Table of contents", MarkerAttr, "")
	if title != "" {
		heading := dom.Element("div", "class", "toc-title")
		heading.AppendChild(dom.Text(title))
		nav.AppendChild(heading)
	}
	nav.AppendChild(renderList(o.Children))
	return nav
}

func renderList(nodes []*doctree.OutlineNode) *html.Node {
	ol := dom.Element("ol")
	for _, n := range nodes {
		li := dom.Element("li", "class", "toc-level-"+strconv.Itoa(n.Level))
		a := dom.Element("a", "href", "#"+n.Target)
		a.AppendChild(dom.Text(n.Label))
		li.AppendChild(a)
		if len(n.Children) > 0 {
			li.AppendChild(renderList(n.Children))
		}
		ol.AppendChild(li)
	}
	return ol
}
