package theme

import (
	"github.com/dgallion1/inkpost/internal/dom"
	"golang.org/x/net/html"
)

// Attr is the root element attribute carrying the rendered theme.
const Attr = "data-theme"

// Apply sets the theme attribute on the document's <html> element.
func Apply(doc *html.Node, t Theme) bool {
	if doc == nil || !t.Valid() {
		return false
	}
	root := dom.Find(doc, dom.ByTag("html"))
	if root == nil {
		return false
	}
	dom.SetAttr(root, Attr, string(t))
	return true
}

// FromDocument reads the theme attribute back from a document.
func FromDocument(doc *html.Node) Theme {
	root := dom.Find(doc, dom.ByTag("html"))
	if root == nil {
		return ""
	}
	v, _ := dom.Attr(root, Attr)
	return Theme(v)
}
