// Package dom holds small helpers over golang.org/x/net/html trees that the
// page enhancement routines share.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse parses a full HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// Render serializes a node tree back to HTML.
func Render(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

// Element creates a detached element with the given attributes as key/value pairs.
func Element(tag string, attrs ...string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

// Text creates a detached text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Attr returns the value of an attribute and whether it is present.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// HasClass reports whether the element's class list contains name.
func HasClass(n *html.Node, name string) bool {
	v, ok := Attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass appends name to the class list unless already present.
func AddClass(n *html.Node, name string) {
	if HasClass(n, name) {
		return
	}
	v, _ := Attr(n, "class")
	SetAttr(n, "class", strings.TrimSpace(v+" "+name))
}

// IsElement reports whether n is an element with the given tag.
func IsElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && n.Data == tag
}

// Find returns the first node in document order (n included) matching pred.
func Find(n *html.Node, pred func(*html.Node) bool) *html.Node {
	if pred(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m := Find(c, pred); m != nil {
			return m
		}
	}
	return nil
}

// FindAll returns every node in document order matching pred. Subtrees of
// matched nodes are still searched.
func FindAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if pred(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// ByTag matches elements with the given tag.
func ByTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return IsElement(n, tag) }
}

// ByClass matches elements carrying the given class.
func ByClass(name string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Type == html.ElementNode && HasClass(n, name) }
}

// ByID matches the element with the given id.
func ByID(id string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		v, ok := Attr(n, "id")
		return ok && v == id
	}
}

// Closest walks from n up through its ancestors and returns the first match.
func Closest(n *html.Node, pred func(*html.Node) bool) *html.Node {
	for ; n != nil; n = n.Parent {
		if pred(n) {
			return n
		}
	}
	return nil
}

// Contains reports whether child is n or one of its descendants.
func Contains(n, child *html.Node) bool {
	for ; child != nil; child = child.Parent {
		if child == n {
			return true
		}
	}
	return false
}

// TextContent returns the concatenated, trimmed text of n and its descendants.
func TextContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

// InsertAfter inserts node as the next sibling of ref.
func InsertAfter(ref, node *html.Node) {
	if ref.Parent == nil {
		return
	}
	ref.Parent.InsertBefore(node, ref.NextSibling)
}

// Prepend inserts node as the first child of parent.
func Prepend(parent, node *html.Node) {
	parent.InsertBefore(node, parent.FirstChild)
}

// ChildElementCount counts the direct element children of n.
func ChildElementCount(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			count++
		}
	}
	return count
}

// HeadingLevel returns 1-6 for h1-h6 tags and 0 otherwise.
func HeadingLevel(n *html.Node) int {
	if n.Type != html.ElementNode {
		return 0
	}
	switch n.Data {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}
