package parser

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dgallion1/inkpost/internal/doctree"
	"github.com/dgallion1/inkpost/internal/dom"
	"golang.org/x/net/html"
)

// HTMLParser handles posts that were already rendered to HTML.
type HTMLParser struct {
	opts Options
}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.Post, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fm, src, err := SplitFrontMatter(raw)
	if err != nil {
		return nil, err
	}
	doc, err := dom.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}

	post := newPost(filename, fm)

	// Prefer the <article> element, then <body>, then the whole document.
	root := dom.Find(doc, dom.ByTag("article"))
	if root == nil {
		root = dom.Find(doc, dom.ByTag("body"))
	}
	if root == nil {
		root = doc
	}

	if fm.Title == "" {
		if title := dom.Find(doc, dom.ByTag("title")); title != nil && dom.TextContent(title) != "" {
			post.Title = dom.TextContent(title)
		}
	}
	// As in Markdown posts, a leading h1 is the title and leaves the body.
	if h1 := firstElement(root); h1 != nil && h1.Data == "h1" {
		if fm.Title == "" {
			post.Title = dom.TextContent(h1)
		}
		root.RemoveChild(h1)
	}

	var buf bytes.Buffer
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch c.Data {
			case "script", "style", "head":
				continue
			}
		}
		if err := html.Render(&buf, c); err != nil {
			return nil, fmt.Errorf("render html: %w", err)
		}
	}
	post.Body = buf.String()
	if p.opts.Sanitize {
		post.Body = Sanitize(post.Body)
	}
	return post, nil
}

func firstElement(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}
