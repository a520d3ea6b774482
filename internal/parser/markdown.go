package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/inkpost/internal/doctree"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	gmparser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown posts using goldmark.
type MarkdownParser struct {
	md   goldmark.Markdown
	opts Options
}

// NewMarkdownParser configures goldmark with GFM and, when a style is set,
// chroma highlighting for fenced code.
func NewMarkdownParser(opts Options) *MarkdownParser {
	exts := []goldmark.Extender{extension.GFM}
	if opts.HighlightStyle != "" {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithStyle(opts.HighlightStyle),
		))
	}
	var parserOpts []gmparser.Option
	if opts.AutoHeadingID {
		parserOpts = append(parserOpts, gmparser.WithAutoHeadingID())
	}
	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parserOpts...),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return &MarkdownParser{md: md, opts: opts}
}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Post, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fm, src, err := SplitFrontMatter(raw)
	if err != nil {
		return nil, err
	}

	post := newPost(filename, fm)
	doc := p.md.Parser().Parse(text.NewReader(src))

	// A leading h1 is the post title; the page layout renders it, so drop it
	// from the body.
	if first := firstBlock(doc); first != nil {
		if h, ok := first.(*ast.Heading); ok && h.Level == 1 {
			if fm.Title == "" {
				post.Title = strings.TrimSpace(string(headingText(h, src)))
			}
			doc.RemoveChild(doc, h)
		}
	}

	var buf bytes.Buffer
	if err := p.md.Renderer().Render(&buf, src, doc); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	post.Body = buf.String()
	if p.opts.Sanitize {
		post.Body = Sanitize(post.Body)
	}
	return post, nil
}

func firstBlock(doc ast.Node) ast.Node {
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if n.Kind() == ast.KindHTMLBlock {
			continue
		}
		return n
	}
	return nil
}

// headingText collects the text segments of a heading's inline children.
func headingText(n ast.Node, src []byte) []byte {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(src))
			continue
		}
		if s, ok := c.(*ast.String); ok {
			buf.Write(s.Value)
			continue
		}
		buf.Write(headingText(c, src))
	}
	return buf.Bytes()
}
