package parser

import (
	"bufio"
	"bytes"
	"html"
	"io"
	"strings"

	"github.com/dgallion1/inkpost/internal/doctree"
)

// TextParser handles plain text notes. Blank lines separate paragraphs.
type TextParser struct {
	opts Options
}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Post, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fm, src, err := SplitFrontMatter(raw)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(bytes.NewReader(src))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	post := newPost(filename, fm)

	var body strings.Builder
	for _, para := range paragraphs {
		body.WriteString("<p>")
		body.WriteString(html.EscapeString(para))
		body.WriteString("</p>\n")
	}
	post.Body = body.String()
	return post, nil
}
