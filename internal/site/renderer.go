package site

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/dgallion1/inkpost/internal/doctree"
	"github.com/dgallion1/inkpost/internal/dom"
	"github.com/dgallion1/inkpost/internal/enhance"
	"github.com/dgallion1/inkpost/internal/stats"
	"github.com/dgallion1/inkpost/internal/theme"
	"github.com/dgallion1/inkpost/internal/toc"
)

// Page is a rendered, enhanced post.
type Page struct {
	HTML   string
	Report enhance.Report
}

// Renderer lays posts out and runs the enhancement routines over them.
type Renderer struct {
	tmpl      *template.Template
	index     *template.Template
	enhancer  *enhance.Enhancer
	siteTitle string
	latency   *stats.Latency
}

type pageData struct {
	SiteTitle string
	Title     string
	Summary   string
	Date      time.Time
	Tags      []string
	Body      template.HTML
}

// NewRenderer parses the page layout. latency may be nil.
func NewRenderer(siteTitle string, enhancer *enhance.Enhancer, latency *stats.Latency) (*Renderer, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	index, err := template.New("index").Parse(indexTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}
	return &Renderer{
		tmpl:      tmpl,
		index:     index,
		enhancer:  enhancer,
		siteTitle: siteTitle,
		latency:   latency,
	}, nil
}

func (r *Renderer) layout(post *doctree.Post) ([]byte, error) {
	var buf bytes.Buffer
	err := r.tmpl.Execute(&buf, pageData{
		SiteTitle: r.siteTitle,
		Title:     post.Title,
		Summary:   post.Summary,
		Date:      post.Date,
		Tags:      post.Tags,
		// Bodies come from our own parsers, optionally sanitized there.
		Body: template.HTML(post.Body),
	})
	if err != nil {
		return nil, fmt.Errorf("execute page template: %w", err)
	}
	return buf.Bytes(), nil
}

// Render produces the enhanced page for post. An empty theme leaves the
// choice to the browser runtime.
func (r *Renderer) Render(post *doctree.Post, t theme.Theme) (*Page, error) {
	start := time.Now()
	raw, err := r.layout(post)
	if err != nil {
		return nil, err
	}
	doc, err := dom.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	report := r.enhancer.Apply(doc, t)
	out, err := dom.Render(doc)
	if err != nil {
		return nil, err
	}
	if r.latency != nil {
		r.latency.Since(start)
	}
	return &Page{HTML: out, Report: report}, nil
}

// Outline returns the post's table of contents regardless of the insertion
// threshold, and whether the page would show it.
func (r *Renderer) Outline(post *doctree.Post, minHeadings int) (*doctree.Outline, bool, error) {
	raw, err := r.layout(post)
	if err != nil {
		return nil, false, err
	}
	doc, err := dom.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, false, err
	}
	content := r.enhancer.ContentRegion(doc)
	if content == nil {
		return &doctree.Outline{}, false, nil
	}
	if minHeadings <= 0 {
		minHeadings = toc.DefaultMinHeadings
	}
	outline := toc.Outline(content)
	return outline, outline.Len() >= minHeadings, nil
}

// RenderIndex renders the post listing page.
func (r *Renderer) RenderIndex(posts []*doctree.Post) (string, error) {
	var buf bytes.Buffer
	err := r.index.Execute(&buf, struct {
		SiteTitle string
		Posts     []*doctree.Post
	}{r.siteTitle, posts})
	if err != nil {
		return "", fmt.Errorf("execute index template: %w", err)
	}
	return buf.String(), nil
}
