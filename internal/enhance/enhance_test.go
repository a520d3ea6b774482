package enhance

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/dgallion1/inkpost/internal/dom"
	"github.com/dgallion1/inkpost/internal/theme"
)

const page = `<!DOCTYPE html><html><head><title>t</title></head><body>
<article class="post">
<h1>Go memory internals</h1>
<div class="post-meta"><time>2024-01-01</time></div>
<h2>Allocation</h2><p>See <a href="https://go.dev/src/runtime/malloc.go">malloc.go</a>.</p>
<h3>Size classes</h3><pre><code>var x = 1</code></pre>
<h2>Collection</h2><p>Read <a href="/posts/gc">part two</a>.</p>
</article></body></html>`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEnhancer_AppliesAllRoutines(t *testing.T) {
	doc, err := dom.Parse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e := New(Options{ContentClass: "post", SiteHost: "blog.example.com"}, quietLogger())

	r := e.Apply(doc, theme.Dark)

	if r.ContentMissing {
		t.Fatal("expected content region to be found")
	}
	if r.Theme != theme.Dark || theme.FromDocument(doc) != theme.Dark {
		t.Errorf("expected dark theme applied, got report=%q doc=%q", r.Theme, theme.FromDocument(doc))
	}
	if !r.ProgressBar {
		t.Error("expected progress bar")
	}
	if !r.TOCInserted {
		t.Error("expected outline to be inserted")
	}
	if r.ReadMinutes != 1 {
		t.Errorf("expected 1 minute, got %d", r.ReadMinutes)
	}
	if r.LinksPatched != 1 {
		t.Errorf("expected 1 patched link, got %d", r.LinksPatched)
	}
	if r.CopyButtons != 1 {
		t.Errorf("expected 1 copy button, got %d", r.CopyButtons)
	}

	out, err := dom.Render(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		`data-theme="dark"`,
		`<nav class="toc"`,
		`href="#heading-0"`,
		`1 min read`,
		`target="_blank"`,
		`class="copy-code"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestEnhancer_MissingContentRegion(t *testing.T) {
	doc, err := dom.Parse(strings.NewReader(`<html><body><div><h2>a</h2><h2>b</h2><h2>c</h2></div></body></html>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := New(Options{}, quietLogger()).Apply(doc, "")
	if !r.ContentMissing {
		t.Error("expected content region to be reported missing")
	}
	if r.TOCInserted || r.ReadMinutes != 0 {
		t.Error("expected content routines to be skipped")
	}
	if !r.ProgressBar {
		t.Error("expected progress bar regardless of content region")
	}
	if theme.FromDocument(doc) != "" {
		t.Error("expected no theme attribute for an empty theme")
	}
}

func TestEnhancer_ContentClassFilter(t *testing.T) {
	doc, err := dom.Parse(strings.NewReader(`<html><body><article class="card">x</article><article class="post">y</article></body></html>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e := New(Options{ContentClass: "post"}, quietLogger())
	region := e.ContentRegion(doc)
	if region == nil || dom.TextContent(region) != "y" {
		t.Error("expected the post article to be the content region")
	}
}

func TestRuntimeEmbedded(t *testing.T) {
	if !strings.Contains(string(Runtime), "scrollIntoView") {
		t.Error("expected runtime script to be embedded")
	}
}
