package links

import (
	"strings"
	"testing"

	"github.com/dgallion1/inkpost/internal/dom"
	"golang.org/x/net/html"
)

func TestIsExternal(t *testing.T) {
	tests := []struct {
		href string
		host string
		want bool
	}{
		{"https://go.dev/doc", "blog.example.com", true},
		{"http://blog.example.com/post", "blog.example.com", false},
		{"https://www.blog.example.com/post", "blog.example.com", false},
		{"https://BLOG.example.com:443/x", "blog.example.com", false},
		{"/posts/other", "blog.example.com", false},
		{"#section", "blog.example.com", false},
		{"mailto:me@example.com", "blog.example.com", false},
		{"ftp://files.example.org/x", "blog.example.com", false},
		{"https://go.dev", "", true},
	}
	for _, tt := range tests {
		if got := IsExternal(tt.href, tt.host); got != tt.want {
			t.Errorf("IsExternal(%q, %q): expected %v, got %v", tt.href, tt.host, tt.want, got)
		}
	}
}

func TestApply_PatchesExternalOnly(t *testing.T) {
	doc, err := dom.Parse(strings.NewReader(`<article>
<a id="ext" href="https://github.com/x">gh</a>
<a id="int" href="/about">about</a>
<a id="rel" href="https://go.dev" rel="nofollow noopener">go</a>
</article>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := dom.Find(doc, dom.ByTag("article"))

	if got := Apply(content, "blog.example.com"); got != 2 {
		t.Fatalf("expected 2 patched links, got %d", got)
	}

	attr := func(n *html.Node, k string) string { v, _ := dom.Attr(n, k); return v }

	ext := dom.Find(content, dom.ByID("ext"))
	if attr(ext, "target") != "_blank" {
		t.Errorf("expected target _blank, got %q", attr(ext, "target"))
	}
	if attr(ext, "rel") != "noopener noreferrer" {
		t.Errorf("expected rel %q, got %q", "noopener noreferrer", attr(ext, "rel"))
	}

	internal := dom.Find(content, dom.ByID("int"))
	if _, ok := dom.Attr(internal, "target"); ok {
		t.Error("expected internal link to be untouched")
	}

	rel := dom.Find(content, dom.ByID("rel"))
	if attr(rel, "rel") != "nofollow noopener noreferrer" {
		t.Errorf("expected merged rel, got %q", attr(rel, "rel"))
	}

	if got := Apply(content, "blog.example.com"); got != 0 {
		t.Errorf("expected second run to change nothing, got %d", got)
	}
}
