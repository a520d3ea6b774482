package readtime

import (
	"strings"
	"testing"

	"github.com/dgallion1/inkpost/internal/dom"
	"golang.org/x/net/html"
)

func article(t *testing.T, body string) *html.Node {
	t.Helper()
	doc, err := dom.Parse(strings.NewReader("<article>" + body + "</article>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return dom.Find(doc, dom.ByTag("article"))
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"one two\nthree\tfour", 4},
	}
	for _, tt := range tests {
		if got := CountWords(tt.text); got != tt.want {
			t.Errorf("CountWords(%q): expected %d, got %d", tt.text, tt.want, got)
		}
	}
}

func TestMinutes(t *testing.T) {
	tests := []struct {
		words, wpm, want int
	}{
		{0, 200, 1},
		{1, 200, 1},
		{200, 200, 1},
		{201, 200, 2},
		{1000, 200, 5},
		{450, 0, 3},
	}
	for _, tt := range tests {
		if got := Minutes(tt.words, tt.wpm); got != tt.want {
			t.Errorf("Minutes(%d, %d): expected %d, got %d", tt.words, tt.wpm, tt.want, got)
		}
	}
}

func TestCount_SkipsScriptsAndOutline(t *testing.T) {
	content := article(t, `<p>one two three</p><script>var a = b;</script><nav class="toc"><a>skip me</a></nav><p>four</p>`)
	if got := Count(content, "toc"); got != 4 {
		t.Errorf("expected 4 words, got %d", got)
	}
}

func TestApply_InsertsLabel(t *testing.T) {
	words := strings.Repeat("word ", 450)
	content := article(t, `<div class="post-meta"><time>2024-01-01</time></div><p>`+words+`</p>`)

	if got := Apply(content, Config{}); got != 3 {
		t.Fatalf("expected 3 minutes, got %d", got)
	}
	label := dom.Find(content, dom.ByClass(LabelClass))
	if label == nil {
		t.Fatal("expected read-time label")
	}
	if dom.TextContent(label) != "3 min read" {
		t.Errorf("expected %q, got %q", "3 min read", dom.TextContent(label))
	}
	if label.Parent == nil || !dom.HasClass(label.Parent, "post-meta") {
		t.Error("expected label inside the metadata region")
	}
}

func TestApply_Idempotent(t *testing.T) {
	content := article(t, `<div class="post-meta"></div><p>short</p>`)
	Apply(content, Config{})
	if got := Apply(content, Config{}); got != 0 {
		t.Errorf("expected second run to be a no-op, got %d", got)
	}
	if n := len(dom.FindAll(content, dom.ByClass(LabelClass))); n != 1 {
		t.Errorf("expected 1 label, got %d", n)
	}
}

func TestApply_NoMetaRegion(t *testing.T) {
	content := article(t, `<p>text</p>`)
	if got := Apply(content, Config{}); got != 0 {
		t.Errorf("expected no-op without metadata region, got %d", got)
	}
}
