package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser_ArticleBody(t *testing.T) {
	input := `<html><head><title>Kademlia vs Chord</title><script>x()</script></head>
<body><nav>menu</nav><article><h1>Kademlia vs Chord</h1><h2 id="xor">XOR metric</h2><p>Distance.</p></article></body></html>`

	post, err := (&HTMLParser{}).Parse(strings.NewReader(input), "2022-01-09-kademlia.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.Title != "Kademlia vs Chord" {
		t.Errorf("expected title %q, got %q", "Kademlia vs Chord", post.Title)
	}
	if post.Slug != "kademlia" {
		t.Errorf("expected slug %q, got %q", "kademlia", post.Slug)
	}
	if strings.Contains(post.Body, "<h1") || strings.Contains(post.Body, "menu") {
		t.Errorf("expected only article content without h1, got %q", post.Body)
	}
	if !strings.Contains(post.Body, `<h2 id="xor">XOR metric</h2>`) {
		t.Errorf("expected heading with id kept, got %q", post.Body)
	}
}

func TestHTMLParser_FrontMatter(t *testing.T) {
	input := "---\ntitle: Notes\ndraft: true\n---\n<p>hello</p>"
	post, err := (&HTMLParser{}).Parse(strings.NewReader(input), "notes.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.Title != "Notes" || !post.Draft {
		t.Errorf("expected title Notes and draft, got %q draft=%v", post.Title, post.Draft)
	}
	if !strings.Contains(post.Body, "<p>hello</p>") {
		t.Errorf("expected body paragraph, got %q", post.Body)
	}
}

func TestTextParser_Paragraphs(t *testing.T) {
	input := "First <line> one.\nline two.\n\n\n   \nSecond paragraph."
	post, err := (&TextParser{}).Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", post.Title)
	}
	want := "<p>First &lt;line&gt; one.\nline two.</p>\n<p>Second paragraph.</p>\n"
	if post.Body != want {
		t.Errorf("expected body %q, got %q", want, post.Body)
	}
}

func TestSplitFrontMatter(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantTitle string
		wantBody  string
		wantErr   bool
	}{
		{"none", "# Hi\n", "", "# Hi\n", false},
		{"basic", "---\ntitle: A\n---\nbody", "A", "body", false},
		{"crlf close", "---\ntitle: B\n---\r\nbody", "B", "body", false},
		{"unterminated", "---\ntitle: C\nbody", "", "---\ntitle: C\nbody", false},
		{"horizontal rule", "--- not yaml\ntext", "", "--- not yaml\ntext", false},
		{"bad yaml", "---\ntitle: [oops\n---\n", "", "", true},
	}
	for _, tt := range tests {
		fm, body, err := SplitFrontMatter([]byte(tt.in))
		if tt.wantErr {
			if err == nil {
				t.Errorf("%s: expected error", tt.name)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if fm.Title != tt.wantTitle {
			t.Errorf("%s: expected title %q, got %q", tt.name, tt.wantTitle, fm.Title)
		}
		if string(body) != tt.wantBody {
			t.Errorf("%s: expected body %q, got %q", tt.name, tt.wantBody, body)
		}
	}
}
