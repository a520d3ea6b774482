package copycode

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dgallion1/inkpost/internal/dom"
)

type memClipboard struct {
	mu   sync.Mutex
	text string
	err  error
}

func (c *memClipboard) WriteText(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func TestApply_AddsButtons(t *testing.T) {
	doc, err := dom.Parse(strings.NewReader(`<article>
<pre><code>fmt.Println("hi")</code></pre>
<pre>plain preformatted</pre>
<pre><code>go test ./...</code></pre>
</article>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := dom.Find(doc, dom.ByTag("article"))

	if got := Apply(content, 0); got != 2 {
		t.Fatalf("expected 2 buttons, got %d", got)
	}
	if got := Apply(content, 0); got != 0 {
		t.Errorf("expected second run to add nothing, got %d", got)
	}

	pres := dom.FindAll(content, dom.ByTag("pre"))
	if !dom.HasClass(pres[0], "code-block") {
		t.Error("expected code-block class on the first pre")
	}
	if dom.HasClass(pres[1], "code-block") {
		t.Error("expected plain pre to be untouched")
	}
	if got := CodeText(pres[0]); got != `fmt.Println("hi")` {
		t.Errorf("expected code text without button label, got %q", got)
	}
	if _, ok := dom.Attr(dom.Find(pres[0], dom.ByTag("button")), ResetAttr); ok {
		t.Error("expected no reset attribute for a zero delay")
	}
}

func TestApply_ResetDelay(t *testing.T) {
	doc, err := dom.Parse(strings.NewReader(`<article><pre><code>x</code></pre></article>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := dom.Find(doc, dom.ByTag("article"))
	Apply(content, 1500*time.Millisecond)

	v, _ := dom.Attr(dom.Find(content, dom.ByTag("button")), ResetAttr)
	if v != "1500" {
		t.Errorf("expected reset delay 1500, got %q", v)
	}
}

func TestCopier_Success(t *testing.T) {
	cb := &memClipboard{}
	c := &Copier{Clipboard: cb, ResetAfter: 20 * time.Millisecond}
	b := NewButton()

	if !c.Copy(context.Background(), b, "hello") {
		t.Fatal("expected copy to succeed")
	}
	if b.Label() != LabelCopied {
		t.Errorf("expected %q, got %q", LabelCopied, b.Label())
	}
	if cb.text != "hello" {
		t.Errorf("expected clipboard %q, got %q", "hello", cb.text)
	}

	time.Sleep(60 * time.Millisecond)
	if b.Label() != LabelIdle {
		t.Errorf("expected label to reset to %q, got %q", LabelIdle, b.Label())
	}
}

func TestCopier_FailureShowsLabel(t *testing.T) {
	cb := &memClipboard{err: errors.New("permission denied")}
	c := &Copier{
		Clipboard:  cb,
		ResetAfter: 20 * time.Millisecond,
		Log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	b := NewButton()

	if c.Copy(context.Background(), b, "hello") {
		t.Fatal("expected copy to fail")
	}
	if b.Label() != LabelFailed {
		t.Errorf("expected %q, got %q", LabelFailed, b.Label())
	}

	time.Sleep(60 * time.Millisecond)
	if b.Label() != LabelIdle {
		t.Errorf("expected label to reset to %q, got %q", LabelIdle, b.Label())
	}
}
