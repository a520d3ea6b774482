// Package copycode adds copy buttons to code blocks and implements the copy
// action behind them.
package copycode

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/dgallion1/inkpost/internal/dom"
	"golang.org/x/net/html"
)

// Button labels.
const (
	LabelIdle   = "Copy"
	LabelCopied = "Copied!"
	LabelFailed = "Failed"
)

// DefaultResetAfter is how long a result label stays on the button.
const DefaultResetAfter = 2 * time.Second

const (
	blockClass  = "code-block"
	buttonClass = "copy-code"
)

// ResetAttr carries the label reset delay in milliseconds to the runtime.
const ResetAttr = "data-reset-ms"

// Apply adds a copy button to every <pre> in content that holds code and
// returns how many buttons were added. A positive resetAfter is written to
// each button.
func Apply(content *html.Node, resetAfter time.Duration) int {
	if content == nil {
		return 0
	}
	added := 0
	for _, pre := range dom.FindAll(content, dom.ByTag("pre")) {
		if dom.Find(pre, dom.ByTag("code")) == nil {
			continue
		}
		if dom.Find(pre, dom.ByClass(buttonClass)) != nil {
			continue
		}
		dom.AddClass(pre, blockClass)
		btn := dom.Element("button",
			"class", buttonClass,
			"type", "button",
			"aria-label", "Copy code to clipboard",
		)
		if resetAfter > 0 {
			dom.SetAttr(btn, ResetAttr, strconv.FormatInt(resetAfter.Milliseconds(), 10))
		}
		btn.AppendChild(dom.Text(LabelIdle))
		pre.AppendChild(btn)
		added++
	}
	return added
}

// CodeText returns the code of a block, excluding its copy button.
func CodeText(pre *html.Node) string {
	code := dom.Find(pre, dom.ByTag("code"))
	if code == nil {
		return ""
	}
	return dom.TextContent(code)
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Button is the observable state of one copy button.
type Button struct {
	mu    sync.Mutex
	label string
	reset *time.Timer
}

// NewButton returns a button showing the idle label.
func NewButton() *Button {
	return &Button{label: LabelIdle}
}

// Label returns the text currently shown on the button.
func (b *Button) Label() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.label
}

func (b *Button) show(label string, resetAfter time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.label = label
	if b.reset != nil {
		b.reset.Stop()
	}
	b.reset = time.AfterFunc(resetAfter, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.label = LabelIdle
	})
}

// Copier runs the copy action for buttons.
type Copier struct {
	Clipboard  Clipboard
	ResetAfter time.Duration
	Log        *slog.Logger
}

// Copy writes text to the clipboard and reflects the outcome on the button.
// Failures are logged and shown as a label, never returned.
func (c *Copier) Copy(ctx context.Context, b *Button, text string) bool {
	resetAfter := c.ResetAfter
	if resetAfter <= 0 {
		resetAfter = DefaultResetAfter
	}
	if err := c.Clipboard.WriteText(ctx, text); err != nil {
		if c.Log != nil {
			c.Log.Warn("copy to clipboard failed", "error", err)
		}
		b.show(LabelFailed, resetAfter)
		return false
	}
	b.show(LabelCopied, resetAfter)
	return true
}
