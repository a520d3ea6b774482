package toc

import (
	"strings"

	"github.com/dgallion1/inkpost/internal/dom"
	"golang.org/x/net/html"
)

// ScrollOptions mirrors the options passed to Element.scrollIntoView.
type ScrollOptions struct {
	Behavior string // "smooth"
	Block    string // "start"
}

// Scroller brings an element into view.
type Scroller interface {
	ScrollIntoView(target *html.Node, opts ScrollOptions)
}

// History replaces the fragment of the current history entry without
// pushing a new one.
type History interface {
	ReplaceState(fragment string)
}

// Location is an in-memory History. Fragment is stored without the leading '#'.
type Location struct {
	Fragment     string
	Replacements int
}

func (l *Location) ReplaceState(fragment string) {
	l.Fragment = strings.TrimPrefix(fragment, "#")
	l.Replacements++
}

// ClickEvent is a click dispatched on a node of the page.
type ClickEvent struct {
	Target *html.Node

	defaultPrevented bool
}

// PreventDefault cancels the browser's default navigation.
func (e *ClickEvent) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *ClickEvent) DefaultPrevented() bool { return e.defaultPrevented }

// Navigator is the single click listener attached to an outline block.
type Navigator struct {
	Doc      *html.Node // Document the targets are resolved against
	Block    *html.Node // Outline block the listener is attached to
	Scroller Scroller
	History  History
}

// Click handles a click and reports whether it activated an outline link.
// An unresolved target still updates the fragment; only the scroll is skipped.
func (nv *Navigator) Click(ev *ClickEvent) bool {
	if ev == nil || ev.Target == nil || nv.Block == nil || !dom.Contains(nv.Block, ev.Target) {
		return false
	}
	link := dom.Closest(ev.Target, dom.ByTag("a"))
	if link == nil || !dom.Contains(nv.Block, link) {
		return false
	}
	href, _ := dom.Attr(link, "href")
	if !strings.HasPrefix(href, "#") {
		return false
	}

	ev.PreventDefault()
	id := strings.TrimPrefix(href, "#")
	if nv.Doc != nil && nv.Scroller != nil {
		if target := dom.Find(nv.Doc, dom.ByID(id)); target != nil {
			nv.Scroller.ScrollIntoView(target, ScrollOptions{Behavior: "smooth", Block: "start"})
		}
	}
	if nv.History != nil {
		nv.History.ReplaceState(href)
	}
	return true
}
