// Package progress renders the reading-progress bar and computes its fill.
package progress

import (
	"github.com/dgallion1/inkpost/internal/dom"
	"golang.org/x/net/html"
)

// BarClass marks the progress bar container.
const BarClass = "reading-progress"

// Ratio returns how far the page has been scrolled, in percent.
// A page that fits in the viewport reports 0.
func Ratio(scrollTop, scrollHeight, clientHeight float64) float64 {
	scrollable := scrollHeight - clientHeight
	if scrollable <= 0 {
		return 0
	}
	r := scrollTop / scrollable * 100
	switch {
	case r < 0:
		return 0
	case r > 100:
		return 100
	}
	return r
}

// Apply inserts the progress bar as the first child of <body>. It reports
// false when there is no body or the bar is already present.
func Apply(doc *html.Node) bool {
	if doc == nil {
		return false
	}
	body := dom.Find(doc, dom.ByTag("body"))
	if body == nil || dom.Find(body, dom.ByClass(BarClass)) != nil {
		return false
	}
	bar := dom.Element("div", "class", BarClass, "role", "progressbar", "aria-valuemin", "0", "aria-valuemax", "100")
	bar.AppendChild(dom.Element("div", "class", BarClass+"-fill", "style", "width: 0%"))
	dom.Prepend(body, bar)
	return true
}
