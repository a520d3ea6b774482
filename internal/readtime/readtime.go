// Package readtime estimates how long an article takes to read and labels
// the article's metadata region with it.
package readtime

import (
	"fmt"
	"strings"

	"github.com/dgallion1/inkpost/internal/dom"
	"golang.org/x/net/html"
)

// DefaultWordsPerMinute is the assumed reading speed.
const DefaultWordsPerMinute = 200

// LabelClass marks the inserted read-time label.
const LabelClass = "read-time"

// Config controls Apply.
type Config struct {
	WordsPerMinute int    // Default 200.
	MetaClass      string // Class of the metadata region. Default "post-meta".
	SkipClass      string // Subtrees with this class are not counted (the outline block).
}

// CountWords counts whitespace-separated words.
func CountWords(text string) int {
	if text == "" {
		return 0
	}
	return len(strings.Fields(text))
}

// Count returns the number of words in the readable text of content.
func Count(content *html.Node, skipClass string) int {
	if content == nil {
		return 0
	}
	words := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			words += CountWords(n.Data)
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "template":
				return
			}
			if skipClass != "" && dom.HasClass(n, skipClass) {
				return
			}
			if dom.HasClass(n, LabelClass) {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(content)
	return words
}

// Minutes converts a word count into whole minutes, rounding up, never below 1.
func Minutes(words, wpm int) int {
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	m := (words + wpm - 1) / wpm
	if m < 1 {
		m = 1
	}
	return m
}

// Label formats the read-time text.
func Label(minutes int) string {
	return fmt.Sprintf("%d min read", minutes)
}

// Apply appends the read-time label to the metadata region inside content.
// It returns the estimate in minutes, or 0 when nothing was inserted.
func Apply(content *html.Node, cfg Config) int {
	if content == nil {
		return 0
	}
	if cfg.MetaClass == "" {
		cfg.MetaClass = "post-meta"
	}
	meta := dom.Find(content, dom.ByClass(cfg.MetaClass))
	if meta == nil {
		return 0
	}
	if dom.Find(meta, dom.ByClass(LabelClass)) != nil {
		return 0
	}

	minutes := Minutes(Count(content, cfg.SkipClass), cfg.WordsPerMinute)
	span := dom.Element("span", "class", LabelClass)
	span.AppendChild(dom.Text(Label(minutes)))
	meta.AppendChild(span)
	return minutes
}
