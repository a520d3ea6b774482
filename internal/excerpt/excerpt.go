// Package excerpt derives a short plain-text summary from a rendered post body.
package excerpt

import (
	"strings"

	"github.com/dgallion1/inkpost/internal/dom"
	"golang.org/x/net/html"
)

// DefaultWords is the summary budget when none is given.
const DefaultWords = 40

const ellipsis = "…"

// FromHTML returns the leading paragraphs of body cut to at most maxWords.
// Paragraphs are kept whole while they fit, then sentence by sentence. A first
// sentence longer than the budget is cut mid-way and marked with an ellipsis.
func FromHTML(body string, maxWords int) string {
	doc, err := dom.Parse(strings.NewReader(body))
	if err != nil {
		return ""
	}
	return FromParagraphs(paragraphs(doc), maxWords)
}

// FromParagraphs builds the summary from already extracted paragraph texts.
func FromParagraphs(paras []string, maxWords int) string {
	if maxWords <= 0 {
		maxWords = DefaultWords
	}

	var current strings.Builder
	currentWords := 0

	for _, para := range paras {
		paraWords := countWords(para)
		if paraWords == 0 {
			continue
		}

		if currentWords+paraWords <= maxWords {
			if current.Len() > 0 {
				current.WriteString(" ")
			}
			current.WriteString(para)
			currentWords += paraWords
			continue
		}

		// The paragraph does not fit. Take what fits sentence by sentence.
		for _, sent := range splitSentences(para) {
			sentWords := countWords(sent)
			if currentWords+sentWords > maxWords {
				break
			}
			if current.Len() > 0 {
				current.WriteString(" ")
			}
			current.WriteString(sent)
			currentWords += sentWords
		}
		if currentWords == 0 {
			return truncateWords(para, maxWords)
		}
		break
	}

	return current.String()
}

// paragraphs returns the text of every <p> outside code and navigation.
func paragraphs(doc *html.Node) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if dom.IsElement(n, "pre") || dom.IsElement(n, "nav") || dom.IsElement(n, "script") {
			return
		}
		if dom.IsElement(n, "p") {
			if t := strings.Join(strings.Fields(dom.TextContent(n)), " "); t != "" {
				out = append(out, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

// splitSentences does basic sentence splitting.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && text[i+1] == ' ' {
			sentences = append(sentences, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

func truncateWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + ellipsis
}

func countWords(text string) int {
	return len(strings.Fields(text))
}
