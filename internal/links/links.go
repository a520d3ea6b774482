// Package links makes off-site links open in a new tab without leaking the
// opener or referrer.
package links

import (
	"net/url"
	"strings"

	"github.com/dgallion1/inkpost/internal/dom"
	"golang.org/x/net/html"
)

var requiredRel = []string{"noopener", "noreferrer"}

// IsExternal reports whether href is an absolute http(s) URL pointing away
// from siteHost. An empty siteHost treats every absolute http(s) URL as external.
func IsExternal(href, siteHost string) bool {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil || u.Host == "" {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return false
	}
	if siteHost == "" {
		return true
	}
	return normalizeHost(u.Hostname()) != normalizeHost(siteHost)
}

func normalizeHost(h string) string {
	h = strings.ToLower(h)
	if host, _, ok := strings.Cut(h, ":"); ok {
		h = host
	}
	return strings.TrimPrefix(h, "www.")
}

// Apply patches every external link in content and returns how many changed.
func Apply(content *html.Node, siteHost string) int {
	if content == nil {
		return 0
	}
	patched := 0
	for _, a := range dom.FindAll(content, dom.ByTag("a")) {
		href, ok := dom.Attr(a, "href")
		if !ok || !IsExternal(href, siteHost) {
			continue
		}
		changed := false
		if target, _ := dom.Attr(a, "target"); target != "_blank" {
			dom.SetAttr(a, "target", "_blank")
			changed = true
		}
		rel, _ := dom.Attr(a, "rel")
		if merged := mergeRel(rel); merged != rel {
			dom.SetAttr(a, "rel", merged)
			changed = true
		}
		if changed {
			patched++
		}
	}
	return patched
}

func mergeRel(rel string) string {
	tokens := strings.Fields(rel)
	seen := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		seen[strings.ToLower(t)] = true
	}
	for _, r := range requiredRel {
		if !seen[r] {
			tokens = append(tokens, r)
		}
	}
	return strings.Join(tokens, " ")
}
