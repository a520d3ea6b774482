package parser

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Sanitize strips scripts and unsafe attributes from a rendered body while
// keeping the ids, classes and inline highlight styles the page relies on.
func Sanitize(body string) string {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("id", "class").Globally()
		p.AllowAttrs("style").OnElements("pre", "span", "code")
		p.AllowStyles("color", "background-color", "font-weight", "font-style", "text-decoration").Globally()
		policy = p
	})
	return policy.Sanitize(body)
}
