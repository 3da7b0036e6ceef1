// Package sanitizer filters HTML before it is sent to a recipient.
package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	emailPolicy *bluemonday.Policy
	initOnce    sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		// Basic formatting plus what the email templates produce:
		// headings, rules and styled action links.
		emailPolicy = bluemonday.NewPolicy()
		emailPolicy.AllowStandardURLs()
		emailPolicy.AllowElements(
			"p", "br", "hr",
			"h1", "h2", "h3",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
		)
		emailPolicy.AllowAttrs("href", "style").OnElements("a")
		emailPolicy.RequireNoFollowOnLinks(true)
	})
}

// EmailHTML keeps the formatting an email body needs and strips everything
// else, including scripts, event handlers and javascript: URLs.
// Text content is not altered.
func EmailHTML(s string) string {
	if s == "" {
		return ""
	}
	initPolicies()
	return emailPolicy.Sanitize(s)
}

// Custom applies a caller-supplied policy.
// Returns input unchanged if policy is nil.
func Custom(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}
