package contact

import (
	"fmt"
	"net/url"
	"strings"
)

// MailtoLink builds the link offered when automatic delivery is unavailable.
// The subject carries prefix and the body names the sender before the
// message, so the owner receives the same content either way.
func MailtoLink(operator, prefix string, req Request) string {
	body := fmt.Sprintf("Dari: %s (%s)\n\nPesan:\n%s", req.Name, req.Email, req.Message)
	return "mailto:" + operator +
		"?subject=" + encodeComponent(prefix+req.Subject) +
		"&body=" + encodeComponent(body)
}

// encodeComponent percent-encodes s for use in a mailto query. Spaces become
// %20 because mail clients do not decode "+".
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
