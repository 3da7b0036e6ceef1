package mailer

import "fmt"

// Tags are provider-side labels attached to a message for filtering.
// Presence-only tags use struct{}{} as the value.
type Tags map[string]any

// SimpleTags creates presence-only tags from a list of tag names.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email is a fully prepared message ready for a Sender.
type Email struct {
	Headers map[string]string // Custom headers
	Tags    Tags              // Provider-side labels
	Subject string
	HTML    string
	Text    string   // Plain-text alternative
	From    string   // Overrides the sender's default identity when set
	ReplyTo string   // Reply-to address
	To      []string // At least one required
	CC      []string
	BCC     []string
}
