// Package mailer renders and delivers transactional email.
//
// A Sender delivers a fully prepared Email through a provider (see the
// resend subpackage). A Renderer turns a markdown template with YAML
// frontmatter into an HTML body wrapped in a layout plus a plain-text body.
// Mailer combines both:
//
//	m := mailer.New(sender, mailer.NewRenderer(emails.FS), mailer.Config{
//		DefaultLayout:   "base.html",
//		FallbackSubject: "Pesan baru",
//	})
//
//	err := m.Send(ctx, mailer.SendParams{
//		To:       "owner@example.com",
//		Template: "contact.md",
//		ReplyTo:  "visitor@example.com",
//		Data:     data,
//	})
//
// # Provider errors
//
// Senders distinguish two kinds of failure. A *ProviderError means the
// provider answered and refused the message (invalid recipient, quota,
// authentication). Any other error means the outcome is unknown: the request
// never reached the provider or the response could not be read.
//
//	if pe, ok := mailer.AsProviderError(err); ok {
//		log.Warn("rejected", "reason", pe.Message)
//	}
//
// # Action links
//
// Templates may contain action links rendered as inline-styled buttons:
//
//	[!action|Reply to {{.Name}}](mailto:{{.Email}})
//
// Only http, https and mailto targets are rendered as links.
//
// # Untrusted values
//
// Markdown templates get an "md" function that escapes a value so it renders
// as typed: {{md .Message}}. A "name.txt" next to "name.md" is used for the
// plain-text body instead of the markdown source, so visitor text there
// needs no escaping.
package mailer
