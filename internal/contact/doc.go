// Package contact handles submissions of the portfolio contact form.
//
// A submission is checked in a fixed order, each check short-circuiting:
// the Resend API key must be present and well formed, every field must be
// filled in, and the email address must look like one. A valid submission is
// rendered into an email addressed to the site owner and sent exactly once.
//
// The outcome is one of three shapes:
//
//   - delivered: Success is true.
//   - rejected by the provider: Success is false and Message carries the
//     provider's reason.
//   - an unexpected fault (network failure, render failure, panic): Success
//     is true and MailtoLink lets the visitor send the message from their own
//     mail client.
//
// There are no retries and no deduplication. Two identical submissions reach
// the provider twice.
//
// Usage:
//
//	svc := contact.New(cfg.Resend.APIKey, m, catalogue, cfg.Contact,
//		contact.WithLogger(log),
//		contact.WithMetrics(contactMetrics),
//	)
//	res := svc.Submit(ctx, "id", contact.Request{...})
//
// Handler exposes the service over HTTP:
//
//	server.WithHandlers(contact.NewHandler(svc))
package contact
