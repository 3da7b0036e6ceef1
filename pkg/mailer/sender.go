package mailer

import "context"

// Sender delivers a prepared Email through an email provider.
type Sender interface {
	// Send delivers the message once. Implementations return a
	// *ProviderError when the provider rejected the message and any other
	// error when delivery could not be confirmed.
	Send(ctx context.Context, email *Email) error
}
