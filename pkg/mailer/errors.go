package mailer

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrTemplateNotFound indicates the template file was not found.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrLayoutNotFound indicates the layout file was not found.
	ErrLayoutNotFound = errors.New("layout not found")

	// ErrRenderFailed indicates template rendering failed.
	ErrRenderFailed = errors.New("failed to render template")

	// ErrSendFailed indicates email sending failed.
	ErrSendFailed = errors.New("failed to send email")

	// ErrInvalidFrontmatter indicates invalid YAML frontmatter.
	ErrInvalidFrontmatter = errors.New("invalid frontmatter")
)

// ProviderError is a delivery failure reported by the email provider itself,
// as opposed to a transport or runtime fault.
type ProviderError struct {
	// Err is the provider client's original error, kept for logging.
	Err      error
	Provider string
	// Message is the provider's reason, fit to show to a user.
	Message string
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsProviderError reports whether err wraps a *ProviderError.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

// AsProviderError extracts the *ProviderError from err if present.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
