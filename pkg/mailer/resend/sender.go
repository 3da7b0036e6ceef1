package resend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/resend/resend-go/v3"

	"github.com/yudhaa/portfolio/pkg/mailer"
)

// providerName labels errors reported by Resend.
const providerName = "resend"

// sdkErrorPrefix is prepended by the SDK to messages decoded from API errors.
const sdkErrorPrefix = "[ERROR]: "

// emailsAPI is the part of the Resend SDK the sender uses.
type emailsAPI interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	emails emailsAPI
	config Config
}

// New creates a new Resend sender. The key is not validated here; callers
// check it with ValidAPIKey before sending.
func New(cfg Config) *Sender {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	return newWithClient(resend.NewClient(cfg.APIKey), cfg)
}

func newWithClient(client *resend.Client, cfg Config) *Sender {
	return &Sender{
		emails: client.Emails,
		config: cfg,
	}
}

// Send implements mailer.Sender.
// Error responses from the API become *mailer.ProviderError; anything else
// is returned wrapped.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	from := email.From
	if from == "" {
		from = mailer.Recipient(s.config.SenderName, s.config.SenderEmail)
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
		Cc:      email.CC,
		Bcc:     email.BCC,
		Headers: email.Headers,
	}

	if len(email.Tags) > 0 {
		req.Tags = convertTags(email.Tags)
	}

	_, err := s.emails.SendWithContext(ctx, req)
	if err == nil {
		return nil
	}
	if pe := providerError(err); pe != nil {
		return pe
	}
	return fmt.Errorf("resend: failed to send email: %w", err)
}

// providerError returns a *mailer.ProviderError when err carries an answer
// from the Resend API, or nil when the outcome is unknown: network and
// context failures, a request the client could not build, or a success
// response that could not be decoded.
func providerError(err error) *mailer.ProviderError {
	var rateErr *resend.RateLimitError
	if errors.As(err, &rateErr) {
		return &mailer.ProviderError{Err: err, Provider: providerName, Message: rateErr.Message}
	}

	if errors.Is(err, resend.ErrFailedToCreateEmailsSendRequest) {
		return nil
	}

	msg := err.Error()
	if !strings.HasPrefix(msg, sdkErrorPrefix) {
		return nil
	}
	return &mailer.ProviderError{
		Err:      err,
		Provider: providerName,
		Message:  strings.TrimSpace(strings.TrimPrefix(msg, sdkErrorPrefix)),
	}
}

func convertTags(tags mailer.Tags) []resend.Tag {
	result := make([]resend.Tag, 0, len(tags))
	for name, value := range tags {
		result = append(result, resend.Tag{
			Name:  name,
			Value: tagValue(value),
		})
	}
	return result
}

// tagValue converts any value to a string for Resend's tag API.
// Presence-only tags (struct{}{}) become "true".
func tagValue(v any) string {
	switch val := v.(type) {
	case nil, struct{}:
		return "true"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
