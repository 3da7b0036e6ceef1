package mailer

import (
	"bytes"
	"context"
	"errors"
	texttemplate "text/template"
)

// Config holds mailer defaults.
type Config struct {
	FallbackSubject string `env:"MAILER_FALLBACK_SUBJECT" envDefault:"Pesan baru"`
	DefaultLayout   string `env:"MAILER_DEFAULT_LAYOUT" envDefault:"base.html"`
}

// Mailer renders templates and hands the result to a Sender.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New creates a new Mailer with the given sender and renderer.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{
		sender:   sender,
		renderer: renderer,
		config:   cfg,
	}
}

// SendParams contains parameters for sending a templated email.
type SendParams struct {
	Data     any    // Template data, also used for the subject template
	Headers  map[string]string
	Tags     Tags
	To       string // Single recipient
	Template string // Template filename (e.g., "contact.md")
	Subject  string // Overrides the frontmatter subject
	Layout   string // Overrides the default layout
	From     string // Overrides the sender identity
	ReplyTo  string
}

// Send renders a template and sends the email exactly once.
// Subject resolution: params.Subject > template metadata > config fallback.
// Render failures wrap ErrRenderFailed; delivery failures wrap ErrSendFailed
// and keep the sender's error (including *ProviderError) in the chain.
func (m *Mailer) Send(ctx context.Context, params SendParams) error {
	if params.To == "" {
		return ErrNoRecipient
	}

	layout := params.Layout
	if layout == "" {
		layout = m.config.DefaultLayout
	}

	result, err := m.renderer.Render(layout, params.Template, params.Data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	subject := params.Subject
	if subject == "" {
		if fromMeta, ok := result.Metadata["Subject"].(string); ok {
			subject = fromMeta
		} else {
			subject = m.config.FallbackSubject
		}
	}

	subject, err = processSubject(subject, params.Data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	email := &Email{
		To:      []string{params.To},
		Subject: subject,
		HTML:    result.HTML,
		Text:    result.Text,
		From:    params.From,
		ReplyTo: params.ReplyTo,
		Headers: params.Headers,
		Tags:    params.Tags,
	}

	if err := m.sender.Send(ctx, email); err != nil {
		return errors.Join(ErrSendFailed, err)
	}

	return nil
}

func processSubject(subject string, data any) (string, error) {
	tmpl, err := texttemplate.New("subject").Parse(subject)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
