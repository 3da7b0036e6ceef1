package contact_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yudhaa/portfolio/internal/contact"
	"github.com/yudhaa/portfolio/locales"
	"github.com/yudhaa/portfolio/pkg/i18n"
	"github.com/yudhaa/portfolio/pkg/mailer"
)

var validKey = "re_" + strings.Repeat("a1B2", 9)

// MockSender is a mock implementation of mailer.Sender.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, email *mailer.Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// deliverFunc adapts a function to contact.Deliverer.
type deliverFunc func(ctx context.Context, params mailer.SendParams) error

func (f deliverFunc) Send(ctx context.Context, params mailer.SendParams) error {
	return f(ctx, params)
}

func catalogue(t *testing.T) *i18n.I18n {
	t.Helper()
	c, err := i18n.New(i18n.WithDefaultLanguage("id"), i18n.WithYAMLDir(locales.FS))
	require.NoError(t, err)
	return c
}

// newMailer renders the real contact templates and hands emails to sender.
func newMailer(sender mailer.Sender) *mailer.Mailer {
	return mailer.New(sender, contact.NewRenderer(), mailer.Config{
		FallbackSubject: "Pesan baru",
		DefaultLayout:   "base.html",
	})
}

func newService(t *testing.T, key string, d contact.Deliverer, opts ...contact.Option) *contact.Service {
	t.Helper()
	return contact.New(key, d, catalogue(t), contact.Config{}, opts...)
}

func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func validRequest() contact.Request {
	return contact.Request{
		Name:    "Budi",
		Email:   "budi@example.com",
		Subject: "Halo",
		Message: "Hai",
	}
}
