package contact_test

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yudhaa/portfolio/internal/contact"
	"github.com/yudhaa/portfolio/internal/server"
	"github.com/yudhaa/portfolio/pkg/mailer"
	"github.com/yudhaa/portfolio/pkg/metrics"
)

func TestSubmit_NotConfigured(t *testing.T) {
	t.Parallel()

	keys := map[string]string{
		"empty":          "",
		"whitespace":     "   ",
		"too short":      "re_abc",
		"too long":       validKey + "x",
		"wrong prefix":   "sk_" + strings.Repeat("a1B2", 9),
		"punctuation":    "re_" + strings.Repeat("a-B2", 9),
		"no prefix":      strings.Repeat("a1B2", 9),
		"uppercase pref": "RE_" + strings.Repeat("a1B2", 9),
	}

	for name, key := range keys {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			svc := newService(t, key, deliverFunc(func(context.Context, mailer.SendParams) error {
				calls.Add(1)
				return nil
			}))

			res := svc.Submit(context.Background(), "id", validRequest())

			assert.False(t, res.Success)
			assert.Contains(t, res.Message, "Layanan email belum dikonfigurasi")
			assert.Empty(t, res.MailtoLink)
			assert.Equal(t, metrics.OutcomeNotConfigured, res.Outcome)
			assert.Zero(t, calls.Load())
			assert.ErrorIs(t, svc.Healthcheck(context.Background()), contact.ErrNotConfigured)
		})
	}
}

func TestSubmit_NotConfiguredLogsMaskedKey(t *testing.T) {
	t.Parallel()

	key := "re_" + strings.Repeat("Z9", 17)
	var buf bytes.Buffer
	svc := newService(t, key, deliverFunc(func(context.Context, mailer.SendParams) error { return nil }),
		contact.WithLogger(bufferLogger(&buf)),
	)

	res := svc.Submit(context.Background(), "id", validRequest())
	require.False(t, res.Success)

	assert.Contains(t, buf.String(), `"key_prefix":"re_Z9Z9Z…"`)
	assert.NotContains(t, buf.String(), key)
}

func TestSubmit_MissingFields(t *testing.T) {
	t.Parallel()

	tests := map[string]contact.Request{
		"all empty":        {},
		"no name":          {Email: "budi@example.com", Subject: "Halo", Message: "Hai"},
		"no email":         {Name: "Budi", Subject: "Halo", Message: "Hai"},
		"no subject":       {Name: "Budi", Email: "budi@example.com", Message: "Hai"},
		"no message":       {Name: "Budi", Email: "budi@example.com", Subject: "Halo"},
		"whitespace name":  {Name: " \t\n", Email: "budi@example.com", Subject: "Halo", Message: "Hai"},
		"bad email too":    {Email: "not-an-email", Subject: "Halo", Message: "Hai"},
		"whitespace msg":   {Name: "Budi", Email: "budi@example.com", Subject: "Halo", Message: "\u00a0\r\n"},
	}

	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			sender := &MockSender{}
			svc := newService(t, validKey, newMailer(sender))

			res := svc.Submit(context.Background(), "id", req)

			assert.False(t, res.Success)
			assert.Equal(t, "Harap isi semua bidang.", res.Message)
			assert.Equal(t, metrics.OutcomeInvalidInput, res.Outcome)
			sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmit_InvalidEmail(t *testing.T) {
	t.Parallel()

	for _, email := range []string{"budi", "budi@example", "budi@@example.com", "bu di@example.com", "@example.com", "budi@.com."} {
		t.Run(email, func(t *testing.T) {
			t.Parallel()

			req := validRequest()
			req.Email = email

			sender := &MockSender{}
			svc := newService(t, validKey, newMailer(sender))

			res := svc.Submit(context.Background(), "id", req)
			assert.False(t, res.Success)
			assert.Equal(t, "Harap masukkan alamat email yang valid.", res.Message)
			sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		})
	}
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	assert.True(t, contact.ValidEmail("budi@example.com"))
	assert.True(t, contact.ValidEmail("a.b+c@sub.example.co.id"))
	assert.False(t, contact.ValidEmail("budi@example"))
	assert.False(t, contact.ValidEmail("budi@ex ample.com"))
	assert.False(t, contact.ValidEmail("a@b@c.d"))
	assert.False(t, contact.ValidEmail("bu\u00a0di@example.com"))
	assert.False(t, contact.ValidEmail("bu\vdi@example.com"))
	assert.False(t, contact.ValidEmail("budi@exa\u2028mple.com"))
	assert.False(t, contact.ValidEmail("\ufeffbudi@example.com"))
}

func TestSubmit_MarkupIsNotContent(t *testing.T) {
	t.Parallel()

	tests := map[string]contact.Request{
		"line break only": {Name: "Budi", Email: "budi@example.com", Subject: "Halo", Message: "<br>"},
		"markup subject":  {Name: "Budi", Email: "budi@example.com", Subject: "<b></b>", Message: "Hai"},
	}

	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			sender := &MockSender{}
			sender.On("Send", mock.Anything, mock.Anything).Return(nil).Once()
			svc := newService(t, validKey, newMailer(sender))

			res := svc.Submit(context.Background(), "id", req)

			assert.True(t, res.Success)
			assert.Equal(t, metrics.OutcomeDelivered, res.Outcome)
			email := sender.Calls[0].Arguments.Get(1).(*mailer.Email)
			assert.Contains(t, email.Text, "\n"+req.Message+"\n")
			assert.Equal(t, "Kontak Portofolio: "+req.Subject, email.Subject)
		})
	}
}

func TestSubmit_Delivered(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

	reg := prometheus.NewRegistry()
	svc := newService(t, validKey, newMailer(sender), contact.WithMetrics(metrics.NewContactMetrics(reg)))

	ctx := context.WithValue(context.Background(), server.RequestIDKey{}, "req-123")
	req := contact.Request{
		Name:    "John_Doe",
		Email:   "john_doe@example.com",
		Subject: "Halo!",
		Message: "Terima kasih!\n- poin satu\nKomponen <Button> rusak ketika a<b",
	}
	res := svc.Submit(ctx, "id", req)

	assert.True(t, res.Success)
	assert.Equal(t, "Terima kasih! Pesan Anda sudah terkirim. Saya akan segera menghubungi Anda.", res.Message)
	assert.Empty(t, res.MailtoLink)
	assert.Equal(t, metrics.OutcomeDelivered, res.Outcome)
	sender.AssertExpectations(t)

	email := sender.Calls[0].Arguments.Get(1).(*mailer.Email)
	assert.Equal(t, []string{contact.DefaultOperatorEmail}, email.To)
	assert.Equal(t, "john_doe@example.com", email.ReplyTo)
	assert.Equal(t, "Kontak Portofolio: Halo!", email.Subject)
	assert.Equal(t, "req-123", email.Headers["X-Entity-Ref-ID"])
	assert.Equal(t, "contact-form", email.Tags["source"])

	assert.Equal(t, "Pesan Baru dari Form Kontak\n\n"+
		"Pengirim: John_Doe (john_doe@example.com)\n"+
		"Subjek: Halo!\n\n"+
		"Pesan:\n"+
		"Terima kasih!\n- poin satu\nKomponen <Button> rusak ketika a<b\n\n"+
		"---\n"+
		"Email ini dikirim dari form kontak portofolio.\n"+
		"Balas langsung email ini untuk membalas John_Doe.\n", email.Text)

	assert.Contains(t, email.HTML, "Pesan Baru dari Form Kontak")
	assert.Contains(t, email.HTML, "<strong>John_Doe</strong>")
	assert.Contains(t, email.HTML, "Terima kasih!<br>\n- poin satu<br>\nKomponen &lt;Button&gt; rusak ketika a&lt;b")
	assert.Contains(t, email.HTML, `href="mailto:john_doe@example.com"`)
	assert.NotContains(t, email.HTML, "<li>")

	count, err := testutil.GatherAndCount(reg, "portfolio_contact_submissions_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSubmit_English(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(nil).Once()
	svc := newService(t, validKey, newMailer(sender))

	res := svc.Submit(context.Background(), "en-US", validRequest())

	assert.True(t, res.Success)
	assert.Equal(t, "Thank you! Your message has been sent. I will get back to you soon.", res.Message)

	email := sender.Calls[0].Arguments.Get(1).(*mailer.Email)
	assert.Equal(t, "Kontak Portofolio: Halo", email.Subject)
}

func TestSubmit_ProviderError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{name: "with reason", message: "invalid recipient", want: "Gagal mengirim email: invalid recipient"},
		{name: "without reason", message: "", want: "Gagal mengirim email: Terjadi kesalahan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sender := &MockSender{}
			sender.On("Send", mock.Anything, mock.Anything).
				Return(&mailer.ProviderError{Provider: "resend", Message: tt.message}).Once()
			var buf bytes.Buffer
			svc := newService(t, validKey, newMailer(sender), contact.WithLogger(bufferLogger(&buf)))

			res := svc.Submit(context.Background(), "id", validRequest())

			assert.False(t, res.Success)
			assert.Equal(t, tt.want, res.Message)
			assert.Empty(t, res.MailtoLink)
			assert.Equal(t, metrics.OutcomeProviderError, res.Outcome)
			sender.AssertNumberOfCalls(t, "Send", 1)
			assert.Contains(t, buf.String(), `"error":"failed to send email\nresend: `+tt.message+`"`)
		})
	}
}

func TestSubmit_FaultFallsBackToMailto(t *testing.T) {
	t.Parallel()

	faults := map[string]contact.Deliverer{
		"transport": newMailer(func() *MockSender {
			s := &MockSender{}
			s.On("Send", mock.Anything, mock.Anything).Return(errors.New("dial tcp: connection refused"))
			return s
		}()),
		"context": deliverFunc(func(context.Context, mailer.SendParams) error {
			return context.DeadlineExceeded
		}),
		"panic": deliverFunc(func(context.Context, mailer.SendParams) error {
			panic("client exploded")
		}),
		"render": mailer.New(&MockSender{}, mailer.NewRenderer(fstest.MapFS{}), mailer.Config{DefaultLayout: "base.html"}),
	}

	for name, d := range faults {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			svc := newService(t, validKey, d, contact.WithLogger(bufferLogger(&buf)))

			res := svc.Submit(context.Background(), "id", validRequest())

			assert.True(t, res.Success)
			assert.Equal(t, "Layanan email otomatis sedang tidak tersedia. Klik tautan di bawah untuk membuka aplikasi email Anda.", res.Message)
			assert.Equal(t, metrics.OutcomeFallback, res.Outcome)
			assert.True(t, res.Fallback())

			link, err := url.Parse(res.MailtoLink)
			require.NoError(t, err)
			assert.Equal(t, "mailto", link.Scheme)
			assert.Equal(t, contact.DefaultOperatorEmail, link.Opaque)
			assert.Equal(t, "Kontak Portofolio: Halo", link.Query().Get("subject"))
			assert.Equal(t, "Dari: Budi (budi@example.com)\n\nPesan:\nHai", link.Query().Get("body"))

			assert.NotContains(t, buf.String(), validKey)
		})
	}
}

func TestSubmit_FaultKeepsMarkupInMailto(t *testing.T) {
	t.Parallel()

	svc := newService(t, validKey, deliverFunc(func(context.Context, mailer.SendParams) error {
		return errors.New("dial tcp: connection refused")
	}))

	req := contact.Request{
		Name:    "<b>Budi</b> & Co",
		Email:   "budi@example.com",
		Subject: "Re: *a*_b_ <tag>",
		Message: "Komponen <Button> rusak ketika a<b dan <script>x()</script> dipanggil\n- poin [satu](x)",
	}
	res := svc.Submit(context.Background(), "id", req)

	require.True(t, res.Fallback())
	link, err := url.Parse(res.MailtoLink)
	require.NoError(t, err)
	assert.Equal(t, "Kontak Portofolio: Re: *a*_b_ <tag>", link.Query().Get("subject"))
	assert.Equal(t, "Dari: <b>Budi</b> & Co (budi@example.com)\n\n"+
		"Pesan:\nKomponen <Button> rusak ketika a<b dan <script>x()</script> dipanggil\n- poin [satu](x)",
		link.Query().Get("body"))
}

func TestSubmit_NoDeduplication(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(nil)
	svc := newService(t, validKey, newMailer(sender))

	first := svc.Submit(context.Background(), "id", validRequest())
	second := svc.Submit(context.Background(), "id", validRequest())

	assert.Equal(t, first, second)
	sender.AssertNumberOfCalls(t, "Send", 2)
}

func TestSubmit_CustomConfig(t *testing.T) {
	t.Parallel()

	var got mailer.SendParams
	svc := contact.New(validKey, deliverFunc(func(_ context.Context, p mailer.SendParams) error {
		got = p
		return nil
	}), catalogue(t), contact.Config{OperatorEmail: "owner@example.org", SubjectPrefix: "[web] "})

	res := svc.Submit(context.Background(), "id", validRequest())

	require.True(t, res.Success)
	assert.Equal(t, "owner@example.org", got.To)
	assert.Equal(t, "budi@example.com", got.ReplyTo)
	assert.Empty(t, got.Headers)
	assert.Equal(t, "owner@example.org", svc.Config().OperatorEmail)
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	svc := newService(t, "  "+validKey+"\n", nil)
	assert.NoError(t, svc.Healthcheck(context.Background()))
}
