package resend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/resend/resend-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yudhaa/portfolio/pkg/mailer"
)

type fakeEmails struct {
	err  error
	reqs []*resend.SendEmailRequest
}

func (f *fakeEmails) SendWithContext(_ context.Context, req *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return &resend.SendEmailResponse{Id: "email_123"}, nil
}

func newTestSender(api *fakeEmails) *Sender {
	return &Sender{
		emails: api,
		config: Config{SenderEmail: "onboarding@resend.dev", SenderName: "Portofolio"},
	}
}

func TestSender_Send_MapsEmail(t *testing.T) {
	t.Parallel()

	api := &fakeEmails{}
	s := newTestSender(api)

	err := s.Send(context.Background(), &mailer.Email{
		To:      []string{"owner@example.com"},
		ReplyTo: "visitor@example.com",
		Subject: "Kontak Portofolio: Halo",
		HTML:    "<p>hi</p>",
		Text:    "hi",
		Headers: map[string]string{"X-Entity-Ref-ID": "req-1"},
		Tags:    mailer.Tags{"source": "contact-form"},
	})
	require.NoError(t, err)
	require.Len(t, api.reqs, 1)

	req := api.reqs[0]
	assert.Equal(t, "Portofolio <onboarding@resend.dev>", req.From)
	assert.Equal(t, []string{"owner@example.com"}, req.To)
	assert.Equal(t, "visitor@example.com", req.ReplyTo)
	assert.Equal(t, "Kontak Portofolio: Halo", req.Subject)
	assert.Equal(t, "<p>hi</p>", req.Html)
	assert.Equal(t, "hi", req.Text)
	assert.Equal(t, "req-1", req.Headers["X-Entity-Ref-ID"])
	require.Len(t, req.Tags, 1)
	assert.Equal(t, resend.Tag{Name: "source", Value: "contact-form"}, req.Tags[0])
}

func TestSender_Send_FromOverride(t *testing.T) {
	t.Parallel()

	api := &fakeEmails{}
	s := newTestSender(api)

	err := s.Send(context.Background(), &mailer.Email{
		To:   []string{"owner@example.com"},
		From: "Other <other@example.com>",
	})
	require.NoError(t, err)
	assert.Equal(t, "Other <other@example.com>", api.reqs[0].From)
}

func TestSender_Send_ProviderError(t *testing.T) {
	t.Parallel()

	api := &fakeEmails{err: errors.New("[ERROR]: invalid recipient")}
	s := newTestSender(api)

	err := s.Send(context.Background(), &mailer.Email{To: []string{"x@example.com"}})
	require.Error(t, err)

	pe, ok := mailer.AsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, "resend", pe.Provider)
	assert.Equal(t, "invalid recipient", pe.Message)
}

func TestSender_Send_TransportError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{
			name: "network failure",
			err:  &url.Error{Op: "Post", URL: "https://api.resend.com/emails", Err: errors.New("connection refused")},
		},
		{
			name: "context canceled",
			err:  context.Canceled,
		},
		{
			name: "deadline exceeded",
			err:  context.DeadlineExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestSender(&fakeEmails{err: tt.err})
			err := s.Send(context.Background(), &mailer.Email{To: []string{"x@example.com"}})
			require.Error(t, err)
			assert.False(t, mailer.IsProviderError(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

// apiSender points a real SDK client at handler.
func apiSender(t *testing.T, handler http.HandlerFunc) *Sender {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := resend.NewClient("re_" + "123456789012345678901234567890123456")
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	client.BaseURL = base

	return newWithClient(client, Config{SenderEmail: "onboarding@resend.dev"})
}

func TestSender_Send_API(t *testing.T) {
	t.Parallel()

	email := &mailer.Email{To: []string{"owner@example.com"}, Subject: "Halo", Text: "hi"}

	t.Run("accepted", func(t *testing.T) {
		t.Parallel()

		s := apiSender(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/emails", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"email_123"}`))
		})

		require.NoError(t, s.Send(context.Background(), email))
	})

	t.Run("validation error is a provider error", func(t *testing.T) {
		t.Parallel()

		s := apiSender(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"Invalid ` + "`to`" + ` field."}`))
		})

		err := s.Send(context.Background(), email)
		pe, ok := mailer.AsProviderError(err)
		require.True(t, ok)
		assert.Equal(t, "Invalid `to` field.", pe.Message)
	})

	t.Run("rate limit keeps the api message and metadata", func(t *testing.T) {
		t.Parallel()

		s := apiSender(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("retry-after", "2")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"statusCode":429,"name":"rate_limit_exceeded","message":"Too many requests"}`))
		})

		err := s.Send(context.Background(), email)
		pe, ok := mailer.AsProviderError(err)
		require.True(t, ok)
		assert.Equal(t, "Too many requests", pe.Message)
		assert.ErrorIs(t, err, resend.ErrRateLimit)

		var rateErr *resend.RateLimitError
		require.ErrorAs(t, err, &rateErr)
		assert.Equal(t, "2", rateErr.RetryAfter)
	})

	t.Run("undecodable success is not a provider error", func(t *testing.T) {
		t.Parallel()

		s := apiSender(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html>proxy</html>`))
		})

		err := s.Send(context.Background(), email)
		require.Error(t, err)
		assert.False(t, mailer.IsProviderError(err))
	})

	t.Run("unreachable server is not a provider error", func(t *testing.T) {
		t.Parallel()

		client := resend.NewClient("re_x")
		base, err := url.Parse("http://127.0.0.1:1/")
		require.NoError(t, err)
		client.BaseURL = base

		err = newWithClient(client, Config{}).Send(context.Background(), email)
		require.Error(t, err)
		assert.False(t, mailer.IsProviderError(err))
	})
}

func TestProviderError(t *testing.T) {
	t.Parallel()

	assert.Nil(t, providerError(errors.New("invalid character '<' looking for beginning of value")))
	assert.Nil(t, providerError(resend.ErrFailedToCreateEmailsSendRequest))

	pe := providerError(errors.New("[ERROR]: 500 Internal Server Error"))
	require.NotNil(t, pe)
	assert.Equal(t, "500 Internal Server Error", pe.Message)
}

func TestTagValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "true", tagValue(struct{}{}))
	assert.Equal(t, "true", tagValue(nil))
	assert.Equal(t, "contact", tagValue("contact"))
	assert.Equal(t, "false", tagValue(false))
	assert.Equal(t, "42", tagValue(42))
	assert.Equal(t, "1.5", tagValue(1.5))
}
