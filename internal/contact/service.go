package contact

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yudhaa/portfolio/middlewares"
	"github.com/yudhaa/portfolio/pkg/i18n"
	"github.com/yudhaa/portfolio/pkg/logger"
	"github.com/yudhaa/portfolio/pkg/mailer"
	"github.com/yudhaa/portfolio/pkg/mailer/resend"
	"github.com/yudhaa/portfolio/pkg/metrics"
)

// Deliverer sends a templated email. *mailer.Mailer implements it.
type Deliverer interface {
	Send(ctx context.Context, params mailer.SendParams) error
}

// Service validates contact submissions and delivers them.
type Service struct {
	deliverer Deliverer
	catalogue *i18n.I18n
	logger    *slog.Logger
	metrics   *metrics.ContactMetrics
	apiKey    string
	config    Config
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records submission outcomes and send latency.
func WithMetrics(m *metrics.ContactMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New creates a Service. apiKey is the Resend key the deliverer was built
// with; it is checked on every submission and never logged in full.
// Panics if catalogue is nil.
func New(apiKey string, deliverer Deliverer, catalogue *i18n.I18n, cfg Config, opts ...Option) *Service {
	if catalogue == nil {
		panic("contact: nil i18n catalogue")
	}

	s := &Service{
		deliverer: deliverer,
		catalogue: catalogue,
		logger:    logger.NewNope(),
		apiKey:    apiKey,
		config:    cfg.withDefaults(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the effective configuration.
func (s *Service) Config() Config {
	return s.config
}

// Submit validates req and, when valid, sends it to the operator. Messages
// in the Result are in lang, falling back to the default language.
func (s *Service) Submit(ctx context.Context, lang string, req Request) Result {
	t := func(key string, placeholders ...i18n.M) string {
		return s.catalogue.T(lang, Namespace, key, placeholders...)
	}

	if !resend.ValidAPIKey(s.apiKey) {
		s.logger.WarnContext(ctx, "contact: resend api key missing or malformed",
			slog.Bool("key_present", s.apiKey != ""),
			slog.String("key_prefix", resend.MaskAPIKey(s.apiKey)),
		)
		return s.finish(Result{Outcome: metrics.OutcomeNotConfigured, Message: t("result.not_configured")})
	}

	if !req.Complete() {
		return s.finish(Result{Outcome: metrics.OutcomeInvalidInput, Message: t("result.missing_fields")})
	}
	if !ValidEmail(req.Email) {
		return s.finish(Result{Outcome: metrics.OutcomeInvalidInput, Message: t("result.invalid_email")})
	}

	start := time.Now()
	err := s.deliver(ctx, req)

	var res Result
	switch pe, isProvider := mailer.AsProviderError(err); {
	case err == nil:
		s.logger.InfoContext(ctx, "contact: message delivered")
		res = Result{Outcome: metrics.OutcomeDelivered, Success: true, Message: t("result.delivered")}

	case isProvider:
		reason := pe.Message
		if reason == "" {
			reason = t("result.unknown_error")
		}
		s.logger.ErrorContext(ctx, "contact: provider rejected message",
			slog.String("provider", pe.Provider),
			slog.String("reason", pe.Message),
			slog.Any("error", err),
		)
		res = Result{
			Outcome: metrics.OutcomeProviderError,
			Message: t("result.delivery_failed", i18n.M{"error": reason}),
		}

	default:
		s.logger.ErrorContext(ctx, "contact: delivery fault, offering mailto link",
			slog.Any("error", err),
		)
		res = Result{
			Outcome:    metrics.OutcomeFallback,
			Success:    true,
			Message:    t("result.fallback"),
			MailtoLink: MailtoLink(s.config.OperatorEmail, s.config.SubjectPrefix, req),
		}
	}

	s.metrics.ObserveSend(res.Outcome, time.Since(start).Seconds())
	return s.finish(res)
}

// Healthcheck fails when submissions would be answered with
// "service not configured".
func (s *Service) Healthcheck(context.Context) error {
	if !resend.ValidAPIKey(s.apiKey) {
		return ErrNotConfigured
	}
	return nil
}

// deliver sends once. A panic from the deliverer is returned as an error.
func (s *Service) deliver(ctx context.Context, req Request) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errDeliveryPanic, r)
		}
	}()
	return s.deliverer.Send(ctx, s.sendParams(ctx, req))
}

func (s *Service) sendParams(ctx context.Context, req Request) mailer.SendParams {
	params := mailer.SendParams{
		To:       s.config.OperatorEmail,
		ReplyTo:  req.Email,
		Template: emailTemplate,
		Layout:   emailLayout,
		Data:     newEmailData(req, s.config.SubjectPrefix),
		Tags:     mailer.Tags{"source": "contact-form"},
	}
	if id := middlewares.GetRequestID(ctx); id != "" {
		params.Headers = map[string]string{"X-Entity-Ref-ID": id}
	}
	return params
}

func (s *Service) finish(res Result) Result {
	s.metrics.ObserveSubmission(res.Outcome)
	return res
}
