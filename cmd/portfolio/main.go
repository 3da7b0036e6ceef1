// Command portfolio serves the portfolio contact page and delivers contact
// form submissions through Resend.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yudhaa/portfolio/internal/config"
	"github.com/yudhaa/portfolio/internal/contact"
	"github.com/yudhaa/portfolio/internal/server"
	"github.com/yudhaa/portfolio/locales"
	"github.com/yudhaa/portfolio/middlewares"
	"github.com/yudhaa/portfolio/pkg/i18n"
	"github.com/yudhaa/portfolio/pkg/logger"
	"github.com/yudhaa/portfolio/pkg/mailer"
	"github.com/yudhaa/portfolio/pkg/mailer/resend"
	"github.com/yudhaa/portfolio/pkg/metrics"
)

const sentryFlushTimeout = 2 * time.Second

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, flush := logger.NewWithSentry(cfg.Sentry,
		logger.WithLevel(cfg.Level()),
		logger.WithExtractors(middlewares.RequestIDExtractor()),
	)
	defer flush(sentryFlushTimeout)

	catalogue, err := i18n.New(
		i18n.WithDefaultLanguage(cfg.DefaultLanguage),
		i18n.WithYAMLDir(locales.FS),
		i18n.WithMissingKeyHandler(func(lang, ns, key string) {
			log.Warn("missing translation", slog.String("lang", lang), slog.String("namespace", ns), slog.String("key", key))
		}),
	)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	m := mailer.New(resend.New(cfg.Resend), contact.NewRenderer(), cfg.Mailer)

	serviceOpts := []contact.Option{contact.WithLogger(log)}
	appOpts := []server.Option{
		server.WithLogger(log),
		server.WithMiddleware(
			middlewares.RequestID(),
			middlewares.RequestLogger("/health/live", "/health/ready", "/metrics"),
			middlewares.Recover(),
			middlewares.I18n(catalogue, middlewares.WithI18nNamespace(contact.Namespace)),
		),
	}

	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		serviceOpts = append(serviceOpts, contact.WithMetrics(metrics.NewContactMetrics(reg)))
		appOpts = append(appOpts, server.WithMount("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	svc := contact.New(cfg.Resend.APIKey, m, catalogue, cfg.Contact, serviceOpts...)
	if err := svc.Healthcheck(ctx); err != nil {
		log.Warn("contact form will answer 'not configured'",
			slog.String("key_prefix", resend.MaskAPIKey(cfg.Resend.APIKey)),
		)
	}

	appOpts = append(appOpts,
		server.WithHandlers(contact.NewHandler(svc)),
		server.WithHealthChecks(server.WithReadinessCheck("mailer", svc.Healthcheck)),
	)

	app := server.New(appOpts...)

	return app.Run(ctx, cfg.Address,
		server.ShutdownTimeout(cfg.ShutdownTimeout),
		server.ShutdownHook(func(context.Context) error {
			flush(sentryFlushTimeout)
			return nil
		}),
	)
}
