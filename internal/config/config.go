// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/yudhaa/portfolio/internal/contact"
	"github.com/yudhaa/portfolio/pkg/logger"
	"github.com/yudhaa/portfolio/pkg/mailer"
	"github.com/yudhaa/portfolio/pkg/mailer/resend"
)

// ErrInvalid wraps every configuration error.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete service configuration.
type Config struct {
	Address         string        `env:"ADDRESS" envDefault:":8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	DefaultLanguage string        `env:"DEFAULT_LANGUAGE" envDefault:"id"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	MetricsEnabled  bool          `env:"METRICS_ENABLED" envDefault:"true"`

	Resend  resend.Config
	Contact contact.Config
	Mailer  mailer.Config
	Sentry  logger.SentryConfig
}

// Level returns LogLevel as a slog.Level.
func (c *Config) Level() slog.Level {
	return logger.ParseLevel(c.LogLevel)
}

// Load reads the given dotenv files, or ".env" when none are given, and
// parses the environment. A missing default ".env" is not an error.
// Variables already set in the environment win over dotenv values.
//
// A malformed RESEND_API_KEY is not an error here: the contact service
// reports itself as not configured instead.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: load .env: %w", ErrInvalid, err)
		}
	} else if err := godotenv.Load(files...); err != nil {
		return nil, fmt.Errorf("%w: load dotenv: %w", ErrInvalid, err)
	}

	return parse(env.Options{})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Address == "" {
		errs = append(errs, errors.New("ADDRESS must not be empty"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}
	if c.DefaultLanguage == "" {
		errs = append(errs, errors.New("DEFAULT_LANGUAGE must not be empty"))
	}
	if !contact.ValidEmail(c.Contact.OperatorEmail) {
		errs = append(errs, fmt.Errorf("CONTACT_OPERATOR_EMAIL %q is not an email address", c.Contact.OperatorEmail))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}
