package middlewares

import (
	"github.com/yudhaa/portfolio/internal/server"
	"github.com/yudhaa/portfolio/pkg/i18n"
)

// LanguageCookie remembers an explicitly chosen language.
const LanguageCookie = "lang"

const languageCookieMaxAge = 365 * 24 * 60 * 60

type i18nConfig struct {
	namespace    string
	extractor    server.Extractor
	extractorSet bool
}

// I18nOption configures I18n.
type I18nOption func(*i18nConfig)

// WithI18nNamespace sets the translator namespace.
func WithI18nNamespace(ns string) I18nOption {
	return func(cfg *i18nConfig) {
		cfg.namespace = ns
	}
}

// WithI18nExtractor replaces the cookie and query lookup chain.
// Accept-Language matching always runs after it.
func WithI18nExtractor(ext server.Extractor) I18nOption {
	return func(cfg *i18nConfig) {
		cfg.extractor = ext
		cfg.extractorSet = true
	}
}

// I18n resolves the request language and stores a Translator under
// server.TranslatorKey and the language under server.LanguageKey.
func I18n(svc *i18n.I18n, opts ...I18nOption) server.Middleware {
	cfg := &i18nConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if !cfg.extractorSet {
		cfg.extractor = server.NewExtractor(
			server.FromQuery(LanguageCookie),
			server.FromCookie(LanguageCookie),
		)
	}

	return func(next server.HandlerFunc) server.HandlerFunc {
		return func(c server.Context) error {
			lang, ok := cfg.extractor.Extract(c)
			if !ok || !svc.Supports(lang) {
				lang = svc.Match(c.Header("Accept-Language"))
			} else if c.Query(LanguageCookie) == lang {
				c.SetCookie(LanguageCookie, lang, languageCookieMaxAge)
			}

			c.Set(server.TranslatorKey{}, i18n.NewTranslator(svc, lang, cfg.namespace))
			c.Set(server.LanguageKey{}, lang)

			return next(c)
		}
	}
}
