package i18n

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLang is used when no default language is configured.
const DefaultLang = "en"

// I18n is an immutable translation catalogue, safe for concurrent use.
type I18n struct {
	// Flattened translations, keyed "lang:namespace:key.path".
	translations map[string]string

	// Called when a key is missing in every fallback language.
	missingKeyHandler func(lang, namespace, key string)

	matcher     language.Matcher
	defaultLang string
	languages   []string
}

// Option configures the I18n instance during construction.
type Option func(*I18n) error

// New creates a catalogue from the given options.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		translations: make(map[string]string),
		defaultLang:  DefaultLang,
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	i.languages = i.buildLanguagesList()

	tags := make([]language.Tag, 0, len(i.languages))
	for _, lang := range i.languages {
		tags = append(tags, language.Make(lang))
	}
	i.matcher = language.NewMatcher(tags)

	return i, nil
}

// WithDefaultLanguage sets the fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.defaultLang = lang
		return nil
	}
}

// WithTranslations loads a (possibly nested) map of translations for one
// language and namespace.
func WithTranslations(lang, namespace string, translations map[string]any) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if namespace == "" {
			return ErrEmptyNamespace
		}
		i.add(lang, namespace, translations)
		return nil
	}
}

// WithMissingKeyHandler sets a callback for keys missing in every language.
func WithMissingKeyHandler(handler func(lang, namespace, key string)) Option {
	return func(i *I18n) error {
		i.missingKeyHandler = handler
		return nil
	}
}

// T returns the translation for key, replacing placeholders.
// Falls back to the base language, then the default language, then the key.
func (i *I18n) T(lang, namespace, key string, placeholders ...M) string {
	for _, candidate := range i.fallbackChain(lang) {
		if translation, ok := i.translations[buildKey(candidate, namespace, key)]; ok {
			return ReplacePlaceholders(translation, merge(placeholders))
		}
	}

	if i.missingKeyHandler != nil {
		i.missingKeyHandler(lang, namespace, key)
	}
	return key
}

// Match returns the supported language that best fits an Accept-Language
// header value. Returns the default language when nothing matches.
func (i *I18n) Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return i.defaultLang
	}

	_, idx, confidence := i.matcher.Match(tags...)
	if confidence == language.No {
		return i.defaultLang
	}
	return i.languages[idx]
}

// Supports reports whether lang (or its base language) has a catalogue.
func (i *I18n) Supports(lang string) bool {
	return slices.Contains(i.languages, lang) || slices.Contains(i.languages, baseLanguage(lang))
}

// Languages returns the available languages, default language first.
func (i *I18n) Languages() []string {
	return slices.Clone(i.languages)
}

// DefaultLanguage returns the fallback language.
func (i *I18n) DefaultLanguage() string {
	return i.defaultLang
}

func (i *I18n) add(lang, namespace string, translations map[string]any) {
	for key, value := range flattenTranslations(translations, "") {
		i.translations[buildKey(lang, namespace, key)] = value
	}
	if !slices.Contains(i.languages, lang) {
		i.languages = append(i.languages, lang)
	}
}

func (i *I18n) fallbackChain(lang string) []string {
	chain := []string{lang}
	if base := baseLanguage(lang); base != lang {
		chain = append(chain, base)
	}
	if !slices.Contains(chain, i.defaultLang) {
		chain = append(chain, i.defaultLang)
	}
	return chain
}

// buildLanguagesList puts the default language first and sorts the rest.
func (i *I18n) buildLanguagesList() []string {
	others := make([]string, 0, len(i.languages))
	for _, lang := range i.languages {
		if lang != i.defaultLang {
			others = append(others, lang)
		}
	}
	slices.Sort(others)
	return append([]string{i.defaultLang}, others...)
}

func buildKey(lang, namespace, key string) string {
	return lang + ":" + namespace + ":" + key
}

func flattenTranslations(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)

	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			maps.Copy(result, flattenTranslations(v, fullKey))
		case map[string]string:
			for subKey, subVal := range v {
				result[fullKey+"."+subKey] = subVal
			}
		default:
			result[fullKey] = fmt.Sprintf("%v", v)
		}
	}

	return result
}

func merge(placeholders []M) M {
	switch len(placeholders) {
	case 0:
		return nil
	case 1:
		return placeholders[0]
	}
	merged := make(M)
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}
	return merged
}

// baseLanguage strips the region from a language tag ("en-US" to "en").
func baseLanguage(lang string) string {
	if i := strings.IndexByte(lang, '-'); i > 0 {
		return lang[:i]
	}
	return lang
}
