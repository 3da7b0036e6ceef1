// Package i18n holds translated user-facing messages.
//
// Translations are keyed by language, namespace and a dotted key path, and
// are usually loaded from YAML files laid out as {lang}/{namespace}.yaml:
//
//	svc, err := i18n.New(
//		i18n.WithDefaultLanguage("id"),
//		i18n.WithYAMLDir(locales.FS),
//	)
//
//	svc.T("en", "contact", "result.delivered")
//
// Lookups fall back from the exact language to its base language (en-US to
// en), then to the default language, and finally return the key itself.
// Placeholders use the {{name}} form.
//
// Match picks the best supported language for an Accept-Language header.
package i18n
