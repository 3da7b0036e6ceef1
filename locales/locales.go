// Package locales embeds the translation catalogues served by the site.
package locales

import "embed"

// FS holds {lang}/{namespace}.yaml translation files.
//
//go:embed id/*.yaml en/*.yaml
var FS embed.FS
