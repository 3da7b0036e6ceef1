package resend

import (
	"regexp"
	"strings"
)

// apiKeyPattern is the shape of a Resend API key: "re_" and 36 alphanumerics.
var apiKeyPattern = regexp.MustCompile(`^re_[A-Za-z0-9]{36}$`)

// maskedPrefixLen is how much of a key may appear in logs.
const maskedPrefixLen = 8

// ValidAPIKey reports whether key has the shape of a Resend API key.
// Surrounding whitespace is ignored.
func ValidAPIKey(key string) bool {
	return apiKeyPattern.MatchString(strings.TrimSpace(key))
}

// MaskAPIKey returns a log-safe rendering of key: at most the first eight
// characters followed by an ellipsis. An empty key renders as "".
func MaskAPIKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	runes := []rune(key)
	if len(runes) > maskedPrefixLen {
		runes = runes[:maskedPrefixLen]
	}
	return string(runes) + "…"
}
