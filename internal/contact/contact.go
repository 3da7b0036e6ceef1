package contact

import (
	"errors"
	"regexp"
	"strings"

	"github.com/yudhaa/portfolio/pkg/metrics"
)

// Namespace is the i18n namespace holding the contact messages.
const Namespace = "contact"

const (
	// DefaultOperatorEmail receives every submission.
	DefaultOperatorEmail = "yudhaa.belajar@gmail.com"
	// DefaultSubjectPrefix is put in front of the visitor's subject.
	DefaultSubjectPrefix = "Kontak Portofolio: "
)

// ErrNotConfigured is reported by Healthcheck when the API key is missing or
// malformed.
var ErrNotConfigured = errors.New("contact: resend api key missing or malformed")

// errDeliveryPanic wraps a panic raised while delivering.
var errDeliveryPanic = errors.New("contact: panic during delivery")

// emailPattern rejects any Unicode space, vertical tab or BOM, not only
// ASCII whitespace.
var emailPattern = regexp.MustCompile(`^[^\s\p{Z}\v\x{FEFF}@]+@[^\s\p{Z}\v\x{FEFF}@]+\.[^\s\p{Z}\v\x{FEFF}@]+$`)

// Config holds the addressing of outgoing contact emails.
type Config struct {
	OperatorEmail string `env:"CONTACT_OPERATOR_EMAIL" envDefault:"yudhaa.belajar@gmail.com"`
	SubjectPrefix string `env:"CONTACT_SUBJECT_PREFIX" envDefault:"Kontak Portofolio: "`
}

func (c Config) withDefaults() Config {
	if c.OperatorEmail == "" {
		c.OperatorEmail = DefaultOperatorEmail
	}
	if c.SubjectPrefix == "" {
		c.SubjectPrefix = DefaultSubjectPrefix
	}
	return c
}

// Request is a form submission. Values are delivered exactly as submitted.
type Request struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Complete reports whether no field is empty. Whitespace alone counts as
// empty.
func (r Request) Complete() bool {
	for _, v := range []string{r.Name, r.Email, r.Subject, r.Message} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// ValidEmail reports whether s has the shape local@domain.tld without
// whitespace or a second "@".
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Result is the outcome of a submission.
type Result struct {
	Message    string `json:"message"`
	MailtoLink string `json:"mailtoLink,omitempty"`
	// Outcome is one of the metrics.Outcome* values.
	Outcome string `json:"-"`
	Success bool   `json:"success"`
}

// Fallback reports whether the result offers a mailto link instead of a
// delivered message.
func (r Result) Fallback() bool {
	return r.Outcome == metrics.OutcomeFallback
}
