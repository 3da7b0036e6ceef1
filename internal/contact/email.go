package contact

import (
	"embed"
	"io/fs"
	"strings"

	"github.com/yudhaa/portfolio/pkg/mailer"
	"github.com/yudhaa/portfolio/pkg/sanitizer"
)

const (
	emailTemplate = "contact.md"
	emailLayout   = "base.html"
)

//go:embed templates
var templatesFS embed.FS

// Templates returns the email templates: emails/*.md and layouts/*.html.
func Templates() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// NewRenderer returns a mailer.Renderer over Templates. The rendered HTML
// body is passed through sanitizer.EmailHTML.
func NewRenderer() *mailer.Renderer {
	return mailer.NewRendererWithConfig(Templates(), mailer.RendererConfig{
		Sanitize:    sanitizer.EmailHTML,
		TemplateDir: "emails",
		LayoutDir:   "layouts",
	})
}

// emailData is passed to the contact email templates. Visitor values are
// raw; the markdown template escapes them with "md", the text template
// prints them as is.
type emailData struct {
	Name        string
	Email       string
	Subject     string
	Message     string
	SubjectLine string
	ReplyLink   string
}

func newEmailData(req Request, prefix string) emailData {
	return emailData{
		Name:        req.Name,
		Email:       req.Email,
		Subject:     req.Subject,
		Message:     req.Message,
		SubjectLine: prefix + req.Subject,
		ReplyLink:   "mailto:" + replyLinkEscaper.Replace(req.Email),
	}
}

// Parentheses would end the action link target early.
var replyLinkEscaper = strings.NewReplacer(
	"(", "%28",
	")", "%29",
	" ", "%20",
	"<", "%3C",
	">", "%3E",
)
