// Package views renders the contact page and its status fragment.
package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/yudhaa/portfolio/pkg/i18n"
)

// StatusTarget is the element id the HTMX form swaps the status into.
const StatusTarget = "contact-status"

// Status is the outcome shown under the form.
type Status struct {
	Message    string
	MailtoLink string
	Success    bool
}

// Form holds the values echoed back into the form after a failed submit.
type Form struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// PageData is everything ContactPage needs.
type PageData struct {
	Translator    *i18n.Translator
	Status        *Status
	Form          Form
	OperatorEmail string
	Languages     []string
}

// ContactPage renders the full contact page.
func ContactPage(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t := data.Translator.T
		p := &printer{w: w}

		p.raw(`<!DOCTYPE html><html lang="`)
		p.text(data.Translator.Language())
		p.raw(`"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		p.text(t("page.title"))
		p.raw(`</title><script src="https://unpkg.com/htmx.org@2.0.4" defer></script>`)
		p.raw(`<script>document.addEventListener("contact:sent",function(){var f=document.getElementById("contact-form");if(f){f.reset()}})</script>`)
		p.raw(`</head><body><main><section id="contact"><header><h2>`)
		p.text(t("page.title"))
		p.raw(`</h2><p>`)
		p.text(t("page.lead"))
		p.raw(`</p><p><strong>`)
		p.text(t("page.email_label"))
		p.raw(`</strong> <a href="`)
		p.text(string(templ.URL("mailto:" + data.OperatorEmail)))
		p.raw(`">`)
		p.text(data.OperatorEmail)
		p.raw(`</a></p>`)
		if len(data.Languages) > 1 {
			p.raw(`<nav class="languages">`)
			for _, lang := range data.Languages {
				p.raw(`<a href="/?lang=`)
				p.text(lang)
				p.raw(`">`)
				p.text(strings.ToUpper(lang))
				p.raw(`</a> `)
			}
			p.raw(`</nav>`)
		}
		p.raw(`</header>`)

		if err := contactForm(data).Render(ctx, w); err != nil {
			return err
		}

		p.raw(`</section></main></body></html>`)
		return p.err
	})
}

func contactForm(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t := data.Translator.T
		p := &printer{w: w}

		p.raw(`<div class="contact-card"><h3>`)
		p.text(t("form.heading"))
		p.raw(`</h3><form id="contact-form" method="post" action="/contact" hx-post="/contact" hx-target="#` + StatusTarget + `" hx-swap="innerHTML" hx-disabled-elt="button">`)
		input(p, "name", "text", t("form.name"), t("form.name_placeholder"), data.Form.Name)
		input(p, "email", "email", t("form.email"), t("form.email_placeholder"), data.Form.Email)
		input(p, "subject", "text", t("form.subject"), t("form.subject_placeholder"), data.Form.Subject)

		p.raw(`<label for="message">`)
		p.text(t("form.message"))
		p.raw(` *</label><textarea id="message" name="message" required placeholder="`)
		p.text(t("form.message_placeholder"))
		p.raw(`">`)
		p.text(data.Form.Message)
		p.raw(`</textarea><button type="submit" data-sending="`)
		p.text(t("form.sending"))
		p.raw(`">`)
		p.text(t("form.submit"))
		p.raw(`</button></form><div id="` + StatusTarget + `" aria-live="polite">`)
		if p.err != nil {
			return p.err
		}

		if data.Status != nil {
			if err := ContactStatus(*data.Status, data.Translator).Render(ctx, w); err != nil {
				return err
			}
		}

		p.raw(`</div></div>`)
		return p.err
	})
}

// ContactStatus renders the result of a submission. With a mailto link it
// also renders a button that opens the visitor's mail client.
func ContactStatus(s Status, tr *i18n.Translator) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &printer{w: w}

		class := "status status-error"
		if s.Success {
			class = "status status-success"
		}

		p.raw(`<div class="`)
		p.text(class)
		p.raw(`" role="status"><p>`)
		p.text(s.Message)
		p.raw(`</p>`)
		if s.MailtoLink != "" {
			p.raw(`<a class="mailto" href="`)
			p.text(string(templ.URL(s.MailtoLink)))
			p.raw(`">`)
			p.text(tr.T("form.open_mail_app"))
			p.raw(`</a>`)
		}
		p.raw(`</div>`)
		return p.err
	})
}

func input(p *printer, name, kind, label, placeholder, value string) {
	p.raw(`<label for="` + name + `">`)
	p.text(label)
	p.raw(` *</label><input id="` + name + `" name="` + name + `" type="` + kind + `" required placeholder="`)
	p.text(placeholder)
	p.raw(`" value="`)
	p.text(value)
	p.raw(`">`)
}

// printer writes markup, escaping text, and keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) raw(s string) {
	if p.err == nil {
		_, p.err = io.WriteString(p.w, s)
	}
}

func (p *printer) text(s string) {
	p.raw(templ.EscapeString(s))
}
