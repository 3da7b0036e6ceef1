package contact

import (
	"mime"
	"net/http"

	"github.com/yudhaa/portfolio/internal/server"
	"github.com/yudhaa/portfolio/internal/views"
	"github.com/yudhaa/portfolio/pkg/htmx"
	"github.com/yudhaa/portfolio/pkg/i18n"
	"github.com/yudhaa/portfolio/pkg/metrics"
)

// SentEvent is triggered on the client after a delivered submission so the
// page can reset the form.
const SentEvent = "contact:sent"

// Handler serves the contact page and accepts submissions.
type Handler struct {
	service *Service
}

// NewHandler creates a Handler for svc.
func NewHandler(svc *Service) *Handler {
	return &Handler{service: svc}
}

// Routes implements server.Handler.
func (h *Handler) Routes(r server.Router) {
	r.GET("/", h.page)
	r.POST("/contact", h.submit)
}

func (h *Handler) page(c server.Context) error {
	return c.Render(http.StatusOK, views.ContactPage(h.pageData(c, nil, views.Form{})))
}

// submit answers with JSON when asked for it, with the status fragment for
// HTMX and with the whole page otherwise.
func (h *Handler) submit(c server.Context) error {
	req, err := h.bind(c)
	if err != nil {
		return err
	}

	res := h.service.Submit(c, c.Language(), req)

	if c.WantsJSON() {
		return c.JSON(statusCode(res), res)
	}

	status := views.Status{Message: res.Message, MailtoLink: res.MailtoLink, Success: res.Success}

	var opts []htmx.RenderOption
	form := views.Form(req)
	if res.Outcome == metrics.OutcomeDelivered {
		opts = append(opts, htmx.WithTrigger(SentEvent))
		form = views.Form{}
	}

	return c.RenderPartial(statusCode(res),
		views.ContactPage(h.pageData(c, &status, form)),
		views.ContactStatus(status, h.translator(c)),
		opts...,
	)
}

func (h *Handler) bind(c server.Context) (Request, error) {
	if c.IsJSON() {
		var req Request
		if err := c.BindJSON(&req); err != nil {
			return Request{}, server.ErrBadRequest("invalid JSON body",
				server.WithError(err),
				server.WithErrorCode("invalid_json"),
			)
		}
		return req, nil
	}

	mt, _, err := mime.ParseMediaType(c.Header("Content-Type"))
	if err != nil || (mt != "application/x-www-form-urlencoded" && mt != "multipart/form-data") {
		return Request{}, server.ErrUnsupportedMediaType("expected form or JSON body",
			server.WithErrorCode("unsupported_media_type"),
		)
	}

	return Request{
		Name:    c.Form("name"),
		Email:   c.Form("email"),
		Subject: c.Form("subject"),
		Message: c.Form("message"),
	}, nil
}

func (h *Handler) translator(c server.Context) *i18n.Translator {
	return i18n.NewTranslator(h.service.catalogue, c.Language(), Namespace)
}

func (h *Handler) pageData(c server.Context, status *views.Status, form views.Form) views.PageData {
	return views.PageData{
		Translator:    h.translator(c),
		Status:        status,
		Form:          form,
		OperatorEmail: h.service.config.OperatorEmail,
		Languages:     h.service.catalogue.Languages(),
	}
}

func statusCode(res Result) int {
	switch res.Outcome {
	case metrics.OutcomeInvalidInput:
		return http.StatusUnprocessableEntity
	case metrics.OutcomeNotConfigured:
		return http.StatusServiceUnavailable
	case metrics.OutcomeProviderError:
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}
