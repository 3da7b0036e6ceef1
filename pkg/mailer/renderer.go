package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown templates with YAML frontmatter to HTML.
// Parsed templates and layouts are cached; rendered output is not.
type Renderer struct {
	fs fs.FS
	md goldmark.Markdown

	templateCache map[string]*cachedTemplate
	layoutCache   map[string]*template.Template
	sanitize      func(string) string
	templateDir   string
	layoutDir     string

	mu sync.RWMutex
}

type cachedTemplate struct {
	metadata map[string]any
	tmpl     *texttemplate.Template
	text     *texttemplate.Template // nil without a .txt companion
}

// RendererConfig configures the renderer.
type RendererConfig struct {
	// Sanitize filters the HTML converted from markdown before it enters
	// the layout. Optional.
	Sanitize    func(string) string
	TemplateDir string // Default: "."
	LayoutDir   string // Default: "layouts"
}

// templateFuncs are available in markdown templates.
var templateFuncs = texttemplate.FuncMap{
	"md": EscapeMarkdown,
}

// NewRenderer creates a new renderer with default config.
func NewRenderer(filesystem fs.FS) *Renderer {
	return NewRendererWithConfig(filesystem, RendererConfig{})
}

// NewRendererWithConfig creates a new renderer with custom config.
// Line breaks in the markdown body are kept as <br> so free-form text such as
// a visitor's message keeps its shape.
func NewRendererWithConfig(filesystem fs.FS, opts RendererConfig) *Renderer {
	if opts.TemplateDir == "" {
		opts.TemplateDir = "."
	}
	if opts.LayoutDir == "" {
		opts.LayoutDir = "layouts"
	}

	return &Renderer{
		fs:          filesystem,
		sanitize:    opts.Sanitize,
		templateDir: opts.TemplateDir,
		layoutDir:   opts.LayoutDir,
		md: goldmark.New(
			goldmark.WithExtensions(NewActionExtension()),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		templateCache: make(map[string]*cachedTemplate),
		layoutCache:   make(map[string]*template.Template),
	}
}

// RenderResult contains the rendered HTML, plain text, and extracted metadata.
type RenderResult struct {
	Metadata map[string]any
	HTML     string
	// Text is the companion .txt template when one exists next to the
	// markdown template, otherwise the processed markdown.
	Text string
}

// Render executes templateName with data, converts it to HTML and wraps it in
// the layout. The layout receives Content, Metadata and the original Data.
// A "name.txt" next to "name.md" is executed with the same data for the
// plain-text body; its output is not escaped or converted.
func (r *Renderer) Render(layout, templateName string, data any) (*RenderResult, error) {
	cached, err := r.template(templateName)
	if err != nil {
		return nil, err
	}

	var markdown bytes.Buffer
	if err := cached.tmpl.Execute(&markdown, data); err != nil {
		return nil, fmt.Errorf("%w: execute template %s: %v", ErrRenderFailed, templateName, err)
	}

	var content bytes.Buffer
	if err := r.md.Convert(markdown.Bytes(), &content); err != nil {
		return nil, fmt.Errorf("%w: convert markdown: %v", ErrRenderFailed, err)
	}

	body := content.String()
	if r.sanitize != nil {
		body = r.sanitize(body)
	}

	text := markdown.String()
	if cached.text != nil {
		var buf bytes.Buffer
		if err := cached.text.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("%w: execute text template for %s: %v", ErrRenderFailed, templateName, err)
		}
		text = buf.String()
	}

	layoutTmpl, err := r.layout(layout)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	err = layoutTmpl.Execute(&out, map[string]any{
		"Content":  template.HTML(body), //nolint:gosec // produced by goldmark, raw HTML disabled
		"Metadata": cached.metadata,
		"Data":     data,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: execute layout %s: %v", ErrRenderFailed, layout, err)
	}

	return &RenderResult{
		HTML:     out.String(),
		Text:     text,
		Metadata: cached.metadata,
	}, nil
}

func (r *Renderer) template(name string) (*cachedTemplate, error) {
	r.mu.RLock()
	cached, ok := r.templateCache[name]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.templateCache[name]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.templateDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}

	parsed, err := ParseTemplate(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRenderFailed, name, err)
	}

	tmpl, err := texttemplate.New(name).Funcs(templateFuncs).Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse template body: %v", ErrRenderFailed, err)
	}

	text, err := r.textTemplate(name)
	if err != nil {
		return nil, err
	}

	cached = &cachedTemplate{metadata: parsed.Metadata, tmpl: tmpl, text: text}
	r.templateCache[name] = cached
	return cached, nil
}

// textTemplate parses the optional plain-text companion of name.
// Callers hold r.mu.
func (r *Renderer) textTemplate(name string) (*texttemplate.Template, error) {
	textName := strings.TrimSuffix(name, path.Ext(name)) + ".txt"
	content, err := fs.ReadFile(r.fs, path.Join(r.templateDir, textName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, textName, err)
	}

	tmpl, err := texttemplate.New(textName).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: parse text template: %v", ErrRenderFailed, err)
	}
	return tmpl, nil
}

func (r *Renderer) layout(name string) (*template.Template, error) {
	r.mu.RLock()
	cached, ok := r.layoutCache[name]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.layoutCache[name]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.layoutDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}

	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: parse layout: %v", ErrRenderFailed, err)
	}

	r.layoutCache[name] = tmpl
	return tmpl, nil
}
