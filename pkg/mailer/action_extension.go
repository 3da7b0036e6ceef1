package mailer

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// actionPrefix opens the action link syntax: [!action|Label](target).
const actionPrefix = "[!action|"

// actionStyle is inlined because most mail clients drop <style> blocks.
const actionStyle = "display:inline-block;padding:10px 18px;background:#9333ea;color:#ffffff;" +
	"border-radius:6px;text-decoration:none;font-weight:600;"

var allowedActionSchemes = [][]byte{
	[]byte("https://"),
	[]byte("http://"),
	[]byte("mailto:"),
}

// KindAction is the node kind for ActionNode.
var KindAction = ast.NewNodeKind("Action")

// ActionNode is a call-to-action link in the markdown AST.
type ActionNode struct {
	ast.BaseInline
	Target []byte
	Label  []byte
}

func (n *ActionNode) Kind() ast.NodeKind {
	return KindAction
}

func (n *ActionNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Target": string(n.Target),
		"Label":  string(n.Label),
	}, nil)
}

// Safe reports whether the target uses an allowed scheme.
func (n *ActionNode) Safe() bool {
	lower := bytes.ToLower(n.Target)
	for _, scheme := range allowedActionSchemes {
		if bytes.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}

type actionParser struct{}

func (p *actionParser) Trigger() []byte {
	return []byte{'['}
}

func (p *actionParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if !bytes.HasPrefix(line, []byte(actionPrefix)) {
		return nil
	}

	rest := line[len(actionPrefix):]
	labelEnd := bytes.IndexByte(rest, ']')
	if labelEnd == -1 || labelEnd+1 >= len(rest) || rest[labelEnd+1] != '(' {
		return nil
	}

	target := rest[labelEnd+2:]
	targetEnd := bytes.IndexByte(target, ')')
	if targetEnd == -1 {
		return nil
	}

	block.Advance(len(actionPrefix) + labelEnd + 2 + targetEnd + 1)

	return &ActionNode{
		Label:  rest[:labelEnd],
		Target: bytes.TrimSpace(target[:targetEnd]),
	}
}

type actionRenderer struct {
	html.Config
}

func (r *actionRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindAction, r.render)
}

func (r *actionRenderer) render(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*ActionNode)
	if !n.Safe() {
		_, _ = w.Write(util.EscapeHTML(n.Label))
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Target, false)))
	_, _ = w.WriteString(`" style="` + actionStyle + `">`)
	_, _ = w.Write(util.EscapeHTML(n.Label))
	_, _ = w.WriteString(`</a>`)

	return ast.WalkContinue, nil
}

type actionExtension struct{}

func (e *actionExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&actionParser{}, 50),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&actionRenderer{Config: html.NewConfig()}, 50),
	))
}

// NewActionExtension returns the goldmark extension for action links.
func NewActionExtension() goldmark.Extender {
	return &actionExtension{}
}
