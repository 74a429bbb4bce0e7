// Package markup converts a markdown body into a tree of render nodes.
//
// Rendering runs in two stages. The body is first parsed and emitted as HTML
// by goldmark, with raw inline markup kept verbatim; the HTML is then parsed
// into an element tree and walked depth-first. Every element is handed to the
// component registered for its tag, together with its attributes and its
// already rendered children. The registry is supplied by the caller; a tag
// without an entry fails the render with an UnknownComponentError.
package markup

import (
	"bytes"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	rerrors "github.com/elmarvr/resume-v2/internal/errors"
	"github.com/elmarvr/resume-v2/internal/node"
)

// Component constructs the render node for one element.
type Component func(attrs node.Attrs, children ...templ.Component) templ.Component

// Registry maps lowercase tag names to components.
type Registry map[string]Component

// Lookup returns the component for tag.
func (r Registry) Lookup(tag string) (Component, error) {
	c, ok := r[strings.ToLower(tag)]
	if !ok || c == nil {
		return nil, &rerrors.UnknownComponentError{Tag: tag}
	}
	return c, nil
}

// Renderer parses markdown bodies. It is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a renderer. Raw HTML in the body is passed through.
func NewRenderer(extensions ...goldmark.Extender) *Renderer {
	exts := append([]goldmark.Extender{extension.Strikethrough, extension.Linkify}, extensions...)

	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(exts...),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
	}
}

var defaultRenderer = NewRenderer()

// Render converts body with the default renderer.
func Render(body string, registry Registry) (templ.Component, error) {
	return defaultRenderer.Render(body, registry)
}

// Func binds registry to the default renderer, for use as a document
// loader's render function.
func Func(registry Registry) func(body string) (templ.Component, error) {
	return func(body string) (templ.Component, error) {
		return defaultRenderer.Render(body, registry)
	}
}

// Render converts body into a render node using registry.
func (r *Renderer) Render(body string, registry Registry) (templ.Component, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(body), &buf); err != nil {
		return nil, rerrors.Wrap(err, rerrors.ErrCodeDecodeFailed, "cannot parse markdown")
	}

	return renderHTML(buf.String(), bodyContext(), registry)
}

// FragmentOption configures RenderFragment.
type FragmentOption func(*html.Node)

// InSVG parses the fragment as the content of an svg element, so that
// self-closing shapes such as <path/> are siblings rather than nested.
func InSVG() FragmentOption {
	return func(n *html.Node) {
		n.Data = "svg"
		n.DataAtom = atom.Svg
		n.Namespace = "svg"
	}
}

// RenderFragment runs raw markup through the registry without a markdown
// pass. It is used for native markup such as icon bodies.
func RenderFragment(fragment string, registry Registry, opts ...FragmentOption) (templ.Component, error) {
	ctxNode := bodyContext()
	for _, opt := range opts {
		opt(ctxNode)
	}
	return renderHTML(fragment, ctxNode, registry)
}

func bodyContext() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
}

func renderHTML(src string, ctxNode *html.Node, registry Registry) (templ.Component, error) {
	nodes, err := html.ParseFragment(strings.NewReader(src), ctxNode)
	if err != nil {
		return nil, rerrors.Wrap(err, rerrors.ErrCodeDecodeFailed, "cannot parse markup")
	}

	children, err := walkAll(nodes, registry)
	if err != nil {
		return nil, err
	}

	return node.Fragment(children...), nil
}

func walkAll(nodes []*html.Node, registry Registry) ([]templ.Component, error) {
	out := make([]templ.Component, 0, len(nodes))
	for _, n := range nodes {
		c, err := walk(n, registry)
		if err != nil {
			return nil, err
		}
		if c != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func childNodes(n *html.Node) []*html.Node {
	var nodes []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		nodes = append(nodes, c)
	}
	return nodes
}

// walk returns nil for nodes that produce no output.
func walk(n *html.Node, registry Registry) (templ.Component, error) {
	switch n.Type {
	case html.TextNode:
		if isLineBreak(n.Data) {
			if betweenPhrasing(n) {
				return node.Text(" "), nil
			}
			return nil, nil
		}
		return node.Text(n.Data), nil

	case html.ElementNode:
		children, err := walkAll(childNodes(n), registry)
		if err != nil {
			return nil, err
		}

		component, err := registry.Lookup(n.Data)
		if err != nil {
			return nil, err
		}

		return component(attributes(n), children...), nil

	case html.DocumentNode:
		children, err := walkAll(childNodes(n), registry)
		if err != nil {
			return nil, err
		}
		return node.Fragment(children...), nil

	default:
		// Comments and doctypes.
		return nil, nil
	}
}

// isLineBreak reports whether text is only whitespace spanning a line break.
func isLineBreak(text string) bool {
	return strings.TrimSpace(text) == "" && strings.Contains(text, "\n")
}

// phrasing lists the inline elements that a soft line break can separate.
var phrasing = map[atom.Atom]bool{
	atom.A: true, atom.Abbr: true, atom.B: true, atom.Cite: true, atom.Code: true,
	atom.Del: true, atom.Em: true, atom.I: true, atom.Img: true, atom.Kbd: true,
	atom.Mark: true, atom.Q: true, atom.S: true, atom.Small: true, atom.Span: true,
	atom.Strong: true, atom.Sub: true, atom.Sup: true, atom.Time: true, atom.U: true,
}

// betweenPhrasing reports whether n sits between two inline siblings, where
// the line break separates words. Between blocks it is layout only.
func betweenPhrasing(n *html.Node) bool {
	return isPhrasing(n.PrevSibling) && isPhrasing(n.NextSibling)
}

func isPhrasing(n *html.Node) bool {
	if n == nil {
		return false
	}
	switch n.Type {
	case html.TextNode:
		return true
	case html.ElementNode:
		return n.Namespace == "" && phrasing[n.DataAtom]
	}
	return false
}

func attributes(n *html.Node) node.Attrs {
	if len(n.Attr) == 0 {
		return nil
	}

	attrs := make(node.Attrs, 0, len(n.Attr))
	for _, a := range n.Attr {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + a.Key
		}
		attrs = append(attrs, node.Attr{Key: key, Value: a.Val})
	}
	return attrs
}
