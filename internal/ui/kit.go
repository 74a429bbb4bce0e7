// Package ui maps semantic component names to primitive elements.
//
// A Kit resolves a name such as "text" or "link" to a Constructor. The
// constructor merges the primitive's base classes with the classes supplied
// at the call site, where call-site classes win, compiles the result with a
// style.Compiler and emits the primitive element with an inline style.
package ui

import (
	"sort"

	"github.com/a-h/templ"

	rerrors "github.com/elmarvr/resume-v2/internal/errors"
	"github.com/elmarvr/resume-v2/internal/node"
	"github.com/elmarvr/resume-v2/internal/style"
)

// Constructor builds an element from call-site classes, attributes and
// children.
type Constructor func(class string, props node.Attrs, children ...templ.Component) templ.Component

// Primitive is the element a component name renders as, with its base
// classes.
type Primitive struct {
	Element string
	Base    string
}

// TextBase is the base class string of text-like primitives.
const TextBase = "text-base text-zinc-900 font-mono"

// DefaultPrimitives returns the stock component set.
func DefaultPrimitives() map[string]Primitive {
	return map[string]Primitive{
		"text":         {Element: "p", Base: TextBase},
		"view":         {Element: "div"},
		"link":         {Element: "a", Base: TextBase},
		"span":         {Element: "span"},
		"h1":           {Element: "h1", Base: TextBase},
		"h2":           {Element: "h2", Base: TextBase},
		"h3":           {Element: "h3", Base: TextBase},
		"h4":           {Element: "h4", Base: TextBase},
		"h5":           {Element: "h5", Base: TextBase},
		"h6":           {Element: "h6", Base: TextBase},
		"list":         {Element: "ul"},
		"ordered-list": {Element: "ol"},
		"item":         {Element: "li", Base: TextBase},
		"emphasis":     {Element: "em"},
		"strong":       {Element: "strong"},
		"deleted":      {Element: "del"},
		"code":         {Element: "code", Base: "font-mono"},
		"pre":          {Element: "pre", Base: "font-mono"},
		"quote":        {Element: "blockquote"},
		"rule":         {Element: "hr"},
		"break":        {Element: "br"},
		"image":        {Element: "img"},
		"page":         {Element: "main", Base: "flex flex-col gap-4 p-8 bg-white"},
		"section":      {Element: "section", Base: "flex flex-col gap-2"},
	}
}

// Kit resolves component names. It is immutable after construction.
type Kit struct {
	compiler   *style.Compiler
	primitives map[string]Primitive
}

// NewKit creates a kit from a copy of primitives.
func NewKit(compiler *style.Compiler, primitives map[string]Primitive) *Kit {
	m := make(map[string]Primitive, len(primitives))
	for name, p := range primitives {
		m[name] = p
	}
	return &Kit{compiler: compiler, primitives: m}
}

// Names lists the component names in sorted order.
func (k *Kit) Names() []string {
	names := make([]string, 0, len(k.primitives))
	for name := range k.primitives {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compiler returns the style compiler used by the kit.
func (k *Kit) Compiler() *style.Compiler {
	return k.compiler
}

// Resolve returns the constructor for name, or an UnknownComponentError.
func (k *Kit) Resolve(name string) (Constructor, error) {
	p, ok := k.primitives[name]
	if !ok {
		return nil, &rerrors.UnknownComponentError{Tag: name}
	}

	return func(class string, props node.Attrs, children ...templ.Component) templ.Component {
		if extra, ok := props.Get("class"); ok {
			class = style.Merge(class, extra)
		}

		attrs := props.Without("class").Without("style")
		if css := k.compiler.Compile(p.Base, class).CSS(); css != "" {
			attrs = attrs.Set("style", css)
		}

		return node.Element(p.Element, attrs, children...)
	}, nil
}
