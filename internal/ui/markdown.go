package ui

import (
	"github.com/a-h/templ"

	"github.com/elmarvr/resume-v2/internal/markup"
	"github.com/elmarvr/resume-v2/internal/node"
)

// markdownTags binds the tags emitted by the markdown parser to a component
// name and its call-site classes.
var markdownTags = map[string][2]string{
	"h1":         {"h1", "text-4xl font-bold mb-2"},
	"h2":         {"h2", "text-3xl font-bold mb-2"},
	"h3":         {"h3", "text-2xl font-semibold mb-1"},
	"h4":         {"h4", "text-xl font-semibold mb-1"},
	"h5":         {"h5", "text-lg font-semibold"},
	"h6":         {"h6", "text-base font-semibold"},
	"p":          {"text", "mb-2"},
	"a":          {"link", "text-blue-700 underline"},
	"ul":         {"list", "list-disc pl-6 mb-2"},
	"ol":         {"ordered-list", "list-decimal pl-6 mb-2"},
	"li":         {"item", ""},
	"em":         {"emphasis", "italic"},
	"strong":     {"strong", "font-bold"},
	"del":        {"deleted", "line-through"},
	"code":       {"code", "bg-zinc-100 px-1 rounded"},
	"pre":        {"pre", "bg-zinc-100 p-2 rounded"},
	"blockquote": {"quote", "border-l-4 border-zinc-300 pl-4 italic"},
	"hr":         {"rule", "border-t border-zinc-200 my-4"},
	"br":         {"break", ""},
	"img":        {"image", ""},
	"span":       {"span", ""},
	"div":        {"view", ""},
}

// Markdown builds the markup registry for document bodies from kit. It fails
// when kit lacks one of the components the markdown tags map to.
func Markdown(kit *Kit) (markup.Registry, error) {
	reg := make(markup.Registry, len(markdownTags))
	for tag, binding := range markdownTags {
		ctor, err := kit.Resolve(binding[0])
		if err != nil {
			return nil, err
		}
		reg[tag] = bind(ctor, binding[1])
	}
	return reg, nil
}

func bind(ctor Constructor, class string) markup.Component {
	return func(attrs node.Attrs, children ...templ.Component) templ.Component {
		return ctor(class, attrs, children...)
	}
}

// Unsupported lists, per component, the classes that compile to no style.
// Primitive base classes are keyed by component name, markdown bindings by
// "markdown:<tag>". Components without such classes are left out.
func Unsupported(kit *Kit) map[string][]string {
	out := make(map[string][]string)
	for name, p := range kit.primitives {
		if classes := kit.compiler.Unsupported(p.Base); len(classes) > 0 {
			out[name] = classes
		}
	}
	for tag, binding := range markdownTags {
		if classes := kit.compiler.Unsupported(binding[1]); len(classes) > 0 {
			out["markdown:"+tag] = classes
		}
	}
	return out
}
