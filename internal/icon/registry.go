package icon

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/elmarvr/resume-v2/internal/markup"
	"github.com/elmarvr/resume-v2/internal/node"
)

type strokeKey struct{}

// strokeOverride is the stroke of the icon instance being rendered.
type strokeOverride struct {
	color string
	width string
}

// stroked lists the shapes whose stroke follows the icon instance.
var stroked = []string{"path", "rect", "circle", "ellipse", "line", "polyline", "polygon"}

// plain lists the remaining svg elements, by their case-sensitive name.
var plain = []string{"g", "text", "tspan", "linearGradient", "radialGradient", "stop", "defs", "title"}

// Registry returns the markup registry for svg icon bodies.
func Registry() markup.Registry {
	reg := make(markup.Registry, len(stroked)+len(plain))
	for _, tag := range stroked {
		reg[tag] = shape(tag)
	}
	for _, tag := range plain {
		reg[strings.ToLower(tag)] = element(tag)
	}
	return reg
}

func element(tag string) markup.Component {
	return func(attrs node.Attrs, children ...templ.Component) templ.Component {
		return node.Element(tag, attrs, children...)
	}
}

// shape renders tag with the stroke of the enclosing instance, when one is
// bound to the render context.
func shape(tag string) markup.Component {
	return func(attrs node.Attrs, children ...templ.Component) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			a := attrs
			if o, ok := ctx.Value(strokeKey{}).(strokeOverride); ok {
				if o.color != "" {
					a = a.Set("stroke", o.color)
				}
				if o.width != "" {
					a = a.Set("stroke-width", o.width)
				}
			}
			return node.Element(tag, a, children...).Render(ctx, w)
		})
	}
}
