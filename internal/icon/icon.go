// Package icon renders icons from an iconify-format icon set.
//
// The svg body of an icon is parsed once through the markup renderer. Shape
// elements read the stroke colour and width of the enclosing icon instance
// from the render context, so one parsed body serves every size and colour.
package icon

import (
	"context"
	"io"
	"sort"
	"strconv"
	"sync"

	"github.com/a-h/templ"

	"github.com/elmarvr/resume-v2/internal/content"
	rerrors "github.com/elmarvr/resume-v2/internal/errors"
	"github.com/elmarvr/resume-v2/internal/markup"
	"github.com/elmarvr/resume-v2/internal/node"
	"github.com/elmarvr/resume-v2/internal/schema"
	"github.com/elmarvr/resume-v2/internal/style"
)

// Size is the default view box edge of an icon.
const Size = 24

// Set is an iconify icon set.
type Set struct {
	Prefix string          `json:"prefix"`
	Icons  map[string]Data `json:"icons"`
	Width  int             `json:"width"`
	Height int             `json:"height"`
}

// Data is one icon of a set. Zero dimensions fall back to the set's.
type Data struct {
	Body   string `json:"body"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// SetSchema validates an iconify icon set file.
var SetSchema = schema.Object(
	schema.Field("prefix", schema.Optional(schema.String(), "")),
	schema.Field("icons", schema.Map(schema.Object(
		schema.Field("body", schema.String()),
		schema.Field("width", schema.Optional(schema.Int(), nil)),
		schema.Field("height", schema.Optional(schema.Int(), nil)),
	))),
	schema.Field("width", schema.Optional(schema.Int(), Size)),
	schema.Field("height", schema.Optional(schema.Int(), Size)),
)

// Library resolves icon names to components. Parsed bodies are cached.
type Library struct {
	set      Set
	compiler *style.Compiler

	mu     sync.Mutex
	parsed map[string]templ.Component
}

// NewLibrary creates a library over set. compiler resolves the colour and
// size classes of icon instances.
func NewLibrary(set Set, compiler *style.Compiler) *Library {
	if set.Width == 0 {
		set.Width = Size
	}
	if set.Height == 0 {
		set.Height = Size
	}
	return &Library{set: set, compiler: compiler, parsed: make(map[string]templ.Component)}
}

// Load reads the icon set matching pattern from store.
func Load(ctx context.Context, store *content.Store, pattern string, compiler *style.Compiler) (*Library, error) {
	set, err := content.Data[Set](store, pattern, content.WithSchema(SetSchema)).First(ctx)
	if err != nil {
		return nil, err
	}
	return NewLibrary(set, compiler), nil
}

// Names lists the icon names in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.set.Icons))
	for name := range l.set.Icons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Icon renders one instance of an icon.
type Icon func(opts ...Option) templ.Component

// Option configures an icon instance.
type Option func(*instance)

type instance struct {
	color       string
	size        float64
	strokeWidth float64
}

// WithColor sets the stroke colour as a theme colour name such as
// "blue-700".
func WithColor(color string) Option {
	return func(i *instance) {
		if color != "" {
			i.color = color
		}
	}
}

// WithSize sets the edge length in spacing steps.
func WithSize(size float64) Option {
	return func(i *instance) { i.size = size }
}

// WithStrokeWidth sets the stroke width of every shape.
func WithStrokeWidth(w float64) Option {
	return func(i *instance) { i.strokeWidth = w }
}

// Component returns the icon named name. An absent name is a missing
// reference.
func (l *Library) Component(name string) (Icon, error) {
	data, ok := l.set.Icons[name]
	if !ok {
		return nil, rerrors.MissingReference("icon", name)
	}

	body, err := l.body(name, data.Body)
	if err != nil {
		return nil, rerrors.InFile(name, err)
	}

	width, height := data.Width, data.Height
	if width == 0 {
		width = l.set.Width
	}
	if height == 0 {
		height = l.set.Height
	}
	viewBox := "0 0 " + strconv.Itoa(width) + " " + strconv.Itoa(height)

	return func(opts ...Option) templ.Component {
		inst := instance{color: "neutral-900", size: Size / 4, strokeWidth: 4}
		for _, opt := range opts {
			opt(&inst)
		}

		step := formatNumber(inst.size)
		css := l.compiler.Compile("text-"+inst.color, "h-"+step, "w-"+step)

		attrs := node.Attrs{
			{Key: "xmlns", Value: "http://www.w3.org/2000/svg"},
			{Key: "viewBox", Value: viewBox},
			{Key: "fill", Value: "none"},
		}
		if w, ok := css.Get("width"); ok {
			attrs = attrs.Set("width", w)
		}
		if h, ok := css.Get("height"); ok {
			attrs = attrs.Set("height", h)
		}

		stroke := strokeOverride{width: formatNumber(inst.strokeWidth)}
		stroke.color, _ = css.Get("color")

		svg := node.Element("svg", attrs, body)
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			return svg.Render(context.WithValue(ctx, strokeKey{}, stroke), w)
		})
	}, nil
}

func (l *Library) body(name, src string) (templ.Component, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if c, ok := l.parsed[name]; ok {
		return c, nil
	}

	c, err := markup.RenderFragment(src, Registry(), markup.InSVG())
	if err != nil {
		return nil, err
	}
	l.parsed[name] = c
	return c, nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
