// Package node builds render nodes. A node is a templ.Component; once
// constructed it is never mutated, so nodes can be shared between renders
// and goroutines.
package node

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Attr is a single element attribute.
type Attr struct {
	Key   string
	Value string
}

// Attrs is an ordered attribute list. Order is preserved in the output.
type Attrs []Attr

// Get returns the value of key.
func (a Attrs) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Set returns a copy of a with key set to value, replacing an existing entry.
func (a Attrs) Set(key, value string) Attrs {
	out := make(Attrs, 0, len(a)+1)
	replaced := false
	for _, attr := range a {
		if attr.Key == key {
			if !replaced {
				out = append(out, Attr{Key: key, Value: value})
				replaced = true
			}
			continue
		}
		out = append(out, attr)
	}
	if !replaced {
		out = append(out, Attr{Key: key, Value: value})
	}
	return out
}

// Without returns a copy of a without key.
func (a Attrs) Without(key string) Attrs {
	out := make(Attrs, 0, len(a))
	for _, attr := range a {
		if attr.Key != key {
			out = append(out, attr)
		}
	}
	return out
}

// voidElements never have children or a closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// urlAttributes are sanitized before output.
var urlAttributes = map[string]bool{
	"href": true, "src": true, "xlink:href": true, "action": true,
}

// Element returns a node for tag with attrs and children.
func Element(tag string, attrs Attrs, children ...templ.Component) templ.Component {
	attrs = append(Attrs(nil), attrs...)
	children = append([]templ.Component(nil), children...)

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<"+tag); err != nil {
			return err
		}
		for _, attr := range attrs {
			if !validAttrName(attr.Key) {
				continue
			}
			value := attr.Value
			if urlAttributes[attr.Key] {
				value = string(templ.URL(value))
			}
			if _, err := io.WriteString(w, " "+attr.Key+`="`+templ.EscapeString(value)+`"`); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, ">"); err != nil {
			return err
		}

		if voidElements[tag] {
			return nil
		}

		for _, child := range children {
			if child == nil {
				continue
			}
			if err := child.Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, "</"+tag+">")
		return err
	})
}

// Text returns an escaped text node.
func Text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}

// Fragment groups children without a wrapping element.
func Fragment(children ...templ.Component) templ.Component {
	children = append([]templ.Component(nil), children...)

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, child := range children {
			if child == nil {
				continue
			}
			if err := child.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// RenderString renders c to a string.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// validAttrName rejects names that could break out of the tag.
func validAttrName(name string) bool {
	if name == "" {
		return false
	}
	return !strings.ContainsAny(name, " \t\n\r\f\"'<>/=`")
}
