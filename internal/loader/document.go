package loader

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	rerrors "github.com/elmarvr/resume-v2/internal/errors"
)

// RenderFunc converts a markup body into a render node.
type RenderFunc func(body string) (templ.Component, error)

// Entry is the intermediate value of a text document. Meta is the raw front
// matter; Content is nil when the body is empty.
type Entry struct {
	Meta    map[string]any
	Body    string
	Content templ.Component
}

// Document returns the loader for front matter documents. The body is handed
// to render only when it contains something other than whitespace.
func Document(render RenderFunc) Loader {
	return func(ctx context.Context, f File) (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := f.Read()
		if err != nil {
			return nil, err
		}

		meta, body, err := SplitFrontMatter(data)
		if err != nil {
			return nil, rerrors.Wrap(err, rerrors.ErrCodeDecodeFailed, "invalid front matter").WithFile(f.Name)
		}

		entry := &Entry{Meta: meta, Body: string(body)}
		if strings.TrimSpace(entry.Body) == "" || render == nil {
			return entry, nil
		}

		content, err := render(entry.Body)
		if err != nil {
			return nil, rerrors.InFile(f.Name, err)
		}
		entry.Content = content

		return entry, nil
	}
}
