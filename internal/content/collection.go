package content

import (
	"context"

	"github.com/a-h/templ"

	"github.com/elmarvr/resume-v2/internal/loader"
	"github.com/elmarvr/resume-v2/internal/schema"
)

// Document is a front matter document. Meta has been validated (when the
// query has a schema) and decoded; Content is nil for an empty body.
type Document[M any] struct {
	Meta    M
	Content templ.Component
	// Path is the file path relative to the scanned directory.
	Path string
}

// Documents queries front matter documents matching pattern. Files whose
// loader does not produce a document are treated as metadata without a body.
func Documents[M any](store *Store, pattern string, opts ...QueryOption) *Query[Document[M]] {
	var q *Query[Document[M]]
	q = newQuery(store, pattern, opts, func(ctx context.Context, f loader.File, l loader.Loader) (any, error) {
		raw, err := l(ctx, f)
		if err != nil {
			return nil, err
		}

		doc := Document[M]{Path: f.Name}
		metaRaw := raw
		if entry, ok := raw.(*loader.Entry); ok {
			metaRaw = entry.Meta
			doc.Content = entry.Content
		}

		doc.Meta, err = schema.As[M](q.cfg.schema, metaRaw)
		if err != nil {
			return nil, err
		}
		return doc, nil
	}, identity[Document[M]])

	return q
}

// Data queries structured data files matching pattern. For documents the
// front matter is the value.
func Data[V any](store *Store, pattern string, opts ...QueryOption) *Query[V] {
	var q *Query[V]
	q = newQuery(store, pattern, opts, func(ctx context.Context, f loader.File, l loader.Loader) (any, error) {
		raw, err := l(ctx, f)
		if err != nil {
			return nil, err
		}
		if entry, ok := raw.(*loader.Entry); ok {
			raw = entry.Meta
		}
		v, err := schema.As[V](q.cfg.schema, raw)
		if err != nil {
			return nil, err
		}
		return v, nil
	}, identity[V])

	return q
}

func identity[T any](_ context.Context, v any) (T, error) {
	t, _ := v.(T)
	return t, nil
}
