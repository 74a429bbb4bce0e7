package content

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/sourcegraph/conc/iter"

	rerrors "github.com/elmarvr/resume-v2/internal/errors"
	"github.com/elmarvr/resume-v2/internal/loader"
	"github.com/elmarvr/resume-v2/internal/locale"
	"github.com/elmarvr/resume-v2/internal/logging"
	"github.com/elmarvr/resume-v2/internal/scanner"
	"github.com/elmarvr/resume-v2/internal/schema"
)

// QueryOption configures a query.
type QueryOption func(*queryConfig)

type queryConfig struct {
	schema    schema.Schema
	localized bool
}

// WithSchema validates every loaded item against s before it is decoded.
func WithSchema(s schema.Schema) QueryOption {
	return func(c *queryConfig) { c.schema = s }
}

// Localized scans the subdirectory of the content root named after the
// locale bound to the context passed to First or All.
func Localized() QueryOption {
	return func(c *queryConfig) { c.localized = true }
}

// prepareFunc loads and validates one file with its registered loader.
type prepareFunc func(ctx context.Context, f loader.File, l loader.Loader) (any, error)

// Query is a lazy, single-use query over the files matching a pattern.
//
// The underlying scan is opened by the first call to First or All and is
// consumed by it: First stops the scan after the first item, All drains it.
// Later calls on the same query see an exhausted scan, so First fails with a
// NotFoundError and All returns no items. Build a fresh query to read the
// same files again.
type Query[T any] struct {
	store     *Store
	pattern   string
	cfg       queryConfig
	prepare   prepareFunc
	transform func(ctx context.Context, v any) (T, error)

	mu     sync.Mutex
	cursor *scanner.Cursor
	base   string
}

func newQuery[T any](store *Store, pattern string, opts []QueryOption, prepare prepareFunc, transform func(context.Context, any) (T, error)) *Query[T] {
	var cfg queryConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Query[T]{
		store:     store,
		pattern:   pattern,
		cfg:       cfg,
		prepare:   prepare,
		transform: transform,
	}
}

// Pattern returns the glob pattern of the query.
func (q *Query[T]) Pattern() string { return q.pattern }

// Map returns a new query whose items are the items of q passed through fn.
// The scan of q is not consumed. fn runs concurrently for the items of one
// All call; results keep discovery order.
func Map[T, U any](q *Query[T], fn func(ctx context.Context, item T) (U, error)) *Query[U] {
	prev := q.transform
	return &Query[U]{
		store:   q.store,
		pattern: q.pattern,
		cfg:     q.cfg,
		prepare: q.prepare,
		transform: func(ctx context.Context, v any) (U, error) {
			item, err := prev(ctx, v)
			if err != nil {
				var zero U
				return zero, err
			}
			return fn(ctx, item)
		},
	}
}

// First returns the first matching item. Files without a registered loader
// are skipped. It fails with a NotFoundError when no file yields an item.
func (q *Query[T]) First(ctx context.Context) (T, error) {
	var zero T

	q.mu.Lock()
	defer q.mu.Unlock()

	timer := logging.StartOperation(ctx, q.store.logger, "first", "pattern", q.pattern)

	cursor, err := q.open(ctx)
	if err != nil {
		timer.End(ctx, err)
		return zero, err
	}
	defer cursor.Close()

	f, l, ok, err := q.next(ctx, cursor)
	if err != nil {
		timer.End(ctx, err)
		return zero, err
	}
	if !ok {
		err := &rerrors.NotFoundError{Pattern: q.pattern}
		timer.End(ctx, err)
		return zero, err
	}

	v, err := q.prepare(ctx, f, l)
	if err != nil {
		err = rerrors.InFile(f.Name, err)
		timer.End(ctx, err)
		return zero, err
	}

	item, err := q.transform(ctx, v)
	if err != nil {
		err = rerrors.InFile(f.Name, err)
		timer.End(ctx, err)
		return zero, err
	}

	timer.End(ctx, nil)
	return item, nil
}

// All returns every remaining matching item in discovery order. Files are
// loaded and validated one at a time, stopping at the first failure; the
// transforms then run concurrently. Any failure fails the whole call and no
// partial result is returned.
func (q *Query[T]) All(ctx context.Context) ([]T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	timer := logging.StartOperation(ctx, q.store.logger, "all", "pattern", q.pattern)

	items, names, err := q.collect(ctx)
	if err != nil {
		timer.End(ctx, err)
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type indexed struct {
		value any
		name  string
	}
	input := make([]indexed, len(items))
	for i := range items {
		input[i] = indexed{value: items[i], name: names[i]}
	}

	var (
		once     sync.Once
		firstErr error
	)
	mapper := iter.Mapper[indexed, T]{MaxGoroutines: q.store.concurrency}
	out, err := mapper.MapErr(input, func(in *indexed) (T, error) {
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, err
		}
		item, err := q.transform(ctx, in.value)
		if err != nil {
			once.Do(func() { firstErr = rerrors.InFile(in.name, err) })
			cancel()
			return item, err
		}
		return item, nil
	})
	if firstErr != nil {
		err = firstErr
	}
	if err != nil {
		timer.End(ctx, err)
		return nil, err
	}

	if out == nil {
		out = []T{}
	}
	timer.End(ctx, nil)
	return out, nil
}

// collect drains the scan, loading and validating in order.
func (q *Query[T]) collect(ctx context.Context) ([]any, []string, error) {
	cursor, err := q.open(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer cursor.Close()

	var (
		items []any
		names []string
	)
	for {
		f, l, ok, err := q.next(ctx, cursor)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return items, names, nil
		}

		v, err := q.prepare(ctx, f, l)
		if err != nil {
			return nil, nil, rerrors.InFile(f.Name, err)
		}
		items = append(items, v)
		names = append(names, f.Name)
	}
}

// open starts the scan on first use.
func (q *Query[T]) open(ctx context.Context) (*scanner.Cursor, error) {
	if q.cursor != nil {
		return q.cursor, nil
	}

	base := q.store.root
	if q.cfg.localized {
		code, err := locale.Use(ctx)
		if err != nil {
			return nil, err
		}
		base = filepath.Join(base, code)
	}

	cursor, err := scanner.Scan(ctx, q.pattern, base)
	if err != nil {
		return nil, err
	}

	q.cursor = cursor
	q.base = base
	return cursor, nil
}

// next returns the next file that has a registered loader.
func (q *Query[T]) next(ctx context.Context, cursor *scanner.Cursor) (loader.File, loader.Loader, bool, error) {
	for {
		name, ok, err := cursor.Next(ctx)
		if err != nil || !ok {
			return loader.File{}, nil, false, err
		}

		l, registered := q.store.loaders.Resolve(loader.Ext(name))
		if !registered {
			q.store.logger.Debug(ctx, "Skipping file without loader", "file", name, "pattern", q.pattern)
			continue
		}

		return loader.File{Name: name, Path: filepath.Join(q.base, filepath.FromSlash(name))}, l, true, nil
	}
}
