// Package loader turns content files into unvalidated intermediate values.
//
// Loaders are keyed by file extension in an immutable Registry. The document
// loader splits front matter from a markup body and renders the body; the data
// loaders decode the whole file as a data literal.
package loader

import (
	"context"
	"os"
	"path"
	"sort"
	"strings"

	rerrors "github.com/elmarvr/resume-v2/internal/errors"
)

// File identifies a matched content file.
type File struct {
	// Name is the path relative to the scanned directory, slash separated.
	Name string
	// Path is the location on disk.
	Path string
}

// Ext returns the extension of the file without the leading dot.
func (f File) Ext() string {
	return Ext(f.Name)
}

// Read returns the file contents, wrapping failures in an IOError.
func (f File) Read() ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, rerrors.NewIOError("read", f.Path, err)
	}
	return data, nil
}

// Ext returns the extension of name without the leading dot. Matching is
// exact, so "intro.MD" has extension "MD".
func Ext(name string) string {
	return strings.TrimPrefix(path.Ext(name), ".")
}

// Loader reads a file and returns its intermediate value.
type Loader func(ctx context.Context, f File) (any, error)

// Registry maps extensions to loaders. It is never mutated after
// construction and is safe for concurrent use.
type Registry struct {
	loaders map[string]Loader
}

// NewRegistry creates a registry from a copy of loaders.
func NewRegistry(loaders map[string]Loader) *Registry {
	m := make(map[string]Loader, len(loaders))
	for ext, l := range loaders {
		m[ext] = l
	}
	return &Registry{loaders: m}
}

// Resolve returns the loader registered for ext.
func (r *Registry) Resolve(ext string) (Loader, bool) {
	if r == nil {
		return nil, false
	}
	l, ok := r.loaders[ext]
	return l, ok
}

// With returns a new registry that also maps ext to l.
func (r *Registry) With(ext string, l Loader) *Registry {
	m := make(map[string]Loader, len(r.loaders)+1)
	for k, v := range r.loaders {
		m[k] = v
	}
	m[ext] = l
	return &Registry{loaders: m}
}

// Extensions lists the registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.loaders))
	for ext := range r.loaders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Default returns the built-in registry: markdown documents rendered with
// render, plus json, jsonc, yaml, yml and toml data files.
func Default(render RenderFunc) *Registry {
	return dataRegistry.With("md", Document(render))
}

var dataRegistry = NewRegistry(map[string]Loader{
	"json":  JSON,
	"jsonc": JSONC,
	"yaml":  YAML,
	"yml":   YAML,
	"toml":  TOML,
})
