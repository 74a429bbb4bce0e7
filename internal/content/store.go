// Package content composes the scanner, the loaders and the schema validator
// into queries.
//
// A Store fixes the content root and the loader registry. Queries are built
// from a store with Documents (front matter documents), Data (plain data
// files) and Map (an asynchronous transform). A query does no work until
// First or All is called.
//
//	store := content.NewStore("content", loader.Default(render))
//	jobs := content.Documents[Experience](store, "experience/*.md",
//		content.WithSchema(experienceSchema), content.Localized())
//	items, err := jobs.All(ctx)
package content

import (
	"runtime"

	"github.com/elmarvr/resume-v2/internal/loader"
	"github.com/elmarvr/resume-v2/internal/logging"
)

// Store is the shared, read-only configuration of every query.
type Store struct {
	root        string
	loaders     *loader.Registry
	logger      logging.Logger
	concurrency int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for query diagnostics.
func WithLogger(logger logging.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithConcurrency bounds the number of transforms All runs at once.
func WithConcurrency(n int) StoreOption {
	return func(s *Store) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewStore creates a store rooted at root.
func NewStore(root string, loaders *loader.Registry, opts ...StoreOption) *Store {
	s := &Store{
		root:        root,
		loaders:     loaders,
		logger:      logging.Nop(),
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("content")
	return s
}

// Root returns the content root directory.
func (s *Store) Root() string { return s.root }

// Loaders returns the loader registry.
func (s *Store) Loaders() *loader.Registry { return s.loaders }
