// Package scanner enumerates content files matching a glob pattern.
//
// A scan walks its base directory lazily in lexical order, so the sequence of
// matches is deterministic for a fixed filesystem state. The Cursor returned
// by Scan is single-pass: once a path has been consumed it cannot be read
// again, and a drained cursor stays drained. Patterns use doublestar syntax
// ("experience/*.md", "**/*.json") and are always relative to the base
// directory.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	rerrors "github.com/elmarvr/resume-v2/internal/errors"
)

// errStop aborts the underlying walk when a cursor is closed early.
var errStop = errors.New("scan stopped")

// Cursor is a lazy, single-pass sequence of relative paths.
type Cursor struct {
	pattern string
	baseDir string

	mu   sync.Mutex
	next func() (string, error, bool)
	stop func()
	done bool
}

// Scan validates the pattern and base directory and returns a cursor over
// the matching files. It fails with an IOError when baseDir does not exist
// or is not a directory. Matching nothing is not an error; the cursor is
// simply empty.
func Scan(ctx context.Context, pattern, baseDir string) (*Cursor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := ValidatePattern(pattern); err != nil {
		return nil, err
	}

	info, err := os.Stat(baseDir)
	if err != nil {
		return nil, rerrors.NewIOError("scan", baseDir, err)
	}
	if !info.IsDir() {
		return nil, rerrors.NewIOError("scan", baseDir, fmt.Errorf("not a directory"))
	}

	return newCursor(os.DirFS(baseDir), pattern, baseDir), nil
}

func newCursor(fsys fs.FS, pattern, baseDir string) *Cursor {
	walk := func(yield func(string, error) bool) {
		err := doublestar.GlobWalk(fsys, pattern, func(p string, d fs.DirEntry) error {
			if !yield(p, nil) {
				return errStop
			}
			return nil
		}, doublestar.WithFilesOnly())
		if err != nil && !errors.Is(err, errStop) {
			yield("", rerrors.NewIOError("scan", path.Join(baseDir, pattern), err))
		}
	}

	next, stop := iter.Pull2(iter.Seq2[string, error](walk))

	return &Cursor{
		pattern: pattern,
		baseDir: baseDir,
		next:    next,
		stop:    stop,
	}
}

// Pattern returns the glob pattern the cursor was created for.
func (c *Cursor) Pattern() string { return c.pattern }

// BaseDir returns the directory the cursor walks.
func (c *Cursor) BaseDir() string { return c.baseDir }

// Next returns the next matching path. ok is false once the scan is
// exhausted; every later call keeps returning false.
func (c *Cursor) Next(ctx context.Context) (p string, ok bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done {
		return "", false, nil
	}

	if err := ctx.Err(); err != nil {
		c.closeLocked()
		return "", false, err
	}

	p, err, ok = c.next()
	if !ok {
		c.closeLocked()
		return "", false, nil
	}
	if err != nil {
		c.closeLocked()
		return "", false, err
	}

	return p, true, nil
}

// Close releases the underlying walk. It is safe to call more than once.
func (c *Cursor) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *Cursor) closeLocked() {
	if c.done {
		return
	}
	c.done = true
	c.stop()
}

// Collect drains a fresh scan into a slice.
func Collect(ctx context.Context, pattern, baseDir string) ([]string, error) {
	cursor, err := Scan(ctx, pattern, baseDir)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var paths []string
	for {
		p, ok, err := cursor.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return paths, nil
		}
		paths = append(paths, p)
	}
}

// ValidatePattern rejects patterns that are malformed or could escape the
// base directory.
func ValidatePattern(pattern string) error {
	if pattern == "" {
		return invalidPattern(pattern, "empty pattern")
	}

	if strings.HasPrefix(pattern, "/") || strings.Contains(pattern, "\\") {
		return invalidPattern(pattern, "pattern must be a relative slash path")
	}

	for _, segment := range strings.Split(pattern, "/") {
		if segment == ".." {
			return invalidPattern(pattern, "pattern contains directory traversal")
		}
	}

	if !doublestar.ValidatePattern(pattern) {
		return invalidPattern(pattern, "malformed glob")
	}

	return nil
}

func invalidPattern(pattern, reason string) error {
	err := &rerrors.ContentError{
		Type:    rerrors.ErrorTypeValidation,
		Code:    rerrors.ErrCodeInvalidPattern,
		Message: reason,
	}

	return err.WithPattern(pattern)
}
