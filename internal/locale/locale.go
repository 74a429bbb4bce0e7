// Package locale carries the active content locale through a call tree.
//
// The locale is bound to a context.Context by With and read back by Use.
// Because the value travels with the context, goroutines started inside a
// scope observe the scope's locale, and concurrent scopes never see each
// other's value. There is no process-wide default.
package locale

import (
	"context"
	"net/http"

	"golang.org/x/text/language"

	rerrors "github.com/elmarvr/resume-v2/internal/errors"
)

type contextKey struct{}

// With runs body with code bound as the current locale. The binding ends
// when body returns, whether or not it failed.
func With[T any](ctx context.Context, code string, body func(ctx context.Context) (T, error)) (T, error) {
	scoped, err := Context(ctx, code)
	if err != nil {
		var zero T
		return zero, err
	}
	return body(scoped)
}

// Context returns a child of ctx bound to code. It fails when code is not a
// well-formed language tag.
func Context(ctx context.Context, code string) (context.Context, error) {
	if _, err := language.Parse(code); err != nil {
		return nil, rerrors.Wrap(err, rerrors.ErrCodeConfigInvalid, "invalid locale "+code).
			WithContext("locale", code)
	}
	return context.WithValue(ctx, contextKey{}, code), nil
}

// Use returns the locale bound to ctx, or a ContextError outside any scope.
func Use(ctx context.Context) (string, error) {
	if code, ok := ctx.Value(contextKey{}).(string); ok {
		return code, nil
	}
	return "", &rerrors.ContextError{Key: "locale"}
}

// Negotiator picks a supported locale for an HTTP request.
type Negotiator struct {
	supported []string
	matcher   language.Matcher
}

// NewNegotiator creates a negotiator. The first supported locale is the
// fallback.
func NewNegotiator(supported ...string) (*Negotiator, error) {
	if len(supported) == 0 {
		return nil, rerrors.NewConfigError(rerrors.ErrCodeConfigInvalid, "no supported locales")
	}

	tags := make([]language.Tag, len(supported))
	for i, code := range supported {
		tag, err := language.Parse(code)
		if err != nil {
			return nil, rerrors.Wrap(err, rerrors.ErrCodeConfigInvalid, "invalid locale "+code)
		}
		tags[i] = tag
	}

	return &Negotiator{
		supported: append([]string(nil), supported...),
		matcher:   language.NewMatcher(tags),
	}, nil
}

// Supported reports whether code is one of the configured locales.
func (n *Negotiator) Supported(code string) bool {
	for _, s := range n.supported {
		if s == code {
			return true
		}
	}
	return false
}

// Fallback returns the default locale.
func (n *Negotiator) Fallback() string {
	return n.supported[0]
}

// Match returns the supported locale closest to the given preferences, in
// Accept-Language syntax.
func (n *Negotiator) Match(preferences ...string) string {
	_, index := language.MatchStrings(n.matcher, preferences...)
	return n.supported[index]
}

// Negotiate selects the locale for r: an explicit "lang" query parameter
// naming a supported locale wins, then the Accept-Language header.
func (n *Negotiator) Negotiate(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); n.Supported(lang) {
		return lang
	}
	return n.Match(r.Header.Get("Accept-Language"))
}
