package ui

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rerrors "github.com/elmarvr/resume-v2/internal/errors"
	"github.com/elmarvr/resume-v2/internal/markup"
	"github.com/elmarvr/resume-v2/internal/node"
	"github.com/elmarvr/resume-v2/internal/style"
)

func newKit() *Kit {
	return NewKit(style.NewCompiler(style.DefaultTheme()), DefaultPrimitives())
}

func resolve(t *testing.T, name string) Constructor {
	t.Helper()
	c, err := newKit().Resolve(name)
	require.NoError(t, err)
	return c
}

func TestResolveUnknown(t *testing.T) {
	_, err := newKit().Resolve("carousel")
	require.Error(t, err)

	var unknown *rerrors.UnknownComponentError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "carousel", unknown.Tag)
}

func TestInstanceClassesWin(t *testing.T) {
	text := resolve(t, "text")

	out, err := node.RenderString(context.Background(), text("text-zinc-900 text-4xl", nil, node.Text("Title")))
	require.NoError(t, err)
	assert.Equal(t,
		`<p style="font-family: ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, monospace; color: #18181b; font-size: 2.25rem; line-height: 2.5rem">Title</p>`,
		out)

	out, err = node.RenderString(context.Background(), text("text-blue-700", nil))
	require.NoError(t, err)
	assert.Contains(t, out, "color: #1d4ed8")
	assert.Contains(t, out, "font-size: 1rem")
	assert.NotContains(t, out, "#18181b")
}

func TestConstructorProps(t *testing.T) {
	link := resolve(t, "link")

	props := node.Attrs{
		{Key: "href", Value: "https://go.dev"},
		{Key: "class", Value: "text-sm"},
		{Key: "style", Value: "color: red"},
	}
	out, err := node.RenderString(context.Background(), link("", props, node.Text("go")))
	require.NoError(t, err)

	assert.Contains(t, out, `<a href="https://go.dev" style="`)
	assert.Contains(t, out, "font-size: 0.875rem")
	assert.NotContains(t, out, "class=")
	assert.NotContains(t, out, "color: red")
}

func TestViewWithoutClassesHasNoStyle(t *testing.T) {
	view := resolve(t, "view")

	out, err := node.RenderString(context.Background(), view("", nil))
	require.NoError(t, err)
	assert.Equal(t, "<div></div>", out)
}

func TestUnsupported(t *testing.T) {
	kit := NewKit(style.NewCompiler(style.DefaultTheme()), map[string]Primitive{
		"card":  {Element: "div", Base: "p-2 shadow-lg hover:drop-shadow"},
		"plain": {Element: "p", Base: "text-sm"},
	})

	got := Unsupported(kit)
	assert.Equal(t, []string{"shadow-lg", "hover:drop-shadow"}, got["card"])
	assert.NotContains(t, got, "plain")
	for name := range got {
		if name != "card" {
			assert.Contains(t, name, "markdown:")
		}
	}
}

func TestMarkdownRegistry(t *testing.T) {
	reg, err := Markdown(newKit())
	require.NoError(t, err)

	c, err := markup.Render("# Hello\n\nSee [docs](https://go.dev) and *more*.\n\n- one\n", reg)
	require.NoError(t, err)

	out, err := node.RenderString(context.Background(), c)
	require.NoError(t, err)

	assert.Contains(t, out, "<h1 style=")
	assert.Contains(t, out, "font-size: 2.25rem")
	assert.Contains(t, out, `<a href="https://go.dev" style=`)
	assert.Contains(t, out, "color: #1d4ed8")
	assert.Contains(t, out, "<em style=\"font-style: italic\">more</em>")
	assert.Contains(t, out, "<ul style=")
	assert.Contains(t, out, "<li style=")
}

func TestMarkdownRequiresPrimitives(t *testing.T) {
	kit := NewKit(style.NewCompiler(style.DefaultTheme()), map[string]Primitive{"text": {Element: "p"}})

	_, err := Markdown(kit)
	var unknown *rerrors.UnknownComponentError
	assert.True(t, errors.As(err, &unknown))
}

func TestNames(t *testing.T) {
	names := newKit().Names()
	assert.Contains(t, names, "text")
	assert.Contains(t, names, "view")
	assert.Contains(t, names, "link")
	assert.IsIncreasing(t, names)
}
