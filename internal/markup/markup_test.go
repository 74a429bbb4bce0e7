package markup

import (
	"context"
	"errors"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rerrors "github.com/elmarvr/resume-v2/internal/errors"
	"github.com/elmarvr/resume-v2/internal/node"
)

// passthrough registers tags that render as themselves.
func passthrough(tags ...string) Registry {
	reg := Registry{}
	for _, tag := range tags {
		tag := tag
		reg[tag] = func(attrs node.Attrs, children ...templ.Component) templ.Component {
			return node.Element(tag, attrs, children...)
		}
	}
	return reg
}

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	out, err := node.RenderString(context.Background(), c)
	require.NoError(t, err)
	return out
}

func TestRenderBlocks(t *testing.T) {
	body := "# Hi\n\nhello *world* and **more**\n\n- a\n- b\n\n[go](https://go.dev)\n"
	reg := passthrough("h1", "p", "em", "strong", "ul", "li", "a")

	c, err := Render(body, reg)
	require.NoError(t, err)

	assert.Equal(t,
		`<h1>Hi</h1><p>hello <em>world</em> and <strong>more</strong></p><ul><li>a</li><li>b</li></ul><p><a href="https://go.dev">go</a></p>`,
		renderString(t, c))
}

func TestRenderSoftBreakBetweenInlines(t *testing.T) {
	reg := passthrough("p", "strong", "em", "ul", "li", "a")

	testCases := []struct {
		name     string
		body     string
		expected string
	}{
		{"emphasis", "I like **Go**\n*and* Rust", `<p>I like <strong>Go</strong> <em>and</em> Rust</p>`},
		{"link", "[one](https://a.dev)\n[two](https://b.dev)", `<p><a href="https://a.dev">one</a> <a href="https://b.dev">two</a></p>`},
		{"loose list", "- a\n\n- b\n", `<ul><li><p>a</p></li><li><p>b</p></li></ul>`},
		{"blocks", "**a**\n\n*b*\n", `<p><strong>a</strong></p><p><em>b</em></p>`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Render(tc.body, reg)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, renderString(t, c))
		})
	}
}

func TestRenderHeadingLevels(t *testing.T) {
	c, err := Render("## Two\n\n### Three", passthrough("h2", "h3"))
	require.NoError(t, err)
	assert.Equal(t, "<h2>Two</h2><h3>Three</h3>", renderString(t, c))
}

func TestRenderUnknownTag(t *testing.T) {
	_, err := Render("# Title\n\n> quoted", passthrough("h1", "p"))
	require.Error(t, err)

	var unknown *rerrors.UnknownComponentError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "blockquote", unknown.Tag)
}

func TestRenderRawInlineMarkup(t *testing.T) {
	body := `Built with <span class="lib">templ</span> today`

	c, err := Render(body, passthrough("p", "span"))
	require.NoError(t, err)
	assert.Equal(t, `<p>Built with <span class="lib">templ</span> today</p>`, renderString(t, c))
}

func TestRenderRawUnknownInlineTag(t *testing.T) {
	_, err := Render("hello <marquee>x</marquee>", passthrough("p"))

	var unknown *rerrors.UnknownComponentError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "marquee", unknown.Tag)
}

func TestRenderChildrenBeforeParent(t *testing.T) {
	var order []string
	record := func(tag string) Component {
		return func(attrs node.Attrs, children ...templ.Component) templ.Component {
			order = append(order, tag)
			return node.Element(tag, attrs, children...)
		}
	}

	_, err := Render("- *a*", Registry{"ul": record("ul"), "li": record("li"), "em": record("em")})
	require.NoError(t, err)
	assert.Equal(t, []string{"em", "li", "ul"}, order)
}

func TestRenderEscapesText(t *testing.T) {
	c, err := Render("a &lt; b", passthrough("p"))
	require.NoError(t, err)
	assert.Equal(t, "<p>a &lt; b</p>", renderString(t, c))
}

func TestRenderEmpty(t *testing.T) {
	c, err := Render("", Registry{})
	require.NoError(t, err)
	assert.Equal(t, "", renderString(t, c))
}

func TestRenderFragmentSVG(t *testing.T) {
	body := `<path d="M4 4h16"/><circle cx="12" cy="12" r="3"/>`

	c, err := RenderFragment(body, passthrough("path", "circle"), InSVG())
	require.NoError(t, err)
	assert.Equal(t, `<path d="M4 4h16"></path><circle cx="12" cy="12" r="3"></circle>`, renderString(t, c))
}

func TestRenderInlineSVGInMarkdown(t *testing.T) {
	body := "<svg viewBox=\"0 0 24 24\"><path d=\"M0 0\"/></svg>\n"

	c, err := Render(body, passthrough("p", "svg", "path"))
	require.NoError(t, err)
	assert.Equal(t, `<p><svg viewBox="0 0 24 24"><path d="M0 0"></path></svg></p>`, renderString(t, c))
}

func TestRegistryLookupIsCaseInsensitive(t *testing.T) {
	reg := passthrough("p")

	_, err := reg.Lookup("P")
	assert.NoError(t, err)

	_, err = reg.Lookup("div")
	assert.Error(t, err)
}

func TestFuncBindsRegistry(t *testing.T) {
	render := Func(passthrough("p"))

	c, err := render("plain")
	require.NoError(t, err)
	assert.Equal(t, "<p>plain</p>", renderString(t, c))
}
