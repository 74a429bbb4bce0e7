package icon

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elmarvr/resume-v2/internal/content"
	rerrors "github.com/elmarvr/resume-v2/internal/errors"
	"github.com/elmarvr/resume-v2/internal/loader"
	"github.com/elmarvr/resume-v2/internal/node"
	"github.com/elmarvr/resume-v2/internal/style"
)

const iconsJSON = `{
  "prefix": "lucide",
  "icons": {
    "circle": {"body": "<circle cx=\"12\" cy=\"12\" r=\"10\"/>"},
    "git-commit-horizontal": {
      "body": "<circle cx=\"12\" cy=\"12\" r=\"3\"/><line x1=\"3\" x2=\"9\" y1=\"12\" y2=\"12\"/><line x1=\"15\" x2=\"21\" y1=\"12\" y2=\"12\"/>"
    },
    "wide": {"body": "<path d=\"M0 0h32\" stroke=\"red\"/>", "width": 32}
  },
  "width": 24,
  "height": 24
}`

func load(t *testing.T) *Library {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "icons.json"), []byte(iconsJSON), 0644))

	store := content.NewStore(root, loader.Default(nil))
	lib, err := Load(context.Background(), store, "icons.json", style.NewCompiler(style.DefaultTheme()))
	require.NoError(t, err)
	return lib
}

func render(t *testing.T, lib *Library, name string, opts ...Option) string {
	t.Helper()
	icon, err := lib.Component(name)
	require.NoError(t, err)
	out, err := node.RenderString(context.Background(), icon(opts...))
	require.NoError(t, err)
	return out
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"circle", "git-commit-horizontal", "wide"}, load(t).Names())
}

func TestDefaults(t *testing.T) {
	out := render(t, load(t), "circle")

	assert.Equal(t,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" width="1.5rem" height="1.5rem">`+
			`<circle cx="12" cy="12" r="10" stroke="#171717" stroke-width="4"></circle></svg>`,
		out)
}

func TestInstanceOverrides(t *testing.T) {
	lib := load(t)

	out := render(t, lib, "circle", WithColor("blue-700"), WithSize(2), WithStrokeWidth(1))
	assert.Contains(t, out, `width="0.5rem" height="0.5rem"`)
	assert.Contains(t, out, `stroke="#1d4ed8" stroke-width="1"`)

	// The cached body does not keep the previous instance's stroke.
	out = render(t, lib, "circle")
	assert.Contains(t, out, `stroke="#171717" stroke-width="4"`)
}

func TestEveryShapeIsStroked(t *testing.T) {
	out := render(t, load(t), "git-commit-horizontal", WithStrokeWidth(1.5))
	assert.Contains(t, out, `<circle cx="12" cy="12" r="3" stroke="#171717" stroke-width="1.5"></circle>`)
	assert.Contains(t, out, `<line x1="3" x2="9" y1="12" y2="12" stroke="#171717" stroke-width="1.5"></line>`)
}

func TestOwnStrokeIsReplaced(t *testing.T) {
	out := render(t, load(t), "wide", WithColor("green-600"))
	assert.Contains(t, out, `viewBox="0 0 32 24"`)
	assert.NotContains(t, out, `stroke="red"`)
}

func TestUnknownColorKeepsShapeStroke(t *testing.T) {
	out := render(t, load(t), "wide", WithColor("no-such-colour"))
	assert.Contains(t, out, `stroke="red"`)
}

func TestMissingIcon(t *testing.T) {
	_, err := load(t).Component("nope")
	require.Error(t, err)

	var ce *rerrors.ContentError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, rerrors.ErrCodeMissingReference, ce.Code)
	assert.Contains(t, err.Error(), "no icon found: nope")
}

func TestInvalidSet(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "icons.json"), []byte(`{"icons": {"x": {}}}`), 0644))

	_, err := Load(context.Background(), content.NewStore(root, loader.Default(nil)), "icons.json",
		style.NewCompiler(style.DefaultTheme()))
	var ve *rerrors.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "icons.x.body", ve.Path)
}
