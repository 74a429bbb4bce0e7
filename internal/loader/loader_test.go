package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rerrors "github.com/elmarvr/resume-v2/internal/errors"
)

func writeFile(t *testing.T, name, content string) File {
	t.Helper()
	dir := t.TempDir()
	full := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	return File{Name: name, Path: full}
}

// countingRender records the bodies it receives.
type countingRender struct {
	bodies []string
	err    error
}

func (c *countingRender) render(body string) (templ.Component, error) {
	c.bodies = append(c.bodies, body)
	if c.err != nil {
		return nil, c.err
	}
	return templ.Raw(body), nil
}

func TestDocumentYAMLFrontMatter(t *testing.T) {
	r := &countingRender{}
	f := writeFile(t, "intro.md", "---\ntitle: X\ntags: [a, b]\n---\n\n# X\n\nhello\n")

	v, err := Document(r.render)(context.Background(), f)
	require.NoError(t, err)

	entry := v.(*Entry)
	assert.Equal(t, map[string]any{"title": "X", "tags": []any{"a", "b"}}, entry.Meta)
	assert.Equal(t, "# X\n\nhello\n", entry.Body)
	assert.NotNil(t, entry.Content)
	assert.Equal(t, []string{"# X\n\nhello\n"}, r.bodies)
}

func TestDocumentTOMLFrontMatter(t *testing.T) {
	r := &countingRender{}
	f := writeFile(t, "job.md", "+++\ntitle = \"Engineer\"\nlibs = [\"templ\"]\n+++\nBody")

	v, err := Document(r.render)(context.Background(), f)
	require.NoError(t, err)

	entry := v.(*Entry)
	assert.Equal(t, "Engineer", entry.Meta["title"])
	assert.Equal(t, []any{"templ"}, entry.Meta["libs"])
	assert.Equal(t, "Body", entry.Body)
}

func TestDocumentWithoutFrontMatter(t *testing.T) {
	r := &countingRender{}
	f := writeFile(t, "plain.md", "just text")

	v, err := Document(r.render)(context.Background(), f)
	require.NoError(t, err)

	entry := v.(*Entry)
	assert.Equal(t, map[string]any{}, entry.Meta)
	assert.Equal(t, "just text", entry.Body)
}

func TestDocumentEmptyBodySkipsRenderer(t *testing.T) {
	for _, content := range []string{"---\ntitle: X\n---\n", "---\ntitle: X\n---\n\n   \n", ""} {
		r := &countingRender{}
		f := writeFile(t, "empty.md", content)

		v, err := Document(r.render)(context.Background(), f)
		require.NoError(t, err)

		entry := v.(*Entry)
		assert.Nil(t, entry.Content)
		assert.Empty(t, r.bodies, "renderer invoked for %q", content)
	}
}

func TestDocumentEmptyFrontMatterBlock(t *testing.T) {
	f := writeFile(t, "a.md", "---\n---\nbody")

	v, err := Document(nil)(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, v.(*Entry).Meta)
}

func TestDocumentRenderErrorCarriesFile(t *testing.T) {
	r := &countingRender{err: &rerrors.UnknownComponentError{Tag: "marquee"}}
	f := writeFile(t, "bad.md", "<marquee>hi</marquee>")

	_, err := Document(r.render)(context.Background(), f)
	require.Error(t, err)

	var unknown *rerrors.UnknownComponentError
	assert.True(t, errors.As(err, &unknown))
	assert.Equal(t, "bad.md", rerrors.FilePathOf(err))
}

func TestDocumentUnclosedFrontMatter(t *testing.T) {
	f := writeFile(t, "open.md", "---\ntitle: X\n# never closed")

	_, err := Document(nil)(context.Background(), f)
	require.Error(t, err)
	assert.Equal(t, "open.md", rerrors.FilePathOf(err))
	assert.Contains(t, err.Error(), "missing closing delimiter")
}

func TestDataLoaders(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		content string
		loader  Loader
		want    any
	}{
		{
			name:    "json array",
			file:    "skills.json",
			content: `["Go", "TypeScript"]`,
			loader:  JSON,
			want:    []any{"Go", "TypeScript"},
		},
		{
			name:    "json record",
			file:    "lib.json",
			content: `{"name": "templ", "stars": 8}`,
			loader:  JSON,
			want:    map[string]any{"name": "templ", "stars": float64(8)},
		},
		{
			name:    "jsonc",
			file:    "lib.jsonc",
			content: "{\n  // comment\n  \"name\": \"templ\",\n}",
			loader:  JSONC,
			want:    map[string]any{"name": "templ"},
		},
		{
			name:    "yaml",
			file:    "courses.yaml",
			content: "- title: Go\n  url: https://go.dev\n",
			loader:  YAML,
			want:    []any{map[string]any{"title": "Go", "url": "https://go.dev"}},
		},
		{
			name:    "toml",
			file:    "site.toml",
			content: "name = \"resume\"\n",
			loader:  TOML,
			want:    map[string]any{"name": "resume"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := writeFile(t, tc.file, tc.content)
			got, err := tc.loader(context.Background(), f)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDataLoaderDecodeError(t *testing.T) {
	f := writeFile(t, "broken.json", `{"name": `)

	_, err := JSON(context.Background(), f)
	require.Error(t, err)

	var ce *rerrors.ContentError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, rerrors.ErrCodeDecodeFailed, ce.Code)
	assert.Equal(t, "broken.json", ce.FilePath)
}

func TestLoaderMissingFile(t *testing.T) {
	_, err := JSON(context.Background(), File{Name: "gone.json", Path: filepath.Join(t.TempDir(), "gone.json")})

	var ioErr *rerrors.IOError
	assert.True(t, errors.As(err, &ioErr))
}

func TestRegistryResolve(t *testing.T) {
	reg := Default(nil)

	for _, ext := range []string{"md", "json", "jsonc", "yaml", "yml", "toml"} {
		_, ok := reg.Resolve(ext)
		assert.True(t, ok, ext)
	}

	for _, ext := range []string{"MD", "Json", "txt", "", ".md"} {
		_, ok := reg.Resolve(ext)
		assert.False(t, ok, ext)
	}
}

func TestRegistryIsImmutable(t *testing.T) {
	source := map[string]Loader{"json": JSON}
	reg := NewRegistry(source)

	source["txt"] = JSON
	_, ok := reg.Resolve("txt")
	assert.False(t, ok)

	extended := reg.With("txt", JSON)
	_, ok = extended.Resolve("txt")
	assert.True(t, ok)
	_, ok = reg.Resolve("txt")
	assert.False(t, ok)

	assert.Equal(t, []string{"json", "txt"}, extended.Extensions())
}

func TestExt(t *testing.T) {
	assert.Equal(t, "md", Ext("en/experience/a.md"))
	assert.Equal(t, "MD", Ext("A.MD"))
	assert.Equal(t, "", Ext("README"))
	assert.Equal(t, "json", File{Name: "x.tar.json"}.Ext())
}
