package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elmarvr/resume-v2/internal/config"
	rerrors "github.com/elmarvr/resume-v2/internal/errors"
)

const shipped = "../content"

// execute runs the root command with args and returns its output. Flag
// variables are reset first because cobra keeps them between runs.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	listLocale = ""
	listFlags.OutputFormat = "table"
	buildFlags.Locales = nil
	buildOutput = "dist"
	checkFlags.Locales = nil
	previewStyle = "auto"
	previewWidth = 0
	versionFormat = "text"
	versionShort = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func testApp(t *testing.T, root string) *app {
	t.Helper()
	v := viper.New()
	v.Set("content.root", root)
	v.Set("log.level", "error")
	cfg, err := config.LoadFrom(v)
	require.NoError(t, err)

	a, err := newApp(cfg)
	require.NoError(t, err)
	return a
}

// brokenContent copies the shipped content and points an English job at a
// library that does not exist.
func brokenContent(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.CopyFS(root, os.DirFS(shipped)))
	bad := "---\ntitle: Intern\ncompany: Acme\ndate: [2018-01-01, 2018-06-01]\nlibs: [rust]\n---\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "en", "experience", "00-intern.md"), []byte(bad), 0644))
	return root
}

func TestBuildWritesEveryLocale(t *testing.T) {
	a := testApp(t, shipped)
	dir := filepath.Join(t.TempDir(), "dist")

	written, err := a.build(context.Background(), a.cfg.Content.Locales, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "en.html"),
		filepath.Join(dir, "index.html"),
		filepath.Join(dir, "nl.html"),
	}, written)

	en, err := os.ReadFile(filepath.Join(dir, "en.html"))
	require.NoError(t, err)
	index, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	nl, err := os.ReadFile(filepath.Join(dir, "nl.html"))
	require.NoError(t, err)

	assert.Equal(t, en, index)
	assert.Contains(t, string(en), `<html lang="en">`)
	assert.Contains(t, string(nl), `<html lang="nl">`)
	assert.NotContains(t, string(en), "new WebSocket")
}

func TestBuildReportsBrokenLocale(t *testing.T) {
	a := testApp(t, brokenContent(t))

	_, err := a.build(context.Background(), []string{"en"}, t.TempDir())
	require.Error(t, err)

	var enhanced *rerrors.EnhancedError
	require.True(t, errors.As(err, &enhanced))
	assert.Contains(t, err.Error(), "no skill found: rust")
	assert.Contains(t, err.Error(), "Suggestions:")
}

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "build", "--content", shipped, "--locale", "nl", "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+filepath.Join(dir, "nl.html"))
	assert.FileExists(t, filepath.Join(dir, "nl.html"))
	assert.NoFileExists(t, filepath.Join(dir, "en.html"))
}

func TestBuildRejectsUnknownLocale(t *testing.T) {
	_, err := execute(t, "build", "--content", shipped, "--locale", "fr", "-o", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `locale "fr" is not configured`)

	_, err = execute(t, "build", "--content", shipped, "--locale", "not a tag")
	assert.Error(t, err)
}

func TestWriteList(t *testing.T) {
	entries := []listEntry{
		{Path: "courses.jsonc", Loader: "jsonc"},
		{Path: "notes.txt", Loader: "-"},
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeList(&buf, "table", entries))
		assert.Equal(t, "PATH           LOADER\ncourses.jsonc  jsonc\nnotes.txt      -\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeList(&buf, "json", entries))
		var got []listEntry
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, entries, got)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeList(&buf, "yaml", entries))
		assert.Contains(t, buf.String(), "- path: courses.jsonc\n  loader: jsonc\n")
	})

	t.Run("empty table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeList(&buf, "table", nil))
		assert.Equal(t, "No files found.\n", buf.String())
	})

	t.Run("unknown format", func(t *testing.T) {
		assert.Error(t, writeList(&bytes.Buffer{}, "csv", entries))
	})
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, "list", "experience/*", "--in", "en", "--content", shipped, "-f", "json")
	require.NoError(t, err)

	var got []listEntry
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []listEntry{
		{Path: "experience/01-agency.md", Loader: "md"},
		{Path: "experience/02-product.md", Loader: "md"},
	}, got)
}

func TestListCommandRejectsBadFormat(t *testing.T) {
	_, err := execute(t, "list", "--content", shipped, "-f", "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format csv")
}

func TestCheckCommand(t *testing.T) {
	out, err := execute(t, "check", "--content", shipped)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ en: 2 experience, 1 education, 2 courses, 4 skills")
	assert.Contains(t, out, "✓ nl:")
}

func TestCheckCommandReportsFailures(t *testing.T) {
	out, err := execute(t, "check", "--content", brokenContent(t))
	require.Error(t, err)
	assert.Equal(t, "1 of 2 locales failed", err.Error())
	assert.Contains(t, out, "✗ en:")
	assert.Contains(t, out, "no skill found: rust")
	assert.Contains(t, out, "Suggestions:")
	assert.Contains(t, out, "✓ nl:")
}

func TestPreviewDocument(t *testing.T) {
	out, err := execute(t, "preview", "en/intro.md", "--content", shipped)
	require.NoError(t, err)
	assert.Contains(t, out, "---\nname: Elmar\n---\n")
	assert.Contains(t, out, "software developer")
	// Output is not a terminal, so auto falls back to notty, which keeps
	// emphasis markers as plain text.
	assert.Contains(t, out, "**fast**")

	out, err = execute(t, "preview", "en/intro.md", "--content", shipped, "--style", "dark")
	require.NoError(t, err)
	assert.Contains(t, out, "fast")
	assert.NotContains(t, out, "**fast**")
}

func TestPreviewData(t *testing.T) {
	out, err := execute(t, "preview", "courses.jsonc", "--content", shipped)
	require.NoError(t, err)
	assert.Contains(t, out, "url: https://epicreact.dev")
}

func TestPreviewErrors(t *testing.T) {
	_, err := execute(t, "preview", "notes.txt", "--content", shipped)
	assert.ErrorContains(t, err, `no loader for "txt" files`)

	_, err = execute(t, "preview", "en/missing.md", "--content", shipped)
	var ioErr *rerrors.IOError
	assert.True(t, errors.As(err, &ioErr))
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version", "--format", "json")
	require.NoError(t, err)

	var info map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Contains(t, info, "version")
	assert.Contains(t, info, "go_version")

	_, err = execute(t, "version", "--format", "xml")
	assert.Error(t, err)
}

func TestSelectLocales(t *testing.T) {
	configured := []string{"en", "nl"}

	got, err := (&StandardFlags{}).SelectLocales(configured)
	require.NoError(t, err)
	assert.Equal(t, configured, got)

	got, err = (&StandardFlags{Locales: []string{"nl"}}).SelectLocales(configured)
	require.NoError(t, err)
	assert.Equal(t, []string{"nl"}, got)

	_, err = (&StandardFlags{Locales: []string{"de"}}).SelectLocales(configured)
	assert.Error(t, err)
}

func TestValidators(t *testing.T) {
	assert.NoError(t, ValidatePort("0"))
	assert.NoError(t, ValidatePort("8080"))
	assert.Error(t, ValidatePort("http"))
	assert.Error(t, ValidatePort("70000"))

	assert.NoError(t, ValidateLocales("en,nl-BE"))
	assert.Error(t, ValidateLocales("en,not a tag"))

	assert.NoError(t, ValidateFormat("json", []string{"table", "json"}))
	assert.Error(t, ValidateFormat("csv", []string{"table", "json"}))
}
