package resume

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elmarvr/resume-v2/internal/content"
	rerrors "github.com/elmarvr/resume-v2/internal/errors"
	"github.com/elmarvr/resume-v2/internal/loader"
	"github.com/elmarvr/resume-v2/internal/locale"
	"github.com/elmarvr/resume-v2/internal/markup"
	"github.com/elmarvr/resume-v2/internal/node"
	"github.com/elmarvr/resume-v2/internal/style"
	"github.com/elmarvr/resume-v2/internal/ui"
)

const shipped = "../../content"

type fixture struct {
	kit    *ui.Kit
	client *Client
}

func newFixture(t *testing.T, root string) fixture {
	t.Helper()
	kit := ui.NewKit(style.NewCompiler(style.DefaultTheme()), ui.DefaultPrimitives())
	reg, err := ui.Markdown(kit)
	require.NoError(t, err)

	store := content.NewStore(root, loader.Default(markup.Func(reg)))
	return fixture{kit: kit, client: NewClient(store, kit.Compiler(), nil)}
}

func (f fixture) load(t *testing.T, code string) (*Resume, error) {
	t.Helper()
	return locale.With(context.Background(), code, f.client.Load)
}

func (f fixture) page(t *testing.T, r *Resume) string {
	t.Helper()
	layout, err := NewLayout(f.kit)
	require.NoError(t, err)
	out, err := node.RenderString(context.Background(), layout.Document(r, layout.Page(r)))
	require.NoError(t, err)
	return out
}

// copyContent copies the shipped content tree so a test can change it.
func copyContent(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.CopyFS(root, os.DirFS(shipped)))
	return root
}

func TestLoadShippedContent(t *testing.T) {
	f := newFixture(t, shipped)

	r, err := f.load(t, "en")
	require.NoError(t, err)

	assert.Equal(t, "en", r.Locale)
	assert.Equal(t, "Experience", r.Messages.Get("experience.title"))
	assert.Equal(t, "Elmar", r.Intro.Meta["name"])
	require.Len(t, r.Experience, 2)
	assert.Equal(t, "Studio North", r.Experience[0].Company)
	assert.Equal(t, []string{"typescript", "react"}, skillNames(r.Experience[0].Skills))
	assert.Equal(t, []string{"go", "postgres", "react"}, skillNames(r.Experience[1].Skills))
	require.Len(t, r.Education, 1)
	assert.Equal(t, 2019, r.Education[0].Meta.Date[1].Year())
	assert.Len(t, r.Courses, 2)
	assert.Equal(t, []string{"Frontend", "Backend", "Testing", "Accessibility", "CI/CD"}, r.Keywords)
}

func skillNames(skills []Skill) []string {
	names := make([]string, len(skills))
	for i, s := range skills {
		names[i] = s.Name
	}
	return names
}

func TestRenderLocales(t *testing.T) {
	f := newFixture(t, shipped)

	en, err := f.load(t, "en")
	require.NoError(t, err)
	out := f.page(t, en)
	assert.Contains(t, out, `<!DOCTYPE html><html lang="en">`)
	assert.Contains(t, out, "<title>Resume</title>")
	assert.Contains(t, out, "Sep 2019 - Feb 2021 (1 year, 5 months)")
	assert.Contains(t, out, "Mar 2021 - Jan 2024 (2 years, 10 months)")
	assert.Contains(t, out, "BSc Computer Science - University of Applied Sciences")
	assert.Contains(t, out, "(2015 - 2019)")
	assert.Contains(t, out, `href="https://epicreact.dev"`)
	assert.Contains(t, out, "<svg")

	nl, err := f.load(t, "nl")
	require.NoError(t, err)
	out = f.page(t, nl)
	assert.Contains(t, out, `<html lang="nl">`)
	assert.Contains(t, out, "Werkervaring")
	assert.Contains(t, out, "sep 2019 - feb 2021 (1 jaar, 5 maanden)")
	assert.NotContains(t, out, "Experience")
}

func TestLoadRequiresLocale(t *testing.T) {
	_, err := newFixture(t, shipped).client.Load(context.Background())

	var ce *rerrors.ContextError
	assert.True(t, errors.As(err, &ce))
}

func TestUnknownLocale(t *testing.T) {
	_, err := newFixture(t, shipped).load(t, "de")

	var ioErr *rerrors.IOError
	assert.True(t, errors.As(err, &ioErr))
}

func TestMissingSkillReference(t *testing.T) {
	root := copyContent(t)
	bad := "---\ntitle: Intern\ncompany: Acme\ndate: [2018-01-01, 2018-06-01]\nlibs: [rust]\n---\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "en", "experience", "00-intern.md"), []byte(bad), 0644))

	_, err := newFixture(t, root).load(t, "en")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no skill found: rust")
	assert.Equal(t, "experience/00-intern.md", rerrors.FilePathOf(err))
}

func TestMissingIconReference(t *testing.T) {
	root := copyContent(t)
	libs := `[{"name": "go", "title": "Go", "icon": "gopher"}]`
	require.NoError(t, os.WriteFile(filepath.Join(root, "libraries.json"), []byte(libs), 0644))

	_, err := newFixture(t, root).load(t, "en")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no icon found: gopher")
}

func TestInvalidExperienceFrontMatter(t *testing.T) {
	root := copyContent(t)
	bad := "---\ntitle: Intern\ndate: [2018-01-01]\n---\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "en", "experience", "00-intern.md"), []byte(bad), 0644))

	_, err := newFixture(t, root).load(t, "en")

	var ve *rerrors.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "date", ve.Path)
	assert.Equal(t, "experience/00-intern.md", rerrors.FilePathOf(err))
}

func TestYearsAndMonths(t *testing.T) {
	date := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}

	tests := []struct {
		start, end    string
		years, months int
	}{
		{"2019-09-01", "2021-02-01", 1, 5},
		{"2021-03-01", "2024-01-01", 2, 10},
		{"2020-01-31", "2020-02-01", 0, 1},
		{"2020-01-01", "2020-01-31", 0, 0},
		{"2018-05-01", "2020-05-01", 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.start+"_"+tt.end, func(t *testing.T) {
			years, months := YearsAndMonths(date(tt.start), date(tt.end))
			assert.Equal(t, tt.years, years)
			assert.Equal(t, tt.months, months)
		})
	}
}

func TestDurationText(t *testing.T) {
	m := Messages{
		"duration.year.one":    "year",
		"duration.year.other":  "years",
		"duration.month.one":   "month",
		"duration.month.other": "months",
	}
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "1 month", m.Duration(start, start.AddDate(0, 1, 0)))
	assert.Equal(t, "0 months", m.Duration(start, start))
	assert.Equal(t, "1 year, 1 month", m.Duration(start, start.AddDate(1, 1, 0)))
	assert.Equal(t, "3 years, 0 months", m.Duration(start, start.AddDate(3, 0, 0)))
}

func TestMessagesFallBackToID(t *testing.T) {
	assert.Equal(t, "courses.title", Messages{}.Get("courses.title"))
}

func TestMonthYear(t *testing.T) {
	d := time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Mar 2021", MonthYear("en", d))
	assert.Equal(t, "mrt 2021", MonthYear("nl", d))
	assert.Equal(t, "mrt 2021", MonthYear("nl-BE", d))
	assert.Equal(t, "Mar 2021", MonthYear("fr", d))
}

func TestLookupKeepsReferenceOrder(t *testing.T) {
	skills := []Skill{{Library: Library{Name: "a"}}, {Library: Library{Name: "b"}}}

	out, err := Lookup(skills, []string{"b", "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, skillNames(out))

	out, err = Lookup(skills, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
