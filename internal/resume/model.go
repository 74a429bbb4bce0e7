// Package resume is the resume client of the content engine.
//
// It declares the schemas of the resume content tree, queries it for the
// locale bound to the request context and lays the result out with the ui
// kit. The content tree looks like:
//
//	content/
//	  icons.json          iconify icon set
//	  libraries.json      skills referenced by experience entries
//	  courses.json
//	  en/
//	    intro.md
//	    messages.json     string catalog
//	    skills.json
//	    experience/*.md
//	    education/*.md
//	  nl/
//	    ...
package resume

import (
	"time"

	"github.com/a-h/templ"

	"github.com/elmarvr/resume-v2/internal/content"
	"github.com/elmarvr/resume-v2/internal/schema"
)

// Library is a technology that experience entries refer to by name.
type Library struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Skill is a library with its icon resolved.
type Skill struct {
	Library
	Badge templ.Component
}

// ExperienceMeta is the front matter of an experience entry.
type ExperienceMeta struct {
	Title   string      `json:"title"`
	Company string      `json:"company"`
	Date    []time.Time `json:"date"`
	Libs    []string    `json:"libs"`
}

// Experience is an experience entry with its libraries resolved.
type Experience struct {
	ExperienceMeta
	Skills  []Skill
	Content templ.Component
}

// Education is the front matter of an education entry.
type Education struct {
	Title       string      `json:"title"`
	Institution string      `json:"institution"`
	Date        []time.Time `json:"date"`
}

// Course is a completed course with a link to it.
type Course struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Resume is everything the layout needs for one locale.
type Resume struct {
	Locale     string
	Messages   Messages
	Intro      content.Document[map[string]any]
	Skills     []Skill
	Experience []Experience
	Education  []content.Document[Education]
	Courses    []Course
	Keywords   []string

	// Bullet marks each course and Divider separates keywords.
	Bullet  templ.Component
	Divider templ.Component
}

var (
	dateRange = schema.Tuple(schema.Date(), schema.Date())

	librariesSchema = schema.Array(schema.Object(
		schema.Field("name", schema.String()),
		schema.Field("title", schema.String()),
		schema.Field("icon", schema.String()),
		schema.Field("color", schema.Optional(schema.String(), nil)),
	))

	experienceSchema = schema.Object(
		schema.Field("title", schema.String()),
		schema.Field("company", schema.Optional(schema.String(), nil)),
		schema.Field("date", dateRange),
		schema.Field("libs", schema.Optional(schema.Array(schema.String()), []any{})),
	)

	educationSchema = schema.Object(
		schema.Field("title", schema.String()),
		schema.Field("institution", schema.String()),
		schema.Field("date", dateRange),
	)

	coursesSchema = schema.Array(schema.Object(
		schema.Field("title", schema.String()),
		schema.Field("url", schema.String()),
	))

	keywordsSchema = schema.Array(schema.String())

	messagesSchema = schema.Map(schema.String())
)
