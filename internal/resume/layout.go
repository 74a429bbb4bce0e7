package resume

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/elmarvr/resume-v2/internal/node"
	"github.com/elmarvr/resume-v2/internal/ui"
)

// Layout renders resumes with a ui kit.
type Layout struct {
	page, view, text, link, h3, h4 ui.Constructor
}

// NewLayout resolves the components the layout uses from kit.
func NewLayout(kit *ui.Kit) (*Layout, error) {
	l := &Layout{}
	for name, dst := range map[string]*ui.Constructor{
		"page": &l.page,
		"view": &l.view,
		"text": &l.text,
		"link": &l.link,
		"h3":   &l.h3,
		"h4":   &l.h4,
	} {
		c, err := kit.Resolve(name)
		if err != nil {
			return nil, err
		}
		*dst = c
	}
	return l, nil
}

// Page renders the body of the resume.
func (l *Layout) Page(r *Resume) templ.Component {
	return l.page("gap-8 p-6", nil,
		l.section(r.Messages.Get("introduction.title"), "", r.Intro.Content),
		l.section(r.Messages.Get("experience.title"), "gap-6", l.experience(r)...),
		l.section(r.Messages.Get("education.title"), "gap-6", l.education(r)...),
		l.section(r.Messages.Get("courses.title"), "gap-2", l.courses(r)...),
		l.keywords(r),
	)
}

// Document wraps body in an html document for the resume's locale. head is
// appended to the document head.
func (l *Layout) Document(r *Resume, body templ.Component, head ...templ.Component) templ.Component {
	headChildren := []templ.Component{
		node.Element("meta", node.Attrs{{Key: "charset", Value: "utf-8"}}),
		node.Element("meta", node.Attrs{
			{Key: "name", Value: "viewport"},
			{Key: "content", Value: "width=device-width, initial-scale=1"},
		}),
		node.Element("title", nil, node.Text(r.Messages.Get("document.title"))),
	}
	headChildren = append(headChildren, head...)

	return node.Fragment(
		templ.Raw("<!DOCTYPE html>"),
		node.Element("html", node.Attrs{{Key: "lang", Value: r.Locale}},
			node.Element("head", nil, headChildren...),
			node.Element("body", nil, body),
		),
	)
}

func (l *Layout) section(title, gap string, children ...templ.Component) templ.Component {
	return l.view("flex flex-col", nil,
		l.h3("text-2xl font-semibold mb-2", nil, node.Text(title)),
		l.view("flex flex-col "+gap, nil, children...),
	)
}

func (l *Layout) experience(r *Resume) []templ.Component {
	out := make([]templ.Component, 0, len(r.Experience))
	for _, exp := range r.Experience {
		start, end := exp.Date[0], exp.Date[1]
		period := MonthYear(r.Locale, start) + " - " + MonthYear(r.Locale, end) +
			" (" + r.Messages.Duration(start, end) + ")"

		badges := make([]templ.Component, 0, len(exp.Skills))
		for _, s := range exp.Skills {
			badges = append(badges, l.view("flex flex-row items-center gap-2", nil,
				s.Badge,
				l.text("", nil, node.Text(s.Title)),
			))
		}

		out = append(out, l.view("flex flex-col", nil,
			l.h4("text-xl font-semibold", nil, node.Text(exp.Title)),
			l.text("", nil, node.Text(exp.Company)),
			l.text("pb-4", nil, node.Text(period)),
			exp.Content,
			l.view("flex flex-row flex-wrap gap-4", nil, badges...),
		))
	}
	return out
}

func (l *Layout) education(r *Resume) []templ.Component {
	out := make([]templ.Component, 0, len(r.Education))
	for _, ed := range r.Education {
		years := "(" + strconv.Itoa(ed.Meta.Date[0].Year()) + " - " + strconv.Itoa(ed.Meta.Date[1].Year()) + ")"
		out = append(out, l.view("flex flex-col gap-4", nil,
			l.view("flex flex-col", nil,
				l.h4("text-xl font-semibold", nil, node.Text(ed.Meta.Title+" - "+ed.Meta.Institution)),
				l.text("", nil, node.Text(years)),
			),
			ed.Content,
		))
	}
	return out
}

func (l *Layout) courses(r *Resume) []templ.Component {
	out := make([]templ.Component, 0, len(r.Courses))
	for _, c := range r.Courses {
		out = append(out, l.view("flex flex-row items-center gap-2", nil,
			r.Bullet,
			l.link("text-blue-700", node.Attrs{{Key: "href", Value: c.URL}}, node.Text(c.Title)),
		))
	}
	return out
}

func (l *Layout) keywords(r *Resume) templ.Component {
	items := make([]templ.Component, 0, len(r.Keywords))
	for i, k := range r.Keywords {
		var divider templ.Component
		if i > 0 {
			divider = r.Divider
		}
		items = append(items, l.view("flex flex-row items-center gap-2", nil,
			divider,
			l.text("", nil, node.Text(k)),
		))
	}
	return l.section(r.Messages.Get("skills.title"), "", l.view("flex flex-row flex-wrap gap-2", nil, items...))
}
