package resume

import (
	"context"

	"github.com/elmarvr/resume-v2/internal/content"
	rerrors "github.com/elmarvr/resume-v2/internal/errors"
	"github.com/elmarvr/resume-v2/internal/icon"
	"github.com/elmarvr/resume-v2/internal/locale"
	"github.com/elmarvr/resume-v2/internal/logging"
	"github.com/elmarvr/resume-v2/internal/style"
)

// Content file patterns, relative to the content root or, for localized
// queries, to the locale directory.
const (
	IconsFile      = "icons.json"
	LibrariesFile  = "libraries.json"
	CoursesFile    = "courses.*"
	IntroFile      = "intro.md"
	MessagesFile   = "messages.json"
	KeywordsFile   = "skills.json"
	ExperienceGlob = "experience/*.md"
	EducationGlob  = "education/*.md"

	bulletIcon  = "circle"
	dividerIcon = "git-commit-horizontal"
)

// Client loads resumes from a content store.
type Client struct {
	store    *content.Store
	compiler *style.Compiler
	logger   logging.Logger
}

// NewClient creates a client over store. compiler styles the icons.
func NewClient(store *content.Store, compiler *style.Compiler, logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Client{store: store, compiler: compiler, logger: logger.WithComponent("resume")}
}

// Store returns the content store the client reads from.
func (c *Client) Store() *content.Store { return c.store }

// Load reads the resume for the locale bound to ctx. Every query runs
// against the current content tree; nothing is cached between calls.
func (c *Client) Load(ctx context.Context) (*Resume, error) {
	code, err := locale.Use(ctx)
	if err != nil {
		return nil, err
	}

	timer := logging.StartOperation(ctx, c.logger, "load_resume", "locale", code)
	r, err := c.load(ctx, code)
	timer.End(ctx, err)
	return r, err
}

func (c *Client) load(ctx context.Context, code string) (*Resume, error) {
	r := &Resume{Locale: code}

	icons, err := icon.Load(ctx, c.store, IconsFile, c.compiler)
	if err != nil {
		return nil, err
	}

	bullet, err := icons.Component(bulletIcon)
	if err != nil {
		return nil, err
	}
	divider, err := icons.Component(dividerIcon)
	if err != nil {
		return nil, err
	}
	r.Bullet = bullet(icon.WithSize(2), icon.WithColor("blue-700"), icon.WithStrokeWidth(1))
	r.Divider = divider(icon.WithSize(5), icon.WithStrokeWidth(1))

	r.Messages, err = content.Data[Messages](c.store, MessagesFile,
		content.WithSchema(messagesSchema), content.Localized()).First(ctx)
	if err != nil {
		return nil, err
	}

	r.Intro, err = content.Documents[map[string]any](c.store, IntroFile, content.Localized()).First(ctx)
	if err != nil {
		return nil, err
	}

	r.Skills, err = content.Map(
		content.Data[[]Library](c.store, LibrariesFile, content.WithSchema(librariesSchema)),
		func(ctx context.Context, libs []Library) ([]Skill, error) {
			return resolveIcons(icons, libs)
		},
	).First(ctx)
	if err != nil {
		return nil, err
	}

	r.Experience, err = content.Map(
		content.Documents[ExperienceMeta](c.store, ExperienceGlob,
			content.WithSchema(experienceSchema), content.Localized()),
		func(ctx context.Context, doc content.Document[ExperienceMeta]) (Experience, error) {
			skills, err := Lookup(r.Skills, doc.Meta.Libs)
			if err != nil {
				return Experience{}, err
			}
			return Experience{ExperienceMeta: doc.Meta, Skills: skills, Content: doc.Content}, nil
		},
	).All(ctx)
	if err != nil {
		return nil, err
	}

	r.Education, err = content.Documents[Education](c.store, EducationGlob,
		content.WithSchema(educationSchema), content.Localized()).All(ctx)
	if err != nil {
		return nil, err
	}

	r.Courses, err = content.Data[[]Course](c.store, CoursesFile, content.WithSchema(coursesSchema)).First(ctx)
	if err != nil {
		return nil, err
	}

	r.Keywords, err = content.Data[[]string](c.store, KeywordsFile,
		content.WithSchema(keywordsSchema), content.Localized()).First(ctx)
	if err != nil {
		return nil, err
	}

	return r, nil
}

func resolveIcons(icons *icon.Library, libs []Library) ([]Skill, error) {
	skills := make([]Skill, 0, len(libs))
	for _, lib := range libs {
		badge, err := icons.Component(lib.Icon)
		if err != nil {
			return nil, err
		}
		skills = append(skills, Skill{Library: lib, Badge: badge(icon.WithSize(4), icon.WithColor(lib.Color), icon.WithStrokeWidth(2))})
	}
	return skills, nil
}

// Lookup resolves library names against skills, in the order of names. A
// name without a skill is a missing reference.
func Lookup(skills []Skill, names []string) ([]Skill, error) {
	out := make([]Skill, 0, len(names))
	for _, name := range names {
		found := false
		for _, s := range skills {
			if s.Name == name {
				out = append(out, s)
				found = true
				break
			}
		}
		if !found {
			return nil, rerrors.MissingReference("skill", name)
		}
	}
	return out, nil
}
