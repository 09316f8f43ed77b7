// Package content serves the site's curated catalogs: training modules,
// events, partners and job postings. The catalogs are authored as YAML,
// embedded at build time, and read-only at runtime.
package content

import (
	"bytes"
	"embed"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v2"

	internal_errors "github.com/aviationlaunchpad/launchpad/internal/errors"
)

//go:embed catalogs/*.yaml
var catalogsFS embed.FS

type Lesson struct {
	Id       string `yaml:"id" json:"id"`
	Title    string `yaml:"title" json:"title"`
	Duration string `yaml:"duration" json:"duration"`
	Body     string `yaml:"body" json:"-"`
	// BodyHTML is filled in per request from the markdown body.
	BodyHTML string `yaml:"-" json:"body_html,omitempty"`
}

type TrainingModule struct {
	Id          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Duration    string   `yaml:"duration" json:"duration"`
	Status      string   `yaml:"status" json:"status"` // available | coming-soon
	Lessons     []Lesson `yaml:"lessons" json:"lessons,omitempty"`
}

type Event struct {
	Title    string `yaml:"title" json:"title"`
	Date     string `yaml:"date" json:"date"`
	Location string `yaml:"location" json:"location"`
	Summary  string `yaml:"summary" json:"summary"`
	Past     bool   `yaml:"past" json:"past"`
}

type Partner struct {
	Name    string `yaml:"name" json:"name"`
	Kind    string `yaml:"kind" json:"kind"`
	Website string `yaml:"website" json:"website"`
	Blurb   string `yaml:"blurb" json:"blurb"`
}

type JobPosting struct {
	Title    string `yaml:"title" json:"title"`
	Company  string `yaml:"company" json:"company"`
	Location string `yaml:"location" json:"location"`
	Kind     string `yaml:"kind" json:"kind"` // full-time | co-op | apprenticeship
	Link     string `yaml:"link" json:"link"`
}

type Catalog struct {
	Training []TrainingModule
	Events   []Event
	Partners []Partner
	Careers  []JobPosting

	markdown goldmark.Markdown
	sanitize *bluemonday.Policy
}

func load(name string, out interface{}) error {
	raw, err := catalogsFS.ReadFile("catalogs/" + name)
	if err != nil {
		return fmt.Errorf("missing catalog %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("bad catalog %s: %w", name, err)
	}
	return nil
}

func Load() (*Catalog, error) {
	c := &Catalog{
		markdown: goldmark.New(),
		// Lesson bodies are authored in-house, but they pass through the
		// same UGC policy as everything else we render.
		sanitize: bluemonday.UGCPolicy(),
	}
	if err := load("training.yaml", &c.Training); err != nil {
		return nil, err
	}
	if err := load("events.yaml", &c.Events); err != nil {
		return nil, err
	}
	if err := load("partners.yaml", &c.Partners); err != nil {
		return nil, err
	}
	if err := load("careers.yaml", &c.Careers); err != nil {
		return nil, err
	}
	return c, nil
}

// TrainingIndex lists modules without lesson bodies.
func (c *Catalog) TrainingIndex() []TrainingModule {
	out := make([]TrainingModule, len(c.Training))
	for i, m := range c.Training {
		m.Lessons = nil
		out[i] = m
	}
	return out
}

// TrainingModule returns one module with every lesson's markdown rendered
// to sanitized HTML.
func (c *Catalog) TrainingModule(id string) (TrainingModule, error) {
	for _, m := range c.Training {
		if m.Id != id {
			continue
		}
		lessons := make([]Lesson, len(m.Lessons))
		for i, l := range m.Lessons {
			html, err := c.renderMarkdown(l.Body)
			if err != nil {
				return TrainingModule{}, err
			}
			l.BodyHTML = html
			lessons[i] = l
		}
		m.Lessons = lessons
		return m, nil
	}
	return TrainingModule{}, internal_errors.NotFound("Training module not found")
}

func (c *Catalog) renderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := c.markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to render lesson: %w", err)
	}
	return c.sanitize.Sanitize(buf.String()), nil
}
