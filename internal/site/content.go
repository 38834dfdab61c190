package site

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"folio-cli/internal/palette"

	"gopkg.in/yaml.v3"
)

// Content is everything the page renders. Every surface (TUI, web) reads the
// same value.
type Content struct {
	Brand    string           `json:"brand" yaml:"brand"`
	Tagline  string           `json:"tagline" yaml:"tagline"`
	Hero     Hero             `json:"hero" yaml:"hero"`
	Sections []Section        `json:"sections" yaml:"sections"`
	Metrics  []Metric         `json:"metrics" yaml:"metrics"`
	Events   []Event          `json:"events" yaml:"events"`
	Projects []Project        `json:"projects" yaml:"projects"`
	Actions  []palette.Action `json:"actions" yaml:"actions"`
	Contact  ContactCopy      `json:"contact" yaml:"contact"`
}

type Hero struct {
	Eyebrow  string `json:"eyebrow" yaml:"eyebrow"`
	Headline string `json:"headline" yaml:"headline"`
	Lede     string `json:"lede" yaml:"lede"`
}

// Section is one addressable block of the page. ID is the anchor palette
// actions navigate to; Body is markdown.
type Section struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`
}

type Project struct {
	Title   string   `json:"title" yaml:"title"`
	Summary string   `json:"summary" yaml:"summary"`
	Tags    []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	URL     string   `json:"url,omitempty" yaml:"url,omitempty"`
}

type ContactCopy struct {
	Heading     string `json:"heading" yaml:"heading"`
	Prompt      string `json:"prompt" yaml:"prompt"`
	ReplyWindow string `json:"replyWindow" yaml:"replyWindow"`
}

// Section IDs used by the built-in content.
const (
	SectionHero     = "hero"
	SectionProjects = "projects"
	SectionStack    = "stack"
	SectionActivity = "activity"
	SectionContact  = "contact"
)

// SectionByAnchor finds a section by "#id" or "id".
func (c Content) SectionByAnchor(anchor string) (Section, int, bool) {
	id := strings.TrimPrefix(palette.NormalizeAnchor(anchor), "#")
	for i, s := range c.Sections {
		if s.ID == id {
			return s, i, true
		}
	}
	return Section{}, -1, false
}

// ValidationError lists every problem found in a content file.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid content: " + strings.Join(e.Problems, "; ")
}

// Validate checks that the page is internally consistent: sections are
// uniquely addressable and every internal action points at one of them.
func (c Content) Validate() error {
	var problems []string

	ids := map[string]bool{}
	for i, s := range c.Sections {
		id := strings.TrimSpace(s.ID)
		switch {
		case id == "":
			problems = append(problems, fmt.Sprintf("section %d: missing id", i))
		case ids[id]:
			problems = append(problems, fmt.Sprintf("section %q: duplicate id", id))
		}
		ids[id] = true
	}

	for i, a := range c.Actions {
		name := strings.TrimSpace(a.Title)
		if name == "" {
			problems = append(problems, fmt.Sprintf("action %d: missing title", i))
			name = fmt.Sprintf("#%d", i)
		}
		dest := strings.TrimSpace(a.Destination)
		if dest == "" {
			problems = append(problems, fmt.Sprintf("action %q: missing destination", name))
			continue
		}
		if a.External {
			if !strings.Contains(dest, "://") && !strings.HasPrefix(dest, "mailto:") {
				problems = append(problems, fmt.Sprintf("action %q: external destination %q is not a URL", name, dest))
			}
			continue
		}
		if _, _, ok := c.SectionByAnchor(dest); !ok {
			problems = append(problems, fmt.Sprintf("action %q: unknown section %q", name, dest))
		}
	}

	for i, m := range c.Metrics {
		if strings.TrimSpace(m.Label) == "" {
			problems = append(problems, fmt.Sprintf("metric %d: missing label", i))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Load reads a content file and layers it over Default with Overlay. An empty
// path returns Default.
func Load(path string) (Content, error) {
	c := Default()
	path = strings.TrimSpace(path)
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Content{}, fmt.Errorf("read content: %w", err)
	}
	var file Content
	if err := Decode(b, FormatForPath(path), &file); err != nil {
		return Content{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	c = Overlay(c, file)
	if err := c.Validate(); err != nil {
		return Content{}, err
	}
	return c, nil
}

// Decode parses b as "yaml" or "json" into c.
func Decode(b []byte, format string, c *Content) error {
	switch format {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		return dec.Decode(c)
	case "yaml", "":
		if len(bytes.TrimSpace(b)) == 0 {
			return nil
		}
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		return dec.Decode(c)
	default:
		return fmt.Errorf("unknown content format: %s", format)
	}
}

// Encode writes c as "yaml" or "json".
func Encode(c Content, format string) ([]byte, error) {
	switch format {
	case "json":
		b, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case "yaml", "":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.New("unknown content format: " + format)
	}
}

// FormatForPath reports the content format implied by a file extension.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}

// Overlay returns base with every top-level field that top sets replaced.
// Lists replace wholesale; they are never merged element by element.
func Overlay(base, top Content) Content {
	out := base
	if top.Brand != "" {
		out.Brand = top.Brand
	}
	if top.Tagline != "" {
		out.Tagline = top.Tagline
	}
	if top.Hero != (Hero{}) {
		out.Hero = top.Hero
	}
	if len(top.Sections) > 0 {
		out.Sections = top.Sections
	}
	if len(top.Metrics) > 0 {
		out.Metrics = top.Metrics
	}
	if len(top.Events) > 0 {
		out.Events = top.Events
	}
	if len(top.Projects) > 0 {
		out.Projects = top.Projects
	}
	if len(top.Actions) > 0 {
		out.Actions = top.Actions
	}
	if top.Contact != (ContactCopy{}) {
		out.Contact = top.Contact
	}
	return out
}
