// Package reference holds the built-in catalog of cinematography terms and
// the prompting guide.
package reference

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/shot-cli/internal/core/domain"
)

//go:embed catalog.yaml
var catalogYAML []byte

//go:embed guide.md
var guideMarkdown string

// Term is one insertable reference term
type Term struct {
	Term        string `yaml:"term"`
	Description string `yaml:"description"`
	Section     string `yaml:"-"`
}

// Section groups related terms under a heading
type Section struct {
	Title string `yaml:"title"`
	Terms []Term `yaml:"terms"`
}

// Group is the reference sheet for one form field
type Group struct {
	Name     string    `yaml:"name"`
	Title    string    `yaml:"title"`
	Field    string    `yaml:"field"`
	Sections []Section `yaml:"sections"`
}

// Catalog is the full set of reference groups
type Catalog struct {
	Groups []Group `yaml:"groups"`
}

var (
	loadOnce sync.Once
	loaded   *Catalog
	loadErr  error
)

// Load parses the embedded catalog once
func Load() (*Catalog, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(catalogYAML)
	})
	return loaded, loadErr
}

// Parse decodes a catalog document
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse reference catalog: %w", err)
	}
	for gi := range c.Groups {
		for si := range c.Groups[gi].Sections {
			s := &c.Groups[gi].Sections[si]
			for ti := range s.Terms {
				s.Terms[ti].Section = s.Title
			}
		}
	}
	return &c, nil
}

// Names returns the group names in catalog order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Groups))
	for i, g := range c.Groups {
		names[i] = g.Name
	}
	return names
}

// Group finds a group by its name or by any alias of the field it fills
// ("lighting", "shot", "camera-shot" and "cameraShot" all work)
func (c *Catalog) Group(name string) (*Group, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i := range c.Groups {
		if c.Groups[i].Name == key {
			return &c.Groups[i], nil
		}
	}

	if field, err := domain.ResolveField(name); err == nil {
		for i := range c.Groups {
			if c.Groups[i].Field == field {
				return &c.Groups[i], nil
			}
		}
	}

	return nil, fmt.Errorf("%w: no reference group %q (have %s)",
		domain.ErrNotFound, name, strings.Join(c.Names(), ", "))
}

// Terms returns every term in the group in sheet order
func (g *Group) Terms() []Term {
	var terms []Term
	for _, s := range g.Sections {
		terms = append(terms, s.Terms...)
	}
	return terms
}

// Find returns terms whose name contains query (case-insensitive).
// Exact matches come first, then prefix matches, then the rest in sheet order.
func (g *Group) Find(query string) []Term {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return g.Terms()
	}

	type ranked struct {
		term Term
		rank int
	}
	var matches []ranked
	for _, t := range g.Terms() {
		name := strings.ToLower(t.Term)
		switch {
		case name == q:
			matches = append(matches, ranked{t, 0})
		case strings.HasPrefix(name, q):
			matches = append(matches, ranked{t, 1})
		case strings.Contains(name, q):
			matches = append(matches, ranked{t, 2})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].rank < matches[j].rank
	})

	out := make([]Term, len(matches))
	for i, m := range matches {
		out[i] = m.term
	}
	return out
}

// Guide returns the raw markdown prompting guide
func Guide() string {
	return guideMarkdown
}

// RenderGuide renders the guide for the terminal. style is a glamour style
// name ("dark", "light", "notty"); empty or "auto" detects the terminal.
func RenderGuide(style string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}

	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		styleOpt = glamour.WithStandardStyle(style)
	}

	renderer, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(guideMarkdown)
	if err != nil {
		return "", fmt.Errorf("failed to render guide: %w", err)
	}
	return out, nil
}
