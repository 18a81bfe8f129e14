package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// FilterAll is the filter value that selects the whole catalog.
const FilterAll = "all"

var (
	ErrDuplicateID    = errors.New("catalog: duplicate project id")
	ErrInvalidProject = errors.New("catalog: invalid project")
)

//go:embed projects.yaml
var defaultProjects []byte

// Project is one entry of the portfolio gallery.
type Project struct {
	ID              int      `json:"id" yaml:"id"`
	Title           string   `json:"title" yaml:"title"`
	Description     string   `json:"description" yaml:"description"`
	LongDescription string   `json:"long_description" yaml:"long_description"`
	Technologies    []string `json:"technologies" yaml:"technologies"`
	GitHub          string   `json:"github,omitempty" yaml:"github,omitempty"`
	Demo            string   `json:"demo,omitempty" yaml:"demo,omitempty"`
	Image           string   `json:"image" yaml:"image"`
	UML             string   `json:"uml,omitempty" yaml:"uml,omitempty"`
}

// HasTechnology reports whether tag is one of the project's technologies.
func (p Project) HasTechnology(tag string) bool {
	return slices.Contains(p.Technologies, tag)
}

func (p Project) HasDiagram() bool {
	return strings.TrimSpace(p.UML) != ""
}

func (p Project) clone() Project {
	p.Technologies = slices.Clone(p.Technologies)
	return p
}

// Catalog is the fixed, ordered list of projects. It is never mutated after
// construction and every accessor returns copies.
type Catalog struct {
	projects []Project
	byID     map[int]int
}

// New validates projects and builds a catalog preserving their order.
func New(projects []Project) (*Catalog, error) {
	c := &Catalog{
		projects: make([]Project, 0, len(projects)),
		byID:     make(map[int]int, len(projects)),
	}
	for _, p := range projects {
		if p.ID <= 0 {
			return nil, fmt.Errorf("%w: id %d must be positive", ErrInvalidProject, p.ID)
		}
		if strings.TrimSpace(p.Title) == "" {
			return nil, fmt.Errorf("%w: project %d has no title", ErrInvalidProject, p.ID)
		}
		if _, ok := c.byID[p.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, p.ID)
		}
		c.byID[p.ID] = len(c.projects)
		c.projects = append(c.projects, p.clone())
	}
	return c, nil
}

// Parse decodes a YAML list of projects.
func Parse(data []byte) (*Catalog, error) {
	var projects []Project
	if err := yaml.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("catalog: decode yaml: %w", err)
	}
	return New(projects)
}

// Load reads a catalog file. An empty path yields the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultProjects)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	c, err := Parse(defaultProjects)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Len() int { return len(c.projects) }

// All returns every project in catalog order.
func (c *Catalog) All() []Project {
	out := make([]Project, len(c.projects))
	for i, p := range c.projects {
		out[i] = p.clone()
	}
	return out
}

func (c *Catalog) ByID(id int) (Project, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Project{}, false
	}
	return c.projects[i].clone(), true
}

// Technologies lists each tag once, in order of first appearance.
func (c *Catalog) Technologies() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.projects {
		for _, t := range p.Technologies {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}

// IsFilter reports whether tag selects anything: FilterAll or a known tag.
func (c *Catalog) IsFilter(tag string) bool {
	if tag == FilterAll {
		return true
	}
	for _, p := range c.projects {
		if p.HasTechnology(tag) {
			return true
		}
	}
	return false
}

// Filter returns the projects tagged with tag, in catalog order. FilterAll
// and the empty string return the whole catalog.
func (c *Catalog) Filter(tag string) []Project {
	if tag == FilterAll || tag == "" {
		return c.All()
	}
	var out []Project
	for _, p := range c.projects {
		if p.HasTechnology(tag) {
			out = append(out, p.clone())
		}
	}
	return out
}
