package decl

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Graph is the complete set of declarations visible to one generation pass.
// Classes and Properties keep their input order; generated output follows it.
type Graph struct {
	Classes    []*Class    `yaml:"classes,omitempty" json:"classes,omitempty" validate:"dive,required"`
	Properties []*Property `yaml:"properties,omitempty" json:"properties,omitempty" validate:"dive,required"`

	index map[string]*Class
}

// Lookup returns the class with the given qualified name.
func (g *Graph) Lookup(name string) (*Class, bool) {
	if g.index == nil {
		g.reindex()
	}
	c, ok := g.index[name]
	return c, ok
}

func (g *Graph) reindex() {
	g.index = make(map[string]*Class, len(g.Classes))
	for _, c := range g.Classes {
		g.index[c.Name] = c
	}
}

// Validate checks required fields and rejects duplicate class names.
func (g *Graph) Validate() error {
	if err := validate.Struct(g); err != nil {
		return errors.Wrap(err, "invalid declaration graph")
	}
	seen := make(map[string]bool, len(g.Classes))
	for _, c := range g.Classes {
		if seen[c.Name] {
			return errors.Newf("invalid declaration graph: duplicate class %q", c.Name)
		}
		seen[c.Name] = true
	}
	g.reindex()
	return nil
}

// Provider supplies the declaration graph.
type Provider interface {
	Load(ctx context.Context) (*Graph, error)
}

// Parse decodes a YAML or JSON declaration graph and validates it.
func Parse(data []byte) (*Graph, error) {
	var g Graph
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, errors.Wrap(err, "parse declaration graph")
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// FileProvider reads a declaration graph from a YAML or JSON file.
type FileProvider struct {
	Path string
}

// Load reads and parses the file.
func (p *FileProvider) Load(ctx context.Context) (*Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, errors.Wrap(err, "read declaration graph")
	}
	g, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", p.Path)
	}
	return g, nil
}

// StaticProvider serves an in-memory graph.
type StaticProvider struct {
	Graph *Graph
}

// Load validates and returns the graph.
func (p *StaticProvider) Load(ctx context.Context) (*Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Graph == nil {
		return &Graph{}, nil
	}
	if err := p.Graph.Validate(); err != nil {
		return nil, err
	}
	return p.Graph, nil
}
