package parser

import (
	"strings"

	"github.com/cockroachdb/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/broady/rxhttpgen/decl"
	"github.com/broady/rxhttpgen/diag"
	"github.com/broady/rxhttpgen/internal/introspect"
	"github.com/broady/rxhttpgen/ir"
)

// Descriptor is a registered parser.
type Descriptor struct {
	// Alias names the generated functions: toObservable<Alias>.
	Alias string

	Class *introspect.Class

	// Wrappers are the declared wrapper classes in declaration order.
	Wrappers []ir.ClassName
}

// WrapperTypes returns the wrapper containers to expand: kotlin List first,
// then the declared wrappers with duplicates removed.
func (d *Descriptor) WrapperTypes() []ir.ClassName {
	out := []ir.ClassName{ir.List}
	seen := map[string]bool{ir.List.Canonical(): true}
	for _, w := range d.Wrappers {
		if seen[w.Canonical()] {
			continue
		}
		seen[w.Canonical()] = true
		out = append(out, w)
	}
	return out
}

// Registry collects parser descriptors for one generation pass, keyed by
// alias in first-registration order. Registering an alias again replaces
// the descriptor in place and reports a warning.
type Registry struct {
	in       *introspect.Inspector
	reporter diag.Reporter
	parsers  *orderedmap.OrderedMap[string, *Descriptor]
}

// NewRegistry returns an empty registry. Diagnostics go to reporter.
func NewRegistry(in *introspect.Inspector, reporter diag.Reporter) *Registry {
	if reporter == nil {
		reporter = diag.Discard
	}
	return &Registry{
		in:       in,
		reporter: reporter,
		parsers:  orderedmap.New[string, *Descriptor](),
	}
}

// Visit validates and registers a @Parser class. Validation failures are
// reported and the class is skipped; the returned error is reserved for
// failures that are not about the class structure.
func (r *Registry) Visit(c *decl.Class) error {
	ann := c.Annotation(decl.AnnotationParser)
	if ann == nil {
		return nil
	}
	view := r.in.Inspect(c)
	if err := Validate(view); err != nil {
		if diag.Report(r.reporter, err) {
			return nil
		}
		return err
	}

	var pa decl.ParserAnnotation
	if err := ann.Decode(&pa); err != nil {
		return errors.Wrapf(err, "decode @Parser on %s", c.Name)
	}
	alias := pa.Name
	if strings.TrimSpace(alias) == "" {
		alias = c.SimpleName()
	}

	desc := &Descriptor{Alias: alias, Class: view}
	for _, qualified := range pa.Wrappers {
		if !r.in.Resolvable(qualified) {
			diag.Report(r.reporter, errors.WithHint(
				&diag.UnresolvedWrapperError{Loc: view.Location(), Wrapper: qualified},
				"add the wrapper class to the declaration graph"))
		}
		desc.Wrappers = append(desc.Wrappers, r.in.ClassName(qualified))
	}

	if prev, ok := r.parsers.Set(alias, desc); ok {
		diag.Report(r.reporter, &diag.DuplicateAliasError{
			Loc:      view.Location(),
			Kind:     "parser",
			Alias:    alias,
			Previous: prev.Class.Decl.Name,
		})
	}
	return nil
}

// Lookup returns the descriptor registered under alias.
func (r *Registry) Lookup(alias string) (*Descriptor, bool) {
	return r.parsers.Get(alias)
}

// Len returns the number of registered aliases.
func (r *Registry) Len() int {
	return r.parsers.Len()
}

// Descriptors returns the registered descriptors in registration order.
func (r *Registry) Descriptors() []*Descriptor {
	out := make([]*Descriptor, 0, r.parsers.Len())
	for pair := r.parsers.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Dependencies returns the declaration files of every registered parser.
func (r *Registry) Dependencies() ir.Dependencies {
	deps := ir.NewDependencies(true)
	for pair := r.parsers.Oldest(); pair != nil; pair = pair.Next() {
		deps.Add(pair.Value.Class.Decl.File)
	}
	return deps
}
