// Package request generates the Rx<ClassName>Http objects: the fixed HTTP
// verb factories, one factory per @Param class constructor, and the private
// wrapper() helper that applies the configured converter, client and domain.
package request

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/iancoleman/strcase"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/broady/rxhttpgen/decl"
	"github.com/broady/rxhttpgen/diag"
	"github.com/broady/rxhttpgen/internal/introspect"
	"github.com/broady/rxhttpgen/ir"
)

// Descriptor is a registered @Param class.
type Descriptor struct {
	// Alias is the factory name, taken from @Param(methodName).
	Alias string

	Class *introspect.Class
}

// Registry collects @Param classes by method name in first-registration
// order. A later class with the same method name replaces the earlier one
// and a warning is reported.
type Registry struct {
	in       *introspect.Inspector
	reporter diag.Reporter
	params   *orderedmap.OrderedMap[string, *Descriptor]
	deps     ir.Dependencies
}

// NewRegistry returns an empty registry.
func NewRegistry(in *introspect.Inspector, reporter diag.Reporter) *Registry {
	if reporter == nil {
		reporter = diag.Discard
	}
	return &Registry{
		in:       in,
		reporter: reporter,
		params:   orderedmap.New[string, *Descriptor](),
	}
}

// Visit registers c if it carries @Param. A blank method name falls back
// to the lower camel case of the class simple name.
func (r *Registry) Visit(c *decl.Class) error {
	ann := c.Annotation(decl.AnnotationParam)
	if ann == nil {
		return nil
	}
	var pa decl.ParamAnnotation
	if err := ann.Decode(&pa); err != nil {
		return errors.Wrapf(err, "decode @Param on %s", c.Name)
	}
	alias := strings.TrimSpace(pa.MethodName)
	if alias == "" {
		alias = strcase.ToLowerCamel(c.SimpleName())
	}

	view := r.in.Inspect(c)
	desc := &Descriptor{Alias: alias, Class: view}
	if prev, ok := r.params.Set(alias, desc); ok {
		diag.Report(r.reporter, &diag.DuplicateAliasError{
			Loc:      view.Location(),
			Kind:     "param",
			Alias:    alias,
			Previous: prev.Class.Decl.Name,
		})
	}
	r.deps.Add(c.File)
	return nil
}

// Lookup returns the descriptor registered under alias.
func (r *Registry) Lookup(alias string) (*Descriptor, bool) {
	return r.params.Get(alias)
}

// Descriptors returns the registered descriptors in registration order.
func (r *Registry) Descriptors() []*Descriptor {
	out := make([]*Descriptor, 0, r.params.Len())
	for pair := r.params.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Dependencies returns the files of every visited @Param class.
func (r *Registry) Dependencies() ir.Dependencies {
	return r.deps
}
