package request

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/broady/rxhttpgen/decl"
	"github.com/broady/rxhttpgen/diag"
	"github.com/broady/rxhttpgen/ir"
)

// Wrapper holds the builder names configured for one output class. An
// empty name means the field is not set.
type Wrapper struct {
	ConverterName string
	OkClientName  string
	DomainName    string
}

// builderField is one of the three builder annotations.
type builderField struct {
	annotation string
	simple     string
	slot       func(*Wrapper) *string
}

var builderFields = []builderField{
	{decl.AnnotationConverter, "Converter", func(w *Wrapper) *string { return &w.ConverterName }},
	{decl.AnnotationOkClient, "OkClient", func(w *Wrapper) *string { return &w.OkClientName }},
	{decl.AnnotationDomain, "Domain", func(w *Wrapper) *string { return &w.DomainName }},
}

// Wrappers maps output class names to their builder configuration, in
// first-registration order.
type Wrappers struct {
	reporter diag.Reporter
	classes  *orderedmap.OrderedMap[string, *Wrapper]
	deps     ir.Dependencies
}

// NewWrappers returns an empty set.
func NewWrappers(reporter diag.Reporter) *Wrappers {
	if reporter == nil {
		reporter = diag.Discard
	}
	return &Wrappers{
		reporter: reporter,
		classes:  orderedmap.New[string, *Wrapper](),
	}
}

// AddProperty registers the @Converter, @OkClient and @Domain annotations
// of p. Annotations with an empty className are ignored. Setting a field
// that is already set reports a DuplicateWrapperFieldError and keeps the
// new value.
func (ws *Wrappers) AddProperty(p *decl.Property) error {
	for _, f := range builderFields {
		ann := p.Annotation(f.annotation)
		if ann == nil {
			continue
		}
		var ba decl.BuilderAnnotation
		if err := ann.Decode(&ba); err != nil {
			return errors.Wrapf(err, "decode @%s on %s", f.simple, p.QualifiedName())
		}
		if ba.ClassName == "" {
			continue
		}
		w, ok := ws.classes.Get(ba.ClassName)
		if !ok {
			w = &Wrapper{}
			ws.classes.Set(ba.ClassName, w)
		}
		slot := f.slot(w)
		if *slot != "" {
			diag.Report(ws.reporter, &diag.DuplicateWrapperFieldError{
				Loc:        diag.Location{Symbol: p.QualifiedName(), File: p.File, Line: p.Line},
				Annotation: f.simple,
				ClassName:  ba.ClassName,
			})
		}
		name := ba.Name
		if strings.TrimSpace(name) == "" {
			name = upperFirst(p.Name)
		}
		*slot = name
		ws.deps.Add(p.File)
	}
	return nil
}

// Lookup returns the wrapper for className.
func (ws *Wrappers) Lookup(className string) (*Wrapper, bool) {
	return ws.classes.Get(className)
}

// Len returns the number of output classes.
func (ws *Wrappers) Len() int {
	return ws.classes.Len()
}

// Each calls fn for every output class in registration order.
func (ws *Wrappers) Each(fn func(className string, w *Wrapper)) {
	for pair := ws.classes.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Dependencies returns the files of every registered property.
func (ws *Wrappers) Dependencies() ir.Dependencies {
	return ws.deps
}

// upperFirst upper-cases the first letter only, leaving the rest as is.
func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
