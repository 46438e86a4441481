package decl

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/schema"
	"gopkg.in/yaml.v3"
)

// Annotation names recognised by the generator. Annotations match either
// by qualified name or by simple name.
const (
	AnnotationParser    = "rxhttp.wrapper.annotation.Parser"
	AnnotationParam     = "rxhttp.wrapper.annotation.Param"
	AnnotationConverter = "rxhttp.wrapper.annotation.Converter"
	AnnotationOkClient  = "rxhttp.wrapper.annotation.OkClient"
	AnnotationDomain    = "rxhttp.wrapper.annotation.Domain"
)

var annotationDecoder = schema.NewDecoder()

func init() {
	annotationDecoder.IgnoreUnknownKeys(true)
}

// Args holds annotation arguments. Every argument is a list of strings;
// scalar values decode to single-element lists and class references are
// written as qualified names.
type Args map[string][]string

// UnmarshalYAML accepts scalars and sequences as argument values.
func (a *Args) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	out := make(Args, len(raw))
	for k, v := range raw {
		switch v := v.(type) {
		case nil:
			out[k] = nil
		case []any:
			vals := make([]string, len(v))
			for i, e := range v {
				vals[i] = fmt.Sprint(e)
			}
			out[k] = vals
		default:
			out[k] = []string{fmt.Sprint(v)}
		}
	}
	*a = out
	return nil
}

// Annotation is an annotation instance on a declaration.
type Annotation struct {
	Name string `yaml:"name" json:"name" validate:"required"`
	Args Args   `yaml:"args,omitempty" json:"args,omitempty"`
}

// Is reports whether the annotation matches name by qualified or simple name.
func (a *Annotation) Is(name string) bool {
	if a.Name == name {
		return true
	}
	return simpleName(a.Name) == simpleName(name)
}

// Decode copies the annotation arguments into dst, a pointer to a struct
// with `schema` field tags. Unknown arguments are ignored.
func (a *Annotation) Decode(dst any) error {
	if err := annotationDecoder.Decode(dst, a.Args); err != nil {
		return errors.Wrapf(err, "decode @%s", simpleName(a.Name))
	}
	return nil
}

// ParserAnnotation is the decoded form of @Parser.
type ParserAnnotation struct {
	// Name is the parser alias. Blank means the class simple name.
	Name string `schema:"name"`

	// Wrappers are qualified names of wrapper container classes.
	Wrappers []string `schema:"wrappers"`
}

// ParamAnnotation is the decoded form of @Param.
type ParamAnnotation struct {
	MethodName string `schema:"methodName"`
}

// BuilderAnnotation is the decoded form of @Converter, @OkClient and @Domain.
type BuilderAnnotation struct {
	// Name is the builder name. Blank means the property name with its
	// first letter upper-cased.
	Name string `schema:"name"`

	// ClassName groups registrations into one generated Rx<ClassName>Http.
	ClassName string `schema:"className"`
}

func findAnnotation(anns []Annotation, name string) *Annotation {
	for i := range anns {
		if anns[i].Is(name) {
			return &anns[i]
		}
	}
	return nil
}

func simpleName(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}
