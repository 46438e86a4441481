// Package decl defines the declaration graph the generator consumes: classes,
// their constructors, type parameters, supertypes and annotations, plus
// annotated properties. A host symbol-resolution facility (a compiler plugin,
// a source indexer, or a hand-written YAML file) produces a Graph; the
// generator only reads it.
package decl

import "strings"

// Visibility is the declared visibility of a class or constructor.
type Visibility string

const (
	Public    Visibility = "public"
	Internal  Visibility = "internal"
	Protected Visibility = "protected"
	Private   Visibility = "private"
)

// IsPublic reports whether v is public. An empty visibility is public,
// matching the Kotlin default.
func (v Visibility) IsPublic() bool {
	return v == "" || v == Public
}

// TypeParameter is a declared type parameter with its upper bounds.
type TypeParameter struct {
	Name   string    `yaml:"name" json:"name" validate:"required"`
	Bounds []TypeRef `yaml:"bounds,omitempty" json:"bounds,omitempty"`
}

// Parameter is a formal parameter of a constructor or function.
type Parameter struct {
	Name   string  `yaml:"name" json:"name" validate:"required"`
	Type   TypeRef `yaml:"type" json:"type"`
	Vararg bool    `yaml:"vararg,omitempty" json:"vararg,omitempty"`
}

// Constructor is a class constructor.
type Constructor struct {
	Visibility     Visibility      `yaml:"visibility,omitempty" json:"visibility,omitempty" validate:"omitempty,oneof=public internal protected private"`
	TypeParameters []TypeParameter `yaml:"typeParameters,omitempty" json:"typeParameters,omitempty" validate:"dive"`
	Parameters     []Parameter     `yaml:"parameters,omitempty" json:"parameters,omitempty" validate:"dive"`
}

// Function is a member function. Only the signature is modelled.
type Function struct {
	Name           string          `yaml:"name" json:"name" validate:"required"`
	TypeParameters []TypeParameter `yaml:"typeParameters,omitempty" json:"typeParameters,omitempty" validate:"dive"`
	Parameters     []Parameter     `yaml:"parameters,omitempty" json:"parameters,omitempty" validate:"dive"`
	Returns        *TypeRef        `yaml:"returns,omitempty" json:"returns,omitempty"`
}

// Class is a class declaration.
type Class struct {
	// Name is the qualified name, e.g. "com.example.ResponseParser".
	Name string `yaml:"name" json:"name" validate:"required"`

	// Package is the package part of Name. When empty it is derived from
	// Name by treating the leading lower-case segments as the package.
	Package string `yaml:"package,omitempty" json:"package,omitempty"`

	// File is the containing source file, used for diagnostics and
	// incremental-build dependencies.
	File string `yaml:"file,omitempty" json:"file,omitempty"`
	Line int    `yaml:"line,omitempty" json:"line,omitempty"`

	Visibility Visibility `yaml:"visibility,omitempty" json:"visibility,omitempty" validate:"omitempty,oneof=public internal protected private"`
	Abstract   bool       `yaml:"abstract,omitempty" json:"abstract,omitempty"`

	TypeParameters []TypeParameter `yaml:"typeParameters,omitempty" json:"typeParameters,omitempty" validate:"dive"`
	Supertypes     []TypeRef       `yaml:"supertypes,omitempty" json:"supertypes,omitempty"`

	// Constructors lists every constructor. A nil slice means the class
	// only has the implicit public no-argument constructor.
	Constructors []Constructor `yaml:"constructors,omitempty" json:"constructors,omitempty" validate:"dive"`

	Functions   []Function   `yaml:"functions,omitempty" json:"functions,omitempty" validate:"dive"`
	Annotations []Annotation `yaml:"annotations,omitempty" json:"annotations,omitempty" validate:"dive"`
}

// SimpleName returns the last segment of the qualified name.
func (c *Class) SimpleName() string {
	if i := strings.LastIndex(c.Name, "."); i >= 0 {
		return c.Name[i+1:]
	}
	return c.Name
}

// Annotation returns the first annotation matching name, or nil.
func (c *Class) Annotation(name string) *Annotation {
	return findAnnotation(c.Annotations, name)
}

// AllConstructors returns the declared constructors, or the implicit
// public no-argument constructor when none are declared.
func (c *Class) AllConstructors() []Constructor {
	if c.Constructors == nil {
		return []Constructor{{Visibility: Public}}
	}
	return c.Constructors
}

// Property is a top-level or member property. Builder annotations
// (@Converter, @OkClient, @Domain) are declared on properties.
type Property struct {
	Name string `yaml:"name" json:"name" validate:"required"`

	// Owner is the qualified name of the enclosing class, if any.
	Owner string `yaml:"owner,omitempty" json:"owner,omitempty"`

	File string `yaml:"file,omitempty" json:"file,omitempty"`
	Line int    `yaml:"line,omitempty" json:"line,omitempty"`

	Annotations []Annotation `yaml:"annotations,omitempty" json:"annotations,omitempty" validate:"dive"`
}

// Annotation returns the first annotation matching name, or nil.
func (p *Property) Annotation(name string) *Annotation {
	return findAnnotation(p.Annotations, name)
}

// QualifiedName returns Owner.Name, or Name for top-level properties.
func (p *Property) QualifiedName() string {
	if p.Owner == "" {
		return p.Name
	}
	return p.Owner + "." + p.Name
}
