// Package ir defines the output model of the generator: type names, function
// signatures, statement trees, and files. Emitters such as the kotlin package
// turn these values into source text; the generator itself never builds
// source strings.
package ir

import (
	"strings"
	"unicode"
)

// TypeKind identifies the category of a TypeName.
type TypeKind int

const (
	KindClass         TypeKind = iota // Named class, e.g. kotlin.String
	KindParameterized                 // Class applied to type arguments, e.g. List<T>
	KindTypeVariable                  // Type variable, e.g. T
	KindStar                          // Star projection (*)
	KindProjection                    // Use-site variance, e.g. out T
)

// String returns the string representation of the type kind.
func (k TypeKind) String() string {
	switch k {
	case KindClass:
		return "Class"
	case KindParameterized:
		return "Parameterized"
	case KindTypeVariable:
		return "TypeVariable"
	case KindStar:
		return "Star"
	case KindProjection:
		return "Projection"
	default:
		return "Unknown"
	}
}

// TypeName is the base interface for all type expressions.
type TypeName interface {
	// Kind returns the type kind for type switching.
	Kind() TypeKind

	// IsNullable reports whether the type carries the nullable marker.
	IsNullable() bool

	// WithNullable returns a copy of the type with the nullable marker set.
	WithNullable(nullable bool) TypeName

	// String returns the canonical, fully qualified form,
	// e.g. "kotlin.collections.List<T>?".
	String() string

	// Ensure only types in this package can implement TypeName.
	sealed()
}

// ClassName is a reference to a named class.
type ClassName struct {
	// Package is the package qualifier, e.g. "kotlin.collections".
	// Empty for classes in the default package.
	Package string

	// Name is the simple name. Nested classes are joined with dots,
	// e.g. "Outer.Inner".
	Name string

	Nullable bool
}

// NewClassName returns a non-nullable ClassName.
func NewClassName(pkg, name string) ClassName {
	return ClassName{Package: pkg, Name: name}
}

// BestGuess splits a qualified name into package and class parts, treating
// every segment up to the first capitalized one as the package.
// "com.example.Outer.Inner" yields package "com.example", name "Outer.Inner".
func BestGuess(qualified string) ClassName {
	parts := strings.Split(qualified, ".")
	for i, p := range parts {
		if p != "" && unicode.IsUpper([]rune(p)[0]) {
			return ClassName{
				Package: strings.Join(parts[:i], "."),
				Name:    strings.Join(parts[i:], "."),
			}
		}
	}
	// No capitalized segment: the last one is the class name.
	last := len(parts) - 1
	return ClassName{Package: strings.Join(parts[:last], "."), Name: parts[last]}
}

func (c ClassName) Kind() TypeKind   { return KindClass }
func (c ClassName) IsNullable() bool { return c.Nullable }
func (c ClassName) sealed()          {}

func (c ClassName) WithNullable(nullable bool) TypeName {
	c.Nullable = nullable
	return c
}

// Canonical returns the qualified name without the nullable marker.
func (c ClassName) Canonical() string {
	if c.Package == "" {
		return c.Name
	}
	return c.Package + "." + c.Name
}

// Simple returns the innermost simple name.
func (c ClassName) Simple() string {
	if i := strings.LastIndex(c.Name, "."); i >= 0 {
		return c.Name[i+1:]
	}
	return c.Name
}

// TopLevel returns the outermost enclosing class.
func (c ClassName) TopLevel() ClassName {
	name := c.Name
	if i := strings.Index(name, "."); i >= 0 {
		name = name[:i]
	}
	return ClassName{Package: c.Package, Name: name}
}

// NonNull returns the class without the nullable marker.
func (c ClassName) NonNull() ClassName {
	c.Nullable = false
	return c
}

// Parameterized applies type arguments to the class.
func (c ClassName) Parameterized(args ...TypeName) ParameterizedType {
	return ParameterizedType{Raw: c.NonNull(), Args: args}
}

func (c ClassName) String() string {
	return c.Canonical() + nullMarker(c.Nullable)
}

// ParameterizedType is a class applied to type arguments.
type ParameterizedType struct {
	Raw      ClassName
	Args     []TypeName
	Nullable bool
}

func (p ParameterizedType) Kind() TypeKind   { return KindParameterized }
func (p ParameterizedType) IsNullable() bool { return p.Nullable }
func (p ParameterizedType) sealed()          {}

func (p ParameterizedType) WithNullable(nullable bool) TypeName {
	p.Nullable = nullable
	return p
}

func (p ParameterizedType) String() string {
	var b strings.Builder
	b.WriteString(p.Raw.Canonical())
	b.WriteByte('<')
	for i, a := range p.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte('>')
	b.WriteString(nullMarker(p.Nullable))
	return b.String()
}

// TypeVariable is a type parameter, either declared (with bounds) or used.
type TypeVariable struct {
	Name string

	// Bounds are the declared upper bounds. Only meaningful in declaration
	// position; usages render the name alone.
	Bounds []TypeName

	Nullable bool
}

// NewTypeVariable returns a type variable with the given bounds.
func NewTypeVariable(name string, bounds ...TypeName) TypeVariable {
	return TypeVariable{Name: name, Bounds: bounds}
}

func (v TypeVariable) Kind() TypeKind   { return KindTypeVariable }
func (v TypeVariable) IsNullable() bool { return v.Nullable }
func (v TypeVariable) sealed()          {}

func (v TypeVariable) WithNullable(nullable bool) TypeName {
	v.Nullable = nullable
	return v
}

func (v TypeVariable) String() string {
	return v.Name + nullMarker(v.Nullable)
}

// Star is the star projection, as in RxHttp<*, *>.
type Star struct{}

func (Star) Kind() TypeKind               { return KindStar }
func (Star) IsNullable() bool             { return false }
func (s Star) WithNullable(bool) TypeName { return s }
func (Star) String() string               { return "*" }
func (Star) sealed()                      {}

// Variance is a use-site variance modifier.
type Variance string

const (
	Out Variance = "out"
	In  Variance = "in"
)

// Projection is a type argument with use-site variance, as in
// Array<out Type>. Nullability belongs to the projected type.
type Projection struct {
	Variance Variance
	Type     TypeName
}

// Project returns t as a type argument with variance v.
func Project(v Variance, t TypeName) Projection {
	return Projection{Variance: v, Type: t}
}

func (p Projection) Kind() TypeKind   { return KindProjection }
func (p Projection) IsNullable() bool { return p.Type.IsNullable() }
func (p Projection) sealed()          {}

func (p Projection) WithNullable(nullable bool) TypeName {
	p.Type = p.Type.WithNullable(nullable)
	return p
}

func (p Projection) String() string {
	return string(p.Variance) + " " + p.Type.String()
}

// Unproject strips a use-site variance modifier from t.
func Unproject(t TypeName) TypeName {
	if p, ok := t.(Projection); ok {
		return p.Type
	}
	return t
}

// Equal reports whether two type names denote the same type, including
// nullability. Type-variable bounds are ignored.
func Equal(a, b TypeName) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.String() == b.String()
}

func nullMarker(nullable bool) string {
	if nullable {
		return "?"
	}
	return ""
}
