// Package introspect maps declaration-graph classes into resolved views:
// visibility, type variables with bounds, constructors with resolved
// parameter types, supertype relationships and the onParse result type.
package introspect

import (
	"strings"

	"github.com/broady/rxhttpgen/decl"
	"github.com/broady/rxhttpgen/diag"
	"github.com/broady/rxhttpgen/ir"
)

// OnParseFunc is the parser callback whose return type determines the
// result type of every generated toObservable function.
const OnParseFunc = "onParse"

// knownParsers are library parser types that may appear as supertypes
// without being part of the declaration graph. Each is a subtype of
// diag.ParserBase whose onParse returns its first type argument.
var knownParsers = map[string]bool{
	diag.ParserBase:                       true,
	"rxhttp.wrapper.parse.TypeParser":     true,
	"rxhttp.wrapper.parse.SimpleParser":   true,
	"rxhttp.wrapper.parse.SmartParser":    true,
	"rxhttp.wrapper.parse.AbstractParser": true,
}

// Inspector resolves classes against a declaration graph.
type Inspector struct {
	graph *decl.Graph
}

// New returns an Inspector over g.
func New(g *decl.Graph) *Inspector {
	return &Inspector{graph: g}
}

// Class is the resolved view of a class declaration.
type Class struct {
	Decl *decl.Class

	// Name is the resolved class name.
	Name ir.ClassName

	// TypeVars are the declared type parameters with resolved bounds.
	TypeVars []ir.TypeVariable

	// Constructors lists every constructor, public or not, in declaration order.
	Constructors []Constructor

	// OnParse is the resolved onParse return type, or nil when the class
	// neither declares nor inherits a resolvable onParse.
	OnParse ir.TypeName

	subtypeOfParser bool
}

// Public reports whether the class is public.
func (c *Class) Public() bool { return c.Decl.Visibility.IsPublic() }

// Abstract reports whether the class is abstract.
func (c *Class) Abstract() bool { return c.Decl.Abstract }

// TypeCount returns the number of declared type parameters.
func (c *Class) TypeCount() int { return len(c.TypeVars) }

// IsParser reports whether the class inherits from diag.ParserBase.
func (c *Class) IsParser() bool { return c.subtypeOfParser }

// Location returns the diagnostic location of the class.
func (c *Class) Location() diag.Location {
	return diag.Location{Symbol: c.Decl.Name, File: c.Decl.File, Line: c.Decl.Line}
}

// PublicConstructors returns the public constructors in declaration order.
func (c *Class) PublicConstructors() []Constructor {
	var out []Constructor
	for _, ctor := range c.Constructors {
		if ctor.Public {
			out = append(out, ctor)
		}
	}
	return out
}

// TypeArgs returns the type variables as usage-position type arguments.
func (c *Class) TypeArgs() []ir.TypeName {
	args := make([]ir.TypeName, len(c.TypeVars))
	for i, tv := range c.TypeVars {
		args[i] = ir.TypeVariable{Name: tv.Name}
	}
	return args
}

// Constructor is a resolved constructor.
type Constructor struct {
	Public     bool
	TypeParams []ir.TypeVariable
	Params     []ir.Param
}

// Eligible reports whether the constructor can serve a class with n type
// parameters: n is zero, or the first parameter is an Array<Type> or a
// vararg Type standing in for all n, or the first n parameters are Type.
func (c Constructor) Eligible(n int) bool {
	if n == 0 {
		return true
	}
	if len(c.Params) == 0 {
		return false
	}
	if c.LeadingTokenArray() {
		return true
	}
	if len(c.Params) < n {
		return false
	}
	for _, p := range c.Params[:n] {
		if p.Vararg || !ir.IsClass(p.Type, ir.JavaType) {
			return false
		}
	}
	return true
}

// LeadingTokenArray reports whether the first parameter is an Array<Type>
// or a vararg Type.
func (c Constructor) LeadingTokenArray() bool {
	if len(c.Params) == 0 {
		return false
	}
	first := c.Params[0]
	if first.Vararg {
		return ir.IsClass(first.Type, ir.JavaType)
	}
	return ir.IsArrayOf(first.Type, ir.JavaType)
}

// Inspect resolves a class declaration.
func (in *Inspector) Inspect(c *decl.Class) *Class {
	view := &Class{
		Decl:            c,
		Name:            in.ClassName(c.Name),
		TypeVars:        in.typeVars(c.TypeParameters),
		subtypeOfParser: in.IsSubtypeOf(c, diag.ParserBase),
	}
	for _, ctor := range c.AllConstructors() {
		rc := Constructor{
			Public:     ctor.Visibility.IsPublic(),
			TypeParams: in.typeVars(ctor.TypeParameters),
		}
		for _, p := range ctor.Parameters {
			rc.Params = append(rc.Params, ir.Param{
				Name:   p.Name,
				Type:   in.TypeName(p.Type),
				Vararg: p.Vararg,
			})
		}
		view.Constructors = append(view.Constructors, rc)
	}
	view.OnParse = in.onParse(c, nil, map[string]bool{})
	return view
}

// ClassName resolves a qualified name. Classes in the graph use their
// declared package; anything else is split by best guess.
func (in *Inspector) ClassName(qualified string) ir.ClassName {
	if c, ok := in.graph.Lookup(qualified); ok && c.Package != "" {
		name := qualified[len(c.Package):]
		if len(name) > 0 && name[0] == '.' {
			name = name[1:]
		}
		return ir.NewClassName(c.Package, name)
	}
	return ir.BestGuess(qualified)
}

// Resolvable reports whether qualified names a class the generator can
// reference with confidence: a graph class or a Kotlin/Java platform class.
func (in *Inspector) Resolvable(qualified string) bool {
	if _, ok := in.graph.Lookup(qualified); ok {
		return true
	}
	return strings.HasPrefix(qualified, "kotlin.") || strings.HasPrefix(qualified, "java.")
}

// IsSubtypeOf reports whether c inherits, directly or transitively, from
// the class named target.
func (in *Inspector) IsSubtypeOf(c *decl.Class, target string) bool {
	return in.isSubtypeOf(c, target, map[string]bool{})
}

func (in *Inspector) isSubtypeOf(c *decl.Class, target string, visited map[string]bool) bool {
	if visited[c.Name] {
		return false
	}
	visited[c.Name] = true
	for _, st := range c.Supertypes {
		if st.Name == target {
			return true
		}
		if sc, ok := in.graph.Lookup(st.Name); ok {
			if in.isSubtypeOf(sc, target, visited) {
				return true
			}
			continue
		}
		if target == diag.ParserBase && knownParsers[st.Name] {
			return true
		}
	}
	return false
}

// onParse finds the onParse return type declared on c or inherited from
// its supertypes, substituting type arguments along the way.
func (in *Inspector) onParse(c *decl.Class, subst map[string]ir.TypeName, visited map[string]bool) ir.TypeName {
	if visited[c.Name] {
		return nil
	}
	visited[c.Name] = true

	for _, f := range c.Functions {
		if f.Name == OnParseFunc && f.Returns != nil {
			return substitute(in.TypeName(*f.Returns), subst)
		}
	}
	for _, st := range c.Supertypes {
		args := make([]ir.TypeName, len(st.Args))
		for i, a := range st.Args {
			args[i] = substitute(in.TypeName(a), subst)
		}
		if sc, ok := in.graph.Lookup(st.Name); ok {
			next := make(map[string]ir.TypeName, len(sc.TypeParameters))
			for i, tp := range sc.TypeParameters {
				if i < len(args) {
					next[tp.Name] = args[i]
				}
			}
			if t := in.onParse(sc, next, visited); t != nil {
				return t
			}
			continue
		}
		if knownParsers[st.Name] && len(args) > 0 {
			return args[0]
		}
	}
	return nil
}

// TypeName converts a type reference. Class names resolve through the graph.
func (in *Inspector) TypeName(ref decl.TypeRef) ir.TypeName {
	switch {
	case ref.Star:
		return ir.Star{}
	case ref.IsVar():
		return ir.TypeVariable{Name: ref.Var, Nullable: ref.Nullable}
	}
	class := in.ClassName(ref.Name)
	if len(ref.Args) == 0 {
		return class.WithNullable(ref.Nullable)
	}
	args := make([]ir.TypeName, len(ref.Args))
	for i, a := range ref.Args {
		args[i] = in.TypeName(a)
		if a.Variance != "" && !a.Star {
			args[i] = ir.Project(ir.Variance(a.Variance), args[i])
		}
	}
	return ir.ParameterizedType{Raw: class, Args: args, Nullable: ref.Nullable}
}

func (in *Inspector) typeVars(params []decl.TypeParameter) []ir.TypeVariable {
	if len(params) == 0 {
		return nil
	}
	out := make([]ir.TypeVariable, len(params))
	for i, tp := range params {
		tv := ir.TypeVariable{Name: tp.Name}
		for _, b := range tp.Bounds {
			tv.Bounds = append(tv.Bounds, in.TypeName(b))
		}
		out[i] = tv
	}
	return out
}

// substitute replaces type variables according to subst. A nullable
// variable stays nullable after substitution.
func substitute(t ir.TypeName, subst map[string]ir.TypeName) ir.TypeName {
	if len(subst) == 0 {
		return t
	}
	switch t := t.(type) {
	case ir.TypeVariable:
		r, ok := subst[t.Name]
		if !ok {
			return t
		}
		if t.Nullable {
			return r.WithNullable(true)
		}
		return r
	case ir.ParameterizedType:
		args := make([]ir.TypeName, len(t.Args))
		for i, a := range t.Args {
			args[i] = substitute(a, subst)
		}
		t.Args = args
		return t
	case ir.Projection:
		t.Type = substitute(t.Type, subst)
		return t
	default:
		return t
	}
}

