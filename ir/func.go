package ir

import "strings"

// Modifier is a declaration modifier.
type Modifier string

const ModifierPrivate Modifier = "private"

// Annotation is applied to a declaration. Members are emitted verbatim,
// comma separated.
type Annotation struct {
	Type    ClassName
	Members []string
}

// Param is a formal parameter.
type Param struct {
	Name   string
	Type   TypeName
	Vararg bool
}

// Func describes a synthesized function.
type Func struct {
	Name        string
	Doc         string
	Annotations []Annotation
	Modifiers   []Modifier

	// Receiver makes the function an extension. Nil for plain functions.
	Receiver TypeName

	TypeParams []TypeVariable
	Params     []Param

	// Returns is nil for functions returning Unit.
	Returns TypeName

	Body []Stmt
}

// ParamNames returns the parameter names in order.
func (f *Func) ParamNames() []string {
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Name
	}
	return names
}

// Signature identifies the function for overload resolution: receiver,
// name, and erased parameter types. Two functions with the same signature
// cannot coexist in one scope. Type variables erase to the first bound
// declared in TypeParams.
func (f *Func) Signature() string {
	bounds := make(map[string]TypeVariable, len(f.TypeParams))
	for _, tv := range f.TypeParams {
		bounds[tv.Name] = tv
	}
	erase := func(t TypeName) string { return eraseIn(t, bounds) }

	var b strings.Builder
	if f.Receiver != nil {
		b.WriteString(erase(f.Receiver))
		b.WriteByte('.')
	}
	b.WriteString(f.Name)
	b.WriteByte('(')
	for i, p := range f.Params {
		if i > 0 {
			b.WriteByte(',')
		}
		if p.Vararg {
			b.WriteString("vararg ")
		}
		b.WriteString(erase(p.Type))
	}
	b.WriteByte(')')
	return b.String()
}

// eraseIn drops type arguments and nullability, mirroring JVM erasure.
// Usages of type variables carry no bounds, so they are looked up in
// declared.
func eraseIn(t TypeName, declared map[string]TypeVariable) string {
	switch t := t.(type) {
	case ClassName:
		return t.Canonical()
	case ParameterizedType:
		return t.Raw.Canonical()
	case TypeVariable:
		if len(t.Bounds) == 0 {
			if d, ok := declared[t.Name]; ok {
				t = d
			}
		}
		if len(t.Bounds) > 0 {
			// Guard against T : U, U : T.
			next := make(map[string]TypeVariable, len(declared))
			for k, v := range declared {
				if k != t.Name {
					next[k] = v
				}
			}
			return eraseIn(t.Bounds[0], next)
		}
		return "kotlin.Any"
	case Projection:
		return eraseIn(t.Type, declared)
	default:
		return t.String()
	}
}
