package decl

import (
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// TypeRef is a type usage: a class reference, a type variable, or a star
// projection, with optional type arguments and nullability. Type arguments
// may carry use-site variance.
//
// In YAML a TypeRef is either a mapping with the fields below or a compact
// string such as "kotlin.collections.List<out T>?". In the compact form a
// name without dots is a type variable.
type TypeRef struct {
	// Name is the qualified class name. Empty for type variables and stars.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Var is the type variable name.
	Var string `yaml:"var,omitempty" json:"var,omitempty"`

	// Variance is "out" or "in" for a projected type argument.
	Variance string `yaml:"variance,omitempty" json:"variance,omitempty" validate:"omitempty,oneof=out in"`

	Args     []TypeRef `yaml:"args,omitempty" json:"args,omitempty" validate:"dive"`
	Nullable bool      `yaml:"nullable,omitempty" json:"nullable,omitempty"`
	Star     bool      `yaml:"star,omitempty" json:"star,omitempty"`
}

// Variance modifiers.
const (
	VarianceOut = "out"
	VarianceIn  = "in"
)

// IsVar reports whether t is a type variable.
func (t TypeRef) IsVar() bool { return t.Var != "" }

// IsZero reports whether t is unset.
func (t TypeRef) IsZero() bool {
	return t.Name == "" && t.Var == "" && !t.Star && len(t.Args) == 0
}

// String returns the compact form accepted by ParseTypeRef.
func (t TypeRef) String() string {
	if t.Star {
		return "*"
	}
	var b strings.Builder
	if t.Variance != "" {
		b.WriteString(t.Variance)
		b.WriteByte(' ')
	}
	if t.IsVar() {
		b.WriteString(t.Var)
	} else {
		b.WriteString(t.Name)
	}
	if len(t.Args) > 0 {
		b.WriteByte('<')
		for i, a := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		b.WriteByte('>')
	}
	if t.Nullable {
		b.WriteByte('?')
	}
	return b.String()
}

// UnmarshalYAML accepts either the compact string form or a mapping.
func (t *TypeRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		parsed, err := ParseTypeRef(node.Value)
		if err != nil {
			return errors.Wrapf(err, "line %d", node.Line)
		}
		*t = parsed
		return nil
	}
	type plain TypeRef
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*t = TypeRef(p)
	return nil
}

// ParseTypeRef parses the compact type form:
//
//	type := '*' | name [ '<' arg { ',' arg } '>' ] [ '?' ]
//	arg  := [ 'out' | 'in' ] type
//	name := ident { '.' ident }
func ParseTypeRef(s string) (TypeRef, error) {
	p := &typeParser{src: s}
	t, err := p.parseType()
	if err != nil {
		return TypeRef{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return TypeRef{}, errors.Newf("type %q: unexpected %q at offset %d", s, p.src[p.pos:], p.pos)
	}
	return t, nil
}

// MustParseTypeRef is like ParseTypeRef but panics on error.
// Intended for tests and static tables.
func MustParseTypeRef(s string) TypeRef {
	t, err := ParseTypeRef(s)
	if err != nil {
		panic(err)
	}
	return t
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *typeParser) parseType() (TypeRef, error) {
	if p.peek() == '*' {
		p.pos++
		return TypeRef{Star: true}, nil
	}

	name, err := p.parseName()
	if err != nil {
		return TypeRef{}, err
	}

	var t TypeRef
	if strings.Contains(name, ".") {
		t.Name = name
	} else {
		t.Var = name
	}

	if p.peek() == '<' {
		p.pos++
		for {
			arg, err := p.parseArg()
			if err != nil {
				return TypeRef{}, err
			}
			t.Args = append(t.Args, arg)
			switch p.peek() {
			case ',':
				p.pos++
				continue
			case '>':
				p.pos++
			default:
				return TypeRef{}, errors.Newf("type %q: expected ',' or '>' at offset %d", p.src, p.pos)
			}
			break
		}
	}

	if p.peek() == '?' {
		p.pos++
		t.Nullable = true
	}
	return t, nil
}

func (p *typeParser) parseArg() (TypeRef, error) {
	p.skipSpace()
	var variance string
	for _, v := range []string{VarianceOut, VarianceIn} {
		if strings.HasPrefix(p.src[p.pos:], v+" ") {
			variance = v
			p.pos += len(v)
			break
		}
	}
	t, err := p.parseType()
	if err != nil {
		return TypeRef{}, err
	}
	if variance != "" && t.Star {
		return TypeRef{}, errors.Newf("type %q: star projection cannot have variance", p.src)
	}
	t.Variance = variance
	return t, nil
}

func (p *typeParser) parseName() (string, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if r == '.' || r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			p.pos++
			continue
		}
		break
	}
	name := p.src[start:p.pos]
	if name == "" || strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") || strings.Contains(name, "..") {
		return "", errors.Newf("type %q: invalid name at offset %d", p.src, start)
	}
	return name, nil
}
