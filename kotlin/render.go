// Package kotlin renders ir files as Kotlin source.
package kotlin

import (
	"bytes"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/broady/rxhttpgen/ir"
)

// DefaultIndentSize is the indent width used when Options.IndentSize is zero.
const DefaultIndentSize = 4

// Options configure rendering.
type Options struct {
	// IndentSize is the number of spaces per indent level.
	IndentSize int
}

// Render returns the Kotlin source of f.
func Render(f *ir.File, opts Options) ([]byte, error) {
	size := opts.IndentSize
	if size <= 0 {
		size = DefaultIndentSize
	}
	e := &emitter{
		imp:    newImporter(f.Package),
		indent: strings.Repeat(" ", size),
	}
	e.imp.collect(f)
	e.emitFile(f)
	if e.err != nil {
		return nil, e.err
	}
	return e.buf.Bytes(), nil
}

// emitter writes one file. The first unsupported node stops rendering.
type emitter struct {
	buf    bytes.Buffer
	imp    *importer
	indent string
	err    error
}

func (e *emitter) fail(format string, args ...any) {
	if e.err == nil {
		e.err = errors.Newf(format, args...)
	}
}

func (e *emitter) emitFile(f *ir.File) {
	if f.Comment != "" {
		for _, line := range strings.Split(f.Comment, "\n") {
			e.buf.WriteString("// ")
			e.buf.WriteString(line)
			e.buf.WriteByte('\n')
		}
		e.buf.WriteByte('\n')
	}
	if f.Package != "" {
		e.buf.WriteString("package ")
		e.buf.WriteString(escapeQualified(f.Package))
		e.buf.WriteString("\n\n")
	}
	if imports := e.imp.sorted(); len(imports) > 0 {
		for _, imp := range imports {
			e.buf.WriteString("import ")
			e.buf.WriteString(escapeQualified(imp))
			e.buf.WriteByte('\n')
		}
		e.buf.WriteByte('\n')
	}

	first := true
	for _, fn := range f.Funcs {
		if !first {
			e.buf.WriteByte('\n')
		}
		first = false
		e.emitFunc(fn, "")
	}
	for _, t := range f.Types {
		if !first {
			e.buf.WriteByte('\n')
		}
		first = false
		e.emitType(t)
	}
}

func (e *emitter) emitType(t *ir.Type) {
	e.emitDoc(t.Doc, "")
	switch t.Kind {
	case ir.DeclObject:
		e.buf.WriteString("object ")
	case ir.DeclClass:
		e.buf.WriteString("class ")
	default:
		e.fail("unsupported declaration kind: %s", t.Kind)
		return
	}
	e.buf.WriteString(escapeIdentifier(t.Name))
	e.buf.WriteString(" {\n")
	for i, fn := range t.Funcs {
		if i > 0 {
			e.buf.WriteByte('\n')
		}
		e.emitFunc(fn, e.indent)
	}
	e.buf.WriteString("}\n")
}

func (e *emitter) emitDoc(doc, prefix string) {
	if doc == "" {
		return
	}
	e.buf.WriteString(prefix)
	e.buf.WriteString("/**\n")
	for _, line := range strings.Split(doc, "\n") {
		e.buf.WriteString(prefix)
		if line == "" {
			e.buf.WriteString(" *\n")
			continue
		}
		e.buf.WriteString(" * ")
		e.buf.WriteString(line)
		e.buf.WriteByte('\n')
	}
	e.buf.WriteString(prefix)
	e.buf.WriteString(" */\n")
}

func (e *emitter) emitFunc(fn *ir.Func, prefix string) {
	e.emitDoc(fn.Doc, prefix)
	for _, a := range fn.Annotations {
		e.buf.WriteString(prefix)
		e.buf.WriteByte('@')
		e.buf.WriteString(e.imp.className(a.Type))
		if len(a.Members) > 0 {
			e.buf.WriteByte('(')
			e.buf.WriteString(strings.Join(a.Members, ", "))
			e.buf.WriteByte(')')
		}
		e.buf.WriteByte('\n')
	}

	e.buf.WriteString(prefix)
	for _, m := range fn.Modifiers {
		e.buf.WriteString(string(m))
		e.buf.WriteByte(' ')
	}
	e.buf.WriteString("fun ")

	// A type variable with several bounds moves them to a where clause.
	var where []string
	if len(fn.TypeParams) > 0 {
		e.buf.WriteByte('<')
		for i, tv := range fn.TypeParams {
			if i > 0 {
				e.buf.WriteString(", ")
			}
			e.buf.WriteString(escapeIdentifier(tv.Name))
			switch len(tv.Bounds) {
			case 0:
			case 1:
				e.buf.WriteString(" : ")
				e.buf.WriteString(e.typeName(tv.Bounds[0]))
			default:
				for _, b := range tv.Bounds {
					where = append(where, escapeIdentifier(tv.Name)+" : "+e.typeName(b))
				}
			}
		}
		e.buf.WriteString("> ")
	}
	if fn.Receiver != nil {
		e.buf.WriteString(e.typeName(fn.Receiver))
		e.buf.WriteByte('.')
	}
	e.buf.WriteString(escapeIdentifier(fn.Name))
	e.buf.WriteByte('(')
	for i, p := range fn.Params {
		if i > 0 {
			e.buf.WriteString(", ")
		}
		if p.Vararg {
			e.buf.WriteString("vararg ")
		}
		e.buf.WriteString(escapeIdentifier(p.Name))
		e.buf.WriteString(": ")
		e.buf.WriteString(e.typeName(p.Type))
	}
	e.buf.WriteByte(')')
	if fn.Returns != nil {
		e.buf.WriteString(": ")
		e.buf.WriteString(e.typeName(fn.Returns))
	}
	if len(where) > 0 {
		e.buf.WriteString(" where ")
		e.buf.WriteString(strings.Join(where, ", "))
	}
	e.buf.WriteString(" {\n")
	body := prefix + e.indent
	for _, s := range fn.Body {
		e.buf.WriteString(body)
		e.emitStmt(s)
		e.buf.WriteByte('\n')
	}
	e.buf.WriteString(prefix)
	e.buf.WriteString("}\n")
}

func (e *emitter) emitStmt(s ir.Stmt) {
	switch s := s.(type) {
	case ir.Local:
		e.buf.WriteString("val ")
		e.buf.WriteString(escapeIdentifier(s.Name))
		e.buf.WriteString(" = ")
		e.buf.WriteString(e.expr(s.Value))
	case ir.Return:
		e.buf.WriteString("return")
		if s.Value != nil {
			e.buf.WriteByte(' ')
			e.buf.WriteString(e.expr(s.Value))
		}
	case ir.ExprStmt:
		e.buf.WriteString(e.expr(s.X))
	default:
		e.fail("unsupported statement: %T", s)
	}
}

func (e *emitter) typeName(t ir.TypeName) string {
	var b strings.Builder
	switch t := t.(type) {
	case ir.ClassName:
		b.WriteString(e.imp.className(t))
	case ir.ParameterizedType:
		b.WriteString(e.imp.className(t.Raw))
		b.WriteByte('<')
		for i, a := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(e.typeName(a))
		}
		b.WriteByte('>')
	case ir.TypeVariable:
		b.WriteString(escapeIdentifier(t.Name))
	case ir.Star:
		return "*"
	case ir.Projection:
		return string(t.Variance) + " " + e.typeName(t.Type)
	default:
		e.fail("unsupported type: %T", t)
		return ""
	}
	if t.IsNullable() {
		b.WriteByte('?')
	}
	return b.String()
}

func (e *emitter) exprs(list []ir.Expr) string {
	parts := make([]string, len(list))
	for i, x := range list {
		parts[i] = e.expr(x)
	}
	return strings.Join(parts, ", ")
}

func (e *emitter) expr(x ir.Expr) string {
	switch x := x.(type) {
	case ir.Ident:
		return escapeIdentifier(x.Name)
	case ir.Literal:
		return x.Text
	case ir.StringLit:
		return quoteString(x.Value)
	case ir.TypeExpr:
		return e.typeName(x.Type)
	case ir.MemberRef:
		return e.imp.memberName(x)
	case ir.ClassLiteral:
		return e.imp.className(x.Class) + "::class"
	case ir.This:
		return "this"
	case ir.Call:
		var b strings.Builder
		if x.Receiver != nil {
			b.WriteString(e.operand(x.Receiver))
			b.WriteByte('.')
		}
		b.WriteString(e.expr(x.Callee))
		if len(x.TypeArgs) > 0 {
			b.WriteByte('<')
			for i, t := range x.TypeArgs {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(e.typeName(t))
			}
			b.WriteByte('>')
		}
		b.WriteByte('(')
		b.WriteString(e.exprs(x.Args))
		b.WriteByte(')')
		return b.String()
	case ir.Spread:
		return "*" + e.operand(x.X)
	case ir.Cast:
		return e.operand(x.X) + " as " + e.typeName(x.Type)
	case ir.Elvis:
		return e.operand(x.X) + " ?: " + e.operand(x.Fallback)
	case ir.Binary:
		return e.operand(x.X) + " " + x.Op + " " + e.operand(x.Y)
	case ir.IfElse:
		return "if (" + e.expr(x.Cond) + ") " + e.expr(x.Then) + " else " + e.expr(x.Else)
	default:
		e.fail("unsupported expression: %T", x)
		return ""
	}
}

// operand renders x, parenthesized when it is an infix or if expression.
func (e *emitter) operand(x ir.Expr) string {
	switch x.(type) {
	case ir.Cast, ir.Elvis, ir.Binary, ir.IfElse:
		return "(" + e.expr(x) + ")"
	}
	return e.expr(x)
}
