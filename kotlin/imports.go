package kotlin

import (
	"sort"

	"github.com/broady/rxhttpgen/ir"
)

// Packages whose declarations are visible without an import.
var defaultImports = map[string]bool{
	"kotlin":             true,
	"kotlin.annotation":  true,
	"kotlin.collections": true,
	"kotlin.comparisons": true,
	"kotlin.io":          true,
	"kotlin.ranges":      true,
	"kotlin.sequences":   true,
	"kotlin.text":        true,
	"kotlin.jvm":         true,
	"java.lang":          true,
}

// importer assigns each referenced top-level class and member either its
// simple name or its qualified name. The first class to claim a simple name
// keeps it; later classes with the same simple name stay qualified.
type importer struct {
	pkg string

	// claimed maps a simple name to the canonical name that owns it.
	claimed map[string]string

	imports map[string]bool
}

func newImporter(pkg string) *importer {
	return &importer{
		pkg:     pkg,
		claimed: make(map[string]string),
		imports: make(map[string]bool),
	}
}

func (im *importer) addClass(c ir.ClassName) {
	top := c.TopLevel()
	canonical := top.Canonical()
	if _, ok := im.claimed[top.Name]; ok {
		return
	}
	im.claimed[top.Name] = canonical
	if top.Package != "" && top.Package != im.pkg && !defaultImports[top.Package] {
		im.imports[canonical] = true
	}
}

func (im *importer) addMember(m ir.MemberRef) {
	if m.Package != "" && m.Package != im.pkg {
		im.imports[m.Package+"."+m.Name] = true
	}
}

// className returns the rendered name of c.
func (im *importer) className(c ir.ClassName) string {
	top := c.TopLevel()
	if im.claimed[top.Name] == top.Canonical() {
		return escapeQualified(c.Name)
	}
	return escapeQualified(c.Canonical())
}

// sorted returns the import directives in lexical order.
func (im *importer) sorted() []string {
	out := make([]string, 0, len(im.imports))
	for imp := range im.imports {
		out = append(out, imp)
	}
	sort.Strings(out)
	return out
}

// collect walks everything the file references.
func (im *importer) collect(f *ir.File) {
	for _, fn := range f.Funcs {
		im.collectFunc(fn)
	}
	for _, t := range f.Types {
		for _, fn := range t.Funcs {
			im.collectFunc(fn)
		}
	}
}

func (im *importer) collectFunc(fn *ir.Func) {
	for _, a := range fn.Annotations {
		im.addClass(a.Type)
	}
	for _, tv := range fn.TypeParams {
		im.collectType(tv)
	}
	if fn.Receiver != nil {
		im.collectType(fn.Receiver)
	}
	for _, p := range fn.Params {
		im.collectType(p.Type)
	}
	if fn.Returns != nil {
		im.collectType(fn.Returns)
	}
	for _, s := range fn.Body {
		im.collectStmt(s)
	}
}

func (im *importer) collectType(t ir.TypeName) {
	switch t := t.(type) {
	case ir.ClassName:
		im.addClass(t)
	case ir.ParameterizedType:
		im.addClass(t.Raw)
		for _, a := range t.Args {
			im.collectType(a)
		}
	case ir.TypeVariable:
		for _, b := range t.Bounds {
			im.collectType(b)
		}
	case ir.Projection:
		im.collectType(t.Type)
	}
}

func (im *importer) collectStmt(s ir.Stmt) {
	switch s := s.(type) {
	case ir.Local:
		im.collectExpr(s.Value)
	case ir.Return:
		if s.Value != nil {
			im.collectExpr(s.Value)
		}
	case ir.ExprStmt:
		im.collectExpr(s.X)
	}
}

func (im *importer) collectExpr(e ir.Expr) {
	switch e := e.(type) {
	case ir.TypeExpr:
		im.collectType(e.Type)
	case ir.MemberRef:
		im.addMember(e)
	case ir.ClassLiteral:
		im.addClass(e.Class)
	case ir.Call:
		if e.Receiver != nil {
			im.collectExpr(e.Receiver)
		}
		im.collectExpr(e.Callee)
		for _, t := range e.TypeArgs {
			im.collectType(t)
		}
		for _, a := range e.Args {
			im.collectExpr(a)
		}
	case ir.Spread:
		im.collectExpr(e.X)
	case ir.Cast:
		im.collectExpr(e.X)
		im.collectType(e.Type)
	case ir.Elvis:
		im.collectExpr(e.X)
		im.collectExpr(e.Fallback)
	case ir.Binary:
		im.collectExpr(e.X)
		im.collectExpr(e.Y)
	case ir.IfElse:
		im.collectExpr(e.Cond)
		im.collectExpr(e.Then)
		im.collectExpr(e.Else)
	}
}

// memberName returns the rendered name of a member reference.
func (im *importer) memberName(m ir.MemberRef) string {
	return escapeIdentifier(m.Name)
}
