package parser

import (
	"github.com/broady/rxhttpgen/diag"
	"github.com/broady/rxhttpgen/ir"
)

// FileName is the name of the generated parser extensions file.
const FileName = "RxHttpParsers"

// Generate builds the parser extensions file from every registered parser.
// Extension functions come first in registration order, then the wrap
// factories. A parser whose onParse type cannot be resolved is reported
// and skipped. Generate returns nil when nothing was produced.
func Generate(r *Registry, opts Options) *ir.File {
	file := &ir.File{
		Package: opts.Names.Package,
		Name:    FileName,
		Comment: "Code generated by rxhttpgen. DO NOT EDIT.",
	}
	seen := make(map[string]bool)
	add := func(dst *[]*ir.Func, fns ...*ir.Func) {
		for _, fn := range fns {
			if fn == nil || seen[fn.Signature()] {
				continue
			}
			seen[fn.Signature()] = true
			*dst = append(*dst, fn)
		}
	}

	var factories []*ir.Func
	for _, d := range r.Descriptors() {
		c := d.Class
		if c.OnParse == nil {
			diag.Report(r.reporter, &diag.UnresolvedOnParseError{Loc: c.Location()})
			continue
		}
		for _, ctor := range c.PublicConstructors() {
			if !ctor.Eligible(c.TypeCount()) {
				continue
			}
			sigs := Synthesize(d, ctor, opts)
			add(&file.Funcs, sigs.Funcs()...)
			add(&file.Funcs, ExpandWrappers(d, sigs.Class, opts)...)
			add(&factories, sigs.Wrap)
		}
	}
	file.Funcs = append(file.Funcs, factories...)
	if len(file.Funcs) == 0 {
		return nil
	}
	return file
}
