package parser

import (
	"github.com/broady/rxhttpgen/internal/introspect"
	"github.com/broady/rxhttpgen/internal/rxhttp"
	"github.com/broady/rxhttpgen/ir"
)

// Expandable reports whether wrapper variants can be derived for c: it has
// exactly one type parameter and no bound other than kotlin.Any.
func Expandable(c *introspect.Class) bool {
	if c.TypeCount() != 1 {
		return false
	}
	for _, b := range c.TypeVars[0].Bounds {
		if !ir.IsAny(b) {
			return false
		}
	}
	return true
}

// WrappedReturn applies wrapper w to an onParse type. A parameterized type
// keeps its raw class and has each argument wrapped; anything else is
// wrapped whole. The result takes the nullability of onParse.
func WrappedReturn(onParse ir.TypeName, w ir.ClassName) ir.TypeName {
	var wrapped ir.TypeName
	if p, ok := onParse.(ir.ParameterizedType); ok {
		args := make([]ir.TypeName, len(p.Args))
		for i, a := range p.Args {
			args[i] = w.Parameterized(a)
		}
		wrapped = p.Raw.Parameterized(args...)
	} else {
		wrapped = w.Parameterized(onParse.WithNullable(false))
	}
	return wrapped.WithNullable(onParse.IsNullable())
}

// ExpandWrappers derives one toObservable<Alias><Wrapper> function per
// wrapper type from the class-token function classFn. It returns nil when
// the parser is not expandable.
func ExpandWrappers(d *Descriptor, classFn *ir.Func, opts Options) []*ir.Func {
	c := d.Class
	if classFn == nil || c.OnParse == nil || !Expandable(c) {
		return nil
	}
	n := c.TypeCount()
	var funcs []*ir.Func
	for _, w := range d.WrapperTypes() {
		simple := w.Simple()
		used := usedNames(classFn.Params)
		var body []ir.Stmt
		args := make([]ir.Expr, 0, len(classFn.Params))
		for i, p := range classFn.Params {
			if i < n {
				token := local(p.Name+simple, used)
				body = append(body, ir.Local{Name: token.Name, Value: ir.Call{
					Receiver: ir.ClassLiteral{Class: w},
					Callee:   rxhttp.ParameterizedBy,
					Args:     []ir.Expr{ir.Id(p.Name)},
				}})
				args = append(args, token)
				continue
			}
			var arg ir.Expr = ir.Id(p.Name)
			if p.Vararg {
				arg = ir.Spread{X: arg}
			}
			args = append(args, arg)
		}
		body = append(body, ir.Return{Value: ir.CallFunc(classFn.Name, args...)})

		funcs = append(funcs, &ir.Func{
			Name:       classFn.Name + simple,
			Receiver:   classFn.Receiver,
			TypeParams: classFn.TypeParams,
			Params:     classFn.Params,
			Returns:    opts.Names.ObservableCall(WrappedReturn(c.OnParse, w)),
			Body:       body,
		})
	}
	return funcs
}
