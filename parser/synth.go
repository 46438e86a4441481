package parser

import (
	"strconv"

	"github.com/iancoleman/strcase"

	"github.com/broady/rxhttpgen/internal/introspect"
	"github.com/broady/rxhttpgen/internal/rxhttp"
	"github.com/broady/rxhttpgen/ir"
)

// Options control which functions are synthesized.
type Options struct {
	// RxJava enables the toObservable functions. Without it only wrap
	// factories are produced.
	RxJava bool

	// Names locates the generated RxHttp classes.
	Names rxhttp.Names
}

// Signatures are the functions derived from one parser constructor.
type Signatures struct {
	// Raw takes java.lang.reflect.Type tokens. Nil when RxJava is disabled.
	Raw *ir.Func

	// Class takes java.lang.Class tokens and delegates to Raw. Nil for
	// non-generic parsers or when RxJava is disabled.
	Class *ir.Func

	// Wrap is the wrap<Parser> factory, set when the parser has a single
	// type parameter that is also its onParse result.
	Wrap *ir.Func
}

// Funcs returns the toObservable functions in emission order.
func (s Signatures) Funcs() []*ir.Func {
	var out []*ir.Func
	for _, f := range []*ir.Func{s.Raw, s.Class} {
		if f != nil {
			out = append(out, f)
		}
	}
	return out
}

// tokenOrigin records how a constructor receives its type tokens.
type tokenOrigin int

const (
	tokensScalar tokenOrigin = iota // one Type parameter per type variable
	tokensArray                     // a single Array<Type>
	tokensVararg                    // a single vararg Type
)

// shape is a constructor with its leading token array flattened.
type shape struct {
	params []ir.Param
	origin tokenOrigin
	n      int
}

// flatten replaces a leading Array<Type> or vararg Type with one Type
// parameter per type variable, named <typeVar>Type.
func flatten(c *introspect.Class, ctor introspect.Constructor) shape {
	n := c.TypeCount()
	if n == 0 || !ctor.LeadingTokenArray() {
		params := make([]ir.Param, len(ctor.Params))
		copy(params, ctor.Params)
		return shape{params: params, origin: tokensScalar, n: n}
	}

	origin := tokensArray
	if ctor.Params[0].Vararg {
		origin = tokensVararg
	}
	rest := ctor.Params[1:]
	used := usedNames(rest)
	params := make([]ir.Param, 0, n+len(rest))
	for _, tv := range c.TypeVars {
		name := uniqueName(strcase.ToLowerCamel(tv.Name)+"Type", used)
		used[name] = true
		params = append(params, ir.Param{Name: name, Type: ir.JavaType})
	}
	params = append(params, rest...)
	return shape{params: params, origin: origin, n: n}
}

func usedNames(params []ir.Param) map[string]bool {
	used := make(map[string]bool, len(params))
	for _, p := range params {
		used[p.Name] = true
	}
	return used
}

// local picks a name for a synthesized local that shadows neither a
// parameter nor an earlier local, and marks it used.
func local(base string, used map[string]bool) ir.Ident {
	name := uniqueName(base, used)
	used[name] = true
	return ir.Id(name)
}

func uniqueName(base string, used map[string]bool) string {
	if !used[base] {
		return base
	}
	for i := 1; ; i++ {
		if name := base + strconv.Itoa(i); !used[name] {
			return name
		}
	}
}

// forward returns the arguments that pass s.params on to the parser
// constructor. Array-origin tokens are packed back into arrayOf(...) and
// vararg parameters are spread. When first is non-nil it replaces the
// first token.
func (s shape) forward(first ir.Expr) []ir.Expr {
	var args, tokens []ir.Expr
	for i, p := range s.params {
		var arg ir.Expr = ir.Id(p.Name)
		if i == 0 && first != nil {
			arg = first
		}
		if p.Vararg {
			arg = ir.Spread{X: arg}
		}
		if s.origin == tokensArray && i < s.n {
			tokens = append(tokens, arg)
			if i == s.n-1 {
				args = append(args, ir.CallFunc("arrayOf", tokens...))
			}
			continue
		}
		args = append(args, arg)
	}
	return args
}

// passThrough returns the parameter names as arguments, spreading varargs.
func passThrough(params []ir.Param) []ir.Expr {
	args := make([]ir.Expr, len(params))
	for i, p := range params {
		var arg ir.Expr = ir.Id(p.Name)
		if p.Vararg {
			arg = ir.Spread{X: arg}
		}
		args[i] = arg
	}
	return args
}

// FuncName returns toObservable<alias>.
func FuncName(alias string) string {
	return rxhttp.ToObservable + alias
}

// WrapName returns the wrap factory name for a parser class.
func WrapName(c *introspect.Class) string {
	return "wrap" + c.Name.Simple()
}

// wrapsTypeVar reports whether onParse is exactly the sole type variable.
func wrapsTypeVar(c *introspect.Class, onParse ir.TypeName) bool {
	tv, ok := onParse.(ir.TypeVariable)
	return ok && c.TypeCount() == 1 && tv.Name == c.TypeVars[0].Name
}

// Synthesize derives the functions for one eligible constructor of d.
// The class must have a resolved onParse type.
func Synthesize(d *Descriptor, ctor introspect.Constructor, opts Options) Signatures {
	c := d.Class
	s := flatten(c, ctor)
	name := FuncName(d.Alias)
	returns := opts.Names.ObservableCall(c.OnParse)
	typeArgs := c.TypeArgs()
	specialized := wrapsTypeVar(c, c.OnParse)

	var sigs Signatures
	if opts.RxJava {
		var parser ir.Expr
		if specialized {
			parser = ir.Call{
				Callee:   opts.Names.Member(WrapName(c)),
				TypeArgs: typeArgs,
				Args:     passThrough(s.params),
			}
		} else {
			parser = ir.New(c.Name, typeArgs, s.forward(nil)...)
		}
		sigs.Raw = &ir.Func{
			Name:       name,
			Receiver:   opts.Names.AnyRxHttp(),
			TypeParams: c.TypeVars,
			Params:     s.params,
			Returns:    returns,
			Body: []ir.Stmt{
				ir.Return{Value: ir.CallFunc(rxhttp.ToObservable, parser)},
			},
		}
		if s.n > 0 {
			sigs.Class = classTokenFunc(sigs.Raw, c)
		}
	}
	if specialized {
		sigs.Wrap = wrapFactory(c, s)
	}
	return sigs
}

// classTokenFunc derives the java.lang.Class overload of raw. Each token
// argument is cast back to java.lang.reflect.Type.
func classTokenFunc(raw *ir.Func, c *introspect.Class) *ir.Func {
	n := c.TypeCount()
	params := make([]ir.Param, len(raw.Params))
	args := make([]ir.Expr, len(raw.Params))
	for i, p := range raw.Params {
		if i < n {
			params[i] = ir.Param{Name: p.Name, Type: ir.JavaClass.Parameterized(ir.TypeVariable{Name: c.TypeVars[i].Name})}
			args[i] = ir.Cast{X: ir.Id(p.Name), Type: ir.JavaType}
			continue
		}
		params[i] = p
		var arg ir.Expr = ir.Id(p.Name)
		if p.Vararg {
			arg = ir.Spread{X: arg}
		}
		args[i] = arg
	}
	return &ir.Func{
		Name:       raw.Name,
		Receiver:   raw.Receiver,
		TypeParams: raw.TypeParams,
		Params:     params,
		Returns:    raw.Returns,
		Body: []ir.Stmt{
			ir.Return{Value: ir.CallFunc(raw.Name, args...)},
		},
	}
}

// wrapFactory builds
//
//	fun <T> wrapX(tType: Type, ...): Parser<T> {
//	    val actualType = TypeUtil.getActualType(tType) ?: tType
//	    val parser = X<Any>(actualType, ...)
//	    val actualParser = if (actualType == tType) parser else OkResponseParser(parser)
//	    return actualParser as Parser<T>
//	}
//
// Locals that would shadow a parameter get a numeric suffix.
func wrapFactory(c *introspect.Class, s shape) *ir.Func {
	tv := ir.TypeVariable{Name: c.TypeVars[0].Name}
	token := ir.Id(s.params[0].Name)
	used := usedNames(s.params)
	actualType := local("actualType", used)
	parser := local("parser", used)
	actualParser := local("actualParser", used)
	return &ir.Func{
		Name: WrapName(c),
		Annotations: []ir.Annotation{
			{Type: ir.Suppress, Members: []string{strconv.Quote("UNCHECKED_CAST")}},
		},
		TypeParams: []ir.TypeVariable{tv},
		Params:     s.params,
		Returns:    rxhttp.Parser.Parameterized(tv),
		Body: []ir.Stmt{
			ir.Local{Name: actualType.Name, Value: ir.Elvis{
				X:        ir.CallMethod(ir.TypeExpr{Type: rxhttp.TypeUtil}, rxhttp.GetActualType, token),
				Fallback: token,
			}},
			ir.Local{Name: parser.Name, Value: ir.New(c.Name, []ir.TypeName{ir.Any}, s.forward(actualType)...)},
			ir.Local{Name: actualParser.Name, Value: ir.IfElse{
				Cond: ir.Binary{Op: "==", X: actualType, Y: token},
				Then: parser,
				Else: ir.New(rxhttp.OkResponseParser, nil, parser),
			}},
			ir.Return{Value: ir.Cast{X: actualParser, Type: rxhttp.Parser.Parameterized(tv)}},
		},
	}
}
