package request

import (
	"github.com/broady/rxhttpgen/internal/rxhttp"
	"github.com/broady/rxhttpgen/ir"
)

// Verb is a fixed request factory and the builder kind it returns.
type Verb struct {
	Name string

	// Kind is the builder suffix: RxHttp<Kind> is the return type.
	Kind string
}

// Verbs lists the fixed factories in emission order.
var Verbs = []Verb{
	{"get", "NoBodyParam"},
	{"head", "NoBodyParam"},
	{"postBody", "BodyParam"},
	{"putBody", "BodyParam"},
	{"patchBody", "BodyParam"},
	{"deleteBody", "BodyParam"},
	{"postForm", "FormParam"},
	{"putForm", "FormParam"},
	{"patchForm", "FormParam"},
	{"deleteForm", "FormParam"},
	{"postJson", "JsonParam"},
	{"putJson", "JsonParam"},
	{"patchJson", "JsonParam"},
	{"deleteJson", "JsonParam"},
	{"postJsonArray", "JsonArrayParam"},
	{"putJsonArray", "JsonArrayParam"},
	{"patchJsonArray", "JsonArrayParam"},
	{"deleteJsonArray", "JsonArrayParam"},
}

const (
	wrapperFunc = "wrapper"
	formatArgs  = "formatArgs"
)

const objectDoc = `Generated from the className of @Converter, @Domain and @OkClient.
Class name: Rx + {className} + Http
Github
https://github.com/liujingxing/rxhttp
https://github.com/liujingxing/rxlife
https://github.com/liujingxing/rxhttp/wiki/FAQ`

// ObjectName returns the generated object name for className.
func ObjectName(className string) string {
	return "Rx" + className + "Http"
}

// Generate builds one Rx<ClassName>Http file per registered output class.
// Every file holds the wrapper helper, the fixed verb factories and the
// factories of every @Param class, and depends on all contributing files.
func Generate(params *Registry, wrappers *Wrappers, names rxhttp.Names) []ir.Unit {
	var factories []*ir.Func
	for _, v := range Verbs {
		factories = append(factories, VerbFunc(v, names))
	}
	for _, d := range params.Descriptors() {
		factories = append(factories, ParamFuncs(d, names)...)
	}

	deps := ir.NewDependencies(false)
	deps.Merge(params.Dependencies())
	deps.Merge(wrappers.Dependencies())

	var units []ir.Unit
	wrappers.Each(func(className string, w *Wrapper) {
		name := ObjectName(className)
		obj := &ir.Type{Kind: ir.DeclObject, Name: name, Doc: objectDoc}
		obj.AddFunc(WrapperFunc(w, names))
		for _, fn := range factories {
			obj.AddFunc(fn)
		}
		file := &ir.File{
			Package: names.Package,
			Name:    name,
			Comment: "Code generated by rxhttpgen. DO NOT EDIT.",
		}
		file.AddType(obj)
		units = append(units, ir.Unit{File: file, Deps: deps})
	})
	return units
}

// WrapperFunc builds the private helper every factory ends with:
//
//	private fun <R : RxHttp<*, *>> R.wrapper(): R {
//	    setJson()
//	    return this
//	}
func WrapperFunc(w *Wrapper, names rxhttp.Names) *ir.Func {
	r := ir.NewTypeVariable("R", names.AnyRxHttp())
	var body []ir.Stmt
	if w.ConverterName != "" {
		body = append(body, ir.ExprStmt{X: ir.CallFunc("set" + w.ConverterName)})
	}
	if w.OkClientName != "" {
		body = append(body, ir.ExprStmt{X: ir.CallFunc("set" + w.OkClientName)})
	}
	if w.DomainName != "" {
		body = append(body, ir.ExprStmt{X: ir.CallFunc("setDomainTo" + w.DomainName + "IfAbsent")})
	}
	body = append(body, ir.Return{Value: ir.This{}})
	return &ir.Func{
		Name:       wrapperFunc,
		Doc:        "Every function in this object calls this method.",
		Modifiers:  []ir.Modifier{ir.ModifierPrivate},
		TypeParams: []ir.TypeVariable{r},
		Receiver:   ir.TypeVariable{Name: r.Name},
		Returns:    ir.TypeVariable{Name: r.Name},
		Body:       body,
	}
}

// VerbFunc builds
//
//	@JvmStatic
//	fun get(url: String, vararg formatArgs: Any?): RxHttpNoBodyParam
func VerbFunc(v Verb, names rxhttp.Names) *ir.Func {
	params := []ir.Param{
		{Name: "url", Type: ir.String},
		{Name: formatArgs, Type: ir.NullableAny(), Vararg: true},
	}
	return &ir.Func{
		Name:        v.Name,
		Annotations: []ir.Annotation{{Type: ir.JvmStatic}},
		Params:      params,
		Returns:     names.Param(v.Kind),
		Body:        []ir.Stmt{ir.Return{Value: forward(v.Name, params, names)}},
	}
}

// ParamFuncs builds one factory per public constructor of a @Param class.
// A constructor whose first parameter is exactly kotlin.String also takes
// vararg formatArgs.
func ParamFuncs(d *Descriptor, names rxhttp.Names) []*ir.Func {
	c := d.Class
	var returns ir.TypeName = names.Param(c.Name.Simple())
	if c.TypeCount() > 0 {
		returns = names.Param(c.Name.Simple()).Parameterized(c.TypeArgs()...)
	}

	var funcs []*ir.Func
	for _, ctor := range c.PublicConstructors() {
		params := make([]ir.Param, 0, len(ctor.Params)+1)
		params = append(params, ctor.Params...)
		if len(params) > 0 && ir.Equal(params[0].Type, ir.String) {
			params = append(params, ir.Param{Name: formatArgs, Type: ir.NullableAny(), Vararg: true})
		}
		typeParams := append(append([]ir.TypeVariable(nil), c.TypeVars...), ctor.TypeParams...)
		funcs = append(funcs, &ir.Func{
			Name:        d.Alias,
			Annotations: []ir.Annotation{{Type: ir.JvmStatic}},
			TypeParams:  typeParams,
			Params:      params,
			Returns:     returns,
			Body:        []ir.Stmt{ir.Return{Value: forward(d.Alias, params, names)}},
		})
	}
	return funcs
}

// forward returns RxHttp.<name>(params...).wrapper().
func forward(name string, params []ir.Param, names rxhttp.Names) ir.Expr {
	args := make([]ir.Expr, len(params))
	for i, p := range params {
		var arg ir.Expr = ir.Id(p.Name)
		if p.Vararg {
			arg = ir.Spread{X: arg}
		}
		args[i] = arg
	}
	entry := ir.Call{
		Receiver: ir.TypeExpr{Type: names.RxHttp()},
		Callee:   ir.Id(name),
		Args:     args,
	}
	return ir.CallMethod(entry, wrapperFunc)
}
