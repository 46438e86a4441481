package request

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/rxhttpgen/decl"
	"github.com/broady/rxhttpgen/diag"
	"github.com/broady/rxhttpgen/internal/introspect"
	"github.com/broady/rxhttpgen/internal/rxhttp"
	"github.com/broady/rxhttpgen/ir"
	"github.com/broady/rxhttpgen/kotlin"
)

const requestGraph = `
classes:
  - name: com.example.FooParam
    file: FooParam.kt
    constructors:
      - parameters: [{name: id, type: kotlin.Int}]
    annotations:
      - name: Param
        args: {methodName: bar}
  - name: com.example.PostEncryptFormParam
    file: PostEncryptFormParam.kt
    constructors:
      - parameters: [{name: url, type: kotlin.String}]
      - visibility: private
        parameters: [{name: url, type: kotlin.String}, {name: secret, type: kotlin.ByteArray}]
    annotations:
      - name: rxhttp.wrapper.annotation.Param
        args: {methodName: postEncryptForm}
  - name: com.example.TypedParam
    file: TypedParam.kt
    typeParameters: [{name: T}]
    constructors:
      - parameters: [{name: url, type: "kotlin.String?"}, {name: items, type: "kotlin.collections.List<T>", vararg: false}]
    annotations:
      - name: Param
        args: {methodName: typed}
properties:
  - name: jsonConverter
    owner: com.example.RxHttpManager
    file: RxHttpManager.kt
    line: 10
    annotations:
      - name: Converter
        args: {name: Json, className: Api}
  - name: noClass
    owner: com.example.RxHttpManager
    file: RxHttpManager.kt
    annotations:
      - name: Domain
        args: {name: Ignored}
  - name: baiduDomain
    owner: com.example.RxHttpManager
    file: Domains.kt
    annotations:
      - name: Domain
        args: {className: Baidu}
  - name: simpleClient
    file: Clients.kt
    annotations:
      - name: OkClient
        args: {className: Baidu}
`

var names = rxhttp.In("")

func setup(t *testing.T, src string) (*Registry, *Wrappers, *diag.Collector) {
	t.Helper()
	g, err := decl.Parse([]byte(src))
	require.NoError(t, err)

	var c diag.Collector
	reg := NewRegistry(introspect.New(g), &c)
	for _, class := range g.Classes {
		require.NoError(t, reg.Visit(class))
	}
	ws := NewWrappers(&c)
	for _, p := range g.Properties {
		require.NoError(t, ws.AddProperty(p))
	}
	return reg, ws, &c
}

func renderUnit(t *testing.T, u ir.Unit) string {
	t.Helper()
	out, err := kotlin.Render(u.File, kotlin.Options{})
	require.NoError(t, err)
	return string(out)
}

func TestParamFuncs_ForwardsConstructorParams(t *testing.T) {
	reg, _, _ := setup(t, requestGraph)
	d, ok := reg.Lookup("bar")
	require.True(t, ok)

	funcs := ParamFuncs(d, names)
	require.Len(t, funcs, 1)
	fn := funcs[0]
	assert.Equal(t, "bar", fn.Name)
	assert.Equal(t, []string{"id"}, fn.ParamNames())
	assert.Equal(t, "rxhttp.wrapper.param.RxHttpFooParam", fn.Returns.String())

	file := &ir.File{Package: names.Package, Name: "X", Funcs: funcs}
	out, err := kotlin.Render(file, kotlin.Options{})
	require.NoError(t, err)
	assert.Contains(t, string(out), "@JvmStatic\nfun bar(id: Int): RxHttpFooParam {\n    return RxHttp.bar(id).wrapper()\n}")
}

func TestParamFuncs_FormatArgs(t *testing.T) {
	reg, _, _ := setup(t, requestGraph)

	d, _ := reg.Lookup("postEncryptForm")
	funcs := ParamFuncs(d, names)
	require.Len(t, funcs, 1, "private constructors are skipped")
	assert.Equal(t, []string{"url", "formatArgs"}, funcs[0].ParamNames())
	assert.True(t, funcs[0].Params[1].Vararg)

	typed, _ := reg.Lookup("typed")
	funcs = ParamFuncs(typed, names)
	require.Len(t, funcs, 1)
	assert.Equal(t, []string{"url", "items"}, funcs[0].ParamNames(), "nullable String does not take formatArgs")
	assert.Equal(t, "rxhttp.wrapper.param.RxHttpTypedParam<T>", funcs[0].Returns.String())
}

func TestWrapperFunc_ConverterOnly(t *testing.T) {
	_, ws, _ := setup(t, requestGraph)
	w, ok := ws.Lookup("Api")
	require.True(t, ok)

	fn := WrapperFunc(w, names)
	require.Len(t, fn.Body, 2)
	call, ok := fn.Body[0].(ir.ExprStmt)
	require.True(t, ok)
	assert.Equal(t, ir.CallFunc("setJson"), call.X)
	assert.Equal(t, ir.Return{Value: ir.This{}}, fn.Body[1])
}

func TestWrappers_Registration(t *testing.T) {
	_, ws, c := setup(t, requestGraph)

	assert.Equal(t, 2, ws.Len(), "empty className is ignored")
	baidu, ok := ws.Lookup("Baidu")
	require.True(t, ok)
	assert.Equal(t, Wrapper{OkClientName: "SimpleClient", DomainName: "BaiduDomain"}, *baidu)
	assert.Empty(t, c.Diagnostics())
	assert.Equal(t, []string{"Clients.kt", "Domains.kt", "RxHttpManager.kt"}, ws.Dependencies().Files())
}

func TestWrappers_DuplicateField(t *testing.T) {
	_, ws, c := setup(t, `
properties:
  - name: gson
    file: A.kt
    line: 3
    annotations: [{name: Converter, args: {className: Api}}]
  - name: moshi
    file: B.kt
    line: 7
    annotations: [{name: Converter, args: {className: Api}}]
`)
	w, _ := ws.Lookup("Api")
	assert.Equal(t, "Moshi", w.ConverterName)

	diags := c.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, diag.SeverityError, diags[0].Severity)
	assert.Equal(t, "@Converter annotation className cannot be the same", diags[0].Message)
	assert.Equal(t, "B.kt", diags[0].Location.File)
	assert.Equal(t, 7, diags[0].Location.Line)
}

func TestGenerate(t *testing.T) {
	reg, ws, _ := setup(t, requestGraph)
	units := Generate(reg, ws, names)
	require.Len(t, units, 2)

	assert.Equal(t, "rxhttp/wrapper/param/RxApiHttp.kt", units[0].File.Path(".kt"))
	assert.Equal(t, "rxhttp/wrapper/param/RxBaiduHttp.kt", units[1].File.Path(".kt"))
	assert.False(t, units[0].Deps.Aggregating)
	assert.Equal(t, []string{
		"Clients.kt", "Domains.kt", "FooParam.kt", "PostEncryptFormParam.kt", "RxHttpManager.kt", "TypedParam.kt",
	}, units[0].Deps.Files())

	api := renderUnit(t, units[0])
	assert.Contains(t, api, "object RxApiHttp {\n")
	assert.Contains(t, api, "    private fun <R : RxHttp<*, *>> R.wrapper(): R {\n        setJson()\n        return this\n    }\n")
	assert.Contains(t, api, "    @JvmStatic\n    fun get(url: String, vararg formatArgs: Any?): RxHttpNoBodyParam {\n        return RxHttp.get(url, *formatArgs).wrapper()\n    }\n")
	assert.Contains(t, api, "    fun deleteJsonArray(url: String, vararg formatArgs: Any?): RxHttpJsonArrayParam {\n")
	assert.Contains(t, api, "    fun postEncryptForm(url: String, vararg formatArgs: Any?): RxHttpPostEncryptFormParam {\n        return RxHttp.postEncryptForm(url, *formatArgs).wrapper()\n    }\n")
	assert.Contains(t, api, "    fun <T> typed(url: String?, items: List<T>): RxHttpTypedParam<T> {\n")
	assert.Equal(t, len(Verbs)+3, strings.Count(api, "@JvmStatic"))
	assert.NotContains(t, api, "import ")

	baidu := renderUnit(t, units[1])
	assert.Contains(t, baidu, "        setSimpleClient()\n        setDomainToBaiduDomainIfAbsent()\n        return this\n")
	assert.NotContains(t, baidu, "setJson")
}

func TestGenerate_NoWrappers(t *testing.T) {
	reg, ws, _ := setup(t, `
classes:
  - name: com.example.FooParam
    annotations: [{name: Param, args: {methodName: foo}}]
`)
	assert.Empty(t, Generate(reg, ws, names))
}

func TestRegistry_DuplicateMethodName(t *testing.T) {
	reg, _, c := setup(t, `
classes:
  - name: com.example.A
    annotations: [{name: Param, args: {methodName: same}}]
  - name: com.example.B
    annotations: [{name: Param, args: {methodName: same}}]
  - name: com.example.DefaultNameParam
    annotations: [{name: Param}]
`)
	descs := reg.Descriptors()
	require.Len(t, descs, 2)
	assert.Equal(t, "com.example.B", descs[0].Class.Decl.Name)
	assert.Equal(t, "defaultNameParam", descs[1].Alias)

	diags := c.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, "duplicate_alias", diags[0].Code)
	assert.Equal(t, diag.SeverityWarning, diags[0].Severity)
}

func TestUpperFirst(t *testing.T) {
	tests := map[string]string{
		"jsonConverter": "JsonConverter",
		"x":             "X",
		"":              "",
		"éclair":        "Éclair",
		"URL":           "URL",
	}
	for in, want := range tests {
		assert.Equal(t, want, upperFirst(in), in)
	}
}
