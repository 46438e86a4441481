package kotlin

import (
	"strings"
	"testing"

	"github.com/broady/rxhttpgen/ir"
)

var (
	rxHttp           = ir.NewClassName("rxhttp.wrapper.param", "RxHttp")
	observableCall   = ir.NewClassName("rxhttp.wrapper.param", "ObservableCall")
	parserClass      = ir.NewClassName("rxhttp.wrapper.parse", "Parser")
	okResponseParser = ir.NewClassName("rxhttp.wrapper.parse", "OkResponseParser")
	typeUtil         = ir.NewClassName("rxhttp.wrapper.utils", "TypeUtil")
	responseParser   = ir.NewClassName("com.example", "ResponseParser")
)

func TestRender_ParserFile(t *testing.T) {
	tv := ir.TypeVariable{Name: "T"}
	token := ir.Id("tType")
	f := &ir.File{
		Package: "rxhttp.wrapper.param",
		Name:    "RxHttpParsers",
		Comment: "Code generated by rxhttpgen. DO NOT EDIT.",
	}
	f.AddFunc(&ir.Func{
		Name:       "toObservableResponse",
		Receiver:   rxHttp.Parameterized(ir.Star{}, ir.Star{}),
		TypeParams: []ir.TypeVariable{tv},
		Params:     []ir.Param{{Name: "tType", Type: ir.JavaType}},
		Returns:    observableCall.Parameterized(tv),
		Body: []ir.Stmt{
			ir.Return{Value: ir.CallFunc("toObservable", ir.Call{
				Callee:   ir.MemberRef{Package: "rxhttp.wrapper.param", Name: "wrapResponseParser"},
				TypeArgs: []ir.TypeName{tv},
				Args:     []ir.Expr{token},
			})},
		},
	})
	f.AddFunc(&ir.Func{
		Name:        "wrapResponseParser",
		Annotations: []ir.Annotation{{Type: ir.Suppress, Members: []string{`"UNCHECKED_CAST"`}}},
		TypeParams:  []ir.TypeVariable{tv},
		Params:      []ir.Param{{Name: "tType", Type: ir.JavaType}},
		Returns:     parserClass.Parameterized(tv),
		Body: []ir.Stmt{
			ir.Local{Name: "actualType", Value: ir.Elvis{
				X:        ir.CallMethod(ir.TypeExpr{Type: typeUtil}, "getActualType", token),
				Fallback: token,
			}},
			ir.Local{Name: "parser", Value: ir.New(responseParser, []ir.TypeName{ir.Any}, ir.Id("actualType"))},
			ir.Local{Name: "actualParser", Value: ir.IfElse{
				Cond: ir.Binary{Op: "==", X: ir.Id("actualType"), Y: token},
				Then: ir.Id("parser"),
				Else: ir.New(okResponseParser, nil, ir.Id("parser")),
			}},
			ir.Return{Value: ir.Cast{X: ir.Id("actualParser"), Type: parserClass.Parameterized(tv)}},
		},
	})

	got, err := Render(f, Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := `// Code generated by rxhttpgen. DO NOT EDIT.

package rxhttp.wrapper.param

import com.example.ResponseParser
import java.lang.reflect.Type
import rxhttp.wrapper.parse.OkResponseParser
import rxhttp.wrapper.parse.Parser
import rxhttp.wrapper.utils.TypeUtil

fun <T> RxHttp<*, *>.toObservableResponse(tType: Type): ObservableCall<T> {
    return toObservable(wrapResponseParser<T>(tType))
}

@Suppress("UNCHECKED_CAST")
fun <T> wrapResponseParser(tType: Type): Parser<T> {
    val actualType = TypeUtil.getActualType(tType) ?: tType
    val parser = ResponseParser<Any>(actualType)
    val actualParser = if (actualType == tType) parser else OkResponseParser(parser)
    return actualParser as Parser<T>
}
`
	if string(got) != want {
		t.Errorf("Render() mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRender_Object(t *testing.T) {
	r := ir.NewTypeVariable("R", rxHttp.Parameterized(ir.Star{}, ir.Star{}))
	obj := &ir.Type{Kind: ir.DeclObject, Name: "RxApiHttp", Doc: "Generated for className Api."}
	obj.AddFunc(&ir.Func{
		Name:       "wrapper",
		Doc:        "Every factory in this object calls wrapper.",
		Modifiers:  []ir.Modifier{ir.ModifierPrivate},
		TypeParams: []ir.TypeVariable{r},
		Receiver:   ir.TypeVariable{Name: "R"},
		Returns:    ir.TypeVariable{Name: "R"},
		Body: []ir.Stmt{
			ir.ExprStmt{X: ir.CallFunc("setJson")},
			ir.Return{Value: ir.This{}},
		},
	})
	obj.AddFunc(&ir.Func{
		Name:        "get",
		Annotations: []ir.Annotation{{Type: ir.JvmStatic}},
		Params: []ir.Param{
			{Name: "url", Type: ir.String},
			{Name: "formatArgs", Type: ir.NullableAny(), Vararg: true},
		},
		Returns: ir.NewClassName("rxhttp.wrapper.param", "RxHttpNoBodyParam"),
		Body: []ir.Stmt{
			ir.Return{Value: ir.CallMethod(
				ir.CallMethod(ir.TypeExpr{Type: rxHttp}, "get", ir.Id("url"), ir.Spread{X: ir.Id("formatArgs")}),
				"wrapper",
			)},
		},
	})
	f := &ir.File{Package: "rxhttp.wrapper.param", Name: "RxApiHttp"}
	f.AddType(obj)

	got, err := Render(f, Options{IndentSize: 2})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := `package rxhttp.wrapper.param

/**
 * Generated for className Api.
 */
object RxApiHttp {
  /**
   * Every factory in this object calls wrapper.
   */
  private fun <R : RxHttp<*, *>> R.wrapper(): R {
    setJson()
    return this
  }

  @JvmStatic
  fun get(url: String, vararg formatArgs: Any?): RxHttpNoBodyParam {
    return RxHttp.get(url, *formatArgs).wrapper()
  }
}
`
	if string(got) != want {
		t.Errorf("Render() mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRender_SimpleNameClash(t *testing.T) {
	page := ir.NewClassName("com.example", "List")
	f := &ir.File{Package: "rxhttp.wrapper.param", Name: "Clash"}
	f.AddFunc(&ir.Func{
		Name:    "both",
		Params:  []ir.Param{{Name: "a", Type: ir.List.Parameterized(ir.String)}, {Name: "b", Type: page}},
		Returns: nil,
	})

	got, err := Render(f, Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := string(got)
	if !strings.Contains(out, "fun both(a: List<String>, b: com.example.List) {") {
		t.Errorf("clashing class not qualified:\n%s", out)
	}
	if strings.Contains(out, "import com.example.List") {
		t.Errorf("clashing class imported:\n%s", out)
	}
}

func TestRender_ReservedAndBounds(t *testing.T) {
	charSeq := ir.NewClassName("kotlin", "CharSequence")
	comparable := ir.NewClassName("kotlin", "Comparable")
	tv := ir.NewTypeVariable("T", charSeq, comparable.Parameterized(ir.TypeVariable{Name: "T"}))
	f := &ir.File{Package: "p", Name: "Reserved"}
	f.AddFunc(&ir.Func{
		Name:       "in",
		TypeParams: []ir.TypeVariable{tv},
		Params:     []ir.Param{{Name: "object", Type: ir.TypeVariable{Name: "T", Nullable: true}}},
		Returns:    ir.String,
		Body:       []ir.Stmt{ir.Return{Value: ir.StringLit{Value: `a "$b"`}}},
	})

	got, err := Render(f, Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := "fun <T> `in`(`object`: T?): String where T : CharSequence, T : Comparable<T> {\n" +
		"    return \"a \\\"\\$b\\\"\"\n" +
		"}\n"
	if !strings.Contains(string(got), want) {
		t.Errorf("Render() =\n%s\nwant it to contain:\n%s", got, want)
	}
}

func TestRender_Variance(t *testing.T) {
	foo := ir.NewClassName("com.example", "Foo")
	f := &ir.File{Package: "p", Name: "Variance"}
	f.AddFunc(&ir.Func{
		Name: "of",
		Params: []ir.Param{
			{Name: "types", Type: ir.Array.Parameterized(ir.Project(ir.Out, ir.JavaType))},
			{Name: "sink", Type: ir.List.Parameterized(ir.Project(ir.In, foo.WithNullable(true))).WithNullable(true)},
		},
	})

	got, err := Render(f, Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := string(got)
	if !strings.Contains(out, "fun of(types: Array<out Type>, sink: List<in Foo?>?) {") {
		t.Errorf("Render() =\n%s", out)
	}
	for _, imp := range []string{"import com.example.Foo\n", "import java.lang.reflect.Type\n"} {
		if !strings.Contains(out, imp) {
			t.Errorf("Render() missing %q:\n%s", imp, out)
		}
	}
}

func TestRender_Parenthesize(t *testing.T) {
	f := &ir.File{Package: "p", Name: "Paren"}
	f.AddFunc(&ir.Func{
		Name: "f",
		Body: []ir.Stmt{
			ir.Return{Value: ir.CallMethod(ir.Elvis{X: ir.Id("a"), Fallback: ir.Id("b")}, "size")},
		},
	})
	got, err := Render(f, Options{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(string(got), "return (a ?: b).size()") {
		t.Errorf("Render() =\n%s", got)
	}
}

type badExpr struct{ ir.Ident }

func TestRender_UnsupportedNode(t *testing.T) {
	f := &ir.File{Package: "p", Name: "Bad"}
	f.AddFunc(&ir.Func{Name: "f", Body: []ir.Stmt{ir.Return{Value: badExpr{}}}})
	if _, err := Render(f, Options{}); err == nil {
		t.Error("Render() error = nil, want unsupported expression error")
	}
}
