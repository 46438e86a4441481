package introspect

import (
	"testing"

	"github.com/broady/rxhttpgen/decl"
	"github.com/broady/rxhttpgen/ir"
)

func ref(s string) decl.TypeRef { return decl.MustParseTypeRef(s) }

func refp(s string) *decl.TypeRef {
	r := ref(s)
	return &r
}

func param(name, typ string) decl.Parameter {
	return decl.Parameter{Name: name, Type: ref(typ)}
}

func testGraph() *decl.Graph {
	return &decl.Graph{Classes: []*decl.Class{
		{
			Name:           "com.example.BaseParser",
			Abstract:       true,
			TypeParameters: []decl.TypeParameter{{Name: "R"}},
			Supertypes:     []decl.TypeRef{ref("rxhttp.wrapper.parse.Parser<com.example.Response<R>>")},
			Functions: []decl.Function{
				{Name: "onParse", Parameters: []decl.Parameter{param("response", "okhttp3.Response")}, Returns: refp("com.example.Response<R>")},
			},
		},
		{
			Name:           "com.example.ResponseParser",
			TypeParameters: []decl.TypeParameter{{Name: "T"}},
			Supertypes:     []decl.TypeRef{ref("com.example.BaseParser<T>")},
			Constructors: []decl.Constructor{
				{Visibility: decl.Protected},
				{Parameters: []decl.Parameter{param("type", "java.lang.reflect.Type")}},
			},
		},
		{
			Name:           "com.example.PairParser",
			TypeParameters: []decl.TypeParameter{{Name: "F"}, {Name: "S", Bounds: []decl.TypeRef{ref("kotlin.CharSequence")}}},
			Supertypes:     []decl.TypeRef{ref("rxhttp.wrapper.parse.TypeParser<kotlin.Pair<F, S>>")},
			Constructors: []decl.Constructor{
				{Parameters: []decl.Parameter{{Name: "types", Type: ref("java.lang.reflect.Type"), Vararg: true}}},
			},
		},
		{
			Name:       "com.example.Plain",
			Supertypes: []decl.TypeRef{ref("kotlin.Any")},
		},
		{
			Name:       "com.example.LoopA",
			Supertypes: []decl.TypeRef{ref("com.example.LoopB")},
		},
		{
			Name:       "com.example.LoopB",
			Supertypes: []decl.TypeRef{ref("com.example.LoopA")},
		},
	}}
}

func mustLookup(t *testing.T, g *decl.Graph, name string) *decl.Class {
	t.Helper()
	c, ok := g.Lookup(name)
	if !ok {
		t.Fatalf("Lookup(%q) not found", name)
	}
	return c
}

func TestInspect_InheritedOnParse(t *testing.T) {
	g := testGraph()
	in := New(g)
	c := in.Inspect(mustLookup(t, g, "com.example.ResponseParser"))

	if got, want := c.Name.Canonical(), "com.example.ResponseParser"; got != want {
		t.Errorf("Name = %q, want %q", got, want)
	}
	if c.OnParse == nil {
		t.Fatal("OnParse = nil, want com.example.Response<T>")
	}
	if got, want := c.OnParse.String(), "com.example.Response<T>"; got != want {
		t.Errorf("OnParse = %q, want %q", got, want)
	}
	if !c.IsParser() {
		t.Error("IsParser() = false, want true")
	}
	if got := len(c.PublicConstructors()); got != 1 {
		t.Fatalf("len(PublicConstructors()) = %d, want 1", got)
	}
	if !c.PublicConstructors()[0].Eligible(1) {
		t.Error("Eligible(1) = false, want true")
	}
	if c.Constructors[0].Public {
		t.Error("protected constructor reported as public")
	}
}

func TestInspect_ExternalParserSupertype(t *testing.T) {
	g := testGraph()
	c := New(g).Inspect(mustLookup(t, g, "com.example.PairParser"))

	if got, want := c.OnParse.String(), "kotlin.Pair<F, S>"; got != want {
		t.Errorf("OnParse = %q, want %q", got, want)
	}
	if got, want := len(c.TypeVars[1].Bounds), 1; got != want {
		t.Fatalf("len(S.Bounds) = %d, want %d", got, want)
	}
	if got, want := c.TypeVars[1].Bounds[0].String(), "kotlin.CharSequence"; got != want {
		t.Errorf("S bound = %q, want %q", got, want)
	}
	ctor := c.Constructors[0]
	if !ctor.LeadingTokenArray() {
		t.Error("LeadingTokenArray() = false for vararg Type")
	}
	if !ctor.Eligible(2) {
		t.Error("Eligible(2) = false, want true")
	}
}

func TestInspect_ImplicitConstructor(t *testing.T) {
	g := testGraph()
	c := New(g).Inspect(mustLookup(t, g, "com.example.Plain"))

	if c.IsParser() {
		t.Error("IsParser() = true for kotlin.Any subtype")
	}
	if c.OnParse != nil {
		t.Errorf("OnParse = %v, want nil", c.OnParse)
	}
	if got := len(c.PublicConstructors()); got != 1 {
		t.Fatalf("len(PublicConstructors()) = %d, want 1", got)
	}
	if !c.PublicConstructors()[0].Eligible(0) {
		t.Error("no-arg constructor not eligible for zero type parameters")
	}
}

func TestIsSubtypeOf_Cycle(t *testing.T) {
	g := testGraph()
	in := New(g)
	if in.IsSubtypeOf(mustLookup(t, g, "com.example.LoopA"), "rxhttp.wrapper.parse.Parser") {
		t.Error("IsSubtypeOf() = true for a supertype cycle")
	}
	if !in.IsSubtypeOf(mustLookup(t, g, "com.example.LoopA"), "com.example.LoopB") {
		t.Error("IsSubtypeOf(LoopB) = false, want true")
	}
}

func TestConstructor_Eligible(t *testing.T) {
	typ := ir.JavaType
	tests := []struct {
		name   string
		params []ir.Param
		n      int
		want   bool
	}{
		{"no types", nil, 0, true},
		{"no params", nil, 1, false},
		{"exact tokens", []ir.Param{{Name: "a", Type: typ}, {Name: "b", Type: typ}}, 2, true},
		{"tokens then extra", []ir.Param{{Name: "a", Type: typ}, {Name: "b", Type: ir.String}}, 1, true},
		{"too few tokens", []ir.Param{{Name: "a", Type: typ}}, 2, false},
		{"wrong leading type", []ir.Param{{Name: "a", Type: ir.String}, {Name: "b", Type: typ}}, 1, false},
		{"array of tokens", []ir.Param{{Name: "a", Type: ir.Array.Parameterized(typ)}}, 3, true},
		{"nullable token", []ir.Param{{Name: "a", Type: typ.WithNullable(true)}}, 1, true},
		{"array of strings", []ir.Param{{Name: "a", Type: ir.Array.Parameterized(ir.String)}}, 1, false},
		{"out array of tokens", []ir.Param{{Name: "a", Type: ir.Array.Parameterized(ir.Project(ir.Out, typ))}}, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Constructor{Public: true, Params: tt.params}
			if got := c.Eligible(tt.n); got != tt.want {
				t.Errorf("Eligible(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestResolvable(t *testing.T) {
	in := New(testGraph())
	tests := map[string]bool{
		"com.example.Plain":            true,
		"kotlin.collections.List":      true,
		"java.util.Optional":           true,
		"com.example.missing.PageList": false,
	}
	for name, want := range tests {
		if got := in.Resolvable(name); got != want {
			t.Errorf("Resolvable(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestClassName_DeclaredPackage(t *testing.T) {
	g := &decl.Graph{Classes: []*decl.Class{{Name: "com.example.Outer.Inner", Package: "com.example"}}}
	got := New(g).ClassName("com.example.Outer.Inner")
	if got.Package != "com.example" || got.Name != "Outer.Inner" {
		t.Errorf("ClassName() = %+v, want com.example / Outer.Inner", got)
	}
}

func TestTypeName_Variance(t *testing.T) {
	in := New(testGraph())
	got := in.TypeName(ref("kotlin.collections.Map<in K, out kotlin.collections.List<com.example.Plain>>?"))
	if want := "kotlin.collections.Map<in K, out kotlin.collections.List<com.example.Plain>>?"; got.String() != want {
		t.Errorf("TypeName() = %s, want %s", got, want)
	}

	p, ok := got.(ir.ParameterizedType)
	if !ok {
		t.Fatalf("TypeName() = %T, want ir.ParameterizedType", got)
	}
	if proj, ok := p.Args[1].(ir.Projection); !ok || proj.Variance != ir.Out {
		t.Errorf("Args[1] = %#v, want an out projection", p.Args[1])
	}

	sub := substitute(p, map[string]ir.TypeName{"K": ir.String})
	if want := "kotlin.collections.Map<in kotlin.String, out kotlin.collections.List<com.example.Plain>>?"; sub.String() != want {
		t.Errorf("substitute() = %s, want %s", sub, want)
	}
}
