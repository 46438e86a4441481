// Package rxhttp holds the names of RxHttp runtime types and members that
// generated code refers to.
package rxhttp

import "github.com/broady/rxhttpgen/ir"

// DefaultPackage is the package RxHttp generates its request classes into.
const DefaultPackage = "rxhttp.wrapper.param"

// Library types that do not move with the generated package.
var (
	Parser           = ir.NewClassName("rxhttp.wrapper.parse", "Parser")
	OkResponseParser = ir.NewClassName("rxhttp.wrapper.parse", "OkResponseParser")
	TypeUtil         = ir.NewClassName("rxhttp.wrapper.utils", "TypeUtil")

	// ParameterizedBy is the KClass extension that builds a parameterized
	// java.lang.reflect.Type, as in List::class.parameterizedBy(tType).
	ParameterizedBy = ir.MemberRef{Package: "rxhttp.wrapper.utils", Name: "parameterizedBy"}
)

// Member names on RxHttp and TypeUtil.
const (
	ToObservable  = "toObservable"
	GetActualType = "getActualType"
)

// Names resolves the generated RxHttp classes within one package.
type Names struct {
	Package string
}

// In returns the names for pkg, or DefaultPackage when pkg is empty.
func In(pkg string) Names {
	if pkg == "" {
		pkg = DefaultPackage
	}
	return Names{Package: pkg}
}

// RxHttp returns the generated RxHttp entry-point class.
func (n Names) RxHttp() ir.ClassName {
	return ir.NewClassName(n.Package, "RxHttp")
}

// AnyRxHttp returns RxHttp<*, *>.
func (n Names) AnyRxHttp() ir.ParameterizedType {
	return n.RxHttp().Parameterized(ir.Star{}, ir.Star{})
}

// ObservableCall returns ObservableCall<result>.
func (n Names) ObservableCall(result ir.TypeName) ir.ParameterizedType {
	return ir.NewClassName(n.Package, "ObservableCall").Parameterized(result)
}

// Param returns the RxHttp builder class for a param class or kind,
// e.g. "NoBodyParam" yields RxHttpNoBodyParam.
func (n Names) Param(simple string) ir.ClassName {
	return ir.NewClassName(n.Package, "RxHttp"+simple)
}

// Member returns a top-level function in the generated package.
func (n Names) Member(name string) ir.MemberRef {
	return ir.MemberRef{Package: n.Package, Name: name}
}
