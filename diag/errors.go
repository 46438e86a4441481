package diag

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// ParserBase is the supertype every parser class must inherit from.
const ParserBase = "rxhttp.wrapper.parse.Parser"

// TypeToken is the reflected-type token type named in constructor hints.
const TypeToken = "java.lang.reflect.Type"

// Issue is implemented by every error in the taxonomy. Issues are reported
// as diagnostics instead of aborting the pass, except EmissionError.
type Issue interface {
	error
	Code() string
	Severity() Severity
	Location() Location
}

// NotPublicError: the annotated class is not public.
type NotPublicError struct {
	Loc Location
}

func (e *NotPublicError) Error() string {
	return fmt.Sprintf("The class '%s' must be public", e.Loc.Symbol)
}
func (e *NotPublicError) Code() string       { return "not_public" }
func (e *NotPublicError) Severity() Severity { return SeverityError }
func (e *NotPublicError) Location() Location { return e.Loc }

// AbstractClassError: the annotated class is abstract.
type AbstractClassError struct {
	Loc Location
}

func (e *AbstractClassError) Error() string {
	return fmt.Sprintf("The class '%s' is abstract. You can't annotate abstract classes with @Parser", e.Loc.Symbol)
}
func (e *AbstractClassError) Code() string       { return "abstract_class" }
func (e *AbstractClassError) Severity() Severity { return SeverityError }
func (e *AbstractClassError) Location() Location { return e.Loc }

// WrongSupertypeError: the annotated class does not inherit from Parser.
type WrongSupertypeError struct {
	Loc Location
}

func (e *WrongSupertypeError) Error() string {
	return fmt.Sprintf("The class '%s' annotated with @Parser must inherit from %s", e.Loc.Symbol, ParserBase)
}
func (e *WrongSupertypeError) Code() string       { return "wrong_supertype" }
func (e *WrongSupertypeError) Severity() Severity { return SeverityError }
func (e *WrongSupertypeError) Location() Location { return e.Loc }

// MissingTypeConstructorError: a generic parser has no public constructor
// whose leading parameters are type tokens.
type MissingTypeConstructorError struct {
	Loc Location

	// SimpleName is the class simple name used in the required shape.
	SimpleName string

	// TypeCount is the number of declared type parameters.
	TypeCount int
}

// RequiredShape returns the constructor the class must declare,
// e.g. "public Foo(java.lang.reflect.Type,java.lang.reflect.Type)".
func (e *MissingTypeConstructorError) RequiredShape() string {
	tokens := make([]string, e.TypeCount)
	for i := range tokens {
		tokens[i] = TypeToken
	}
	return fmt.Sprintf("public %s(%s)", e.SimpleName, strings.Join(tokens, ","))
}

func (e *MissingTypeConstructorError) Error() string {
	return fmt.Sprintf("This class '%s' must declare '%s' constructor fun", e.Loc.Symbol, e.RequiredShape())
}
func (e *MissingTypeConstructorError) Code() string       { return "missing_type_constructor" }
func (e *MissingTypeConstructorError) Severity() Severity { return SeverityError }
func (e *MissingTypeConstructorError) Location() Location { return e.Loc }

// DuplicateWrapperFieldError: two properties set the same builder field
// (converter, okClient or domain) for one className.
type DuplicateWrapperFieldError struct {
	Loc Location

	// Annotation is the simple annotation name, e.g. "Converter".
	Annotation string
	ClassName  string
}

func (e *DuplicateWrapperFieldError) Error() string {
	return fmt.Sprintf("@%s annotation className cannot be the same", e.Annotation)
}
func (e *DuplicateWrapperFieldError) Code() string       { return "duplicate_wrapper_field" }
func (e *DuplicateWrapperFieldError) Severity() Severity { return SeverityError }
func (e *DuplicateWrapperFieldError) Location() Location { return e.Loc }

// DuplicateAliasError: two classes claim the same parser alias or request
// method name. The later registration replaces the earlier one.
type DuplicateAliasError struct {
	Loc Location

	// Kind is "parser" or "param".
	Kind     string
	Alias    string
	Previous string
}

func (e *DuplicateAliasError) Error() string {
	return fmt.Sprintf("The %s alias '%s' of class '%s' is already used by '%s'; the later declaration wins", e.Kind, e.Alias, e.Loc.Symbol, e.Previous)
}
func (e *DuplicateAliasError) Code() string       { return "duplicate_alias" }
func (e *DuplicateAliasError) Severity() Severity { return SeverityWarning }
func (e *DuplicateAliasError) Location() Location { return e.Loc }

// UnresolvedWrapperError: a declared wrapper class is not in the
// declaration graph and was referenced by best guess.
type UnresolvedWrapperError struct {
	Loc     Location
	Wrapper string
}

func (e *UnresolvedWrapperError) Error() string {
	return fmt.Sprintf("The wrapper class '%s' declared on '%s' could not be resolved; referencing it by name", e.Wrapper, e.Loc.Symbol)
}
func (e *UnresolvedWrapperError) Code() string       { return "unresolved_wrapper" }
func (e *UnresolvedWrapperError) Severity() Severity { return SeverityWarning }
func (e *UnresolvedWrapperError) Location() Location { return e.Loc }

// UnresolvedOnParseError: the onParse return type could not be determined,
// so no functions are generated for the parser.
type UnresolvedOnParseError struct {
	Loc Location
}

func (e *UnresolvedOnParseError) Error() string {
	return fmt.Sprintf("The class '%s' has no resolvable onParse return type; no functions generated", e.Loc.Symbol)
}
func (e *UnresolvedOnParseError) Code() string       { return "unresolved_on_parse" }
func (e *UnresolvedOnParseError) Severity() Severity { return SeverityWarning }
func (e *UnresolvedOnParseError) Location() Location { return e.Loc }

// EmissionError: the writer failed. Fatal.
type EmissionError struct {
	Path string
	Err  error
}

func (e *EmissionError) Error() string {
	return fmt.Sprintf("emit %s: %v", e.Path, e.Err)
}

func (e *EmissionError) Unwrap() error { return e.Err }

// FromError converts err into a diagnostic if it wraps an Issue.
// Hints attached with errors.WithHint are appended to the message.
func FromError(err error) (Diagnostic, bool) {
	var issue Issue
	if !errors.As(err, &issue) {
		return Diagnostic{}, false
	}
	loc := issue.Location()
	d := Diagnostic{
		Severity: issue.Severity(),
		Code:     issue.Code(),
		Message:  issue.Error(),
		Location: &loc,
	}
	if hint := errors.FlattenHints(err); hint != "" {
		d.Message += " (hint: " + hint + ")"
	}
	return d, true
}

// Report reports err as a diagnostic if it wraps an Issue and reports
// whether it did.
func Report(r Reporter, err error) bool {
	d, ok := FromError(err)
	if ok {
		r.Report(d)
	}
	return ok
}
