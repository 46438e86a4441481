package ir

// Kotlin and JVM types the generator refers to directly.
var (
	Any       = NewClassName("kotlin", "Any")
	String    = NewClassName("kotlin", "String")
	Array     = NewClassName("kotlin", "Array")
	List      = NewClassName("kotlin.collections", "List")
	Suppress  = NewClassName("kotlin", "Suppress")
	JvmStatic = NewClassName("kotlin.jvm", "JvmStatic")

	// JavaType is the reflected type token, java.lang.reflect.Type.
	JavaType = NewClassName("java.lang.reflect", "Type")

	// JavaClass is the class token, java.lang.Class.
	JavaClass = NewClassName("java.lang", "Class")
)

// NullableAny returns kotlin.Any?.
func NullableAny() ClassName {
	return ClassName{Package: Any.Package, Name: Any.Name, Nullable: true}
}

// IsAny reports whether t is kotlin.Any or kotlin.Any?.
func IsAny(t TypeName) bool {
	c, ok := t.(ClassName)
	return ok && c.Package == Any.Package && c.Name == Any.Name
}

// IsClass reports whether t is the class c, ignoring nullability.
func IsClass(t TypeName, c ClassName) bool {
	tc, ok := t.(ClassName)
	return ok && tc.Canonical() == c.Canonical()
}

// IsArrayOf reports whether t is Array<elem>, ignoring nullability.
func IsArrayOf(t TypeName, elem ClassName) bool {
	p, ok := t.(ParameterizedType)
	if !ok || p.Raw.Canonical() != Array.Canonical() || len(p.Args) != 1 {
		return false
	}
	return IsClass(Unproject(p.Args[0]), elem)
}
