package ir

// Expr is an expression node in a function body.
type Expr interface {
	exprNode()
}

// Stmt is a statement node in a function body.
type Stmt interface {
	stmtNode()
}

// Ident references a parameter, local, or member by name.
type Ident struct {
	Name string
}

// Literal is emitted verbatim.
type Literal struct {
	Text string
}

// StringLit is a quoted string literal.
type StringLit struct {
	Value string
}

// TypeExpr uses a type in expression position: as a constructor callee
// (Foo<Any>(x)) or as a call receiver (RxHttp.get(...)).
type TypeExpr struct {
	Type TypeName
}

// MemberRef references a top-level function or extension by package and
// name so the emitter can import it.
type MemberRef struct {
	Package string
	Name    string
}

// ClassLiteral is a class reference, as in List::class.
type ClassLiteral struct {
	Class ClassName
}

// Call invokes Callee with optional receiver and explicit type arguments.
type Call struct {
	Receiver Expr // nil for unqualified calls
	Callee   Expr // Ident, MemberRef, or TypeExpr
	TypeArgs []TypeName
	Args     []Expr
}

// Spread passes an array to a vararg parameter (*x).
type Spread struct {
	X Expr
}

// Cast is an unchecked cast (x as T).
type Cast struct {
	X    Expr
	Type TypeName
}

// Elvis falls back when X is null (x ?: fallback).
type Elvis struct {
	X        Expr
	Fallback Expr
}

// Binary applies an infix operator.
type Binary struct {
	Op string
	X  Expr
	Y  Expr
}

// IfElse is an if-expression.
type IfElse struct {
	Cond Expr
	Then Expr
	Else Expr
}

// This is the receiver of the enclosing function.
type This struct{}

func (Ident) exprNode()        {}
func (Literal) exprNode()      {}
func (StringLit) exprNode()    {}
func (TypeExpr) exprNode()     {}
func (MemberRef) exprNode()    {}
func (ClassLiteral) exprNode() {}
func (Call) exprNode()         {}
func (Spread) exprNode()       {}
func (Cast) exprNode()         {}
func (Elvis) exprNode()        {}
func (Binary) exprNode()       {}
func (IfElse) exprNode()       {}
func (This) exprNode()         {}

// Local declares a read-only local binding (val name = value).
type Local struct {
	Name  string
	Value Expr
}

// Return returns Value from the enclosing function.
type Return struct {
	Value Expr
}

// ExprStmt evaluates X for its side effects.
type ExprStmt struct {
	X Expr
}

func (Local) stmtNode()    {}
func (Return) stmtNode()   {}
func (ExprStmt) stmtNode() {}

// Id returns an Ident.
func Id(name string) Ident { return Ident{Name: name} }

// CallFunc returns an unqualified call of name.
func CallFunc(name string, args ...Expr) Call {
	return Call{Callee: Ident{Name: name}, Args: args}
}

// CallMethod returns a call of name on recv.
func CallMethod(recv Expr, name string, args ...Expr) Call {
	return Call{Receiver: recv, Callee: Ident{Name: name}, Args: args}
}

// New returns a constructor call of class with the given type arguments.
func New(class ClassName, typeArgs []TypeName, args ...Expr) Call {
	return Call{Callee: TypeExpr{Type: class}, TypeArgs: typeArgs, Args: args}
}
