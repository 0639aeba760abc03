package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// Every statement in cang is an expression, so there is a single node class.
// The set of Expr implementations is closed: only this package can add one,
// and consumers switch over the concrete types below.

// Expr is the interface implemented by all AST nodes.
type Expr interface {
	Pos() Pos // position of the node's first token
	aExpr()   // marker method to restrict implementations to this package
}

// ----------------------------------------------------------------------------
// Base node type

// expr is the base struct embedded in all AST nodes.
type expr struct {
	pos Pos
}

func (n *expr) Pos() Pos { return n.pos }
func (*expr) aExpr()     {}

// ----------------------------------------------------------------------------
// Leaves

// Number represents an integer literal.
type Number struct {
	expr
	Value int64
}

// String represents a string literal (decoded text).
type String struct {
	expr
	Value string
}

// Var represents a reference to a named number binding.
type Var struct {
	expr
	Name string
}

// ----------------------------------------------------------------------------
// Statements and compound expressions

// Let represents a binding: let Name = Value
type Let struct {
	expr
	Name  string
	Value Expr
}

// FnDef represents a function definition: fn Name(Params) { Body }
// The body is a single expression.
type FnDef struct {
	expr
	Name   string
	Params []string
	Body   Expr
}

// FnCall represents a call: Name(Args...)
type FnCall struct {
	expr
	Name string
	Args []Expr
}

// Binary represents X Op Y where Op is one of Add, Sub, Mul, Div.
type Binary struct {
	expr
	X  Expr
	Op Token
	Y  Expr
}

// Block represents a sequence of statements; its value is the last one's.
type Block struct {
	expr
	Stmts []Expr
}

// Print represents print(X).
type Print struct {
	expr
	X Expr
}

// ----------------------------------------------------------------------------
// Constructors
//
// The parser sets positions directly; these are for building trees by hand.

// NewNumber returns a Number node.
func NewNumber(v int64) *Number { return &Number{Value: v} }

// NewString returns a String node.
func NewString(v string) *String { return &String{Value: v} }

// NewVar returns a Var node.
func NewVar(name string) *Var { return &Var{Name: name} }

// NewLet returns a Let node.
func NewLet(name string, value Expr) *Let { return &Let{Name: name, Value: value} }

// NewFnDef returns a FnDef node.
func NewFnDef(name string, params []string, body Expr) *FnDef {
	return &FnDef{Name: name, Params: params, Body: body}
}

// NewFnCall returns a FnCall node.
func NewFnCall(name string, args ...Expr) *FnCall { return &FnCall{Name: name, Args: args} }

// NewBinary returns a Binary node.
func NewBinary(x Expr, op Token, y Expr) *Binary { return &Binary{X: x, Op: op, Y: y} }

// NewBlock returns a Block node.
func NewBlock(stmts ...Expr) *Block { return &Block{Stmts: stmts} }

// NewPrint returns a Print node.
func NewPrint(x Expr) *Print { return &Print{X: x} }

// KindOf returns the variant name of e ("Number", "Binary", ...).
func KindOf(e Expr) string {
	switch e.(type) {
	case *Number:
		return "Number"
	case *String:
		return "String"
	case *Var:
		return "Var"
	case *Let:
		return "Let"
	case *FnDef:
		return "FnDef"
	case *FnCall:
		return "FnCall"
	case *Binary:
		return "Binary"
	case *Block:
		return "Block"
	case *Print:
		return "Print"
	}
	return "<nil>"
}
