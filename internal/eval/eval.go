// Package eval implements the tree-walking evaluator for cang.
//
// Evaluation is dynamically scoped by snapshot: a call runs its body in a
// copy of the caller's environment taken at call time, extended with the
// parameters. Nothing the callee binds is visible to the caller afterwards,
// and a function captures nothing when it is defined.
package eval

import (
	"fmt"
	"io"
	"strconv"

	"github.com/you-not-fish/cang/internal/syntax"
)

// DefaultMaxDepth is the default limit on nested function calls.
const DefaultMaxDepth = 10000

// Evaluator walks AST nodes against an Environment.
// Lines produced by print are appended to Output and written to Console.
type Evaluator struct {
	// Console receives each printed line followed by a newline. May be nil.
	Console io.Writer

	// MaxDepth limits nested function calls; 0 means DefaultMaxDepth.
	MaxDepth int

	// Visit, if set, is called with every node just before it is
	// evaluated, including nodes of function bodies run by a call.
	Visit func(e syntax.Expr)

	output []string
	depth  int
}

// New returns an Evaluator writing printed lines to console.
func New(console io.Writer) *Evaluator {
	return &Evaluator{Console: console}
}

// Output returns the lines printed since the last ResetOutput.
func (ev *Evaluator) Output() []string {
	return ev.output
}

// ResetOutput discards collected output.
func (ev *Evaluator) ResetOutput() {
	ev.output = nil
}

// Eval evaluates e in env and returns its integer value.
func (ev *Evaluator) Eval(e syntax.Expr, env *Environment) (int64, error) {
	if ev.Visit != nil {
		ev.Visit(e)
	}
	switch n := e.(type) {
	case *syntax.Number:
		return n.Value, nil

	case *syntax.String:
		return 0, nil

	case *syntax.Var:
		return ev.lookupNumber(n, env)

	case *syntax.Binary:
		return ev.binary(n, env)

	case *syntax.Let:
		v, err := ev.Eval(n.Value, env)
		if err != nil {
			return 0, err
		}
		env.SetNumber(n.Name, v)
		return v, nil

	case *syntax.FnDef:
		env.Set(n.Name, &FuncBinding{Name: n.Name, Params: n.Params, Body: n.Body})
		return 0, nil

	case *syntax.FnCall:
		return ev.call(n, env)

	case *syntax.Block:
		var v int64
		for _, s := range n.Stmts {
			var err error
			if v, err = ev.Eval(s, env); err != nil {
				return 0, err
			}
		}
		return v, nil

	case *syntax.Print:
		s, err := ev.display(n.X, env)
		if err != nil {
			return 0, err
		}
		ev.output = append(ev.output, s)
		if ev.Console != nil {
			fmt.Fprintln(ev.Console, s)
		}
		return 0, nil
	}

	panic(fmt.Sprintf("eval: unexpected node %T", e))
}

// lookupNumber resolves a variable reference to its integer value.
func (ev *Evaluator) lookupNumber(n *syntax.Var, env *Environment) (int64, error) {
	if v, ok := env.Number(n.Name); ok {
		return v, nil
	}
	if _, ok := env.Func(n.Name); ok {
		return 0, errorf(ErrNotANumber, n, "'%s' is a function; use call syntax %s(...)", n.Name, n.Name)
	}
	return 0, errorf(ErrUndefinedVariable, n, "undefined variable '%s'", n.Name)
}

func (ev *Evaluator) binary(n *syntax.Binary, env *Environment) (int64, error) {
	x, err := ev.Eval(n.X, env)
	if err != nil {
		return 0, err
	}
	y, err := ev.Eval(n.Y, env)
	if err != nil {
		return 0, err
	}

	switch n.Op {
	case syntax.Add:
		return x + y, nil
	case syntax.Sub:
		return x - y, nil
	case syntax.Mul:
		return x * y, nil
	case syntax.Div:
		if y == 0 {
			return 0, errorf(ErrDivisionByZero, n, "division by zero")
		}
		return x / y, nil
	}
	return 0, errorf(ErrInvalidOperator, n, "invalid operator %s", n.Op)
}

// call evaluates a function call.
//
// Arguments are evaluated left to right in the caller's environment. The
// body runs in a clone of that environment with the parameters bound; the
// clone is dropped when the call returns.
func (ev *Evaluator) call(n *syntax.FnCall, env *Environment) (int64, error) {
	fn, ok := env.Func(n.Name)
	if !ok {
		if _, bound := env.Lookup(n.Name); bound {
			return 0, errorf(ErrNotAFunction, n, "'%s' is not a function", n.Name)
		}
		return 0, errorf(ErrUndefinedFunction, n, "undefined function '%s'", n.Name)
	}
	if len(n.Args) != len(fn.Params) {
		return 0, errorf(ErrArity, n, "function '%s' expects %d arguments, got %d", n.Name, len(fn.Params), len(n.Args))
	}

	args := make([]int64, len(n.Args))
	for i, a := range n.Args {
		v, err := ev.Eval(a, env)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}

	limit := ev.MaxDepth
	if limit <= 0 {
		limit = DefaultMaxDepth
	}
	if ev.depth >= limit {
		return 0, errorf(ErrStackOverflow, n, "stack overflow: more than %d nested calls", limit)
	}
	ev.depth++
	defer func() { ev.depth-- }()

	frame := env.Clone()
	for i, p := range fn.Params {
		frame.SetNumber(p, args[i])
	}
	return ev.Eval(fn.Body, frame)
}

// display computes the text printed for print(x). A string literal is
// printed as is; anything else is evaluated and printed as an integer.
func (ev *Evaluator) display(x syntax.Expr, env *Environment) (string, error) {
	if str, ok := x.(*syntax.String); ok {
		if ev.Visit != nil {
			ev.Visit(str)
		}
		return str.Value, nil
	}
	v, err := ev.Eval(x, env)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(v, 10), nil
}
