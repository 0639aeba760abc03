package eval

import (
	"errors"
	"fmt"

	"github.com/you-not-fish/cang/internal/syntax"
)

// Causes of runtime errors, matched with errors.Is.
var (
	ErrDivisionByZero    = errors.New("division by zero")
	ErrArity             = errors.New("arity mismatch")
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrUndefinedFunction = errors.New("undefined function")
	ErrNotAFunction      = errors.New("not a function")
	ErrNotANumber        = errors.New("not a number")
	ErrInvalidOperator   = errors.New("invalid operator")
	ErrStackOverflow     = errors.New("stack overflow")
)

// RuntimeError represents a failure during evaluation.
type RuntimeError struct {
	Cause error      // one of the Err* values above
	Pos   syntax.Pos // position of the failing node, if known
	Msg   string
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	}
	return e.Msg
}

// Unwrap returns the cause.
func (e *RuntimeError) Unwrap() error {
	return e.Cause
}

// errorf builds a RuntimeError for node n.
func errorf(cause error, n syntax.Expr, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{
		Cause: cause,
		Pos:   n.Pos(),
		Msg:   fmt.Sprintf(format, args...),
	}
}
