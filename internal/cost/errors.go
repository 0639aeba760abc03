package cost

import "fmt"

// ErrorKind classifies a ValidationError by the stage that failed.
type ErrorKind uint8

const (
	Coin    ErrorKind = iota // validation or spending ran out of coins
	Parse                    // the source did not parse
	Runtime                  // evaluation failed
)

var errorKindNames = [...]string{
	Coin:    "coin",
	Parse:   "parse",
	Runtime: "runtime",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", k)
}

// ValidationError is the single error type returned by the execution
// pipeline. Err is a *coins.InsufficientFundsError, a *syntax.ParseError
// or an *eval.RuntimeError.
type ValidationError struct {
	Kind ErrorKind
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
