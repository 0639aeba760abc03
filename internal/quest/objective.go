package quest

import (
	"fmt"
	"strings"
)

// Objective is one condition of a quest.
type Objective interface {
	Met(ctx *Context) bool
	String() string
}

// ExecuteProgram holds when an executed node contains Pattern.
type ExecuteProgram struct{ Pattern string }

// DefineFunction holds when a function with at least MinParams parameters exists.
type DefineFunction struct{ MinParams int }

// UseVariables holds when at least Count variables are bound.
type UseVariables struct{ Count int }

// ProduceOutput holds when a printed line equals Expected.
type ProduceOutput struct{ Expected string }

// CreateVariable holds when the variable Name is bound, or any variable
// when Name is empty.
type CreateVariable struct{ Name string }

// CallFunction holds when Name was called, or any function when Name is empty.
type CallFunction struct{ Name string }

// PerformArithmetic holds when a binary operation was executed.
type PerformArithmetic struct{}

func (o ExecuteProgram) Met(ctx *Context) bool {
	return anyExecuted(ctx, func(n string) bool { return strings.Contains(n, o.Pattern) })
}

func (o DefineFunction) Met(ctx *Context) bool {
	for _, fn := range ctx.Functions {
		if len(fn.Params) >= o.MinParams {
			return true
		}
	}
	return false
}

func (o UseVariables) Met(ctx *Context) bool {
	return len(ctx.Variables) >= o.Count
}

func (o ProduceOutput) Met(ctx *Context) bool {
	for _, line := range ctx.Output {
		if line == o.Expected {
			return true
		}
	}
	return false
}

func (o CreateVariable) Met(ctx *Context) bool {
	if o.Name == "" {
		return len(ctx.Variables) > 0
	}
	_, ok := ctx.Variables[o.Name]
	return ok
}

func (o CallFunction) Met(ctx *Context) bool {
	prefix := "FnCall: " + o.Name
	if o.Name != "" {
		prefix += "("
	}
	return anyExecuted(ctx, func(n string) bool { return strings.HasPrefix(n, prefix) })
}

func (PerformArithmetic) Met(ctx *Context) bool {
	return anyExecuted(ctx, func(n string) bool { return strings.HasPrefix(n, "Binary: ") })
}

func (o ExecuteProgram) String() string {
	return fmt.Sprintf("Execute a program matching pattern: %s", o.Pattern)
}

func (o DefineFunction) String() string {
	return fmt.Sprintf("Define a function with at least %d parameters", o.MinParams)
}

func (o UseVariables) String() string {
	return fmt.Sprintf("Use %d variables in your program", o.Count)
}

func (o ProduceOutput) String() string {
	return fmt.Sprintf("Produce output: %s", o.Expected)
}

func (o CreateVariable) String() string {
	if o.Name == "" {
		return "Create any variable"
	}
	return fmt.Sprintf("Create a variable named '%s'", o.Name)
}

func (o CallFunction) String() string {
	if o.Name == "" {
		return "Call any function"
	}
	return fmt.Sprintf("Call function '%s'", o.Name)
}

func (PerformArithmetic) String() string { return "Perform arithmetic operations" }

func anyExecuted(ctx *Context, f func(string) bool) bool {
	for _, n := range ctx.Executed {
		if f(n) {
			return true
		}
	}
	return false
}
