package eval

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/you-not-fish/cang/internal/syntax"
)

// Binding is the value stored under a name: a *NumberBinding or a *FuncBinding.
type Binding interface {
	aBinding()
	String() string
}

// NumberBinding holds an integer value.
type NumberBinding struct {
	Value int64
}

// FuncBinding holds a function definition.
type FuncBinding struct {
	Name   string
	Params []string
	Body   syntax.Expr
}

func (*NumberBinding) aBinding() {}
func (*FuncBinding) aBinding()   {}

func (b *NumberBinding) String() string { return fmt.Sprintf("%d", b.Value) }

func (b *FuncBinding) String() string {
	return fmt.Sprintf("fn %s(%s)", b.Name, strings.Join(b.Params, ", "))
}

// Environment maps names to bindings. Keys are unique; the last write wins.
//
// An Environment is owned by one session and is not safe for concurrent use.
type Environment struct {
	elems map[string]Binding
}

// NewEnvironment returns an empty environment.
func NewEnvironment() *Environment {
	return &Environment{elems: make(map[string]Binding)}
}

// Lookup returns the binding for name, if any.
func (env *Environment) Lookup(name string) (Binding, bool) {
	b, ok := env.elems[name]
	return b, ok
}

// Set binds name to b, replacing any previous binding.
func (env *Environment) Set(name string, b Binding) {
	env.elems[name] = b
}

// SetNumber binds name to an integer value.
func (env *Environment) SetNumber(name string, v int64) {
	env.Set(name, &NumberBinding{Value: v})
}

// Number returns the integer bound to name. ok is false when name is
// unbound or bound to a function.
func (env *Environment) Number(name string) (v int64, ok bool) {
	if nb, isNum := env.elems[name].(*NumberBinding); isNum {
		return nb.Value, true
	}
	return 0, false
}

// Func returns the function bound to name, if any.
func (env *Environment) Func(name string) (*FuncBinding, bool) {
	fb, ok := env.elems[name].(*FuncBinding)
	return fb, ok
}

// Len returns the number of bindings.
func (env *Environment) Len() int {
	return len(env.elems)
}

// Names returns the bound names, sorted alphabetically.
func (env *Environment) Names() []string {
	return slices.Sorted(maps.Keys(env.elems))
}

// Numbers returns a copy of every number binding.
func (env *Environment) Numbers() map[string]int64 {
	m := make(map[string]int64)
	for name, b := range env.elems {
		if nb, ok := b.(*NumberBinding); ok {
			m[name] = nb.Value
		}
	}
	return m
}

// Funcs returns every function binding, sorted by name.
func (env *Environment) Funcs() []*FuncBinding {
	var fns []*FuncBinding
	for _, name := range env.Names() {
		if fb, ok := env.elems[name].(*FuncBinding); ok {
			fns = append(fns, fb)
		}
	}
	return fns
}

// Clone returns an independent copy of env. Writes to either copy are
// invisible to the other. Bindings themselves are never mutated after
// creation, so they are shared.
func (env *Environment) Clone() *Environment {
	return &Environment{elems: maps.Clone(env.elems)}
}

// String returns a sorted "name = value" listing for debugging.
func (env *Environment) String() string {
	var buf strings.Builder
	for _, name := range env.Names() {
		fmt.Fprintf(&buf, "%s = %s\n", name, env.elems[name])
	}
	return buf.String()
}
