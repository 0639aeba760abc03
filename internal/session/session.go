// Package session runs cang programs against persistent state.
//
// A Session owns one Environment and one Ledger. Execute applies the
// validate → spend → evaluate protocol to a parsed program:
//
//  1. Validate checks every cost entry on its own against the current
//     balances. Nothing is spent if any entry fails.
//  2. Each entry is spent in order, one coin at a time. A failed spend
//     aborts execution; coins already spent stay spent.
//  3. The program is evaluated. A runtime error leaves bindings made before
//     the failure and the coins spent in step 2 in place.
//
// Every error returned by Execute and ExecuteSource is a *cost.ValidationError.
package session

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/you-not-fish/cang/internal/coins"
	"github.com/you-not-fish/cang/internal/cost"
	"github.com/you-not-fish/cang/internal/eval"
	"github.com/you-not-fish/cang/internal/syntax"
)

// Options configures a Session.
type Options struct {
	// Console receives printed lines. May be nil.
	Console io.Writer

	// Trace, if set, receives one line per pipeline phase with its duration.
	Trace io.Writer

	// Mode selects parser extensions for ExecuteSource.
	Mode syntax.Mode

	// MaxDepth limits nested calls; 0 means eval.DefaultMaxDepth.
	MaxDepth int
}

// Result is the outcome of one execution.
type Result struct {
	Value  int64
	Output []string        // lines printed by this execution
	Costs  []cost.CoinCost // costs charged, in traversal order
}

// Record describes one successful execution.
type Record struct {
	Source string   // source text; empty for Execute
	Kind   string   // variant of the top-level node
	Nodes  []string // distinct executed nodes as "Kind: summary", in order of first evaluation
	Value  int64
}

// Session holds the state that outlives a single execution.
// It is not safe for concurrent use.
type Session struct {
	Env    *eval.Environment
	Ledger coins.Ledger

	opts      Options
	ev        *eval.Evaluator
	validator *cost.Validator

	output   []string
	history  []Record
	executed []string            // distinct node descriptions over all records
	seen     map[string]struct{} // members of executed

	// node log of the running execution
	visited   map[syntax.Expr]struct{}
	descs     []string
	descsSeen map[string]struct{}
}

// New returns a session with an empty environment, charging l.
func New(l coins.Ledger, opts Options) *Session {
	s := &Session{
		Env:       eval.NewEnvironment(),
		Ledger:    l,
		opts:      opts,
		ev:        eval.New(opts.Console),
		validator: cost.NewValidator(l),
		seen:      make(map[string]struct{}),
	}
	s.ev.MaxDepth = opts.MaxDepth
	s.ev.Visit = s.visit
	return s
}

// Parse tokenizes and parses src using the session's mode. A parse
// failure is returned as a Parse *cost.ValidationError.
func (s *Session) Parse(filename string, src []byte) (syntax.Expr, error) {
	defer s.trace("parse", time.Now())
	e, err := syntax.ParseFile(filename, src, s.opts.Mode)
	if err != nil {
		return nil, &cost.ValidationError{Kind: cost.Parse, Err: err}
	}
	return e, nil
}

// ExecuteSource parses and executes src.
func (s *Session) ExecuteSource(src string) (Result, error) {
	return s.ExecuteFile("", []byte(src))
}

// ExecuteFile parses and executes the contents of a named file.
func (s *Session) ExecuteFile(filename string, src []byte) (Result, error) {
	e, err := s.Parse(filename, src)
	if err != nil {
		return Result{}, err
	}
	res, err := s.Execute(e)
	if err == nil {
		s.history[len(s.history)-1].Source = string(src)
	}
	return res, err
}

// Execute validates, pays for and evaluates e.
func (s *Session) Execute(e syntax.Expr) (Result, error) {
	costs, err := s.validate(e)
	if err != nil {
		return Result{}, err
	}
	res := Result{Costs: costs}

	if err := s.spend(costs); err != nil {
		return res, err
	}

	start := time.Now()
	s.visited = make(map[syntax.Expr]struct{})
	s.descs = nil
	s.descsSeen = make(map[string]struct{})
	s.ev.ResetOutput()
	v, err := s.ev.Eval(e, s.Env)
	res.Output = slices.Clone(s.ev.Output())
	s.output = append(s.output, res.Output...)
	s.trace("eval", start)
	if err != nil {
		return res, &cost.ValidationError{Kind: cost.Runtime, Err: err}
	}
	res.Value = v

	s.history = append(s.history, Record{
		Kind:  syntax.KindOf(e),
		Nodes: s.descs,
		Value: v,
	})
	for _, d := range s.descs {
		if _, ok := s.seen[d]; !ok {
			s.seen[d] = struct{}{}
			s.executed = append(s.executed, d)
		}
	}
	s.visited, s.descs, s.descsSeen = nil, nil, nil
	return res, nil
}

func (s *Session) validate(e syntax.Expr) ([]cost.CoinCost, error) {
	defer s.trace("validate", time.Now())
	return s.validator.Validate(e)
}

// spend debits each entry in order, one coin at a time.
func (s *Session) spend(costs []cost.CoinCost) error {
	defer s.trace("spend", time.Now())
	for _, c := range costs {
		for i := uint32(0); i < c.Amount; i++ {
			if err := s.Ledger.Spend(c.Category, 1); err != nil {
				return &cost.ValidationError{Kind: cost.Coin, Err: err}
			}
		}
	}
	return nil
}

// Costs parses src and returns its cost list without checking or
// charging anything.
func (s *Session) Costs(src string) ([]cost.CoinCost, error) {
	e, err := s.Parse("", []byte(src))
	if err != nil {
		return nil, err
	}
	return cost.Calculate(e), nil
}

// Mode returns the parser mode used by ExecuteSource.
func (s *Session) Mode() syntax.Mode {
	return s.opts.Mode
}

// Output returns every line printed during the session.
func (s *Session) Output() []string {
	return s.output
}

// History returns the successful executions, oldest first.
func (s *Session) History() []Record {
	return s.history
}

// Executed returns the distinct node descriptions of every successful
// execution, in order of first evaluation. Nodes of function bodies are
// included once a call has run them.
func (s *Session) Executed() []string {
	return s.executed
}

func (s *Session) trace(phase string, start time.Time) {
	if s.opts.Trace != nil {
		fmt.Fprintf(s.opts.Trace, "[trace] %-8s %v\n", phase, time.Since(start))
	}
}

// visit records the description of a node the evaluator is about to run.
// Each node is described once per execution, and only the first of equal
// descriptions is kept. Blocks are not recorded.
func (s *Session) visit(n syntax.Expr) {
	if _, isBlock := n.(*syntax.Block); isBlock {
		return
	}
	if _, ok := s.visited[n]; ok {
		return
	}
	s.visited[n] = struct{}{}
	d := syntax.KindOf(n) + ": " + syntax.ExprSummary(n)
	if _, ok := s.descsSeen[d]; !ok {
		s.descsSeen[d] = struct{}{}
		s.descs = append(s.descs, d)
	}
}
