package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/you-not-fish/cang/internal/coins"
	"github.com/you-not-fish/cang/internal/config"
	"github.com/you-not-fish/cang/internal/cost"
	"github.com/you-not-fish/cang/internal/quest"
	"github.com/you-not-fish/cang/internal/session"
	"github.com/you-not-fish/cang/internal/syntax"
)

const (
	banner     = "cang " + Version + ": type 'help' for commands, 'quit' to exit."
	promptCont = "  ...> "
)

// lineReader is the part of *liner.State the REPL uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// repl holds one interactive session.
type repl struct {
	sess   *session.Session
	purse  *coins.Purse
	quests *quest.Manager // nil when quests are disabled
	prompt string
	out    io.Writer
}

func newREPL(cfg *config.Config, out io.Writer) (*repl, error) {
	purse := cfg.Purse()
	opts := session.Options{
		Console:  out,
		Mode:     cfg.Mode(),
		MaxDepth: cfg.Eval.MaxDepth,
	}
	if *trace {
		opts.Trace = os.Stderr
	}
	r := &repl{
		sess:   session.New(purse, opts),
		purse:  purse,
		prompt: cfg.REPL.Prompt,
		out:    out,
	}
	if cfg.Quests.Starter || len(cfg.Quests.Extra) > 0 {
		m, err := cfg.QuestManager()
		if err != nil {
			return nil, err
		}
		r.quests = m
	}
	return r, nil
}

// runREPL starts an interactive session on the terminal.
func runREPL(cfg *config.Config) int {
	r, err := newREPL(cfg, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	fmt.Println(banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := cfg.HistoryPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	r.loop(ln)
	return 0
}

// loop reads and handles lines until EOF or a quit command.
func (r *repl) loop(in lineReader) {
	for {
		src, ok := r.read(in)
		if !ok {
			fmt.Fprintln(r.out)
			return
		}
		line := strings.TrimSpace(src)
		if line == "" {
			continue
		}
		in.AppendHistory(strings.ReplaceAll(line, "\n", " "))
		if r.handle(line) {
			return
		}
	}
}

// read collects one input. Lines are joined while the input so far ends
// in the middle of a construct, so a function can span several lines.
func (r *repl) read(in lineReader) (string, bool) {
	var b strings.Builder
	for {
		prompt := r.prompt
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := in.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// liner.ErrPromptAborted: drop the partial input
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if isCommand(strings.TrimSpace(src)) || strings.TrimSpace(src) == "" {
			return src, true
		}
		_, perr := syntax.ParseFile("", []byte(src), r.sess.Mode())
		var pe *syntax.ParseError
		if errors.As(perr, &pe) && pe.Kind == syntax.UnexpectedEOF && line != "" {
			continue
		}
		return src, true
	}
}

var commands = []struct{ name, help string }{
	{"help", "Show this help message"},
	{"status", "Show coin balances and quest progress"},
	{"balance", "Show coin balances (also: coins)"},
	{"quests", "List available, locked and completed quests"},
	{"vars", "List variables and functions"},
	{"cost", "cost <code>: show what code would cost without running it"},
	{"quit", "Exit the REPL (also: exit)"},
}

// isCommand reports whether line is a REPL command rather than code.
// "cost" followed by an operator, '(' or ';' is code using a binding
// named cost.
func isCommand(line string) bool {
	word, rest, _ := strings.Cut(line, " ")
	switch word {
	case "help", "status", "balance", "coins", "quests", "vars", "quit", "exit":
		return !strings.Contains(line, " ")
	case "cost":
		rest = strings.TrimSpace(rest)
		return rest == "" || !strings.ContainsAny(rest[:1], "+-*/(;")
	}
	return false
}

// handle runs a command or executes code. It reports whether to exit.
func (r *repl) handle(line string) bool {
	if !isCommand(line) {
		r.execute(line)
		return false
	}
	word, arg, _ := strings.Cut(line, " ")
	switch word {
	case "quit", "exit":
		fmt.Fprintln(r.out, "Goodbye!")
		return true
	case "help":
		r.showHelp()
	case "status":
		r.showStatus()
	case "balance", "coins":
		r.showBalance()
	case "quests":
		r.showQuests()
	case "vars":
		r.showVars()
	case "cost":
		r.showCost(strings.TrimSpace(arg))
	}
	return false
}

func (r *repl) execute(src string) {
	before := r.purse.String()
	res, err := r.sess.ExecuteSource(src)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		r.showBalance()
		return
	}
	fmt.Fprintf(r.out, "Result: %d\n", res.Value)
	if len(res.Costs) > 0 {
		fmt.Fprintf(r.out, "Spent: %s\n", cost.Format(cost.Merge(res.Costs)))
		fmt.Fprintf(r.out, "Coins: %s -> %s\n", before, r.purse)
	}
	r.checkQuests()
}

func (r *repl) checkQuests() {
	if r.quests == nil {
		return
	}
	done := make(map[string]bool)
	for _, q := range r.quests.Completed() {
		done[q.ID] = true
	}
	rewards := r.quests.Check(r.questContext())
	for _, q := range r.quests.Completed() {
		if !done[q.ID] {
			fmt.Fprintf(r.out, "Quest complete: %s\n", q.Heading())
		}
	}
	if len(rewards) > 0 {
		r.purse.ApplyRewards(rewards)
		parts := make([]string, len(rewards))
		for i, rw := range rewards {
			parts[i] = rw.String()
		}
		fmt.Fprintf(r.out, "Rewards: %s\n", strings.Join(parts, ", "))
	}
}

func (r *repl) questContext() *quest.Context {
	return quest.NewContext(r.sess.Env, r.sess.Output(), r.sess.Executed())
}

func (r *repl) showHelp() {
	fmt.Fprintln(r.out, "Available commands:")
	for _, c := range commands {
		fmt.Fprintf(r.out, "  %-8s - %s\n", c.name, c.help)
	}
	fmt.Fprintln(r.out, "Anything else is run as code:")
	fmt.Fprintln(r.out, "  1 + 2 * 3")
	fmt.Fprintln(r.out, "  let x = 10 + 5")
	fmt.Fprintln(r.out, "  fn add(a, b) { a + b }")
	fmt.Fprintln(r.out, "  print(add(x, 1))")
	fmt.Fprintln(r.out, "let costs 1 Variable coin, fn costs 1 Function coin.")
}

func (r *repl) showBalance() {
	fmt.Fprintln(r.out, "Coin Balances:")
	for _, c := range coins.Categories() {
		fmt.Fprintf(r.out, "  %s coins: %d\n", c, r.purse.Balance(c))
	}
}

func (r *repl) showStatus() {
	fmt.Fprintln(r.out, "=== cang status ===")
	r.showBalance()
	if r.quests != nil {
		fmt.Fprintf(r.out, "Quests: %d/%d completed\n", len(r.quests.Completed()), r.quests.Len())
	}
	fmt.Fprintf(r.out, "Bindings: %d, executions: %d\n", r.sess.Env.Len(), len(r.sess.History()))
}

func (r *repl) showQuests() {
	if r.quests == nil {
		fmt.Fprintln(r.out, "Quests are disabled.")
		return
	}
	ctx := r.questContext()
	fmt.Fprintln(r.out, "Available:")
	for _, q := range r.quests.Available() {
		p, _ := r.quests.Progress(q.ID, ctx)
		fmt.Fprintf(r.out, "  %s (%d/%d)\n", q.Heading(), p.Done(), len(p.Met))
		fmt.Fprintf(r.out, "    %s\n", q.Description)
		for i, o := range q.Objectives {
			mark := " "
			if p.Met[i] {
				mark = "x"
			}
			fmt.Fprintf(r.out, "    [%s] %s\n", mark, o)
		}
	}
	if locked := r.quests.Locked(); len(locked) > 0 {
		fmt.Fprintln(r.out, "Locked:")
		for _, q := range locked {
			fmt.Fprintf(r.out, "  %s (needs %s)\n", q.Heading(), strings.Join(q.Prerequisites, ", "))
		}
	}
	if done := r.quests.Completed(); len(done) > 0 {
		fmt.Fprintln(r.out, "Completed:")
		for _, q := range done {
			fmt.Fprintf(r.out, "  %s\n", q.Heading())
		}
	}
}

func (r *repl) showVars() {
	env := r.sess.Env
	if env.Len() == 0 {
		fmt.Fprintln(r.out, "No bindings.")
		return
	}
	fmt.Fprint(r.out, env)
}

func (r *repl) showCost(src string) {
	if src == "" {
		fmt.Fprintln(r.out, "usage: cost <code>")
		return
	}
	costs, err := r.sess.Costs(src)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "Cost: %s\n", cost.Format(cost.Merge(costs)))
	if err := cost.NewValidator(r.purse).Check(costs); err != nil {
		fmt.Fprintf(r.out, "Cannot afford: %v\n", err)
	}
}
