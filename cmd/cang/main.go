// Package main implements the cang interpreter entry point.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/you-not-fish/cang/internal/config"
	"github.com/you-not-fish/cang/internal/cost"
	"github.com/you-not-fish/cang/internal/session"
	"github.com/you-not-fish/cang/internal/syntax"
)

// Interpreter flags
var (
	configFile  = flag.String("config", "", "Session config file (YAML)")
	emitTokens  = flag.Bool("emit-tokens", false, "Output token stream")
	emitAST     = flag.Bool("emit-ast", false, "Output AST")
	astFormat   = flag.String("ast-format", "text", "AST output format (text or json)")
	emitCosts   = flag.Bool("emit-costs", false, "Output coin costs without running")
	blockBodies = flag.Bool("block-bodies", false, "Allow statement lists in function bodies")
	noQuests    = flag.Bool("no-quests", false, "Disable quests in the REPL")
	trace       = flag.Bool("trace", false, "Output timing trace")
	version     = flag.Bool("version", false, "Print version")
)

// Version information
const Version = "0.1.0-dev"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "cang %s\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: cang [options] [file.cang]\n\n")
		fmt.Fprintf(os.Stderr, "Without a file, cang starts an interactive session.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("cang version %s\n", Version)
		fmt.Printf("go version %s\n", runtime.Version())
		os.Exit(0)
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *blockBodies {
		cfg.Parser.BlockBodies = true
	}
	if *noQuests {
		cfg.Quests.Starter = false
		cfg.Quests.Extra = nil
	}

	args := flag.Args()
	if len(args) == 0 {
		if *emitTokens || *emitAST || *emitCosts {
			fmt.Fprintln(os.Stderr, "error: no input file")
			fmt.Fprintln(os.Stderr, "usage: cang [options] <file.cang>")
			os.Exit(1)
		}
		os.Exit(runREPL(cfg))
	}

	filename := args[0]

	// Handle -emit-tokens
	if *emitTokens {
		os.Exit(runEmitTokens(filename))
	}

	// Handle -emit-ast
	if *emitAST {
		os.Exit(runEmitAST(cfg, filename))
	}

	// Handle -emit-costs
	if *emitCosts {
		os.Exit(runEmitCosts(cfg, filename))
	}

	os.Exit(runFile(cfg, filename))
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func newSession(cfg *config.Config) *session.Session {
	opts := session.Options{
		Console:  os.Stdout,
		Mode:     cfg.Mode(),
		MaxDepth: cfg.Eval.MaxDepth,
	}
	if *trace {
		opts.Trace = os.Stderr
	}
	return session.New(cfg.Purse(), opts)
}

// runFile executes a program file and prints its value.
func runFile(cfg *config.Config, filename string) int {
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	s := newSession(cfg)
	res, err := s.ExecuteFile(filename, src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	fmt.Printf("Result: %d\n", res.Value)
	return 0
}

// runEmitTokens scans the input file and prints all tokens with positions.
func runEmitTokens(filename string) int {
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	// Print header
	fmt.Printf("%-20s %-12s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Printf("%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))

	for _, t := range syntax.TokenizeFile(filename, src) {
		lit := ""
		if t.Tok.HasText() {
			lit = formatLiteral(t.Text)
		}
		fmt.Printf("%-20s %-12s %s\n", t.Pos, t.Tok.Kind(), lit)
	}
	return 0
}

// runEmitAST parses the input file and outputs the AST.
func runEmitAST(cfg *config.Config, filename string) int {
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	ast, err := syntax.ParseFile(filename, src, cfg.Mode())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	switch *astFormat {
	case "json":
		if err := syntax.FprintJSON(os.Stdout, ast); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	default:
		syntax.Fprint(os.Stdout, ast)
	}
	return 0
}

// runEmitCosts prints the cost list of a program and its per-category totals.
func runEmitCosts(cfg *config.Config, filename string) int {
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	ast, err := syntax.ParseFile(filename, src, cfg.Mode())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	costs := cost.Calculate(ast)
	fmt.Println("=== Coin Costs ===")
	for i, c := range costs {
		fmt.Printf("%3d  %s\n", i, c)
	}
	fmt.Printf("total: %s\n", cost.Format(cost.Merge(costs)))

	purse := cfg.Purse()
	if err := cost.NewValidator(purse).Check(costs); err != nil {
		fmt.Printf("validation: %v\n", err)
	} else {
		fmt.Printf("validation: ok (%s)\n", purse)
	}
	return 0
}

// formatLiteral quotes a token text with escapes visible.
func formatLiteral(lit string) string {
	var b strings.Builder
	b.WriteRune('"')
	for _, r := range lit {
		switch r {
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		case '\r':
			b.WriteString("\\r")
		case '\\':
			b.WriteString("\\\\")
		case '"':
			b.WriteString("\\\"")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune('"')
	return b.String()
}
