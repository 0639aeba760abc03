package syntax

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ----------------------------------------------------------------------------
// Test helpers

func mustParse(t *testing.T, src string) Expr {
	t.Helper()
	e, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return e
}

func parseErr(t *testing.T, src string) *ParseError {
	t.Helper()
	e, err := Parse(src)
	if err == nil {
		t.Fatalf("Parse(%q) = %s, want error", src, ExprString(e))
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Parse(%q) error %T is not *ParseError", src, err)
	}
	return perr
}

// ----------------------------------------------------------------------------
// Expressions

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"2 + 3 * 4", "2 + 3 * 4"},
		{"(2 + 3) * 4", "(2 + 3) * 4"},
		{"1 - 2 - 3", "1 - 2 - 3"},
		{"1 - (2 - 3)", "1 - (2 - 3)"},
		{"8 / 4 / 2", "8 / 4 / 2"},
		{"8 / (4 / 2)", "8 / (4 / 2)"},
		{"1 + 2 * 3 - 4 / 5", "1 + 2 * 3 - 4 / 5"},
		{"((7))", "7"},
		{"a * (b + c)", "a * (b + c)"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := ExprString(mustParse(t, tt.src)); got != tt.want {
				t.Errorf("ExprString = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLeftAssociative(t *testing.T) {
	e := mustParse(t, "1 - 2 - 3")
	b, ok := e.(*Binary)
	if !ok || b.Op != Sub {
		t.Fatalf("root = %s, want Binary -", KindOf(e))
	}
	if _, ok := b.X.(*Binary); !ok {
		t.Errorf("left operand = %s, want Binary", KindOf(b.X))
	}
	if n, ok := b.Y.(*Number); !ok || n.Value != 3 {
		t.Errorf("right operand = %s, want Number 3", ExprString(b.Y))
	}
}

func TestParseFactors(t *testing.T) {
	tests := []struct {
		src  string
		kind string
		want string
	}{
		{"42", "Number", "42"},
		{`"hi there"`, "String", `"hi there"`},
		{"x", "Var", "x"},
		{"f()", "FnCall", "f()"},
		{"f(1)", "FnCall", "f(1)"},
		{"add(1, 2 * 3, g(x))", "FnCall", "add(1, 2 * 3, g(x))"},
		{"9223372036854775807", "Number", "9223372036854775807"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e := mustParse(t, tt.src)
			if got := KindOf(e); got != tt.kind {
				t.Errorf("KindOf = %q, want %q", got, tt.kind)
			}
			if got := ExprString(e); got != tt.want {
				t.Errorf("ExprString = %q, want %q", got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Statements

func TestParseStatements(t *testing.T) {
	tests := []struct {
		src  string
		kind string
		want string
	}{
		{"let x = 5", "Let", "let x = 5"},
		{"let y = x * (2 + 1)", "Let", "let y = x * (2 + 1)"},
		{"fn f() { 1 }", "FnDef", "fn f() { 1 }"},
		{"fn add(a,b){a+b}", "FnDef", "fn add(a, b) { a + b }"},
		{`print("Hello World")`, "Print", `print("Hello World")`},
		{"print(1 + 2)", "Print", "print(1 + 2)"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e := mustParse(t, tt.src)
			if got := KindOf(e); got != tt.kind {
				t.Errorf("KindOf = %q, want %q", got, tt.kind)
			}
			if got := ExprString(e); got != tt.want {
				t.Errorf("ExprString = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseFnDefFields(t *testing.T) {
	e := mustParse(t, "fn add(a, b) { a + b }")
	fn, ok := e.(*FnDef)
	if !ok {
		t.Fatalf("got %s, want FnDef", KindOf(e))
	}
	if fn.Name != "add" {
		t.Errorf("Name = %q, want add", fn.Name)
	}
	if diff := cmp.Diff([]string{"a", "b"}, fn.Params); diff != "" {
		t.Errorf("Params mismatch (-want +got):\n%s", diff)
	}
	if KindOf(fn.Body) != "Binary" {
		t.Errorf("Body = %s, want Binary", KindOf(fn.Body))
	}
}

// ----------------------------------------------------------------------------
// Programs

func TestParseProgram(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		kind  string
		stmts []string
	}{
		{"single", "let x = 1", "Let", []string{"let x = 1"}},
		{"two", "let x = 1; x + 1", "Block", []string{"let x = 1", "x + 1"}},
		{"three", "fn f(a){a}; let y = f(2); print(y)", "Block", []string{"fn f(a) { a }", "let y = f(2)", "print(y)"}},
		{"missing_semi_drops_rest", "1 2", "Number", []string{"1"}},
		{"missing_semi_after_two", "1; 2 3; 4", "Block", []string{"1", "2"}},
		{"trailing_garbage", "let x = 1 )))", "Let", []string{"let x = 1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := mustParse(t, tt.src)
			if got := KindOf(e); got != tt.kind {
				t.Fatalf("KindOf = %q, want %q", got, tt.kind)
			}
			var got []string
			if b, ok := e.(*Block); ok {
				for _, s := range b.Stmts {
					got = append(got, ExprString(s))
				}
			} else {
				got = []string{ExprString(e)}
			}
			if diff := cmp.Diff(tt.stmts, got); diff != "" {
				t.Errorf("statements mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseFunctionBodyModes(t *testing.T) {
	src := "fn f(a) { let b = a + 1; b }"

	// base grammar: the body is a single expression
	perr := parseErr(t, src)
	if perr.Kind != UnexpectedToken || !strings.Contains(perr.Msg, "Let") {
		t.Errorf("base grammar error = %v, want unexpected Let", perr)
	}

	e, err := ParseFile("", []byte(src), BlockBodies)
	if err != nil {
		t.Fatalf("BlockBodies: %v", err)
	}
	fn, ok := e.(*FnDef)
	if !ok {
		t.Fatalf("got %s, want FnDef", KindOf(e))
	}
	body, ok := fn.Body.(*Block)
	if !ok {
		t.Fatalf("body = %s, want Block", KindOf(fn.Body))
	}
	if got := ExprString(body); got != "let b = a + 1; b" {
		t.Errorf("body = %q", got)
	}

	// a single statement body stays unwrapped
	e, err = ParseFile("", []byte("fn g() { 1 }"), BlockBodies)
	if err != nil {
		t.Fatal(err)
	}
	if KindOf(e.(*FnDef).Body) != "Number" {
		t.Errorf("single statement body = %s, want Number", KindOf(e.(*FnDef).Body))
	}
}

func TestParseStatementIgnoresRest(t *testing.T) {
	e, err := ParseStatement(Tokenize("let x = 1; let y = 2"))
	if err != nil {
		t.Fatal(err)
	}
	if got := ExprString(e); got != "let x = 1" {
		t.Errorf("ParseStatement = %q, want %q", got, "let x = 1")
	}
}

// ----------------------------------------------------------------------------
// Errors

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src  string
		kind ErrorKind
		msg  string
	}{
		{"", UnexpectedEOF, "unexpected end of input"},
		{"+", UnexpectedToken, "unexpected token Plus"},
		{")", UnexpectedToken, "unexpected token RParen"},
		{"1 +", UnexpectedEOF, "expected expression"},
		{"(1", UnexpectedEOF, "')'"},
		{"(1 2", ExpectedToken, "found Number"},
		{"1;", UnexpectedEOF, "unexpected end of input"},
		{"let = 5", ExpectedToken, "identifier after 'let'"},
		{"let x 5", ExpectedToken, "'='"},
		{"let", UnexpectedEOF, "identifier"},
		{"fn (a) { a }", ExpectedToken, "identifier after 'fn'"},
		{"fn f a { a }", ExpectedToken, "'(' after function name"},
		{"fn f(a b) { a }", ExpectedToken, "',' or ')' in parameter list"},
		{"fn f(1) { 1 }", ExpectedToken, "identifier in parameter list"},
		{"fn f(a) a", ExpectedToken, "'{' before function body"},
		{"fn f(a) { a; a }", ExpectedToken, "'}' after function body"},
		{"fn f(a) { a", UnexpectedEOF, "'}'"},
		{"f(1 2)", ExpectedToken, "',' or ')' in argument list"},
		{"f(1,)", UnexpectedToken, "RParen"},
		{"f(1", UnexpectedEOF, "argument list"},
		{"print 1", ExpectedToken, "'(' after 'print'"},
		{"print(1", UnexpectedEOF, "')'"},
		{"99999999999999999999", UnexpectedToken, "out of range"},
		{"let x = let y = 1", UnexpectedToken, "Let"},
		{"fn g(a) { let b = a + 1 }", UnexpectedToken, "Let"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			perr := parseErr(t, tt.src)
			if perr.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v (%v)", perr.Kind, tt.kind, perr)
			}
			if !strings.Contains(perr.Error(), tt.msg) {
				t.Errorf("error %q does not contain %q", perr.Error(), tt.msg)
			}
		})
	}
}

func TestParseErrorPositions(t *testing.T) {
	perr := parseErr(t, "let x = 1 +\n  * 2")
	if perr.Pos.Line() != 2 || perr.Pos.Col() != 3 {
		t.Errorf("error at %v, want 2:3", perr.Pos)
	}
	if !strings.HasPrefix(perr.Error(), "2:3: ") {
		t.Errorf("Error() = %q, want prefix 2:3:", perr.Error())
	}

	// empty input has no token to point at
	perr = parseErr(t, "")
	if perr.Pos.IsValid() {
		t.Errorf("empty input error has position %v", perr.Pos)
	}
}

func TestErrorKindString(t *testing.T) {
	if UnexpectedEOF.String() != "UnexpectedEof" {
		t.Errorf("UnexpectedEOF.String() = %q", UnexpectedEOF.String())
	}
	if got := ErrorKind(9).String(); got != "ErrorKind(9)" {
		t.Errorf("unknown kind = %q", got)
	}
}

func TestParseNestingLimit(t *testing.T) {
	src := strings.Repeat("(", maxNesting+1) + "1" + strings.Repeat(")", maxNesting+1)
	perr := parseErr(t, src)
	if !strings.Contains(perr.Msg, "nested too deeply") {
		t.Errorf("error = %v, want nesting limit", perr)
	}
}

// ----------------------------------------------------------------------------
// Positions

func TestParseNodePositions(t *testing.T) {
	e := mustParse(t, "let x = 1;\nfn f(a) { a * 2 };\nprint(f(x))")
	b, ok := e.(*Block)
	if !ok {
		t.Fatalf("got %s, want Block", KindOf(e))
	}
	want := []string{"1:3", "2:2", "3:5"}
	var got []string
	for _, s := range b.Stmts {
		got = append(got, s.Pos().String())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
	if b.Pos() != b.Stmts[0].Pos() {
		t.Errorf("Block pos = %v, want first statement's", b.Pos())
	}
}

// ----------------------------------------------------------------------------
// Printers

func TestParseGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/parse_*.cang")
	if err != nil {
		t.Fatal(err)
	}

	for _, f := range files {
		t.Run(filepath.Base(f), func(t *testing.T) {
			src, err := os.ReadFile(f)
			if err != nil {
				t.Fatal(err)
			}

			e, err := ParseFile(filepath.Base(f), src, BlockBodies)
			if err != nil {
				t.Fatal(err)
			}

			var buf bytes.Buffer
			Fprint(&buf, e)
			got := buf.String()

			golden := strings.TrimSuffix(f, ".cang") + ".ast.golden"

			if os.Getenv("UPDATE_GOLDEN") != "" {
				if err := os.WriteFile(golden, []byte(got), 0644); err != nil {
					t.Fatal(err)
				}
				return
			}

			want, err := os.ReadFile(golden)
			if err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(string(want), got); diff != "" {
				t.Errorf("AST mismatch for %s (-want +got):\n%s\nRun with UPDATE_GOLDEN=1 to update", f, diff)
			}
		})
	}
}

func TestFprintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := FprintJSON(&buf, mustParse(t, "fn f() { 1 }; f()")); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`"type": "Block"`, `"type": "FnDef"`, `"params": []`, `"type": "FnCall"`, `"args": []`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON missing %s:\n%s", want, out)
		}
	}
}

// ----------------------------------------------------------------------------
// Walk tests

func TestWalk(t *testing.T) {
	e := mustParse(t, "fn f(a) { a + 1 }; let x = f(2) * 3; print(x)")

	kinds := map[string]int{}
	Walk(e, func(n Expr) bool {
		kinds[KindOf(n)]++
		return true
	})

	want := map[string]int{
		"Block": 1, "FnDef": 1, "Binary": 2, "Var": 2, "Number": 3,
		"Let": 1, "FnCall": 1, "Print": 1,
	}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("node counts mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	e := mustParse(t, "fn f(a) { a + 1 }")
	var visited int
	Walk(e, func(n Expr) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Errorf("visited %d nodes, want 1", visited)
	}
}

func TestExprSummary(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"x", "x"},
		{"1 + 2", "1 + 2"},
		{"1 + 2 * 3", "1 + ..."},
		{"1 + 1 + 1 + 1", "... + 1"},
		{"(1 + 2) * 3", "... * 3"},
		{"let x = 5", "let x = 5"},
		{"let x = f(1)", "let x = ..."},
		{"f(a, 2, g(3))", "f(a, 2, ...)"},
		{"fn add(a, b) { a + b }", "fn add(a, b) { ... }"},
		{"fn one() { 1 }", "fn one() { 1 }"},
		{`print("hi")`, `print("hi")`},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := ExprSummary(mustParse(t, tt.src)); got != tt.want {
				t.Errorf("ExprSummary = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExprSummaryIsShallow(t *testing.T) {
	src := strings.Repeat("1 + ", 5000) + "1"
	if got := ExprSummary(mustParse(t, src)); got != "... + 1" {
		t.Errorf("ExprSummary = %q, want %q", got, "... + 1")
	}
}

// ----------------------------------------------------------------------------
// Fuzz test

func FuzzParse(f *testing.F) {
	seeds := []string{
		"2 + 3 * 4",
		"let x = 5; x + 1",
		"fn f(a) { a + 1 }; f(10)",
		`print("hi")`,
		"fn add(a,b){a+b}; add(1)",
		"((((1))))",
		"f(1,2,3",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		// Syntax errors are acceptable, but the parser should not panic
		e, err := Parse(src)
		if err == nil && e == nil {
			t.Errorf("Parse(%q) returned nil without error", src)
		}
	})
}
