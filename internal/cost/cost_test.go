package cost

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/you-not-fish/cang/internal/coins"
	"github.com/you-not-fish/cang/internal/syntax"
)

var (
	v1 = CoinCost{Category: coins.Variable, Amount: 1}
	f1 = CoinCost{Category: coins.Function, Amount: 1}
)

func mustParse(t *testing.T, src string, mode syntax.Mode) syntax.Expr {
	t.Helper()
	e, err := syntax.ParseFile("", []byte(src), mode)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return e
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		src  string
		want []CoinCost
	}{
		{"42", nil},
		{`"hi"`, nil},
		{"x", nil},
		{"1 + 2 * 3", nil},
		{"1 / 0", nil},
		{"let x = 5", []CoinCost{v1}},
		{"fn f(a) { a }", []CoinCost{f1}},
		{"f(1, 2)", nil},
		{"print(1 + x)", nil},
		{"let x = 1; let y = 2", []CoinCost{v1, v1}},
		{"fn f(a) { a }; let x = f(1)", []CoinCost{f1, v1}},
		{"let x = 1; fn f() { x }; print(f())", []CoinCost{v1, f1}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := Calculate(mustParse(t, tt.src, 0))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Calculate(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestCalculateNested(t *testing.T) {
	// Costs inside function bodies and call arguments count in traversal order.
	e := mustParse(t, "fn f(a) { let b = a; fn g() { 1 }; b }", syntax.BlockBodies)
	if diff := cmp.Diff([]CoinCost{f1, v1, f1}, Calculate(e)); diff != "" {
		t.Errorf("body costs mismatch (-want +got):\n%s", diff)
	}

	// let inside a call argument is not expressible in the grammar, so
	// build the tree by hand.
	call := syntax.NewFnCall("h", syntax.NewNumber(1), syntax.NewBlock(syntax.NewLet("z", syntax.NewNumber(2))))
	bin := syntax.NewBinary(call, syntax.Add, syntax.NewPrint(syntax.NewLet("w", syntax.NewNumber(3))))
	if diff := cmp.Diff([]CoinCost{v1, v1}, Calculate(bin)); diff != "" {
		t.Errorf("hand-built costs mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		in   []CoinCost
		want []CoinCost
	}{
		{"empty", nil, nil},
		{"single", []CoinCost{v1}, []CoinCost{v1}},
		{"same_category", []CoinCost{v1, v1, v1}, []CoinCost{{coins.Variable, 3}}},
		{"category_order", []CoinCost{f1, v1, f1}, []CoinCost{{coins.Variable, 1}, {coins.Function, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Merge(tt.in)); diff != "" {
				t.Errorf("Merge mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "free" {
		t.Errorf("Format(nil) = %q", got)
	}
	if got := Format([]CoinCost{v1, f1}); got != "Variable:1, Function:1" {
		t.Errorf("Format = %q", got)
	}
}

func TestValidateInsufficientFunds(t *testing.T) {
	purse := coins.NewPurseWith(1, 0)
	v := NewValidator(purse)

	_, err := v.Validate(mustParse(t, "fn f(a){a}", 0))
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Kind != Coin {
		t.Fatalf("err = %v, want coin ValidationError", err)
	}
	var ferr *coins.InsufficientFundsError
	if !errors.As(err, &ferr) {
		t.Fatalf("err = %v, want InsufficientFundsError", err)
	}
	want := coins.InsufficientFundsError{Required: 1, Available: 0, Category: coins.Function}
	if diff := cmp.Diff(want, *ferr); diff != "" {
		t.Errorf("error mismatch (-want +got):\n%s", diff)
	}
	if !errors.Is(err, coins.ErrInsufficientFunds) {
		t.Error("errors.Is(err, ErrInsufficientFunds) = false")
	}

	if purse.Balance(coins.Variable) != 1 || purse.Balance(coins.Function) != 0 {
		t.Errorf("ledger changed by validation: %v", purse)
	}
}

func TestValidateIsNotCumulative(t *testing.T) {
	purse := coins.NewPurseWith(1, 0)
	costs, err := NewValidator(purse).Validate(mustParse(t, "let a = 1; let b = 2", 0))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if diff := cmp.Diff([]CoinCost{v1, v1}, costs); diff != "" {
		t.Errorf("costs mismatch (-want +got):\n%s", diff)
	}
	if got := purse.Balance(coins.Variable); got != 1 {
		t.Errorf("Variable balance = %d after validation, want 1", got)
	}
}

func TestValidateFirstFailureWins(t *testing.T) {
	purse := coins.NewPurseWith(0, 0)
	_, err := NewValidator(purse).Validate(mustParse(t, "fn f() { 1 }; let x = 1", 0))
	var ferr *coins.InsufficientFundsError
	if !errors.As(err, &ferr) {
		t.Fatalf("err = %v", err)
	}
	if ferr.Category != coins.Function {
		t.Errorf("first failure category = %v, want Function", ferr.Category)
	}
}

func TestValidateFree(t *testing.T) {
	costs, err := NewValidator(coins.NewPurseWith(0, 0)).Validate(mustParse(t, "print(1 + 2)", 0))
	if err != nil || len(costs) != 0 {
		t.Errorf("Validate = %v, %v; want no costs", costs, err)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{
		Kind: Coin,
		Err:  &coins.InsufficientFundsError{Required: 1, Available: 0, Category: coins.Function},
	}
	want := "coin error: insufficient Function coins (need 1, have 0)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
