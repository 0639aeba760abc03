// Package coins implements the resource ledger that gates coin-consuming
// statements. A ledger holds one non-negative balance per Category.
package coins

import (
	"errors"
	"fmt"
	"strings"
)

// Category identifies a kind of coin.
type Category uint8

const (
	Variable Category = iota // spent by let
	Function                 // spent by fn

	numCategories
)

var categoryNames = [...]string{
	Variable: "Variable",
	Function: "Function",
}

// String returns the category name.
func (c Category) String() string {
	if c < numCategories {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", c)
}

// Categories returns every category in declaration order.
func Categories() []Category {
	return []Category{Variable, Function}
}

// ParseCategory maps a case-insensitive name ("variable", "Function") to a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown coin category %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if c >= numCategories {
		return nil, fmt.Errorf("invalid coin category %d", c)
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	v, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ErrInsufficientFunds is matched by every *InsufficientFundsError.
var ErrInsufficientFunds = errors.New("insufficient funds")

// InsufficientFundsError reports a balance too small for a request.
type InsufficientFundsError struct {
	Required  uint32
	Available uint32
	Category  Category
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient %s coins (need %d, have %d)", e.Category, e.Required, e.Available)
}

// Is lets errors.Is(err, ErrInsufficientFunds) match.
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// Reward is an amount of coins granted to a ledger.
type Reward struct {
	Category Category `yaml:"category"`
	Amount   uint32   `yaml:"amount"`
}

func (r Reward) String() string {
	return fmt.Sprintf("+%d %s", r.Amount, r.Category)
}

// Ledger is the balance store consumed by validation and spending.
type Ledger interface {
	// Balance returns the current balance for c.
	Balance(c Category) uint32
	// Spend debits amount from c, or fails without change when the
	// balance is smaller than amount.
	Spend(c Category, amount uint32) error
	// Add credits amount to c.
	Add(c Category, amount uint32)
}
