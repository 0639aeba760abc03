package cost

import (
	"github.com/you-not-fish/cang/internal/coins"
	"github.com/you-not-fish/cang/internal/syntax"
)

// Validator checks costs against the balances of a ledger.
type Validator struct {
	Ledger coins.Ledger
}

// NewValidator returns a Validator reading from l.
func NewValidator(l coins.Ledger) *Validator {
	return &Validator{Ledger: l}
}

// Validate computes the costs of e and checks each entry on its own
// against the current balance of its category. Balances are not
// decremented between checks, so entries of the same category never
// accumulate. The ledger is only read.
//
// The first entry whose amount exceeds its balance fails with a Coin
// *ValidationError wrapping *coins.InsufficientFundsError.
func (v *Validator) Validate(e syntax.Expr) ([]CoinCost, error) {
	costs := Calculate(e)
	if err := v.Check(costs); err != nil {
		return nil, err
	}
	return costs, nil
}

// Check validates an already computed cost list.
func (v *Validator) Check(costs []CoinCost) error {
	for _, c := range costs {
		if have := v.Ledger.Balance(c.Category); c.Amount > have {
			return &ValidationError{
				Kind: Coin,
				Err: &coins.InsufficientFundsError{
					Required:  c.Amount,
					Available: have,
					Category:  c.Category,
				},
			}
		}
	}
	return nil
}
