package coins

import (
	"fmt"
	"math"
	"strings"
)

// Default starting balances.
const (
	DefaultVariable = 10
	DefaultFunction = 3
)

// Purse is the in-memory Ledger owned by one session.
// It is not safe for concurrent use.
type Purse struct {
	balances [numCategories]uint32
}

// NewPurse returns a purse holding the default balances.
func NewPurse() *Purse {
	return NewPurseWith(DefaultVariable, DefaultFunction)
}

// NewPurseWith returns a purse holding the given balances.
func NewPurseWith(variable, function uint32) *Purse {
	p := &Purse{}
	p.balances[Variable] = variable
	p.balances[Function] = function
	return p
}

// Balance returns the current balance for c. Unknown categories hold 0.
func (p *Purse) Balance(c Category) uint32 {
	if c >= numCategories {
		return 0
	}
	return p.balances[c]
}

// Spend debits amount from c.
func (p *Purse) Spend(c Category, amount uint32) error {
	have := p.Balance(c)
	if have < amount || c >= numCategories {
		return &InsufficientFundsError{Required: amount, Available: have, Category: c}
	}
	p.balances[c] = have - amount
	return nil
}

// Add credits amount to c, saturating at the maximum balance.
func (p *Purse) Add(c Category, amount uint32) {
	if c >= numCategories {
		return
	}
	if math.MaxUint32-p.balances[c] < amount {
		p.balances[c] = math.MaxUint32
		return
	}
	p.balances[c] += amount
}

// ApplyRewards credits every reward in order.
func (p *Purse) ApplyRewards(rewards []Reward) {
	for _, r := range rewards {
		p.Add(r.Category, r.Amount)
	}
}

// Balances returns a snapshot of all balances keyed by category.
func (p *Purse) Balances() map[Category]uint32 {
	m := make(map[Category]uint32, numCategories)
	for _, c := range Categories() {
		m[c] = p.balances[c]
	}
	return m
}

// String formats the balances as "Variable: 10, Function: 3".
func (p *Purse) String() string {
	var b strings.Builder
	for i, c := range Categories() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %d", c, p.balances[c])
	}
	return b.String()
}
