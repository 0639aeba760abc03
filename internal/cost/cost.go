// Package cost computes the coin cost of an AST and checks it against a
// ledger before anything runs.
//
// Costs are structural: each Let needs one Variable coin and each FnDef
// one Function coin, wherever they appear in the tree. Nothing else costs.
package cost

import (
	"fmt"
	"strings"

	"github.com/you-not-fish/cang/internal/coins"
	"github.com/you-not-fish/cang/internal/syntax"
)

// CoinCost is the number of coins of one category a node requires.
type CoinCost struct {
	Category coins.Category
	Amount   uint32
}

func (c CoinCost) String() string {
	return fmt.Sprintf("%s:%d", c.Category, c.Amount)
}

// Calculate returns the costs of e in traversal order. Entries are not
// merged: two Let nodes yield two Variable entries.
func Calculate(e syntax.Expr) []CoinCost {
	var costs []CoinCost
	syntax.Walk(e, func(n syntax.Expr) bool {
		switch n.(type) {
		case *syntax.Let:
			costs = append(costs, CoinCost{Category: coins.Variable, Amount: 1})
		case *syntax.FnDef:
			costs = append(costs, CoinCost{Category: coins.Function, Amount: 1})
		}
		return true
	})
	return costs
}

// Merge sums costs per category, in category order, dropping categories
// with no cost. The result is for display; validation never merges.
func Merge(costs []CoinCost) []CoinCost {
	totals := make(map[coins.Category]uint32)
	for _, c := range costs {
		totals[c.Category] += c.Amount
	}
	var merged []CoinCost
	for _, cat := range coins.Categories() {
		if totals[cat] > 0 {
			merged = append(merged, CoinCost{Category: cat, Amount: totals[cat]})
		}
	}
	return merged
}

// Format renders costs as "Variable:1, Function:1", or "free" when empty.
func Format(costs []CoinCost) string {
	if len(costs) == 0 {
		return "free"
	}
	parts := make([]string, len(costs))
	for i, c := range costs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
