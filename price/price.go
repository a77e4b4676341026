// Package price computes individual and cooperative prices per unit.
//
// All functions are pure: they operate on already-loaded plan data and
// never touch storage. The engine is responsible for fetching the
// cooperating plans before calling Cooperative.
package price

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xraph/laborledger/plan"
)

// PerUnit is the individual price of one unit of the plan's product:
// zero for public services, the plan's own cost per unit otherwise.
func PerUnit(p *plan.Plan) decimal.Decimal {
	return p.PricePerUnit()
}

// Cooperative computes the cooperative price per unit for the target
// plan: the amount-weighted average of cost per unit over the plans of
// its cooperation that are active as of now. The target plan itself is
// always part of the average, even when it is about to expire; other
// cooperating plans are excluded once inactive. A plan outside any
// cooperation is priced individually.
func Cooperative(target *plan.Plan, cooperating []*plan.Plan, now time.Time) decimal.Decimal {
	if target.Cooperation.IsNil() {
		return PerUnit(target)
	}

	totalCost := target.Costs.Total()
	totalAmount := decimal.NewFromInt(target.Amount)
	for _, p := range cooperating {
		if p.ID.Equal(target.ID) || !p.IsActiveAsOf(now) {
			continue
		}
		totalCost = totalCost.Add(p.Costs.Total())
		totalAmount = totalAmount.Add(decimal.NewFromInt(p.Amount))
	}

	if totalAmount.IsZero() {
		return decimal.Zero
	}
	return totalCost.Div(totalAmount)
}
