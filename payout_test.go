package laborledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xraph/laborledger/plan"
	"github.com/xraph/laborledger/types"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPayoutFactorFormula(t *testing.T) {
	tests := []struct {
		name                                   string
		productiveA, publicA, publicP, publicR string
		want                                   string
	}{
		{"no plans at all", "0", "0", "0", "0", "1"},
		{"no public burden", "10", "0", "0", "0", "1"},
		{"no productive labour", "0", "3", "1", "1", "0"},
		{"public labour only still counts as burden", "4", "3", "0", "0", "1"},
		{"public overhead halves the payout", "4", "1", "1", "1", "0.5"},
		{"overhead exceeding labour clamps at zero", "1", "0", "4", "4", "0"},
		{"exact break-even", "2", "0", "1", "1", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := payoutFactor(dec(tt.productiveA), dec(tt.publicA), dec(tt.publicP), dec(tt.publicR))
			if !got.Equal(dec(tt.want)) {
				t.Fatalf("payoutFactor = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestOverlapFraction(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	newPlan := func(approved time.Time, days int) *plan.Plan {
		expiration := approved.AddDate(0, 0, days)
		return &plan.Plan{
			Costs:          types.Costs(1, 0, 0),
			TimeframeDays:  days,
			ApprovalDate:   &approved,
			ExpirationDate: &expiration,
		}
	}

	tests := []struct {
		name        string
		p           *plan.Plan
		left, right time.Time
		want        string
	}{
		{
			"fully inside the window",
			newPlan(base, 7),
			base.Add(-day), base.Add(10 * day),
			"1",
		},
		{
			"half before the window",
			newPlan(base, 10),
			base.Add(5 * day), base.Add(20 * day),
			"0.5",
		},
		{
			"half after the window",
			newPlan(base, 10),
			base.Add(-20 * day), base.Add(5 * day),
			"0.5",
		},
		{
			"window inside the plan",
			newPlan(base, 10),
			base.Add(2 * day), base.Add(4 * day),
			"0.2",
		},
		{
			"touching the left edge only",
			newPlan(base, 7),
			base.Add(7 * day), base.Add(14 * day),
			"0",
		},
		{
			"touching the right edge only",
			newPlan(base.Add(7*day), 7),
			base, base.Add(7 * day),
			"0",
		},
		{
			"undecided plan",
			&plan.Plan{Costs: types.Costs(1, 0, 0), TimeframeDays: 7},
			base, base.Add(14 * day),
			"0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := overlapFraction(tt.p, tt.left, tt.right)
			if !got.Equal(dec(tt.want)) {
				t.Fatalf("overlapFraction = %s, want %s", got, tt.want)
			}
		})
	}
}
