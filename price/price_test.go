package price

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xraph/laborledger/id"
	"github.com/xraph/laborledger/plan"
	"github.com/xraph/laborledger/types"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func activePlan(totalCost float64, amount int64, coop id.ID) *plan.Plan {
	approval := now.AddDate(0, 0, -1)
	expiration := approval.AddDate(0, 0, 30)
	return &plan.Plan{
		ID:             id.NewPlanID(),
		Planner:        id.NewCompanyID(),
		Costs:          types.Costs(totalCost, 0, 0),
		Amount:         amount,
		TimeframeDays:  30,
		ApprovalDate:   &approval,
		ExpirationDate: &expiration,
		Cooperation:    coop,
	}
}

func TestCooperativePriceWithoutCooperation(t *testing.T) {
	p := activePlan(12, 4, id.Nil)
	got := Cooperative(p, nil, now)
	if want := decimal.NewFromInt(3); !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestCooperativePriceAveragesOverCooperatingPlans(t *testing.T) {
	coop := id.NewCooperationID()

	tests := []struct {
		name       string
		targetCost float64
		otherCost  float64
		amount     int64
		expected   string
	}{
		{"diverging costs", 3, 10, 1, "6.5"},
		{"equal costs", 5, 5, 1, "5"},
		{"higher amounts", 30, 100, 10, "6.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := activePlan(tt.targetCost, tt.amount, coop)
			other := activePlan(tt.otherCost, tt.amount, coop)
			got := Cooperative(target, []*plan.Plan{target, other}, now)
			if want := decimal.RequireFromString(tt.expected); !got.Equal(want) {
				t.Errorf("got %s, want %s", got, want)
			}
		})
	}
}

func TestCooperativePriceExcludesInactivePlans(t *testing.T) {
	coop := id.NewCooperationID()
	target := activePlan(3, 1, coop)

	expired := activePlan(10, 1, coop)
	past := now.AddDate(0, 0, -40)
	pastEnd := past.AddDate(0, 0, 10)
	expired.ApprovalDate = &past
	expired.ExpirationDate = &pastEnd

	undecided := activePlan(100, 1, coop)
	undecided.ApprovalDate = nil
	undecided.ExpirationDate = nil

	got := Cooperative(target, []*plan.Plan{target, expired, undecided}, now)
	if want := decimal.NewFromInt(3); !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestCooperativePriceAlwaysIncludesTarget(t *testing.T) {
	coop := id.NewCooperationID()

	// Target expired a moment ago but is still the plan being consumed.
	target := activePlan(3, 1, coop)
	past := now.AddDate(0, 0, -31)
	pastEnd := past.AddDate(0, 0, 30)
	target.ApprovalDate = &past
	target.ExpirationDate = &pastEnd

	other := activePlan(10, 1, coop)

	got := Cooperative(target, []*plan.Plan{target, other}, now)
	if want := decimal.RequireFromString("6.5"); !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestCooperativePriceZeroAmounts(t *testing.T) {
	coop := id.NewCooperationID()
	target := activePlan(3, 0, coop)
	got := Cooperative(target, []*plan.Plan{target}, now)
	if !got.IsZero() {
		t.Errorf("got %s, want 0", got)
	}
}
