package plan

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xraph/laborledger/id"
	"github.com/xraph/laborledger/types"
)

func approvedPlan(approval time.Time, timeframeDays int) *Plan {
	expiration := approval.AddDate(0, 0, timeframeDays)
	return &Plan{
		ID:             id.NewPlanID(),
		Planner:        id.NewCompanyID(),
		Costs:          types.Costs(1, 2, 3),
		Amount:         10,
		TimeframeDays:  timeframeDays,
		ApprovalDate:   &approval,
		ExpirationDate: &expiration,
	}
}

func TestPlanStatus(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	drafted := &Plan{ID: id.NewPlanID()}
	if got := drafted.Status(); got != StatusDrafted {
		t.Errorf("drafted plan: got status %q", got)
	}

	approved := approvedPlan(now, 10)
	if got := approved.Status(); got != StatusApproved {
		t.Errorf("approved plan: got status %q", got)
	}

	rejected := &Plan{ID: id.NewPlanID(), RejectionDate: &now}
	if got := rejected.Status(); got != StatusRejected {
		t.Errorf("rejected plan: got status %q", got)
	}
	if rejected.IsActiveAsOf(now) {
		t.Error("rejected plan must never be active")
	}
}

func TestPlanActivityWindow(t *testing.T) {
	approval := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	p := approvedPlan(approval, 10)

	tests := []struct {
		name   string
		at     time.Time
		active bool
	}{
		{"before approval", approval.Add(-time.Second), false},
		{"at approval", approval, true},
		{"mid timeframe", approval.AddDate(0, 0, 5), true},
		{"just before expiration", approval.AddDate(0, 0, 10).Add(-time.Second), true},
		{"at expiration", approval.AddDate(0, 0, 10), false},
		{"after expiration", approval.AddDate(0, 0, 11), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.IsActiveAsOf(tt.at); got != tt.active {
				t.Errorf("IsActiveAsOf(%v): got %v, want %v", tt.at, got, tt.active)
			}
		})
	}
}

func TestPlanActiveDays(t *testing.T) {
	approval := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	p := approvedPlan(approval, 10)

	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{"at approval", approval, 0},
		{"after three days", approval.AddDate(0, 0, 3), 3},
		{"capped at timeframe", approval.AddDate(0, 0, 25), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ActiveDays(tt.at); got != tt.want {
				t.Errorf("ActiveDays(%v): got %d, want %d", tt.at, got, tt.want)
			}
		})
	}
}

func TestPlanPricing(t *testing.T) {
	p := &Plan{Costs: types.Costs(1, 2, 3), Amount: 4}
	if got, want := p.CostPerUnit(), decimal.RequireFromString("1.5"); !got.Equal(want) {
		t.Errorf("CostPerUnit: got %s, want %s", got, want)
	}
	if got := p.PricePerUnit(); !got.Equal(decimal.RequireFromString("1.5")) {
		t.Errorf("PricePerUnit: got %s", got)
	}
	if got := p.ExpectedSalesValue(); !got.Equal(decimal.NewFromInt(6)) {
		t.Errorf("ExpectedSalesValue: got %s", got)
	}

	zeroAmount := &Plan{Costs: types.Costs(1, 2, 3), Amount: 0}
	if got := zeroAmount.CostPerUnit(); !got.IsZero() {
		t.Errorf("CostPerUnit with zero amount: got %s, want 0", got)
	}

	public := &Plan{Costs: types.Costs(1, 2, 3), Amount: 4, IsPublicService: true}
	if got := public.PricePerUnit(); !got.IsZero() {
		t.Errorf("public service PricePerUnit: got %s, want 0", got)
	}
	if got := public.ExpectedSalesValue(); !got.IsZero() {
		t.Errorf("public service ExpectedSalesValue: got %s, want 0", got)
	}
}
