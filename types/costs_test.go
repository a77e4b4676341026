package types

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestProductionCostsTotal(t *testing.T) {
	tests := []struct {
		name  string
		costs ProductionCosts
		total string
	}{
		{"all zero", ZeroCosts(), "0"},
		{"labour only", Costs(3, 0, 0), "3"},
		{"mixed", Costs(1, 2, 3), "6"},
		{"fractional", Costs(0.5, 0.25, 0.25), "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := decimal.RequireFromString(tt.total)
			if got := tt.costs.Total(); !got.Equal(want) {
				t.Errorf("Total: got %s, want %s", got, want)
			}
		})
	}
}

func TestProductionCostsArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       func() ProductionCosts
		expected ProductionCosts
	}{
		{"Add", func() ProductionCosts { return Costs(1, 2, 3).Add(Costs(3, 2, 1)) }, Costs(4, 4, 4)},
		{"Add zero", func() ProductionCosts { return Costs(1, 2, 3).Add(ZeroCosts()) }, Costs(1, 2, 3)},
		{"Div", func() ProductionCosts { return Costs(4, 2, 8).Div(decimal.NewFromInt(2)) }, Costs(2, 1, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.op()
			if !result.Equal(tt.expected) {
				t.Errorf("got %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestProductionCostsDivByZero(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for division by zero")
		}
	}()

	_ = Costs(1, 1, 1).Div(decimal.Zero)
}

func TestProductionCostsPredicates(t *testing.T) {
	if !ZeroCosts().IsZero() {
		t.Error("ZeroCosts should report IsZero")
	}
	if Costs(1, 0, 0).IsZero() {
		t.Error("non-zero costs should not report IsZero")
	}
	if Costs(1, 2, 3).IsNegative() {
		t.Error("positive costs should not report IsNegative")
	}
	if !Costs(-1, 2, 3).IsNegative() {
		t.Error("costs with a negative component should report IsNegative")
	}
}
