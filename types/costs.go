package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProductionCosts is the planned cost of a production plan, split into
// the three social cost components, each denominated in labor-hours.
//
//   - Labour: direct working time ("a")
//   - Resource: raw materials ("r")
//   - Means: means of production ("p")
type ProductionCosts struct {
	Labour   decimal.Decimal `json:"labour"`
	Resource decimal.Decimal `json:"resource"`
	Means    decimal.Decimal `json:"means"`
}

// Costs builds a ProductionCosts value from labour, resource and means
// hours expressed as float64. Intended for literals and tests; use the
// decimal constructors for values read from external input.
func Costs(labour, resource, means float64) ProductionCosts {
	return ProductionCosts{
		Labour:   decimal.NewFromFloat(labour),
		Resource: decimal.NewFromFloat(resource),
		Means:    decimal.NewFromFloat(means),
	}
}

// ZeroCosts returns a ProductionCosts with all components zero.
func ZeroCosts() ProductionCosts {
	return ProductionCosts{
		Labour:   decimal.Zero,
		Resource: decimal.Zero,
		Means:    decimal.Zero,
	}
}

// Total returns the sum of all three cost components.
func (c ProductionCosts) Total() decimal.Decimal {
	return c.Labour.Add(c.Resource).Add(c.Means)
}

// Add returns the component-wise sum of two cost values.
func (c ProductionCosts) Add(other ProductionCosts) ProductionCosts {
	return ProductionCosts{
		Labour:   c.Labour.Add(other.Labour),
		Resource: c.Resource.Add(other.Resource),
		Means:    c.Means.Add(other.Means),
	}
}

// Div divides each component by the given divisor.
// Panics on a zero divisor (programming error).
func (c ProductionCosts) Div(divisor decimal.Decimal) ProductionCosts {
	if divisor.IsZero() {
		panic("types: production costs division by zero")
	}
	return ProductionCosts{
		Labour:   c.Labour.Div(divisor),
		Resource: c.Resource.Div(divisor),
		Means:    c.Means.Div(divisor),
	}
}

// IsZero reports whether all components are zero.
func (c ProductionCosts) IsZero() bool {
	return c.Labour.IsZero() && c.Resource.IsZero() && c.Means.IsZero()
}

// IsNegative reports whether any component is negative.
func (c ProductionCosts) IsNegative() bool {
	return c.Labour.IsNegative() || c.Resource.IsNegative() || c.Means.IsNegative()
}

// Equal reports component-wise equality.
func (c ProductionCosts) Equal(other ProductionCosts) bool {
	return c.Labour.Equal(other.Labour) &&
		c.Resource.Equal(other.Resource) &&
		c.Means.Equal(other.Means)
}

// String renders the costs as "a+r+p" labor-hours.
func (c ProductionCosts) String() string {
	return fmt.Sprintf("%sh labour + %sh resources + %sh means", c.Labour, c.Resource, c.Means)
}
