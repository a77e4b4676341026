// Package plan defines production plans and their lifecycle records.
package plan

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xraph/laborledger/id"
	"github.com/xraph/laborledger/types"
)

// Status is the lifecycle state of a plan.
type Status string

const (
	// StatusDrafted means the plan is filed but not yet decided on.
	StatusDrafted Status = "drafted"
	// StatusApproved is terminal; approval emits the plan's credit transfers.
	StatusApproved Status = "approved"
	// StatusRejected is terminal; a rejected plan can never be approved
	// or consumed.
	StatusRejected Status = "rejected"
)

// Plan is a company's proposal to produce a fixed amount of a product
// over a timeframe at a stated labor cost. Once approved, it is active
// from the approval date until the end of its timeframe.
type Plan struct {
	types.Entity
	ID              id.ID                 `json:"id"`
	Planner         id.ID                 `json:"planner"`
	Costs           types.ProductionCosts `json:"costs"`
	ProductName     string                `json:"product_name"`
	Unit            string                `json:"unit"`
	Amount          int64                 `json:"amount"`
	Description     string                `json:"description"`
	TimeframeDays   int                   `json:"timeframe_days"`
	IsPublicService bool                  `json:"is_public_service"`

	ApprovalDate   *time.Time `json:"approval_date,omitempty"`
	RejectionDate  *time.Time `json:"rejection_date,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`

	// Cooperation is set once a coordinator accepts the plan into a
	// cooperation; RequestedCooperation tracks a pending join request.
	Cooperation          id.ID `json:"cooperation,omitzero"`
	RequestedCooperation id.ID `json:"requested_cooperation,omitzero"`

	Hidden bool `json:"hidden"`
}

// Status derives the lifecycle state from the decision dates.
func (p *Plan) Status() Status {
	switch {
	case p.RejectionDate != nil:
		return StatusRejected
	case p.ApprovalDate != nil:
		return StatusApproved
	default:
		return StatusDrafted
	}
}

// IsApproved reports whether the plan has been approved.
func (p *Plan) IsApproved() bool { return p.Status() == StatusApproved }

// IsRejected reports whether the plan has been rejected.
func (p *Plan) IsRejected() bool { return p.Status() == StatusRejected }

// IsActiveAsOf reports whether the plan is active at the given instant.
// The activity interval is half-open: [approval, expiration).
func (p *Plan) IsActiveAsOf(t time.Time) bool {
	if !p.IsApproved() || p.ExpirationDate == nil {
		return false
	}
	return !t.Before(*p.ApprovalDate) && t.Before(*p.ExpirationDate)
}

// IsExpiredAsOf reports whether the plan's timeframe has run out at t.
func (p *Plan) IsExpiredAsOf(t time.Time) bool {
	return p.ExpirationDate != nil && !t.Before(*p.ExpirationDate)
}

// ActiveDays returns the full days the plan has been active at the
// given instant, capped at the plan's timeframe. Zero for undecided or
// rejected plans.
func (p *Plan) ActiveDays(t time.Time) int {
	if p.ApprovalDate == nil || p.IsRejected() {
		return 0
	}
	passed := int(t.Sub(*p.ApprovalDate).Hours() / 24)
	if passed < 0 {
		passed = 0
	}
	if passed > p.TimeframeDays {
		return p.TimeframeDays
	}
	return passed
}

// CostPerUnit is the plan's own production cost per produced unit.
// Zero when the plan produces nothing.
func (p *Plan) CostPerUnit() decimal.Decimal {
	if p.Amount == 0 {
		return decimal.Zero
	}
	return p.Costs.Total().Div(decimal.NewFromInt(p.Amount))
}

// PricePerUnit is the individual price of one unit: zero for public
// services (given away for free), the cost per unit otherwise.
func (p *Plan) PricePerUnit() decimal.Decimal {
	if p.IsPublicService {
		return decimal.Zero
	}
	return p.CostPerUnit()
}

// ExpectedSalesValue is the total revenue the plan should recover over
// its lifetime. Public services are not expected to sell.
func (p *Plan) ExpectedSalesValue() decimal.Decimal {
	if p.IsPublicService {
		return decimal.Zero
	}
	return p.Costs.Total()
}

// Approval records the one-time approval of a plan together with the
// three credit transfers it emitted.
type Approval struct {
	ID              id.ID     `json:"id"`
	Plan            id.ID     `json:"plan"`
	Date            time.Time `json:"date"`
	TransferCreditP id.ID     `json:"transfer_of_credit_p"`
	TransferCreditR id.ID     `json:"transfer_of_credit_r"`
	TransferCreditA id.ID     `json:"transfer_of_credit_a"`
}

// Period is a closed time interval used for activity-window queries.
type Period struct {
	Start time.Time
	End   time.Time
}

// ListOpts filters plan queries.
type ListOpts struct {
	// Planner restricts to plans filed by the company.
	Planner id.ID
	// Cooperation restricts to plans accepted into the cooperation.
	Cooperation id.ID
	// ApprovedOnly restricts to approved plans.
	ApprovedOnly bool
	// ActiveAt restricts to plans active at the instant.
	ActiveAt *time.Time
	// ActiveDuring restricts to approved plans whose activity interval
	// overlaps the period (boundary touches excluded on either side).
	ActiveDuring *Period
	// Limit and Offset paginate; zero Limit means no limit.
	Limit  int
	Offset int
}
