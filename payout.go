package laborledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xraph/laborledger/id"
	"github.com/xraph/laborledger/member"
	"github.com/xraph/laborledger/plan"
	"github.com/xraph/laborledger/transfer"
)

var hoursPerDay = decimal.NewFromInt(24)

// PayoutFactor computes the ratio in [0, 1] applied to wage payouts: it
// expresses how much of privately earned labor credit is real once the
// cost of public-service production is netted out.
//
// The calculation looks at a gliding window of the configured width
// centered on the given instant. Every approved plan whose activity
// interval overlaps the window contributes its planned costs scaled by
// the overlapping share of its timeframe. A plan that only touches a
// window edge contributes nothing.
func (l *Ledger) PayoutFactor(ctx context.Context, at time.Time) (decimal.Decimal, error) {
	left := at.Add(-l.payoutWindow / 2)
	right := at.Add(l.payoutWindow / 2)

	plans, err := l.store.ListPlans(ctx, plan.ListOpts{
		ApprovedOnly: true,
		ActiveDuring: &plan.Period{Start: left, End: right},
	})
	if err != nil {
		return decimal.Zero, err
	}

	var productiveA, publicA, publicP, publicR decimal.Decimal
	for _, p := range plans {
		w := overlapFraction(p, left, right)
		if w.IsZero() {
			continue
		}
		if p.IsPublicService {
			publicA = publicA.Add(p.Costs.Labour.Mul(w))
			publicP = publicP.Add(p.Costs.Means.Mul(w))
			publicR = publicR.Add(p.Costs.Resource.Mul(w))
		} else {
			productiveA = productiveA.Add(p.Costs.Labour.Mul(w))
		}
	}

	factor := payoutFactor(productiveA, publicA, publicP, publicR)

	l.plugins.EmitPayoutFactorCalculated(ctx, factor.String())
	return factor, nil
}

// payoutFactor applies the factor formula to the aggregated
// overlap-weighted costs.
func payoutFactor(productiveA, publicA, publicP, publicR decimal.Decimal) decimal.Decimal {
	noPublicBurden := publicA.IsZero() && publicP.IsZero() && publicR.IsZero()
	if noPublicBurden {
		return decimal.NewFromInt(1)
	}
	if productiveA.IsZero() {
		// Public plans exist but no productive labour covers them.
		return decimal.Zero
	}
	factor := productiveA.Sub(publicP).Sub(publicR).Div(productiveA)
	if factor.IsNegative() {
		return decimal.Zero
	}
	return factor
}

// overlapFraction returns the share of the plan's timeframe that falls
// inside the half-open window [left, right).
func overlapFraction(p *plan.Plan, left, right time.Time) decimal.Decimal {
	if p.ApprovalDate == nil || p.ExpirationDate == nil || p.TimeframeDays <= 0 {
		return decimal.Zero
	}

	start := *p.ApprovalDate
	if start.Before(left) {
		start = left
	}
	end := *p.ExpirationDate
	if end.After(right) {
		end = right
	}
	if !end.After(start) {
		return decimal.Zero
	}

	overlapDays := decimal.NewFromFloat(end.Sub(start).Hours()).Div(hoursPerDay)
	return overlapDays.Div(decimal.NewFromInt(int64(p.TimeframeDays)))
}

// HoursWorkedRejection enumerates why a wage registration was rejected.
type HoursWorkedRejection string

const (
	HoursWorkedMustBePositive HoursWorkedRejection = "hours_worked_must_be_positive"
	WorkerNotAtCompany        HoursWorkedRejection = "worker_not_at_company"
)

// RegisterHoursWorkedResponse reports the outcome of a wage
// registration.
type RegisterHoursWorkedResponse struct {
	Rejected        bool                 `json:"rejected"`
	RejectionReason HoursWorkedRejection `json:"rejection_reason,omitempty"`
	Registration    id.ID                `json:"registration,omitzero"`
}

// RegisterHoursWorked registers hours a member worked at a company. The
// member's account is credited with the full hours from the company's
// work account; the share not covered by the payout factor moves on to
// the public sector fund as taxes.
func (l *Ledger) RegisterHoursWorked(ctx context.Context, companyID, memberID id.ID, hours decimal.Decimal) (*RegisterHoursWorkedResponse, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !hours.IsPositive() {
		return &RegisterHoursWorkedResponse{Rejected: true, RejectionReason: HoursWorkedMustBePositive}, nil
	}

	c, err := l.store.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	m, err := l.store.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	isWorker, err := l.store.IsCompanyWorker(ctx, companyID, memberID)
	if err != nil {
		return nil, err
	}
	if !isWorker {
		return &RegisterHoursWorkedResponse{Rejected: true, RejectionReason: WorkerNotAtCompany}, nil
	}

	now := l.clock()

	factor, err := l.PayoutFactor(ctx, now)
	if err != nil {
		return nil, err
	}

	certificates, err := l.createTransfer(ctx, now, c.WorkAccount, m.Account, hours, transfer.TypeWorkCertificates)
	if err != nil {
		return nil, err
	}

	taxShare := hours.Mul(decimal.NewFromInt(1).Sub(factor))
	taxes, err := l.createTransfer(ctx, now, m.Account, l.social.AccountPSF, taxShare, transfer.TypeTaxes)
	if err != nil {
		return nil, err
	}

	record := &member.RegisteredHoursWorked{
		ID:                         id.NewHoursWorkedID(),
		Company:                    c.ID,
		Member:                     m.ID,
		Hours:                      hours,
		TransferOfWorkCertificates: certificates.ID,
		TransferOfTaxes:            taxes.ID,
		RegisteredOn:               now,
	}
	if err := l.store.CreateRegisteredHoursWorked(ctx, record); err != nil {
		return nil, err
	}

	l.logger.Info("hours worked registered",
		"company", c.ID,
		"member", m.ID,
		"hours", hours,
		"payout_factor", factor,
	)
	l.plugins.EmitHoursWorkedRegistered(ctx, record)

	return &RegisterHoursWorkedResponse{Registration: record.ID}, nil
}
