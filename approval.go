package laborledger

import (
	"context"

	"github.com/xraph/laborledger/id"
	"github.com/xraph/laborledger/plan"
	"github.com/xraph/laborledger/transfer"
)

// ApprovePlanResponse reports the outcome of an approval attempt.
// IsApproved is false both for an already-decided plan (idempotent
// no-op, no transfers emitted) and for a rejected plan.
type ApprovePlanResponse struct {
	IsApproved bool  `json:"is_approved"`
	Approval   id.ID `json:"approval,omitzero"`
}

// ApprovePlan approves a drafted plan. Approval credits the planner's
// three cost subaccounts with the planned costs, debiting the public
// sector fund for public-service plans and the planner's own product
// account otherwise, and records one Approval referencing the three
// transfers. Approving an already-approved or rejected plan changes
// nothing.
func (l *Ledger) ApprovePlan(ctx context.Context, planID id.ID) (*ApprovePlanResponse, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.store.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if p.IsApproved() || p.IsRejected() {
		return &ApprovePlanResponse{IsApproved: false}, nil
	}

	planner, err := l.store.GetCompany(ctx, p.Planner)
	if err != nil {
		return nil, err
	}

	now := l.clock()

	// Public plans are funded by the PSF, productive plans by the
	// planner's own expected sales.
	debit := planner.ProductAccount
	typeP, typeR, typeA := transfer.TypeCreditP, transfer.TypeCreditR, transfer.TypeCreditA
	if p.IsPublicService {
		debit = l.social.AccountPSF
		typeP, typeR, typeA = transfer.TypeCreditPublicP, transfer.TypeCreditPublicR, transfer.TypeCreditPublicA
	}

	tp, err := l.createTransfer(ctx, now, debit, planner.MeansAccount, p.Costs.Means, typeP)
	if err != nil {
		return nil, err
	}
	tr, err := l.createTransfer(ctx, now, debit, planner.RawMaterialAccount, p.Costs.Resource, typeR)
	if err != nil {
		return nil, err
	}
	ta, err := l.createTransfer(ctx, now, debit, planner.WorkAccount, p.Costs.Labour, typeA)
	if err != nil {
		return nil, err
	}

	approval := &plan.Approval{
		ID:              id.NewPlanApprovalID(),
		Plan:            p.ID,
		Date:            now,
		TransferCreditP: tp.ID,
		TransferCreditR: tr.ID,
		TransferCreditA: ta.ID,
	}
	if err := l.store.CreatePlanApproval(ctx, approval); err != nil {
		return nil, err
	}

	expiration := now.AddDate(0, 0, p.TimeframeDays)
	p.ApprovalDate = &now
	p.ExpirationDate = &expiration
	p.Touch()
	if err := l.store.UpdatePlan(ctx, p); err != nil {
		return nil, err
	}

	l.logger.Info("plan approved",
		"plan", p.ID,
		"planner", p.Planner,
		"public", p.IsPublicService,
		"expires", expiration,
	)
	l.plugins.EmitPlanApproved(ctx, p, approval)

	return &ApprovePlanResponse{IsApproved: true, Approval: approval.ID}, nil
}

// RejectPlanResponse reports the outcome of a rejection attempt.
// IsPlanRejected is false when the plan was already decided.
type RejectPlanResponse struct {
	IsPlanRejected bool `json:"is_plan_rejected"`
}

// RejectPlan rejects a drafted plan. No transfers are created; a
// rejected plan can never be approved or consumed. Rejecting an
// already-decided plan changes nothing.
func (l *Ledger) RejectPlan(ctx context.Context, planID id.ID) (*RejectPlanResponse, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.store.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if p.IsApproved() || p.IsRejected() {
		return &RejectPlanResponse{IsPlanRejected: false}, nil
	}

	now := l.clock()
	p.RejectionDate = &now
	p.Touch()
	if err := l.store.UpdatePlan(ctx, p); err != nil {
		return nil, err
	}

	l.logger.Info("plan rejected", "plan", p.ID, "planner", p.Planner)
	l.plugins.EmitPlanRejected(ctx, p)

	return &RejectPlanResponse{IsPlanRejected: true}, nil
}

// GetPlanApproval retrieves the approval record of a plan.
func (l *Ledger) GetPlanApproval(ctx context.Context, planID id.ID) (*plan.Approval, error) {
	return l.store.GetPlanApproval(ctx, planID)
}
