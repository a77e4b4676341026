package laborledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xraph/laborledger/consumption"
	"github.com/xraph/laborledger/id"
	"github.com/xraph/laborledger/plan"
	"github.com/xraph/laborledger/price"
	"github.com/xraph/laborledger/transfer"
	"github.com/xraph/laborledger/types"
)

// PrivateConsumptionRejection enumerates why a private consumption
// registration was rejected.
type PrivateConsumptionRejection string

const (
	PrivateRejectionPlanNotFound         PrivateConsumptionRejection = "plan_not_found"
	PrivateRejectionPlanInactive         PrivateConsumptionRejection = "plan_inactive"
	PrivateRejectionConsumerDoesNotExist PrivateConsumptionRejection = "consumer_does_not_exist"
	PrivateRejectionInsufficientBalance  PrivateConsumptionRejection = "insufficient_balance"
)

// RegisterPrivateConsumptionResponse reports the outcome of a private
// consumption registration.
type RegisterPrivateConsumptionResponse struct {
	Rejected        bool                        `json:"rejected"`
	RejectionReason PrivateConsumptionRejection `json:"rejection_reason,omitempty"`
	Consumption     id.ID                       `json:"consumption,omitzero"`
}

// RegisterPrivateConsumption registers a member consuming plan output.
// The member pays the cooperative price per unit; the planner's product
// account is credited. Validation is fail-fast: the first failing check
// rejects the request and nothing is written.
func (l *Ledger) RegisterPrivateConsumption(ctx context.Context, memberID, planID id.ID, amount int64) (*RegisterPrivateConsumptionResponse, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()

	p, err := l.store.GetPlan(ctx, planID)
	if IsNotFound(err) {
		return &RegisterPrivateConsumptionResponse{Rejected: true, RejectionReason: PrivateRejectionPlanNotFound}, nil
	}
	if err != nil {
		return nil, err
	}
	if !p.IsActiveAsOf(now) {
		return &RegisterPrivateConsumptionResponse{Rejected: true, RejectionReason: PrivateRejectionPlanInactive}, nil
	}

	m, err := l.store.GetMember(ctx, memberID)
	if IsNotFound(err) {
		return &RegisterPrivateConsumptionResponse{Rejected: true, RejectionReason: PrivateRejectionConsumerDoesNotExist}, nil
	}
	if err != nil {
		return nil, err
	}

	coopPrice, err := l.cooperativePrice(ctx, p, now)
	if err != nil {
		return nil, err
	}
	value := coopPrice.Mul(decimal.NewFromInt(amount))

	ok, err := l.checkMemberBalance(ctx, m.Account, value)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &RegisterPrivateConsumptionResponse{Rejected: true, RejectionReason: PrivateRejectionInsufficientBalance}, nil
	}

	planner, err := l.store.GetCompany(ctx, p.Planner)
	if err != nil {
		return nil, err
	}

	main, err := l.createTransfer(ctx, now, m.Account, planner.ProductAccount, value, transfer.TypePrivateConsumption)
	if err != nil {
		return nil, err
	}

	compensation, err := l.createCompensationTransfer(ctx, p, planner.ProductAccount, coopPrice, amount, now)
	if err != nil {
		return nil, err
	}

	record := &consumption.Private{
		Entity:                types.NewEntity(),
		ID:                    id.NewPrivateConsumptionID(),
		Plan:                  p.ID,
		Amount:                amount,
		TransferOfConsumption: main.ID,
	}
	if compensation != nil {
		record.TransferOfCompensation = compensation.ID
	}
	if err := l.store.CreatePrivateConsumption(ctx, record); err != nil {
		return nil, err
	}

	l.logger.Info("private consumption registered",
		"member", m.ID,
		"plan", p.ID,
		"amount", amount,
		"value", value,
	)
	l.plugins.EmitPrivateConsumptionRegistered(ctx, record)

	return &RegisterPrivateConsumptionResponse{Consumption: record.ID}, nil
}

// ProductiveConsumptionRejection enumerates why a productive
// consumption registration was rejected.
type ProductiveConsumptionRejection string

const (
	ProductiveRejectionPlanNotFound         ProductiveConsumptionRejection = "plan_not_found"
	ProductiveRejectionPlanIsRejected       ProductiveConsumptionRejection = "plan_is_rejected"
	ProductiveRejectionPlanIsNotActive      ProductiveConsumptionRejection = "plan_is_not_active"
	ProductiveRejectionPublicService        ProductiveConsumptionRejection = "cannot_consume_public_service"
	ProductiveRejectionConsumerIsPlanner    ProductiveConsumptionRejection = "consumer_is_planner"
	ProductiveRejectionInvalidType          ProductiveConsumptionRejection = "invalid_consumption_type"
	ProductiveRejectionConsumerDoesNotExist ProductiveConsumptionRejection = "consumer_does_not_exist"
)

// RegisterProductiveConsumptionResponse reports the outcome of a
// productive consumption registration.
type RegisterProductiveConsumptionResponse struct {
	Rejected        bool                           `json:"rejected"`
	RejectionReason ProductiveConsumptionRejection `json:"rejection_reason,omitempty"`
	Consumption     id.ID                          `json:"consumption,omitzero"`
}

// RegisterProductiveConsumption registers a company consuming plan
// output as means of production or raw materials. The consumer's
// matching subaccount is debited at the cooperative price; companies
// are not overdraft-limited at this layer.
func (l *Ledger) RegisterProductiveConsumption(ctx context.Context, companyID, planID id.ID, amount int64, typ consumption.Type) (*RegisterProductiveConsumptionResponse, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()

	p, err := l.store.GetPlan(ctx, planID)
	if IsNotFound(err) {
		return &RegisterProductiveConsumptionResponse{Rejected: true, RejectionReason: ProductiveRejectionPlanNotFound}, nil
	}
	if err != nil {
		return nil, err
	}
	if p.IsRejected() {
		return &RegisterProductiveConsumptionResponse{Rejected: true, RejectionReason: ProductiveRejectionPlanIsRejected}, nil
	}
	if !p.IsActiveAsOf(now) {
		return &RegisterProductiveConsumptionResponse{Rejected: true, RejectionReason: ProductiveRejectionPlanIsNotActive}, nil
	}
	if p.IsPublicService {
		return &RegisterProductiveConsumptionResponse{Rejected: true, RejectionReason: ProductiveRejectionPublicService}, nil
	}
	if p.Planner.Equal(companyID) {
		return &RegisterProductiveConsumptionResponse{Rejected: true, RejectionReason: ProductiveRejectionConsumerIsPlanner}, nil
	}
	if typ != consumption.TypeMeansOfProduction && typ != consumption.TypeRawMaterials {
		return &RegisterProductiveConsumptionResponse{Rejected: true, RejectionReason: ProductiveRejectionInvalidType}, nil
	}

	consumer, err := l.store.GetCompany(ctx, companyID)
	if IsNotFound(err) {
		return &RegisterProductiveConsumptionResponse{Rejected: true, RejectionReason: ProductiveRejectionConsumerDoesNotExist}, nil
	}
	if err != nil {
		return nil, err
	}

	debit := consumer.MeansAccount
	transferType := transfer.TypeProductiveConsumptionP
	if typ == consumption.TypeRawMaterials {
		debit = consumer.RawMaterialAccount
		transferType = transfer.TypeProductiveConsumptionR
	}

	coopPrice, err := l.cooperativePrice(ctx, p, now)
	if err != nil {
		return nil, err
	}
	value := coopPrice.Mul(decimal.NewFromInt(amount))

	planner, err := l.store.GetCompany(ctx, p.Planner)
	if err != nil {
		return nil, err
	}

	main, err := l.createTransfer(ctx, now, debit, planner.ProductAccount, value, transferType)
	if err != nil {
		return nil, err
	}

	compensation, err := l.createCompensationTransfer(ctx, p, planner.ProductAccount, coopPrice, amount, now)
	if err != nil {
		return nil, err
	}

	record := &consumption.Productive{
		Entity:                types.NewEntity(),
		ID:                    id.NewProductiveConsumptionID(),
		Plan:                  p.ID,
		Amount:                amount,
		Type:                  typ,
		TransferOfConsumption: main.ID,
	}
	if compensation != nil {
		record.TransferOfCompensation = compensation.ID
	}
	if err := l.store.CreateProductiveConsumption(ctx, record); err != nil {
		return nil, err
	}

	l.logger.Info("productive consumption registered",
		"company", consumer.ID,
		"plan", p.ID,
		"type", typ,
		"amount", amount,
		"value", value,
	)
	l.plugins.EmitProductiveConsumptionRegistered(ctx, record)

	return &RegisterProductiveConsumptionResponse{Consumption: record.ID}, nil
}

// cooperativePrice loads the plan's cooperating plans and computes the
// price per unit the consumer actually pays.
func (l *Ledger) cooperativePrice(ctx context.Context, p *plan.Plan, now time.Time) (decimal.Decimal, error) {
	if p.Cooperation.IsNil() {
		return price.PerUnit(p), nil
	}
	cooperating, err := l.store.ListPlans(ctx, plan.ListOpts{Cooperation: p.Cooperation})
	if err != nil {
		return decimal.Zero, err
	}
	return price.Cooperative(p, cooperating, now), nil
}

// checkMemberBalance enforces the member overdraw policy: a zero-valued
// consumption is always permitted, a nil threshold means unlimited
// overdraw, otherwise the value must fit within balance plus overdraw.
func (l *Ledger) checkMemberBalance(ctx context.Context, accountID id.ID, value decimal.Decimal) (bool, error) {
	if !value.IsPositive() {
		return true, nil
	}
	overdraw := l.thresholds.AllowedOverdrawOfMemberAccount
	if overdraw == nil {
		return true, nil
	}
	balance, err := l.Balance(ctx, accountID)
	if err != nil {
		return false, err
	}
	return value.LessThanOrEqual(balance.Add(*overdraw)), nil
}

// createCompensationTransfer balances the gap between the plan's own
// price and the cooperative price the consumer paid. When the plan
// sells below the cooperative average the surplus moves from the
// planner's product account to the cooperation; when it sells above,
// the cooperation covers the shortfall. Nil when the plan does not
// cooperate or the prices match.
func (l *Ledger) createCompensationTransfer(ctx context.Context, p *plan.Plan, plannerProduct id.ID, coopPrice decimal.Decimal, amount int64, now time.Time) (*transfer.Transfer, error) {
	if p.Cooperation.IsNil() {
		return nil, nil
	}

	diff := coopPrice.Sub(price.PerUnit(p))
	if diff.IsZero() {
		return nil, nil
	}

	coop, err := l.store.GetCooperation(ctx, p.Cooperation)
	if err != nil {
		return nil, err
	}

	value := diff.Abs().Mul(decimal.NewFromInt(amount))
	debit, credit := plannerProduct, coop.Account
	typ := transfer.TypeCompensationForCoop
	if diff.IsNegative() {
		debit, credit = coop.Account, plannerProduct
		typ = transfer.TypeCompensationForCompany
	}

	t, err := l.createTransfer(ctx, now, debit, credit, value, typ)
	if err != nil {
		return nil, err
	}

	l.plugins.EmitCompensationTransferCreated(ctx, t)
	return t, nil
}
