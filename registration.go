package laborledger

import (
	"context"

	"github.com/xraph/laborledger/account"
	"github.com/xraph/laborledger/company"
	"github.com/xraph/laborledger/cooperation"
	"github.com/xraph/laborledger/id"
	"github.com/xraph/laborledger/member"
	"github.com/xraph/laborledger/plan"
	"github.com/xraph/laborledger/types"
)

// CreateMember registers a member and mints their certificate account.
func (l *Ledger) CreateMember(ctx context.Context, name, email string) (*member.Member, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct := account.New(account.TypeMember)
	if err := l.store.CreateAccount(ctx, acct); err != nil {
		return nil, err
	}

	m := &member.Member{
		Entity:  types.NewEntity(),
		ID:      id.NewMemberID(),
		Name:    name,
		Email:   email,
		Account: acct.ID,
	}
	if err := l.store.CreateMember(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

// CreateCompany registers a company and mints its four subaccounts.
func (l *Ledger) CreateCompany(ctx context.Context, name, email string) (*company.Company, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	accounts := make([]id.ID, 0, 4)
	for _, t := range []account.Type{
		account.TypeMeans,
		account.TypeRawMaterial,
		account.TypeWork,
		account.TypeProduct,
	} {
		acct := account.New(t)
		if err := l.store.CreateAccount(ctx, acct); err != nil {
			return nil, err
		}
		accounts = append(accounts, acct.ID)
	}

	c := &company.Company{
		Entity:             types.NewEntity(),
		ID:                 id.NewCompanyID(),
		Name:               name,
		Email:              email,
		MeansAccount:       accounts[0],
		RawMaterialAccount: accounts[1],
		WorkAccount:        accounts[2],
		ProductAccount:     accounts[3],
	}
	if err := l.store.CreateCompany(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// AddWorkerToCompany adds a member to a company's worker roster. Only
// rostered workers can have hours registered for them.
func (l *Ledger) AddWorkerToCompany(ctx context.Context, companyID, memberID id.ID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.store.GetCompany(ctx, companyID); err != nil {
		return err
	}
	if _, err := l.store.GetMember(ctx, memberID); err != nil {
		return err
	}
	return l.store.AddCompanyWorker(ctx, companyID, memberID)
}

// CreateCooperation founds a cooperation. The founding company holds
// the initial coordination tenure and the cooperation receives its own
// compensation account.
func (l *Ledger) CreateCooperation(ctx context.Context, name, definition string, founder id.ID) (*cooperation.Cooperation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.store.GetCompany(ctx, founder); err != nil {
		return nil, err
	}

	acct := account.New(account.TypeCooperation)
	if err := l.store.CreateAccount(ctx, acct); err != nil {
		return nil, err
	}

	coop := &cooperation.Cooperation{
		Entity:     types.NewEntity(),
		ID:         id.NewCooperationID(),
		Name:       name,
		Definition: definition,
		Account:    acct.ID,
	}
	if err := l.store.CreateCooperation(ctx, coop); err != nil {
		return nil, err
	}

	tenure := &cooperation.Tenure{
		ID:          id.NewTenureID(),
		Company:     founder,
		Cooperation: coop.ID,
		StartDate:   l.clock(),
	}
	if err := l.store.CreateCoordinationTenure(ctx, tenure); err != nil {
		return nil, err
	}

	return coop, nil
}

// FilePlan files a plan draft for the planning company. The plan stays
// in the drafted state until social accounting decides on it.
func (l *Ledger) FilePlan(ctx context.Context, p *plan.Plan) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.store.GetCompany(ctx, p.Planner); err != nil {
		return err
	}

	if p.ID.IsNil() {
		p.ID = id.NewPlanID()
	}
	p.Entity = types.NewEntity()
	p.ApprovalDate = nil
	p.RejectionDate = nil
	p.ExpirationDate = nil

	if err := l.store.CreatePlan(ctx, p); err != nil {
		return err
	}

	l.plugins.EmitPlanFiled(ctx, p)
	return nil
}

// GetPlan retrieves a plan by ID.
func (l *Ledger) GetPlan(ctx context.Context, planID id.ID) (*plan.Plan, error) {
	return l.store.GetPlan(ctx, planID)
}

// GetMember retrieves a member by ID.
func (l *Ledger) GetMember(ctx context.Context, memberID id.ID) (*member.Member, error) {
	return l.store.GetMember(ctx, memberID)
}

// GetCompany retrieves a company by ID.
func (l *Ledger) GetCompany(ctx context.Context, companyID id.ID) (*company.Company, error) {
	return l.store.GetCompany(ctx, companyID)
}

// GetCooperation retrieves a cooperation by ID.
func (l *Ledger) GetCooperation(ctx context.Context, cooperationID id.ID) (*cooperation.Cooperation, error) {
	return l.store.GetCooperation(ctx, cooperationID)
}

// RequestCooperationResponse reports the outcome of RequestCooperation.
type RequestCooperationResponse struct {
	Rejected        bool                        `json:"rejected"`
	RejectionReason CooperationRequestRejection `json:"rejection_reason,omitempty"`
}

// CooperationRequestRejection enumerates why a cooperation join request
// was rejected.
type CooperationRequestRejection string

const (
	CoopRequestPlanNotFound         CooperationRequestRejection = "plan_not_found"
	CoopRequestCooperationNotFound  CooperationRequestRejection = "cooperation_not_found"
	CoopRequestPlanHasCooperation   CooperationRequestRejection = "plan_has_cooperation"
	CoopRequestPlanAlreadyRequested CooperationRequestRejection = "plan_requesting_cooperation"
)

// RequestCooperation asks the coordinator of a cooperation to accept
// the plan. Membership begins only once the coordinator accepts.
func (l *Ledger) RequestCooperation(ctx context.Context, planID, cooperationID id.ID) (*RequestCooperationResponse, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.store.GetPlan(ctx, planID)
	if IsNotFound(err) {
		return &RequestCooperationResponse{Rejected: true, RejectionReason: CoopRequestPlanNotFound}, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := l.store.GetCooperation(ctx, cooperationID); err != nil {
		if IsNotFound(err) {
			return &RequestCooperationResponse{Rejected: true, RejectionReason: CoopRequestCooperationNotFound}, nil
		}
		return nil, err
	}

	if !p.Cooperation.IsNil() {
		return &RequestCooperationResponse{Rejected: true, RejectionReason: CoopRequestPlanHasCooperation}, nil
	}
	if !p.RequestedCooperation.IsNil() {
		return &RequestCooperationResponse{Rejected: true, RejectionReason: CoopRequestPlanAlreadyRequested}, nil
	}

	p.RequestedCooperation = cooperationID
	p.Touch()
	if err := l.store.UpdatePlan(ctx, p); err != nil {
		return nil, err
	}

	return &RequestCooperationResponse{}, nil
}

// AcceptCooperationResponse reports the outcome of AcceptCooperation.
type AcceptCooperationResponse struct {
	Rejected        bool                       `json:"rejected"`
	RejectionReason CooperationAcceptRejection `json:"rejection_reason,omitempty"`
}

// CooperationAcceptRejection enumerates why a cooperation join request
// could not be accepted.
type CooperationAcceptRejection string

const (
	CoopAcceptPlanNotFound              CooperationAcceptRejection = "plan_not_found"
	CoopAcceptCooperationNotFound       CooperationAcceptRejection = "cooperation_not_found"
	CoopAcceptPlanHasCooperation        CooperationAcceptRejection = "plan_has_cooperation"
	CoopAcceptPlanNotRequesting         CooperationAcceptRejection = "plan_is_not_requesting"
	CoopAcceptRequesterIsNotCoordinator CooperationAcceptRejection = "requester_is_not_coordinator"
)

// AcceptCooperation lets the current coordinator accept a plan's join
// request; the plan then sells at the cooperative price.
func (l *Ledger) AcceptCooperation(ctx context.Context, coordinator, planID, cooperationID id.ID) (*AcceptCooperationResponse, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.store.GetPlan(ctx, planID)
	if IsNotFound(err) {
		return &AcceptCooperationResponse{Rejected: true, RejectionReason: CoopAcceptPlanNotFound}, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := l.store.GetCooperation(ctx, cooperationID); err != nil {
		if IsNotFound(err) {
			return &AcceptCooperationResponse{Rejected: true, RejectionReason: CoopAcceptCooperationNotFound}, nil
		}
		return nil, err
	}

	tenure, err := l.store.GetCurrentCoordinationTenure(ctx, cooperationID)
	if err != nil {
		return nil, err
	}
	if !tenure.Company.Equal(coordinator) {
		return &AcceptCooperationResponse{Rejected: true, RejectionReason: CoopAcceptRequesterIsNotCoordinator}, nil
	}

	if !p.Cooperation.IsNil() {
		return &AcceptCooperationResponse{Rejected: true, RejectionReason: CoopAcceptPlanHasCooperation}, nil
	}
	if !p.RequestedCooperation.Equal(cooperationID) {
		return &AcceptCooperationResponse{Rejected: true, RejectionReason: CoopAcceptPlanNotRequesting}, nil
	}

	p.Cooperation = cooperationID
	p.RequestedCooperation = id.Nil
	p.Touch()
	if err := l.store.UpdatePlan(ctx, p); err != nil {
		return nil, err
	}

	return &AcceptCooperationResponse{}, nil
}
