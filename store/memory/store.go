// Package memory provides an in-memory store implementation, used in
// tests and for single-process experimentation.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/xraph/laborledger"
	"github.com/xraph/laborledger/account"
	"github.com/xraph/laborledger/company"
	"github.com/xraph/laborledger/consumption"
	"github.com/xraph/laborledger/cooperation"
	"github.com/xraph/laborledger/id"
	"github.com/xraph/laborledger/member"
	"github.com/xraph/laborledger/plan"
	"github.com/xraph/laborledger/social"
	"github.com/xraph/laborledger/transfer"
)

type Store struct {
	mu sync.RWMutex

	accounts  map[string]*account.Account
	members   map[string]*member.Member
	companies map[string]*company.Company

	// workers maps companyID -> set of memberIDs
	workers map[string]map[string]bool

	social *social.Accounting

	// transfers is the append-only ledger, kept in insertion order.
	transfers []*transfer.Transfer

	plans     map[string]*plan.Plan
	planOrder []string

	// approvals is keyed by plan ID; a plan is approved at most once.
	approvals map[string]*plan.Approval

	cooperations map[string]*cooperation.Cooperation
	tenures      []*cooperation.Tenure
	requests     map[string]*cooperation.TransferRequest

	privateConsumptions    []*consumption.Private
	productiveConsumptions []*consumption.Productive

	hoursWorked []*member.RegisteredHoursWorked
}

func New() *Store {
	return &Store{
		accounts:     make(map[string]*account.Account),
		members:      make(map[string]*member.Member),
		companies:    make(map[string]*company.Company),
		workers:      make(map[string]map[string]bool),
		plans:        make(map[string]*plan.Plan),
		approvals:    make(map[string]*plan.Approval),
		cooperations: make(map[string]*cooperation.Cooperation),
		requests:     make(map[string]*cooperation.TransferRequest),
	}
}

// Account store implementation
func (s *Store) CreateAccount(_ context.Context, a *account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[a.ID.String()]; exists {
		return laborledger.ErrAlreadyExists
	}
	s.accounts[a.ID.String()] = a
	return nil
}

func (s *Store) GetAccount(_ context.Context, accountID id.ID) (*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if a, ok := s.accounts[accountID.String()]; ok {
		return a, nil
	}
	return nil, laborledger.ErrAccountNotFound
}

// Transfer store implementation
func (s *Store) CreateTransfer(_ context.Context, t *transfer.Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.transfers {
		if existing.ID.Equal(t.ID) {
			return laborledger.ErrAlreadyExists
		}
	}
	s.transfers = append(s.transfers, t)
	return nil
}

func (s *Store) GetTransfer(_ context.Context, transferID id.ID) (*transfer.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.transfers {
		if t.ID.Equal(transferID) {
			return t, nil
		}
	}
	return nil, laborledger.ErrTransferNotFound
}

func (s *Store) ListTransfers(_ context.Context, opts transfer.ListOpts) ([]*transfer.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*transfer.Transfer, 0)
	for _, t := range s.transfers {
		if !opts.Account.IsNil() && !t.DebitAccount.Equal(opts.Account) && !t.CreditAccount.Equal(opts.Account) {
			continue
		}
		if opts.Type != "" && t.Type != opts.Type {
			continue
		}
		result = append(result, t)
	}

	return paginate(result, opts.Offset, opts.Limit), nil
}

// Member store implementation
func (s *Store) CreateMember(_ context.Context, m *member.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.members[m.ID.String()]; exists {
		return laborledger.ErrAlreadyExists
	}
	s.members[m.ID.String()] = m
	return nil
}

func (s *Store) GetMember(_ context.Context, memberID id.ID) (*member.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if m, ok := s.members[memberID.String()]; ok {
		return m, nil
	}
	return nil, laborledger.ErrMemberNotFound
}

// Company store implementation
func (s *Store) CreateCompany(_ context.Context, c *company.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.companies[c.ID.String()]; exists {
		return laborledger.ErrAlreadyExists
	}
	s.companies[c.ID.String()] = c
	return nil
}

func (s *Store) GetCompany(_ context.Context, companyID id.ID) (*company.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.companies[companyID.String()]; ok {
		return c, nil
	}
	return nil, laborledger.ErrCompanyNotFound
}

// Worker roster implementation
func (s *Store) AddCompanyWorker(_ context.Context, companyID, memberID id.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	roster, ok := s.workers[companyID.String()]
	if !ok {
		roster = make(map[string]bool)
		s.workers[companyID.String()] = roster
	}
	roster[memberID.String()] = true
	return nil
}

func (s *Store) IsCompanyWorker(_ context.Context, companyID, memberID id.ID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.workers[companyID.String()][memberID.String()], nil
}

// Social accounting implementation
func (s *Store) CreateSocialAccounting(_ context.Context, sa *social.Accounting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.social != nil {
		return laborledger.ErrAlreadyExists
	}
	s.social = sa
	return nil
}

func (s *Store) GetSocialAccounting(_ context.Context) (*social.Accounting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.social == nil {
		return nil, laborledger.ErrSocialAccountingNotFound
	}
	return s.social, nil
}

// Plan store implementation
func (s *Store) CreatePlan(_ context.Context, p *plan.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.plans[p.ID.String()]; exists {
		return laborledger.ErrAlreadyExists
	}
	s.plans[p.ID.String()] = p
	s.planOrder = append(s.planOrder, p.ID.String())
	return nil
}

func (s *Store) GetPlan(_ context.Context, planID id.ID) (*plan.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.plans[planID.String()]; ok {
		return p, nil
	}
	return nil, laborledger.ErrPlanNotFound
}

func (s *Store) UpdatePlan(_ context.Context, p *plan.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.plans[p.ID.String()]; !exists {
		return laborledger.ErrPlanNotFound
	}
	s.plans[p.ID.String()] = p
	return nil
}

func (s *Store) ListPlans(_ context.Context, opts plan.ListOpts) ([]*plan.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*plan.Plan, 0)
	for _, key := range s.planOrder {
		p := s.plans[key]
		if !matchPlan(p, opts) {
			continue
		}
		result = append(result, p)
	}

	return paginate(result, opts.Offset, opts.Limit), nil
}

func matchPlan(p *plan.Plan, opts plan.ListOpts) bool {
	if !opts.Planner.IsNil() && !p.Planner.Equal(opts.Planner) {
		return false
	}
	if !opts.Cooperation.IsNil() && !p.Cooperation.Equal(opts.Cooperation) {
		return false
	}
	if opts.ApprovedOnly && !p.IsApproved() {
		return false
	}
	if opts.ActiveAt != nil && !p.IsActiveAsOf(*opts.ActiveAt) {
		return false
	}
	if opts.ActiveDuring != nil {
		if !p.IsApproved() || p.ExpirationDate == nil {
			return false
		}
		// Overlap with boundary touches excluded on either side.
		if !p.ApprovalDate.Before(opts.ActiveDuring.End) || !opts.ActiveDuring.Start.Before(*p.ExpirationDate) {
			return false
		}
	}
	return true
}

// Plan approval implementation
func (s *Store) CreatePlanApproval(_ context.Context, a *plan.Approval) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.approvals[a.Plan.String()]; exists {
		return laborledger.ErrAlreadyExists
	}
	s.approvals[a.Plan.String()] = a
	return nil
}

func (s *Store) GetPlanApproval(_ context.Context, planID id.ID) (*plan.Approval, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if a, ok := s.approvals[planID.String()]; ok {
		return a, nil
	}
	return nil, laborledger.ErrPlanApprovalNotFound
}

// Cooperation store implementation
func (s *Store) CreateCooperation(_ context.Context, c *cooperation.Cooperation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.cooperations[c.ID.String()]; exists {
		return laborledger.ErrAlreadyExists
	}
	s.cooperations[c.ID.String()] = c
	return nil
}

func (s *Store) GetCooperation(_ context.Context, cooperationID id.ID) (*cooperation.Cooperation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.cooperations[cooperationID.String()]; ok {
		return c, nil
	}
	return nil, laborledger.ErrCooperationNotFound
}

// Coordination tenure implementation
func (s *Store) CreateCoordinationTenure(_ context.Context, t *cooperation.Tenure) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.tenures {
		if existing.ID.Equal(t.ID) {
			return laborledger.ErrAlreadyExists
		}
	}
	s.tenures = append(s.tenures, t)
	return nil
}

func (s *Store) GetCoordinationTenure(_ context.Context, tenureID id.ID) (*cooperation.Tenure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tenures {
		if t.ID.Equal(tenureID) {
			return t, nil
		}
	}
	return nil, laborledger.ErrTenureNotFound
}

func (s *Store) GetCurrentCoordinationTenure(_ context.Context, cooperationID id.ID) (*cooperation.Tenure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var current *cooperation.Tenure
	for _, t := range s.tenures {
		if !t.Cooperation.Equal(cooperationID) {
			continue
		}
		if current == nil || t.StartDate.After(current.StartDate) {
			current = t
		}
	}
	if current == nil {
		return nil, laborledger.ErrTenureNotFound
	}
	return current, nil
}

// Coordination transfer request implementation
func (s *Store) CreateCoordinationTransferRequest(_ context.Context, r *cooperation.TransferRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.requests[r.ID.String()]; exists {
		return laborledger.ErrAlreadyExists
	}
	s.requests[r.ID.String()] = r
	return nil
}

func (s *Store) GetCoordinationTransferRequest(_ context.Context, requestID id.ID) (*cooperation.TransferRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.requests[requestID.String()]; ok {
		return r, nil
	}
	return nil, laborledger.ErrTransferRequestNotFound
}

func (s *Store) CloseCoordinationTransferRequest(_ context.Context, requestID id.ID, transferDate time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.requests[requestID.String()]
	if !ok {
		return laborledger.ErrTransferRequestNotFound
	}
	if r.TransferDate != nil {
		return laborledger.ErrTransferRequestClosed
	}
	r.TransferDate = &transferDate
	return nil
}

func (s *Store) ListCoordinationTransferRequests(_ context.Context, opts cooperation.TransferRequestListOpts) ([]*cooperation.TransferRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*cooperation.TransferRequest, 0)
	for _, r := range s.requests {
		if !opts.RequestingTenure.IsNil() && !r.RequestingTenure.Equal(opts.RequestingTenure) {
			continue
		}
		if opts.OpenOnly && !r.IsOpen() {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

// Consumption store implementation
func (s *Store) CreatePrivateConsumption(_ context.Context, c *consumption.Private) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.privateConsumptions = append(s.privateConsumptions, c)
	return nil
}

func (s *Store) ListPrivateConsumptions(_ context.Context, opts consumption.ListOpts) ([]*consumption.Private, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*consumption.Private, 0)
	for _, c := range s.privateConsumptions {
		if !opts.Plan.IsNil() && !c.Plan.Equal(opts.Plan) {
			continue
		}
		result = append(result, c)
	}
	return paginate(result, opts.Offset, opts.Limit), nil
}

func (s *Store) CreateProductiveConsumption(_ context.Context, c *consumption.Productive) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.productiveConsumptions = append(s.productiveConsumptions, c)
	return nil
}

func (s *Store) ListProductiveConsumptions(_ context.Context, opts consumption.ListOpts) ([]*consumption.Productive, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*consumption.Productive, 0)
	for _, c := range s.productiveConsumptions {
		if !opts.Plan.IsNil() && !c.Plan.Equal(opts.Plan) {
			continue
		}
		result = append(result, c)
	}
	return paginate(result, opts.Offset, opts.Limit), nil
}

// Registered hours worked implementation
func (s *Store) CreateRegisteredHoursWorked(_ context.Context, r *member.RegisteredHoursWorked) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hoursWorked = append(s.hoursWorked, r)
	return nil
}

func (s *Store) ListRegisteredHoursWorked(_ context.Context, companyID id.ID) ([]*member.RegisteredHoursWorked, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*member.RegisteredHoursWorked, 0)
	for _, r := range s.hoursWorked {
		if r.Company.Equal(companyID) {
			result = append(result, r)
		}
	}
	return result, nil
}

// Core methods
func (s *Store) Migrate(_ context.Context) error { return nil }

func (s *Store) Ping(_ context.Context) error { return nil }

func (s *Store) Close() error { return nil }

// paginate applies offset and limit; a zero limit means no limit.
func paginate[T any](items []T, offset, limit int) []T {
	start := offset
	if start > len(items) {
		start = len(items)
	}
	end := start + limit
	if limit == 0 || end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
