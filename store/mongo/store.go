// Package mongo implements the labor-ledger store on MongoDB via the
// Grove ORM.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	laborledger "github.com/xraph/laborledger"
	"github.com/xraph/laborledger/account"
	"github.com/xraph/laborledger/company"
	"github.com/xraph/laborledger/consumption"
	"github.com/xraph/laborledger/cooperation"
	"github.com/xraph/laborledger/id"
	"github.com/xraph/laborledger/member"
	"github.com/xraph/laborledger/plan"
	"github.com/xraph/laborledger/social"
	llstore "github.com/xraph/laborledger/store"
	"github.com/xraph/laborledger/transfer"
)

// Collection name constants.
const (
	colAccounts               = "laborledger_accounts"
	colTransfers              = "laborledger_transfers"
	colMembers                = "laborledger_members"
	colCompanies              = "laborledger_companies"
	colCompanyWorkers         = "laborledger_company_workers"
	colSocialAccounting       = "laborledger_social_accounting"
	colPlans                  = "laborledger_plans"
	colPlanApprovals          = "laborledger_plan_approvals"
	colCooperations           = "laborledger_cooperations"
	colTenures                = "laborledger_coordination_tenures"
	colTransferRequests       = "laborledger_coordination_transfer_requests"
	colPrivateConsumptions    = "laborledger_private_consumptions"
	colProductiveConsumptions = "laborledger_productive_consumptions"
	colHoursWorked            = "laborledger_registered_hours_worked"
)

// compile-time interface check
var _ llstore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for all labor-ledger collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("laborledger/mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colAccounts: {
			{Keys: bson.D{{Key: "type", Value: 1}}},
		},
		colTransfers: {
			{Keys: bson.D{{Key: "debit_account", Value: 1}, {Key: "date", Value: 1}}},
			{Keys: bson.D{{Key: "credit_account", Value: 1}, {Key: "date", Value: 1}}},
			{Keys: bson.D{{Key: "type", Value: 1}}},
		},
		colPlans: {
			{Keys: bson.D{{Key: "planner", Value: 1}}},
			{Keys: bson.D{{Key: "cooperation", Value: 1}}},
			{Keys: bson.D{{Key: "approval_date", Value: 1}, {Key: "expiration_date", Value: 1}}},
		},
		colPlanApprovals: {
			{
				Keys:    bson.D{{Key: "plan", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		colTenures: {
			{Keys: bson.D{{Key: "cooperation", Value: 1}, {Key: "start_date", Value: -1}}},
		},
		colTransferRequests: {
			{Keys: bson.D{{Key: "requesting_tenure", Value: 1}}},
		},
		colPrivateConsumptions: {
			{Keys: bson.D{{Key: "plan", Value: 1}}},
		},
		colProductiveConsumptions: {
			{Keys: bson.D{{Key: "plan", Value: 1}}},
		},
		colHoursWorked: {
			{Keys: bson.D{{Key: "company", Value: 1}, {Key: "registered_on", Value: 1}}},
		},
		colCompanyWorkers: {
			{Keys: bson.D{{Key: "company", Value: 1}, {Key: "member", Value: 1}}},
		},
	}
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Account Store ====================

func (s *Store) CreateAccount(ctx context.Context, a *account.Account) error {
	m := toAccountModel(a)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("laborledger/mongo: create account: %w", err)
	}
	return nil
}

func (s *Store) GetAccount(ctx context.Context, accountID id.ID) (*account.Account, error) {
	var m accountModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": accountID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, laborledger.ErrAccountNotFound
		}
		return nil, fmt.Errorf("laborledger/mongo: get account: %w", err)
	}
	return fromAccountModel(&m)
}

// ==================== Transfer Store ====================

func (s *Store) CreateTransfer(ctx context.Context, t *transfer.Transfer) error {
	m := toTransferModel(t)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("laborledger/mongo: create transfer: %w", err)
	}
	return nil
}

func (s *Store) GetTransfer(ctx context.Context, transferID id.ID) (*transfer.Transfer, error) {
	var m transferModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": transferID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, laborledger.ErrTransferNotFound
		}
		return nil, fmt.Errorf("laborledger/mongo: get transfer: %w", err)
	}
	return fromTransferModel(&m)
}

func (s *Store) ListTransfers(ctx context.Context, opts transfer.ListOpts) ([]*transfer.Transfer, error) {
	var models []transferModel

	filter := bson.M{}
	if !opts.Account.IsNil() {
		acct := opts.Account.String()
		filter["$or"] = []bson.M{
			{"debit_account": acct},
			{"credit_account": acct},
		}
	}
	if opts.Type != "" {
		filter["type"] = string(opts.Type)
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("laborledger/mongo: list transfers: %w", err)
	}

	result := make([]*transfer.Transfer, len(models))
	for i := range models {
		t, err := fromTransferModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = t
	}
	return result, nil
}

// ==================== Member Store ====================

func (s *Store) CreateMember(ctx context.Context, m *member.Member) error {
	model := toMemberModel(m)
	_, err := s.mdb.NewInsert(model).Exec(ctx)
	if err != nil {
		return fmt.Errorf("laborledger/mongo: create member: %w", err)
	}
	return nil
}

func (s *Store) GetMember(ctx context.Context, memberID id.ID) (*member.Member, error) {
	var m memberModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": memberID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, laborledger.ErrMemberNotFound
		}
		return nil, fmt.Errorf("laborledger/mongo: get member: %w", err)
	}
	return fromMemberModel(&m)
}

// ==================== Company Store ====================

func (s *Store) CreateCompany(ctx context.Context, c *company.Company) error {
	m := toCompanyModel(c)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("laborledger/mongo: create company: %w", err)
	}
	return nil
}

func (s *Store) GetCompany(ctx context.Context, companyID id.ID) (*company.Company, error) {
	var m companyModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": companyID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, laborledger.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("laborledger/mongo: get company: %w", err)
	}
	return fromCompanyModel(&m)
}

// ==================== Worker roster ====================

func (s *Store) AddCompanyWorker(ctx context.Context, companyID, memberID id.ID) error {
	m := &companyWorkerModel{
		ID:      workerKey(companyID.String(), memberID.String()),
		Company: companyID.String(),
		Member:  memberID.String(),
		AddedAt: now(),
	}
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("laborledger/mongo: add company worker: %w", err)
	}
	return nil
}

func (s *Store) IsCompanyWorker(ctx context.Context, companyID, memberID id.ID) (bool, error) {
	var m companyWorkerModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": workerKey(companyID.String(), memberID.String())}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return false, nil
		}
		return false, fmt.Errorf("laborledger/mongo: is company worker: %w", err)
	}
	return true, nil
}

// ==================== Social Accounting Store ====================

func (s *Store) CreateSocialAccounting(ctx context.Context, sa *social.Accounting) error {
	m := toSocialAccountingModel(sa)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("laborledger/mongo: create social accounting: %w", err)
	}
	return nil
}

func (s *Store) GetSocialAccounting(ctx context.Context) (*social.Accounting, error) {
	var m socialAccountingModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, laborledger.ErrSocialAccountingNotFound
		}
		return nil, fmt.Errorf("laborledger/mongo: get social accounting: %w", err)
	}
	return fromSocialAccountingModel(&m)
}

// ==================== Plan Store ====================

func (s *Store) CreatePlan(ctx context.Context, p *plan.Plan) error {
	m := toPlanModel(p)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("laborledger/mongo: create plan: %w", err)
	}
	return nil
}

func (s *Store) GetPlan(ctx context.Context, planID id.ID) (*plan.Plan, error) {
	var m planModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": planID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, laborledger.ErrPlanNotFound
		}
		return nil, fmt.Errorf("laborledger/mongo: get plan: %w", err)
	}
	return fromPlanModel(&m)
}

func (s *Store) UpdatePlan(ctx context.Context, p *plan.Plan) error {
	m := toPlanModel(p)
	m.UpdatedAt = now()

	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("laborledger/mongo: update plan: %w", err)
	}
	if res.MatchedCount() == 0 {
		return laborledger.ErrPlanNotFound
	}
	return nil
}

func (s *Store) ListPlans(ctx context.Context, opts plan.ListOpts) ([]*plan.Plan, error) {
	var models []planModel

	filter := bson.M{}
	if !opts.Planner.IsNil() {
		filter["planner"] = opts.Planner.String()
	}
	if !opts.Cooperation.IsNil() {
		filter["cooperation"] = opts.Cooperation.String()
	}
	if opts.ApprovedOnly || opts.ActiveAt != nil || opts.ActiveDuring != nil {
		filter["approval_date"] = bson.M{"$ne": nil}
		filter["rejection_date"] = nil
	}
	if opts.ActiveAt != nil {
		filter["approval_date"] = bson.M{"$ne": nil, "$lte": *opts.ActiveAt}
		filter["expiration_date"] = bson.M{"$gt": *opts.ActiveAt}
	}
	if opts.ActiveDuring != nil {
		filter["approval_date"] = bson.M{"$ne": nil, "$lt": opts.ActiveDuring.End}
		filter["expiration_date"] = bson.M{"$gt": opts.ActiveDuring.Start}
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "created_at", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("laborledger/mongo: list plans: %w", err)
	}

	result := make([]*plan.Plan, len(models))
	for i := range models {
		p, err := fromPlanModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = p
	}
	return result, nil
}

// ==================== Plan Approval Store ====================

func (s *Store) CreatePlanApproval(ctx context.Context, a *plan.Approval) error {
	m := toPlanApprovalModel(a)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("laborledger/mongo: create plan approval: %w", err)
	}
	return nil
}

func (s *Store) GetPlanApproval(ctx context.Context, planID id.ID) (*plan.Approval, error) {
	var m planApprovalModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"plan": planID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, laborledger.ErrPlanApprovalNotFound
		}
		return nil, fmt.Errorf("laborledger/mongo: get plan approval: %w", err)
	}
	return fromPlanApprovalModel(&m)
}

// ==================== Cooperation Store ====================

func (s *Store) CreateCooperation(ctx context.Context, c *cooperation.Cooperation) error {
	m := toCooperationModel(c)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("laborledger/mongo: create cooperation: %w", err)
	}
	return nil
}

func (s *Store) GetCooperation(ctx context.Context, cooperationID id.ID) (*cooperation.Cooperation, error) {
	var m cooperationModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": cooperationID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, laborledger.ErrCooperationNotFound
		}
		return nil, fmt.Errorf("laborledger/mongo: get cooperation: %w", err)
	}
	return fromCooperationModel(&m)
}

// ==================== Coordination Tenure Store ====================

func (s *Store) CreateCoordinationTenure(ctx context.Context, t *cooperation.Tenure) error {
	m := toTenureModel(t)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("laborledger/mongo: create coordination tenure: %w", err)
	}
	return nil
}

func (s *Store) GetCoordinationTenure(ctx context.Context, tenureID id.ID) (*cooperation.Tenure, error) {
	var m tenureModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": tenureID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, laborledger.ErrTenureNotFound
		}
		return nil, fmt.Errorf("laborledger/mongo: get coordination tenure: %w", err)
	}
	return fromTenureModel(&m)
}

func (s *Store) GetCurrentCoordinationTenure(ctx context.Context, cooperationID id.ID) (*cooperation.Tenure, error) {
	var m tenureModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"cooperation": cooperationID.String()}).
		Sort(bson.D{{Key: "start_date", Value: -1}}).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, laborledger.ErrTenureNotFound
		}
		return nil, fmt.Errorf("laborledger/mongo: get current coordination tenure: %w", err)
	}
	return fromTenureModel(&m)
}

// ==================== Transfer Request Store ====================

func (s *Store) CreateCoordinationTransferRequest(ctx context.Context, r *cooperation.TransferRequest) error {
	m := toTransferRequestModel(r)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("laborledger/mongo: create transfer request: %w", err)
	}
	return nil
}

func (s *Store) GetCoordinationTransferRequest(ctx context.Context, requestID id.ID) (*cooperation.TransferRequest, error) {
	var m transferRequestModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": requestID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, laborledger.ErrTransferRequestNotFound
		}
		return nil, fmt.Errorf("laborledger/mongo: get transfer request: %w", err)
	}
	return fromTransferRequestModel(&m)
}

func (s *Store) CloseCoordinationTransferRequest(ctx context.Context, requestID id.ID, transferDate time.Time) error {
	res, err := s.mdb.NewUpdate((*transferRequestModel)(nil)).
		Filter(bson.M{"_id": requestID.String(), "transfer_date": nil}).
		Set("transfer_date", transferDate).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("laborledger/mongo: close transfer request: %w", err)
	}
	if res.MatchedCount() == 0 {
		// Distinguish missing from already closed.
		if _, err := s.GetCoordinationTransferRequest(ctx, requestID); err != nil {
			return err
		}
		return laborledger.ErrTransferRequestClosed
	}
	return nil
}

func (s *Store) ListCoordinationTransferRequests(ctx context.Context, opts cooperation.TransferRequestListOpts) ([]*cooperation.TransferRequest, error) {
	var models []transferRequestModel

	filter := bson.M{}
	if !opts.RequestingTenure.IsNil() {
		filter["requesting_tenure"] = opts.RequestingTenure.String()
	}
	if opts.OpenOnly {
		filter["transfer_date"] = nil
	}

	err := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "request_date", Value: 1}}).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("laborledger/mongo: list transfer requests: %w", err)
	}

	result := make([]*cooperation.TransferRequest, len(models))
	for i := range models {
		r, err := fromTransferRequestModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = r
	}
	return result, nil
}

// ==================== Consumption Store ====================

func (s *Store) CreatePrivateConsumption(ctx context.Context, c *consumption.Private) error {
	m := toPrivateConsumptionModel(c)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("laborledger/mongo: create private consumption: %w", err)
	}
	return nil
}

func (s *Store) ListPrivateConsumptions(ctx context.Context, opts consumption.ListOpts) ([]*consumption.Private, error) {
	var models []privateConsumptionModel

	filter := bson.M{}
	if !opts.Plan.IsNil() {
		filter["plan"] = opts.Plan.String()
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "created_at", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("laborledger/mongo: list private consumptions: %w", err)
	}

	result := make([]*consumption.Private, len(models))
	for i := range models {
		c, err := fromPrivateConsumptionModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = c
	}
	return result, nil
}

func (s *Store) CreateProductiveConsumption(ctx context.Context, c *consumption.Productive) error {
	m := toProductiveConsumptionModel(c)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("laborledger/mongo: create productive consumption: %w", err)
	}
	return nil
}

func (s *Store) ListProductiveConsumptions(ctx context.Context, opts consumption.ListOpts) ([]*consumption.Productive, error) {
	var models []productiveConsumptionModel

	filter := bson.M{}
	if !opts.Plan.IsNil() {
		filter["plan"] = opts.Plan.String()
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "created_at", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("laborledger/mongo: list productive consumptions: %w", err)
	}

	result := make([]*consumption.Productive, len(models))
	for i := range models {
		c, err := fromProductiveConsumptionModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = c
	}
	return result, nil
}

// ==================== Hours Worked Store ====================

func (s *Store) CreateRegisteredHoursWorked(ctx context.Context, r *member.RegisteredHoursWorked) error {
	m := toHoursWorkedModel(r)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("laborledger/mongo: create registered hours worked: %w", err)
	}
	return nil
}

func (s *Store) ListRegisteredHoursWorked(ctx context.Context, companyID id.ID) ([]*member.RegisteredHoursWorked, error) {
	var models []hoursWorkedModel

	err := s.mdb.NewFind(&models).
		Filter(bson.M{"company": companyID.String()}).
		Sort(bson.D{{Key: "registered_on", Value: 1}}).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("laborledger/mongo: list registered hours worked: %w", err)
	}

	result := make([]*member.RegisteredHoursWorked, len(models))
	for i := range models {
		r, err := fromHoursWorkedModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = r
	}
	return result, nil
}

// ==================== Helpers ====================

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoDocuments checks for the driver's no-documents sentinel.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
