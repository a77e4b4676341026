// Package postgres implements the labor-ledger store on PostgreSQL via
// the Grove ORM.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/pgdriver"
	"github.com/xraph/grove/migrate"

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

// compile-time interface check
var _ llstore.Store = (*Store)(nil)

// Store implements store.Store using PostgreSQL via Grove ORM.
type Store struct {
	db *grove.DB
	pg *pgdriver.PgDB
}

// New creates a new PostgreSQL store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db: db,
		pg: pgdriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.pg)
	if err != nil {
		return fmt.Errorf("laborledger/postgres: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("laborledger/postgres: migration failed: %w", err)
	}
	return nil
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
	_, err := s.pg.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetAccount(ctx context.Context, accountID id.ID) (*account.Account, error) {
	m := new(accountModel)
	err := s.pg.NewSelect(m).
		Where("id = $1", accountID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, laborledger.ErrAccountNotFound
		}
		return nil, err
	}
	return fromAccountModel(m)
}

// ==================== Transfer Store ====================

func (s *Store) CreateTransfer(ctx context.Context, t *transfer.Transfer) error {
	m := toTransferModel(t)
	_, err := s.pg.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetTransfer(ctx context.Context, transferID id.ID) (*transfer.Transfer, error) {
	m := new(transferModel)
	err := s.pg.NewSelect(m).
		Where("id = $1", transferID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, laborledger.ErrTransferNotFound
		}
		return nil, err
	}
	return fromTransferModel(m)
}

func (s *Store) ListTransfers(ctx context.Context, opts transfer.ListOpts) ([]*transfer.Transfer, error) {
	var models []transferModel
	q := s.pg.NewSelect(&models)

	argIdx := 0
	if !opts.Account.IsNil() {
		argIdx++
		q = q.Where(fmt.Sprintf("(debit_account = $%d OR credit_account = $%d)", argIdx, argIdx), opts.Account.String())
	}
	if opts.Type != "" {
		argIdx++
		q = q.Where(fmt.Sprintf("type = $%d", argIdx), string(opts.Type))
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("date ASC, id ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
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
	_, err := s.pg.NewInsert(model).Exec(ctx)
	return err
}

func (s *Store) GetMember(ctx context.Context, memberID id.ID) (*member.Member, error) {
	m := new(memberModel)
	err := s.pg.NewSelect(m).
		Where("id = $1", memberID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, laborledger.ErrMemberNotFound
		}
		return nil, err
	}
	return fromMemberModel(m)
}

// ==================== Company Store ====================

func (s *Store) CreateCompany(ctx context.Context, c *company.Company) error {
	m := toCompanyModel(c)
	_, err := s.pg.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetCompany(ctx context.Context, companyID id.ID) (*company.Company, error) {
	m := new(companyModel)
	err := s.pg.NewSelect(m).
		Where("id = $1", companyID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, laborledger.ErrCompanyNotFound
		}
		return nil, err
	}
	return fromCompanyModel(m)
}

// ==================== Worker roster ====================

func (s *Store) AddCompanyWorker(ctx context.Context, companyID, memberID id.ID) error {
	m := &companyWorkerModel{
		Company: companyID.String(),
		Member:  memberID.String(),
		AddedAt: now(),
	}
	_, err := s.pg.NewInsert(m).
		OnConflict("(company, member) DO NOTHING").
		Exec(ctx)
	return err
}

func (s *Store) IsCompanyWorker(ctx context.Context, companyID, memberID id.ID) (bool, error) {
	m := new(companyWorkerModel)
	err := s.pg.NewSelect(m).
		Where("company = $1", companyID.String()).
		Where("member = $2", memberID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ==================== Social Accounting Store ====================

func (s *Store) CreateSocialAccounting(ctx context.Context, sa *social.Accounting) error {
	m := toSocialAccountingModel(sa)
	_, err := s.pg.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetSocialAccounting(ctx context.Context) (*social.Accounting, error) {
	m := new(socialAccountingModel)
	err := s.pg.NewSelect(m).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, laborledger.ErrSocialAccountingNotFound
		}
		return nil, err
	}
	return fromSocialAccountingModel(m)
}

// ==================== Plan Store ====================

func (s *Store) CreatePlan(ctx context.Context, p *plan.Plan) error {
	m := toPlanModel(p)
	_, err := s.pg.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetPlan(ctx context.Context, planID id.ID) (*plan.Plan, error) {
	m := new(planModel)
	err := s.pg.NewSelect(m).
		Where("id = $1", planID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, laborledger.ErrPlanNotFound
		}
		return nil, err
	}
	return fromPlanModel(m)
}

func (s *Store) UpdatePlan(ctx context.Context, p *plan.Plan) error {
	m := toPlanModel(p)
	m.UpdatedAt = now()
	res, err := s.pg.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return laborledger.ErrPlanNotFound
	}
	return nil
}

func (s *Store) ListPlans(ctx context.Context, opts plan.ListOpts) ([]*plan.Plan, error) {
	var models []planModel
	q := s.pg.NewSelect(&models)

	argIdx := 0
	if !opts.Planner.IsNil() {
		argIdx++
		q = q.Where(fmt.Sprintf("planner = $%d", argIdx), opts.Planner.String())
	}
	if !opts.Cooperation.IsNil() {
		argIdx++
		q = q.Where(fmt.Sprintf("cooperation = $%d", argIdx), opts.Cooperation.String())
	}
	if opts.ApprovedOnly {
		q = q.Where("approval_date IS NOT NULL").Where("rejection_date IS NULL")
	}
	if opts.ActiveAt != nil {
		q = q.Where("approval_date IS NOT NULL").Where("rejection_date IS NULL")
		argIdx++
		q = q.Where(fmt.Sprintf("approval_date <= $%d", argIdx), *opts.ActiveAt)
		argIdx++
		q = q.Where(fmt.Sprintf("expiration_date > $%d", argIdx), *opts.ActiveAt)
	}
	if opts.ActiveDuring != nil {
		q = q.Where("approval_date IS NOT NULL").Where("rejection_date IS NULL")
		argIdx++
		q = q.Where(fmt.Sprintf("approval_date < $%d", argIdx), opts.ActiveDuring.End)
		argIdx++
		q = q.Where(fmt.Sprintf("expiration_date > $%d", argIdx), opts.ActiveDuring.Start)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("created_at ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
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
	_, err := s.pg.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetPlanApproval(ctx context.Context, planID id.ID) (*plan.Approval, error) {
	m := new(planApprovalModel)
	err := s.pg.NewSelect(m).
		Where("plan = $1", planID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, laborledger.ErrPlanApprovalNotFound
		}
		return nil, err
	}
	return fromPlanApprovalModel(m)
}

// ==================== Cooperation Store ====================

func (s *Store) CreateCooperation(ctx context.Context, c *cooperation.Cooperation) error {
	m := toCooperationModel(c)
	_, err := s.pg.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetCooperation(ctx context.Context, cooperationID id.ID) (*cooperation.Cooperation, error) {
	m := new(cooperationModel)
	err := s.pg.NewSelect(m).
		Where("id = $1", cooperationID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, laborledger.ErrCooperationNotFound
		}
		return nil, err
	}
	return fromCooperationModel(m)
}

// ==================== Coordination Tenure Store ====================

func (s *Store) CreateCoordinationTenure(ctx context.Context, t *cooperation.Tenure) error {
	m := toTenureModel(t)
	_, err := s.pg.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetCoordinationTenure(ctx context.Context, tenureID id.ID) (*cooperation.Tenure, error) {
	m := new(tenureModel)
	err := s.pg.NewSelect(m).
		Where("id = $1", tenureID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, laborledger.ErrTenureNotFound
		}
		return nil, err
	}
	return fromTenureModel(m)
}

func (s *Store) GetCurrentCoordinationTenure(ctx context.Context, cooperationID id.ID) (*cooperation.Tenure, error) {
	m := new(tenureModel)
	err := s.pg.NewSelect(m).
		Where("cooperation = $1", cooperationID.String()).
		OrderExpr("start_date DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, laborledger.ErrTenureNotFound
		}
		return nil, err
	}
	return fromTenureModel(m)
}

// ==================== Transfer Request Store ====================

func (s *Store) CreateCoordinationTransferRequest(ctx context.Context, r *cooperation.TransferRequest) error {
	m := toTransferRequestModel(r)
	_, err := s.pg.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetCoordinationTransferRequest(ctx context.Context, requestID id.ID) (*cooperation.TransferRequest, error) {
	m := new(transferRequestModel)
	err := s.pg.NewSelect(m).
		Where("id = $1", requestID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, laborledger.ErrTransferRequestNotFound
		}
		return nil, err
	}
	return fromTransferRequestModel(m)
}

func (s *Store) CloseCoordinationTransferRequest(ctx context.Context, requestID id.ID, transferDate time.Time) error {
	res, err := s.pg.NewUpdate((*transferRequestModel)(nil)).
		Set("transfer_date = $1", transferDate).
		Where("id = $2", requestID.String()).
		Where("transfer_date IS NULL").
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
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
	q := s.pg.NewSelect(&models)

	argIdx := 0
	if !opts.RequestingTenure.IsNil() {
		argIdx++
		q = q.Where(fmt.Sprintf("requesting_tenure = $%d", argIdx), opts.RequestingTenure.String())
	}
	if opts.OpenOnly {
		q = q.Where("transfer_date IS NULL")
	}
	q = q.OrderExpr("request_date ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
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
	_, err := s.pg.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) ListPrivateConsumptions(ctx context.Context, opts consumption.ListOpts) ([]*consumption.Private, error) {
	var models []privateConsumptionModel
	q := s.pg.NewSelect(&models)

	if !opts.Plan.IsNil() {
		q = q.Where("plan = $1", opts.Plan.String())
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("created_at ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
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
	_, err := s.pg.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) ListProductiveConsumptions(ctx context.Context, opts consumption.ListOpts) ([]*consumption.Productive, error) {
	var models []productiveConsumptionModel
	q := s.pg.NewSelect(&models)

	if !opts.Plan.IsNil() {
		q = q.Where("plan = $1", opts.Plan.String())
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("created_at ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
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
	_, err := s.pg.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) ListRegisteredHoursWorked(ctx context.Context, companyID id.ID) ([]*member.RegisteredHoursWorked, error) {
	var models []hoursWorkedModel
	err := s.pg.NewSelect(&models).
		Where("company = $1", companyID.String()).
		OrderExpr("registered_on ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
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

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
