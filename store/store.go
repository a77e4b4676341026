// Package store defines the unified persistence gateway for all
// labor-ledger entities.
package store

import (
	"context"
	"time"

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

// Store is the unified storage interface for all labor-ledger entities.
// Instead of embedding sub-interfaces, we explicitly declare all methods
// to avoid naming conflicts. Every method is an explicit, named query
// with a fixed filter contract; there is no generic query DSL.
//
// Consistency contract: the engine serializes its own mutating
// operations in-process, but a deployment that writes from several
// processes must point them at a backend whose isolation level prevents
// two concurrent balance-checked writes against the same account from
// both succeeding (serializable transactions or a single writer).
type Store interface {
	// Account methods
	CreateAccount(ctx context.Context, a *account.Account) error
	GetAccount(ctx context.Context, accountID id.ID) (*account.Account, error)

	// Transfer methods. Transfers are append-only: there is no update
	// or delete.
	CreateTransfer(ctx context.Context, t *transfer.Transfer) error
	GetTransfer(ctx context.Context, transferID id.ID) (*transfer.Transfer, error)
	ListTransfers(ctx context.Context, opts transfer.ListOpts) ([]*transfer.Transfer, error)

	// Member methods
	CreateMember(ctx context.Context, m *member.Member) error
	GetMember(ctx context.Context, memberID id.ID) (*member.Member, error)

	// Company methods
	CreateCompany(ctx context.Context, c *company.Company) error
	GetCompany(ctx context.Context, companyID id.ID) (*company.Company, error)

	// Company worker roster methods
	AddCompanyWorker(ctx context.Context, companyID, memberID id.ID) error
	IsCompanyWorker(ctx context.Context, companyID, memberID id.ID) (bool, error)

	// Social accounting methods. At most one record exists.
	CreateSocialAccounting(ctx context.Context, sa *social.Accounting) error
	GetSocialAccounting(ctx context.Context) (*social.Accounting, error)

	// Plan methods
	CreatePlan(ctx context.Context, p *plan.Plan) error
	GetPlan(ctx context.Context, planID id.ID) (*plan.Plan, error)
	UpdatePlan(ctx context.Context, p *plan.Plan) error
	ListPlans(ctx context.Context, opts plan.ListOpts) ([]*plan.Plan, error)

	// Plan approval methods
	CreatePlanApproval(ctx context.Context, a *plan.Approval) error
	GetPlanApproval(ctx context.Context, planID id.ID) (*plan.Approval, error)

	// Cooperation methods
	CreateCooperation(ctx context.Context, c *cooperation.Cooperation) error
	GetCooperation(ctx context.Context, cooperationID id.ID) (*cooperation.Cooperation, error)

	// Coordination tenure methods. Tenures are append-only history;
	// the current coordinator is the tenure with the latest start date.
	CreateCoordinationTenure(ctx context.Context, t *cooperation.Tenure) error
	GetCoordinationTenure(ctx context.Context, tenureID id.ID) (*cooperation.Tenure, error)
	GetCurrentCoordinationTenure(ctx context.Context, cooperationID id.ID) (*cooperation.Tenure, error)

	// Coordination transfer request methods. CloseCoordinationTransferRequest
	// stamps the transfer date; it fails with ErrTransferRequestClosed
	// when the request is already closed.
	CreateCoordinationTransferRequest(ctx context.Context, r *cooperation.TransferRequest) error
	GetCoordinationTransferRequest(ctx context.Context, requestID id.ID) (*cooperation.TransferRequest, error)
	CloseCoordinationTransferRequest(ctx context.Context, requestID id.ID, transferDate time.Time) error
	ListCoordinationTransferRequests(ctx context.Context, opts cooperation.TransferRequestListOpts) ([]*cooperation.TransferRequest, error)

	// Consumption methods
	CreatePrivateConsumption(ctx context.Context, c *consumption.Private) error
	ListPrivateConsumptions(ctx context.Context, opts consumption.ListOpts) ([]*consumption.Private, error)
	CreateProductiveConsumption(ctx context.Context, c *consumption.Productive) error
	ListProductiveConsumptions(ctx context.Context, opts consumption.ListOpts) ([]*consumption.Productive, error)

	// Registered hours worked methods
	CreateRegisteredHoursWorked(ctx context.Context, r *member.RegisteredHoursWorked) error
	ListRegisteredHoursWorked(ctx context.Context, companyID id.ID) ([]*member.RegisteredHoursWorked, error)

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
