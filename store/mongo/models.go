package mongo

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/xraph/grove"

	"github.com/xraph/laborledger/account"
	"github.com/xraph/laborledger/company"
	"github.com/xraph/laborledger/consumption"
	"github.com/xraph/laborledger/cooperation"
	"github.com/xraph/laborledger/id"
	"github.com/xraph/laborledger/member"
	"github.com/xraph/laborledger/plan"
	"github.com/xraph/laborledger/social"
	"github.com/xraph/laborledger/transfer"
	"github.com/xraph/laborledger/types"
)

// Decimal values are stored as TEXT to keep labor-hour arithmetic exact
// end to end; balances are always recomputed from the transfer log, so
// the database never has to sum them.

// ==================== Account models ====================

type accountModel struct {
	grove.BaseModel `grove:"table:laborledger_accounts"`

	ID        string    `grove:"id,pk" bson:"_id"`
	Type      string    `grove:"type" bson:"type"`
	CreatedAt time.Time `grove:"created_at" bson:"created_at"`
	UpdatedAt time.Time `grove:"updated_at" bson:"updated_at"`
}

func toAccountModel(a *account.Account) *accountModel {
	return &accountModel{
		ID:        a.ID.String(),
		Type:      string(a.Type),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func fromAccountModel(m *accountModel) (*account.Account, error) {
	accountID, err := id.ParseAccountID(m.ID)
	if err != nil {
		return nil, err
	}

	return &account.Account{
		Entity: types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:     accountID,
		Type:   account.Type(m.Type),
	}, nil
}

// ==================== Transfer models ====================

type transferModel struct {
	grove.BaseModel `grove:"table:laborledger_transfers"`

	ID            string    `grove:"id,pk" bson:"_id"`
	Date          time.Time `grove:"date" bson:"date"`
	DebitAccount  string    `grove:"debit_account" bson:"debit_account"`
	CreditAccount string    `grove:"credit_account" bson:"credit_account"`
	Value         string    `grove:"value" bson:"value"`
	Type          string    `grove:"type" bson:"type"`
}

func toTransferModel(t *transfer.Transfer) *transferModel {
	return &transferModel{
		ID:            t.ID.String(),
		Date:          t.Date,
		DebitAccount:  t.DebitAccount.String(),
		CreditAccount: t.CreditAccount.String(),
		Value:         t.Value.String(),
		Type:          string(t.Type),
	}
}

func fromTransferModel(m *transferModel) (*transfer.Transfer, error) {
	transferID, err := id.ParseTransferID(m.ID)
	if err != nil {
		return nil, err
	}
	debit, err := id.ParseAccountID(m.DebitAccount)
	if err != nil {
		return nil, err
	}
	credit, err := id.ParseAccountID(m.CreditAccount)
	if err != nil {
		return nil, err
	}
	value, err := decimal.NewFromString(m.Value)
	if err != nil {
		return nil, err
	}

	return &transfer.Transfer{
		ID:            transferID,
		Date:          m.Date,
		DebitAccount:  debit,
		CreditAccount: credit,
		Value:         value,
		Type:          transfer.Type(m.Type),
	}, nil
}

// ==================== Member models ====================

type memberModel struct {
	grove.BaseModel `grove:"table:laborledger_members"`

	ID        string    `grove:"id,pk" bson:"_id"`
	Name      string    `grove:"name" bson:"name"`
	Email     string    `grove:"email" bson:"email"`
	Account   string    `grove:"account" bson:"account"`
	CreatedAt time.Time `grove:"created_at" bson:"created_at"`
	UpdatedAt time.Time `grove:"updated_at" bson:"updated_at"`
}

func toMemberModel(m *member.Member) *memberModel {
	return &memberModel{
		ID:        m.ID.String(),
		Name:      m.Name,
		Email:     m.Email,
		Account:   m.Account.String(),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromMemberModel(m *memberModel) (*member.Member, error) {
	memberID, err := id.ParseMemberID(m.ID)
	if err != nil {
		return nil, err
	}
	accountID, err := id.ParseAccountID(m.Account)
	if err != nil {
		return nil, err
	}

	return &member.Member{
		Entity:  types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:      memberID,
		Name:    m.Name,
		Email:   m.Email,
		Account: accountID,
	}, nil
}

// ==================== Company models ====================

type companyModel struct {
	grove.BaseModel `grove:"table:laborledger_companies"`

	ID                 string    `grove:"id,pk" bson:"_id"`
	Name               string    `grove:"name" bson:"name"`
	Email              string    `grove:"email" bson:"email"`
	MeansAccount       string    `grove:"means_account" bson:"means_account"`
	RawMaterialAccount string    `grove:"raw_material_account" bson:"raw_material_account"`
	WorkAccount        string    `grove:"work_account" bson:"work_account"`
	ProductAccount     string    `grove:"product_account" bson:"product_account"`
	CreatedAt          time.Time `grove:"created_at" bson:"created_at"`
	UpdatedAt          time.Time `grove:"updated_at" bson:"updated_at"`
}

func toCompanyModel(c *company.Company) *companyModel {
	return &companyModel{
		ID:                 c.ID.String(),
		Name:               c.Name,
		Email:              c.Email,
		MeansAccount:       c.MeansAccount.String(),
		RawMaterialAccount: c.RawMaterialAccount.String(),
		WorkAccount:        c.WorkAccount.String(),
		ProductAccount:     c.ProductAccount.String(),
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func fromCompanyModel(m *companyModel) (*company.Company, error) {
	companyID, err := id.ParseCompanyID(m.ID)
	if err != nil {
		return nil, err
	}
	means, err := id.ParseAccountID(m.MeansAccount)
	if err != nil {
		return nil, err
	}
	raw, err := id.ParseAccountID(m.RawMaterialAccount)
	if err != nil {
		return nil, err
	}
	work, err := id.ParseAccountID(m.WorkAccount)
	if err != nil {
		return nil, err
	}
	product, err := id.ParseAccountID(m.ProductAccount)
	if err != nil {
		return nil, err
	}

	return &company.Company{
		Entity:             types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:                 companyID,
		Name:               m.Name,
		Email:              m.Email,
		MeansAccount:       means,
		RawMaterialAccount: raw,
		WorkAccount:        work,
		ProductAccount:     product,
	}, nil
}

// ==================== Worker roster models ====================

type companyWorkerModel struct {
	grove.BaseModel `grove:"table:laborledger_company_workers"`

	// ID is "company:member" so the pair stays unique per document.
	ID      string    `grove:"id,pk" bson:"_id"`
	Company string    `grove:"company" bson:"company"`
	Member  string    `grove:"member" bson:"member"`
	AddedAt time.Time `grove:"added_at" bson:"added_at"`
}

func workerKey(companyID, memberID string) string {
	return companyID + ":" + memberID
}

// ==================== Social accounting models ====================

type socialAccountingModel struct {
	grove.BaseModel `grove:"table:laborledger_social_accounting"`

	ID         string    `grove:"id,pk" bson:"_id"`
	AccountPSF string    `grove:"account_psf" bson:"account_psf"`
	CreatedAt  time.Time `grove:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `grove:"updated_at" bson:"updated_at"`
}

func toSocialAccountingModel(sa *social.Accounting) *socialAccountingModel {
	return &socialAccountingModel{
		ID:         sa.ID.String(),
		AccountPSF: sa.AccountPSF.String(),
		CreatedAt:  sa.CreatedAt,
		UpdatedAt:  sa.UpdatedAt,
	}
}

func fromSocialAccountingModel(m *socialAccountingModel) (*social.Accounting, error) {
	saID, err := id.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	psf, err := id.ParseAccountID(m.AccountPSF)
	if err != nil {
		return nil, err
	}

	return &social.Accounting{
		Entity:     types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:         saID,
		AccountPSF: psf,
	}, nil
}

// ==================== Plan models ====================

type planModel struct {
	grove.BaseModel `grove:"table:laborledger_plans"`

	ID                   string     `grove:"id,pk" bson:"_id"`
	Planner              string     `grove:"planner" bson:"planner"`
	CostLabour           string     `grove:"cost_labour" bson:"cost_labour"`
	CostResource         string     `grove:"cost_resource" bson:"cost_resource"`
	CostMeans            string     `grove:"cost_means" bson:"cost_means"`
	ProductName          string     `grove:"product_name" bson:"product_name"`
	Unit                 string     `grove:"unit" bson:"unit"`
	Amount               int64      `grove:"amount" bson:"amount"`
	Description          string     `grove:"description" bson:"description"`
	TimeframeDays        int        `grove:"timeframe_days" bson:"timeframe_days"`
	IsPublicService      bool       `grove:"is_public_service" bson:"is_public_service"`
	ApprovalDate         *time.Time `grove:"approval_date" bson:"approval_date"`
	RejectionDate        *time.Time `grove:"rejection_date" bson:"rejection_date"`
	ExpirationDate       *time.Time `grove:"expiration_date" bson:"expiration_date"`
	Cooperation          string     `grove:"cooperation" bson:"cooperation"`
	RequestedCooperation string     `grove:"requested_cooperation" bson:"requested_cooperation"`
	Hidden               bool       `grove:"hidden" bson:"hidden"`
	CreatedAt            time.Time  `grove:"created_at" bson:"created_at"`
	UpdatedAt            time.Time  `grove:"updated_at" bson:"updated_at"`
}

func toPlanModel(p *plan.Plan) *planModel {
	return &planModel{
		ID:                   p.ID.String(),
		Planner:              p.Planner.String(),
		CostLabour:           p.Costs.Labour.String(),
		CostResource:         p.Costs.Resource.String(),
		CostMeans:            p.Costs.Means.String(),
		ProductName:          p.ProductName,
		Unit:                 p.Unit,
		Amount:               p.Amount,
		Description:          p.Description,
		TimeframeDays:        p.TimeframeDays,
		IsPublicService:      p.IsPublicService,
		ApprovalDate:         p.ApprovalDate,
		RejectionDate:        p.RejectionDate,
		ExpirationDate:       p.ExpirationDate,
		Cooperation:          p.Cooperation.String(),
		RequestedCooperation: p.RequestedCooperation.String(),
		Hidden:               p.Hidden,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func fromPlanModel(m *planModel) (*plan.Plan, error) {
	planID, err := id.ParsePlanID(m.ID)
	if err != nil {
		return nil, err
	}
	planner, err := id.ParseCompanyID(m.Planner)
	if err != nil {
		return nil, err
	}
	labour, err := decimal.NewFromString(m.CostLabour)
	if err != nil {
		return nil, err
	}
	resource, err := decimal.NewFromString(m.CostResource)
	if err != nil {
		return nil, err
	}
	means, err := decimal.NewFromString(m.CostMeans)
	if err != nil {
		return nil, err
	}
	coop, err := parseOptionalID(m.Cooperation, id.ParseCooperationID)
	if err != nil {
		return nil, err
	}
	requested, err := parseOptionalID(m.RequestedCooperation, id.ParseCooperationID)
	if err != nil {
		return nil, err
	}

	return &plan.Plan{
		Entity:               types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:                   planID,
		Planner:              planner,
		Costs:                types.ProductionCosts{Labour: labour, Resource: resource, Means: means},
		ProductName:          m.ProductName,
		Unit:                 m.Unit,
		Amount:               m.Amount,
		Description:          m.Description,
		TimeframeDays:        m.TimeframeDays,
		IsPublicService:      m.IsPublicService,
		ApprovalDate:         m.ApprovalDate,
		RejectionDate:        m.RejectionDate,
		ExpirationDate:       m.ExpirationDate,
		Cooperation:          coop,
		RequestedCooperation: requested,
		Hidden:               m.Hidden,
	}, nil
}

// ==================== Plan approval models ====================

type planApprovalModel struct {
	grove.BaseModel `grove:"table:laborledger_plan_approvals"`

	ID              string    `grove:"id,pk" bson:"_id"`
	Plan            string    `grove:"plan" bson:"plan"`
	Date            time.Time `grove:"date" bson:"date"`
	TransferCreditP string    `grove:"transfer_credit_p" bson:"transfer_credit_p"`
	TransferCreditR string    `grove:"transfer_credit_r" bson:"transfer_credit_r"`
	TransferCreditA string    `grove:"transfer_credit_a" bson:"transfer_credit_a"`
}

func toPlanApprovalModel(a *plan.Approval) *planApprovalModel {
	return &planApprovalModel{
		ID:              a.ID.String(),
		Plan:            a.Plan.String(),
		Date:            a.Date,
		TransferCreditP: a.TransferCreditP.String(),
		TransferCreditR: a.TransferCreditR.String(),
		TransferCreditA: a.TransferCreditA.String(),
	}
}

func fromPlanApprovalModel(m *planApprovalModel) (*plan.Approval, error) {
	approvalID, err := id.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	planID, err := id.ParsePlanID(m.Plan)
	if err != nil {
		return nil, err
	}
	tp, err := id.ParseTransferID(m.TransferCreditP)
	if err != nil {
		return nil, err
	}
	tr, err := id.ParseTransferID(m.TransferCreditR)
	if err != nil {
		return nil, err
	}
	ta, err := id.ParseTransferID(m.TransferCreditA)
	if err != nil {
		return nil, err
	}

	return &plan.Approval{
		ID:              approvalID,
		Plan:            planID,
		Date:            m.Date,
		TransferCreditP: tp,
		TransferCreditR: tr,
		TransferCreditA: ta,
	}, nil
}

// ==================== Cooperation models ====================

type cooperationModel struct {
	grove.BaseModel `grove:"table:laborledger_cooperations"`

	ID         string    `grove:"id,pk" bson:"_id"`
	Name       string    `grove:"name" bson:"name"`
	Definition string    `grove:"definition" bson:"definition"`
	Account    string    `grove:"account" bson:"account"`
	CreatedAt  time.Time `grove:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `grove:"updated_at" bson:"updated_at"`
}

func toCooperationModel(c *cooperation.Cooperation) *cooperationModel {
	return &cooperationModel{
		ID:         c.ID.String(),
		Name:       c.Name,
		Definition: c.Definition,
		Account:    c.Account.String(),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func fromCooperationModel(m *cooperationModel) (*cooperation.Cooperation, error) {
	coopID, err := id.ParseCooperationID(m.ID)
	if err != nil {
		return nil, err
	}
	accountID, err := id.ParseAccountID(m.Account)
	if err != nil {
		return nil, err
	}

	return &cooperation.Cooperation{
		Entity:     types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:         coopID,
		Name:       m.Name,
		Definition: m.Definition,
		Account:    accountID,
	}, nil
}

// ==================== Coordination tenure models ====================

type tenureModel struct {
	grove.BaseModel `grove:"table:laborledger_coordination_tenures"`

	ID          string    `grove:"id,pk" bson:"_id"`
	Company     string    `grove:"company" bson:"company"`
	Cooperation string    `grove:"cooperation" bson:"cooperation"`
	StartDate   time.Time `grove:"start_date" bson:"start_date"`
}

func toTenureModel(t *cooperation.Tenure) *tenureModel {
	return &tenureModel{
		ID:          t.ID.String(),
		Company:     t.Company.String(),
		Cooperation: t.Cooperation.String(),
		StartDate:   t.StartDate,
	}
}

func fromTenureModel(m *tenureModel) (*cooperation.Tenure, error) {
	tenureID, err := id.ParseTenureID(m.ID)
	if err != nil {
		return nil, err
	}
	companyID, err := id.ParseCompanyID(m.Company)
	if err != nil {
		return nil, err
	}
	coopID, err := id.ParseCooperationID(m.Cooperation)
	if err != nil {
		return nil, err
	}

	return &cooperation.Tenure{
		ID:          tenureID,
		Company:     companyID,
		Cooperation: coopID,
		StartDate:   m.StartDate,
	}, nil
}

// ==================== Transfer request models ====================

type transferRequestModel struct {
	grove.BaseModel `grove:"table:laborledger_coordination_transfer_requests"`

	ID               string     `grove:"id,pk" bson:"_id"`
	RequestingTenure string     `grove:"requesting_tenure" bson:"requesting_tenure"`
	Candidate        string     `grove:"candidate" bson:"candidate"`
	RequestDate      time.Time  `grove:"request_date" bson:"request_date"`
	TransferDate     *time.Time `grove:"transfer_date" bson:"transfer_date"`
}

func toTransferRequestModel(r *cooperation.TransferRequest) *transferRequestModel {
	return &transferRequestModel{
		ID:               r.ID.String(),
		RequestingTenure: r.RequestingTenure.String(),
		Candidate:        r.Candidate.String(),
		RequestDate:      r.RequestDate,
		TransferDate:     r.TransferDate,
	}
}

func fromTransferRequestModel(m *transferRequestModel) (*cooperation.TransferRequest, error) {
	requestID, err := id.ParseTransferRequestID(m.ID)
	if err != nil {
		return nil, err
	}
	tenureID, err := id.ParseTenureID(m.RequestingTenure)
	if err != nil {
		return nil, err
	}
	candidate, err := id.ParseCompanyID(m.Candidate)
	if err != nil {
		return nil, err
	}

	return &cooperation.TransferRequest{
		ID:               requestID,
		RequestingTenure: tenureID,
		Candidate:        candidate,
		RequestDate:      m.RequestDate,
		TransferDate:     m.TransferDate,
	}, nil
}

// ==================== Consumption models ====================

type privateConsumptionModel struct {
	grove.BaseModel `grove:"table:laborledger_private_consumptions"`

	ID                     string    `grove:"id,pk" bson:"_id"`
	Plan                   string    `grove:"plan" bson:"plan"`
	Amount                 int64     `grove:"amount" bson:"amount"`
	TransferOfConsumption  string    `grove:"transfer_of_consumption" bson:"transfer_of_consumption"`
	TransferOfCompensation string    `grove:"transfer_of_compensation" bson:"transfer_of_compensation"`
	CreatedAt              time.Time `grove:"created_at" bson:"created_at"`
	UpdatedAt              time.Time `grove:"updated_at" bson:"updated_at"`
}

func toPrivateConsumptionModel(c *consumption.Private) *privateConsumptionModel {
	return &privateConsumptionModel{
		ID:                     c.ID.String(),
		Plan:                   c.Plan.String(),
		Amount:                 c.Amount,
		TransferOfConsumption:  c.TransferOfConsumption.String(),
		TransferOfCompensation: c.TransferOfCompensation.String(),
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
	}
}

func fromPrivateConsumptionModel(m *privateConsumptionModel) (*consumption.Private, error) {
	consumptionID, err := id.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	planID, err := id.ParsePlanID(m.Plan)
	if err != nil {
		return nil, err
	}
	main, err := id.ParseTransferID(m.TransferOfConsumption)
	if err != nil {
		return nil, err
	}
	compensation, err := parseOptionalID(m.TransferOfCompensation, id.ParseTransferID)
	if err != nil {
		return nil, err
	}

	return &consumption.Private{
		Entity:                 types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:                     consumptionID,
		Plan:                   planID,
		Amount:                 m.Amount,
		TransferOfConsumption:  main,
		TransferOfCompensation: compensation,
	}, nil
}

type productiveConsumptionModel struct {
	grove.BaseModel `grove:"table:laborledger_productive_consumptions"`

	ID                     string    `grove:"id,pk" bson:"_id"`
	Plan                   string    `grove:"plan" bson:"plan"`
	Amount                 int64     `grove:"amount" bson:"amount"`
	Type                   string    `grove:"type" bson:"type"`
	TransferOfConsumption  string    `grove:"transfer_of_consumption" bson:"transfer_of_consumption"`
	TransferOfCompensation string    `grove:"transfer_of_compensation" bson:"transfer_of_compensation"`
	CreatedAt              time.Time `grove:"created_at" bson:"created_at"`
	UpdatedAt              time.Time `grove:"updated_at" bson:"updated_at"`
}

func toProductiveConsumptionModel(c *consumption.Productive) *productiveConsumptionModel {
	return &productiveConsumptionModel{
		ID:                     c.ID.String(),
		Plan:                   c.Plan.String(),
		Amount:                 c.Amount,
		Type:                   string(c.Type),
		TransferOfConsumption:  c.TransferOfConsumption.String(),
		TransferOfCompensation: c.TransferOfCompensation.String(),
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
	}
}

func fromProductiveConsumptionModel(m *productiveConsumptionModel) (*consumption.Productive, error) {
	consumptionID, err := id.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	planID, err := id.ParsePlanID(m.Plan)
	if err != nil {
		return nil, err
	}
	main, err := id.ParseTransferID(m.TransferOfConsumption)
	if err != nil {
		return nil, err
	}
	compensation, err := parseOptionalID(m.TransferOfCompensation, id.ParseTransferID)
	if err != nil {
		return nil, err
	}

	return &consumption.Productive{
		Entity:                 types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:                     consumptionID,
		Plan:                   planID,
		Amount:                 m.Amount,
		Type:                   consumption.Type(m.Type),
		TransferOfConsumption:  main,
		TransferOfCompensation: compensation,
	}, nil
}

// ==================== Hours worked models ====================

type hoursWorkedModel struct {
	grove.BaseModel `grove:"table:laborledger_registered_hours_worked"`

	ID                         string    `grove:"id,pk" bson:"_id"`
	Company                    string    `grove:"company" bson:"company"`
	Member                     string    `grove:"member" bson:"member"`
	Hours                      string    `grove:"hours" bson:"hours"`
	TransferOfWorkCertificates string    `grove:"transfer_of_work_certificates" bson:"transfer_of_work_certificates"`
	TransferOfTaxes            string    `grove:"transfer_of_taxes" bson:"transfer_of_taxes"`
	RegisteredOn               time.Time `grove:"registered_on" bson:"registered_on"`
}

func toHoursWorkedModel(r *member.RegisteredHoursWorked) *hoursWorkedModel {
	return &hoursWorkedModel{
		ID:                         r.ID.String(),
		Company:                    r.Company.String(),
		Member:                     r.Member.String(),
		Hours:                      r.Hours.String(),
		TransferOfWorkCertificates: r.TransferOfWorkCertificates.String(),
		TransferOfTaxes:            r.TransferOfTaxes.String(),
		RegisteredOn:               r.RegisteredOn,
	}
}

func fromHoursWorkedModel(m *hoursWorkedModel) (*member.RegisteredHoursWorked, error) {
	recordID, err := id.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	companyID, err := id.ParseCompanyID(m.Company)
	if err != nil {
		return nil, err
	}
	memberID, err := id.ParseMemberID(m.Member)
	if err != nil {
		return nil, err
	}
	hours, err := decimal.NewFromString(m.Hours)
	if err != nil {
		return nil, err
	}
	certificates, err := id.ParseTransferID(m.TransferOfWorkCertificates)
	if err != nil {
		return nil, err
	}
	taxes, err := id.ParseTransferID(m.TransferOfTaxes)
	if err != nil {
		return nil, err
	}

	return &member.RegisteredHoursWorked{
		ID:                         recordID,
		Company:                    companyID,
		Member:                     memberID,
		Hours:                      hours,
		TransferOfWorkCertificates: certificates,
		TransferOfTaxes:            taxes,
		RegisteredOn:               m.RegisteredOn,
	}, nil
}

// parseOptionalID parses an ID column that may be empty.
func parseOptionalID(s string, parse func(string) (id.ID, error)) (id.ID, error) {
	if s == "" {
		return id.Nil, nil
	}
	return parse(s)
}
