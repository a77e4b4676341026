// Package transfer defines the immutable double-entry transfer record.
package transfer

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xraph/laborledger/id"
)

// Type classifies a transfer by the operation that created it.
type Type string

const (
	// Plan approval credits for productive plans.
	TypeCreditP Type = "credit_p"
	TypeCreditR Type = "credit_r"
	TypeCreditA Type = "credit_a"

	// Plan approval credits for public-service plans, funded by the PSF.
	TypeCreditPublicP Type = "credit_public_p"
	TypeCreditPublicR Type = "credit_public_r"
	TypeCreditPublicA Type = "credit_public_a"

	// Consumption transfers.
	TypePrivateConsumption     Type = "private_consumption"
	TypeProductiveConsumptionP Type = "productive_consumption_p"
	TypeProductiveConsumptionR Type = "productive_consumption_r"

	// Cooperative price compensation transfers.
	TypeCompensationForCoop    Type = "compensation_for_coop"
	TypeCompensationForCompany Type = "compensation_for_company"

	// Wage registration transfers.
	TypeWorkCertificates Type = "work_certificates"
	TypeTaxes            Type = "taxes"
)

// Transfer is one immutable movement of labor-hour value from a debit
// account to a credit account. The ledger is append-only: transfers are
// never updated or deleted, and every balance is derived from them.
type Transfer struct {
	ID            id.ID           `json:"id"`
	Date          time.Time       `json:"date"`
	DebitAccount  id.ID           `json:"debit_account"`
	CreditAccount id.ID           `json:"credit_account"`
	Value         decimal.Decimal `json:"value"`
	Type          Type            `json:"type"`
}

// VolumeFor returns the signed value of the transfer from the viewpoint
// of the given account: positive when the account is credited, negative
// when it is debited. Zero-valued for unrelated accounts.
func (t *Transfer) VolumeFor(account id.ID) decimal.Decimal {
	switch {
	case t.CreditAccount.Equal(account):
		return t.Value
	case t.DebitAccount.Equal(account):
		return t.Value.Neg()
	default:
		return decimal.Zero
	}
}

// ListOpts filters transfer queries.
type ListOpts struct {
	// Account restricts to transfers debiting or crediting the account.
	Account id.ID
	// Type restricts to a single transfer type when non-empty.
	Type Type
	// Limit and Offset paginate; zero Limit means no limit.
	Limit  int
	Offset int
}
