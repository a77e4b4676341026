// Package member defines members, the private consumers of the labor ledger.
package member

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xraph/laborledger/id"
	"github.com/xraph/laborledger/types"
)

// Member is a natural person holding a single certificate account.
type Member struct {
	types.Entity
	ID      id.ID  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Account id.ID  `json:"account"`
}

// RegisteredHoursWorked records a wage registration: the member worked
// the given hours at the company and received work certificates scaled
// by the payout factor via the referenced transfers.
type RegisteredHoursWorked struct {
	ID      id.ID           `json:"id"`
	Company id.ID           `json:"company"`
	Member  id.ID           `json:"member"`
	Hours   decimal.Decimal `json:"hours"`
	// TransferOfWorkCertificates credits the member's account from the
	// company's work account.
	TransferOfWorkCertificates id.ID `json:"transfer_of_work_certificates"`
	// TransferOfTaxes moves the non-payable share on to the PSF.
	TransferOfTaxes id.ID     `json:"transfer_of_taxes"`
	RegisteredOn    time.Time `json:"registered_on"`
}
