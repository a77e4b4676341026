// Package social defines the social accounting record.
//
// Social accounting owns the public sector fund (PSF) account, which is
// debited to fund public-service plans and credited by the taxes share
// of wage registrations. Exactly one record exists per ledger; the
// engine seeds it on Start and passes it explicitly wherever needed.
package social

import (
	"github.com/xraph/laborledger/id"
	"github.com/xraph/laborledger/types"
)

// Accounting is the central social accounting record.
type Accounting struct {
	types.Entity
	ID         id.ID `json:"id"`
	AccountPSF id.ID `json:"account_psf"`
}
