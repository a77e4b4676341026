// Package cooperation defines cooperations and the records governing who
// coordinates them.
//
// A cooperation is a group of plans selling at one averaged price. Its
// account receives and pays the compensation transfers that balance the
// gap between each plan's own cost and the cooperative price. One company
// at a time coordinates the cooperation; coordination changes hands via
// an explicit transfer-request workflow.
package cooperation

import (
	"time"

	"github.com/xraph/laborledger/id"
	"github.com/xraph/laborledger/types"
)

// Cooperation groups plans under one cooperative price.
type Cooperation struct {
	types.Entity
	ID         id.ID  `json:"id"`
	Name       string `json:"name"`
	Definition string `json:"definition"`
	Account    id.ID  `json:"account"`
}

// Tenure is one entry in the append-only coordination history. The
// tenure with the latest start date is the current coordinator.
type Tenure struct {
	ID          id.ID     `json:"id"`
	Company     id.ID     `json:"company"`
	Cooperation id.ID     `json:"cooperation"`
	StartDate   time.Time `json:"start_date"`
}

// TransferRequest asks a candidate company to take over coordination.
// It is open while TransferDate is nil; acceptance creates a new tenure
// for the candidate and stamps TransferDate.
type TransferRequest struct {
	ID               id.ID      `json:"id"`
	RequestingTenure id.ID      `json:"requesting_tenure"`
	Candidate        id.ID      `json:"candidate"`
	RequestDate      time.Time  `json:"request_date"`
	TransferDate     *time.Time `json:"transfer_date,omitempty"`
}

// IsOpen reports whether the request has not been accepted yet.
func (r *TransferRequest) IsOpen() bool { return r.TransferDate == nil }

// TransferRequestListOpts filters coordination transfer request queries.
type TransferRequestListOpts struct {
	// RequestingTenure restricts to requests issued by the tenure.
	RequestingTenure id.ID
	// OpenOnly restricts to requests without a transfer date.
	OpenOnly bool
}
