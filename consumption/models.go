// Package consumption defines the records created when plan output is
// consumed.
package consumption

import (
	"github.com/xraph/laborledger/id"
	"github.com/xraph/laborledger/types"
)

// Type is the category of a productive consumption.
type Type string

const (
	// TypeMeansOfProduction books the consumption against the consumer's
	// means account ("p").
	TypeMeansOfProduction Type = "means_of_production"
	// TypeRawMaterials books the consumption against the consumer's
	// raw-material account ("r").
	TypeRawMaterials Type = "raw_materials"
)

// Private records a member consuming plan output. Created atomically
// with its transfers; never mutated.
type Private struct {
	types.Entity
	ID     id.ID `json:"id"`
	Plan   id.ID `json:"plan"`
	Amount int64 `json:"amount"`
	// TransferOfConsumption is the main consumption transfer.
	TransferOfConsumption id.ID `json:"transfer_of_consumption"`
	// TransferOfCompensation is set when the consumed plan cooperates
	// and its price diverges from the cooperative price.
	TransferOfCompensation id.ID `json:"transfer_of_compensation,omitzero"`
}

// Productive records a company consuming plan output as means of
// production or raw materials.
type Productive struct {
	types.Entity
	ID                     id.ID `json:"id"`
	Plan                   id.ID `json:"plan"`
	Amount                 int64 `json:"amount"`
	Type                   Type  `json:"type"`
	TransferOfConsumption  id.ID `json:"transfer_of_consumption"`
	TransferOfCompensation id.ID `json:"transfer_of_compensation,omitzero"`
}

// ListOpts filters consumption queries.
type ListOpts struct {
	// Plan restricts to consumptions of the plan.
	Plan id.ID
	// Limit and Offset paginate; zero Limit means no limit.
	Limit  int
	Offset int
}
