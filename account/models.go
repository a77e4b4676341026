// Package account defines labor-hour accounts.
//
// An account stores no balance of its own: the balance is always derived
// from the immutable transfer log (see the engine's Balance method).
package account

import (
	"github.com/xraph/laborledger/id"
	"github.com/xraph/laborledger/types"
)

// Type classifies an account by its owner role.
type Type string

const (
	// TypeMeans is a company's means-of-production account ("p").
	TypeMeans Type = "p"
	// TypeRawMaterial is a company's raw-material account ("r").
	TypeRawMaterial Type = "r"
	// TypeWork is a company's labour account ("a").
	TypeWork Type = "a"
	// TypeProduct is a company's product account ("prd").
	TypeProduct Type = "prd"
	// TypeMember is a member's personal certificate account.
	TypeMember Type = "member"
	// TypePSF is the public sector fund account of social accounting.
	TypePSF Type = "psf"
	// TypeCooperation is a cooperation's compensation account.
	TypeCooperation Type = "cooperation"
)

// Account is an opaque labor-hour account. Immutable once created.
type Account struct {
	types.Entity
	ID   id.ID `json:"id"`
	Type Type  `json:"type"`
}

// New creates an account of the given type with a fresh ID.
func New(t Type) *Account {
	return &Account{
		Entity: types.NewEntity(),
		ID:     id.NewAccountID(),
		Type:   t,
	}
}
