// Package company defines companies and their four labor-hour subaccounts.
package company

import (
	"github.com/xraph/laborledger/id"
	"github.com/xraph/laborledger/types"
)

// Company is a producing entity. It owns one subaccount per cost
// component (means "p", raw materials "r", labour "a") plus a product
// account ("prd") credited when its output is consumed.
type Company struct {
	types.Entity
	ID                 id.ID  `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	MeansAccount       id.ID  `json:"means_account"`
	RawMaterialAccount id.ID  `json:"raw_material_account"`
	WorkAccount        id.ID  `json:"work_account"`
	ProductAccount     id.ID  `json:"product_account"`
}

// Accounts returns all four subaccount IDs.
func (c *Company) Accounts() []id.ID {
	return []id.ID{c.MeansAccount, c.RawMaterialAccount, c.WorkAccount, c.ProductAccount}
}

// OwnsAccount reports whether the given account belongs to the company.
func (c *Company) OwnsAccount(account id.ID) bool {
	for _, a := range c.Accounts() {
		if a.Equal(account) {
			return true
		}
	}
	return false
}
