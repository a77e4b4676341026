package laborledger

import "github.com/xraph/laborledger/types"

// Re-export common types for convenience so users don't have to import types package.

// ProductionCosts is re-exported from types package.
type ProductionCosts = types.ProductionCosts

// Entity is re-exported from types package.
type Entity = types.Entity

// Re-export ProductionCosts constructors
var (
	Costs     = types.Costs
	ZeroCosts = types.ZeroCosts
)

// Re-export Entity constructor
var NewEntity = types.NewEntity
