package laborledger

import "github.com/xraph/laborledger/id"

// ID is the primary identifier type for all labor-ledger entities.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix
