// Package id defines TypeID-based identity types for all labor-ledger entities.
//
// Every entity uses a single ID struct with a prefix that identifies the
// entity type. IDs are K-sortable (UUIDv7-based), globally unique, and
// URL-safe in the format "prefix_suffix".
package id

import (
	"database/sql/driver"
	"fmt"

	"go.jetify.com/typeid/v2"
)

// Prefix identifies the entity type encoded in a TypeID.
type Prefix string

// Prefix constants for all entity types.
const (
	PrefixAccount          Prefix = "acct"  // Labor-hour account
	PrefixTransfer         Prefix = "tfr"   // Double-entry transfer
	PrefixPlan             Prefix = "plan"  // Production plan
	PrefixPlanApproval     Prefix = "appr"  // Plan approval record
	PrefixMember           Prefix = "mem"   // Member
	PrefixCompany          Prefix = "cmp"   // Company
	PrefixSocialAccounting Prefix = "soc"   // Social accounting
	PrefixCooperation      Prefix = "coop"  // Cooperation
	PrefixTenure           Prefix = "tnr"   // Coordination tenure
	PrefixTransferRequest  Prefix = "ctr"   // Coordination transfer request
	PrefixPrivateCons      Prefix = "pcons" // Private consumption
	PrefixProductiveCons   Prefix = "dcons" // Productive consumption
	PrefixHoursWorked      Prefix = "hrs"   // Registered hours worked
)

// ID is the primary identifier type for all labor-ledger entities.
// It wraps a TypeID providing a prefix-qualified, globally unique,
// sortable, URL-safe identifier in the format "prefix_suffix".
//
//nolint:recvcheck // Value receivers for read-only methods, pointer receivers for UnmarshalText/Scan.
type ID struct {
	inner typeid.TypeID
	valid bool
}

// Nil is the zero-value ID.
var Nil ID

// New generates a new globally unique ID with the given prefix.
// It panics if prefix is not a valid TypeID prefix (programming error).
func New(prefix Prefix) ID {
	tid, err := typeid.Generate(string(prefix))
	if err != nil {
		panic(fmt.Sprintf("id: invalid prefix %q: %v", prefix, err))
	}

	return ID{inner: tid, valid: true}
}

// Parse parses a TypeID string (e.g., "plan_01h2xcejqtf2nbrexx3vqjhp41")
// into an ID. Returns an error if the string is not valid.
func Parse(s string) (ID, error) {
	if s == "" {
		return Nil, fmt.Errorf("id: parse %q: empty string", s)
	}

	tid, err := typeid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("id: parse %q: %w", s, err)
	}

	return ID{inner: tid, valid: true}, nil
}

// ParseWithPrefix parses a TypeID string and validates that its prefix
// matches the expected value.
func ParseWithPrefix(s string, expected Prefix) (ID, error) {
	parsed, err := Parse(s)
	if err != nil {
		return Nil, err
	}

	if parsed.Prefix() != expected {
		return Nil, fmt.Errorf("id: expected prefix %q, got %q", expected, parsed.Prefix())
	}

	return parsed, nil
}

// MustParse is like Parse but panics on error. Use for hardcoded ID values.
func MustParse(s string) ID {
	parsed, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("id: must parse %q: %v", s, err))
	}

	return parsed
}

// Prefix returns the prefix of the ID.
func (i ID) Prefix() Prefix { return Prefix(i.inner.Prefix()) }

// String returns the full "prefix_suffix" representation.
func (i ID) String() string {
	if !i.valid {
		return ""
	}
	return i.inner.String()
}

// IsNil reports whether the ID is the zero value.
func (i ID) IsNil() bool { return !i.valid }

// Equal reports whether two IDs are the same.
func (i ID) Equal(other ID) bool { return i.String() == other.String() }

// MarshalText implements encoding.TextMarshaler.
func (i ID) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *ID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*i = Nil
		return nil
	}

	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}

	*i = parsed
	return nil
}

// Value implements driver.Valuer for database storage.
func (i ID) Value() (driver.Value, error) {
	if !i.valid {
		return nil, nil
	}
	return i.String(), nil
}

// Scan implements sql.Scanner for database retrieval.
func (i *ID) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*i = Nil
		return nil
	case string:
		if v == "" {
			*i = Nil
			return nil
		}
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*i = parsed
		return nil
	case []byte:
		return i.Scan(string(v))
	default:
		return fmt.Errorf("id: cannot scan %T into ID", src)
	}
}

// ──────────────────────────────────────────────────
// Convenience constructors
// ──────────────────────────────────────────────────

// NewAccountID generates a new unique account ID.
func NewAccountID() ID { return New(PrefixAccount) }

// NewTransferID generates a new unique transfer ID.
func NewTransferID() ID { return New(PrefixTransfer) }

// NewPlanID generates a new unique plan ID.
func NewPlanID() ID { return New(PrefixPlan) }

// NewPlanApprovalID generates a new unique plan approval ID.
func NewPlanApprovalID() ID { return New(PrefixPlanApproval) }

// NewMemberID generates a new unique member ID.
func NewMemberID() ID { return New(PrefixMember) }

// NewCompanyID generates a new unique company ID.
func NewCompanyID() ID { return New(PrefixCompany) }

// NewSocialAccountingID generates a new unique social accounting ID.
func NewSocialAccountingID() ID { return New(PrefixSocialAccounting) }

// NewCooperationID generates a new unique cooperation ID.
func NewCooperationID() ID { return New(PrefixCooperation) }

// NewTenureID generates a new unique coordination tenure ID.
func NewTenureID() ID { return New(PrefixTenure) }

// NewTransferRequestID generates a new unique coordination transfer request ID.
func NewTransferRequestID() ID { return New(PrefixTransferRequest) }

// NewPrivateConsumptionID generates a new unique private consumption ID.
func NewPrivateConsumptionID() ID { return New(PrefixPrivateCons) }

// NewProductiveConsumptionID generates a new unique productive consumption ID.
func NewProductiveConsumptionID() ID { return New(PrefixProductiveCons) }

// NewHoursWorkedID generates a new unique registered-hours-worked ID.
func NewHoursWorkedID() ID { return New(PrefixHoursWorked) }

// ──────────────────────────────────────────────────
// Convenience parsers
// ──────────────────────────────────────────────────

// ParseAccountID parses a string and validates the "acct" prefix.
func ParseAccountID(s string) (ID, error) { return ParseWithPrefix(s, PrefixAccount) }

// ParseTransferID parses a string and validates the "tfr" prefix.
func ParseTransferID(s string) (ID, error) { return ParseWithPrefix(s, PrefixTransfer) }

// ParsePlanID parses a string and validates the "plan" prefix.
func ParsePlanID(s string) (ID, error) { return ParseWithPrefix(s, PrefixPlan) }

// ParseMemberID parses a string and validates the "mem" prefix.
func ParseMemberID(s string) (ID, error) { return ParseWithPrefix(s, PrefixMember) }

// ParseCompanyID parses a string and validates the "cmp" prefix.
func ParseCompanyID(s string) (ID, error) { return ParseWithPrefix(s, PrefixCompany) }

// ParseCooperationID parses a string and validates the "coop" prefix.
func ParseCooperationID(s string) (ID, error) { return ParseWithPrefix(s, PrefixCooperation) }

// ParseTenureID parses a string and validates the "tnr" prefix.
func ParseTenureID(s string) (ID, error) { return ParseWithPrefix(s, PrefixTenure) }

// ParseTransferRequestID parses a string and validates the "ctr" prefix.
func ParseTransferRequestID(s string) (ID, error) { return ParseWithPrefix(s, PrefixTransferRequest) }
