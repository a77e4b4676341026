package laborledger

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios. Rejections that belong
// to an operation's closed outcome set (for example an insufficient
// balance) are not errors; they are reported in the operation's
// response struct. These sentinels cover lookups and storage failures.
var (
	// General errors
	ErrNotFound      = errors.New("laborledger: not found")
	ErrAlreadyExists = errors.New("laborledger: already exists")
	ErrInvalidInput  = errors.New("laborledger: invalid input")

	// Entity lookup errors
	ErrAccountNotFound          = errors.New("laborledger: account not found")
	ErrTransferNotFound         = errors.New("laborledger: transfer not found")
	ErrPlanNotFound             = errors.New("laborledger: plan not found")
	ErrPlanApprovalNotFound     = errors.New("laborledger: plan approval not found")
	ErrMemberNotFound           = errors.New("laborledger: member not found")
	ErrCompanyNotFound          = errors.New("laborledger: company not found")
	ErrCooperationNotFound      = errors.New("laborledger: cooperation not found")
	ErrTenureNotFound           = errors.New("laborledger: coordination tenure not found")
	ErrTransferRequestNotFound  = errors.New("laborledger: coordination transfer request not found")
	ErrSocialAccountingNotFound = errors.New("laborledger: social accounting not found")

	// State errors
	ErrTransferRequestClosed = errors.New("laborledger: coordination transfer request already closed")

	// Store errors
	ErrStoreNotReady     = errors.New("laborledger: store not ready")
	ErrStoreClosed       = errors.New("laborledger: store is closed")
	ErrTransactionFailed = errors.New("laborledger: transaction failed")
	ErrMigrationFailed   = errors.New("laborledger: migration failed")
)

// ValidationError represents a validation failure with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("laborledger: validation failed for %s: %s", e.Field, e.Message)
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrTransferNotFound) ||
		errors.Is(err, ErrPlanNotFound) ||
		errors.Is(err, ErrPlanApprovalNotFound) ||
		errors.Is(err, ErrMemberNotFound) ||
		errors.Is(err, ErrCompanyNotFound) ||
		errors.Is(err, ErrCooperationNotFound) ||
		errors.Is(err, ErrTenureNotFound) ||
		errors.Is(err, ErrTransferRequestNotFound) ||
		errors.Is(err, ErrSocialAccountingNotFound)
}

// IsRetryable returns true if the error is temporary and the operation
// can be retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreNotReady) ||
		errors.Is(err, ErrTransactionFailed)
}
