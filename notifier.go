package laborledger

import (
	"context"

	"github.com/xraph/laborledger/id"
)

// CoordinationTransferNotification carries the details of a pending
// coordination transfer request to the candidate company.
type CoordinationTransferNotification struct {
	CandidateName   string
	CandidateEmail  string
	CooperationName string
	TransferRequest id.ID
}

// Notifier delivers out-of-band notifications. Delivery is
// fire-and-forget: the engine logs a failed send and carries on, it
// never rolls back the triggering operation.
type Notifier interface {
	CoordinationTransferRequested(ctx context.Context, n CoordinationTransferNotification) error
}

// NopNotifier discards all notifications. It is the default.
type NopNotifier struct{}

// CoordinationTransferRequested implements Notifier.
func (NopNotifier) CoordinationTransferRequested(context.Context, CoordinationTransferNotification) error {
	return nil
}
