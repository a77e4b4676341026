package laborledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xraph/laborledger/id"
	"github.com/xraph/laborledger/transfer"
)

// Balance returns the signed sum of all transfers touching the account:
// credits positive, debits negative. The balance is always derived from
// the immutable transfer log, never stored.
func (l *Ledger) Balance(ctx context.Context, accountID id.ID) (decimal.Decimal, error) {
	transfers, err := l.store.ListTransfers(ctx, transfer.ListOpts{Account: accountID})
	if err != nil {
		return decimal.Zero, err
	}

	balance := decimal.Zero
	for _, t := range transfers {
		balance = balance.Add(t.VolumeFor(accountID))
	}
	return balance, nil
}

// AccountStatementLine is one row of an account's statement view.
type AccountStatementLine struct {
	Transfer id.ID         `json:"transfer"`
	Date     time.Time     `json:"date"`
	Type     transfer.Type `json:"type"`
	// Volume is signed from the account's viewpoint: positive when the
	// account was credited, negative when it was debited.
	Volume decimal.Decimal `json:"volume"`
}

// AccountTransfers returns the account's statement: every transfer that
// touched the account with its signed volume, in store order.
func (l *Ledger) AccountTransfers(ctx context.Context, accountID id.ID) ([]AccountStatementLine, error) {
	transfers, err := l.store.ListTransfers(ctx, transfer.ListOpts{Account: accountID})
	if err != nil {
		return nil, err
	}

	lines := make([]AccountStatementLine, 0, len(transfers))
	for _, t := range transfers {
		lines = append(lines, AccountStatementLine{
			Transfer: t.ID,
			Date:     t.Date,
			Type:     t.Type,
			Volume:   t.VolumeFor(accountID),
		})
	}
	return lines, nil
}

// createTransfer appends one immutable transfer record. No balance
// validation happens here; enforcing sufficient balance is the caller's
// responsibility.
func (l *Ledger) createTransfer(ctx context.Context, date time.Time, debit, credit id.ID, value decimal.Decimal, typ transfer.Type) (*transfer.Transfer, error) {
	t := &transfer.Transfer{
		ID:            id.NewTransferID(),
		Date:          date,
		DebitAccount:  debit,
		CreditAccount: credit,
		Value:         value,
		Type:          typ,
	}
	if err := l.store.CreateTransfer(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
