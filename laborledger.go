// Package laborledger implements an embeddable labor-time accounting
// engine: companies file production plans denominated in labor-hours,
// plans are approved or rejected by social accounting, members and
// companies consume plan output by transferring labor-hour certificates
// between accounts, and cooperative price averaging plus a payout
// factor keep the aggregate books balanced.
package laborledger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xraph/laborledger/account"
	"github.com/xraph/laborledger/id"
	"github.com/xraph/laborledger/plugin"
	"github.com/xraph/laborledger/social"
	"github.com/xraph/laborledger/store"
	"github.com/xraph/laborledger/types"
)

// DefaultPayoutWindow is the width of the gliding window used by the
// payout factor calculation when none is configured.
const DefaultPayoutWindow = 14 * 24 * time.Hour

// ControlThresholds holds the economic policy knobs of the ledger.
type ControlThresholds struct {
	// AllowedOverdrawOfMemberAccount is how far a member account may go
	// below zero through private consumption. Nil means unlimited
	// overdraw; the zero value means none.
	AllowedOverdrawOfMemberAccount *decimal.Decimal
	// AcceptableRelativeAccountDeviation is the percentage by which a
	// company account may deviate from its planned value before it is
	// flagged for review.
	AcceptableRelativeAccountDeviation int
}

// Ledger is the labor-time accounting engine.
type Ledger struct {
	store    store.Store
	plugins  *plugin.Registry
	logger   *slog.Logger
	notifier Notifier
	clock    func() time.Time

	// Configuration
	thresholds   ControlThresholds
	payoutWindow time.Duration

	// social is seeded on Start and never changes afterwards.
	social *social.Accounting

	// mu serializes mutating operations so that a balance check and the
	// write it guards cannot interleave with another operation in this
	// process. Cross-process serialization is the store's contract.
	mu sync.Mutex
}

// New creates a new Ledger instance backed by the given store.
func New(s store.Store, opts ...Option) *Ledger {
	zero := decimal.Zero
	l := &Ledger{
		store:        s,
		plugins:      plugin.NewRegistry(),
		logger:       slog.Default(),
		notifier:     NopNotifier{},
		clock:        time.Now,
		thresholds:   ControlThresholds{AllowedOverdrawOfMemberAccount: &zero},
		payoutWindow: DefaultPayoutWindow,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Option configures a Ledger instance.
type Option func(*Ledger)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
		l.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(l *Ledger) {
		_ = l.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithNotifier sets the notification gateway.
func WithNotifier(n Notifier) Option {
	return func(l *Ledger) {
		l.notifier = n
	}
}

// WithClock overrides the time source. Tests use this to pin "now".
func WithClock(clock func() time.Time) Option {
	return func(l *Ledger) {
		l.clock = clock
	}
}

// WithControlThresholds sets the economic policy thresholds.
func WithControlThresholds(t ControlThresholds) Option {
	return func(l *Ledger) {
		l.thresholds = t
	}
}

// WithPayoutWindow sets the width of the payout factor's gliding window.
func WithPayoutWindow(w time.Duration) Option {
	return func(l *Ledger) {
		l.payoutWindow = w
	}
}

// Start migrates the store and seeds the social accounting record with
// its public sector fund account if none exists yet.
func (l *Ledger) Start(ctx context.Context) error {
	if err := l.store.Migrate(ctx); err != nil {
		return err
	}

	sa, err := l.store.GetSocialAccounting(ctx)
	switch {
	case err == nil:
		l.social = sa
	case IsNotFound(err):
		psf := account.New(account.TypePSF)
		if err := l.store.CreateAccount(ctx, psf); err != nil {
			return err
		}
		sa = &social.Accounting{
			Entity:     types.NewEntity(),
			ID:         id.NewSocialAccountingID(),
			AccountPSF: psf.ID,
		}
		if err := l.store.CreateSocialAccounting(ctx, sa); err != nil {
			return err
		}
		l.social = sa
	default:
		return err
	}

	l.plugins.EmitInit(ctx, l)

	l.logger.Info("labor ledger started",
		"psf_account", l.social.AccountPSF,
		"payout_window", l.payoutWindow,
	)

	return nil
}

// Stop shuts down the Ledger.
func (l *Ledger) Stop() error {
	l.plugins.EmitShutdown(context.Background())
	return l.store.Close()
}

// SocialAccounting returns the seeded social accounting record.
func (l *Ledger) SocialAccounting() *social.Accounting { return l.social }

// Plugins returns the plugin registry.
func (l *Ledger) Plugins() *plugin.Registry { return l.plugins }

// Ping checks store connectivity.
func (l *Ledger) Ping(ctx context.Context) error { return l.store.Ping(ctx) }
