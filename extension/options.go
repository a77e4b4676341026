package extension

import (
	"time"

	laborledger "github.com/xraph/laborledger"
	"github.com/xraph/laborledger/plugin"
	"github.com/xraph/laborledger/store"
)

// Option configures the Laborledger Forge extension.
type Option func(*Extension)

// WithStore sets the store for the ledger engine.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithLedgerOption passes a laborledger.Option through to the underlying engine.
func WithLedgerOption(opt laborledger.Option) Option {
	return func(e *Extension) {
		e.ledgerOpts = append(e.ledgerOpts, opt)
	}
}

// WithPlugin registers a ledger plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.ledgerOpts = append(e.ledgerOpts, laborledger.WithPlugin(p))
	}
}

// WithNotifier sets the notifier for outward-facing messages.
func WithNotifier(n laborledger.Notifier) Option {
	return func(e *Extension) {
		e.ledgerOpts = append(e.ledgerOpts, laborledger.WithNotifier(n))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}

// WithPayoutWindow sets the gliding window width for the payout factor.
func WithPayoutWindow(d time.Duration) Option {
	return func(e *Extension) { e.config.PayoutWindow = d }
}

// WithAllowedOverdraw sets the decimal amount by which a member account
// may go negative. Pass "unlimited" to disable the balance check.
func WithAllowedOverdraw(v string) Option {
	return func(e *Extension) { e.config.AllowedOverdraw = v }
}

// WithAcceptableDeviationPercent sets the tolerated relative balance deviation.
func WithAcceptableDeviationPercent(p int) Option {
	return func(e *Extension) { e.config.AcceptableDeviationPercent = p }
}
