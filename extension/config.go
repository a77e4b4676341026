package extension

import "time"

// Config holds the Laborledger extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.laborledger" or
// "laborledger" keys).
type Config struct {
	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// PayoutWindow is the width of the gliding window used by the payout
	// factor calculation (default: 336h, two weeks).
	PayoutWindow time.Duration `json:"payout_window" mapstructure:"payout_window" yaml:"payout_window"`

	// AllowedOverdraw is the decimal amount by which a member account may
	// go negative on private consumption. Empty means zero overdraw;
	// "unlimited" disables the balance check entirely.
	AllowedOverdraw string `json:"allowed_overdraw" mapstructure:"allowed_overdraw" yaml:"allowed_overdraw"`

	// AcceptableDeviationPercent is the relative deviation of an account
	// balance from its expectation that control reports tolerate.
	AcceptableDeviationPercent int `json:"acceptable_deviation_percent" mapstructure:"acceptable_deviation_percent" yaml:"acceptable_deviation_percent"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		PayoutWindow:               336 * time.Hour,
		AcceptableDeviationPercent: 30,
	}
}
