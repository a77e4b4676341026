// Package extension provides the Forge extension adapter for Laborledger.
//
// It implements the forge.Extension interface to integrate the labor
// ledger into a Forge application with automatic dependency discovery,
// DI registration, and lifecycle management.
//
// Configuration can be provided programmatically via Option functions or
// via YAML configuration files under "extensions.laborledger" or
// "laborledger" keys.
package extension

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	laborledger "github.com/xraph/laborledger"
	"github.com/xraph/laborledger/store"
	"github.com/xraph/laborledger/store/memory"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "laborledger"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Non-monetary labor-time economic accounting engine"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts Laborledger as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	engine     *laborledger.Ledger
	store      store.Store
	ledgerOpts []laborledger.Option
}

// New creates a new Laborledger Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying Ledger instance.
// This is nil until Register is called.
func (e *Extension) Engine() *laborledger.Ledger { return e.engine }

// Register implements [forge.Extension]. It loads configuration,
// initializes the ledger engine, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	// Use memory store if no store was provided programmatically.
	if e.store == nil {
		e.store = memory.New()
	}

	// Build ledger options from resolved config.
	opts, err := e.buildLedgerOpts()
	if err != nil {
		return err
	}

	eng := laborledger.New(e.store, opts...)
	e.engine = eng

	return vessel.Provide(fapp.Container(), func() (*laborledger.Ledger, error) {
		return e.engine, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("laborledger: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.engine.Start(ctx); err != nil {
			return err
		}
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.engine != nil {
		if err := e.engine.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("laborledger: store not initialized")
	}
	return e.store.Ping(ctx)
}

// buildLedgerOpts constructs laborledger.Option values from the resolved config.
func (e *Extension) buildLedgerOpts() ([]laborledger.Option, error) {
	opts := make([]laborledger.Option, 0, len(e.ledgerOpts)+2)

	if e.config.PayoutWindow > 0 {
		opts = append(opts, laborledger.WithPayoutWindow(e.config.PayoutWindow))
	}

	thresholds, err := e.controlThresholds()
	if err != nil {
		return nil, err
	}
	opts = append(opts, laborledger.WithControlThresholds(thresholds))

	// Append any pass-through ledger options.
	opts = append(opts, e.ledgerOpts...)

	return opts, nil
}

// controlThresholds parses the overdraw and deviation settings.
func (e *Extension) controlThresholds() (laborledger.ControlThresholds, error) {
	t := laborledger.ControlThresholds{
		AcceptableRelativeAccountDeviation: e.config.AcceptableDeviationPercent,
	}

	switch v := strings.TrimSpace(e.config.AllowedOverdraw); v {
	case "", "0":
		zero := decimal.Zero
		t.AllowedOverdrawOfMemberAccount = &zero
	case "unlimited":
		t.AllowedOverdrawOfMemberAccount = nil
	default:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return t, errors.New("laborledger: invalid allowed_overdraw value: " + v)
		}
		t.AllowedOverdrawOfMemberAccount = &d
	}
	return t, nil
}

// --- Config Loading (mirrors grove/shield extension pattern) ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	// Try loading from config file.
	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("laborledger: configuration is required but not found in config files; " +
				"ensure 'extensions.laborledger' or 'laborledger' key exists in your config")
		}

		// Use programmatic config merged with defaults.
		e.config = e.mergeWithDefaults(programmaticConfig)
	} else {
		// Config loaded from YAML -- merge with programmatic options.
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("laborledger: configuration loaded",
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("payout_window", e.config.PayoutWindow),
		forge.F("allowed_overdraw", e.config.AllowedOverdraw),
		forge.F("acceptable_deviation_percent", e.config.AcceptableDeviationPercent),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.laborledger" first (namespaced pattern).
	if cm.IsSet("extensions.laborledger") {
		if err := cm.Bind("extensions.laborledger", &cfg); err == nil {
			e.Logger().Debug("laborledger: loaded config from file",
				forge.F("key", "extensions.laborledger"),
			)
			return cfg, true
		}
		e.Logger().Warn("laborledger: failed to bind extensions.laborledger config",
			forge.F("error", "bind failed"),
		)
	}

	// Try legacy "laborledger" key.
	if cm.IsSet("laborledger") {
		if err := cm.Bind("laborledger", &cfg); err == nil {
			e.Logger().Debug("laborledger: loaded config from file",
				forge.F("key", "laborledger"),
			)
			return cfg, true
		}
		e.Logger().Warn("laborledger: failed to bind laborledger config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func (e *Extension) mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.PayoutWindow == 0 {
		cfg.PayoutWindow = defaults.PayoutWindow
	}
	if cfg.AcceptableDeviationPercent == 0 {
		cfg.AcceptableDeviationPercent = defaults.AcceptableDeviationPercent
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence for most fields; programmatic bool flags fill gaps.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	// Programmatic bool flags override when true.
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}

	// String fields: YAML takes precedence.
	if yamlConfig.AllowedOverdraw == "" && programmaticConfig.AllowedOverdraw != "" {
		yamlConfig.AllowedOverdraw = programmaticConfig.AllowedOverdraw
	}

	// Duration/int fields: YAML takes precedence, programmatic fills gaps.
	if yamlConfig.PayoutWindow == 0 && programmaticConfig.PayoutWindow != 0 {
		yamlConfig.PayoutWindow = programmaticConfig.PayoutWindow
	}
	if yamlConfig.AcceptableDeviationPercent == 0 && programmaticConfig.AcceptableDeviationPercent != 0 {
		yamlConfig.AcceptableDeviationPercent = programmaticConfig.AcceptableDeviationPercent
	}

	// Fill remaining zeros with defaults.
	return e.mergeWithDefaults(yamlConfig)
}
