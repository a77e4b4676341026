package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Registry manages all registered plugins and provides efficient dispatch.
// Plugin interfaces are cached at registration time.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit                            []OnInit
	onShutdown                        []OnShutdown
	onPlanFiled                       []OnPlanFiled
	onPlanApproved                    []OnPlanApproved
	onPlanRejected                    []OnPlanRejected
	onPrivateConsumptionRegistered    []OnPrivateConsumptionRegistered
	onProductiveConsumptionRegistered []OnProductiveConsumptionRegistered
	onCompensationTransferCreated     []OnCompensationTransferCreated
	onCoordinationTransferRequested   []OnCoordinationTransferRequested
	onCoordinationTransferAccepted    []OnCoordinationTransferAccepted
	onHoursWorkedRegistered           []OnHoursWorkedRegistered
	onPayoutFactorCalculated          []OnPayoutFactorCalculated
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{logger: slog.Default()}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnPlanFiled); ok {
		r.onPlanFiled = append(r.onPlanFiled, v)
	}
	if v, ok := p.(OnPlanApproved); ok {
		r.onPlanApproved = append(r.onPlanApproved, v)
	}
	if v, ok := p.(OnPlanRejected); ok {
		r.onPlanRejected = append(r.onPlanRejected, v)
	}
	if v, ok := p.(OnPrivateConsumptionRegistered); ok {
		r.onPrivateConsumptionRegistered = append(r.onPrivateConsumptionRegistered, v)
	}
	if v, ok := p.(OnProductiveConsumptionRegistered); ok {
		r.onProductiveConsumptionRegistered = append(r.onProductiveConsumptionRegistered, v)
	}
	if v, ok := p.(OnCompensationTransferCreated); ok {
		r.onCompensationTransferCreated = append(r.onCompensationTransferCreated, v)
	}
	if v, ok := p.(OnCoordinationTransferRequested); ok {
		r.onCoordinationTransferRequested = append(r.onCoordinationTransferRequested, v)
	}
	if v, ok := p.(OnCoordinationTransferAccepted); ok {
		r.onCoordinationTransferAccepted = append(r.onCoordinationTransferAccepted, v)
	}
	if v, ok := p.(OnHoursWorkedRegistered); ok {
		r.onHoursWorkedRegistered = append(r.onHoursWorkedRegistered, v)
	}
	if v, ok := p.(OnPayoutFactorCalculated); ok {
		r.onPayoutFactorCalculated = append(r.onPayoutFactorCalculated, v)
	}

	return nil
}

// Get returns a registered plugin by name, or nil.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, engine interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, engine)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitPlanFiled emits a plan filed event.
func (r *Registry) EmitPlanFiled(ctx context.Context, plan interface{}) {
	r.mu.RLock()
	plugins := r.onPlanFiled
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPlanFiled(ctx, plan)
		}); err != nil {
			r.logger.Warn("plugin OnPlanFiled failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitPlanApproved emits a plan approved event.
func (r *Registry) EmitPlanApproved(ctx context.Context, plan, approval interface{}) {
	r.mu.RLock()
	plugins := r.onPlanApproved
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPlanApproved(ctx, plan, approval)
		}); err != nil {
			r.logger.Warn("plugin OnPlanApproved failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitPlanRejected emits a plan rejected event.
func (r *Registry) EmitPlanRejected(ctx context.Context, plan interface{}) {
	r.mu.RLock()
	plugins := r.onPlanRejected
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPlanRejected(ctx, plan)
		}); err != nil {
			r.logger.Warn("plugin OnPlanRejected failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitPrivateConsumptionRegistered emits a private consumption event.
func (r *Registry) EmitPrivateConsumptionRegistered(ctx context.Context, consumption interface{}) {
	r.mu.RLock()
	plugins := r.onPrivateConsumptionRegistered
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPrivateConsumptionRegistered(ctx, consumption)
		}); err != nil {
			r.logger.Warn("plugin OnPrivateConsumptionRegistered failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitProductiveConsumptionRegistered emits a productive consumption event.
func (r *Registry) EmitProductiveConsumptionRegistered(ctx context.Context, consumption interface{}) {
	r.mu.RLock()
	plugins := r.onProductiveConsumptionRegistered
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnProductiveConsumptionRegistered(ctx, consumption)
		}); err != nil {
			r.logger.Warn("plugin OnProductiveConsumptionRegistered failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitCompensationTransferCreated emits a compensation transfer event.
func (r *Registry) EmitCompensationTransferCreated(ctx context.Context, transfer interface{}) {
	r.mu.RLock()
	plugins := r.onCompensationTransferCreated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnCompensationTransferCreated(ctx, transfer)
		}); err != nil {
			r.logger.Warn("plugin OnCompensationTransferCreated failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitCoordinationTransferRequested emits a coordination transfer request event.
func (r *Registry) EmitCoordinationTransferRequested(ctx context.Context, request interface{}) {
	r.mu.RLock()
	plugins := r.onCoordinationTransferRequested
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnCoordinationTransferRequested(ctx, request)
		}); err != nil {
			r.logger.Warn("plugin OnCoordinationTransferRequested failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitCoordinationTransferAccepted emits a coordination transfer accepted event.
func (r *Registry) EmitCoordinationTransferAccepted(ctx context.Context, tenure interface{}) {
	r.mu.RLock()
	plugins := r.onCoordinationTransferAccepted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnCoordinationTransferAccepted(ctx, tenure)
		}); err != nil {
			r.logger.Warn("plugin OnCoordinationTransferAccepted failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitHoursWorkedRegistered emits a wage registration event.
func (r *Registry) EmitHoursWorkedRegistered(ctx context.Context, registration interface{}) {
	r.mu.RLock()
	plugins := r.onHoursWorkedRegistered
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnHoursWorkedRegistered(ctx, registration)
		}); err != nil {
			r.logger.Warn("plugin OnHoursWorkedRegistered failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitPayoutFactorCalculated emits a payout factor event.
func (r *Registry) EmitPayoutFactorCalculated(ctx context.Context, factor string) {
	r.mu.RLock()
	plugins := r.onPayoutFactorCalculated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPayoutFactorCalculated(ctx, factor)
		}); err != nil {
			r.logger.Warn("plugin OnPayoutFactorCalculated failed", "plugin", p.Name(), "error", err)
		}
	}
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the ledger pipeline.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
