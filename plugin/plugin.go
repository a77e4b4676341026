// Package plugin provides an extensible plugin system for the labor
// ledger. Plugins can hook into lifecycle events to extend functionality.
package plugin

import "context"

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, engine interface{}) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Plan lifecycle hooks
// ──────────────────────────────────────────────────

// OnPlanFiled is called when a new plan draft is filed.
type OnPlanFiled interface {
	Plugin
	OnPlanFiled(ctx context.Context, plan interface{}) error
}

// OnPlanApproved is called when a plan is approved and its credit
// transfers have been written.
type OnPlanApproved interface {
	Plugin
	OnPlanApproved(ctx context.Context, plan interface{}, approval interface{}) error
}

// OnPlanRejected is called when a plan is rejected.
type OnPlanRejected interface {
	Plugin
	OnPlanRejected(ctx context.Context, plan interface{}) error
}

// ──────────────────────────────────────────────────
// Consumption hooks
// ──────────────────────────────────────────────────

// OnPrivateConsumptionRegistered is called after a member consumption
// and its transfers have been written.
type OnPrivateConsumptionRegistered interface {
	Plugin
	OnPrivateConsumptionRegistered(ctx context.Context, consumption interface{}) error
}

// OnProductiveConsumptionRegistered is called after a company
// consumption and its transfers have been written.
type OnProductiveConsumptionRegistered interface {
	Plugin
	OnProductiveConsumptionRegistered(ctx context.Context, consumption interface{}) error
}

// OnCompensationTransferCreated is called when a consumption of a
// cooperating plan produces a balancing transfer.
type OnCompensationTransferCreated interface {
	Plugin
	OnCompensationTransferCreated(ctx context.Context, transfer interface{}) error
}

// ──────────────────────────────────────────────────
// Coordination hooks
// ──────────────────────────────────────────────────

// OnCoordinationTransferRequested is called when a coordinator asks a
// candidate company to take over a cooperation.
type OnCoordinationTransferRequested interface {
	Plugin
	OnCoordinationTransferRequested(ctx context.Context, request interface{}) error
}

// OnCoordinationTransferAccepted is called when a candidate accepts
// coordination and a new tenure begins.
type OnCoordinationTransferAccepted interface {
	Plugin
	OnCoordinationTransferAccepted(ctx context.Context, tenure interface{}) error
}

// ──────────────────────────────────────────────────
// Wage hooks
// ──────────────────────────────────────────────────

// OnHoursWorkedRegistered is called after a wage registration and its
// work-certificate and taxes transfers have been written.
type OnHoursWorkedRegistered interface {
	Plugin
	OnHoursWorkedRegistered(ctx context.Context, registration interface{}) error
}

// OnPayoutFactorCalculated is called whenever the payout factor is
// computed. The factor is passed as its decimal string representation.
type OnPayoutFactorCalculated interface {
	Plugin
	OnPayoutFactorCalculated(ctx context.Context, factor string) error
}
