// Package audithook bridges Ledger lifecycle events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not import
// Chronicle directly. Callers inject a RecorderFunc adapter that bridges
// to Chronicle at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xraph/laborledger/plugin"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin                            = (*Extension)(nil)
	_ plugin.OnPlanFiled                       = (*Extension)(nil)
	_ plugin.OnPlanApproved                    = (*Extension)(nil)
	_ plugin.OnPlanRejected                    = (*Extension)(nil)
	_ plugin.OnPrivateConsumptionRegistered    = (*Extension)(nil)
	_ plugin.OnProductiveConsumptionRegistered = (*Extension)(nil)
	_ plugin.OnCompensationTransferCreated     = (*Extension)(nil)
	_ plugin.OnCoordinationTransferRequested   = (*Extension)(nil)
	_ plugin.OnCoordinationTransferAccepted    = (*Extension)(nil)
	_ plugin.OnHoursWorkedRegistered           = (*Extension)(nil)
	_ plugin.OnPayoutFactorCalculated          = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
// This matches chronicle.Emitter but is defined locally so that the
// audit_hook package does not import Chronicle directly — callers inject
// the concrete *chronicle.Chronicle at wiring time.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
// It mirrors chronicle/audit.Event but avoids a module dependency.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges Ledger lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Plan lifecycle hooks
// ──────────────────────────────────────────────────

// OnPlanFiled implements plugin.OnPlanFiled.
func (e *Extension) OnPlanFiled(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionPlanFiled, SeverityInfo, OutcomeSuccess,
		ResourcePlan, "", CategoryPlanning, nil,
		"event", "plan_filed",
	)
}

// OnPlanApproved implements plugin.OnPlanApproved.
func (e *Extension) OnPlanApproved(ctx context.Context, _, _ interface{}) error {
	return e.record(ctx, ActionPlanApproved, SeverityInfo, OutcomeSuccess,
		ResourcePlan, "", CategoryPlanning, nil,
		"event", "plan_approved",
	)
}

// OnPlanRejected implements plugin.OnPlanRejected.
func (e *Extension) OnPlanRejected(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionPlanRejected, SeverityWarning, OutcomeSuccess,
		ResourcePlan, "", CategoryPlanning, nil,
		"event", "plan_rejected",
	)
}

// ──────────────────────────────────────────────────
// Consumption hooks
// ──────────────────────────────────────────────────

// OnPrivateConsumptionRegistered implements plugin.OnPrivateConsumptionRegistered.
func (e *Extension) OnPrivateConsumptionRegistered(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionPrivateConsumption, SeverityInfo, OutcomeSuccess,
		ResourceConsumption, "", CategoryConsumption, nil,
		"event", "private_consumption_registered",
	)
}

// OnProductiveConsumptionRegistered implements plugin.OnProductiveConsumptionRegistered.
func (e *Extension) OnProductiveConsumptionRegistered(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionProductiveConsumption, SeverityInfo, OutcomeSuccess,
		ResourceConsumption, "", CategoryConsumption, nil,
		"event", "productive_consumption_registered",
	)
}

// OnCompensationTransferCreated implements plugin.OnCompensationTransferCreated.
func (e *Extension) OnCompensationTransferCreated(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionCompensationTransfer, SeverityInfo, OutcomeSuccess,
		ResourceTransfer, "", CategoryConsumption, nil,
		"event", "compensation_transfer_created",
	)
}

// ──────────────────────────────────────────────────
// Coordination hooks
// ──────────────────────────────────────────────────

// OnCoordinationTransferRequested implements plugin.OnCoordinationTransferRequested.
func (e *Extension) OnCoordinationTransferRequested(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionCoordinationRequested, SeverityInfo, OutcomeSuccess,
		ResourceCooperation, "", CategoryCoordination, nil,
		"event", "coordination_transfer_requested",
	)
}

// OnCoordinationTransferAccepted implements plugin.OnCoordinationTransferAccepted.
func (e *Extension) OnCoordinationTransferAccepted(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionCoordinationAccepted, SeverityInfo, OutcomeSuccess,
		ResourceCooperation, "", CategoryCoordination, nil,
		"event", "coordination_transfer_accepted",
	)
}

// ──────────────────────────────────────────────────
// Wage hooks
// ──────────────────────────────────────────────────

// OnHoursWorkedRegistered implements plugin.OnHoursWorkedRegistered.
func (e *Extension) OnHoursWorkedRegistered(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionHoursWorkedRegistered, SeverityInfo, OutcomeSuccess,
		ResourceRegistration, "", CategoryWages, nil,
		"event", "hours_worked_registered",
	)
}

// OnPayoutFactorCalculated implements plugin.OnPayoutFactorCalculated.
func (e *Extension) OnPayoutFactorCalculated(ctx context.Context, factor string) error {
	return e.record(ctx, ActionPayoutFactorComputed, SeverityInfo, OutcomeSuccess,
		ResourcePayoutFactor, "", CategoryWages, nil,
		"factor", factor,
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
