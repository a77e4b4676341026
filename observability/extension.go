// Package observability provides a metrics extension for Ledger that
// records lifecycle event counts via go-utils MetricFactory.
package observability

import (
	"context"
	"strconv"

	"github.com/xraph/laborledger/plugin"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin                            = (*MetricsExtension)(nil)
	_ plugin.OnInit                            = (*MetricsExtension)(nil)
	_ plugin.OnPlanFiled                       = (*MetricsExtension)(nil)
	_ plugin.OnPlanApproved                    = (*MetricsExtension)(nil)
	_ plugin.OnPlanRejected                    = (*MetricsExtension)(nil)
	_ plugin.OnPrivateConsumptionRegistered    = (*MetricsExtension)(nil)
	_ plugin.OnProductiveConsumptionRegistered = (*MetricsExtension)(nil)
	_ plugin.OnCompensationTransferCreated     = (*MetricsExtension)(nil)
	_ plugin.OnCoordinationTransferRequested   = (*MetricsExtension)(nil)
	_ plugin.OnCoordinationTransferAccepted    = (*MetricsExtension)(nil)
	_ plugin.OnHoursWorkedRegistered           = (*MetricsExtension)(nil)
	_ plugin.OnPayoutFactorCalculated          = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as a Ledger plugin to automatically track accounting metrics.
type MetricsExtension struct {
	factory MetricFactory

	// Plan metrics
	PlanFiled    Counter
	PlanApproved Counter
	PlanRejected Counter

	// Consumption metrics
	PrivateConsumptions    Counter
	ProductiveConsumptions Counter
	CompensationTransfers  Counter

	// Coordination metrics
	CoordinationRequested Counter
	CoordinationAccepted  Counter

	// Wage metrics
	HoursWorkedRegistered Counter
	PayoutFactor          Histogram

	// Error metrics
	StoreErrors  Counter
	PluginErrors Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Plan metrics
		PlanFiled:    factory.Counter("laborledger.plan.filed"),
		PlanApproved: factory.Counter("laborledger.plan.approved"),
		PlanRejected: factory.Counter("laborledger.plan.rejected"),

		// Consumption metrics
		PrivateConsumptions:    factory.Counter("laborledger.consumption.private"),
		ProductiveConsumptions: factory.Counter("laborledger.consumption.productive"),
		CompensationTransfers:  factory.Counter("laborledger.compensation.transfers"),

		// Coordination metrics
		CoordinationRequested: factory.Counter("laborledger.coordination.requested"),
		CoordinationAccepted:  factory.Counter("laborledger.coordination.accepted"),

		// Wage metrics
		HoursWorkedRegistered: factory.Counter("laborledger.hours.registered"),
		PayoutFactor:          factory.Histogram("laborledger.payout.factor"),

		// Error metrics
		StoreErrors:  factory.Counter("laborledger.store.errors"),
		PluginErrors: factory.Counter("laborledger.plugin.errors"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Plan lifecycle hooks
// ──────────────────────────────────────────────────

// OnPlanFiled implements plugin.OnPlanFiled.
func (m *MetricsExtension) OnPlanFiled(_ context.Context, _ interface{}) error {
	m.PlanFiled.Inc()
	return nil
}

// OnPlanApproved implements plugin.OnPlanApproved.
func (m *MetricsExtension) OnPlanApproved(_ context.Context, _, _ interface{}) error {
	m.PlanApproved.Inc()
	return nil
}

// OnPlanRejected implements plugin.OnPlanRejected.
func (m *MetricsExtension) OnPlanRejected(_ context.Context, _ interface{}) error {
	m.PlanRejected.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Consumption hooks
// ──────────────────────────────────────────────────

// OnPrivateConsumptionRegistered implements plugin.OnPrivateConsumptionRegistered.
func (m *MetricsExtension) OnPrivateConsumptionRegistered(_ context.Context, _ interface{}) error {
	m.PrivateConsumptions.Inc()
	return nil
}

// OnProductiveConsumptionRegistered implements plugin.OnProductiveConsumptionRegistered.
func (m *MetricsExtension) OnProductiveConsumptionRegistered(_ context.Context, _ interface{}) error {
	m.ProductiveConsumptions.Inc()
	return nil
}

// OnCompensationTransferCreated implements plugin.OnCompensationTransferCreated.
func (m *MetricsExtension) OnCompensationTransferCreated(_ context.Context, _ interface{}) error {
	m.CompensationTransfers.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Coordination hooks
// ──────────────────────────────────────────────────

// OnCoordinationTransferRequested implements plugin.OnCoordinationTransferRequested.
func (m *MetricsExtension) OnCoordinationTransferRequested(_ context.Context, _ interface{}) error {
	m.CoordinationRequested.Inc()
	return nil
}

// OnCoordinationTransferAccepted implements plugin.OnCoordinationTransferAccepted.
func (m *MetricsExtension) OnCoordinationTransferAccepted(_ context.Context, _ interface{}) error {
	m.CoordinationAccepted.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Wage hooks
// ──────────────────────────────────────────────────

// OnHoursWorkedRegistered implements plugin.OnHoursWorkedRegistered.
func (m *MetricsExtension) OnHoursWorkedRegistered(_ context.Context, _ interface{}) error {
	m.HoursWorkedRegistered.Inc()
	return nil
}

// OnPayoutFactorCalculated implements plugin.OnPayoutFactorCalculated.
func (m *MetricsExtension) OnPayoutFactorCalculated(_ context.Context, factor string) error {
	if f, err := strconv.ParseFloat(factor, 64); err == nil {
		m.PayoutFactor.Observe(f)
	}
	return nil
}
