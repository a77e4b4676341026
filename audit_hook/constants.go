package audithook

// Action constants for audit events.
const (
	// Plan actions
	ActionPlanFiled    = "plan.filed"
	ActionPlanApproved = "plan.approved"
	ActionPlanRejected = "plan.rejected"

	// Consumption actions
	ActionPrivateConsumption    = "consumption.private"
	ActionProductiveConsumption = "consumption.productive"
	ActionCompensationTransfer  = "compensation.transfer"

	// Coordination actions
	ActionCoordinationRequested = "coordination.requested"
	ActionCoordinationAccepted  = "coordination.accepted"

	// Wage actions
	ActionHoursWorkedRegistered = "hours.registered"
	ActionPayoutFactorComputed  = "payout_factor.computed"
)

// Resource constants for audit events.
const (
	ResourcePlan         = "plan"
	ResourceConsumption  = "consumption"
	ResourceTransfer     = "transfer"
	ResourceCooperation  = "cooperation"
	ResourceRegistration = "registration"
	ResourcePayoutFactor = "payout_factor"
)

// Category constants for audit events.
const (
	CategoryPlanning     = "planning"
	CategoryConsumption  = "consumption"
	CategoryCoordination = "coordination"
	CategoryWages        = "wages"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
)
