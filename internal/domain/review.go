package domain

// Review reasons attached to events flagged for manual attention. Budget
// deferrals are retried automatically by the next mapping run; mapping
// failures wait for a human.
const (
	ReviewReasonBudgetExceeded = "budget exceeded"
	ReviewReasonMappingFailed  = "mapping failed"
)
