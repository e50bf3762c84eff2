package receipt

// Receipt lifecycle statuses. A receipt only moves forward through this
// graph; the single backward edge is the explicit reanalyze reset, which is
// not a transition but a full restart.
const (
	StatusUploaded              = "uploaded"
	StatusProcessing            = "processing"
	StatusProcessed             = "processed"
	StatusProcessedWithWarnings = "processed_with_warnings"
	StatusFailed                = "failed"
	StatusExpenseCreationFailed = "expense_creation_failed"
	StatusExpenseCreated        = "expense_created"
)

var statusTransitions = map[string][]string{
	StatusUploaded:              {StatusProcessing},
	StatusProcessing:            {StatusProcessed, StatusProcessedWithWarnings, StatusFailed},
	StatusProcessed:             {StatusExpenseCreated, StatusExpenseCreationFailed},
	StatusProcessedWithWarnings: {StatusExpenseCreated, StatusExpenseCreationFailed},
	StatusExpenseCreationFailed: {StatusExpenseCreated},
	StatusFailed:                {},
	StatusExpenseCreated:        {},
}

// CanTransition reports whether the status graph allows moving from one
// status to another.
func CanTransition(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status has no outgoing transitions.
func IsTerminal(status string) bool {
	return len(statusTransitions[status]) == 0
}
