package purchase

// State is the orchestrator's position in the purchase flow.
type State string

const (
	StateSelecting       State = "selecting"
	StateCollectingInput State = "collecting_input"
	StateCheckingBalance State = "checking_balance"
	StateConfirming      State = "confirming"
	StateSubmitting      State = "submitting"
	StateCompleted       State = "completed"
	StateRejected        State = "rejected"
	StateAborted         State = "aborted"
)

// Terminal reports whether the flow has ended. The orchestrator instance is
// discarded once a terminal state is reached.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateRejected || s == StateAborted
}

// String representation (for logging)
func (s State) String() string {
	return string(s)
}
