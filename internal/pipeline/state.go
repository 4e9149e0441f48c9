package pipeline

// State is a per-object pipeline stage.
type State string

const (
	StateDiscovered   State = "discovered"
	StateRetrieving   State = "retrieving"
	StateTranscribing State = "transcribing"
	StateAnalyzing    State = "analyzing"
	StatePersisting   State = "persisting"
	StateProcessed    State = "processed"
	StateFailed       State = "failed"
)

// transitions is the per-object state machine: each non-terminal state moves
// to its successor on success or to Failed on an unrecoverable error. No
// retry crosses a stage boundary.
var transitions = map[State][]State{
	StateDiscovered:   {StateRetrieving, StateFailed},
	StateRetrieving:   {StateTranscribing, StateFailed},
	StateTranscribing: {StateAnalyzing, StateFailed},
	StateAnalyzing:    {StatePersisting, StateFailed},
	StatePersisting:   {StateProcessed, StateFailed},
	StateProcessed:    nil,
	StateFailed:       nil,
}

// CanTransition reports whether the state machine permits from -> to.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether a state has no successors.
func (s State) Terminal() bool {
	return len(transitions[s]) == 0
}
