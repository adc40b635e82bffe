package dialogue

// State is the dialogue position of a session. Sessions always hold one of
// these values; transitions between them are owned by the dialogue state
// machine and nothing else writes the column.
type State string

const (
	StateGreeting         State = "greeting"
	StateProbingMood      State = "probing_mood"
	StateProbingIntensity State = "probing_intensity"
	StateProbingContext   State = "probing_context"
	StateConfirming       State = "confirming"
	StateRecommending     State = "recommending"
	StateFeedback         State = "feedback"
	StateEnded            State = "ended"
	StateAborted          State = "aborted"
	StateTimeout          State = "timeout"
)

// AllStates lists every dialogue state, probing order first, terminals last.
var AllStates = []State{
	StateGreeting,
	StateProbingMood,
	StateProbingIntensity,
	StateProbingContext,
	StateConfirming,
	StateRecommending,
	StateFeedback,
	StateEnded,
	StateAborted,
	StateTimeout,
}

// Terminal reports whether the state accepts no further transitions. A turn
// submitted against a terminal session starts a new session instead.
func (s State) Terminal() bool {
	switch s {
	case StateEnded, StateAborted, StateTimeout:
		return true
	default:
		return false
	}
}

// Probing reports whether the session is still gathering signals.
func (s State) Probing() bool {
	switch s {
	case StateProbingMood, StateProbingIntensity, StateProbingContext:
		return true
	default:
		return false
	}
}

func (s State) Valid() bool {
	switch s {
	case StateGreeting, StateProbingMood, StateProbingIntensity, StateProbingContext,
		StateConfirming, StateRecommending, StateFeedback,
		StateEnded, StateAborted, StateTimeout:
		return true
	default:
		return false
	}
}
