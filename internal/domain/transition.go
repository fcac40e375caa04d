package domain

// Decision is the outcome of comparing a known state to a fetched one
type Decision int

const (
	NoChange Decision = iota
	TransitionToClosed
)

func (d Decision) String() string {
	switch d {
	case TransitionToClosed:
		return "transition-to-closed"
	default:
		return "no-change"
	}
}

// Decide compares the last known state with a freshly fetched one.
// Only open -> closed is a transition; a closed entry never reopens.
func Decide(previous, fetched PRState) Decision {
	if previous == StateOpen && fetched == StateClosed {
		return TransitionToClosed
	}
	return NoChange
}
