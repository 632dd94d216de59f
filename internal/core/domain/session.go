package domain

// StateKind discriminates the variants of SessionState.
type StateKind int

const (
	// StateIdle means no mention is shown and nothing is pending.
	StateIdle StateKind = iota
	// StateLoading means a mention is being resolved.
	StateLoading
	// StateReady means a mention is shown and awaits a decision.
	StateReady
	// StateError means resolution failed; the session is finished.
	StateError
)

// String returns the string representation of the state kind.
func (k StateKind) String() string {
	switch k {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// SessionState is the single authoritative state of an annotation screen.
// Only the fields belonging to Kind are meaningful.
type SessionState struct {
	Kind StateKind

	// Mention is set in StateReady.
	Mention *Mention

	// Decision is the chosen candidate id in StateReady, "" if none.
	Decision string

	// Message is the failure text in StateError.
	Message string
}

// Idle returns the idle state.
func Idle() SessionState {
	return SessionState{Kind: StateIdle}
}

// Loading returns the loading state.
func Loading() SessionState {
	return SessionState{Kind: StateLoading}
}

// Ready returns the ready state for m with the given decision.
func Ready(m *Mention, decision string) SessionState {
	return SessionState{Kind: StateReady, Mention: m, Decision: decision}
}

// Failed returns the error state carrying msg.
func Failed(msg string) SessionState {
	return SessionState{Kind: StateError, Message: msg}
}

// HasDecision reports whether a candidate has been chosen.
func (s SessionState) HasDecision() bool {
	return s.Kind == StateReady && s.Decision != ""
}
