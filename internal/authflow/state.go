package authflow

// State is a step of the login state machine.
type State int

const (
	StateIdle State = iota
	StateRedirecting
	StateCallbackReceived
	StateValidatingState
	StateExchanging
	StateAuthenticated
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRedirecting:
		return "redirecting"
	case StateCallbackReceived:
		return "callback_received"
	case StateValidatingState:
		return "validating_state"
	case StateExchanging:
		return "exchanging"
	case StateAuthenticated:
		return "authenticated"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
