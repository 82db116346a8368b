package ping

// State is the session's position in the status exchange. Transitions are
// driven one step at a time so the legacy fallback is an ordinary edge
// rather than error-handling control flow.
type State int

const (
	StateDisconnected State = iota
	StateConnected
	StateHandshakeSent
	StateStatusRequested
	StateStatusReceived
	StateLegacyFallback
	StateLegacyReceived
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "Disconnected"
	case StateConnected:
		return "Connected"
	case StateHandshakeSent:
		return "HandshakeSent"
	case StateStatusRequested:
		return "StatusRequested"
	case StateStatusReceived:
		return "StatusReceived"
	case StateLegacyFallback:
		return "LegacyFallback"
	case StateLegacyReceived:
		return "LegacyResponseReceived"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// terminal reports whether the session is done, successfully or not.
func (s State) terminal() bool {
	return s == StateStatusReceived || s == StateLegacyReceived || s == StateFailed
}
