package transport

// state is a step of a single authenticated round trip
type state int

const (
	stateFresh state = iota
	stateRenewing
	stateSent
	stateRetryingAfter401
	stateDone
)

func (s state) String() string {
	switch s {
	case stateFresh:
		return "fresh"
	case stateRenewing:
		return "renewing"
	case stateSent:
		return "sent"
	case stateRetryingAfter401:
		return "retryingAfter401"
	case stateDone:
		return "done"
	}
	return "unknown"
}
