package contact

// State is the submitter's progress through one attempt.
type State int

const (
	StateIdle State = iota
	StateSending
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Settled reports whether an attempt has finished.
func (s State) Settled() bool {
	return s == StateSucceeded || s == StateFailed
}

// Status is the message shown under the form. The zero value shows nothing.
type Status struct {
	OK  bool
	Msg string
}

const (
	MsgSent   = "Message sent. Thanks!"
	MsgFailed = "Could not send. Please email me directly."
)
