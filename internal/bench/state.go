package bench

// State is a step of a run. A run moves through the states in declaration
// order and never goes back; a failure stops the walk and skips straight
// to StateReleased once buffers exist.
type State uint8

const (
	StateInit State = iota
	StateAllocated
	StateSequentialWritten
	StateSequentialCopied
	StateSequentialVerified
	StateRandomWritten
	StateRandomCopied
	StateRandomVerified
	StateReleased
	StateReported
)

var stateNames = [...]string{
	StateInit:               "init",
	StateAllocated:          "allocated",
	StateSequentialWritten:  "sequential_written",
	StateSequentialCopied:   "sequential_copied",
	StateSequentialVerified: "sequential_verified",
	StateRandomWritten:      "random_written",
	StateRandomCopied:       "random_copied",
	StateRandomVerified:     "random_verified",
	StateReleased:           "released",
	StateReported:           "reported",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}

	return "unknown"
}

// Phase identifies one of the two timed copies.
type Phase uint8

const (
	// PhaseSequential copies the whole buffer in one call.
	PhaseSequential Phase = iota
	// PhaseRandom copies the same bytes chunk by chunk in shuffled order.
	PhaseRandom
)

func (p Phase) String() string {
	switch p {
	case PhaseSequential:
		return "sequential"
	case PhaseRandom:
		return "random"
	default:
		return "unknown"
	}
}
