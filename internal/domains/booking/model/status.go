package model

const (
	StatusPending    = "PENDING"
	StatusConfirmed  = "CONFIRMED"
	StatusCheckedIn  = "CHECKED_IN"
	StatusCheckedOut = "CHECKED_OUT"
	StatusCancelled  = "CANCELLED"
	StatusNoShow     = "NO_SHOW"
)

const (
	TransitionModeStrict = "strict"
	TransitionModeLegacy = "legacy"
)

var transitions = map[string][]string{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusCheckedIn:  {StatusCheckedOut},
	StatusCheckedOut: nil,
	StatusCancelled:  nil,
	StatusNoShow:     nil,
}

// CanTransition reports whether a booking may move from one status to another.
// Keeping the current status is always allowed; legacy mode allows any known status.
func CanTransition(mode, from, to string) bool {
	if _, ok := transitions[to]; !ok {
		return false
	}

	if from == to || mode == TransitionModeLegacy {
		return true
	}

	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

// Terminal reports whether no further transitions leave status in strict mode.
func Terminal(status string) bool {
	next, ok := transitions[status]

	return ok && len(next) == 0
}
