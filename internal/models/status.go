package models

import "fmt"

// Status is the lifecycle state of an obligation. It is a closed enumeration:
// transition logic must go through CanTransitionTo so that invalid states
// cannot be constructed by accident.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusOverdue Status = "OVERDUE"
	StatusSettled Status = "SETTLED"
	StatusSkipped Status = "SKIPPED"
)

// AllStatuses lists every valid status, in lifecycle order.
var AllStatuses = []Status{StatusPending, StatusOverdue, StatusSettled, StatusSkipped}

// ParseStatus converts a string into a Status, rejecting unknown values.
func ParseStatus(s string) (Status, error) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown obligation status '%s'", s)
}

// IsTerminal returns true for states that admit no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusSettled || s == StatusSkipped
}

// CanTransitionTo reports whether the state machine permits moving from s to
// target. PENDING may become OVERDUE, SETTLED or SKIPPED; OVERDUE may become
// SETTLED or SKIPPED; terminal states admit nothing.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusOverdue || target == StatusSettled || target == StatusSkipped
	case StatusOverdue:
		return target == StatusSettled || target == StatusSkipped
	case StatusSettled, StatusSkipped:
		return false
	default:
		return false
	}
}
