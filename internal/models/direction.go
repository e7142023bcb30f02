package models

import "fmt"

// Direction represents the direction of a monetary movement
type Direction string

const (
	DirectionDebit  Direction = "DEBIT"
	DirectionCredit Direction = "CREDIT"
)

// ParseDirection converts a string into a Direction, rejecting unknown values.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionDebit:
		return DirectionDebit, nil
	case DirectionCredit:
		return DirectionCredit, nil
	default:
		return "", fmt.Errorf("unknown direction '%s'", s)
	}
}

// IsDebit returns true if the direction is a debit
func (d Direction) IsDebit() bool {
	return d == DirectionDebit
}

// IsCredit returns true if the direction is a credit
func (d Direction) IsCredit() bool {
	return d == DirectionCredit
}
