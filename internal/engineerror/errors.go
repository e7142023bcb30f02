// Package engineerror defines the typed errors surfaced by the engine.
// All failures are synchronous and local; none of them warrant a retry.
package engineerror

import (
	"errors"
	"fmt"
)

// NotFoundError indicates an operation referenced an obligation or account id
// absent from the repository.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// InvalidTransitionError indicates an attempted Settle/Skip on a terminal
// obligation, or an inconsistent stored state encountered mid-sweep.
type InvalidTransitionError struct {
	ObligationID string
	From         string
	To           string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition for obligation %s: %s -> %s",
		e.ObligationID, e.From, e.To)
}

// InvalidObligationError indicates a structurally invalid obligation was
// rejected at the boundary before anything was applied.
type InvalidObligationError struct {
	Field  string
	Reason string
}

func (e *InvalidObligationError) Error() string {
	return fmt.Sprintf("invalid obligation: field '%s': %s", e.Field, e.Reason)
}

// InvalidParameterError indicates a structurally invalid parameter to a pure
// operation such as series generation.
type InvalidParameterError struct {
	Parameter string
	Value     string
	Reason    string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter '%s'='%s': %s", e.Parameter, e.Value, e.Reason)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsInvalidTransition reports whether err is (or wraps) an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var target *InvalidTransitionError
	return errors.As(err, &target)
}

// IsInvalidObligation reports whether err is (or wraps) an InvalidObligationError.
func IsInvalidObligation(err error) bool {
	var target *InvalidObligationError
	return errors.As(err, &target)
}

// IsInvalidParameter reports whether err is (or wraps) an InvalidParameterError.
func IsInvalidParameter(err error) bool {
	var target *InvalidParameterError
	return errors.As(err, &target)
}
