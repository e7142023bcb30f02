package engineerror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	notFound := &NotFoundError{Entity: "obligation", ID: "abc"}
	assert.Equal(t, "obligation not found: abc", notFound.Error())

	transition := &InvalidTransitionError{ObligationID: "abc", From: "SETTLED", To: "SKIPPED"}
	assert.Equal(t, "invalid transition for obligation abc: SETTLED -> SKIPPED", transition.Error())

	obligation := &InvalidObligationError{Field: "amount", Reason: "must be positive"}
	assert.Equal(t, "invalid obligation: field 'amount': must be positive", obligation.Error())

	parameter := &InvalidParameterError{Parameter: "interval", Value: "0", Reason: "must be at least 1"}
	assert.Equal(t, "invalid parameter 'interval'='0': must be at least 1", parameter.Error())
}

func TestErrorMatching(t *testing.T) {
	wrapped := fmt.Errorf("settling: %w", &InvalidTransitionError{ObligationID: "x", From: "SETTLED", To: "SETTLED"})

	assert.True(t, IsInvalidTransition(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.False(t, IsInvalidObligation(wrapped))
	assert.False(t, IsInvalidParameter(wrapped))

	assert.True(t, IsNotFound(&NotFoundError{Entity: "account", ID: "y"}))
	assert.True(t, IsInvalidObligation(&InvalidObligationError{Field: "due_date"}))
	assert.True(t, IsInvalidParameter(&InvalidParameterError{Parameter: "count"}))
	assert.False(t, IsNotFound(errors.New("plain error")))
}
