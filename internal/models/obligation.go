// Package models defines the domain entities shared across the engine:
// obligations, accounts, transactions and the transient results produced by
// matching and reconciliation.
package models

import (
	"time"

	"github.com/google/uuid"
)

// RecurrencePattern describes how a recurring obligation repeats.
type RecurrencePattern string

const (
	RecurrenceOnce    RecurrencePattern = "ONCE"
	RecurrenceMonthly RecurrencePattern = "MONTHLY"
	RecurrenceWeekly  RecurrencePattern = "WEEKLY"
	RecurrenceCustom  RecurrencePattern = "CUSTOM"
)

// Recurrence is the optional repetition descriptor attached to an obligation.
type Recurrence struct {
	Pattern  RecurrencePattern `json:"pattern"`
	Interval int               `json:"interval"`
	EndDate  *time.Time        `json:"end_date,omitempty"`
}

// Obligation is a tracked expectation of a future monetary event. It is a
// forward-looking reminder record: it never affects an account balance by
// itself. Only a matched, independently recorded transaction does that.
type Obligation struct {
	ID           uuid.UUID  `json:"id"`
	Amount       Money      `json:"amount"`
	Counterparty string     `json:"counterparty"`
	Category     string     `json:"category"`
	Direction    Direction  `json:"direction"`
	AccountID    *uuid.UUID `json:"account_id,omitempty"`
	DueDate      time.Time  `json:"due_date"`

	Recurrence *Recurrence `json:"recurrence,omitempty"`
	SeriesID   *uuid.UUID  `json:"series_id,omitempty"`

	// Instrument fields apply to cheque-like obligations. For those, the
	// balance-relevant date is the clearing date, not the due date.
	IsInstrument       bool   `json:"is_instrument,omitempty"`
	InstrumentNumber   string `json:"instrument_number,omitempty"`
	InstrumentImageRef string `json:"instrument_image_ref,omitempty"`

	Status Status `json:"status"`

	// Settlement fields are populated exactly when Status is SETTLED.
	LinkedTransactionID *uuid.UUID `json:"linked_transaction_id,omitempty"`
	ClearedDate         *time.Time `json:"cleared_date,omitempty"`

	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsSettlementConsistent checks the settlement invariant: a SETTLED
// obligation carries both a linked transaction id and a cleared date, and a
// non-settled one carries neither.
func (o Obligation) IsSettlementConsistent() bool {
	if o.Status == StatusSettled {
		return o.LinkedTransactionID != nil && o.ClearedDate != nil
	}
	return o.LinkedTransactionID == nil && o.ClearedDate == nil
}
