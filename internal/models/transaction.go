package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceSnapshot is an externally reported balance or credit figure captured
// at the moment a transaction was recorded. It serves as a trusted checkpoint
// for reconciliation. Exactly one of the two fields is normally set.
type BalanceSnapshot struct {
	AvailableBalance *decimal.Decimal `json:"available_balance,omitempty"`
	AvailableCredit  *decimal.Decimal `json:"available_credit,omitempty"`
}

// Transaction is an already-settled monetary event from the ledger. The
// engine treats it as read-only: matching scores it against obligations and
// reconciliation sums it, but never mutates it.
type Transaction struct {
	ID           uuid.UUID  `json:"id" csv:"id"`
	Amount       Money      `json:"amount" csv:"-"`
	Counterparty string     `json:"counterparty" csv:"counterparty"`
	Direction    Direction  `json:"direction" csv:"direction"`
	Date         time.Time  `json:"date" csv:"-"`
	AccountID    *uuid.UUID `json:"account_id,omitempty" csv:"-"`

	Snapshot *BalanceSnapshot `json:"snapshot,omitempty" csv:"-"`
}

// HasSnapshot returns true if the transaction carries a usable balance
// snapshot payload.
func (t Transaction) HasSnapshot() bool {
	return t.Snapshot != nil && (t.Snapshot.AvailableBalance != nil || t.Snapshot.AvailableCredit != nil)
}
