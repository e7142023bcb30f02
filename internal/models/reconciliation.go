package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Severity classifies how far a stored balance has drifted from the balance
// projected out of the ledger.
type Severity string

const (
	SeverityNone     Severity = "NONE"
	SeverityMinor    Severity = "MINOR"
	SeverityMajor    Severity = "MAJOR"
	SeverityCritical Severity = "CRITICAL"
)

// ReconciliationResult reports the outcome of one reconciliation pass over an
// account. It is transient: the engine never writes a balance back, it only
// describes the discrepancy for an external collaborator to act on.
type ReconciliationResult struct {
	AccountID        uuid.UUID       `json:"account_id"`
	StoredBalance    decimal.Decimal `json:"stored_balance"`
	ProjectedBalance decimal.Decimal `json:"projected_balance"`
	Difference       decimal.Decimal `json:"difference"`

	// SnapshotTransactionID references the transaction whose snapshot payload
	// anchored the projection. Nil when no snapshot was available.
	SnapshotTransactionID *uuid.UUID `json:"snapshot_transaction_id,omitempty"`

	NeedsAttention bool     `json:"needs_attention"`
	Severity       Severity `json:"severity"`
}
