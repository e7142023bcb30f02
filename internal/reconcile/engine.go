// Package reconcile checks whether an account's stored balance is still
// trustworthy: it anchors on the most recent externally reported balance
// snapshot, projects the expected balance forward through the ledger, and
// classifies any drift by severity. The engine is read-only; it never writes
// a balance back.
package reconcile

import (
	"sort"

	"github.com/shopspring/decimal"

	"duebook/internal/dateutils"
	"duebook/internal/logging"
	"duebook/internal/models"
)

// Drift thresholds, in account currency units. The tolerance is
// max(toleranceUnits, tolerancePct of |stored balance|); beyond it, drift is
// graded minor / major / critical.
var (
	toleranceUnits = decimal.NewFromInt(100)
	tolerancePct   = decimal.NewFromFloat(0.05)

	majorUnits    = decimal.NewFromInt(200)
	criticalUnits = decimal.NewFromInt(500)
	majorPct      = decimal.NewFromFloat(0.05)
	criticalPct   = decimal.NewFromFloat(0.10)

	hundredPct = decimal.NewFromInt(1)
)

// Engine reconciles stored account balances against the transaction ledger.
type Engine struct {
	logger logging.Logger
}

// NewEngine creates a reconciliation Engine.
func NewEngine(logger logging.Logger) *Engine {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Engine{logger: logger}
}

// Reconcile inspects the account's transactions, finds the latest balance
// snapshot, projects the expected current balance and classifies the drift.
// When no snapshot exists there is nothing to reconcile and the result says
// so; that case is a valid outcome, not an error.
func (e *Engine) Reconcile(account models.Account, transactions []models.Transaction) models.ReconciliationResult {
	result := models.ReconciliationResult{
		AccountID:     account.ID,
		StoredBalance: account.Balance,
		Severity:      models.SeverityNone,
	}

	snapshot, ok := latestSnapshot(transactions)
	if !ok {
		result.ProjectedBalance = account.Balance
		result.Difference = decimal.Zero
		e.logger.Debug("No balance snapshot available, nothing to reconcile",
			logging.Field{Key: logging.FieldAccountID, Value: account.ID.String()},
		)
		return result
	}

	base, ok := snapshotValue(account, snapshot)
	if !ok {
		// Snapshot payload present but unusable (credit figure without a
		// known credit limit). Same outcome as no snapshot.
		result.ProjectedBalance = account.Balance
		result.Difference = decimal.Zero
		return result
	}

	snapshotID := snapshot.ID
	result.SnapshotTransactionID = &snapshotID
	result.ProjectedBalance = project(base, snapshot, transactions)
	result.Difference = account.Balance.Sub(result.ProjectedBalance).Abs()

	result.NeedsAttention, result.Severity = classify(account.Balance, result.Difference)

	if result.NeedsAttention {
		e.logger.Warn("Balance drift detected",
			logging.Field{Key: logging.FieldAccountID, Value: account.ID.String()},
			logging.Field{Key: logging.FieldSeverity, Value: string(result.Severity)},
			logging.Field{Key: "difference", Value: result.Difference.String()},
		)
	}
	return result
}

// latestSnapshot finds the most recent transaction carrying a snapshot
// payload, by date descending.
func latestSnapshot(transactions []models.Transaction) (models.Transaction, bool) {
	found := false
	var latest models.Transaction
	for _, tx := range transactions {
		if !tx.HasSnapshot() {
			continue
		}
		if !found || tx.Date.After(latest.Date) {
			latest = tx
			found = true
		}
	}
	return latest, found
}

// snapshotValue extracts the trusted balance from a snapshot transaction. An
// available-balance figure is used as-is. An available-credit figure needs
// the account's credit limit: the balance is then -(limit - availableCredit),
// a debt expressed as a negative number.
func snapshotValue(account models.Account, tx models.Transaction) (decimal.Decimal, bool) {
	if tx.Snapshot.AvailableBalance != nil {
		return *tx.Snapshot.AvailableBalance, true
	}
	if tx.Snapshot.AvailableCredit != nil && account.CreditLimit != nil {
		return account.CreditLimit.Sub(*tx.Snapshot.AvailableCredit).Neg(), true
	}
	return decimal.Zero, false
}

// project walks every transaction dated on or after the snapshot date,
// excluding the snapshot transaction itself, adding credits and subtracting
// debits. The sum is order-independent, but we sort chronologically so the
// walk is deterministic.
func project(base decimal.Decimal, snapshot models.Transaction, transactions []models.Transaction) decimal.Decimal {
	sorted := make([]models.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	snapshotDay := dateutils.Day(snapshot.Date)
	projected := base
	for _, tx := range sorted {
		if tx.ID == snapshot.ID {
			continue
		}
		if dateutils.Day(tx.Date).Before(snapshotDay) {
			continue
		}
		if tx.Direction.IsCredit() {
			projected = projected.Add(tx.Amount.Amount)
		} else {
			projected = projected.Sub(tx.Amount.Amount)
		}
	}
	return projected
}

// classify grades the drift. Within max(100, 5%·|stored|) nothing is needed.
// Beyond it: over 500 units or 10% is critical, over 200 units or 5% is
// major, anything else minor. A stored balance of exactly zero treats any
// nonzero drift as 100% rather than dividing by zero.
func classify(stored, difference decimal.Decimal) (bool, models.Severity) {
	if difference.IsZero() {
		return false, models.SeverityNone
	}

	absStored := stored.Abs()
	var pct decimal.Decimal
	if absStored.IsZero() {
		pct = hundredPct
	} else {
		pct = difference.Div(absStored)
	}

	threshold := decimal.Max(toleranceUnits, tolerancePct.Mul(absStored))
	if difference.LessThanOrEqual(threshold) {
		return false, models.SeverityNone
	}

	switch {
	case difference.GreaterThan(criticalUnits) || pct.GreaterThan(criticalPct):
		return true, models.SeverityCritical
	case difference.GreaterThan(majorUnits) || pct.GreaterThan(majorPct):
		return true, models.SeverityMajor
	default:
		return true, models.SeverityMinor
	}
}
