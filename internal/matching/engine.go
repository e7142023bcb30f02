// Package matching scores pending obligations against an incoming
// transaction and ranks the plausible settlement candidates. It is pure
// decision support: nothing here mutates state, and the caller is expected
// to put the best candidate in front of a human before settling anything.
package matching

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"duebook/internal/dateutils"
	"duebook/internal/logging"
	"duebook/internal/models"
	"duebook/internal/textutils"
)

// Scoring weights. The 150-point floor is reachable by combinations of
// individually weak signals (e.g. 50+50+25+25), so these exact values decide
// which real-world pairs get suggested. Do not retune one in isolation.
const (
	scoreAmountExact   = 100
	scoreAmountClose   = 50 // within 5%
	scoreAmountNear    = 25 // within 10%
	scoreNameExact     = 100
	scoreNameSubstring = 50
	scoreNameFuzzy     = 25
	scoreDateSameDay   = 50
	scoreDateWeek      = 25 // within 7 days
	scoreDateMonth     = 10 // within 30 days
	scoreAccountMatch  = 50

	// MinimumScore is the confidence floor a candidate must reach to qualify.
	MinimumScore = 150

	// WindowDays bounds the candidate filter: obligations due within this
	// many days of the transaction date, either side.
	WindowDays = 30

	// fuzzyDistanceMax is the Levenshtein ceiling for the fuzzy name tier.
	fuzzyDistanceMax = 3
)

// Engine finds and ranks candidate obligations for incoming transactions.
type Engine struct {
	logger logging.Logger
}

// NewEngine creates a matching Engine.
func NewEngine(logger logging.Logger) *Engine {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Engine{logger: logger}
}

// FindCandidates scores the given transaction against every obligation that
// passes the candidate filter (PENDING, same direction, due within ±30 days)
// and returns the qualifying candidates sorted descending by score. Ties keep
// the original filter order.
func (e *Engine) FindCandidates(tx models.Transaction, obligations []models.Obligation) []models.MatchCandidate {
	candidates := make([]models.MatchCandidate, 0)

	for _, o := range obligations {
		if o.Status != models.StatusPending {
			continue
		}
		if o.Direction != tx.Direction {
			continue
		}
		if dateutils.DaysBetween(tx.Date, o.DueDate) > WindowDays {
			continue
		}

		score, reasons := e.score(tx, o)
		if score < MinimumScore {
			continue
		}
		candidates = append(candidates, models.MatchCandidate{
			Transaction: tx,
			Obligation:  o,
			Score:       score,
			Reasons:     reasons,
		})
	}

	// Stable sort preserves filter order between equal scores.
	sortCandidates(candidates)

	e.logger.Debug("Candidate search completed",
		logging.Field{Key: logging.FieldTransactionID, Value: tx.ID.String()},
		logging.Field{Key: logging.FieldCount, Value: len(candidates)},
	)
	return candidates
}

// BestMatch returns the single highest-scoring qualifying candidate, or
// false when nothing reaches the floor.
func (e *Engine) BestMatch(tx models.Transaction, obligations []models.Obligation) (models.MatchCandidate, bool) {
	candidates := e.FindCandidates(tx, obligations)
	if len(candidates) == 0 {
		return models.MatchCandidate{}, false
	}
	return candidates[0], true
}

// score computes the additive match score for one transaction/obligation
// pair, together with the human-readable reasons behind each contribution.
func (e *Engine) score(tx models.Transaction, o models.Obligation) (int, []string) {
	total := 0
	var reasons []string

	if pts, reason := scoreAmount(tx.Amount.Amount, o.Amount.Amount); pts > 0 {
		total += pts
		reasons = append(reasons, reason)
	}
	if pts, reason := scoreCounterparty(tx.Counterparty, o.Counterparty); pts > 0 {
		total += pts
		reasons = append(reasons, reason)
	}
	if pts, reason := scoreDate(tx, o); pts > 0 {
		total += pts
		reasons = append(reasons, reason)
	}
	if tx.AccountID != nil && o.AccountID != nil && *tx.AccountID == *o.AccountID {
		total += scoreAccountMatch
		reasons = append(reasons, "same account")
	}

	return total, reasons
}

// scoreAmount awards 100 for an exact amount, 50 within 5% of the obligation
// amount, 25 within 10%.
func scoreAmount(txAmount, obAmount decimal.Decimal) (int, string) {
	if txAmount.Equal(obAmount) {
		return scoreAmountExact, "exact amount"
	}
	if obAmount.IsZero() {
		return 0, ""
	}
	diff := txAmount.Sub(obAmount).Abs()
	ratio := diff.Div(obAmount.Abs())
	if ratio.LessThanOrEqual(decimal.NewFromFloat(0.05)) {
		return scoreAmountClose, "amount within 5%"
	}
	if ratio.LessThanOrEqual(decimal.NewFromFloat(0.10)) {
		return scoreAmountNear, "amount within 10%"
	}
	return 0, ""
}

// scoreCounterparty awards the highest applicable tier only: exact
// case-insensitive match, then substring containment, then edit distance ≤3.
func scoreCounterparty(txName, obName string) (int, string) {
	na, nb := textutils.NormalizeLabel(txName), textutils.NormalizeLabel(obName)
	if na == "" || nb == "" {
		return 0, ""
	}
	if na == nb {
		return scoreNameExact, "exact counterparty"
	}
	if textutils.ContainsFold(txName, obName) {
		return scoreNameSubstring, "counterparty substring"
	}
	if d := textutils.Levenshtein(na, nb); d <= fuzzyDistanceMax {
		return scoreNameFuzzy, fmt.Sprintf("counterparty within edit distance %d", d)
	}
	return 0, ""
}

// scoreDate awards 50 for the same calendar day, 25 within a week, 10 within
// the 30-day window.
func scoreDate(tx models.Transaction, o models.Obligation) (int, string) {
	days := dateutils.DaysBetween(tx.Date, o.DueDate)
	switch {
	case days == 0:
		return scoreDateSameDay, "same day"
	case days <= 7:
		return scoreDateWeek, fmt.Sprintf("due within %d days", days)
	case days <= WindowDays:
		return scoreDateMonth, fmt.Sprintf("due within %d days", days)
	}
	return 0, ""
}

func sortCandidates(candidates []models.MatchCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}
