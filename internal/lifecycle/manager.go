// Package lifecycle owns the obligation state machine: creation, the
// periodic overdue sweep, settlement, skipping and the status/upcoming
// queries. All mutations of an obligation go through the Manager; nothing in
// here ever touches an account balance.
package lifecycle

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"duebook/internal/dateutils"
	"duebook/internal/engineerror"
	"duebook/internal/logging"
	"duebook/internal/models"
	"duebook/internal/store"
)

// Manager applies lifecycle transitions against an injected repository.
type Manager struct {
	repo   store.ObligationRepository
	logger logging.Logger
}

// NewManager creates a Manager over the given repository.
func NewManager(repo store.ObligationRepository, logger logging.Logger) *Manager {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Manager{repo: repo, logger: logger}
}

// NewObligationInput carries the user-supplied attributes for Create.
type NewObligationInput struct {
	Amount       models.Money
	Counterparty string
	Category     string
	Direction    models.Direction
	AccountID    *uuid.UUID
	DueDate      time.Time
	Recurrence   *models.Recurrence

	IsInstrument       bool
	InstrumentNumber   string
	InstrumentImageRef string

	Note string
}

// Create validates the input, assigns an id, stamps timestamps and persists
// a new PENDING obligation. Validation is structural only: a positive
// amount, a currency code and a real due date.
func (m *Manager) Create(input NewObligationInput, now time.Time) (models.Obligation, error) {
	if !input.Amount.IsPositive() {
		return models.Obligation{}, &engineerror.InvalidObligationError{
			Field:  "amount",
			Reason: "must be positive",
		}
	}
	if input.Amount.Currency == "" {
		return models.Obligation{}, &engineerror.InvalidObligationError{
			Field:  "currency",
			Reason: "must not be empty",
		}
	}
	if input.DueDate.IsZero() {
		return models.Obligation{}, &engineerror.InvalidObligationError{
			Field:  "due_date",
			Reason: "must be a valid calendar date",
		}
	}
	if input.Direction != models.DirectionDebit && input.Direction != models.DirectionCredit {
		return models.Obligation{}, &engineerror.InvalidObligationError{
			Field:  "direction",
			Reason: "must be DEBIT or CREDIT",
		}
	}

	o := models.Obligation{
		ID:                 uuid.New(),
		Amount:             input.Amount,
		Counterparty:       input.Counterparty,
		Category:           input.Category,
		Direction:          input.Direction,
		AccountID:          input.AccountID,
		DueDate:            dateutils.Day(input.DueDate),
		Recurrence:         input.Recurrence,
		IsInstrument:       input.IsInstrument,
		InstrumentNumber:   input.InstrumentNumber,
		InstrumentImageRef: input.InstrumentImageRef,
		Note:               input.Note,
		Status:             models.StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := m.repo.Save(o); err != nil {
		return models.Obligation{}, err
	}

	m.logger.Info("Obligation created",
		logging.Field{Key: logging.FieldObligationID, Value: o.ID.String()},
		logging.Field{Key: "due_date", Value: dateutils.ToISODate(o.DueDate)},
	)
	return o, nil
}

// SweepOverdue transitions every PENDING obligation whose due date is
// strictly before today to OVERDUE and returns the ids it touched. It is
// idempotent: already-OVERDUE and terminal obligations are left alone.
func (m *Manager) SweepOverdue(now time.Time) ([]uuid.UUID, error) {
	pending, err := m.repo.LoadByStatus(models.StatusPending)
	if err != nil {
		return nil, err
	}

	today := dateutils.Day(now)
	var swept []uuid.UUID
	for _, o := range pending {
		if !dateutils.Day(o.DueDate).Before(today) {
			continue
		}
		o.Status = models.StatusOverdue
		o.UpdatedAt = now
		if err := m.repo.Save(o); err != nil {
			return swept, err
		}
		swept = append(swept, o.ID)
	}

	if len(swept) > 0 {
		m.logger.Info("Overdue sweep completed",
			logging.Field{Key: logging.FieldCount, Value: len(swept)},
		)
	}
	return swept, nil
}

// Settle links an obligation to an actually-recorded transaction and its
// clearing date, transitioning PENDING or OVERDUE to SETTLED. Settling a
// terminal obligation fails with InvalidTransition so that two confirmation
// flows racing on the same obligation cannot both succeed.
func (m *Manager) Settle(id, transactionID uuid.UUID, clearedDate, now time.Time) (models.Obligation, error) {
	o, err := m.repo.LoadByID(id)
	if err != nil {
		return models.Obligation{}, err
	}

	if !o.Status.CanTransitionTo(models.StatusSettled) {
		return models.Obligation{}, &engineerror.InvalidTransitionError{
			ObligationID: id.String(),
			From:         string(o.Status),
			To:           string(models.StatusSettled),
		}
	}

	cleared := dateutils.Day(clearedDate)
	o.Status = models.StatusSettled
	o.LinkedTransactionID = &transactionID
	o.ClearedDate = &cleared
	o.UpdatedAt = now

	if err := m.repo.Save(o); err != nil {
		return models.Obligation{}, err
	}

	m.logger.Info("Obligation settled",
		logging.Field{Key: logging.FieldObligationID, Value: o.ID.String()},
		logging.Field{Key: logging.FieldTransactionID, Value: transactionID.String()},
	)
	return o, nil
}

// Skip marks an obligation as deliberately not paid, transitioning PENDING or
// OVERDUE to SKIPPED. The terminal-state guard matches Settle's.
func (m *Manager) Skip(id uuid.UUID, note string, now time.Time) (models.Obligation, error) {
	o, err := m.repo.LoadByID(id)
	if err != nil {
		return models.Obligation{}, err
	}

	if !o.Status.CanTransitionTo(models.StatusSkipped) {
		return models.Obligation{}, &engineerror.InvalidTransitionError{
			ObligationID: id.String(),
			From:         string(o.Status),
			To:           string(models.StatusSkipped),
		}
	}

	o.Status = models.StatusSkipped
	if note != "" {
		if o.Note != "" {
			o.Note = o.Note + "; " + note
		} else {
			o.Note = note
		}
	}
	o.UpdatedAt = now

	if err := m.repo.Save(o); err != nil {
		return models.Obligation{}, err
	}

	m.logger.Info("Obligation skipped",
		logging.Field{Key: logging.FieldObligationID, Value: o.ID.String()},
	)
	return o, nil
}

// ByStatus returns obligations in the given status, sorted ascending by due
// date with ties broken by creation order.
func (m *Manager) ByStatus(status models.Status) ([]models.Obligation, error) {
	out, err := m.repo.LoadByStatus(status)
	if err != nil {
		return nil, err
	}
	sortByDueDate(out)
	return out, nil
}

// Upcoming returns PENDING obligations due within [today, today+withinDays],
// sorted ascending by due date with ties broken by creation order.
func (m *Manager) Upcoming(now time.Time, withinDays int) ([]models.Obligation, error) {
	if withinDays < 0 {
		return nil, &engineerror.InvalidParameterError{
			Parameter: "withinDays",
			Value:     "<0",
			Reason:    "must not be negative",
		}
	}

	pending, err := m.repo.LoadByStatus(models.StatusPending)
	if err != nil {
		return nil, err
	}

	today := dateutils.Day(now)
	horizon := dateutils.AddDays(today, withinDays)
	out := make([]models.Obligation, 0)
	for _, o := range pending {
		due := dateutils.Day(o.DueDate)
		if !due.Before(today) && !due.After(horizon) {
			out = append(out, o)
		}
	}
	sortByDueDate(out)
	return out, nil
}

// DeleteSeries removes every obligation in a series, regardless of status.
// Series removal is always an explicit external request; nothing in the
// engine ever deletes obligations on its own.
func (m *Manager) DeleteSeries(seriesID uuid.UUID) (int, error) {
	obligations, err := m.repo.LoadBySeries(seriesID)
	if err != nil {
		return 0, err
	}

	for i, o := range obligations {
		if err := m.repo.Delete(o.ID); err != nil {
			return i, err
		}
	}

	m.logger.Info("Series deleted",
		logging.Field{Key: logging.FieldSeriesID, Value: seriesID.String()},
		logging.Field{Key: logging.FieldCount, Value: len(obligations)},
	)
	return len(obligations), nil
}

func sortByDueDate(obligations []models.Obligation) {
	sort.SliceStable(obligations, func(i, j int) bool {
		if c := dateutils.CompareDates(obligations[i].DueDate, obligations[j].DueDate); c != 0 {
			return c < 0
		}
		return obligations[i].CreatedAt.Before(obligations[j].CreatedAt)
	})
}
