// Package series generates recurring obligation batches: the due-date
// sequence for a set of postdated cheques, and loan installment schedules
// derived from account loan terms.
package series

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"duebook/internal/dateutils"
	"duebook/internal/engineerror"
	"duebook/internal/models"
)

// Cadence selects the unit by which consecutive due dates advance.
type Cadence string

const (
	CadenceMonthly Cadence = "monthly"
	CadenceWeekly  Cadence = "weekly"
	CadenceDaily   Cadence = "daily"
)

// ParseCadence converts a string into a Cadence, rejecting unknown values.
func ParseCadence(s string) (Cadence, error) {
	switch Cadence(strings.ToLower(s)) {
	case CadenceMonthly:
		return CadenceMonthly, nil
	case CadenceWeekly:
		return CadenceWeekly, nil
	case CadenceDaily:
		return CadenceDaily, nil
	}
	return "", &engineerror.InvalidParameterError{
		Parameter: "cadence",
		Value:     s,
		Reason:    "must be one of monthly, weekly, daily",
	}
}

// Pattern maps a cadence onto the recurrence pattern stored on obligations.
func (c Cadence) Pattern() models.RecurrencePattern {
	switch c {
	case CadenceMonthly:
		return models.RecurrenceMonthly
	case CadenceWeekly:
		return models.RecurrenceWeekly
	default:
		return models.RecurrenceCustom
	}
}

// Template carries the shared attributes of every obligation in a batch.
// Each generated obligation combines the template with one due date.
type Template struct {
	Amount       models.Money
	Counterparty string
	Category     string
	Direction    models.Direction
	AccountID    *uuid.UUID
	Note         string

	// Instrument numbering: when IsInstrument is set, each obligation gets a
	// sequential number continued from FirstInstrumentNumber.
	IsInstrument         bool
	FirstInstrumentNumber string
}

// PreviewDates computes the ordered due-date sequence for a batch: date i is
// the start date advanced by i*interval units of the cadence. It is a pure
// function, safe to call for preview before anything is persisted.
// interval and count must both be at least 1; there is no silent clamping.
func PreviewDates(start time.Time, cadence Cadence, interval, count int) ([]time.Time, error) {
	if interval < 1 {
		return nil, &engineerror.InvalidParameterError{
			Parameter: "interval",
			Value:     strconv.Itoa(interval),
			Reason:    "must be at least 1",
		}
	}
	if count < 1 {
		return nil, &engineerror.InvalidParameterError{
			Parameter: "count",
			Value:     strconv.Itoa(count),
			Reason:    "must be at least 1",
		}
	}

	dates := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		step := i * interval
		switch cadence {
		case CadenceMonthly:
			dates = append(dates, dateutils.AddMonths(start, step))
		case CadenceWeekly:
			dates = append(dates, dateutils.AddWeeks(start, step))
		case CadenceDaily:
			dates = append(dates, dateutils.AddDays(start, step))
		default:
			return nil, &engineerror.InvalidParameterError{
				Parameter: "cadence",
				Value:     string(cadence),
				Reason:    "must be one of monthly, weekly, daily",
			}
		}
	}
	return dates, nil
}

// BuildSeries combines a template with a previously previewed date sequence
// into a full batch of PENDING obligations sharing one fresh series id.
// The whole batch is built in memory; the caller persists it afterwards, so
// a failure here never leaves a partial series behind.
func BuildSeries(template Template, cadence Cadence, interval int, dates []time.Time, now time.Time) ([]models.Obligation, uuid.UUID, error) {
	if len(dates) == 0 {
		return nil, uuid.Nil, &engineerror.InvalidParameterError{
			Parameter: "dates",
			Value:     "[]",
			Reason:    "must contain at least one due date",
		}
	}
	if !template.Amount.IsPositive() {
		return nil, uuid.Nil, &engineerror.InvalidObligationError{
			Field:  "amount",
			Reason: "must be positive",
		}
	}

	seriesID := uuid.New()
	recurrence := &models.Recurrence{
		Pattern:  cadence.Pattern(),
		Interval: interval,
	}

	obligations := make([]models.Obligation, 0, len(dates))
	for i, date := range dates {
		o := models.Obligation{
			ID:           uuid.New(),
			Amount:       template.Amount,
			Counterparty: template.Counterparty,
			Category:     template.Category,
			Direction:    template.Direction,
			AccountID:    template.AccountID,
			DueDate:      dateutils.Day(date),
			Recurrence:   recurrence,
			SeriesID:     &seriesID,
			Note:         template.Note,
			Status:       models.StatusPending,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if template.IsInstrument {
			o.IsInstrument = true
			o.InstrumentNumber = nextInstrumentNumber(template.FirstInstrumentNumber, i)
		}
		obligations = append(obligations, o)
	}
	return obligations, seriesID, nil
}

// LoanInstallments derives a monthly obligation series from an account's loan
// terms: principal split evenly across the installment count, starting at the
// loan start date.
func LoanInstallments(account models.Account, counterparty, category string, now time.Time) ([]models.Obligation, uuid.UUID, error) {
	if account.Loan == nil {
		return nil, uuid.Nil, &engineerror.InvalidParameterError{
			Parameter: "account",
			Value:     account.ID.String(),
			Reason:    "account has no loan terms",
		}
	}
	if account.Loan.InstallmentCount < 1 {
		return nil, uuid.Nil, &engineerror.InvalidParameterError{
			Parameter: "installment_count",
			Value:     strconv.Itoa(account.Loan.InstallmentCount),
			Reason:    "must be at least 1",
		}
	}
	if !account.Loan.Principal.IsPositive() {
		return nil, uuid.Nil, &engineerror.InvalidParameterError{
			Parameter: "principal",
			Value:     account.Loan.Principal.String(),
			Reason:    "must be positive",
		}
	}

	dates, err := PreviewDates(account.Loan.StartDate, CadenceMonthly, 1, account.Loan.InstallmentCount)
	if err != nil {
		return nil, uuid.Nil, err
	}

	installment := account.Loan.Principal.Div(decimal.NewFromInt(int64(account.Loan.InstallmentCount)))
	accountID := account.ID
	template := Template{
		Amount:       models.NewMoney(installment, account.Currency),
		Counterparty: counterparty,
		Category:     category,
		Direction:    models.DirectionDebit,
		AccountID:    &accountID,
	}
	return BuildSeries(template, CadenceMonthly, 1, dates, now)
}

// nextInstrumentNumber continues a cheque-book numbering scheme from a base
// number: numeric bases advance with their zero-padding width preserved
// ("000101" -> "000102"), anything else gets an ordinal suffix.
func nextInstrumentNumber(base string, offset int) string {
	if base == "" {
		return strconv.Itoa(offset + 1)
	}
	if offset == 0 {
		return base
	}
	if n, err := strconv.Atoi(base); err == nil {
		return fmt.Sprintf("%0*d", len(base), n+offset)
	}
	return fmt.Sprintf("%s-%d", base, offset+1)
}
