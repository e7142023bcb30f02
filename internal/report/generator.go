// Package report renders obligations and reconciliation results for external
// consumption (CSV and JSON) and imports ledger transactions from CSV.
package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"duebook/internal/currencyutils"
	"duebook/internal/dateutils"
	"duebook/internal/logging"
	"duebook/internal/models"
)

// Generator produces CSV and JSON exports.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a report Generator.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Generator{logger: logger}
}

// ObligationRow is the flat CSV shape of one obligation.
type ObligationRow struct {
	ID                  string `csv:"id"`
	Amount              string `csv:"amount"`
	Currency            string `csv:"currency"`
	Counterparty        string `csv:"counterparty"`
	Category            string `csv:"category"`
	Direction           string `csv:"direction"`
	AccountID           string `csv:"account_id"`
	DueDate             string `csv:"due_date"`
	Status              string `csv:"status"`
	SeriesID            string `csv:"series_id"`
	InstrumentNumber    string `csv:"instrument_number"`
	LinkedTransactionID string `csv:"linked_transaction_id"`
	ClearedDate         string `csv:"cleared_date"`
	Note                string `csv:"note"`
}

// toRow flattens an obligation for CSV output.
func toRow(o models.Obligation) ObligationRow {
	row := ObligationRow{
		ID:               o.ID.String(),
		Amount:           o.Amount.Amount.StringFixed(2),
		Currency:         o.Amount.Currency,
		Counterparty:     o.Counterparty,
		Category:         o.Category,
		Direction:        string(o.Direction),
		DueDate:          dateutils.ToISODate(o.DueDate),
		Status:           string(o.Status),
		InstrumentNumber: o.InstrumentNumber,
		Note:             o.Note,
	}
	if o.AccountID != nil {
		row.AccountID = o.AccountID.String()
	}
	if o.SeriesID != nil {
		row.SeriesID = o.SeriesID.String()
	}
	if o.LinkedTransactionID != nil {
		row.LinkedTransactionID = o.LinkedTransactionID.String()
	}
	if o.ClearedDate != nil {
		row.ClearedDate = dateutils.ToISODate(*o.ClearedDate)
	}
	return row
}

// WriteObligationsCSV writes obligations to a CSV file.
func (g *Generator) WriteObligationsCSV(obligations []models.Obligation, csvFile string) error {
	rows := make([]ObligationRow, 0, len(obligations))
	for _, o := range obligations {
		rows = append(rows, toRow(o))
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			g.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("error writing CSV file: %w", err)
	}

	g.logger.Info("Wrote obligations CSV",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(rows)},
	)
	return nil
}

// ObligationsJSON renders obligations as indented JSON.
func (g *Generator) ObligationsJSON(obligations []models.Obligation) ([]byte, error) {
	data, err := json.MarshalIndent(obligations, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal obligations: %w", err)
	}
	return data, nil
}

// ReconciliationJSON renders a reconciliation result as indented JSON.
func (g *Generator) ReconciliationJSON(result models.ReconciliationResult) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reconciliation result: %w", err)
	}
	return data, nil
}

// ledgerRow is the CSV shape of one imported ledger transaction.
type ledgerRow struct {
	ID               string `csv:"id"`
	Amount           string `csv:"amount"`
	Currency         string `csv:"currency"`
	Counterparty     string `csv:"counterparty"`
	Direction        string `csv:"direction"`
	Date             string `csv:"date"`
	AccountID        string `csv:"account_id"`
	AvailableBalance string `csv:"available_balance"`
	AvailableCredit  string `csv:"available_credit"`
}

// ReadLedgerCSV imports ledger transactions from a CSV file. Rows are
// read-only inputs to matching and reconciliation; nothing writes them back.
func (g *Generator) ReadLedgerCSV(csvFile string) ([]models.Transaction, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			g.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []ledgerRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	transactions := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := parseLedgerRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		transactions = append(transactions, tx)
	}

	g.logger.Info("Read ledger CSV",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
	)
	return transactions, nil
}

func parseLedgerRow(row ledgerRow) (models.Transaction, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid transaction id '%s': %w", row.ID, err)
	}

	amount, err := currencyutils.ParseAmount(row.Amount)
	if err != nil {
		return models.Transaction{}, err
	}

	date, err := dateutils.ParseDate(row.Date)
	if err != nil {
		return models.Transaction{}, err
	}

	direction, err := models.ParseDirection(row.Direction)
	if err != nil {
		return models.Transaction{}, err
	}

	tx := models.Transaction{
		ID:           id,
		Amount:       models.NewMoney(amount, row.Currency),
		Counterparty: row.Counterparty,
		Direction:    direction,
		Date:         date,
	}

	if row.AccountID != "" {
		accountID, err := uuid.Parse(row.AccountID)
		if err != nil {
			return models.Transaction{}, fmt.Errorf("invalid account id '%s': %w", row.AccountID, err)
		}
		tx.AccountID = &accountID
	}

	snapshot := &models.BalanceSnapshot{}
	hasSnapshot := false
	if row.AvailableBalance != "" {
		balance, err := currencyutils.ParseAmount(row.AvailableBalance)
		if err != nil {
			return models.Transaction{}, err
		}
		snapshot.AvailableBalance = &balance
		hasSnapshot = true
	}
	if row.AvailableCredit != "" {
		credit, err := currencyutils.ParseAmount(row.AvailableCredit)
		if err != nil {
			return models.Transaction{}, err
		}
		snapshot.AvailableCredit = &credit
		hasSnapshot = true
	}
	if hasSnapshot {
		tx.Snapshot = snapshot
	}

	return tx, nil
}
