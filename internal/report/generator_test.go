package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duebook/internal/models"
)

func sampleObligation() models.Obligation {
	accountID := uuid.New()
	return models.Obligation{
		ID:           uuid.New(),
		Amount:       models.NewMoney(decimal.NewFromFloat(89.90), "CHF"),
		Counterparty: "Swisscom",
		Category:     "Telecom",
		Direction:    models.DirectionDebit,
		AccountID:    &accountID,
		DueDate:      time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Status:       models.StatusPending,
		CreatedAt:    time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestWriteObligationsCSV(t *testing.T) {
	g := NewGenerator(nil)
	out := filepath.Join(t.TempDir(), "obligations.csv")

	txID := uuid.New()
	cleared := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	settled := sampleObligation()
	settled.Status = models.StatusSettled
	settled.LinkedTransactionID = &txID
	settled.ClearedDate = &cleared

	require.NoError(t, g.WriteObligationsCSV([]models.Obligation{sampleObligation(), settled}, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "counterparty")
	assert.Contains(t, lines[1], "89.90")
	assert.Contains(t, lines[1], "PENDING")
	assert.Contains(t, lines[2], "SETTLED")
	assert.Contains(t, lines[2], "2026-02-03")
}

func TestObligationsJSON(t *testing.T) {
	g := NewGenerator(nil)
	o := sampleObligation()

	data, err := g.ObligationsJSON([]models.Obligation{o})
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Swisscom", decoded[0]["counterparty"])
	assert.Equal(t, "PENDING", decoded[0]["status"])
	// settlement fields stay absent until the obligation is settled
	assert.NotContains(t, decoded[0], "linked_transaction_id")
}

func TestReconciliationJSON(t *testing.T) {
	g := NewGenerator(nil)
	result := models.ReconciliationResult{
		AccountID:        uuid.New(),
		StoredBalance:    decimal.NewFromInt(-12450),
		ProjectedBalance: decimal.NewFromInt(-11750),
		Difference:       decimal.NewFromInt(700),
		NeedsAttention:   true,
		Severity:         models.SeverityCritical,
	}

	data, err := g.ReconciliationJSON(result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "CRITICAL", decoded["severity"])
	assert.Equal(t, true, decoded["needs_attention"])
}

func TestReadLedgerCSV(t *testing.T) {
	g := NewGenerator(nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.csv")

	txID := uuid.New()
	accountID := uuid.New()
	csv := strings.Join([]string{
		"id,amount,currency,counterparty,direction,date,account_id,available_balance,available_credit",
		txID.String() + ",650.00,CHF,Garage Central,DEBIT,2026-01-05," + accountID.String() + ",-11200.00,",
		uuid.New().String() + ",120.50,CHF,Employer SA,CREDIT,2026-01-25,,,",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	txs, err := g.ReadLedgerCSV(path)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	first := txs[0]
	assert.Equal(t, txID, first.ID)
	assert.True(t, first.Amount.Amount.Equal(decimal.NewFromInt(650)))
	assert.Equal(t, "CHF", first.Amount.Currency)
	assert.Equal(t, models.DirectionDebit, first.Direction)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), first.Date)
	require.NotNil(t, first.AccountID)
	assert.Equal(t, accountID, *first.AccountID)
	require.True(t, first.HasSnapshot())
	require.NotNil(t, first.Snapshot.AvailableBalance)
	assert.True(t, first.Snapshot.AvailableBalance.Equal(decimal.NewFromInt(-11200)))

	second := txs[1]
	assert.Equal(t, models.DirectionCredit, second.Direction)
	assert.Nil(t, second.AccountID)
	assert.False(t, second.HasSnapshot())
}

func TestReadLedgerCSVRejectsUnknownDirection(t *testing.T) {
	g := NewGenerator(nil)

	// a miscased or typo'd direction must fail the row, never coerce to DEBIT
	for _, direction := range []string{"credit", "Debit", "CR", ""} {
		path := filepath.Join(t.TempDir(), "ledger.csv")
		csv := strings.Join([]string{
			"id,amount,currency,counterparty,direction,date,account_id,available_balance,available_credit",
			uuid.New().String() + ",650.00,CHF,Garage Central," + direction + ",2026-01-05,,,",
		}, "\n")
		require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

		_, err := g.ReadLedgerCSV(path)
		require.Error(t, err, "direction %q", direction)
		assert.Contains(t, err.Error(), "row 1")
		assert.Contains(t, err.Error(), "direction")
	}
}

func TestReadLedgerCSVRejectsBadRow(t *testing.T) {
	g := NewGenerator(nil)
	path := filepath.Join(t.TempDir(), "ledger.csv")

	csv := strings.Join([]string{
		"id,amount,currency,counterparty,direction,date,account_id,available_balance,available_credit",
		"not-a-uuid,650.00,CHF,Garage Central,DEBIT,2026-01-05,,,",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	_, err := g.ReadLedgerCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
}

func TestExportImportRoundTrip(t *testing.T) {
	g := NewGenerator(nil)
	out := filepath.Join(t.TempDir(), "obligations.csv")

	o := sampleObligation()
	require.NoError(t, g.WriteObligationsCSV([]models.Obligation{o}, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), o.ID.String())
	assert.Contains(t, string(data), o.AccountID.String())
	assert.Contains(t, string(data), "2026-02-01")
}
