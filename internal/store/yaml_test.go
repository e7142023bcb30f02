package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duebook/internal/models"
)

func openStore(t *testing.T, dir string) *YAMLStore {
	t.Helper()
	s, err := NewYAMLStore(dir, "obligations.yaml", "accounts.yaml")
	require.NoError(t, err)
	return s
}

func TestYAMLStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := openStore(t, dir)

	created := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	seriesID := uuid.New()
	o := obligation("Assura", created)
	o.SeriesID = &seriesID
	o.Recurrence = &models.Recurrence{Pattern: models.RecurrenceMonthly, Interval: 1}
	require.NoError(t, s.Save(o))

	limit := decimal.NewFromInt(10000)
	a := models.Account{
		ID:          uuid.New(),
		Name:        "Visa",
		Currency:    "CHF",
		Balance:     decimal.NewFromInt(-1200),
		CreditLimit: &limit,
	}
	require.NoError(t, s.SaveAccount(a))

	// a fresh store over the same directory must see the same data
	reopened := openStore(t, dir)

	got, err := reopened.LoadByID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Assura", got.Counterparty)
	assert.True(t, got.Amount.Amount.Equal(o.Amount.Amount))
	assert.Equal(t, o.Amount.Currency, got.Amount.Currency)
	require.NotNil(t, got.SeriesID)
	assert.Equal(t, seriesID, *got.SeriesID)
	require.NotNil(t, got.Recurrence)
	assert.Equal(t, models.RecurrenceMonthly, got.Recurrence.Pattern)
	assert.True(t, got.DueDate.Equal(o.DueDate))

	acct, err := reopened.LoadAccount(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Visa", acct.Name)
	assert.True(t, acct.Balance.Equal(a.Balance))
	require.NotNil(t, acct.CreditLimit)
	assert.True(t, acct.CreditLimit.Equal(limit))
}

func TestYAMLStoreDeletePersists(t *testing.T) {
	dir := t.TempDir()
	s := openStore(t, dir)

	keep := obligation("Keep", time.Now().UTC())
	drop := obligation("Drop", time.Now().UTC())
	require.NoError(t, s.Save(keep))
	require.NoError(t, s.Save(drop))

	require.NoError(t, s.Delete(drop.ID))

	reopened := openStore(t, dir)
	all, err := reopened.LoadAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Keep", all[0].Counterparty)
}

func TestYAMLStoreCreatesDataDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	s := openStore(t, dir)
	require.NoError(t, s.Save(obligation("First", time.Now().UTC())))

	_, err := os.Stat(filepath.Join(dir, "obligations.yaml"))
	assert.NoError(t, err)
}

func TestYAMLStoreTransactionsNotPersisted(t *testing.T) {
	dir := t.TempDir()
	s := openStore(t, dir)

	accountID := uuid.New()
	s.SetTransactions([]models.Transaction{
		{
			ID:        uuid.New(),
			AccountID: &accountID,
			Amount:    models.NewMoney(decimal.NewFromInt(50), "CHF"),
			Direction: models.DirectionDebit,
			Date:      time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		},
	})

	txs, err := s.LoadAllTransactions()
	require.NoError(t, err)
	assert.Len(t, txs, 1)

	// the ledger is injected per run; reopening starts empty
	reopened := openStore(t, dir)
	txs, err = reopened.LoadAllTransactions()
	require.NoError(t, err)
	assert.Empty(t, txs)
}
