package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duebook/internal/engineerror"
	"duebook/internal/models"
)

func obligation(counterparty string, createdAt time.Time) models.Obligation {
	return models.Obligation{
		ID:           uuid.New(),
		Amount:       models.NewMoney(decimal.NewFromInt(120), "CHF"),
		Counterparty: counterparty,
		Category:     "Utilities",
		Direction:    models.DirectionDebit,
		DueDate:      time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Status:       models.StatusPending,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func TestSaveAndLoadByID(t *testing.T) {
	s := NewMemoryStore()
	o := obligation("Swisscom", time.Now().UTC())

	require.NoError(t, s.Save(o))

	got, err := s.LoadByID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.Counterparty, got.Counterparty)
	assert.True(t, got.Amount.Amount.Equal(o.Amount.Amount))
}

func TestLoadByIDNotFound(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.LoadByID(uuid.New())
	require.Error(t, err)
	assert.True(t, engineerror.IsNotFound(err))
}

func TestSaveReplacesExisting(t *testing.T) {
	s := NewMemoryStore()
	o := obligation("Swisscom", time.Now().UTC())
	require.NoError(t, s.Save(o))

	o.Status = models.StatusOverdue
	require.NoError(t, s.Save(o))

	got, err := s.LoadByID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOverdue, got.Status)

	all, err := s.LoadAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLoadAllOrderedByCreation(t *testing.T) {
	s := NewMemoryStore()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	third := obligation("C", base.Add(2*time.Hour))
	first := obligation("A", base)
	second := obligation("B", base.Add(time.Hour))
	for _, o := range []models.Obligation{third, first, second} {
		require.NoError(t, s.Save(o))
	}

	all, err := s.LoadAll()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "A", all[0].Counterparty)
	assert.Equal(t, "B", all[1].Counterparty)
	assert.Equal(t, "C", all[2].Counterparty)
}

func TestLoadByStatus(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now().UTC()

	pending := obligation("Pending", now)
	overdue := obligation("Overdue", now)
	overdue.Status = models.StatusOverdue
	require.NoError(t, s.Save(pending))
	require.NoError(t, s.Save(overdue))

	got, err := s.LoadByStatus(models.StatusOverdue)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Overdue", got[0].Counterparty)
}

func TestLoadBySeries(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now().UTC()
	seriesID := uuid.New()
	otherSeries := uuid.New()

	inSeries := obligation("In", now)
	inSeries.SeriesID = &seriesID
	other := obligation("Other", now)
	other.SeriesID = &otherSeries
	standalone := obligation("Standalone", now)
	for _, o := range []models.Obligation{inSeries, other, standalone} {
		require.NoError(t, s.Save(o))
	}

	got, err := s.LoadBySeries(seriesID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "In", got[0].Counterparty)
}

func TestDelete(t *testing.T) {
	s := NewMemoryStore()
	o := obligation("Swisscom", time.Now().UTC())
	require.NoError(t, s.Save(o))

	require.NoError(t, s.Delete(o.ID))

	_, err := s.LoadByID(o.ID)
	assert.True(t, engineerror.IsNotFound(err))

	err = s.Delete(o.ID)
	assert.True(t, engineerror.IsNotFound(err))
}

func TestAccounts(t *testing.T) {
	s := NewMemoryStore()
	a := models.Account{
		ID:       uuid.New(),
		Name:     "Checking",
		Currency: "CHF",
		Balance:  decimal.NewFromInt(2500),
	}

	require.NoError(t, s.SaveAccount(a))

	got, err := s.LoadAccount(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Checking", got.Name)
	assert.True(t, got.Balance.Equal(a.Balance))

	_, err = s.LoadAccount(uuid.New())
	assert.True(t, engineerror.IsNotFound(err))
}

func TestTransactionsChronological(t *testing.T) {
	s := NewMemoryStore()
	accountID := uuid.New()
	otherID := uuid.New()

	mk := func(acct uuid.UUID, day int) models.Transaction {
		return models.Transaction{
			ID:        uuid.New(),
			AccountID: &acct,
			Amount:    models.NewMoney(decimal.NewFromInt(10), "CHF"),
			Direction: models.DirectionDebit,
			Date:      time.Date(2026, 1, day, 0, 0, 0, 0, time.UTC),
		}
	}

	s.AddTransaction(mk(accountID, 20))
	s.AddTransaction(mk(otherID, 5))
	s.AddTransaction(mk(accountID, 3))

	got, err := s.LoadByAccount(accountID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Date.Before(got[1].Date))

	all, err := s.LoadAllTransactions()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 3, all[0].Date.Day())
	assert.Equal(t, 20, all[2].Date.Day())
}
