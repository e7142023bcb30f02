package series

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

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPreviewDates(t *testing.T) {
	start := date(2026, 2, 1)

	tests := []struct {
		name     string
		cadence  Cadence
		interval int
		count    int
		want     []time.Time
		wantErr  bool
	}{
		{
			name:     "monthly",
			cadence:  CadenceMonthly,
			interval: 1,
			count:    4,
			want:     []time.Time{date(2026, 2, 1), date(2026, 3, 1), date(2026, 4, 1), date(2026, 5, 1)},
		},
		{
			name:     "bimonthly",
			cadence:  CadenceMonthly,
			interval: 2,
			count:    3,
			want:     []time.Time{date(2026, 2, 1), date(2026, 4, 1), date(2026, 6, 1)},
		},
		{
			name:     "weekly",
			cadence:  CadenceWeekly,
			interval: 1,
			count:    3,
			want:     []time.Time{date(2026, 2, 1), date(2026, 2, 8), date(2026, 2, 15)},
		},
		{
			name:     "custom day interval",
			cadence:  CadenceDaily,
			interval: 10,
			count:    3,
			want:     []time.Time{date(2026, 2, 1), date(2026, 2, 11), date(2026, 2, 21)},
		},
		{name: "zero interval rejected", cadence: CadenceMonthly, interval: 0, count: 3, wantErr: true},
		{name: "negative interval rejected", cadence: CadenceMonthly, interval: -1, count: 3, wantErr: true},
		{name: "zero count rejected", cadence: CadenceMonthly, interval: 1, count: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PreviewDates(start, tt.cadence, tt.interval, tt.count)
			if tt.wantErr {
				assert.True(t, engineerror.IsInvalidParameter(err))
				return
			}
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.True(t, tt.want[i].Equal(got[i]), "index %d: got %s", i, got[i])
			}
		})
	}
}

func TestPreviewDatesIsDeterministic(t *testing.T) {
	start := date(2026, 2, 1)

	first, err := PreviewDates(start, CadenceMonthly, 1, 6)
	require.NoError(t, err)
	second, err := PreviewDates(start, CadenceMonthly, 1, 6)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildSeries(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	accountID := uuid.New()
	template := Template{
		Amount:       models.NewMoney(decimal.NewFromInt(1200), "CHF"),
		Counterparty: "Landlord",
		Category:     "Rent",
		Direction:    models.DirectionDebit,
		AccountID:    &accountID,
	}

	dates, err := PreviewDates(date(2026, 2, 1), CadenceMonthly, 1, 6)
	require.NoError(t, err)

	obligations, seriesID, err := BuildSeries(template, CadenceMonthly, 1, dates, now)
	require.NoError(t, err)
	require.Len(t, obligations, 6)
	assert.NotEqual(t, uuid.Nil, seriesID)

	// previewed dates must equal the dates actually used in the batch
	for i, o := range obligations {
		assert.True(t, dates[i].Equal(o.DueDate))
		assert.Equal(t, models.StatusPending, o.Status)
		assert.Equal(t, "Landlord", o.Counterparty)
		require.NotNil(t, o.SeriesID)
		assert.Equal(t, seriesID, *o.SeriesID)
		require.NotNil(t, o.Recurrence)
		assert.Equal(t, models.RecurrenceMonthly, o.Recurrence.Pattern)
		assert.True(t, o.IsSettlementConsistent())
	}
}

func TestBuildSeriesInstrumentNumbering(t *testing.T) {
	now := time.Now().UTC()
	template := Template{
		Amount:                models.NewMoney(decimal.NewFromInt(500), "CHF"),
		Counterparty:          "Garage",
		Direction:             models.DirectionDebit,
		IsInstrument:          true,
		FirstInstrumentNumber: "000101",
	}

	dates, err := PreviewDates(date(2026, 3, 1), CadenceMonthly, 1, 3)
	require.NoError(t, err)

	obligations, _, err := BuildSeries(template, CadenceMonthly, 1, dates, now)
	require.NoError(t, err)

	assert.Equal(t, "000101", obligations[0].InstrumentNumber)
	assert.Equal(t, "000102", obligations[1].InstrumentNumber)
	assert.Equal(t, "000103", obligations[2].InstrumentNumber)
	for _, o := range obligations {
		assert.True(t, o.IsInstrument)
	}
}

func TestBuildSeriesRejectsBadInput(t *testing.T) {
	now := time.Now().UTC()

	_, _, err := BuildSeries(Template{
		Amount: models.NewMoney(decimal.Zero, "CHF"),
	}, CadenceMonthly, 1, []time.Time{date(2026, 2, 1)}, now)
	assert.True(t, engineerror.IsInvalidObligation(err))

	_, _, err = BuildSeries(Template{
		Amount: models.NewMoney(decimal.NewFromInt(100), "CHF"),
	}, CadenceMonthly, 1, nil, now)
	assert.True(t, engineerror.IsInvalidParameter(err))
}

func TestLoanInstallments(t *testing.T) {
	now := time.Now().UTC()
	account := models.Account{
		ID:       uuid.New(),
		Currency: "CHF",
		Loan: &models.LoanTerms{
			Principal:        decimal.NewFromInt(3000),
			InstallmentCount: 4,
			StartDate:        date(2026, 2, 1),
		},
	}

	obligations, seriesID, err := LoanInstallments(account, "Bank", "Loan", now)
	require.NoError(t, err)
	require.Len(t, obligations, 4)
	assert.NotEqual(t, uuid.Nil, seriesID)

	wantDates := []time.Time{date(2026, 2, 1), date(2026, 3, 1), date(2026, 4, 1), date(2026, 5, 1)}
	for i, o := range obligations {
		assert.True(t, o.Amount.Amount.Equal(decimal.NewFromInt(750)), "installment %d: got %s", i, o.Amount)
		assert.True(t, wantDates[i].Equal(o.DueDate))
		assert.Equal(t, models.DirectionDebit, o.Direction)
		require.NotNil(t, o.SeriesID)
		assert.Equal(t, seriesID, *o.SeriesID)
	}
}

func TestLoanInstallmentsRejectsBadTerms(t *testing.T) {
	now := time.Now().UTC()

	_, _, err := LoanInstallments(models.Account{ID: uuid.New()}, "Bank", "Loan", now)
	assert.True(t, engineerror.IsInvalidParameter(err))

	_, _, err = LoanInstallments(models.Account{
		ID:       uuid.New(),
		Currency: "CHF",
		Loan: &models.LoanTerms{
			Principal:        decimal.NewFromInt(3000),
			InstallmentCount: 0,
			StartDate:        date(2026, 2, 1),
		},
	}, "Bank", "Loan", now)
	assert.True(t, engineerror.IsInvalidParameter(err))
}

func TestParseCadence(t *testing.T) {
	got, err := ParseCadence("Monthly")
	require.NoError(t, err)
	assert.Equal(t, CadenceMonthly, got)

	_, err = ParseCadence("fortnightly")
	assert.True(t, engineerror.IsInvalidParameter(err))
}
