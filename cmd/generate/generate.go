// Package generate handles batch series generation: postdated cheque sets
// and loan installment schedules.
package generate

import (
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"duebook/cmd/common"
	"duebook/cmd/root"
	"duebook/internal/currencyutils"
	"duebook/internal/dateutils"
	"duebook/internal/models"
	"duebook/internal/series"
)

var (
	amount       string
	currency     string
	counterparty string
	category     string
	accountID    string
	startDate    string
	cadence      string
	interval     int
	count        int
	firstCheque  string
	preview      bool
	fromLoan     bool
)

// Cmd represents the generate command
var Cmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a recurring obligation series",
	Long: `Generate a batch of obligations from one template: a set of postdated
cheques on a fixed cadence, or a loan installment schedule derived from an
account's loan terms. Use --preview to see the due dates without persisting.`,
	Run: generateFunc,
}

func init() {
	Cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount per occurrence")
	Cmd.Flags().StringVarP(&currency, "currency", "c", "CHF", "ISO currency code")
	Cmd.Flags().StringVarP(&counterparty, "party", "p", "", "Counterparty label")
	Cmd.Flags().StringVar(&category, "category", "", "Category label")
	Cmd.Flags().StringVar(&accountID, "account", "", "Linked account id")
	Cmd.Flags().StringVarP(&startDate, "start", "t", "", "Start date (YYYY-MM-DD)")
	Cmd.Flags().StringVar(&cadence, "cadence", "monthly", "Cadence: monthly, weekly or daily")
	Cmd.Flags().IntVar(&interval, "interval", 1, "Interval between occurrences, in cadence units")
	Cmd.Flags().IntVarP(&count, "count", "k", 1, "Number of occurrences")
	Cmd.Flags().StringVar(&firstCheque, "first-cheque", "", "First cheque number (marks the batch as instruments)")
	Cmd.Flags().BoolVar(&preview, "preview", false, "Print the due dates without creating anything")
	Cmd.Flags().BoolVar(&fromLoan, "from-loan", false, "Derive the series from the account's loan terms")
}

func generateFunc(cmd *cobra.Command, args []string) {
	rt, err := common.NewRuntime(cmd)
	if err != nil {
		root.Log.Errorf("Error initializing: %v", err)
		return
	}

	now := time.Now().UTC()

	if fromLoan {
		generateFromLoan(rt, now)
		return
	}

	cad, err := series.ParseCadence(cadence)
	if err != nil {
		root.Log.Errorf("Invalid cadence: %v", err)
		return
	}

	start, err := dateutils.ParseDate(startDate)
	if err != nil {
		root.Log.Errorf("Invalid start date: %v", err)
		return
	}

	dates, err := series.PreviewDates(start, cad, interval, count)
	if err != nil {
		root.Log.Errorf("Error generating dates: %v", err)
		return
	}

	if preview {
		for i, d := range dates {
			root.Log.Infof("Occurrence %d: %s", i+1, dateutils.ToISODate(d))
		}
		return
	}

	amt, err := currencyutils.ParseAmount(amount)
	if err != nil {
		root.Log.Errorf("Invalid amount: %v", err)
		return
	}

	template := series.Template{
		Amount:       models.NewMoney(amt, currency),
		Counterparty: counterparty,
		Category:     category,
		Direction:    models.DirectionDebit,
	}
	if accountID != "" {
		id, err := uuid.Parse(accountID)
		if err != nil {
			root.Log.Errorf("Invalid account id: %v", err)
			return
		}
		template.AccountID = &id
	}
	if firstCheque != "" {
		template.IsInstrument = true
		template.FirstInstrumentNumber = firstCheque
	}

	// The whole series is built in memory before anything is persisted, so a
	// failed build never leaves a partial batch in the store.
	obligations, seriesID, err := series.BuildSeries(template, cad, interval, dates, now)
	if err != nil {
		root.Log.Errorf("Error building series: %v", err)
		return
	}

	for _, o := range obligations {
		if err := rt.Store.Save(o); err != nil {
			root.Log.Errorf("Error saving obligation %s: %v", o.ID, err)
			return
		}
	}

	root.Log.Infof("Created series %s with %d obligations", seriesID, len(obligations))
}

func generateFromLoan(rt *common.Runtime, now time.Time) {
	if accountID == "" {
		root.Log.Error("--account is required with --from-loan")
		return
	}
	id, err := uuid.Parse(accountID)
	if err != nil {
		root.Log.Errorf("Invalid account id: %v", err)
		return
	}

	account, err := rt.Store.LoadAccount(id)
	if err != nil {
		root.Log.Errorf("Error loading account: %v", err)
		return
	}

	obligations, seriesID, err := series.LoanInstallments(account, counterparty, category, now)
	if err != nil {
		root.Log.Errorf("Error generating installments: %v", err)
		return
	}

	if preview {
		for i, o := range obligations {
			root.Log.Infof("Installment %d: %s due %s", i+1, o.Amount, dateutils.ToISODate(o.DueDate))
		}
		return
	}

	for _, o := range obligations {
		if err := rt.Store.Save(o); err != nil {
			root.Log.Errorf("Error saving obligation %s: %v", o.ID, err)
			return
		}
	}

	root.Log.Infof("Created loan series %s with %d installments", seriesID, len(obligations))
}
