// Package add handles creation of a single obligation
package add

import (
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"duebook/cmd/common"
	"duebook/cmd/root"
	"duebook/internal/currencyutils"
	"duebook/internal/dateutils"
	"duebook/internal/lifecycle"
	"duebook/internal/models"
)

var (
	amount       string
	currency     string
	counterparty string
	category     string
	direction    string
	accountID    string
	dueDate      string
	note         string
	instrument   string
)

// Cmd represents the add command
var Cmd = &cobra.Command{
	Use:   "add",
	Short: "Add a single obligation",
	Long:  `Add one expected future payment (a bill, an installment, a postdated cheque).`,
	Run:   addFunc,
}

func init() {
	Cmd.Flags().StringVarP(&amount, "amount", "a", "", "Obligation amount")
	Cmd.Flags().StringVarP(&currency, "currency", "c", "CHF", "ISO currency code")
	Cmd.Flags().StringVarP(&counterparty, "party", "p", "", "Counterparty label")
	Cmd.Flags().StringVar(&category, "category", "", "Category label")
	Cmd.Flags().StringVarP(&direction, "direction", "d", "DEBIT", "Direction: DEBIT or CREDIT")
	Cmd.Flags().StringVar(&accountID, "account", "", "Linked account id")
	Cmd.Flags().StringVarP(&dueDate, "due", "t", "", "Due date (YYYY-MM-DD)")
	Cmd.Flags().StringVarP(&note, "note", "n", "", "Free-text note")
	Cmd.Flags().StringVar(&instrument, "instrument", "", "Instrument (cheque) number")
	_ = Cmd.MarkFlagRequired("amount")
	_ = Cmd.MarkFlagRequired("party")
	_ = Cmd.MarkFlagRequired("due")
}

func addFunc(cmd *cobra.Command, args []string) {
	rt, err := common.NewRuntime(cmd)
	if err != nil {
		root.Log.Errorf("Error initializing: %v", err)
		return
	}

	if err := currencyutils.ValidateCurrencyCode(currency); err != nil {
		root.Log.Errorf("Invalid currency: %v", err)
		return
	}

	amt, err := currencyutils.ParseAmount(amount)
	if err != nil {
		root.Log.Errorf("Invalid amount: %v", err)
		return
	}

	due, err := dateutils.ParseDate(dueDate)
	if err != nil {
		root.Log.Errorf("Invalid due date: %v", err)
		return
	}

	input := lifecycle.NewObligationInput{
		Amount:       models.NewMoney(amt, currency),
		Counterparty: counterparty,
		Category:     category,
		Direction:    models.Direction(direction),
		DueDate:      due,
		Note:         note,
	}
	if accountID != "" {
		id, err := uuid.Parse(accountID)
		if err != nil {
			root.Log.Errorf("Invalid account id: %v", err)
			return
		}
		input.AccountID = &id
	}
	if instrument != "" {
		input.IsInstrument = true
		input.InstrumentNumber = instrument
	}

	o, err := rt.Lifecycle.Create(input, time.Now().UTC())
	if err != nil {
		root.Log.Errorf("Error creating obligation: %v", err)
		return
	}

	root.Log.Infof("Created obligation %s due %s", o.ID, dateutils.ToISODate(o.DueDate))
}
