// Package match handles candidate search for an incoming transaction
package match

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"duebook/cmd/common"
	"duebook/cmd/root"
	"duebook/internal/models"
)

var (
	transactionID string
	bestOnly      bool
)

// Cmd represents the match command
var Cmd = &cobra.Command{
	Use:   "match",
	Short: "Find obligations a ledger transaction might settle",
	Long: `Score a ledger transaction against the pending obligations and print the
qualifying candidates, best first. Matching is read-only: confirm a candidate
with the settle command.`,
	Run: matchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&transactionID, "transaction", "x", "", "Ledger transaction id")
	Cmd.Flags().BoolVarP(&bestOnly, "best", "b", false, "Print only the best candidate")
	_ = Cmd.MarkFlagRequired("transaction")
}

func matchFunc(cmd *cobra.Command, args []string) {
	rt, err := common.NewRuntime(cmd)
	if err != nil {
		root.Log.Errorf("Error initializing: %v", err)
		return
	}

	txid, err := uuid.Parse(transactionID)
	if err != nil {
		root.Log.Errorf("Invalid transaction id: %v", err)
		return
	}

	transactions, err := rt.Store.LoadAllTransactions()
	if err != nil {
		root.Log.Errorf("Error loading ledger: %v", err)
		return
	}
	var tx *models.Transaction
	for i := range transactions {
		if transactions[i].ID == txid {
			tx = &transactions[i]
			break
		}
	}
	if tx == nil {
		root.Log.Errorf("Transaction %s not in ledger", txid)
		return
	}

	obligations, err := rt.Store.LoadAll()
	if err != nil {
		root.Log.Errorf("Error loading obligations: %v", err)
		return
	}

	if bestOnly {
		best, ok := rt.Matching.BestMatch(*tx, obligations)
		if !ok {
			root.Log.Info("No qualifying candidate")
			return
		}
		printCandidate(best)
		return
	}

	candidates := rt.Matching.FindCandidates(*tx, obligations)
	if len(candidates) == 0 {
		root.Log.Info("No qualifying candidates")
		return
	}
	for _, c := range candidates {
		printCandidate(c)
	}
}

func printCandidate(c models.MatchCandidate) {
	root.Log.Infof("score %d: obligation %s (%s, %s)", c.Score, c.Obligation.ID, c.Obligation.Amount, c.Obligation.Counterparty)
	for _, reason := range c.Reasons {
		root.Log.Infof("  - %s", reason)
	}
}
