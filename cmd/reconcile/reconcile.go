// Package reconcile handles the balance reconciliation command
package reconcile

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"duebook/cmd/common"
	"duebook/cmd/root"
)

var (
	accountID string
	asJSON    bool
)

// Cmd represents the reconcile command
var Cmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Check a stored account balance against the ledger",
	Long: `Project the expected balance of an account from its latest balance
snapshot and the subsequent ledger activity, and report any drift with a
severity grade. The stored balance is never modified.`,
	Run: reconcileFunc,
}

func init() {
	Cmd.Flags().StringVar(&accountID, "account", "", "Account id")
	Cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	_ = Cmd.MarkFlagRequired("account")
}

func reconcileFunc(cmd *cobra.Command, args []string) {
	rt, err := common.NewRuntime(cmd)
	if err != nil {
		root.Log.Errorf("Error initializing: %v", err)
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

	transactions, err := rt.Store.LoadByAccount(id)
	if err != nil {
		root.Log.Errorf("Error loading transactions: %v", err)
		return
	}

	result := rt.Reconcile.Reconcile(account, transactions)

	if asJSON {
		data, err := rt.Reports.ReconciliationJSON(result)
		if err != nil {
			root.Log.Errorf("Error rendering result: %v", err)
			return
		}
		fmt.Println(string(data))
		return
	}

	if result.SnapshotTransactionID == nil {
		root.Log.Info("No balance snapshot available, nothing to reconcile")
		return
	}
	if !result.NeedsAttention {
		root.Log.Infof("Balance consistent: stored %s, projected %s",
			result.StoredBalance.StringFixed(2), result.ProjectedBalance.StringFixed(2))
		return
	}
	root.Log.Warnf("Drift %s (%s): stored %s, projected %s",
		result.Difference.StringFixed(2), result.Severity,
		result.StoredBalance.StringFixed(2), result.ProjectedBalance.StringFixed(2))
}
