// Package settle handles linking an obligation to a recorded transaction
package settle

import (
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"duebook/cmd/common"
	"duebook/cmd/root"
	"duebook/internal/dateutils"
)

var (
	obligationID  string
	transactionID string
	clearedDate   string
)

// Cmd represents the settle command
var Cmd = &cobra.Command{
	Use:   "settle",
	Short: "Settle an obligation against a recorded transaction",
	Long: `Mark an obligation SETTLED by linking it to an actually-recorded ledger
transaction and its clearing date. Settling an already-terminal obligation is
rejected.`,
	Run: settleFunc,
}

func init() {
	Cmd.Flags().StringVarP(&obligationID, "obligation", "o", "", "Obligation id")
	Cmd.Flags().StringVarP(&transactionID, "transaction", "x", "", "Ledger transaction id")
	Cmd.Flags().StringVarP(&clearedDate, "cleared", "t", "", "Clearing date (YYYY-MM-DD, default today)")
	_ = Cmd.MarkFlagRequired("obligation")
	_ = Cmd.MarkFlagRequired("transaction")
}

func settleFunc(cmd *cobra.Command, args []string) {
	rt, err := common.NewRuntime(cmd)
	if err != nil {
		root.Log.Errorf("Error initializing: %v", err)
		return
	}

	oid, err := uuid.Parse(obligationID)
	if err != nil {
		root.Log.Errorf("Invalid obligation id: %v", err)
		return
	}
	txid, err := uuid.Parse(transactionID)
	if err != nil {
		root.Log.Errorf("Invalid transaction id: %v", err)
		return
	}

	now := time.Now().UTC()
	cleared := now
	if clearedDate != "" {
		cleared, err = dateutils.ParseDate(clearedDate)
		if err != nil {
			root.Log.Errorf("Invalid cleared date: %v", err)
			return
		}
	}

	o, err := rt.Lifecycle.Settle(oid, txid, cleared, now)
	if err != nil {
		root.Log.Errorf("Error settling obligation: %v", err)
		return
	}

	root.Log.Infof("Settled %s (cleared %s)", o.ID, dateutils.ToISODate(*o.ClearedDate))
}
