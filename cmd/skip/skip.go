// Package skip handles marking an obligation as deliberately not paid
package skip

import (
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"duebook/cmd/common"
	"duebook/cmd/root"
)

var (
	obligationID string
	note         string
)

// Cmd represents the skip command
var Cmd = &cobra.Command{
	Use:   "skip",
	Short: "Skip an obligation",
	Long:  `Mark a PENDING or OVERDUE obligation SKIPPED, with an optional note.`,
	Run:   skipFunc,
}

func init() {
	Cmd.Flags().StringVarP(&obligationID, "obligation", "o", "", "Obligation id")
	Cmd.Flags().StringVarP(&note, "note", "n", "", "Reason for skipping")
	_ = Cmd.MarkFlagRequired("obligation")
}

func skipFunc(cmd *cobra.Command, args []string) {
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

	o, err := rt.Lifecycle.Skip(oid, note, time.Now().UTC())
	if err != nil {
		root.Log.Errorf("Error skipping obligation: %v", err)
		return
	}

	root.Log.Infof("Skipped %s", o.ID)
}
