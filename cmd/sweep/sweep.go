// Package sweep handles the periodic overdue sweep
package sweep

import (
	"time"

	"github.com/spf13/cobra"

	"duebook/cmd/common"
	"duebook/cmd/root"
)

// Cmd represents the sweep command
var Cmd = &cobra.Command{
	Use:   "sweep",
	Short: "Flag past-due PENDING obligations as OVERDUE",
	Long: `Transition every PENDING obligation whose due date has passed to OVERDUE.
The sweep is idempotent: running it again changes nothing further.`,
	Run: sweepFunc,
}

func sweepFunc(cmd *cobra.Command, args []string) {
	rt, err := common.NewRuntime(cmd)
	if err != nil {
		root.Log.Errorf("Error initializing: %v", err)
		return
	}

	swept, err := rt.Lifecycle.SweepOverdue(time.Now().UTC())
	if err != nil {
		root.Log.Errorf("Error sweeping: %v", err)
		return
	}

	if len(swept) == 0 {
		root.Log.Info("Nothing overdue")
		return
	}
	for _, id := range swept {
		root.Log.Infof("Marked overdue: %s", id)
	}
}
