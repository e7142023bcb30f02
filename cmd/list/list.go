// Package list handles the status and upcoming queries
package list

import (
	"time"

	"github.com/spf13/cobra"

	"duebook/cmd/common"
	"duebook/cmd/root"
	"duebook/internal/dateutils"
	"duebook/internal/models"
)

var (
	status     string
	upcoming   bool
	windowDays int
)

// Cmd represents the list command
var Cmd = &cobra.Command{
	Use:   "list",
	Short: "List obligations by status or upcoming window",
	Long: `List obligations filtered by status, or with --upcoming the PENDING
obligations due within the next N days. Output is sorted by due date.`,
	Run: listFunc,
}

func init() {
	Cmd.Flags().StringVarP(&status, "status", "s", "PENDING", "Status filter: PENDING, OVERDUE, SETTLED or SKIPPED")
	Cmd.Flags().BoolVarP(&upcoming, "upcoming", "u", false, "Show the upcoming PENDING window instead")
	Cmd.Flags().IntVarP(&windowDays, "days", "k", 0, "Upcoming window in days (default from config)")
}

func listFunc(cmd *cobra.Command, args []string) {
	rt, err := common.NewRuntime(cmd)
	if err != nil {
		root.Log.Errorf("Error initializing: %v", err)
		return
	}

	var obligations []models.Obligation
	if upcoming {
		days := windowDays
		if days <= 0 {
			days = rt.Config.Upcoming.WindowDays
		}
		obligations, err = rt.Lifecycle.Upcoming(time.Now().UTC(), days)
	} else {
		var st models.Status
		st, err = models.ParseStatus(status)
		if err != nil {
			root.Log.Errorf("Invalid status: %v", err)
			return
		}
		obligations, err = rt.Lifecycle.ByStatus(st)
	}
	if err != nil {
		root.Log.Errorf("Error listing obligations: %v", err)
		return
	}

	if len(obligations) == 0 {
		root.Log.Info("No obligations found")
		return
	}
	for _, o := range obligations {
		root.Log.Infof("%s  %s  %-10s  %s  %s",
			o.ID, dateutils.ToISODate(o.DueDate), o.Status, o.Amount, o.Counterparty)
	}
}
