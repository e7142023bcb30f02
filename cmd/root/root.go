// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"duebook/internal/config"
	"duebook/internal/fileutils"
	"duebook/internal/store"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "duebook",
		Short: "Track scheduled obligations and reconcile them against the ledger.",
		Long: `duebook tracks expected future payments (bills, loan installments,
postdated cheques), matches incoming transactions against them, and checks
stored account balances against the transaction ledger.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to duebook!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize and configure logging
			config.LoadEnv()
			Log = config.ConfigureLogging()

			fileutils.SetLogger(Log)
			store.SetLogger(Log)
		},
	}
)

// Init wires the persistent flags onto the root command.
func Init() {
	Cmd.PersistentFlags().String("data-dir", "", "Directory holding the YAML store and ledger CSV (overrides config)")
}
