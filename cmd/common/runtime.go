// Package common provides the shared runtime wiring used by every command:
// configuration, the YAML store, the ledger import and the engines.
package common

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"duebook/cmd/root"
	"duebook/internal/config"
	"duebook/internal/fileutils"
	"duebook/internal/lifecycle"
	"duebook/internal/logging"
	"duebook/internal/matching"
	"duebook/internal/reconcile"
	"duebook/internal/report"
	"duebook/internal/store"
)

// Runtime bundles the configured collaborators a command needs.
type Runtime struct {
	Config    *config.Config
	Logger    logging.Logger
	Store     *store.YAMLStore
	Lifecycle *lifecycle.Manager
	Matching  *matching.Engine
	Reconcile *reconcile.Engine
	Reports   *report.Generator
}

// NewRuntime loads configuration, opens the YAML store, imports the ledger
// CSV when present, and constructs the engines.
func NewRuntime(cmd *cobra.Command) (*Runtime, error) {
	cfg, err := config.InitializeConfig()
	if err != nil {
		return nil, err
	}

	dataDir := cfg.Data.Directory
	if flag := cmd.Flags().Lookup("data-dir"); flag != nil && flag.Changed {
		dataDir, _ = cmd.Flags().GetString("data-dir")
	}
	if dataDir == "" {
		dataDir = ".duebook"
	}

	logger := logging.NewLogrusAdapterFromLogger(root.Log)

	st, err := store.NewYAMLStore(dataDir, cfg.Data.ObligationsFile, cfg.Data.AccountsFile)
	if err != nil {
		return nil, err
	}

	reports := report.NewGenerator(logger)

	ledgerPath := filepath.Join(dataDir, cfg.Data.LedgerFile)
	if fileutils.FileExists(ledgerPath) {
		txs, err := reports.ReadLedgerCSV(ledgerPath)
		if err != nil {
			return nil, err
		}
		st.SetTransactions(txs)
	}

	return &Runtime{
		Config:    cfg,
		Logger:    logger,
		Store:     st,
		Lifecycle: lifecycle.NewManager(st, logger),
		Matching:  matching.NewEngine(logger),
		Reconcile: reconcile.NewEngine(logger),
		Reports:   reports,
	}, nil
}
