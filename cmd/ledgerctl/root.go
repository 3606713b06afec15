package main

import (
	"github.com/spf13/cobra"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/infra/db"
)

var version = "1.0.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Maintenance CLI for the finance ledger",
		Long: `ledgerctl runs maintenance tasks against the ledger database.

It reads the same environment variables as the API server, including
DATABASE_DRIVER, DATABASE_URL, JWT_SECRET and the LEDGER_* settings.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMigrateCmd(),
		newSeedCmd(),
		newAuditCmd(),
		newTokenCmd(),
	)
	return root
}

// openDatabase connects with the environment configuration. The caller
// closes the returned database.
func openDatabase() (*config.Config, *db.Database, error) {
	cfg := config.Load()
	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return cfg, database, nil
}
