package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/finance-tracker/ledger/internal/application/usecase/account"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
)

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Compare stored account balances with their transactions",
		Long: `Audit every account: the stored balance must equal the initial balance
plus completed income minus completed expense. Drifted accounts are listed
and logged.`,
		Example: `  # Print every account
  ledgerctl audit

  # Fail the run when any account drifted
  ledgerctl audit --fail-on-drift --json`,
		RunE: runAudit,
	}

	cmd.Flags().Bool("fail-on-drift", false, "Exit with an error when any account drifted")
	cmd.Flags().Bool("json", false, "Print the audit as JSON")
	return cmd
}

type auditRow struct {
	AccountID string `json:"account_id"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Stored    string `json:"stored_balance"`
	Derived   string `json:"derived_balance"`
	Drift     string `json:"drift"`
	InSync    bool   `json:"in_sync"`
}

func runAudit(cmd *cobra.Command, args []string) error {
	failOnDrift, _ := cmd.Flags().GetBool("fail-on-drift")
	asJSON, _ := cmd.Flags().GetBool("json")

	_, database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	gdb := database.DB()
	audit := account.NewAuditAllUseCase(
		persistence.NewAccountRepository(gdb),
		persistence.NewTransactionRepository(gdb),
	)
	output, err := audit.Execute(cmd.Context())
	if err != nil {
		return err
	}

	rows := make([]auditRow, len(output.Audits))
	for i, a := range output.Audits {
		rows[i] = auditRow{
			AccountID: a.AccountID.String(),
			UserID:    a.UserID.String(),
			Name:      a.AccountName,
			Stored:    a.StoredBalance.StringFixed(2),
			Derived:   a.DerivedBalance.StringFixed(2),
			Drift:     a.Drift.StringFixed(2),
			InSync:    a.InSync,
		}
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return err
		}
	} else {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ACCOUNT\tNAME\tSTORED\tDERIVED\tDRIFT")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.AccountID, r.Name, r.Stored, r.Derived, r.Drift)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(out, "%d accounts, %d drifted\n", len(rows), output.DriftCount)
	}

	if failOnDrift && output.DriftCount > 0 {
		return fmt.Errorf("%d accounts drifted", output.DriftCount)
	}
	return nil
}
