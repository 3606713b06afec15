package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finance-tracker/ledger/internal/application/usecase/category"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/infra/dependency"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the ledger schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, database, err := openDatabase()
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := database.Migrate(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the system categories and print their IDs",
		Long: `Seed the system categories used for transfers, invoice payments, debt
payments and investment movements. Categories that already exist are reused,
and LEDGER_CATEGORY_* overrides are validated instead of seeded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := openDatabase()
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			overrides, err := dependency.CategoryOverrides(cfg.Ledger.Categories)
			if err != nil {
				return err
			}

			gdb := database.DB()
			ensure := category.NewEnsureSystemCategoriesUseCase(
				persistence.NewTransactor(gdb),
				persistence.NewCategoryRepository(gdb),
			)
			output, err := ensure.Execute(cmd.Context(), category.EnsureSystemCategoriesInput{Overrides: overrides})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, sc := range entity.SystemCategories {
				fmt.Fprintf(out, "%-22s %s\n", sc.Key, output.Refs.Get(sc.Key))
			}
			fmt.Fprintf(out, "created %d categories\n", output.Created)
			return nil
		},
	}
}
