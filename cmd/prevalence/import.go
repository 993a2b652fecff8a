package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emcoglab/brysbaert-prevalence/pkg/db"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Copy the workbook into the SQLite database",
		Long: `Load the workbook and replace the rows of the SQLite database at
--db-path with it. lookup --db and profile --db then read from the database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.config()
			table, err := a.loadTable(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			conn, err := db.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer conn.Close()

			n, err := db.ImportTable(cmd.Context(), conn, table, cfg.BatchSize, cfg.DataPath)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries into %s\n", n, cfg.DBPath)
			return nil
		},
	}
}
