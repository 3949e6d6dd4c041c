package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Unwrap legacy dict-wrapped variable values in place",
	Long: `Older databases stored variable values as serialized dicts like
{"value": "Kings County"}. Migrate rewrites every wrapped value to its
plain string. Running it on an already-migrated database is a no-op.`,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := st.MigrateLegacyValues()
	if err != nil {
		return fmt.Errorf("migrate values: %w", err)
	}
	fmt.Printf("Migrated %d value(s)\n", n)
	return nil
}
