package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"minipm/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the database schema",
	Long: `Opens the configured database, creates missing tables and adds columns
introduced since the file was created. Safe to run repeatedly.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&serveDB, "db", "", "SQLite database path (overrides config)")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadServerConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.Database.Driver, cfg.Database.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	res := st.Migration()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Database: %s (%s)\n", cfg.Database.Path, cfg.Database.Driver)
	switch {
	case res.FromVersion == 0 && res.MigrationsRun == 0:
		fmt.Fprintf(out, "Created schema v%d\n", res.ToVersion)
	case res.FromVersion == res.ToVersion && res.MigrationsRun == 0:
		fmt.Fprintf(out, "Schema is up to date (v%d)\n", res.ToVersion)
	default:
		fmt.Fprintf(out, "Schema v%d -> v%d, %d column migrations applied in %s\n",
			res.FromVersion, res.ToVersion, res.MigrationsRun, res.Duration.Round(time.Millisecond))
	}
	return nil
}
