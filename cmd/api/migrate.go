package main

import (
	"errors"

	"github.com/spf13/cobra"

	"dataroom/internal/config"
	"dataroom/internal/database"
	"dataroom/internal/database/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the Postgres schema if it does not exist yet",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log := bootstrap()
		defer log.Sync()

		if cfg.StoreDriver != config.StoreDriverPostgres {
			return errors.New("migrate requires STORE_DRIVER=postgres")
		}
		db, err := database.NewPostgres(cfg.Database, log)
		if err != nil {
			return err
		}
		defer db.Close()

		return migration.EnsureMigrated(cmd.Context(), db, log)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
