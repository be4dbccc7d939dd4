package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/memoelle/storefront-go/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  `Apply the embedded schema migrations to the database named by DATABASE_DSN.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		if err := db.RunMigrations(cfg.Storage.DatabaseDSN, logger); err != nil {
			return errors.Wrap(err, "db migrate")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
