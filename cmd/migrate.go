package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"creativesync/internal/db"
)

var migrateDown bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or revert the postgres store migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer syncLogger(logger)

		addr := cfg.Psql.Addr.String()
		if migrateDown {
			if err = db.Rollback(addr); err != nil {
				logger.Error("rollback error", zap.Error(err))
				return err
			}
			logger.Info("migrations reverted")
			return nil
		}
		if err = db.Migrate(addr); err != nil {
			logger.Error("migration error", zap.Error(err))
			return err
		}
		logger.Info("migrations applied successfully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "revert all migrations")
}
