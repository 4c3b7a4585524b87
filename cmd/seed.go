package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"creativesync/internal/app"
	"creativesync/internal/config/configs"
	"creativesync/internal/db"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the sample campaigns into an empty persistent store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer syncLogger(logger)

		if cfg.Store.Backend == configs.BackendMemory {
			logger.Warn("memory store does not outlive this command; use serve --demo instead")
		}

		a, err := app.New(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := db.Seed(cmd.Context(), a.KV, time.Now())
		if err != nil {
			return err
		}
		logger.Info("seed finished", zap.Int("campaigns", n), zap.String("backend", cfg.Store.Backend))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
