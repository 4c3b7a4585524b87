package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"creativesync/internal/app"
	"creativesync/internal/db"
)

var serveDemo bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard API, metrics simulator and live stream",
	Long: `Run the dashboard API, metrics simulator and live stream.

Examples:
  creativesync serve                       # in-memory store on :8080
  STORE_BACKEND=redis creativesync serve   # persist to Redis
  creativesync serve --demo                # start with the sample campaigns`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().BoolVar(&serveDemo, "demo", false, "seed the sample campaigns when the store is empty")
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer syncLogger(logger)

	ctx := cmd.Context()
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		return err
	}
	defer a.Close()

	if serveDemo {
		n, err := db.Seed(ctx, a.KV, time.Now())
		if err != nil {
			return err
		}
		if n > 0 {
			if err = a.Campaigns.Load(ctx); err != nil {
				return err
			}
			a.Simulator.SetActiveCampaigns(a.Campaigns.ActiveCount())
			logger.Info("demo campaigns seeded", zap.Int("campaigns", n))
		}
	}

	return a.Run(ctx)
}
