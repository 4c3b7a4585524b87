package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"creativesync/internal/config"
	"creativesync/internal/config/configs"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "creativesync",
	Short:         "AI campaign dashboard service",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment")
}

// main is the entry point of the creativesync service. Every subcommand
// loads configuration the same way and stops on SIGINT or SIGTERM.
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		cancel()
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger.
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return cfg, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return cfg, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, logger, nil
}

func newLogger(cfg configs.Logger) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Encoding() == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(cfg.ZapLevel())
	zc.OutputPaths = []string{"stdout"}
	return zc.Build()
}

func syncLogger(logger *zap.Logger) {
	// stdout cannot be synced on some platforms
	if err := logger.Sync(); err != nil && !errors.Is(err, syscall.EINVAL) && !errors.Is(err, syscall.ENOTTY) {
		fmt.Fprintln(os.Stderr, "sync logger:", err)
	}
}
