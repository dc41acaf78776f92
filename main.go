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

	"github.com/status-im/coin-browser/config"
	"github.com/status-im/coin-browser/core"
	"github.com/status-im/coin-browser/logger"
)

type rootFlags struct {
	configPath string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:          "coin-browser",
		Short:        "Browse CoinRanking coins, their price history and your favorites",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "config.yaml", "path to the yaml config file")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "overrides log_level from the config")

	rootCmd.AddCommand(
		newListCmd(flags),
		newHistoryCmd(flags),
		newFavoriteCmd(flags),
		newServeCmd(flags),
	)
	return rootCmd
}

// loadConfig reads the config file, a missing file means defaults.
// Warnings go to a console logger since the configured level is not known yet.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	bootstrap, err := logger.NewDevelopment("warn")
	if err != nil {
		return nil, fmt.Errorf("error creating logger: %w", err)
	}

	cfg, err := config.LoadConfig(flags.configPath, bootstrap)
	if errors.Is(err, os.ErrNotExist) {
		cfg = config.Default()
		apiKey, keyErr := config.LoadAPIKey(cfg.EnvFile)
		if keyErr != nil {
			bootstrap.Warn("error loading CoinRanking API key, using API without authentication", zap.Error(keyErr))
		}
		cfg.APIKey = apiKey
		err = nil
	}
	if err != nil {
		return nil, err
	}

	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	return cfg, nil
}

// startApp builds the services shared by the CLI commands and starts them
func startApp(ctx context.Context, flags *rootFlags) (*core.App, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	log, err := logger.NewDevelopment(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error creating logger: %w", err)
	}

	app, err := core.NewApp(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := app.Registry.StartAll(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and websocket API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return fmt.Errorf("error loading config: %w", err)
			}

			log, err := logger.NewLogger(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("error creating logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			app, err := core.Setup(ctx, cfg, log)
			if err != nil {
				log.Error("failed to setup services", zap.Error(err))
				return err
			}
			if err := app.Registry.StartAll(ctx); err != nil {
				log.Error("failed to start services", zap.Error(err))
				return err
			}

			<-ctx.Done()
			log.Info("received shutdown signal, stopping services")
			app.Registry.StopAll()
			log.Info("all services stopped")
			return nil
		},
	}
}
