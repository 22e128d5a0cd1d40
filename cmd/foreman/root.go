package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/foreman-dev/foreman/db"
	"github.com/foreman-dev/foreman/internal/config"
)

var configFile string

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "foreman",
		Short: "Construction management API server",
		Long: `Foreman serves the construction management REST API: projects, tasks,
resources, employees and user profiles behind JWT authentication.

Available subcommands:
  serve    - Migrate the database and start the HTTP server
  migrate  - Create or update the database tables
  seed     - Load the default accounts and sample projects into an empty database`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Optional config file (yaml, json or toml); environment variables take precedence")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newSeedCommand())

	return rootCmd
}

// app is what every subcommand needs: settings, a logger and an open store.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *gorm.DB
}

func openApp() (*app, error) {
	cfg, err := config.Load(configFile)

	if err != nil {
		return nil, err
	}

	logger, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	if err != nil {
		return nil, err
	}

	slog.SetDefault(logger)

	database, err := db.Open(db.Config{
		Driver: cfg.DBDriver,
		DSN:    cfg.DatabaseURL,
		Logger: logger,
	})

	if err != nil {
		return nil, err
	}

	logger.Info("connected to database", "driver", cfg.DBDriver)

	return &app{cfg: cfg, logger: logger, db: database}, nil
}

func (a *app) close() {
	if err := db.Close(a.db); err != nil {
		a.logger.Warn("closing database", "error", err)
	}
}

func (a *app) migrate() error {
	if err := db.Migrate(a.db); err != nil {
		return fmt.Errorf("error migrating database: %w", err)
	}

	a.logger.Info("database migrated")

	return nil
}
