package main

import (
	"github.com/spf13/cobra"

	"github.com/joestump/bookmarks-api/internal/config"
	"github.com/joestump/bookmarks-api/internal/db"
	"github.com/joestump/bookmarks-api/internal/logger"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
			defer func() { _ = log.Sync() }()

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			version, err := db.Migrate(cmd.Context(), database, cfg.DB.Driver)
			if err != nil {
				return err
			}

			log.Info("migrations complete", logger.String("driver", cfg.DB.Driver), logger.Int64("version", version))
			return nil
		},
	}
}
