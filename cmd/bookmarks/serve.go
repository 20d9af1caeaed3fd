package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/joestump/bookmarks-api/internal/api"
	"github.com/joestump/bookmarks-api/internal/auth"
	"github.com/joestump/bookmarks-api/internal/build"
	"github.com/joestump/bookmarks-api/internal/config"
	"github.com/joestump/bookmarks-api/internal/db"
	"github.com/joestump/bookmarks-api/internal/logger"
	"github.com/joestump/bookmarks-api/internal/server"
	"github.com/joestump/bookmarks-api/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			started := time.Now()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
			defer func() { _ = log.Sync() }()

			log.Infof("bookmarks %s (commit=%s, branch=%s, go=%s)",
				build.Version, build.Commit, build.Branch, build.GoVersion())

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if _, err := db.Migrate(cmd.Context(), database, cfg.DB.Driver); err != nil {
				return err
			}

			userStore := store.NewUserStore(database)
			bookmarkStore := store.NewBookmarkStore(database)
			tokenStore := auth.NewSQLTokenStore(database)

			router := api.NewAPIRouter(api.Deps{
				BearerAuth:    auth.NewBearerTokenMiddleware(tokenStore, userStore, log),
				Bookmarks:     bookmarkStore,
				Users:         userStore,
				Tokens:        tokenStore,
				TokenLifetime: cfg.TokenLifetime,
				Logger:        log,
			})

			srv := server.New(server.Options{
				Addr:      cfg.HTTP.Addr,
				API:       router,
				DB:        database,
				Logger:    log,
				StartTime: started,
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				if err := srv.Start(); err != nil {
					errCh <- fmt.Errorf("http server error: %w", err)
				}
			}()

			select {
			case <-ctx.Done():
				log.Info("shutting down gracefully", logger.Duration("timeout", cfg.ShutdownTimeout))
			case err := <-errCh:
				return err
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				return fmt.Errorf("failed to stop server: %w", err)
			}
			return nil
		},
	}
}
