package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/joestump/bookmarks-api/internal/auth"
	"github.com/joestump/bookmarks-api/internal/config"
	"github.com/joestump/bookmarks-api/internal/db"
	"github.com/joestump/bookmarks-api/internal/store"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage API tokens",
	}
	cmd.AddCommand(newTokenCreateCmd())
	return cmd
}

func newTokenCreateCmd() *cobra.Command {
	var (
		email string
		name  string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Issue an API token for an existing user and print it once",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			lifetime := cfg.TokenLifetime
			if cmd.Flags().Changed("expires-in") {
				lifetime, err = cmd.Flags().GetDuration("expires-in")
				if err != nil {
					return err
				}
			}

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if _, err := db.Migrate(cmd.Context(), database, cfg.DB.Driver); err != nil {
				return err
			}

			user, err := store.NewUserStore(database).GetByEmail(cmd.Context(), email)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no user with email %q", email)
			}
			if err != nil {
				return err
			}

			plaintext, rec, err := auth.IssueToken(cmd.Context(), auth.NewSQLTokenStore(database), user.ID, name, lifetime)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, plaintext)
			if rec.ExpiresAt.Valid {
				fmt.Fprintf(out, "expires at %s\n", rec.ExpiresAt.Time.Format(time.RFC3339))
			} else {
				fmt.Fprintln(out, "never expires")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email of the token owner")
	cmd.Flags().StringVar(&name, "name", "cli", "label stored with the token")
	cmd.Flags().Duration("expires-in", 0, "token lifetime (0 = never); defaults to token.lifetime")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
