package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joestump/bookmarks-api/internal/build"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "bookmarks",
		Short:   "A multi-user bookmarks API",
		Long:    "Bookmarks stores links per user behind bearer-token authentication.",
		Version: build.Version,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newTokenCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
