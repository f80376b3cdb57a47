package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bookstore-vn/bookstore/internal/interfaces/cli/migrate"
	"github.com/bookstore-vn/bookstore/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bookstore",
		Short: "Bookstore checkout service",
		Long:  `Bookstore serves the cart, checkout and VNPay payment flow, and manages its database schema.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
