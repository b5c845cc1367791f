// Package main is the entry point for the Talentrail API.
// Its sole responsibility is wiring dependencies together and dispatching
// the serve, migrate and seed subcommands. No business logic belongs here.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the binary without a
// subcommand serves the API.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "talentrail",
		Short: "Talentrail API: candidates and skills, trips and guides",
		Long: `Talentrail serves a REST API over Postgres for candidates and their
skills and for trips and their guides. Configuration comes from environment
variables (DATABASE_URL and JWT_SECRET are required).`,
		SilenceUsage: true,
	}

	serve := newServeCmd()
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve, newMigrateCmd(), newSeedCmd())
	return root
}
