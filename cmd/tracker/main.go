package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/tracker/internal/interfaces/cli/migrate"
	"github.com/orris-inc/tracker/internal/interfaces/cli/server"
	"github.com/orris-inc/tracker/internal/interfaces/cli/token"
	"github.com/orris-inc/tracker/internal/interfaces/cli/user"
	"github.com/orris-inc/tracker/internal/shared/version"
)

// @title Tracker API
// @version 1.0
// @description Projects, issues, labels and milestones with per-project permissions.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:          "tracker",
		Short:        "Tracker - issue tracking server",
		Long:         `Tracker serves projects, issues, labels and milestones over a JSON API, with migration and account tools.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		user.NewCommand(),
		token.NewCommand(),
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
