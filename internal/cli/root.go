// Package cli is the tripplanner command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	intconfig "tripplanner/internal/config"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tripplanner",
		Short:         "Trip planner API server and client tools",
		Long:          `Serves the trips/cities/activities API and talks to a running server from the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// Persistent flags (available to all commands)
	root.PersistentFlags().String("config", "", "YAML config file (overrides CONFIG_FILE)")
	root.PersistentFlags().String("api", "http://localhost:8080/api", "Base URL of a running API, for client commands")

	root.AddCommand(newServeCmd(), newMigrateCmd(), newTripsCmd(), newCanvasCmd())
	return root
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadEnv(cmd *cobra.Command) (intconfig.Env, error) {
	path, _ := cmd.Flags().GetString("config")
	return intconfig.Load(path)
}
