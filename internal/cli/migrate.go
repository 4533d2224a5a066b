package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	intconfig "tripplanner/internal/config"
	intdb "tripplanner/internal/db"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the MySQL schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			conn, err := intconfig.ConnectDB(env.MySQLDSN)
			if err != nil {
				return fmt.Errorf("connect mysql: %w", err)
			}
			defer intconfig.CloseDB()

			if err := intdb.EnsureSchema(cmd.Context(), conn); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}
