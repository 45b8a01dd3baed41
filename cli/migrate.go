package cli

import (
	"github.com/spf13/cobra"

	"github.com/Dosada05/court-finder/config"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the venues, sports and venue_sports tables if missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			conn, _, _, err := openDatabase(cmd.Context(), cfg, logger, true)
			if err != nil {
				return err
			}
			closeDatabase(conn, logger)
			return nil
		},
	}
}
