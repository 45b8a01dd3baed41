package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Dosada05/court-finder/config"
	"github.com/Dosada05/court-finder/repositories"
	"github.com/Dosada05/court-finder/services"
)

func hashPasswordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-passwords",
		Short: "Replace plaintext venue admin passwords with bcrypt hashes",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			conn, dialect, caps, err := openDatabase(cmd.Context(), cfg, logger, false)
			if err != nil {
				return err
			}
			defer closeDatabase(conn, logger)

			auth := services.NewAuthService(repositories.NewVenueRepository(conn, dialect, caps), cfg.SuperAdminSecret, logger)
			n, err := auth.HashLegacyPasswords(cmd.Context())
			if err != nil {
				return err
			}
			logger.Info("admin passwords hashed", slog.Int("count", n))
			fmt.Fprintf(cmd.OutOrStdout(), "hashed %d admin password(s)\n", n)
			return nil
		},
	}
}
