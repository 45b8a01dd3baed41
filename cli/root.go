// Package cli wires the court-finder commands: the HTTP server and its
// maintenance tasks.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dosada05/court-finder/config"
	"github.com/Dosada05/court-finder/db"
)

var rootCmd = &cobra.Command{
	Use:   "court-finder",
	Short: "Sports venue directory API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
	SilenceUsage: true,
}

func Execute() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(hashPasswordsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)
	return logger
}

// openDatabase connects, migrates when AUTO_MIGRATE is set (or force is
// true) and probes the schema.
func openDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger, force bool) (*sql.DB, db.Dialect, db.Capabilities, error) {
	dialect, err := db.ParseDialect(cfg.DBDriver)
	if err != nil {
		return nil, "", db.Capabilities{}, err
	}

	conn, err := db.Connect(db.Options{
		Driver:       cfg.DBDriver,
		DSN:          cfg.DatabaseURL,
		MaxOpenConns: cfg.DBMaxOpenConns,
		TLS: db.TLSOptions{
			CA:         cfg.DBTLSCA,
			Cert:       cfg.DBTLSCert,
			Key:        cfg.DBTLSKey,
			SkipVerify: cfg.DBTLSSkipVerify,
		},
	}, 5*time.Second)
	if err != nil {
		return nil, "", db.Capabilities{}, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("database connection established", slog.String("driver", cfg.DBDriver))

	if cfg.AutoMigrate || force {
		if err := db.Migrate(ctx, conn, dialect); err != nil {
			_ = conn.Close()
			return nil, "", db.Capabilities{}, fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info("database schema is up to date")
	}

	caps := db.DetectCapabilities(ctx, conn)
	logger.Info("database capabilities detected",
		slog.Bool("sport_tables", caps.SportTables),
		slog.Bool("sport_name_zh", caps.SportNameZh))

	return conn, dialect, caps, nil
}

func closeDatabase(conn *sql.DB, logger *slog.Logger) {
	if err := conn.Close(); err != nil {
		logger.Error("failed to close database connection", slog.Any("error", err))
		return
	}
	logger.Info("database connection closed")
}
