package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Dosada05/court-finder/models"
)

// runInTx commits when fn succeeds and rolls back on error or panic.
func runInTx(ctx context.Context, db *sql.DB, logger *slog.Logger, op string, fn func(tx *sql.Tx) error) (txErr error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			logger.WarnContext(ctx, "Rolling back transaction", slog.String("op", op), slog.Any("error", txErr))
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.ErrorContext(ctx, "Error during rollback", slog.String("op", op), slog.Any("error", rbErr))
				txErr = fmt.Errorf("transaction processing error: %w (rollback also failed: %v)", txErr, rbErr)
			}
		} else if cErr := tx.Commit(); cErr != nil {
			txErr = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()

	txErr = fn(tx)
	return txErr
}

func attachSportData(venue *models.Venue, links map[int][]models.SportLink) {
	if l, ok := links[venue.ID]; ok && l != nil {
		venue.SportData = l
		return
	}
	venue.SportData = []models.SportLink{}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
