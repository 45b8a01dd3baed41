package db

import (
	"context"
	"database/sql"
	"log/slog"
)

// Capabilities describes optional parts of the schema. Databases created before
// sports existed have no sport tables; some lack the Chinese sport name.
type Capabilities struct {
	SportTables bool
	SportNameZh bool
}

// DetectCapabilities probes the schema once. A failing probe only turns the
// feature off.
func DetectCapabilities(ctx context.Context, conn *sql.DB) Capabilities {
	probe := func(query string) bool {
		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			slog.DebugContext(ctx, "schema probe failed", "query", query, "error", err)
			return false
		}
		_ = rows.Close()
		return true
	}

	var caps Capabilities
	caps.SportTables = probe("SELECT id, name, slug FROM sports WHERE 1 = 0") &&
		probe("SELECT venue_id, sport_id, sort_order FROM venue_sports WHERE 1 = 0")
	caps.SportNameZh = caps.SportTables && probe("SELECT name_zh FROM sports WHERE 1 = 0")

	return caps
}
