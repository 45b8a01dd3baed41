package db

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect is the SQL flavour of the configured adapter.
type Dialect string

const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
)

func ParseDialect(driver string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(driver)); d {
	case Postgres, MySQL, SQLite:
		return d, nil
	case "":
		return Postgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Rebind rewrites ? placeholders into the dialect's form. Queries must not
// contain literal question marks.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// Placeholders returns n comma separated placeholders, already rebound.
func (d Dialect) Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return d.Rebind(strings.TrimSuffix(strings.Repeat("?, ", n), ", "))
}

// SupportsReturning reports whether inserts read the generated id with RETURNING.
func (d Dialect) SupportsReturning() bool {
	return d == Postgres
}
