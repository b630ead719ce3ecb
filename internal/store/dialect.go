package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// dialect captures the few differences between SQLite and Postgres that the
// attempt queries care about. Queries are written with "?" placeholders.
type dialect struct {
	name       string
	positional bool // $1, $2, ... instead of ?
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case DriverSQLite:
		return dialect{name: driver}, nil
	case DriverPostgres:
		return dialect{name: driver, positional: true}, nil
	default:
		return dialect{}, fmt.Errorf("unsupported database driver %q (want %q or %q)", driver, DriverSQLite, DriverPostgres)
	}
}

// rebind rewrites "?" placeholders for drivers that need positional ones.
func (d dialect) rebind(q string) string {
	if !d.positional {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Both dialects accept these statements verbatim.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS equation_attempts (
		id TEXT PRIMARY KEY,
		sequence BIGINT NOT NULL UNIQUE,
		timestamp_ms BIGINT NOT NULL,
		set_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		comment TEXT NOT NULL,
		equations TEXT NOT NULL,
		matches TEXT NOT NULL,
		independent BOOLEAN NOT NULL,
		result TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_equation_attempts_set ON equation_attempts (set_id)`,
	`CREATE TABLE IF NOT EXISTS current_attempts (
		id TEXT PRIMARY KEY,
		sequence BIGINT NOT NULL UNIQUE,
		timestamp_ms BIGINT NOT NULL,
		set_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		comment TEXT NOT NULL,
		i1_ma DOUBLE PRECISION NOT NULL,
		i2_ma DOUBLE PRECISION NOT NULL,
		i3_ma DOUBLE PRECISION NOT NULL,
		expected_i1_ma DOUBLE PRECISION NOT NULL,
		expected_i2_ma DOUBLE PRECISION NOT NULL,
		expected_i3_ma DOUBLE PRECISION NOT NULL,
		expected_source TEXT NOT NULL,
		tolerance_ma DOUBLE PRECISION NOT NULL,
		verdicts TEXT NOT NULL,
		result TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_current_attempts_set ON current_attempts (set_id)`,
}

func migrate(ctx context.Context, db *sql.DB, _ dialect) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
