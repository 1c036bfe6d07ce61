// Package sqldb materializes tables from SQL queries.
package sqldb

import (
	"context"
	"fmt"

	"flextab/domain/table"

	"github.com/jmoiron/sqlx"
)

// Source resolves tables from a SQL database. It implements
// ports.TableSourcePort. Callers own the driver import (lib/pq for postgres).
type Source struct {
	db *sqlx.DB
}

// NewSource wraps an open database handle
func NewSource(db *sqlx.DB) *Source {
	return &Source{db: db}
}

// Connect opens and pings a database, then wraps it
func Connect(driver, dsn string) (*Source, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}
	return &Source{db: db}, nil
}

// Close releases the underlying handle
func (s *Source) Close() error {
	return s.db.Close()
}

// ResolveTable runs a query and converts the result set into a typed table.
// Column order follows the select list; NULLs become blanks.
func (s *Source) ResolveTable(ctx context.Context, query string, args ...interface{}) (*table.Table, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	var raw [][]interface{}
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", len(raw), err)
		}
		raw = append(raw, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("result iteration failed: %w", err)
	}

	return tableFromNatives(names, raw)
}
