package ports

import (
	"context"

	"flextab/domain/table"
)

// TableSourcePort materializes a table from an external tabular collaborator,
// typically a SQL query
type TableSourcePort interface {
	ResolveTable(ctx context.Context, query string, args ...interface{}) (*table.Table, error)
}

// TableReaderPort materializes a table from a file on disk
type TableReaderPort interface {
	ReadTable(path string) (*table.Table, error)
}
