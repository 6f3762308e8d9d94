package storage

import (
	"context"
	"errors"
)

var (
	// ErrTableNotFound is returned by a TableStore when the named table does
	// not exist yet. The repository treats it as an empty table.
	ErrTableNotFound = errors.New("table not found")

	// ErrStoreUnavailable wraps connection and transport failures of the
	// backing store.
	ErrStoreUnavailable = errors.New("table store unavailable")

	// ErrOrderNotFound is returned when no row carries the requested order id.
	ErrOrderNotFound = errors.New("service order not found")

	// ErrEmptyWrite is returned when a write would wipe the table. An update
	// must never degenerate into an empty table, whatever the in-memory state
	// looked like.
	ErrEmptyWrite = errors.New("refusing to write an empty orders table")
)

// Table is a full snapshot of a stored table: header plus all data rows.
type Table struct {
	Columns []string
	Rows    [][]string
}

// TableStore is the backing persistence for the orders table. Read returns
// the whole table or ErrTableNotFound; Write replaces the whole table.
// Spreadsheet, CSV and relational implementations are interchangeable.
type TableStore interface {
	Read(ctx context.Context, name string) (*Table, error)
	Write(ctx context.Context, name string, t *Table) error
}
