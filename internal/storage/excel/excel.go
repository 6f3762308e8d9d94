// Package excel backs the orders table with an xlsx workbook on disk, one
// worksheet per table. This is the spreadsheet deployment: the workbook file
// plays the role the hosted sheet plays in production.
package excel

import (
	"context"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"printer-crm/internal/storage"
)

type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Read(_ context.Context, name string) (*storage.Table, error) {
	const op = "storage.excel.Read"

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, storage.ErrTableNotFound
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%s: open %s: %w", op, s.path, err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return nil, storage.ErrTableNotFound
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("%s: read sheet %s: %w", op, name, err)
	}
	if len(rows) == 0 {
		return nil, storage.ErrTableNotFound
	}

	t := &storage.Table{Columns: rows[0]}
	for _, row := range rows[1:] {
		// excelize trims trailing empty cells; pad back to the header width.
		for len(row) < len(t.Columns) {
			row = append(row, "")
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

func (s *Store) Write(_ context.Context, name string, t *storage.Table) error {
	const op = "storage.excel.Write"

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", name)

	if err := f.SetSheetRow(name, "A1", &t.Columns); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("%s: save %s: %w", op, s.path, err)
	}

	return nil
}
