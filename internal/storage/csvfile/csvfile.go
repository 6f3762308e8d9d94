// Package csvfile backs the orders table with a CSV file per table inside a
// data directory. It is the flat-file counterpart of the spreadsheet store;
// writes go through a temp file and a rename so a crash mid-write never
// leaves a half-written table behind.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"printer-crm/internal/storage"
)

type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) filePath(name string) string {
	return filepath.Join(s.dir, name+".csv")
}

func (s *Store) Read(_ context.Context, name string) (*storage.Table, error) {
	const op = "storage.csvfile.Read"

	f, err := os.Open(s.filePath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrTableNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: parse %s: %w", op, name, err)
	}
	if len(records) == 0 {
		return nil, storage.ErrTableNotFound
	}

	t := &storage.Table{Columns: records[0]}
	for _, row := range records[1:] {
		for len(row) < len(t.Columns) {
			row = append(row, "")
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

func (s *Store) Write(_ context.Context, name string, t *storage.Table) error {
	const op = "storage.csvfile.Write"

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+"-*.csv")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(t.Columns); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Rename(tmp.Name(), s.filePath(name)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
