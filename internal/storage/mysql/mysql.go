// Package mysql backs the orders table with a relational table. It still
// honors the TableStore contract: Read returns the whole table, Write
// replaces it inside one transaction.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	driver "github.com/go-sql-driver/mysql"

	"printer-crm/internal/storage"
)

const errTableMissing = 1146

var identPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

type Store struct {
	db *sql.DB
}

func New(dsn string) (*Store, error) {
	const op = "storage.mysql.New"

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Read(ctx context.Context, name string) (*storage.Table, error) {
	const op = "storage.mysql.Read"

	if !identPattern.MatchString(name) {
		return nil, fmt.Errorf("%s: bad table name %q", op, name)
	}

	cols := make([]string, len(storage.Columns))
	for i, c := range storage.Columns {
		cols[i] = "`" + c + "`"
	}
	stmt := fmt.Sprintf("SELECT %s FROM `%s`", strings.Join(cols, ", "), name)

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		var myErr *driver.MySQLError
		if errors.As(err, &myErr) && myErr.Number == errTableMissing {
			return nil, storage.ErrTableNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	t := &storage.Table{Columns: storage.Columns}
	for rows.Next() {
		cells := make([]sql.NullString, len(storage.Columns))
		dest := make([]any, len(cells))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		row := make([]string, len(cells))
		for i, c := range cells {
			if c.Valid {
				row[i] = c.String
			}
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return t, nil
}

func (s *Store) Write(ctx context.Context, name string, t *storage.Table) error {
	const op = "storage.mysql.Write"

	if !identPattern.MatchString(name) {
		return fmt.Errorf("%s: bad table name %q", op, name)
	}

	if err := s.ensureTable(ctx, name); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM `%s`", name)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if len(t.Rows) > 0 {
		cols := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			if !identPattern.MatchString(c) {
				return fmt.Errorf("%s: bad column name %q", op, c)
			}
			cols[i] = "`" + c + "`"
		}
		placeholders := "(" + strings.TrimSuffix(strings.Repeat("?,", len(t.Columns)), ",") + ")"
		stmt := fmt.Sprintf("INSERT INTO `%s` (%s) VALUES %s",
			name, strings.Join(cols, ", "), placeholders)

		insert, err := tx.PrepareContext(ctx, stmt)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		defer insert.Close()

		for _, row := range t.Rows {
			args := make([]any, len(row))
			for i, cell := range row {
				args[i] = cell
			}
			if _, err := insert.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) ensureTable(ctx context.Context, name string) error {
	defs := make([]string, len(storage.Columns))
	for i, c := range storage.Columns {
		defs[i] = "`" + c + "` TEXT"
	}
	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` (%s)", name, strings.Join(defs, ", "))

	_, err := s.db.ExecContext(ctx, stmt)
	return err
}
