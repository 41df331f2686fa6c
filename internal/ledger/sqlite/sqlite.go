// Package sqlite persists the ledger in a local SQLite database. Storage
// order follows the autoincrement primary key, so positions stay stable
// under the same semantics as the flat-file backend.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"homeledger/internal/core"
	"homeledger/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create db directory: %v", ledger.ErrUnavailable, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", ledger.ErrUnavailable, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping database: %v", ledger.ErrUnavailable, err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Load(ctx context.Context) ([]core.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT owner, date, category, amount, notes FROM ledger_records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: query records: %v", ledger.ErrUnavailable, err)
	}
	defer rows.Close()

	var records []core.Record
	for rows.Next() {
		var owner, date, category, amount, notes string
		if err := rows.Scan(&owner, &date, &category, &amount, &notes); err != nil {
			return nil, fmt.Errorf("%w: scan record: %v", ledger.ErrUnavailable, err)
		}
		if r, ok := ledger.ParseRow([]string{owner, date, category, amount, notes}); ok {
			records = append(records, r)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate records: %v", ledger.ErrUnavailable, err)
	}
	return records, nil
}

func (s *Store) Append(ctx context.Context, r core.Record) error {
	if err := ledger.Validate(r); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ledger_records (owner, date, category, amount, notes) VALUES (?, ?, ?, ?, ?)`,
		string(r.Owner), r.Date.String(), string(r.Category), core.FormatAmount(r.Amount), r.Notes)
	if err != nil {
		return fmt.Errorf("%w: insert record: %v", ledger.ErrUnavailable, err)
	}
	return nil
}

// idAt maps a zero-based position to the row's primary key.
func (s *Store) idAt(ctx context.Context, index int) (int64, error) {
	if index < 0 {
		return 0, fmt.Errorf("%w: index %d", ledger.ErrNotFound, index)
	}
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM ledger_records ORDER BY id LIMIT 1 OFFSET ?`, index).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: index %d", ledger.ErrNotFound, index)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: locate row: %v", ledger.ErrUnavailable, err)
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, index int, r core.Record) error {
	if err := ledger.Validate(r); err != nil {
		return err
	}
	id, err := s.idAt(ctx, index)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE ledger_records SET owner = ?, date = ?, category = ?, amount = ?, notes = ? WHERE id = ?`,
		string(r.Owner), r.Date.String(), string(r.Category), core.FormatAmount(r.Amount), r.Notes, id)
	if err != nil {
		return fmt.Errorf("%w: update record: %v", ledger.ErrUnavailable, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, index int) error {
	id, err := s.idAt(ctx, index)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM ledger_records WHERE id = ?`, id); err != nil {
		return fmt.Errorf("%w: delete record: %v", ledger.ErrUnavailable, err)
	}
	return nil
}
