// Package csvfile persists the ledger as a flat CSV file with the standard
// five-column layout. A missing file is an empty ledger, not an error; any
// other filesystem failure surfaces as ErrUnavailable. Every mutation
// rewrites the whole file through a temp-and-rename so a crash never leaves
// a partial write behind.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"homeledger/internal/core"
	"homeledger/internal/ledger"
)

type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Load(ctx context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() ([]core.Record, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ledger.ErrUnavailable, s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var records []core.Record
	first := true
	for {
		cols, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ledger.ErrUnavailable, s.path, err)
		}
		if first {
			// Row 1 holds the column names.
			first = false
			continue
		}
		if r, ok := ledger.ParseRow(cols); ok {
			records = append(records, r)
		}
	}
	return records, nil
}

func (s *Store) save(records []core.Record) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %v", ledger.ErrUnavailable, dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".ledger-*.csv")
	if err != nil {
		return fmt.Errorf("%w: temp file: %v", ledger.ErrUnavailable, err)
	}
	defer os.Remove(tmp.Name())

	writer := csv.NewWriter(tmp)
	if err := writer.Write(ledger.Header()); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write header: %v", ledger.ErrUnavailable, err)
	}
	for _, r := range records {
		if err := writer.Write(ledger.FormatRow(r)); err != nil {
			tmp.Close()
			return fmt.Errorf("%w: write row: %v", ledger.ErrUnavailable, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: flush: %v", ledger.ErrUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close temp: %v", ledger.ErrUnavailable, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: replace %s: %v", ledger.ErrUnavailable, s.path, err)
	}
	return nil
}

func (s *Store) Append(ctx context.Context, r core.Record) error {
	if err := ledger.Validate(r); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.load()
	if err != nil {
		return err
	}
	return s.save(append(records, r))
}

func (s *Store) Update(ctx context.Context, index int, r core.Record) error {
	if err := ledger.Validate(r); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.load()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(records) {
		return fmt.Errorf("%w: index %d", ledger.ErrNotFound, index)
	}
	records[index] = r
	return s.save(records)
}

func (s *Store) Delete(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.load()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(records) {
		return fmt.Errorf("%w: index %d", ledger.ErrNotFound, index)
	}
	records = append(records[:index], records[index+1:]...)
	return s.save(records)
}

// Archive moves the live ledger to expenses_<YYYY>_<MM>.csv next to it,
// stamped with the current month, and starts a fresh empty ledger. It is a
// point-in-time snapshot-and-reset, not a scheduled job.
func (s *Store) Archive(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", ledger.ErrNothingToArchive
	}

	name := fmt.Sprintf("expenses_%s.csv", time.Now().Format("2006_01"))
	dest := filepath.Join(filepath.Dir(s.path), name)
	if err := os.Rename(s.path, dest); err != nil {
		return "", fmt.Errorf("%w: archive to %s: %v", ledger.ErrUnavailable, dest, err)
	}
	if err := s.save(nil); err != nil {
		return "", err
	}
	return dest, nil
}
