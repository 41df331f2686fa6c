// Package memory is the in-process ledger store used by tests and local
// development. It honors the same positional contract as the durable
// backends.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"homeledger/internal/core"
	"homeledger/internal/ledger"
)

type Store struct {
	mu      sync.Mutex
	records []core.Record
}

func New() *Store {
	return &Store{}
}

// Seed creates a store preloaded with records, validating each one.
func Seed(records ...core.Record) (*Store, error) {
	s := New()
	for _, r := range records {
		if err := s.Append(context.Background(), r); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) Load(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *Store) Append(_ context.Context, r core.Record) error {
	if err := ledger.Validate(r); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	return nil
}

func (s *Store) Update(_ context.Context, index int, r core.Record) error {
	if err := ledger.Validate(r); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.records) {
		return fmt.Errorf("%w: index %d", ledger.ErrNotFound, index)
	}
	s.records[index] = r
	return nil
}

func (s *Store) Delete(_ context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.records) {
		return fmt.Errorf("%w: index %d", ledger.ErrNotFound, index)
	}
	s.records = append(s.records[:index], s.records[index+1:]...)
	return nil
}

// Archive clears the store and returns a synthetic snapshot name, mirroring
// the file backend's month-stamped rename.
func (s *Store) Archive(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.records) == 0 {
		return "", ledger.ErrNothingToArchive
	}
	s.records = nil
	return fmt.Sprintf("mem:expenses_%s", time.Now().Format("2006_01")), nil
}
