// Package services orchestrates the ledger store and the pure budget
// computations behind the HTTP layer.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"homeledger/internal/amqp"
	"homeledger/internal/core"
	"homeledger/internal/ledger"
)

type (
	// Entry is a ledger record together with its durable identifier.
	Entry struct {
		ID     string
		Record core.Record
	}

	// CategoryTotal is a whole-household sum for one category.
	CategoryTotal struct {
		Category core.Category
		Total    decimal.Decimal
	}

	// DateTotal is a household sum for one calendar date.
	DateTotal struct {
		Date  core.Date
		Total decimal.Decimal
	}

	// LedgerService owns record normalization, identity and aggregation.
	// Every aggregate is a fresh fold over a fresh store load: records can
	// be edited or deleted at any row, and recomputation is cheap at
	// household scale.
	LedgerService struct {
		store     ledger.Store
		household []core.Person
		publisher *amqp.Client
	}
)

func NewLedgerService(store ledger.Store, household []core.Person, publisher *amqp.Client) *LedgerService {
	return &LedgerService{
		store:     store,
		household: household,
		publisher: publisher,
	}
}

// Household returns the configured members in order.
func (s *LedgerService) Household() []core.Person {
	return append([]core.Person(nil), s.household...)
}

// Member resolves a name to a configured household member.
func (s *LedgerService) Member(name string) (core.Person, error) {
	for _, p := range s.household {
		if strings.EqualFold(string(p), strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown person %q", ledger.ErrValidation, name)
}

// All loads the ledger and assigns identifiers.
func (s *LedgerService) All(ctx context.Context) ([]Entry, error) {
	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	ids := ledger.IDs(records)
	entries := make([]Entry, len(records))
	for i, r := range records {
		entries[i] = Entry{ID: ids[i], Record: r}
	}
	return entries, nil
}

// TotalFor sums a person's tracked amounts. A person with no records gets
// zero, not an error.
func (s *LedgerService) TotalFor(ctx context.Context, person core.Person) (decimal.Decimal, error) {
	records, err := s.store.Load(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, r := range records {
		if strings.EqualFold(string(r.Owner), string(person)) {
			total = total.Add(r.Amount)
		}
	}
	return total, nil
}

// ByCategory sums all records per category, in category display order.
// Categories with no spending are omitted.
func (s *LedgerService) ByCategory(ctx context.Context) ([]CategoryTotal, error) {
	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	sums := make(map[core.Category]decimal.Decimal)
	for _, r := range records {
		sums[r.Category] = sums[r.Category].Add(r.Amount)
	}
	var out []CategoryTotal
	for _, c := range core.Categories() {
		if total, ok := sums[c]; ok {
			out = append(out, CategoryTotal{Category: c, Total: total})
		}
	}
	return out, nil
}

// ByDate sums all records per calendar date, ascending. Records with an
// unknown date are excluded here but still count in TotalFor.
func (s *LedgerService) ByDate(ctx context.Context) ([]DateTotal, error) {
	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	sums := make(map[string]decimal.Decimal)
	dates := make(map[string]core.Date)
	for _, r := range records {
		if r.Date.Unknown() {
			continue
		}
		key := r.Date.String()
		sums[key] = sums[key].Add(r.Amount)
		dates[key] = r.Date
	}
	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]DateTotal, len(keys))
	for i, k := range keys {
		out[i] = DateTotal{Date: dates[k], Total: sums[k]}
	}
	return out, nil
}

// Add validates and appends a record, then mirrors the mutation.
func (s *LedgerService) Add(ctx context.Context, r core.Record) (Entry, error) {
	r, err := s.normalize(r)
	if err != nil {
		return Entry{}, err
	}
	if err := s.store.Append(ctx, r); err != nil {
		return Entry{}, err
	}

	records, err := s.store.Load(ctx)
	if err != nil {
		// The append committed; surface the entry without an ID rather
		// than reporting a failed write.
		slog.WarnContext(ctx, "Reload after append failed", "error", err)
		return Entry{Record: r}, nil
	}
	ids := ledger.IDs(records)
	entry := Entry{ID: ids[len(ids)-1], Record: r}

	s.publish(ctx, &amqp.LedgerEvent{Op: amqp.OpAppend, Index: len(records) - 1}, r)
	return entry, nil
}

// Update replaces the record identified by id. The ID is resolved to the
// record's current position immediately before the store call, so a
// concurrent edit that moved rows yields NotFound instead of silently
// hitting the wrong record.
func (s *LedgerService) Update(ctx context.Context, id string, r core.Record) (Entry, error) {
	r, err := s.normalize(r)
	if err != nil {
		return Entry{}, err
	}
	index, err := s.resolve(ctx, id)
	if err != nil {
		return Entry{}, err
	}
	if err := s.store.Update(ctx, index, r); err != nil {
		return Entry{}, err
	}

	// The occurrence counter depends on the rows before this one, so the ID
	// must come from a fresh load: deriving it from the record alone would
	// hand back an earlier duplicate's ID.
	entry := Entry{Record: r}
	if records, err := s.store.Load(ctx); err != nil {
		slog.WarnContext(ctx, "Reload after update failed", "error", err)
	} else if index < len(records) {
		entry.ID = ledger.IDs(records)[index]
	}

	s.publish(ctx, &amqp.LedgerEvent{Op: amqp.OpUpdate, Index: index}, r)
	return entry, nil
}

// Remove deletes the record identified by id.
func (s *LedgerService) Remove(ctx context.Context, id string) error {
	index, err := s.resolve(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, index); err != nil {
		return err
	}

	s.publish(ctx, &amqp.LedgerEvent{Op: amqp.OpDelete, Index: index}, core.Record{})
	return nil
}

// Clear removes every record without taking a snapshot. Deleting from the
// tail keeps the remaining positions valid between store calls, and each
// delete is mirrored individually so a consumer stays in step.
func (s *LedgerService) Clear(ctx context.Context) error {
	records, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	for i := len(records) - 1; i >= 0; i-- {
		if err := s.store.Delete(ctx, i); err != nil {
			return err
		}
		s.publish(ctx, &amqp.LedgerEvent{Op: amqp.OpDelete, Index: i}, core.Record{})
	}
	return nil
}

// Archive snapshots and resets the ledger when the backend supports it.
func (s *LedgerService) Archive(ctx context.Context) (string, error) {
	archiver, ok := s.store.(ledger.Archiver)
	if !ok {
		return "", fmt.Errorf("%w: backend does not support archiving", ledger.ErrValidation)
	}
	return archiver.Archive(ctx)
}

func (s *LedgerService) normalize(r core.Record) (core.Record, error) {
	owner, err := s.Member(string(r.Owner))
	if err != nil {
		return core.Record{}, err
	}
	r.Owner = owner
	category, err := core.ParseCategory(string(r.Category))
	if err != nil {
		return core.Record{}, fmt.Errorf("%w: %v", ledger.ErrValidation, err)
	}
	r.Category = category
	r.Notes = strings.TrimSpace(r.Notes)
	if err := ledger.Validate(r); err != nil {
		return core.Record{}, err
	}
	return r, nil
}

// publish mirrors a committed mutation. Publish failures never fail the
// user's write; the worker's startup reconciliation covers lost messages.
func (s *LedgerService) publish(ctx context.Context, ev *amqp.LedgerEvent, r core.Record) {
	if s.publisher == nil {
		return
	}
	if ev.Op != amqp.OpDelete {
		cols := ledger.FormatRow(r)
		ev.Owner, ev.Date, ev.Category, ev.Amount, ev.Notes = cols[0], cols[1], cols[2], cols[3], cols[4]
	}
	ev.Timestamp = time.Now()
	if err := s.publisher.PublishLedgerEvent(ctx, ev); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"op", ev.Op, "index", ev.Index, "error", err)
	}
}

func (s *LedgerService) resolve(ctx context.Context, id string) (int, error) {
	records, err := s.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	index := ledger.Resolve(records, id)
	if index < 0 {
		return 0, fmt.Errorf("%w: id %s", ledger.ErrNotFound, id)
	}
	return index, nil
}

// Close releases the mirror publisher if one is attached.
func (s *LedgerService) Close() error {
	if s.publisher != nil {
		return s.publisher.Close()
	}
	return nil
}
