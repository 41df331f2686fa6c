// Package worker applies consumed ledger events to a secondary store so a
// shared spreadsheet mirrors the primary ledger.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"homeledger/internal/amqp"
	"homeledger/internal/core"
	"homeledger/internal/ledger"
)

type MirrorWorker struct {
	mirror ledger.Store
}

func NewMirrorWorker(mirror ledger.Store) *MirrorWorker {
	return &MirrorWorker{mirror: mirror}
}

// Handle applies one ledger event to the mirror store.
func (w *MirrorWorker) Handle(ctx context.Context, ev *amqp.LedgerEvent) error {
	slog.InfoContext(ctx, "Processing ledger event", "op", ev.Op, "index", ev.Index)

	switch ev.Op {
	case amqp.OpAppend:
		r, err := recordFromEvent(ev)
		if err != nil {
			return err
		}
		return w.mirror.Append(ctx, r)
	case amqp.OpUpdate:
		r, err := recordFromEvent(ev)
		if err != nil {
			return err
		}
		return w.mirror.Update(ctx, ev.Index, r)
	case amqp.OpDelete:
		return w.mirror.Delete(ctx, ev.Index)
	default:
		return fmt.Errorf("unknown ledger event op: %q", ev.Op)
	}
}

// Reconcile replaces the mirror's contents with the primary's current
// records. Run at startup to cover events lost while the worker was down.
func (w *MirrorWorker) Reconcile(ctx context.Context, primary ledger.Store) error {
	want, err := primary.Load(ctx)
	if err != nil {
		return fmt.Errorf("load primary ledger: %w", err)
	}
	have, err := w.mirror.Load(ctx)
	if err != nil {
		return fmt.Errorf("load mirror ledger: %w", err)
	}

	// Overwrite in place, then trim or extend. Positions are authoritative
	// on both sides, so pairwise replacement keeps order intact.
	for i, r := range want {
		if i < len(have) {
			if err := w.mirror.Update(ctx, i, r); err != nil {
				return fmt.Errorf("reconcile row %d: %w", i, err)
			}
			continue
		}
		if err := w.mirror.Append(ctx, r); err != nil {
			return fmt.Errorf("reconcile append row %d: %w", i, err)
		}
	}
	for i := len(have) - 1; i >= len(want); i-- {
		if err := w.mirror.Delete(ctx, i); err != nil {
			return fmt.Errorf("reconcile trim row %d: %w", i, err)
		}
	}

	slog.InfoContext(ctx, "Mirror reconciled", "rows", len(want), "previous", len(have))
	return nil
}

func recordFromEvent(ev *amqp.LedgerEvent) (core.Record, error) {
	rec, ok := ledger.ParseRow([]string{ev.Owner, ev.Date, ev.Category, ev.Amount, ev.Notes})
	if !ok {
		return core.Record{}, fmt.Errorf("event carries unparseable record (op %s, index %d)", ev.Op, ev.Index)
	}
	return rec, nil
}
