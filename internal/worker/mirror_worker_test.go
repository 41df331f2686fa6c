package worker

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"homeledger/internal/amqp"
	"homeledger/internal/core"
	"homeledger/internal/ledger/memory"
)

func event(op amqp.Op, index int, owner, date, category, amount string) *amqp.LedgerEvent {
	return &amqp.LedgerEvent{
		Op:       op,
		Index:    index,
		Owner:    owner,
		Date:     date,
		Category: category,
		Amount:   amount,
	}
}

func TestMirrorWorker_Handle(t *testing.T) {
	ctx := context.Background()
	mirror := memory.New()
	w := NewMirrorWorker(mirror)

	if err := w.Handle(ctx, event(amqp.OpAppend, 0, "Greg", "2026-08-01", "Food", "60.00")); err != nil {
		t.Fatalf("Handle append: %v", err)
	}
	if err := w.Handle(ctx, event(amqp.OpAppend, 1, "Tyler", "2026-08-02", "Bills", "250.00")); err != nil {
		t.Fatalf("Handle append: %v", err)
	}
	if err := w.Handle(ctx, event(amqp.OpUpdate, 0, "Greg", "2026-08-01", "Food", "75.00")); err != nil {
		t.Fatalf("Handle update: %v", err)
	}

	records, _ := mirror.Load(ctx)
	if len(records) != 2 {
		t.Fatalf("mirror has %d records, want 2", len(records))
	}
	if !records[0].Amount.Equal(decimal.RequireFromString("75")) {
		t.Errorf("mirror[0].Amount = %s, want 75", records[0].Amount)
	}

	if err := w.Handle(ctx, event(amqp.OpDelete, 0, "", "", "", "")); err != nil {
		t.Fatalf("Handle delete: %v", err)
	}
	records, _ = mirror.Load(ctx)
	if len(records) != 1 || records[0].Owner != "Tyler" {
		t.Errorf("mirror after delete = %+v", records)
	}
}

func TestMirrorWorker_HandleRejectsBadEvent(t *testing.T) {
	w := NewMirrorWorker(memory.New())

	if err := w.Handle(context.Background(), event("rename", 0, "Greg", "", "Food", "1.00")); err == nil {
		t.Error("unknown op accepted")
	}
	if err := w.Handle(context.Background(), event(amqp.OpAppend, 0, "", "", "Food", "1.00")); err == nil {
		t.Error("event without an owner accepted")
	}
}

func TestMirrorWorker_Reconcile(t *testing.T) {
	ctx := context.Background()

	primary, err := memory.Seed(
		core.Record{Owner: "Greg", Category: core.CategoryFood, Amount: decimal.RequireFromString("60")},
		core.Record{Owner: "Tyler", Category: core.CategoryBills, Amount: decimal.RequireFromString("250")},
	)
	if err != nil {
		t.Fatalf("seed primary: %v", err)
	}

	// The mirror is stale: one wrong row and one extra row.
	mirror, err := memory.Seed(
		core.Record{Owner: "Greg", Category: core.CategoryFood, Amount: decimal.RequireFromString("999")},
		core.Record{Owner: "Tyler", Category: core.CategoryBills, Amount: decimal.RequireFromString("250")},
		core.Record{Owner: "Tyler", Category: core.CategoryOther, Amount: decimal.RequireFromString("1")},
	)
	if err != nil {
		t.Fatalf("seed mirror: %v", err)
	}

	w := NewMirrorWorker(mirror)
	if err := w.Reconcile(ctx, primary); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	want, _ := primary.Load(ctx)
	got, _ := mirror.Load(ctx)
	if len(got) != len(want) {
		t.Fatalf("mirror has %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Owner != want[i].Owner || !got[i].Amount.Equal(want[i].Amount) {
			t.Errorf("mirror[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestMirrorWorker_ReconcileExtends(t *testing.T) {
	ctx := context.Background()

	primary, err := memory.Seed(
		core.Record{Owner: "Greg", Category: core.CategoryFood, Amount: decimal.RequireFromString("60")},
		core.Record{Owner: "Tyler", Category: core.CategoryBills, Amount: decimal.RequireFromString("250")},
	)
	if err != nil {
		t.Fatalf("seed primary: %v", err)
	}
	mirror := memory.New()

	w := NewMirrorWorker(mirror)
	if err := w.Reconcile(ctx, primary); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	got, _ := mirror.Load(ctx)
	if len(got) != 2 {
		t.Errorf("mirror has %d records, want 2", len(got))
	}
}
