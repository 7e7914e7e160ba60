package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/storage/memory"
)

type fakeSheet struct {
	batches [][]core.Transaction
	fail    bool
}

func (f *fakeSheet) AppendTransactions(_ context.Context, txs []core.Transaction) error {
	if f.fail {
		return errors.New("sheet unavailable")
	}
	f.batches = append(f.batches, txs)
	return nil
}

func seedTransactions(t *testing.T, store *memory.Store, n int) []string {
	t.Helper()
	txs := make([]core.Transaction, n)
	for i := range txs {
		txs[i] = core.Transaction{
			Description: "tx",
			Amount:      core.Money{Cents: 100},
			Date:        time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC),
			Type:        core.Expense,
			UserID:      "user-1",
		}
	}
	created, err := store.Transactions().CreateMany(context.Background(), txs)
	if err != nil {
		t.Fatalf("CreateMany: %v", err)
	}
	ids := make([]string, len(created))
	for i, tx := range created {
		ids[i] = tx.ID
	}
	return ids
}

func TestHandleImportEventBatches(t *testing.T) {
	store := memory.New()
	ids := seedTransactions(t, store, 5)
	sheet := &fakeSheet{}
	w := NewExportWorker(store.Transactions(), sheet, 2, nil)

	msg := amqp.NewImportEventMessage("user-1", ids)
	if err := w.HandleImportEvent(msg); err != nil {
		t.Fatalf("HandleImportEvent: %v", err)
	}

	if len(sheet.batches) != 3 {
		t.Fatalf("got %d batches, want 3 (2+2+1)", len(sheet.batches))
	}
	var total int
	for _, b := range sheet.batches {
		if len(b) > 2 {
			t.Errorf("batch of %d exceeds size 2", len(b))
		}
		total += len(b)
	}
	if total != 5 {
		t.Errorf("exported %d transactions, want 5", total)
	}
}

func TestHandleImportEventSkipsDeleted(t *testing.T) {
	store := memory.New()
	ids := seedTransactions(t, store, 3)
	if err := store.Transactions().Delete(context.Background(), "user-1", ids[1]); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	sheet := &fakeSheet{}
	w := NewExportWorker(store.Transactions(), sheet, 50, nil)

	if err := w.HandleImportEvent(amqp.NewImportEventMessage("user-1", ids)); err != nil {
		t.Fatalf("HandleImportEvent: %v", err)
	}
	if len(sheet.batches) != 1 || len(sheet.batches[0]) != 2 {
		t.Errorf("batches = %v, want one batch of 2", sheet.batches)
	}
}

func TestHandleImportEventSheetFailure(t *testing.T) {
	store := memory.New()
	ids := seedTransactions(t, store, 1)

	w := NewExportWorker(store.Transactions(), &fakeSheet{fail: true}, 50, nil)
	if err := w.HandleImportEvent(amqp.NewImportEventMessage("user-1", ids)); err == nil {
		t.Fatal("expected error so the message gets requeued")
	}
}

func TestHandleImportEventEmpty(t *testing.T) {
	store := memory.New()
	sheet := &fakeSheet{}
	w := NewExportWorker(store.Transactions(), sheet, 50, nil)

	if err := w.HandleImportEvent(amqp.NewImportEventMessage("user-1", nil)); err != nil {
		t.Fatalf("HandleImportEvent: %v", err)
	}
	if len(sheet.batches) != 0 {
		t.Errorf("empty event produced %d batches", len(sheet.batches))
	}
}
