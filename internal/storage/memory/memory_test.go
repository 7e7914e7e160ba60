package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

var ctx = context.Background()

func newTransaction(desc string, date time.Time, created time.Time) core.Transaction {
	return core.Transaction{
		Description: desc,
		Amount:      core.Money{Cents: 100},
		Date:        date,
		Type:        core.Expense,
		UserID:      "user-1",
		CreatedAt:   created,
	}
}

func TestTransactionCRUD(t *testing.T) {
	s := New()
	now := time.Now()

	created, err := s.Transactions().Create(ctx, newTransaction("Coffee", now, now))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("Create did not assign an id")
	}

	got, err := s.Transactions().Get(ctx, "user-1", created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Description != "Coffee" {
		t.Errorf("Get description = %q, want Coffee", got.Description)
	}

	newDesc := "Espresso"
	updated, err := s.Transactions().Update(ctx, "user-1", created.ID, storage.TransactionPatch{Description: &newDesc})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Description != "Espresso" {
		t.Errorf("Update description = %q, want Espresso", updated.Description)
	}
	if updated.Amount.Cents != 100 {
		t.Errorf("Update touched amount: %d", updated.Amount.Cents)
	}

	if err := s.Transactions().Delete(ctx, "user-1", created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Transactions().Get(ctx, "user-1", created.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
}

func TestTransactionUserScoping(t *testing.T) {
	s := New()
	now := time.Now()
	created, err := s.Transactions().Create(ctx, newTransaction("Coffee", now, now))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := s.Transactions().Get(ctx, "user-2", created.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("cross-user Get = %v, want ErrNotFound", err)
	}
	if err := s.Transactions().Delete(ctx, "user-2", created.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("cross-user Delete = %v, want ErrNotFound", err)
	}
	if _, err := s.Transactions().Update(ctx, "user-2", created.ID, storage.TransactionPatch{}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("cross-user Update = %v, want ErrNotFound", err)
	}

	txs, err := s.Transactions().ListByUser(ctx, "user-2")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("cross-user list returned %d transactions", len(txs))
	}
}

func TestTransactionListOrder(t *testing.T) {
	s := New()
	base := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	older := newTransaction("older", base.AddDate(0, 0, -5), base)
	newest := newTransaction("newest", base, base.Add(2*time.Hour))
	sameDay := newTransaction("same day, created earlier", base, base.Add(time.Hour))

	for _, tx := range []core.Transaction{older, newest, sameDay} {
		if _, err := s.Transactions().Create(ctx, tx); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	txs, err := s.Transactions().ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("got %d transactions, want 3", len(txs))
	}
	wantOrder := []string{"newest", "same day, created earlier", "older"}
	for i, want := range wantOrder {
		if txs[i].Description != want {
			t.Errorf("txs[%d] = %q, want %q", i, txs[i].Description, want)
		}
	}
}

func TestCreateManyAssignsIDs(t *testing.T) {
	s := New()
	now := time.Now()

	batch := []core.Transaction{
		newTransaction("one", now, now),
		newTransaction("two", now, now),
	}
	out, err := s.Transactions().CreateMany(ctx, batch)
	if err != nil {
		t.Fatalf("CreateMany: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d transactions, want 2", len(out))
	}
	if out[0].ID == "" || out[1].ID == "" || out[0].ID == out[1].ID {
		t.Errorf("ids not assigned uniquely: %q, %q", out[0].ID, out[1].ID)
	}
}

func TestCreateManyRejectsInvalidBatch(t *testing.T) {
	s := New()
	now := time.Now()

	bad := newTransaction("", now, now) // empty description
	if _, err := s.Transactions().CreateMany(ctx, []core.Transaction{newTransaction("ok", now, now), bad}); err == nil {
		t.Fatal("expected validation error")
	}

	txs, _ := s.Transactions().ListByUser(ctx, "user-1")
	if len(txs) != 0 {
		t.Errorf("invalid batch partially persisted: %d transactions", len(txs))
	}
}

func TestEnsureSeedIdempotent(t *testing.T) {
	s := New()

	if err := s.Categories().EnsureSeed(ctx, "user-1"); err != nil {
		t.Fatalf("EnsureSeed: %v", err)
	}
	cats, err := s.Categories().ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(cats) != 5 {
		t.Fatalf("seeded %d categories, want 5", len(cats))
	}

	if err := s.Categories().EnsureSeed(ctx, "user-1"); err != nil {
		t.Fatalf("second EnsureSeed: %v", err)
	}
	cats, _ = s.Categories().ListByUser(ctx, "user-1")
	if len(cats) != 5 {
		t.Errorf("second EnsureSeed changed count to %d", len(cats))
	}

	// Seeding one user leaves others untouched.
	other, _ := s.Categories().ListByUser(ctx, "user-2")
	if len(other) != 0 {
		t.Errorf("user-2 unexpectedly has %d categories", len(other))
	}
}

func TestBudgetSpentIndependentlyMutable(t *testing.T) {
	s := New()
	b := core.Budget{
		Name:      "Groceries",
		Amount:    core.Money{Cents: 50000},
		Period:    core.Monthly,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UserID:    "user-1",
	}
	created, err := s.Budgets().Create(ctx, b)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	spent := core.Money{Cents: 12345}
	updated, err := s.Budgets().Update(ctx, "user-1", created.ID, storage.BudgetPatch{Spent: &spent})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Spent.Cents != 12345 {
		t.Errorf("Spent = %d, want 12345", updated.Spent.Cents)
	}
	if updated.Amount.Cents != 50000 {
		t.Errorf("Amount changed to %d", updated.Amount.Cents)
	}
}

func TestGoalCRUD(t *testing.T) {
	s := New()
	target := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	g := core.SavingsGoal{
		Name:         "Vacation",
		TargetAmount: core.Money{Cents: 100000},
		TargetDate:   &target,
		UserID:       "user-1",
	}
	created, err := s.Goals().Create(ctx, g)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	current := core.Money{Cents: 25000}
	updated, err := s.Goals().Update(ctx, "user-1", created.ID, storage.SavingsGoalPatch{CurrentAmount: &current})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.CurrentAmount.Cents != 25000 {
		t.Errorf("CurrentAmount = %d, want 25000", updated.CurrentAmount.Cents)
	}

	if err := s.Goals().Delete(ctx, "user-1", created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	goals, _ := s.Goals().ListByUser(ctx, "user-1")
	if len(goals) != 0 {
		t.Errorf("goal not deleted: %d remain", len(goals))
	}
}
