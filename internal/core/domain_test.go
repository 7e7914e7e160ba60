package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validTransaction() Transaction {
	return Transaction{
		Description: "Coffee",
		Amount:      Money{Cents: 485},
		Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Type:        Expense,
		UserID:      "user-1",
	}
}

func TestTransactionValidate(t *testing.T) {
	if err := validTransaction().Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Transaction)
		want   error
	}{
		{"empty description", func(tx *Transaction) { tx.Description = "  " }, ErrEmptyDescription},
		{"negative amount", func(tx *Transaction) { tx.Amount.Cents = -1 }, ErrInvalidAmount},
		{"zero date", func(tx *Transaction) { tx.Date = time.Time{} }, ErrInvalidDate},
		{"bad type", func(tx *Transaction) { tx.Type = "transfer" }, ErrInvalidType},
		{"empty user", func(tx *Transaction) { tx.UserID = "" }, ErrEmptyUserID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)
			if err := tx.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}

	t.Run("description too long", func(t *testing.T) {
		tx := validTransaction()
		tx.Description = strings.Repeat("x", 201)
		if err := tx.Validate(); err == nil {
			t.Error("expected error for 201 character description")
		}
	})

	t.Run("description at limit", func(t *testing.T) {
		tx := validTransaction()
		tx.Description = strings.Repeat("x", 200)
		if err := tx.Validate(); err != nil {
			t.Errorf("200 character description rejected: %v", err)
		}
	})
}

func TestBudgetValidate(t *testing.T) {
	b := Budget{
		Name:      "Groceries",
		Amount:    Money{Cents: 50000},
		Period:    Monthly,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UserID:    "user-1",
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("valid budget rejected: %v", err)
	}

	bad := b
	bad.Period = "weekly"
	if err := bad.Validate(); err == nil {
		t.Error("expected error for invalid period")
	}

	bad = b
	bad.EndDate = b.StartDate.AddDate(0, 0, -1)
	if err := bad.Validate(); err == nil {
		t.Error("expected error for end date before start date")
	}
}

func TestSavingsGoalValidate(t *testing.T) {
	g := SavingsGoal{Name: "Vacation", TargetAmount: Money{Cents: 100000}, UserID: "user-1"}
	if err := g.Validate(); err != nil {
		t.Fatalf("valid goal rejected: %v", err)
	}

	g.CurrentAmount.Cents = -1
	if err := g.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("Validate() = %v, want %v", g.Validate(), ErrInvalidAmount)
	}
}
