package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"

	Monthly BudgetPeriod = "monthly"
	Yearly  BudgetPeriod = "yearly"
)

type (
	TransactionType string

	BudgetPeriod string

	Money struct {
		Cents int64
	}

	Transaction struct {
		ID          string
		Description string
		Amount      Money // magnitude only; direction carried by Type
		Date        time.Time
		Type        TransactionType
		CategoryID  *string // nil means uncategorized
		UserID      string
		CreatedAt   time.Time
	}

	Category struct {
		ID     string
		Name   string
		Icon   string
		Color  string
		UserID string
	}

	Budget struct {
		ID         string
		Name       string
		Amount     Money
		Spent      Money // independently tracked, never derived from transactions
		CategoryID *string
		Period     BudgetPeriod
		StartDate  time.Time
		EndDate    time.Time
		UserID     string
	}

	SavingsGoal struct {
		ID            string
		Name          string
		TargetAmount  Money
		CurrentAmount Money
		TargetDate    *time.Time
		UserID        string
	}

	User struct {
		ID        string
		Email     string
		Name      string
		CreatedAt time.Time
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyUserID      = errors.New("empty user id")
)

func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

func (p BudgetPeriod) IsValid() bool {
	return p == Monthly || p == Yearly
}

func (tx Transaction) Validate() error {
	if len(strings.TrimSpace(tx.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(tx.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if tx.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if tx.Date.IsZero() {
		return ErrInvalidDate
	}
	if !tx.Type.IsValid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(tx.UserID) == "" {
		return ErrEmptyUserID
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(c.UserID) == "" {
		return ErrEmptyUserID
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrEmptyName
	}
	if b.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if !b.Period.IsValid() {
		return errors.New("invalid budget period")
	}
	if !b.EndDate.IsZero() && b.EndDate.Before(b.StartDate) {
		return errors.New("end date must not be before start date")
	}
	if strings.TrimSpace(b.UserID) == "" {
		return ErrEmptyUserID
	}
	return nil
}

func (g SavingsGoal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if g.TargetAmount.Cents < 0 || g.CurrentAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(g.UserID) == "" {
		return ErrEmptyUserID
	}
	return nil
}
