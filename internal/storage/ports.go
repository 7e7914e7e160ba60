// Package storage defines the persistence ports the rest of the service
// depends on. Implementations live in the memory and sqlite subpackages and
// are selected once at startup by the backend factory.
package storage

import (
	"context"
	"errors"
	"time"

	"fintrack/internal/core"
)

// ErrNotFound is returned when an entity does not exist or belongs to a
// different user.
var ErrNotFound = errors.New("not found")

type (
	// Store bundles the per-entity ports of one backend.
	Store interface {
		Transactions() TransactionStore
		Categories() CategoryStore
		Budgets() BudgetStore
		Goals() SavingsGoalStore
	}

	TransactionStore interface {
		ListByUser(ctx context.Context, userID string) ([]core.Transaction, error)
		Get(ctx context.Context, userID, id string) (core.Transaction, error)
		Create(ctx context.Context, tx core.Transaction) (core.Transaction, error)
		// CreateMany persists a batch all-or-nothing; on error nothing from
		// the batch is guaranteed persisted.
		CreateMany(ctx context.Context, txs []core.Transaction) ([]core.Transaction, error)
		Update(ctx context.Context, userID, id string, patch TransactionPatch) (core.Transaction, error)
		Delete(ctx context.Context, userID, id string) error
	}

	CategoryStore interface {
		ListByUser(ctx context.Context, userID string) ([]core.Category, error)
		Get(ctx context.Context, userID, id string) (core.Category, error)
		Create(ctx context.Context, c core.Category) (core.Category, error)
		Update(ctx context.Context, userID, id string, patch CategoryPatch) (core.Category, error)
		Delete(ctx context.Context, userID, id string) error
		// EnsureSeed creates the fixed starter categories for a user that has
		// none yet. It is idempotent.
		EnsureSeed(ctx context.Context, userID string) error
	}

	BudgetStore interface {
		ListByUser(ctx context.Context, userID string) ([]core.Budget, error)
		Get(ctx context.Context, userID, id string) (core.Budget, error)
		Create(ctx context.Context, b core.Budget) (core.Budget, error)
		Update(ctx context.Context, userID, id string, patch BudgetPatch) (core.Budget, error)
		Delete(ctx context.Context, userID, id string) error
	}

	SavingsGoalStore interface {
		ListByUser(ctx context.Context, userID string) ([]core.SavingsGoal, error)
		Get(ctx context.Context, userID, id string) (core.SavingsGoal, error)
		Create(ctx context.Context, g core.SavingsGoal) (core.SavingsGoal, error)
		Update(ctx context.Context, userID, id string, patch SavingsGoalPatch) (core.SavingsGoal, error)
		Delete(ctx context.Context, userID, id string) error
	}
)

// Patch types carry partial updates; nil fields are left untouched.
type (
	TransactionPatch struct {
		Description *string
		Amount      *core.Money
		Date        *time.Time
		Type        *core.TransactionType
		CategoryID  *string
	}

	CategoryPatch struct {
		Name  *string
		Icon  *string
		Color *string
	}

	BudgetPatch struct {
		Name       *string
		Amount     *core.Money
		Spent      *core.Money
		CategoryID *string
		Period     *core.BudgetPeriod
		StartDate  *time.Time
		EndDate    *time.Time
	}

	SavingsGoalPatch struct {
		Name          *string
		TargetAmount  *core.Money
		CurrentAmount *core.Money
		TargetDate    *time.Time
	}
)
