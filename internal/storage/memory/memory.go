// Package memory is the fallback in-memory backend. It holds everything in
// mutex-guarded maps and is the default when no database is configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"fintrack/internal/categorize"
	"fintrack/internal/core"
	"fintrack/internal/storage"
)

type Store struct {
	mu           sync.RWMutex
	transactions map[string]core.Transaction
	categories   map[string]core.Category
	budgets      map[string]core.Budget
	goals        map[string]core.SavingsGoal
}

var _ storage.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		transactions: make(map[string]core.Transaction),
		categories:   make(map[string]core.Category),
		budgets:      make(map[string]core.Budget),
		goals:        make(map[string]core.SavingsGoal),
	}
}

func (s *Store) Transactions() storage.TransactionStore { return (*transactionStore)(s) }
func (s *Store) Categories() storage.CategoryStore      { return (*categoryStore)(s) }
func (s *Store) Budgets() storage.BudgetStore           { return (*budgetStore)(s) }
func (s *Store) Goals() storage.SavingsGoalStore        { return (*goalStore)(s) }

type transactionStore Store

func (s *transactionStore) ListByUser(_ context.Context, userID string) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Transaction
	for _, tx := range s.transactions {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *transactionStore) Get(_ context.Context, userID, id string) (core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tx, ok := s.transactions[id]
	if !ok || tx.UserID != userID {
		return core.Transaction{}, storage.ErrNotFound
	}
	return tx, nil
}

func (s *transactionStore) Create(_ context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx.ID = uuid.NewString()
	s.transactions[tx.ID] = tx
	return tx, nil
}

func (s *transactionStore) CreateMany(_ context.Context, txs []core.Transaction) ([]core.Transaction, error) {
	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			return nil, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		tx.ID = uuid.NewString()
		s.transactions[tx.ID] = tx
		out = append(out, tx)
	}
	return out, nil
}

func (s *transactionStore) Update(_ context.Context, userID, id string, patch storage.TransactionPatch) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.transactions[id]
	if !ok || tx.UserID != userID {
		return core.Transaction{}, storage.ErrNotFound
	}
	if patch.Description != nil {
		tx.Description = *patch.Description
	}
	if patch.Amount != nil {
		tx.Amount = *patch.Amount
	}
	if patch.Date != nil {
		tx.Date = *patch.Date
	}
	if patch.Type != nil {
		tx.Type = *patch.Type
	}
	if patch.CategoryID != nil {
		tx.CategoryID = patch.CategoryID
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.transactions[id] = tx
	return tx, nil
}

func (s *transactionStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.transactions[id]
	if !ok || tx.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.transactions, id)
	return nil
}

type categoryStore Store

func (s *categoryStore) ListByUser(_ context.Context, userID string) ([]core.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Category
	for _, c := range s.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *categoryStore) Get(_ context.Context, userID, id string) (core.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok || c.UserID != userID {
		return core.Category{}, storage.ErrNotFound
	}
	return c, nil
}

func (s *categoryStore) Create(_ context.Context, c core.Category) (core.Category, error) {
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = uuid.NewString()
	s.categories[c.ID] = c
	return c, nil
}

func (s *categoryStore) Update(_ context.Context, userID, id string, patch storage.CategoryPatch) (core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok || c.UserID != userID {
		return core.Category{}, storage.ErrNotFound
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Icon != nil {
		c.Icon = *patch.Icon
	}
	if patch.Color != nil {
		c.Color = *patch.Color
	}
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	s.categories[id] = c
	return c, nil
}

func (s *categoryStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok || c.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

func (s *categoryStore) EnsureSeed(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.UserID == userID {
			return nil
		}
	}
	for _, seed := range categorize.Seeds() {
		id := uuid.NewString()
		s.categories[id] = core.Category{
			ID:     id,
			Name:   seed.Name,
			Icon:   seed.Icon,
			Color:  seed.Color,
			UserID: userID,
		}
	}
	return nil
}

type budgetStore Store

func (s *budgetStore) ListByUser(_ context.Context, userID string) ([]core.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Budget
	for _, b := range s.budgets {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *budgetStore) Get(_ context.Context, userID, id string) (core.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.budgets[id]
	if !ok || b.UserID != userID {
		return core.Budget{}, storage.ErrNotFound
	}
	return b, nil
}

func (s *budgetStore) Create(_ context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = uuid.NewString()
	s.budgets[b.ID] = b
	return b, nil
}

func (s *budgetStore) Update(_ context.Context, userID, id string, patch storage.BudgetPatch) (core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.budgets[id]
	if !ok || b.UserID != userID {
		return core.Budget{}, storage.ErrNotFound
	}
	if patch.Name != nil {
		b.Name = *patch.Name
	}
	if patch.Amount != nil {
		b.Amount = *patch.Amount
	}
	if patch.Spent != nil {
		b.Spent = *patch.Spent
	}
	if patch.CategoryID != nil {
		b.CategoryID = patch.CategoryID
	}
	if patch.Period != nil {
		b.Period = *patch.Period
	}
	if patch.StartDate != nil {
		b.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		b.EndDate = *patch.EndDate
	}
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	s.budgets[id] = b
	return b, nil
}

func (s *budgetStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.budgets[id]
	if !ok || b.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.budgets, id)
	return nil
}

type goalStore Store

func (s *goalStore) ListByUser(_ context.Context, userID string) ([]core.SavingsGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.SavingsGoal
	for _, g := range s.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *goalStore) Get(_ context.Context, userID, id string) (core.SavingsGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.goals[id]
	if !ok || g.UserID != userID {
		return core.SavingsGoal{}, storage.ErrNotFound
	}
	return g, nil
}

func (s *goalStore) Create(_ context.Context, g core.SavingsGoal) (core.SavingsGoal, error) {
	if err := g.Validate(); err != nil {
		return core.SavingsGoal{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	g.ID = uuid.NewString()
	s.goals[g.ID] = g
	return g, nil
}

func (s *goalStore) Update(_ context.Context, userID, id string, patch storage.SavingsGoalPatch) (core.SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.goals[id]
	if !ok || g.UserID != userID {
		return core.SavingsGoal{}, storage.ErrNotFound
	}
	if patch.Name != nil {
		g.Name = *patch.Name
	}
	if patch.TargetAmount != nil {
		g.TargetAmount = *patch.TargetAmount
	}
	if patch.CurrentAmount != nil {
		g.CurrentAmount = *patch.CurrentAmount
	}
	if patch.TargetDate != nil {
		g.TargetDate = patch.TargetDate
	}
	if err := g.Validate(); err != nil {
		return core.SavingsGoal{}, err
	}
	s.goals[id] = g
	return g, nil
}

func (s *goalStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.goals[id]
	if !ok || g.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.goals, id)
	return nil
}
