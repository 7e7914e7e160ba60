// Package sqlite is the durable backend: a modernc.org/sqlite database with
// embedded golang-migrate migrations.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"fintrack/internal/categorize"
	"fintrack/internal/core"
	"fintrack/internal/storage"
)

type Store struct {
	db *sql.DB
}

var _ storage.Store = (*Store)(nil)

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) Transactions() storage.TransactionStore { return &transactionStore{db: s.db} }
func (s *Store) Categories() storage.CategoryStore      { return &categoryStore{db: s.db} }
func (s *Store) Budgets() storage.BudgetStore           { return &budgetStore{db: s.db} }
func (s *Store) Goals() storage.SavingsGoalStore        { return &goalStore{db: s.db} }

type transactionStore struct {
	db *sql.DB
}

const transactionCols = "id, description, amount_cents, date, type, category_id, user_id, created_at"

func scanTransaction(row interface{ Scan(...any) error }) (core.Transaction, error) {
	var (
		tx    core.Transaction
		catID sql.NullString
	)
	err := row.Scan(&tx.ID, &tx.Description, &tx.Amount.Cents, &tx.Date, &tx.Type, &catID, &tx.UserID, &tx.CreatedAt)
	if err != nil {
		return core.Transaction{}, err
	}
	if catID.Valid {
		tx.CategoryID = &catID.String
	}
	return tx, nil
}

func (s *transactionStore) ListByUser(ctx context.Context, userID string) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+transactionCols+" FROM transactions WHERE user_id = ? ORDER BY date DESC, created_at DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

func (s *transactionStore) Get(ctx context.Context, userID, id string) (core.Transaction, error) {
	tx, err := scanTransaction(s.db.QueryRowContext(ctx,
		"SELECT "+transactionCols+" FROM transactions WHERE id = ? AND user_id = ?", id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, storage.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

func (s *transactionStore) Create(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	tx.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO transactions ("+transactionCols+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		tx.ID, tx.Description, tx.Amount.Cents, tx.Date, tx.Type, nullable(tx.CategoryID), tx.UserID, tx.CreatedAt)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return tx, nil
}

// CreateMany inserts the whole batch inside one database transaction, so a
// failed write leaves nothing behind.
func (s *transactionStore) CreateMany(ctx context.Context, txs []core.Transaction) ([]core.Transaction, error) {
	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			return nil, err
		}
	}

	dbtx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin batch insert: %w", err)
	}
	defer dbtx.Rollback()

	stmt, err := dbtx.PrepareContext(ctx,
		"INSERT INTO transactions ("+transactionCols+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return nil, fmt.Errorf("prepare batch insert: %w", err)
	}
	defer stmt.Close()

	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		tx.ID = uuid.NewString()
		if _, err := stmt.ExecContext(ctx,
			tx.ID, tx.Description, tx.Amount.Cents, tx.Date, tx.Type, nullable(tx.CategoryID), tx.UserID, tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("insert transaction: %w", err)
		}
		out = append(out, tx)
	}
	if err := dbtx.Commit(); err != nil {
		return nil, fmt.Errorf("commit batch insert: %w", err)
	}
	return out, nil
}

func (s *transactionStore) Update(ctx context.Context, userID, id string, patch storage.TransactionPatch) (core.Transaction, error) {
	tx, err := s.Get(ctx, userID, id)
	if err != nil {
		return core.Transaction{}, err
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
	_, err = s.db.ExecContext(ctx,
		"UPDATE transactions SET description = ?, amount_cents = ?, date = ?, type = ?, category_id = ? WHERE id = ? AND user_id = ?",
		tx.Description, tx.Amount.Cents, tx.Date, tx.Type, nullable(tx.CategoryID), id, userID)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	return tx, nil
}

func (s *transactionStore) Delete(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireAffected(res)
}

type categoryStore struct {
	db *sql.DB
}

func (s *categoryStore) ListByUser(ctx context.Context, userID string) ([]core.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, icon, color, user_id FROM categories WHERE user_id = ? ORDER BY name", userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Color, &c.UserID); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *categoryStore) Get(ctx context.Context, userID, id string) (core.Category, error) {
	var c core.Category
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, icon, color, user_id FROM categories WHERE id = ? AND user_id = ?", id, userID).
		Scan(&c.ID, &c.Name, &c.Icon, &c.Color, &c.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, storage.ErrNotFound
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (s *categoryStore) Create(ctx context.Context, c core.Category) (core.Category, error) {
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	c.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO categories (id, name, icon, color, user_id) VALUES (?, ?, ?, ?, ?)",
		c.ID, c.Name, c.Icon, c.Color, c.UserID)
	if err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

func (s *categoryStore) Update(ctx context.Context, userID, id string, patch storage.CategoryPatch) (core.Category, error) {
	c, err := s.Get(ctx, userID, id)
	if err != nil {
		return core.Category{}, err
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
	_, err = s.db.ExecContext(ctx,
		"UPDATE categories SET name = ?, icon = ?, color = ? WHERE id = ? AND user_id = ?",
		c.Name, c.Icon, c.Color, id, userID)
	if err != nil {
		return core.Category{}, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

func (s *categoryStore) Delete(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireAffected(res)
}

func (s *categoryStore) EnsureSeed(ctx context.Context, userID string) error {
	var n int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM categories WHERE user_id = ?", userID).Scan(&n); err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, seed := range categorize.Seeds() {
		_, err := s.db.ExecContext(ctx,
			"INSERT INTO categories (id, name, icon, color, user_id) VALUES (?, ?, ?, ?, ?)",
			uuid.NewString(), seed.Name, seed.Icon, seed.Color, userID)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", seed.Name, err)
		}
	}
	return nil
}

type budgetStore struct {
	db *sql.DB
}

const budgetCols = "id, name, amount_cents, spent_cents, category_id, period, start_date, end_date, user_id"

func scanBudget(row interface{ Scan(...any) error }) (core.Budget, error) {
	var (
		b       core.Budget
		catID   sql.NullString
		endDate sql.NullTime
	)
	err := row.Scan(&b.ID, &b.Name, &b.Amount.Cents, &b.Spent.Cents, &catID, &b.Period, &b.StartDate, &endDate, &b.UserID)
	if err != nil {
		return core.Budget{}, err
	}
	if catID.Valid {
		b.CategoryID = &catID.String
	}
	if endDate.Valid {
		b.EndDate = endDate.Time
	}
	return b, nil
}

func (s *budgetStore) ListByUser(ctx context.Context, userID string) ([]core.Budget, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+budgetCols+" FROM budgets WHERE user_id = ? ORDER BY name", userID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *budgetStore) Get(ctx context.Context, userID, id string) (core.Budget, error) {
	b, err := scanBudget(s.db.QueryRowContext(ctx,
		"SELECT "+budgetCols+" FROM budgets WHERE id = ? AND user_id = ?", id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, storage.ErrNotFound
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("get budget: %w", err)
	}
	return b, nil
}

func (s *budgetStore) Create(ctx context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	b.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO budgets ("+budgetCols+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		b.ID, b.Name, b.Amount.Cents, b.Spent.Cents, nullable(b.CategoryID), b.Period, b.StartDate, nullableTime(b.EndDate), b.UserID)
	if err != nil {
		return core.Budget{}, fmt.Errorf("create budget: %w", err)
	}
	return b, nil
}

func (s *budgetStore) Update(ctx context.Context, userID, id string, patch storage.BudgetPatch) (core.Budget, error) {
	b, err := s.Get(ctx, userID, id)
	if err != nil {
		return core.Budget{}, err
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
	_, err = s.db.ExecContext(ctx,
		"UPDATE budgets SET name = ?, amount_cents = ?, spent_cents = ?, category_id = ?, period = ?, start_date = ?, end_date = ? WHERE id = ? AND user_id = ?",
		b.Name, b.Amount.Cents, b.Spent.Cents, nullable(b.CategoryID), b.Period, b.StartDate, nullableTime(b.EndDate), id, userID)
	if err != nil {
		return core.Budget{}, fmt.Errorf("update budget: %w", err)
	}
	return b, nil
}

func (s *budgetStore) Delete(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM budgets WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return requireAffected(res)
}

type goalStore struct {
	db *sql.DB
}

const goalCols = "id, name, target_cents, current_cents, target_date, user_id"

func scanGoal(row interface{ Scan(...any) error }) (core.SavingsGoal, error) {
	var (
		g          core.SavingsGoal
		targetDate sql.NullTime
	)
	err := row.Scan(&g.ID, &g.Name, &g.TargetAmount.Cents, &g.CurrentAmount.Cents, &targetDate, &g.UserID)
	if err != nil {
		return core.SavingsGoal{}, err
	}
	if targetDate.Valid {
		t := targetDate.Time
		g.TargetDate = &t
	}
	return g, nil
}

func (s *goalStore) ListByUser(ctx context.Context, userID string) ([]core.SavingsGoal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+goalCols+" FROM savings_goals WHERE user_id = ? ORDER BY name", userID)
	if err != nil {
		return nil, fmt.Errorf("list savings goals: %w", err)
	}
	defer rows.Close()

	var out []core.SavingsGoal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan savings goal: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *goalStore) Get(ctx context.Context, userID, id string) (core.SavingsGoal, error) {
	g, err := scanGoal(s.db.QueryRowContext(ctx,
		"SELECT "+goalCols+" FROM savings_goals WHERE id = ? AND user_id = ?", id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return core.SavingsGoal{}, storage.ErrNotFound
	}
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("get savings goal: %w", err)
	}
	return g, nil
}

func (s *goalStore) Create(ctx context.Context, g core.SavingsGoal) (core.SavingsGoal, error) {
	if err := g.Validate(); err != nil {
		return core.SavingsGoal{}, err
	}
	g.ID = uuid.NewString()
	var target any
	if g.TargetDate != nil {
		target = *g.TargetDate
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO savings_goals ("+goalCols+") VALUES (?, ?, ?, ?, ?, ?)",
		g.ID, g.Name, g.TargetAmount.Cents, g.CurrentAmount.Cents, target, g.UserID)
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("create savings goal: %w", err)
	}
	return g, nil
}

func (s *goalStore) Update(ctx context.Context, userID, id string, patch storage.SavingsGoalPatch) (core.SavingsGoal, error) {
	g, err := s.Get(ctx, userID, id)
	if err != nil {
		return core.SavingsGoal{}, err
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
	var target any
	if g.TargetDate != nil {
		target = *g.TargetDate
	}
	_, err = s.db.ExecContext(ctx,
		"UPDATE savings_goals SET name = ?, target_cents = ?, current_cents = ?, target_date = ? WHERE id = ? AND user_id = ?",
		g.Name, g.TargetAmount.Cents, g.CurrentAmount.Cents, target, id, userID)
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("update savings goal: %w", err)
	}
	return g, nil
}

func (s *goalStore) Delete(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM savings_goals WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete savings goal: %w", err)
	}
	return requireAffected(res)
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
