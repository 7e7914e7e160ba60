package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// AnalyticsService fetches a user's data set and hands it to the pure
// aggregation functions. It holds no state between calls.
type AnalyticsService struct {
	store  storage.Store
	logger *log.Logger
	now    func() time.Time
}

func NewAnalyticsService(store storage.Store, logger *log.Logger) *AnalyticsService {
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentAnalytics})
	}
	return &AnalyticsService{
		store:  store,
		logger: logger.WithComponent(log.ComponentAnalytics),
		now:    time.Now,
	}
}

// Summary computes the aggregate snapshot for one user.
func (s *AnalyticsService) Summary(ctx context.Context, userID string) (analytics.Summary, error) {
	var (
		txs     []core.Transaction
		budgets []core.Budget
		goals   []core.SavingsGoal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		txs, err = s.store.Transactions().ListByUser(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		budgets, err = s.store.Budgets().ListByUser(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		goals, err = s.store.Goals().ListByUser(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return analytics.Summary{}, fmt.Errorf("load summary data: %w", err)
	}

	return analytics.Summarize(txs, budgets, goals, s.now()), nil
}

// SpendingByCategory returns per-category expense totals for one user.
func (s *AnalyticsService) SpendingByCategory(ctx context.Context, userID string) ([]analytics.CategorySpending, error) {
	txs, cats, err := s.loadTransactionsAndCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	return analytics.SpendingByCategory(txs, cats), nil
}

// MonthlyTrend returns chronological per-month income and expense sums.
func (s *AnalyticsService) MonthlyTrend(ctx context.Context, userID string) ([]analytics.MonthlyPoint, error) {
	txs, err := s.store.Transactions().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	return analytics.MonthlyTrend(txs), nil
}

// Breakdown returns the category breakdown over a trailing window of whole
// months (1, 3, 6 or 12).
func (s *AnalyticsService) Breakdown(ctx context.Context, userID string, months int) ([]analytics.CategorySpending, error) {
	txs, cats, err := s.loadTransactionsAndCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	return analytics.Breakdown(txs, cats, months, s.now()), nil
}

func (s *AnalyticsService) loadTransactionsAndCategories(ctx context.Context, userID string) ([]core.Transaction, []core.Category, error) {
	var (
		txs  []core.Transaction
		cats []core.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		txs, err = s.store.Transactions().ListByUser(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		cats, err = s.store.Categories().ListByUser(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("load analytics data: %w", err)
	}
	return txs, cats, nil
}
