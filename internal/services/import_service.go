package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/categorize"
	"fintrack/internal/core"
	"fintrack/internal/csvimport"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// EventPublisher publishes import events; nil disables publishing.
type EventPublisher interface {
	PublishImportEvent(ctx context.Context, msg *amqp.ImportEventMessage) error
}

// ImportService runs the CSV upload pipeline: parse, resolve columns,
// normalize and categorize rows, persist the batch, announce it.
type ImportService struct {
	store     storage.Store
	publisher EventPublisher
	logger    *log.Logger
}

func NewImportService(store storage.Store, publisher EventPublisher, logger *log.Logger) *ImportService {
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentImport})
	}
	return &ImportService{
		store:     store,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentImport),
	}
}

// ImportCSV processes one upload for a user. Row-level problems are
// collected into the result and never abort the batch; a storage write
// failure is fatal and returned as an error. Passing delim 0 sniffs the
// delimiter from the header line.
func (s *ImportService) ImportCSV(ctx context.Context, userID, raw string, delim rune) (csvimport.Result, error) {
	if strings.TrimSpace(raw) == "" {
		return csvimport.Result{Errors: []string{"CSV file is empty"}}, nil
	}
	if delim == 0 {
		delim = csvimport.DetectDelimiter(raw)
	}

	rows := csvimport.Parse(raw, delim)
	if len(rows) < 2 {
		return csvimport.Result{Errors: []string{"CSV must contain a header row and at least one data row"}}, nil
	}

	cols, structural := csvimport.ResolveColumns(rows[0])

	categorizeFn, err := s.categoryResolver(ctx, userID)
	if err != nil {
		return csvimport.Result{}, err
	}

	res := csvimport.Assemble(rows[1:], cols, userID, categorizeFn, time.Now())
	res.Errors = append(structural, res.Errors...)

	if len(res.Transactions) > 0 {
		persisted, err := s.store.Transactions().CreateMany(ctx, res.Transactions)
		if err != nil {
			return csvimport.Result{}, fmt.Errorf("persist transactions: %w", err)
		}
		res.Transactions = persisted
		s.publishImportEvent(ctx, userID, persisted)
	}

	s.logger.InfoContext(ctx, "CSV import completed",
		"user_id", userID,
		"total_rows", res.TotalRows,
		"valid_rows", res.ValidRows,
		"errors", len(res.Errors))
	return res, nil
}

// categoryResolver seeds the user's starter categories when missing and
// returns a function mapping descriptions onto the user's category ids.
func (s *ImportService) categoryResolver(ctx context.Context, userID string) (csvimport.CategorizeFunc, error) {
	if err := s.store.Categories().EnsureSeed(ctx, userID); err != nil {
		return nil, fmt.Errorf("seed categories: %w", err)
	}
	cats, err := s.store.Categories().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	byName := make(map[string]string, len(cats))
	for _, c := range cats {
		byName[c.Name] = c.ID
	}

	return func(description string, t core.TransactionType) *string {
		name := categorize.Categorize(description, t)
		if id, ok := byName[name]; ok {
			return &id
		}
		return nil
	}, nil
}

func (s *ImportService) publishImportEvent(ctx context.Context, userID string, txs []core.Transaction) {
	if s.publisher == nil {
		return
	}
	ids := make([]string, len(txs))
	for i, tx := range txs {
		ids[i] = tx.ID
	}
	if err := s.publisher.PublishImportEvent(ctx, amqp.NewImportEventMessage(userID, ids)); err != nil {
		// The batch is already persisted; export will catch up later.
		s.logger.ErrorContext(ctx, "Failed to publish import event",
			"user_id", userID, "transactions", len(ids), "error", err)
	}
}
