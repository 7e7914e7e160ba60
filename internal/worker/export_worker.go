// Package worker drains import events and pushes the referenced
// transactions to the Google Sheets archive.
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/sheets"
	"fintrack/internal/storage"
)

// SheetAppender is the export sink; satisfied by sheets.Client.
type SheetAppender interface {
	AppendTransactions(ctx context.Context, txs []core.Transaction) error
}

var _ SheetAppender = (*sheets.Client)(nil)

type ExportWorker struct {
	txs       storage.TransactionStore
	sheet     SheetAppender
	batchSize int
	logger    *log.Logger
}

func NewExportWorker(txs storage.TransactionStore, sheet SheetAppender, batchSize int, logger *log.Logger) *ExportWorker {
	if batchSize < 1 {
		batchSize = 50
	}
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentWorker})
	}
	return &ExportWorker{
		txs:       txs,
		sheet:     sheet,
		batchSize: batchSize,
		logger:    logger.WithComponent(log.ComponentWorker),
	}
}

// HandleImportEvent loads the transactions named by one import event and
// appends them to the sheet in batches. Transactions deleted since the
// event was published are skipped. A sheet failure returns an error so the
// message is requeued.
func (w *ExportWorker) HandleImportEvent(msg *amqp.ImportEventMessage) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var pending []core.Transaction
	for _, id := range msg.TransactionIDs {
		tx, err := w.txs.Get(ctx, msg.UserID, id)
		if errors.Is(err, storage.ErrNotFound) {
			w.logger.WarnContext(ctx, "Transaction gone before export, skipping",
				"user_id", msg.UserID, "id", id)
			continue
		}
		if err != nil {
			return fmt.Errorf("load transaction %s: %w", id, err)
		}
		pending = append(pending, tx)
	}

	for start := 0; start < len(pending); start += w.batchSize {
		end := start + w.batchSize
		if end > len(pending) {
			end = len(pending)
		}
		if err := w.sheet.AppendTransactions(ctx, pending[start:end]); err != nil {
			return fmt.Errorf("append batch: %w", err)
		}
	}

	w.logger.InfoContext(ctx, "Exported import batch",
		"user_id", msg.UserID,
		"requested", len(msg.TransactionIDs),
		"exported", len(pending))
	return nil
}
