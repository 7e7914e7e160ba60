package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fintrack/internal/amqp"
	"fintrack/internal/backend"
	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/sheets"
	"fintrack/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.Config{Component: log.ComponentWorker})
	log.SetDefault(logger)

	logger.Info("Starting fintrack-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the export worker")
		os.Exit(1)
	}

	be, err := backend.New(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if be.Cleanup != nil {
		defer func() {
			if err := be.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", "error", err)
			}
		}()
	}
	if cfg.DataBackend == "memory" {
		logger.Warn("Memory backend holds no data across processes; exports will find nothing")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The sheet sink is optional. Without it the worker stays up but leaves
	// messages queued for a configured deployment to drain later.
	var exportWorker *worker.ExportWorker
	if cfg.GoogleSpreadsheetID != "" {
		sheetsClient, err := sheets.NewFromEnv(ctx)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
		exportWorker = worker.NewExportWorker(be.Store.Transactions(), sheetsClient, cfg.ExportBatchSize, logger)
	} else {
		logger.Info("Google Sheets disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	if exportWorker != nil {
		go consumeLoop(ctx, cfg, exportWorker, logger)
	} else {
		logger.Info("Skipping message consumption - no export sink available")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	logger.Info("Shutting down worker...")
	cancel()
	time.Sleep(2 * time.Second)
	logger.Info("Worker shutdown complete")
}

// consumeLoop keeps a consumer attached to the queue, reconnecting after
// connection or channel failures.
func consumeLoop(ctx context.Context, cfg *config.Config, w *worker.ExportWorker, logger *log.Logger) {
	for {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err == nil {
			err = client.ConsumeImportEvents(ctx, w.HandleImportEvent)
			client.Close()
		}
		if ctx.Err() != nil {
			return
		}
		logger.Error("Message consumption stopped, reconnecting",
			"error", err, "retry_in", cfg.ExportInterval)
		select {
		case <-ctx.Done():
			return
		case <-time.After(cfg.ExportInterval):
		}
	}
}
