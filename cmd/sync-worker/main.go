package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"smartspend/internal/amqp"
	"smartspend/internal/config"
	"smartspend/internal/export"
	applog "smartspend/internal/log"
	"smartspend/internal/services"
	"smartspend/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.Setup(slog.LevelInfo).WithComponent("sync-worker")

	logger.Info("Starting sync-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.SheetsSpreadsheetID == "" {
		logger.Error("Sync-worker requires SHEETS_SPREADSHEET_ID")
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("Sync-worker requires AMQP_URL")
		os.Exit(1)
	}

	repo, err := storage.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	exporter, err := export.NewSheetsExporter(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets exporter", "error", err)
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	syncExpenses := func(ctx context.Context) error {
		expenses, err := repo.ListExpenses(ctx)
		if err != nil {
			return err
		}
		return exporter.ExportExpenses(ctx, expenses)
	}

	// Full export on startup covers anything missed while the worker was
	// down.
	if err := syncExpenses(ctx); err != nil {
		logger.Error("Startup sync failed", "error", err)
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeChanges(gctx, func(msg *amqp.RecordChange) error {
			if msg.Entity != services.EntityExpense {
				return nil
			}
			logger.Info("Change event received", "entity", msg.Entity, "op", msg.Op, "ids", len(msg.IDs))
			return syncExpenses(gctx)
		})
	})

	// Hourly safety-net sync in case an event was lost.
	g.Go(func() error {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				if err := syncExpenses(gctx); err != nil {
					logger.Error("Periodic sync failed", "error", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Sync-worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Sync-worker stopped gracefully")
}
