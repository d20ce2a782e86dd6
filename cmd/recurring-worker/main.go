package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"smartspend/internal/amqp"
	"smartspend/internal/config"
	applog "smartspend/internal/log"
	"smartspend/internal/services"
	"smartspend/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.Setup(slog.LevelInfo).WithComponent("recurring-worker")

	logger.Info("Starting recurring-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing in SQLite-only mode", "error", err)
			amqpClient = nil
		} else {
			defer amqpClient.Close()
		}
	}

	records := services.NewRecords(repo, amqpClient)
	processor := services.NewProcessor(repo, records)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Recurring transaction processor configured",
		"interval", cfg.RecurringInterval,
		"sqlite_db", cfg.SQLiteDBPath)

	ticker := time.NewTicker(cfg.RecurringInterval)
	defer ticker.Stop()

	// Process once on startup so a long-stopped worker catches up
	// immediately instead of waiting a full interval.
	if count, err := processor.ProcessDue(ctx, time.Now()); err != nil {
		logger.Error("Initial processing failed", "error", err)
	} else {
		logger.Info("Initial processing complete", "schedules_processed", count)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				count, err := processor.ProcessDue(ctx, now)
				if err != nil {
					logger.Error("Periodic processing failed", "error", err)
					continue
				}
				logger.Info("Periodic processing complete",
					"schedules_processed", count,
					"next_check", now.Add(cfg.RecurringInterval).Format("15:04:05"))
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("Shutdown signal received", "signal", sig.String())
	cancel()
	logger.Info("Recurring-worker stopped gracefully")
}
