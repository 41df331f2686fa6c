package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"homeledger/internal/amqp"
	"homeledger/internal/backend"
	"homeledger/internal/config"
	gsheet "homeledger/internal/ledger/google"
	applog "homeledger/internal/log"
	"homeledger/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := applog.New(applog.Config{Component: applog.ComponentWorker})
	applog.SetDefault(logger)

	logger.Info("Starting homeledger-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the mirror worker")
		os.Exit(1)
	}
	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("GOOGLE_SPREADSHEET_ID is required for the mirror worker")
		os.Exit(1)
	}
	if cfg.DataBackend == "sheets" {
		logger.Error("Primary backend cannot be sheets: the spreadsheet is the mirror")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The primary is whatever backend the server writes to; it is only read
	// here, for the startup reconciliation.
	primary, err := backend.New(ctx, cfg, logger.Logger)
	if err != nil {
		logger.Error("Failed to initialize primary backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if primary.Cleanup != nil {
		defer primary.Cleanup()
	}

	mirror, err := gsheet.NewFromEnv(ctx)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}
	logger.Info("Google Sheets mirror initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	mirrorWorker := worker.NewMirrorWorker(mirror)

	// Bring the spreadsheet in line with the primary before consuming, so
	// events lost while the worker was down cannot leave a stale mirror.
	logger.Info("Reconciling mirror with primary ledger...")
	if err := mirrorWorker.Reconcile(ctx, primary.Store); err != nil {
		logger.Error("Failed to reconcile mirror", "error", err)
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeLedgerEvents(gctx, mirrorWorker.Handle)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
