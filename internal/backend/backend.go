// Package backend selects and wires a ledger store from configuration.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"homeledger/internal/config"
	"homeledger/internal/ledger"
	"homeledger/internal/ledger/csvfile"
	gsheet "homeledger/internal/ledger/google"
	"homeledger/internal/ledger/memory"
	"homeledger/internal/ledger/sqlite"
)

// Type identifies a ledger backend.
type Type string

const (
	Memory Type = "memory"
	CSV    Type = "csv"
	Sheets Type = "sheets"
	SQLite Type = "sqlite"
)

func (t Type) IsValid() bool {
	switch t {
	case Memory, CSV, Sheets, SQLite:
		return true
	default:
		return false
	}
}

// Result holds the selected store and its cleanup function, which may be
// nil when the backend holds no resources.
type Result struct {
	Store   ledger.Store
	Cleanup func() error
}

// New builds the store named by the configuration.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	t := Type(cfg.DataBackend)
	switch t {
	case Memory:
		logger.Info("Initialized memory backend")
		return &Result{Store: memory.New()}, nil

	case CSV:
		logger.Info("Initialized CSV backend", "path", cfg.CSVPath)
		return &Result{Store: csvfile.New(cfg.CSVPath)}, nil

	case Sheets:
		cli, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("initialize Google Sheets backend: %w", err)
		}
		logger.Info("Initialized Google Sheets backend",
			"spreadsheet_id", cfg.GoogleSpreadsheetID,
			"sheet", cfg.GoogleSheetName)
		return &Result{Store: cli}, nil

	case SQLite:
		store, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite backend: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: store, Cleanup: store.Close}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.DataBackend)
	}
}
