package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"homeledger/internal/core"
)

type Config struct {
	// HTTP Server
	Port string

	// Backend selection: memory, csv, sheets, sqlite
	DataBackend string

	// CSV flat file
	CSVPath string

	// SQLite
	SQLiteDBPath string

	// AMQP mirror pipeline (optional)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// Household
	Members           []string
	PaychecksPerMonth int

	// Leftover split, as "Name:share" pairs. Empty means the default
	// 25/40/20/15 plan.
	AllocationPlan string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8081"),
		DataBackend: getEnv("DATA_BACKEND", "memory"),

		CSVPath:      getEnv("LEDGER_CSV_PATH", "./data/expenses.csv"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/homeledger.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "homeledger"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_events"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Expenses"),

		Members:           splitList(getEnv("HOUSEHOLD_MEMBERS", "Greg,Tyler")),
		PaychecksPerMonth: getEnvInt("PAYCHECKS_PER_MONTH", 2),

		AllocationPlan: getEnv("ALLOCATION_PLAN", ""),
	}
}

// Household returns the configured members as domain persons.
func (c *Config) Household() []core.Person {
	out := make([]core.Person, len(c.Members))
	for i, m := range c.Members {
		out[i] = core.Person(m)
	}
	return out
}

// Plan parses the allocation plan override, or returns the default split.
func (c *Config) Plan() (core.AllocationPlan, error) {
	if strings.TrimSpace(c.AllocationPlan) == "" {
		return core.DefaultAllocationPlan(), nil
	}
	var plan core.AllocationPlan
	for _, pair := range strings.Split(c.AllocationPlan, ",") {
		name, share, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("malformed allocation bucket %q: want Name:share", pair)
		}
		d, err := decimal.NewFromString(strings.TrimSpace(share))
		if err != nil {
			return nil, fmt.Errorf("malformed allocation share %q: %v", share, err)
		}
		plan = append(plan, core.AllocationBucket{Name: strings.TrimSpace(name), Share: d})
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return plan, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validBackends := []string{"memory", "csv", "sheets", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "csv" && strings.TrimSpace(c.CSVPath) == "" {
		errors = append(errors, "ledger CSV path cannot be empty when using csv backend")
	}
	if c.DataBackend == "sqlite" && strings.TrimSpace(c.SQLiteDBPath) == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}
	if c.DataBackend == "sheets" && c.GoogleSpreadsheetID == "" {
		errors = append(errors, "Google Spreadsheet ID is required when using sheets backend")
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(c.Members) == 0 {
		errors = append(errors, "household must have at least one member")
	}
	seen := map[string]bool{}
	for _, m := range c.Members {
		if strings.TrimSpace(m) == "" {
			errors = append(errors, "household member names cannot be empty")
			continue
		}
		key := strings.ToLower(m)
		if seen[key] {
			errors = append(errors, fmt.Sprintf("duplicate household member '%s'", m))
		}
		seen[key] = true
	}

	if c.PaychecksPerMonth < 1 {
		errors = append(errors, fmt.Sprintf("invalid paychecks per month %d: must be at least 1", c.PaychecksPerMonth))
	}

	if _, err := c.Plan(); err != nil {
		errors = append(errors, fmt.Sprintf("invalid allocation plan: %v", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
