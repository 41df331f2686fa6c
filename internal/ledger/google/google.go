// Package google persists the ledger in a Google Sheets spreadsheet using
// the same five-column layout as the flat-file backend: Name, Date,
// Category, Amount, Notes in A:E, header in row 1, data from row 2.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"homeledger/internal/core"
	"homeledger/internal/ledger"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ ledger.Store = (*Client)(nil)

// NewFromEnv creates a Sheets-backed store using Service Account
// credentials. Required: GOOGLE_SPREADSHEET_ID. Optional:
// GOOGLE_SHEET_NAME (default "Expenses"), and one of
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or
// GOOGLE_APPLICATION_CREDENTIALS for auth.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Expenses"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func (c *Client) dataRange() string {
	return fmt.Sprintf("%s!A2:E", c.sheetName)
}

// rowRef pairs a parsed record with the 1-based physical sheet row it came
// from. Hand-edited rows the parser rejects are invisible to Load, so record
// index and sheet row can diverge; every write resolves through this mapping
// instead of assuming index+2.
type rowRef struct {
	record core.Record
	row    int
}

func parseRows(values [][]any) []rowRef {
	var out []rowRef
	for i, raw := range values {
		if r, ok := ledger.ParseRow(toStrings(raw)); ok {
			out = append(out, rowRef{record: r, row: i + 2})
		}
	}
	return out
}

func (c *Client) loadRows(ctx context.Context) ([]rowRef, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.dataRange()).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ledger.ErrUnavailable, c.dataRange(), err)
	}
	return parseRows(resp.Values), nil
}

func (c *Client) Load(ctx context.Context) ([]core.Record, error) {
	rows, err := c.loadRows(ctx)
	if err != nil {
		return nil, err
	}
	var records []core.Record
	for _, rr := range rows {
		records = append(records, rr.record)
	}
	return records, nil
}

func (c *Client) Append(ctx context.Context, r core.Record) error {
	if err := ledger.Validate(r); err != nil {
		return err
	}

	// Probe column A for the next free row, the header included.
	probe := fmt.Sprintf("%s!A:A", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, probe).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: probe %s: %v", ledger.ErrUnavailable, probe, err)
	}

	nextRow := len(resp.Values) + 1
	if nextRow == 1 {
		// Fresh sheet: write the header first so data starts at row 2.
		if err := c.writeRow(ctx, 1, ledger.Header()); err != nil {
			return err
		}
		nextRow = 2
	}
	return c.writeRow(ctx, nextRow, ledger.FormatRow(r))
}

func (c *Client) Update(ctx context.Context, index int, r core.Record) error {
	if err := ledger.Validate(r); err != nil {
		return err
	}
	row, err := c.rowAt(ctx, index)
	if err != nil {
		return err
	}
	return c.writeRow(ctx, row, ledger.FormatRow(r))
}

func (c *Client) Delete(ctx context.Context, index int) error {
	row, err := c.rowAt(ctx, index)
	if err != nil {
		return err
	}

	sheetID, err := c.sheetID(ctx)
	if err != nil {
		return err
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			DeleteDimension: &gsheet.DeleteDimensionRequest{
				Range: &gsheet.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(row - 1), // dimension indexes are zero-based
					EndIndex:   int64(row),
				},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: delete row %d: %v", ledger.ErrUnavailable, row, err)
	}

	slog.InfoContext(ctx, "Deleted ledger row from sheet", "sheet", c.sheetName, "index", index, "row", row)
	return nil
}

// rowAt maps a zero-based record index to the physical sheet row.
func (c *Client) rowAt(ctx context.Context, index int) (int, error) {
	rows, err := c.loadRows(ctx)
	if err != nil {
		return 0, err
	}
	if index < 0 || index >= len(rows) {
		return 0, fmt.Errorf("%w: index %d", ledger.ErrNotFound, index)
	}
	return rows[index].row, nil
}

func (c *Client) writeRow(ctx context.Context, row int, cols []string) error {
	rng := fmt.Sprintf("%s!A%d:E%d", c.sheetName, row, row)
	values := make([]any, len(cols))
	for i, v := range cols {
		values[i] = v
	}
	vr := &gsheet.ValueRange{Values: [][]any{values}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: write %s: %v", ledger.ErrUnavailable, rng, err)
	}
	return nil
}

// sheetID resolves the numeric sheet ID needed by structural requests.
func (c *Client) sheetID(ctx context.Context) (int64, error) {
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("%w: spreadsheet metadata: %v", ledger.ErrUnavailable, err)
	}
	for _, sheet := range meta.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == c.sheetName {
			return sheet.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("%w: sheet %q not found", ledger.ErrUnavailable, c.sheetName)
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
