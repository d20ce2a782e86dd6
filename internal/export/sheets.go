// Package export mirrors the SQLite ledger into a Google Sheet so the
// data stays reachable from a plain spreadsheet. The sync worker drives
// it off the change-event stream.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"smartspend/internal/config"
	"smartspend/internal/core"
)

type SheetsExporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	batchSize     int
}

// NewSheetsExporter builds a Sheets client from service account
// credentials. Inline JSON wins over a file path; the standard
// GOOGLE_APPLICATION_CREDENTIALS variable is the fallback.
func NewSheetsExporter(ctx context.Context, cfg *config.Config) (*SheetsExporter, error) {
	credentialsJSON, err := resolveCredentials(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "Google Sheets exporter ready",
		"spreadsheet_id", cfg.SheetsSpreadsheetID,
		"sheet", cfg.SheetsSheetName)

	return &SheetsExporter{
		svc:           svc,
		spreadsheetID: cfg.SheetsSpreadsheetID,
		sheetName:     cfg.SheetsSheetName,
		batchSize:     cfg.ExportBatchSize,
	}, nil
}

func resolveCredentials(cfg *config.Config) ([]byte, error) {
	if inline := strings.TrimSpace(cfg.GoogleCredentialsJSON); inline != "" {
		return []byte(inline), nil
	}
	file := strings.TrimSpace(cfg.GoogleCredentialsFile)
	if file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if file == "" {
		return nil, errors.New("missing service account credentials")
	}
	credentials, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}
	return credentials, nil
}

var header = []any{"Date", "Description", "Category", "Amount", "Recurring"}

// ExportExpenses replaces the sheet's contents with the given snapshot.
// A full rewrite is simpler than diffing against remote rows and the
// ledger is small enough that it stays cheap.
func (x *SheetsExporter) ExportExpenses(ctx context.Context, expenses []core.Expense) error {
	clearRange := fmt.Sprintf("%s!A:E", x.sheetName)
	if _, err := x.svc.Spreadsheets.Values.Clear(x.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear sheet %s: %w", x.sheetName, err)
	}

	rows := make([][]any, 0, len(expenses)+1)
	rows = append(rows, header)
	for _, e := range expenses {
		rows = append(rows, []any{
			e.Date.String(),
			e.Description,
			e.Category,
			e.Amount.Float(),
			e.IsRecurring,
		})
	}

	// Large snapshots go up in chunks so no single request exceeds the
	// API's payload limits.
	for start := 0; start < len(rows); start += x.batchSize {
		end := start + x.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		writeRange := fmt.Sprintf("%s!A%d", x.sheetName, start+1)
		vr := &gsheet.ValueRange{Values: rows[start:end]}
		if _, err := x.svc.Spreadsheets.Values.Update(x.spreadsheetID, writeRange, vr).
			ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
			return fmt.Errorf("write rows %d-%d to sheet %s: %w", start+1, end, x.sheetName, err)
		}
	}

	slog.InfoContext(ctx, "Exported expenses to Google Sheets",
		"rows", len(expenses), "sheet", x.sheetName)
	return nil
}
