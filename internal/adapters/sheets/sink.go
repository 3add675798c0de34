// Package sheets appends submission records as rows of a Google Sheet, the
// same layout the Apps Script endpoint writes:
// Employee Name | Task Description | Date | Hours Worked | Timestamp.
//
// Unlike the webhook sink, the Sheets API reports per-request failures, and
// those are returned from Send. The coordinator still folds them into a
// single outcome for the batch.
package sheets

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/domain"
)

// Header is the first row of the target sheet.
var Header = []interface{}{"Employee Name", "Task Description", "Date", "Hours Worked", "Timestamp"}

type Sink struct {
	srv           *sheets.Service
	spreadsheetID string
	sheetName     string
}

func New(srv *sheets.Service, spreadsheetID, sheetName string) *Sink {
	return &Sink{srv: srv, spreadsheetID: spreadsheetID, sheetName: sheetName}
}

// NewFromCredentials builds a Sheets client from a service-account JSON file.
func NewFromCredentials(ctx context.Context, credentialsFile, spreadsheetID, sheetName string) (*Sink, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	cfg, err := google.JWTConfigFromJSON(b, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}
	return New(srv, spreadsheetID, sheetName), nil
}

// Send appends one row.
func (s *Sink) Send(ctx context.Context, rec domain.SubmissionRecord) error {
	vr := &sheets.ValueRange{
		Values: [][]interface{}{{
			rec.EmployeeName,
			rec.TaskDescription,
			rec.Date,
			rec.HoursWorked,
			rec.Timestamp,
		}},
	}
	_, err := s.srv.Spreadsheets.Values.Append(s.spreadsheetID, s.a1("A:E"), vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}

// EnsureHeader creates the sheet tab when it is missing and writes Header
// into an empty first row.
func (s *Sink) EnsureHeader(ctx context.Context) error {
	meta, err := s.srv.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}
	exists := false
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == s.sheetName {
			exists = true
			break
		}
	}

	if !exists {
		req := &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: s.sheetName},
				},
			}},
		}
		if _, err := s.srv.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
			return fmt.Errorf("create sheet %s: %w", s.sheetName, err)
		}
	}

	resp, err := s.srv.Spreadsheets.Values.Get(s.spreadsheetID, s.a1("1:1")).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if len(resp.Values) > 0 {
		return nil
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{Header}}
	if _, err := s.srv.Spreadsheets.Values.Update(s.spreadsheetID, s.a1("A1"), vr).ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

func (s *Sink) a1(r string) string {
	return fmt.Sprintf("'%s'!%s", s.sheetName, r)
}
