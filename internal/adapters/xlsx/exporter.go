// Package xlsx exports the submission journal as a workbook with a
// "Submissions" summary sheet and a "Records" sheet holding every row that
// was sent.
package xlsx

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/domain"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/ports"
)

const (
	SummarySheet = "Submissions"
	RecordsSheet = "Records"
)

var (
	summaryHeaders = []string{"Batch", "Employee Name", "Date", "Records", "Total Hours", "Outcome", "Error", "Submitted At", "Settled At"}
	recordHeaders  = []string{"Batch", "Employee Name", "Task Description", "Date", "Hours Worked", "Timestamp"}
)

// Export writes entries to w. Records are taken from each entry as given, so
// callers wanting the Records sheet filled must load them first.
func Export(entries []domain.JournalEntry, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SummarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(RecordsSheet); err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := writeHeader(f, SummarySheet, summaryHeaders, bold); err != nil {
		return err
	}
	if err := writeHeader(f, RecordsSheet, recordHeaders, bold); err != nil {
		return err
	}

	recRow := 2
	for i, e := range entries {
		row := []interface{}{
			e.BatchID,
			e.Employee.EmployeeName,
			e.Employee.Date,
			e.RecordCount,
			e.TotalHours,
			e.Outcome.String(),
			e.Error,
			e.SubmittedAt.UTC().Format(domain.TimestampLayout),
			e.SettledAt.UTC().Format(domain.TimestampLayout),
		}
		if err := setRow(f, SummarySheet, i+2, row); err != nil {
			return err
		}
		for _, r := range e.Records {
			row := []interface{}{e.BatchID, r.EmployeeName, r.TaskDescription, r.Date, r.HoursWorked, r.Timestamp}
			if err := setRow(f, RecordsSheet, recRow, row); err != nil {
				return err
			}
			recRow++
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ExportJournal loads every journalled cycle with its records, newest
// first, and exports them.
func ExportJournal(ctx context.Context, journal ports.JournalRepository, w io.Writer) error {
	list, err := journal.ListCycles(ctx, 0)
	if err != nil {
		return fmt.Errorf("list cycles: %w", err)
	}
	entries := make([]domain.JournalEntry, 0, len(list))
	for _, e := range list {
		full, err := journal.GetCycle(ctx, e.BatchID)
		if err != nil {
			return fmt.Errorf("load cycle %s: %w", e.BatchID, err)
		}
		entries = append(entries, *full)
	}
	return Export(entries, w)
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := setRow(f, sheet, 1, row); err != nil {
		return err
	}
	end, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", end, style); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, n int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, n, err)
	}
	return nil
}
