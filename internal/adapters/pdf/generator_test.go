package pdf_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/adapters/pdf"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/domain"
)

func journalEntry(tasks int, outcome domain.Outcome) *domain.JournalEntry {
	e := &domain.JournalEntry{
		BatchID:     "5f0c1b7e-4d7b-4c4e-9a55-2d7c1e3f9a10",
		Employee:    domain.EmployeeContext{EmployeeName: "Jane", Date: "2024-05-01"},
		Outcome:     outcome,
		SubmittedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	for i := 1; i <= tasks; i++ {
		e.Records = append(e.Records, domain.SubmissionRecord{
			EmployeeName:    "Jane",
			Date:            "2024-05-01",
			TaskDescription: fmt.Sprintf("Task-%d: item %d", i, i),
			HoursWorked:     0.5,
		})
		e.TotalHours += 0.5
	}
	e.RecordCount = len(e.Records)
	return e
}

func TestGenerateTimesheet_WritesPDF(t *testing.T) {
	var buf bytes.Buffer
	if err := pdf.GenerateTimesheet(journalEntry(3, domain.OutcomeSuccess), &buf); err != nil {
		t.Fatalf("GenerateTimesheet: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "%PDF-") {
		t.Errorf("output does not start with a PDF header: %q", buf.String()[:min(16, buf.Len())])
	}
}

func TestGenerateTimesheet_FailureWithLongListPaginates(t *testing.T) {
	e := journalEntry(80, domain.OutcomeFailure)
	e.Error = "dispatch record 2: connection refused"
	e.Records[0].TaskDescription = "Task-1: " + strings.Repeat("very long description ", 20)

	var buf bytes.Buffer
	if err := pdf.GenerateTimesheet(e, &buf); err != nil {
		t.Fatalf("GenerateTimesheet: %v", err)
	}
	n := bytes.Count(buf.Bytes(), []byte("/Type /Page")) - bytes.Count(buf.Bytes(), []byte("/Type /Pages"))
	if n < 2 {
		t.Errorf("pages = %d, want at least 2 for 80 rows", n)
	}
}

func TestFormatHours(t *testing.T) {
	cases := map[float64]string{8: "8", 7.5: "7.5", 0.25: "0.25", 0: "0"}
	for in, want := range cases {
		if got := pdf.FormatHours(in); got != want {
			t.Errorf("FormatHours(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestTimesheetFilename(t *testing.T) {
	e := journalEntry(1, domain.OutcomeSuccess)
	e.Employee.EmployeeName = "  Jane   Q Doe "
	if got, want := pdf.TimesheetFilename(e), "timesheet_Jane_Q_Doe_2024-05-01_5f0c1b7e.pdf"; got != want {
		t.Errorf("TimesheetFilename = %q, want %q", got, want)
	}
	e.Employee.EmployeeName = ""
	if got := pdf.TimesheetFilename(e); !strings.HasPrefix(got, "timesheet_employee_") {
		t.Errorf("TimesheetFilename for blank name = %q", got)
	}
}
