// Package pdf renders a submitted batch as a one-page timesheet: a header
// bar, the employee and date, a table of tasks with their hours, and the
// cycle outcome. Long task lists flow onto further pages.
package pdf

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/domain"
)

// GenerateTimesheet writes the timesheet for one journal entry to w.
func GenerateTimesheet(e *domain.JournalEntry, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 24)
	pdf.AliasNbPages("{nb}")
	pdf.SetFooterFunc(func() { drawFooter(pdf, e) })

	pdf.AddPage()
	drawTimesheet(pdf, e)

	return pdf.Output(w)
}

func drawTimesheet(pdf *fpdf.Fpdf, e *domain.JournalEntry) {
	pageW, _ := pdf.GetPageSize()
	marginL, marginT, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	// ── Header bar ───────────────────────────────────────────────────────────
	pdf.SetFillColor(30, 30, 30)
	pdf.Rect(marginL, marginT, contentW, 10, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginL+2, marginT+1.5)
	pdf.CellFormat(contentW-4, 7, "DAILY WORK TIMESHEET", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 7, "Page "+fmt.Sprint(pdf.PageNo())+" of {nb}", "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	y := marginT + 13

	// ── Employee section ─────────────────────────────────────────────────────
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(marginL, y)
	pdf.CellFormat(contentW, 5.5, "EMPLOYEE", "LRT", 1, "L", true, 0, "")
	y += 5.5

	colHalf := contentW / 2
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginL, y)
	pdf.CellFormat(colHalf, 6.5, e.Employee.EmployeeName, "L", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(colHalf, 6.5, "Date: "+e.Employee.Date, "R", 1, "R", false, 0, "")
	y += 6.5

	pdf.SetXY(marginL, y)
	pdf.CellFormat(colHalf, 5.5, "Submitted: "+e.SubmittedAt.UTC().Format(domain.TimestampLayout), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(colHalf, 5.5, "Batch "+shortID(e.BatchID), "RB", 1, "R", false, 0, "")
	y += 5.5 + 5

	// ── Task table ───────────────────────────────────────────────────────────
	numW := contentW * 0.08
	hoursW := contentW * 0.16
	descW := contentW - numW - hoursW

	header := func() {
		pdf.SetFillColor(30, 30, 30)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 8.5)
		pdf.SetX(marginL)
		pdf.CellFormat(numW, 7, "#", "1", 0, "C", true, 0, "")
		pdf.CellFormat(descW, 7, "Task Description", "1", 0, "L", true, 0, "")
		pdf.CellFormat(hoursW, 7, "Hours", "1", 1, "C", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.SetY(y)
	header()

	rowH := 6.5
	pdf.SetFont("Helvetica", "", 8.5)
	for i, r := range e.Records {
		if pdf.GetY()+rowH > pageBreakY(pdf) {
			pdf.AddPage()
			header()
			pdf.SetFont("Helvetica", "", 8.5)
		}
		if i%2 == 0 {
			pdf.SetFillColor(250, 250, 250)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.SetX(marginL)
		pdf.CellFormat(numW, rowH, strconv.Itoa(i+1), "1", 0, "C", true, 0, "")
		pdf.CellFormat(descW, rowH, fit(pdf, r.TaskDescription, descW-2), "1", 0, "L", true, 0, "")
		pdf.CellFormat(hoursW, rowH, FormatHours(r.HoursWorked), "1", 1, "R", true, 0, "")
	}

	// Total row
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 8.5)
	pdf.SetX(marginL)
	pdf.CellFormat(numW+descW, rowH, "Total Hours", "1", 0, "R", true, 0, "")
	pdf.CellFormat(hoursW, rowH, FormatHours(e.TotalHours), "1", 1, "R", true, 0, "")

	// ── Outcome ──────────────────────────────────────────────────────────────
	pdf.Ln(5)
	if e.Outcome == domain.OutcomeSuccess {
		pdf.SetFillColor(220, 240, 220)
	} else {
		pdf.SetFillColor(245, 215, 215)
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetX(marginL)
	pdf.CellFormat(contentW, 7, "Outcome: "+outcomeLabel(e.Outcome), "1", 1, "L", true, 0, "")
	if e.Error != "" {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetX(marginL)
		pdf.MultiCell(contentW, 4.5, e.Error, "LRB", "L", false)
	}
}

func drawFooter(pdf *fpdf.Fpdf, e *domain.JournalEntry) {
	pageW, pageH := pdf.GetPageSize()
	marginL, _, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	pdf.SetXY(marginL, pageH-18-6)
	pdf.SetFont("Helvetica", "I", 7.5)
	pdf.SetTextColor(130, 130, 130)
	pdf.CellFormat(contentW/2, 5, "Generated by Daily Task Tracker", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, e.Employee.EmployeeName+" | "+e.Employee.Date, "", 0, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

// FormatHours prints hours in their shortest form: 8, 7.5, 0.25.
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// TimesheetFilename names the PDF after the employee, date and batch.
func TimesheetFilename(e *domain.JournalEntry) string {
	name := strings.Join(strings.Fields(e.Employee.EmployeeName), "_")
	if name == "" {
		name = "employee"
	}
	return fmt.Sprintf("timesheet_%s_%s_%s.pdf", name, e.Employee.Date, shortID(e.BatchID))
}

func outcomeLabel(o domain.Outcome) string {
	if o == domain.OutcomeSuccess {
		return "SUBMITTED"
	}
	return "FAILED"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func pageBreakY(pdf *fpdf.Fpdf) float64 {
	_, pageH := pdf.GetPageSize()
	_, _, _, marginB := pdf.GetMargins()
	return pageH - marginB
}

// fit truncates s with an ellipsis so it renders within w.
func fit(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > w {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
