package templates

import (
	"html/template"

	"github.com/a-h/templ"

	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/domain"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/submit"
)

var baseTmpl = template.Must(template.New("base").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Daily Task Tracker</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<link rel="preconnect" href="https://fonts.googleapis.com">
<link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
<link href="https://fonts.googleapis.com/css2?family=IBM+Plex+Mono:wght@400;500;600&family=IBM+Plex+Sans:wght@300;400;500;600&display=swap" rel="stylesheet">
<style>
  :root {
    --ink: #0d1117;
    --paper: #f5f0e8;
    --ledger: #e8e0cc;
    --accent: #c0392b;
    --accent2: #2c6e49;
    --muted: #6b5e4e;
    --rule: #b8a898;
  }
  * { box-sizing: border-box; }
  body { background: var(--paper); color: var(--ink); font-family: 'IBM Plex Sans', sans-serif; min-height: 100vh; }
  .mono { font-family: 'IBM Plex Mono', monospace; }
  .card { background: rgba(255,255,255,0.7); border: 1px solid var(--ledger); border-left: 4px solid var(--ink); }
  .field-label {
    font-family: 'IBM Plex Mono', monospace; font-size: 0.6rem; font-weight: 600;
    letter-spacing: 0.1em; text-transform: uppercase; color: var(--muted);
    display: block; margin-bottom: 2px;
  }
  input, textarea {
    background: white; border: 1px solid var(--rule); border-bottom: 2px solid var(--ink);
    padding: 6px 8px; font-family: 'IBM Plex Mono', monospace; font-size: 0.85rem;
    width: 100%; outline: none;
  }
  input:focus, textarea:focus { border-bottom-color: var(--accent); }
  .btn {
    font-family: 'IBM Plex Mono', monospace; font-weight: 600; font-size: 0.8rem;
    letter-spacing: 0.08em; padding: 8px 18px; border: 2px solid var(--ink);
    cursor: pointer; text-transform: uppercase;
  }
  .btn[disabled] { opacity: 0.4; cursor: not-allowed; }
  .btn-primary { background: var(--ink); color: white; }
  .btn-primary:hover:not([disabled]) { background: var(--accent); border-color: var(--accent); }
  .btn-danger { background: white; color: var(--accent); border-color: var(--accent); }
  .section-header {
    font-family: 'IBM Plex Mono', monospace; font-size: 0.7rem; font-weight: 600;
    letter-spacing: 0.18em; text-transform: uppercase; color: var(--muted);
    border-bottom: 1px solid var(--rule); padding-bottom: 4px; margin-bottom: 16px;
  }
  .banner { padding: 12px 16px; margin-top: 16px; font-size: 0.85rem; }
  .banner-ok { border-left: 4px solid var(--accent2); background: #e3f1e8; }
  .banner-err { border-left: 4px solid var(--accent); background: #f7e1de; }
  table { width: 100%; border-collapse: collapse; font-size: 0.8rem; }
  th, td { text-align: left; padding: 6px 8px; border-bottom: 1px solid var(--ledger); }
  .htmx-indicator { opacity: 0; transition: opacity 0.2s; }
  .htmx-request .htmx-indicator { opacity: 1; }
</style>
</head>
<body>
<div style="max-width:820px;margin:0 auto;padding:32px 24px;">
<div style="display:flex;justify-content:space-between;align-items:flex-end;margin-bottom:32px;">
  <div>
    <h1 class="mono" style="font-size:1.6rem;font-weight:600;margin:0;">Daily Task Tracker</h1>
    <div style="font-size:0.85rem;color:var(--muted);margin-top:4px;">Log your daily tasks and hours worked</div>
  </div>
  <nav class="mono" style="font-size:0.75rem;"><a href="/">FORM</a> · <a href="/history">HISTORY</a></nav>
</div>
{{template "content" .}}
</div>
</body>
</html>`))

var indexTmpl = template.Must(template.Must(baseTmpl.Clone()).Parse(`
{{define "content"}}{{template "form" .}}{{end}}
{{define "form"}}
<div id="tracker-form" class="card" style="padding:24px;">
  <div class="section-header">Employee</div>
  <div style="display:grid;grid-template-columns:2fr 1fr;gap:12px;">
    <div>
      <label class="field-label" for="employeeName">Employee Name *</label>
      <input type="text" id="employeeName" name="value" value="{{.Employee.EmployeeName}}"
        placeholder="Enter your full name"
        hx-put="/employee" hx-vals='{"field":"employeeName"}' hx-trigger="change"
        hx-target="#tracker-form" hx-swap="outerHTML">
    </div>
    <div>
      <label class="field-label" for="date">Date *</label>
      <input type="date" id="date" name="value" value="{{.Employee.Date}}"
        hx-put="/employee" hx-vals='{"field":"date"}' hx-trigger="change"
        hx-target="#tracker-form" hx-swap="outerHTML">
    </div>
  </div>

  <div class="section-header" style="margin-top:24px;">Tasks ({{len .Tasks}})</div>
  {{range $i, $t := .Tasks}}
  <div style="display:grid;grid-template-columns:3fr 1fr auto;gap:12px;align-items:end;margin-bottom:12px;">
    <div>
      <label class="field-label">Task {{seq $i}} Description *</label>
      <textarea name="value" rows="2" placeholder="Describe the task you worked on..."
        hx-put="/tasks/{{$t.ID}}" hx-vals='{"field":"description"}' hx-trigger="change"
        hx-target="#tracker-form" hx-swap="outerHTML">{{$t.Description}}</textarea>
    </div>
    <div>
      <label class="field-label">Hours *</label>
      <input type="number" name="value" value="{{$t.HoursWorked}}" step="0.25" min="0" max="24" placeholder="e.g., 8.5"
        hx-put="/tasks/{{$t.ID}}" hx-vals='{"field":"hoursWorked"}' hx-trigger="change"
        hx-target="#tracker-form" hx-swap="outerHTML">
    </div>
    <div>
      {{if gt (len $.Tasks) 1}}
      <button class="btn btn-danger" style="padding:4px 12px;font-size:0.7rem;"
        hx-delete="/tasks/{{$t.ID}}" hx-target="#tracker-form" hx-swap="outerHTML">REMOVE</button>
      {{end}}
    </div>
  </div>
  {{end}}

  <div style="display:flex;justify-content:space-between;align-items:center;margin-top:8px;">
    <button class="btn" hx-post="/tasks" hx-target="#tracker-form" hx-swap="outerHTML">ADD TASK +</button>
    {{if gt .TotalHours 0.0}}<div class="mono" id="total-hours">Total Hours: <strong>{{hours .TotalHours}}</strong></div>{{end}}
  </div>

  {{if .Problems}}
  <ul style="margin-top:16px;font-size:0.75rem;color:var(--muted);">
    {{range .Problems}}<li>{{.}}</li>{{end}}
  </ul>
  {{end}}

  <div style="margin-top:24px;">
    <button class="btn btn-primary" style="width:100%;" id="submit"
      hx-post="/submit" hx-target="#tracker-form" hx-swap="outerHTML" hx-disabled-elt="this"
      {{if not .CanSubmit}}disabled{{end}}>
      {{if .State.IsSubmitting}}SUBMITTING...{{else}}SUBMIT TASKS{{end}}
      <span class="htmx-indicator">…</span>
    </button>
  </div>

  {{if eq .State.Status.String "success"}}
  <div class="banner banner-ok" role="status">
    <strong>Tasks submitted successfully!</strong>
    <div>Your tasks have been recorded.</div>
  </div>
  {{else if eq .State.Status.String "failure"}}
  <div class="banner banner-err" role="alert">
    <strong>Submission failed</strong>
    <div>Please check the sink configuration and try again.</div>
  </div>
  {{end}}
</div>
{{end}}`))

var historyTmpl = template.Must(template.Must(baseTmpl.Clone()).Parse(`
{{define "content"}}
<div class="card" style="padding:24px;">
  <div style="display:flex;justify-content:space-between;align-items:center;">
    <div class="section-header" style="flex:1;">Submission History ({{len .}})</div>
    <a class="btn" style="margin-left:16px;" href="/history/export.xlsx">EXPORT XLSX</a>
  </div>
  {{if not .}}
  <div class="mono" style="padding:20px;text-align:center;font-size:0.8rem;color:var(--muted);">
    No submissions yet.
  </div>
  {{else}}
  <table>
    <thead><tr><th>Batch</th><th>Employee</th><th>Date</th><th>Tasks</th><th>Hours</th><th>Outcome</th><th>Submitted</th><th></th></tr></thead>
    <tbody>
    {{range .}}
    <tr>
      <td class="mono">{{short .BatchID}}</td>
      <td>{{.Employee.EmployeeName}}</td>
      <td class="mono">{{.Employee.Date}}</td>
      <td>{{.RecordCount}}</td>
      <td class="mono">{{hours .TotalHours}}</td>
      <td>{{if success .Outcome}}<span style="color:var(--accent2);">success</span>{{else}}<span style="color:var(--accent);" title="{{.Error}}">failure</span>{{end}}</td>
      <td class="mono">{{stamp .SubmittedAt}}</td>
      <td><a href="/history/{{.BatchID}}/pdf">PDF</a></td>
    </tr>
    {{end}}
    </tbody>
  </table>
  {{end}}
</div>
{{end}}`))

// Index is the full form page.
func Index(v submit.View) templ.Component {
	return component(indexTmpl, "base", v)
}

// Form is the form fragment swapped in after every edit and submit.
func Form(v submit.View) templ.Component {
	return component(indexTmpl, "form", v)
}

// History lists journal entries, newest first.
func History(entries []domain.JournalEntry) templ.Component {
	return component(historyTmpl, "base", entries)
}
