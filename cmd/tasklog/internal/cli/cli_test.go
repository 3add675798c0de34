package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/domain"
)

type collector struct {
	mu   sync.Mutex
	recs []domain.SubmissionRecord
}

func (c *collector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var rec domain.SubmissionRecord
	json.NewDecoder(r.Body).Decode(&rec)
	c.mu.Lock()
	c.recs = append(c.recs, rec)
	c.mu.Unlock()
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// setup points the CLI at a fresh journal and a collecting webhook.
func setup(t *testing.T) (db string, c *collector) {
	t.Helper()
	c = &collector{}
	srv := httptest.NewServer(c)
	t.Cleanup(srv.Close)
	t.Setenv("SINK_KIND", "webhook")
	t.Setenv("SINK_URL", srv.URL)
	t.Setenv("LOG_LEVEL", "error")
	return filepath.Join(t.TempDir(), "journal.db"), c
}

func TestSubmitHistoryExport(t *testing.T) {
	db, c := setup(t)

	out, err := run(t, "submit", "--db", db, "--name", "Jane", "--date", "2024-05-01",
		"-t", "Standup=0.5", "-t", "a=b review=2")
	if err != nil {
		t.Fatalf("submit: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Submitted 2 task(s) for Jane on 2024-05-01 (2.5 hours)") {
		t.Errorf("submit output = %q", out)
	}
	if len(c.recs) != 2 {
		t.Fatalf("webhook got %d records, want 2", len(c.recs))
	}
	descs := map[string]bool{}
	for _, r := range c.recs {
		descs[r.TaskDescription] = true
	}
	if !descs["Task-1: Standup"] || !descs["Task-2: a=b review"] {
		t.Errorf("descriptions = %v", descs)
	}

	out, err = run(t, "history", "--db", db)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "Jane") || !strings.Contains(out, "success") {
		t.Errorf("history = %q", out)
	}

	xl := filepath.Join(t.TempDir(), "out.xlsx")
	if _, err := run(t, "export", "--db", db, "--format", "xlsx", "--out", xl); err != nil {
		t.Fatalf("export xlsx: %v", err)
	}
	if fi, err := os.Stat(xl); err != nil || fi.Size() == 0 {
		t.Errorf("xlsx not written: %v", err)
	}

	pdfPath := filepath.Join(t.TempDir(), "out.pdf")
	if _, err := run(t, "export", "--db", db, "--format", "pdf", "--out", pdfPath); err != nil {
		t.Fatalf("export pdf: %v", err)
	}
	b, err := os.ReadFile(pdfPath)
	if err != nil || !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Errorf("pdf not written: %v", err)
	}
}

func TestSubmit_InvalidFormListsProblems(t *testing.T) {
	db, c := setup(t)
	out, err := run(t, "submit", "--db", db, "--date", "2024-05-01", "-t", "Standup=")
	if !errors.Is(err, domain.ErrInvalidForm) {
		t.Fatalf("err = %v, want ErrInvalidForm", err)
	}
	for _, want := range []string{"employee name is required", "task 1: hours are required"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
	if len(c.recs) != 0 {
		t.Error("invalid form was sent")
	}
}

func TestSubmit_FailureExitsNonZero(t *testing.T) {
	db, _ := setup(t)
	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()
	t.Setenv("SINK_URL", dead.URL)

	_, err := run(t, "submit", "--db", db, "--name", "Jane", "--date", "2024-05-01", "-t", "Standup=1")
	if err == nil || !strings.Contains(err.Error(), "submission failed") {
		t.Fatalf("err = %v, want submission failure", err)
	}

	out, _ := run(t, "history", "--db", db)
	if !strings.Contains(out, "failure") || !strings.Contains(out, "dispatch record 1") {
		t.Errorf("history = %q", out)
	}
}

func TestSubmit_BadTaskFlag(t *testing.T) {
	db, _ := setup(t)
	if _, err := run(t, "submit", "--db", db, "--name", "Jane", "-t", "no hours here"); err == nil {
		t.Error("task without '=' accepted")
	}
}

func TestSubmit_MissingSinkURL(t *testing.T) {
	db, _ := setup(t)
	t.Setenv("SINK_URL", "")
	if _, err := run(t, "submit", "--db", db, "--name", "Jane", "-t", "x=1"); err == nil || !strings.Contains(err.Error(), "SINK_URL") {
		t.Errorf("err = %v, want SINK_URL error", err)
	}
}

func TestExport_EmptyJournal(t *testing.T) {
	db, _ := setup(t)
	_, err := run(t, "export", "--db", db, "--format", "pdf", "--out", filepath.Join(t.TempDir(), "x.pdf"))
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Errorf("err = %v, want empty journal error", err)
	}
	if _, err := run(t, "export", "--db", db, "--format", "csv", "--out", "x"); err == nil {
		t.Error("unknown format accepted")
	}
}

func TestHistory_Empty(t *testing.T) {
	db, _ := setup(t)
	out, err := run(t, "history", "--db", db)
	if err != nil || !strings.Contains(out, "No submissions yet.") {
		t.Errorf("history = %q, %v", out, err)
	}
}

func TestMigrateAndVersion(t *testing.T) {
	db, _ := setup(t)
	out, err := run(t, "migrate", "--db", db)
	if err != nil || !strings.Contains(out, "Journal ready") {
		t.Errorf("migrate = %q, %v", out, err)
	}
	if _, err := os.Stat(db); err != nil {
		t.Errorf("journal file missing: %v", err)
	}
	out, _ = run(t, "version")
	if !strings.HasPrefix(out, "tasklog ") {
		t.Errorf("version = %q", out)
	}
}

func TestParseTask(t *testing.T) {
	desc, hours, err := parseTask(" Fix a=b bug = 1.5 ")
	if err != nil || desc != "Fix a=b bug" || hours != "1.5" {
		t.Errorf("parseTask = %q %q %v", desc, hours, err)
	}
}
