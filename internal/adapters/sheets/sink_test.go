package sheets_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/adapters/sheets"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/domain"
)

// fakeSheets is a minimal stand-in for the Sheets REST API.
type fakeSheets struct {
	mu       sync.Mutex
	titles   []string
	header   bool
	calls    []string
	appended [][]any
	fail     bool
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	path := r.URL.Path
	f.calls = append(f.calls, r.Method+" "+path)
	w.Header().Set("Content-Type", "application/json")

	if f.fail {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"error":{"code":403,"message":"caller does not have permission"}}`)
		return
	}

	var body struct {
		Values   [][]any `json:"values"`
		Requests []struct {
			AddSheet struct {
				Properties struct {
					Title string `json:"title"`
				} `json:"properties"`
			} `json:"addSheet"`
		} `json:"requests"`
	}
	if r.Body != nil {
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			json.Unmarshal(raw, &body)
		}
	}

	switch {
	case strings.HasSuffix(path, ":append"):
		f.appended = append(f.appended, body.Values...)
		io.WriteString(w, `{}`)
	case strings.HasSuffix(path, ":batchUpdate"):
		for _, req := range body.Requests {
			f.titles = append(f.titles, req.AddSheet.Properties.Title)
		}
		io.WriteString(w, `{"replies":[{}]}`)
	case strings.Contains(path, "/values/") && r.Method == http.MethodGet:
		if f.header {
			io.WriteString(w, `{"values":[["Employee Name"]]}`)
		} else {
			io.WriteString(w, `{}`)
		}
	case strings.Contains(path, "/values/") && r.Method == http.MethodPut:
		f.header = len(body.Values) == 1
		io.WriteString(w, `{}`)
	default:
		var sheetsJSON []string
		for _, t := range f.titles {
			sheetsJSON = append(sheetsJSON, `{"properties":{"title":"`+t+`"}}`)
		}
		io.WriteString(w, `{"sheets":[`+strings.Join(sheetsJSON, ",")+`]}`)
	}
}

func newSink(t *testing.T, fake *fakeSheets) *sheets.Sink {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	svc, err := gsheets.NewService(context.Background(),
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL+"/"),
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return sheets.New(svc, "sheet-id", "Tasks")
}

func TestSend_AppendsRowInSheetColumnOrder(t *testing.T) {
	fake := &fakeSheets{}
	sink := newSink(t, fake)
	rec := domain.SubmissionRecord{
		EmployeeName:    "Jane",
		TaskDescription: "Task-1: A",
		Date:            "2024-05-01",
		HoursWorked:     2,
		Timestamp:       "2024-05-01T09:00:00.000Z",
	}
	if err := sink.Send(context.Background(), rec); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(fake.appended) != 1 {
		t.Fatalf("appended %d rows, want 1", len(fake.appended))
	}
	row := fake.appended[0]
	want := []any{"Jane", "Task-1: A", "2024-05-01", float64(2), "2024-05-01T09:00:00.000Z"}
	if len(row) != len(want) {
		t.Fatalf("row = %v", row)
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("row[%d] = %v, want %v", i, row[i], want[i])
		}
	}
}

func TestSend_APIErrorIsReturned(t *testing.T) {
	sink := newSink(t, &fakeSheets{fail: true})
	if err := sink.Send(context.Background(), domain.SubmissionRecord{}); err == nil {
		t.Error("Send returned nil for a 403")
	}
}

func TestEnsureHeader_CreatesSheetAndHeader(t *testing.T) {
	fake := &fakeSheets{titles: []string{"Sheet1"}}
	sink := newSink(t, fake)
	if err := sink.EnsureHeader(context.Background()); err != nil {
		t.Fatalf("EnsureHeader: %v", err)
	}
	if len(fake.titles) != 2 || fake.titles[1] != "Tasks" {
		t.Errorf("titles = %v, want Tasks added", fake.titles)
	}
	if !fake.header {
		t.Error("header row was not written")
	}
}

func TestEnsureHeader_ExistingSheetIsLeftAlone(t *testing.T) {
	fake := &fakeSheets{titles: []string{"Tasks"}, header: true}
	sink := newSink(t, fake)
	if err := sink.EnsureHeader(context.Background()); err != nil {
		t.Fatalf("EnsureHeader: %v", err)
	}
	for _, c := range fake.calls {
		if strings.HasSuffix(c, ":batchUpdate") || strings.HasPrefix(c, http.MethodPut) {
			t.Errorf("unexpected write %q", c)
		}
	}
}
