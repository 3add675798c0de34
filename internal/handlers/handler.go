package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/adapters/pdf"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/adapters/xlsx"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/domain"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/ports"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/submit"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/templates"
)

const historyLimit = 100

type Handler struct {
	session *submit.Session
	journal ports.JournalRepository
	log     *slog.Logger
}

func New(session *submit.Session, journal ports.JournalRepository, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{session: session, journal: journal, log: log}
}

func (h *Handler) Routes() http.Handler {
	r := mux.NewRouter()
	r.Use(enableCORS)

	r.HandleFunc("/", h.index).Methods("GET", "OPTIONS")
	r.HandleFunc("/employee", h.updateEmployee).Methods("PUT", "OPTIONS")
	r.HandleFunc("/tasks", h.addTask).Methods("POST", "OPTIONS")
	r.HandleFunc("/tasks/{id}", h.updateTask).Methods("PUT", "OPTIONS")
	r.HandleFunc("/tasks/{id}", h.deleteTask).Methods("DELETE", "OPTIONS")
	r.HandleFunc("/submit", h.submit).Methods("POST", "OPTIONS")
	r.HandleFunc("/status", h.status).Methods("GET", "OPTIONS")

	r.HandleFunc("/history", h.history).Methods("GET", "OPTIONS")
	r.HandleFunc("/history/export.xlsx", h.exportXLSX).Methods("GET", "OPTIONS")
	r.HandleFunc("/history/{id}/pdf", h.historyPDF).Methods("GET", "OPTIONS")
	return r
}

// enableCORS lets the form be served from another origin, as the browser
// build of the tracker was.
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, HX-Request, HX-Target, HX-Current-URL, HX-Trigger")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	render(w, r, templates.Index(h.session.View()))
}

// updateEmployee handles PUT /employee with form values field and value.
func (h *Handler) updateEmployee(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	if err := h.session.Store().SetEmployeeField(r.FormValue("field"), r.FormValue("value")); err != nil {
		h.fieldError(w, err)
		return
	}
	h.renderForm(w, r)
}

func (h *Handler) addTask(w http.ResponseWriter, r *http.Request) {
	h.session.Store().AddTask()
	h.renderForm(w, r)
}

// updateTask handles PUT /tasks/{id} with form values field and value.
func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	if err := h.session.Store().SetTaskField(id, r.FormValue("field"), r.FormValue("value")); err != nil {
		h.fieldError(w, err)
		return
	}
	h.renderForm(w, r)
}

// deleteTask removes a task. Removing the last task or an unknown id leaves
// the form unchanged and still renders it.
func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}
	h.session.Store().RemoveTask(id)
	h.renderForm(w, r)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.session.Submit(r.Context())
	switch {
	case errors.Is(err, domain.ErrInvalidForm):
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnprocessableEntity)
		templates.Form(h.session.View()).Render(r.Context(), w)
		return
	case errors.Is(err, domain.ErrSubmitInProgress):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		http.Error(w, err.Error(), 500)
		return
	}
	h.log.Info("submission settled", "outcome", outcome)
	h.renderForm(w, r)
}

type statusResponse struct {
	IsSubmitting bool    `json:"isSubmitting"`
	SubmitStatus *string `json:"submitStatus"`
	TotalHours   float64 `json:"totalHours"`
	FormValid    bool    `json:"formValid"`
}

// status reports the reporter state as JSON. submitStatus is null until the
// first cycle settles and again while a new one runs.
func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	v := h.session.View()
	resp := statusResponse{
		IsSubmitting: v.State.IsSubmitting,
		TotalHours:   v.TotalHours,
		FormValid:    v.Valid,
	}
	if v.State.Status != domain.StatusNone {
		s := v.State.Status.String()
		resp.SubmitStatus = &s
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	entries, err := h.journal.ListCycles(r.Context(), historyLimit)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	render(w, r, templates.History(entries))
}

// historyPDF streams the timesheet for one journalled batch.
func (h *Handler) historyPDF(w http.ResponseWriter, r *http.Request) {
	e, err := h.journal.GetCycle(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, domain.ErrBatchNotFound) {
		http.Error(w, err.Error(), 404)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	var buf bytes.Buffer
	if err := pdf.GenerateTimesheet(e, &buf); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, pdf.TimesheetFilename(e)))
	w.Write(buf.Bytes())
}

// exportXLSX writes the whole journal, records included, as a workbook.
func (h *Handler) exportXLSX(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := xlsx.ExportJournal(r.Context(), h.journal, &buf); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="tasklog.xlsx"`)
	w.Write(buf.Bytes())
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request) {
	render(w, r, templates.Form(h.session.View()))
}

func (h *Handler) fieldError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		http.Error(w, err.Error(), 404)
	case errors.Is(err, domain.ErrUnknownField):
		http.Error(w, err.Error(), 400)
	default:
		http.Error(w, err.Error(), 500)
	}
}

// render writes a templ component to the response.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), 500)
	}
}

func pathID(r *http.Request, key string) (int, error) {
	return strconv.Atoi(mux.Vars(r)[key])
}
