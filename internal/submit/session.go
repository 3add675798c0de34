package submit

import (
	"context"

	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/domain"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/form"
)

// Session is the single user's form together with its submission machinery.
type Session struct {
	store     *form.Store
	validator form.Validator
	coord     *Coordinator
	reporter  *Reporter
}

// NewSession wires a store to a coordinator. The coordinator should have been
// built with the same store as its resetter.
func NewSession(store *form.Store, coord *Coordinator, v form.Validator) *Session {
	return &Session{
		store:     store,
		validator: v,
		coord:     coord,
		reporter:  &Reporter{},
	}
}

func (s *Session) Store() *form.Store        { return s.store }
func (s *Session) Reporter() *Reporter       { return s.reporter }
func (s *Session) Validator() form.Validator { return s.validator }

// Submit runs one cycle over a snapshot of the form. An invalid form is
// refused with ErrInvalidForm and a running cycle with ErrSubmitInProgress;
// otherwise the outcome is returned and the error is nil.
//
// The cycle ignores cancellation of ctx: once records are in flight they are
// always joined.
func (s *Session) Submit(ctx context.Context) (domain.Outcome, error) {
	emp, tasks := s.store.Snapshot()
	if !s.validator.Valid(emp, tasks) {
		return 0, domain.ErrInvalidForm
	}
	if !s.reporter.Begin() {
		return 0, domain.ErrSubmitInProgress
	}
	defer s.reporter.End()

	outcome := domain.OutcomeFailure
	defer func() { s.reporter.Settle(outcome) }()

	outcome = s.coord.Submit(context.WithoutCancel(ctx), emp, tasks)
	return outcome, nil
}

// View is everything the form page renders.
type View struct {
	Employee   domain.EmployeeContext
	Tasks      []domain.TaskEntry
	Valid      bool
	Problems   []string
	TotalHours float64
	State      State
}

// CanSubmit mirrors the submit button: enabled only for a valid form with no
// cycle running.
func (v View) CanSubmit() bool { return v.Valid && !v.State.IsSubmitting }

func (s *Session) View() View {
	emp, tasks := s.store.Snapshot()
	return View{
		Employee:   emp,
		Tasks:      tasks,
		Valid:      s.validator.Valid(emp, tasks),
		Problems:   s.validator.Problems(emp, tasks),
		TotalHours: form.TotalHours(tasks),
		State:      s.reporter.State(),
	}
}
