// Package submit turns the task form into delivery records, sends them to the
// record-keeping sink, and tracks the status of each submission cycle.
package submit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/domain"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/form"
	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/ports"
)

// Coordinator sends one record per task to the sink concurrently and waits
// for every send to settle before deciding the outcome. The outcome is all or
// nothing: a single failed send fails the cycle, and a success only means
// every send was attempted without a local error.
type Coordinator struct {
	sink    ports.RecordSink
	form    ports.FormResetter
	journal ports.JournalRepository
	log     *slog.Logger
	now     func() time.Time
	timeout time.Duration
}

type Option func(*Coordinator)

// WithClock overrides time.Now for batch and record timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) { c.log = l }
}

// WithJournal records every cycle. Journal failures are logged only.
func WithJournal(j ports.JournalRepository) Option {
	return func(c *Coordinator) { c.journal = j }
}

// WithDispatchTimeout bounds each individual send. Zero means no deadline.
func WithDispatchTimeout(d time.Duration) Option {
	return func(c *Coordinator) { c.timeout = d }
}

func NewCoordinator(sink ports.RecordSink, f ports.FormResetter, opts ...Option) *Coordinator {
	c := &Coordinator{
		sink: sink,
		form: f,
		log:  slog.Default(),
		now:  time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BuildBatch snapshots tasks into records. The ordinal in "Task-N" is the
// 1-based list position; every record captures its own timestamp.
func (c *Coordinator) BuildBatch(emp domain.EmployeeContext, tasks []domain.TaskEntry) *domain.SubmissionBatch {
	b := &domain.SubmissionBatch{
		ID:       uuid.NewString(),
		Employee: emp,
		Records:  make([]domain.SubmissionRecord, 0, len(tasks)),
		BuiltAt:  c.now(),
	}
	for i, t := range tasks {
		hours, _ := form.ParseHours(t.HoursWorked)
		b.Records = append(b.Records, domain.SubmissionRecord{
			EmployeeName:    emp.EmployeeName,
			TaskDescription: fmt.Sprintf("Task-%d: %s", i+1, t.Description),
			Date:            emp.Date,
			HoursWorked:     hours,
			Timestamp:       c.now().UTC().Format(domain.TimestampLayout),
		})
	}
	return b
}

// Submit runs one cycle. On success the form is reset; on failure it is left
// as it was so the user can retry.
func (c *Coordinator) Submit(ctx context.Context, emp domain.EmployeeContext, tasks []domain.TaskEntry) domain.Outcome {
	batch := c.BuildBatch(emp, tasks)
	log := c.log.With("batch", batch.ID, "records", len(batch.Records))

	err := c.dispatch(ctx, batch)
	outcome := domain.OutcomeSuccess
	if err != nil {
		outcome = domain.OutcomeFailure
		log.Error("submission failed", "err", err)
	} else {
		log.Info("submission sent", "employee", emp.EmployeeName, "date", emp.Date, "hours", batch.TotalHours())
	}

	if outcome == domain.OutcomeSuccess {
		c.form.Reset()
	}
	c.record(ctx, log, batch, outcome, err)
	return outcome
}

// dispatch fans the batch out and joins on every send. Sibling sends are never
// cancelled when one fails.
func (c *Coordinator) dispatch(ctx context.Context, batch *domain.SubmissionBatch) error {
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []*domain.DispatchError
	)
	for i, rec := range batch.Records {
		ordinal := i + 1
		rec := rec
		g.Go(func() error {
			err := c.send(ctx, ordinal, rec)
			if err != nil {
				c.log.Warn("dispatch error", "batch", batch.ID, "record", ordinal, "err", err.Err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return err
			}
			return nil
		})
	}
	if g.Wait() == nil {
		return nil
	}
	sort.Slice(errs, func(i, j int) bool { return errs[i].Ordinal < errs[j].Ordinal })
	joined := make([]error, len(errs))
	for i, e := range errs {
		joined[i] = e
	}
	return errors.Join(joined...)
}

func (c *Coordinator) send(ctx context.Context, ordinal int, rec domain.SubmissionRecord) (derr *domain.DispatchError) {
	defer func() {
		if r := recover(); r != nil {
			derr = &domain.DispatchError{Ordinal: ordinal, Err: fmt.Errorf("sink panicked: %v", r)}
		}
	}()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if err := c.sink.Send(ctx, rec); err != nil {
		return &domain.DispatchError{Ordinal: ordinal, Err: err}
	}
	return nil
}

func (c *Coordinator) record(ctx context.Context, log *slog.Logger, batch *domain.SubmissionBatch, outcome domain.Outcome, err error) {
	if c.journal == nil {
		return
	}
	e := &domain.JournalEntry{
		BatchID:     batch.ID,
		Employee:    batch.Employee,
		RecordCount: len(batch.Records),
		TotalHours:  batch.TotalHours(),
		Outcome:     outcome,
		Records:     batch.Records,
		SubmittedAt: batch.BuiltAt,
		SettledAt:   c.now(),
	}
	if err != nil {
		e.Error = err.Error()
	}
	if jerr := c.journal.RecordCycle(ctx, e); jerr != nil {
		log.Warn("journal write failed", "err", jerr)
	}
}
