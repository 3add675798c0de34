package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/domain"
)

// Repository is the submission journal. It keeps what was sent and how the
// cycle ended; it is never read back to resend anything.
type Repository struct {
	db *sql.DB
}

// New opens the SQLite database. Call Migrate before first use.
func New(dsn string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dsn+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Migrate creates the journal tables if they do not exist.
func (r *Repository) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS submissions (
			batch_id      TEXT PRIMARY KEY,
			employee_name TEXT NOT NULL,
			task_date     TEXT NOT NULL,
			record_count  INTEGER NOT NULL,
			total_hours   REAL NOT NULL,
			outcome       TEXT NOT NULL,
			error         TEXT NOT NULL DEFAULT '',
			submitted_at  DATETIME NOT NULL,
			settled_at    DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_submitted_at ON submissions(submitted_at)`,
		`CREATE TABLE IF NOT EXISTS submission_records (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			batch_id         TEXT NOT NULL,
			ordinal          INTEGER NOT NULL,
			task_description TEXT NOT NULL,
			hours_worked     REAL NOT NULL,
			timestamp        TEXT NOT NULL,
			FOREIGN KEY (batch_id) REFERENCES submissions(batch_id) ON DELETE CASCADE
		)`,
	}
	for _, s := range stmts {
		if _, err := r.db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// ── Cycles ───────────────────────────────────────────────────────────────────

func (r *Repository) RecordCycle(ctx context.Context, e *domain.JournalEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO submissions (
			batch_id, employee_name, task_date, record_count, total_hours,
			outcome, error, submitted_at, settled_at
		) VALUES (?,?,?,?,?,?,?,?,?)`,
		e.BatchID, e.Employee.EmployeeName, e.Employee.Date,
		e.RecordCount, e.TotalHours,
		e.Outcome.String(), e.Error, e.SubmittedAt, e.SettledAt,
	)
	if err != nil {
		return fmt.Errorf("insert submission %s: %w", e.BatchID, err)
	}
	for i, rec := range e.Records {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO submission_records (
				batch_id, ordinal, task_description, hours_worked, timestamp
			) VALUES (?,?,?,?,?)`,
			e.BatchID, i+1, rec.TaskDescription, rec.HoursWorked, rec.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("insert record %d of %s: %w", i+1, e.BatchID, err)
		}
	}
	return tx.Commit()
}

func (r *Repository) GetCycle(ctx context.Context, batchID string) (*domain.JournalEntry, error) {
	e := &domain.JournalEntry{}
	var outcome string
	err := r.db.QueryRowContext(ctx, `
		SELECT batch_id, employee_name, task_date, record_count, total_hours,
		       outcome, error, submitted_at, settled_at
		FROM submissions WHERE batch_id=?`, batchID).Scan(
		&e.BatchID, &e.Employee.EmployeeName, &e.Employee.Date,
		&e.RecordCount, &e.TotalHours,
		&outcome, &e.Error, &e.SubmittedAt, &e.SettledAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", batchID, domain.ErrBatchNotFound)
	}
	if err != nil {
		return nil, err
	}
	e.Outcome = domain.ParseOutcome(outcome)

	rows, err := r.db.QueryContext(ctx, `
		SELECT task_description, hours_worked, timestamp
		FROM submission_records WHERE batch_id=? ORDER BY ordinal`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		rec := domain.SubmissionRecord{
			EmployeeName: e.Employee.EmployeeName,
			Date:         e.Employee.Date,
		}
		if err := rows.Scan(&rec.TaskDescription, &rec.HoursWorked, &rec.Timestamp); err != nil {
			return nil, err
		}
		e.Records = append(e.Records, rec)
	}
	return e, rows.Err()
}

// ListCycles returns the most recent cycles first, without their records.
// A limit of zero or less returns every cycle.
func (r *Repository) ListCycles(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT batch_id, employee_name, task_date, record_count, total_hours,
		       outcome, error, submitted_at, settled_at
		FROM submissions ORDER BY submitted_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []domain.JournalEntry
	for rows.Next() {
		var e domain.JournalEntry
		var outcome string
		if err := rows.Scan(
			&e.BatchID, &e.Employee.EmployeeName, &e.Employee.Date,
			&e.RecordCount, &e.TotalHours,
			&outcome, &e.Error, &e.SubmittedAt, &e.SettledAt,
		); err != nil {
			return nil, err
		}
		e.Outcome = domain.ParseOutcome(outcome)
		list = append(list, e)
	}
	return list, rows.Err()
}
