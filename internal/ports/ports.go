package ports

import (
	"context"

	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/domain"
)

// RecordSink delivers a single record to the external record-keeping service.
// Implementations are acknowledgement-blind unless documented otherwise: a nil
// error means the send was attempted without a local or transport failure,
// not that the record was stored.
type RecordSink interface {
	Send(ctx context.Context, rec domain.SubmissionRecord) error
}

// FormResetter clears the form after a successful cycle.
type FormResetter interface {
	Reset()
}

// JournalRepository persists a diagnostic trail of submission cycles.
type JournalRepository interface {
	RecordCycle(ctx context.Context, e *domain.JournalEntry) error
	GetCycle(ctx context.Context, batchID string) (*domain.JournalEntry, error)
	ListCycles(ctx context.Context, limit int) ([]domain.JournalEntry, error)
}
