package domain

import "time"

// TimestampLayout is the ISO-8601 instant format written into every record:
// UTC with millisecond precision, e.g. "2024-05-01T09:30:00.000Z".
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Field names accepted by the form store. They match the JSON keys of the
// outgoing record so UI inputs can use them as their name attribute.
const (
	FieldEmployeeName = "employeeName"
	FieldDate         = "date"
	FieldDescription  = "description"
	FieldHoursWorked  = "hoursWorked"
)

// MaxHoursPerDay bounds a single entry when strict validation is enabled.
const MaxHoursPerDay = 24.0

// EmployeeContext is shared by every task in one submission cycle.
type EmployeeContext struct {
	EmployeeName string
	Date         string // calendar date, e.g. "2024-05-01"
}

// TaskEntry is one (description, hours) pair. ID is its identity; list
// position is only used for display and for the "Task-N" label.
type TaskEntry struct {
	ID          int
	Description string
	HoursWorked string // raw numeric input as typed
}

// SubmissionRecord is the payload delivered to the record-keeping sink,
// one per TaskEntry.
type SubmissionRecord struct {
	EmployeeName    string  `json:"employeeName"`
	TaskDescription string  `json:"taskDescription"` // "Task-{n}: {description}"
	Date            string  `json:"date"`
	HoursWorked     float64 `json:"hoursWorked"`
	Timestamp       string  `json:"timestamp"`
}

// SubmissionBatch is the snapshot of records built when submit is invoked.
type SubmissionBatch struct {
	ID       string
	Employee EmployeeContext
	Records  []SubmissionRecord
	BuiltAt  time.Time
}

// TotalHours sums the parsed hours of every record in the batch.
func (b *SubmissionBatch) TotalHours() float64 {
	var total float64
	for _, r := range b.Records {
		total += r.HoursWorked
	}
	return total
}

// Outcome is the binary result of a submission cycle.
type Outcome int

const (
	OutcomeSuccess Outcome = iota + 1
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// ParseOutcome is the inverse of Outcome.String, used when reading the journal.
func ParseOutcome(s string) Outcome {
	switch s {
	case "success":
		return OutcomeSuccess
	case "failure":
		return OutcomeFailure
	default:
		return 0
	}
}

// Status is the user-visible result of the latest cycle.
type Status int

const (
	StatusNone Status = iota
	StatusSuccess
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "none"
	}
}

// StatusFor maps a cycle outcome to the status shown to the user.
func StatusFor(o Outcome) Status {
	switch o {
	case OutcomeSuccess:
		return StatusSuccess
	case OutcomeFailure:
		return StatusFailure
	default:
		return StatusNone
	}
}

// JournalEntry is one persisted submission cycle. It is a diagnostic trail,
// not a delivery receipt: a success only means every send was attempted
// without a local error.
type JournalEntry struct {
	BatchID     string
	Employee    EmployeeContext
	RecordCount int
	TotalHours  float64
	Outcome     Outcome
	Error       string
	Records     []SubmissionRecord
	SubmittedAt time.Time
	SettledAt   time.Time
}
