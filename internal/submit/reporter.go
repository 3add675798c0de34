package submit

import (
	"sync"

	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/domain"
)

// Phase is the position of the reporter in its cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSettled
)

func (p Phase) String() string {
	switch p {
	case PhaseSubmitting:
		return "submitting"
	case PhaseSettled:
		return "settled"
	default:
		return "idle"
	}
}

// State is what the UI reads: whether a cycle is running and how the last
// one ended.
type State struct {
	Phase        Phase
	IsSubmitting bool
	Status       domain.Status
}

// Reporter is the Idle -> Submitting -> Settled state machine behind the
// submit button and the result banner.
//
// A cycle is Begin, at most one Settle, then End. End must run on every path,
// so callers defer it right after a successful Begin.
type Reporter struct {
	mu      sync.Mutex
	phase   Phase
	status  domain.Status
	settled bool
}

// Begin starts a cycle and clears the previous status. It returns false
// while another cycle is running.
func (r *Reporter) Begin() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase == PhaseSubmitting {
		return false
	}
	r.phase = PhaseSubmitting
	r.status = domain.StatusNone
	r.settled = false
	return true
}

// Settle records the outcome of the running cycle. Later calls in the same
// cycle are ignored.
func (r *Reporter) Settle(o domain.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhaseSubmitting || r.settled {
		return
	}
	r.status = domain.StatusFor(o)
	r.settled = true
}

// End leaves the Submitting phase.
func (r *Reporter) End() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhaseSubmitting {
		return
	}
	if r.settled {
		r.phase = PhaseSettled
	} else {
		r.phase = PhaseIdle
	}
}

func (r *Reporter) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return State{
		Phase:        r.phase,
		IsSubmitting: r.phase == PhaseSubmitting,
		Status:       r.status,
	}
}
