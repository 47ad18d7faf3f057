package appointment

import "github.com/dcastillo-dev/barberbook/internal/httperr"

// ===============================
// Appointment State
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	// StatusReschedulled keeps the original wire spelling.
	StatusReschedulled Status = "reschedulled"
	StatusCancelled    Status = "cancelled"
	StatusCompleted    Status = "completed"
)

func InitialStatus() Status {
	return StatusScheduled
}

// Terminal states accept no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

func (s Status) active() bool {
	return s == StatusScheduled || s == StatusReschedulled
}

// ActiveStates are the states that occupy a time slot.
func ActiveStates() []string {
	return []string{string(StatusScheduled), string(StatusReschedulled)}
}

// ===============================
// Transition guards
// ===============================

func CanReschedule(current Status) error {
	if !current.active() {
		return httperr.ErrBusinessMsg(httperr.CodeInvalidState,
			"appointment in state "+string(current)+" cannot be rescheduled")
	}
	return nil
}

func CanCancel(current Status) error {
	if !current.active() {
		return httperr.ErrBusinessMsg(httperr.CodeInvalidState,
			"appointment in state "+string(current)+" cannot be cancelled")
	}
	return nil
}

func CanComplete(current Status) error {
	if !current.active() {
		return httperr.ErrBusinessMsg(httperr.CodeInvalidState,
			"appointment in state "+string(current)+" cannot be completed")
	}
	return nil
}
