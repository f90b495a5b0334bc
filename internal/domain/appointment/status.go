package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusScheduled, StatusCompleted, StatusCanceled:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// ===============================
// Validations
// ===============================

// CanTransition allows only scheduled -> completed and scheduled -> canceled.
func CanTransition(from, to Status) error {
	if from != StatusScheduled {
		return ErrInvalidStateTransition
	}
	if to != StatusCompleted && to != StatusCanceled {
		return ErrInvalidStateTransition
	}
	return nil
}

// CanEdit guards changes to time or service.
func CanEdit(current Status) error {
	if current != StatusScheduled {
		return ErrInvalidStateTransition
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
