package appointment

import "github.com/BruksfildServices01/salon-booking/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusAccepted   Status = "accepted"
	StatusRejected   Status = "rejected"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no-show"
)

var ErrInvalidStatus = httperr.ErrBusiness("invalid_status")
var ErrInvalidTransition = httperr.ErrBusiness("invalid_transition")

// transitions is the single source of truth for what the client may ask
// the API to do. The API still has the final word.
var transitions = map[Status][]Status{
	StatusPending:    {StatusAccepted, StatusRejected, StatusCancelled},
	StatusAccepted:   {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted},
	StatusRejected:   nil,
	StatusCompleted:  nil,
	StatusCancelled:  nil,
	StatusNoShow:     nil,
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := transitions[st]; !ok {
		return "", ErrInvalidStatus
	}
	return st, nil
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// OccupiesSlot reports whether an appointment in this status still holds
// its start time on the salon's calendar.
func (s Status) OccupiesSlot() bool {
	return s != StatusCancelled && s != StatusRejected
}

// ===============================
// Validations
// ===============================

func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return ErrInvalidTransition
}

// NextStatuses lists the statuses reachable from s, in table order.
func NextStatuses(s Status) []Status {
	return append([]Status(nil), transitions[s]...)
}
