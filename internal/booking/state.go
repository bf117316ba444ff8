package booking

import (
	"fmt"
	"slices"
)

type Phase string

const (
	PhaseSelectingServices Phase = "selecting_services"
	PhaseSelectingDate     Phase = "selecting_date"
	PhaseSelectingSlot     Phase = "selecting_slot"
	PhaseSubmitting        Phase = "submitting"
	PhaseDone              Phase = "done"
	PhaseFailed            Phase = "failed"
)

// State is the current phase of a flow. Reason is set for PhaseFailed only.
type State struct {
	Phase  Phase
	Reason string
}

var transitions = map[Phase][]Phase{
	PhaseSelectingServices: {PhaseSelectingServices, PhaseSelectingDate, PhaseSelectingSlot},
	PhaseSelectingDate:     {PhaseSelectingServices, PhaseSelectingDate, PhaseSelectingSlot},
	PhaseSelectingSlot:     {PhaseSelectingServices, PhaseSelectingDate, PhaseSelectingSlot, PhaseSubmitting},
	PhaseSubmitting:        {PhaseDone, PhaseFailed},
	PhaseFailed:            {PhaseSelectingServices, PhaseSelectingDate, PhaseSelectingSlot, PhaseSubmitting},
	PhaseDone:              {},
}

func canMove(from, to Phase) bool {
	return slices.Contains(transitions[from], to)
}

func (s State) next(to Phase, reason string) (State, error) {
	if !canMove(s.Phase, to) {
		return s, fmt.Errorf("booking: %s -> %s not allowed", s.Phase, to)
	}
	if to != PhaseFailed {
		reason = ""
	}
	return State{Phase: to, Reason: reason}, nil
}
