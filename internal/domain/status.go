package domain

import "eventbot/internal/domain/entities"

// Registration statuses.
const (
	StatusPending   = "PENDING"
	StatusAccepted  = "ACCEPTED"
	StatusWaiting   = "WAITING"
	StatusOffered   = "OFFERED"
	StatusDeclined  = "DECLINED"
	StatusCancelled = "CANCELLED"
)

// transitions lists the reachable next statuses for each status.
// DECLINED and CANCELLED are terminal.
var transitions = map[string][]string{
	StatusPending: {StatusAccepted, StatusWaiting, StatusCancelled},
	StatusWaiting: {StatusOffered, StatusCancelled},
	StatusOffered: {StatusAccepted, StatusDeclined, StatusCancelled},
	// Only cancellation leaves ACCEPTED; it is what frees a seat.
	StatusAccepted: {StatusCancelled},
}

// CanTransition reports whether next is reachable from current.
func CanTransition(current, next string) bool {
	for _, s := range transitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// TransitionOutcome is the result of applying a status transition.
type TransitionOutcome int

const (
	// TransitionApplied means the status actually changed.
	TransitionApplied TransitionOutcome = iota
	// TransitionNoop means the record was already in the requested status
	// and the request is treated as a repeat (only CANCELLED allows this).
	TransitionNoop
)

// Transition validates and applies a status change on reg.
// Re-cancelling an already cancelled registration is a no-op, reported as
// TransitionNoop so callers can answer "already cancelled" instead of failing.
// An ACCEPTED/DECLINED request against a record that is no longer OFFERED is
// rejected with ErrOfferNotValid (stale or duplicate offer callback).
func Transition(reg *entities.Registration, next string) (TransitionOutcome, error) {
	if reg.Status == StatusCancelled && next == StatusCancelled {
		return TransitionNoop, nil
	}
	if !CanTransition(reg.Status, next) {
		if (next == StatusAccepted || next == StatusDeclined) && reg.Status != StatusPending {
			return TransitionNoop, ErrOfferNotValid
		}
		return TransitionNoop, ErrInvalidTransition
	}
	reg.Status = next
	return TransitionApplied, nil
}
