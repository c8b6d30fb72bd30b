package domain

// AllocationSummary reports the outcome of one allocation run.
// SeatsTaken includes phantom seats charged for unregistered companions.
type AllocationSummary struct {
	EventID    int64
	SeatsTaken int
	Accepted   int
	Waiting    int
}

// CancelOutcome reports the effect of a cancellation request.
type CancelOutcome struct {
	// AlreadyCancelled is set when the registration was cancelled before;
	// the request succeeded as a no-op.
	AlreadyCancelled bool
	// WasAccepted is set when the cancellation freed a confirmed seat.
	WasAccepted bool
	// Promoted is set when a waiting registrant received an offer as a result.
	Promoted bool
}
