package entities

import "time"

// Registration represents a user's registration for an event.
// There is at most one registration per (UserID, EventID); cancellation is a
// status change, never a row removal.
type Registration struct {
	ID               int64
	EventID          int64
	UserID           string
	Username         string
	FullName         string
	IsAdmin          bool
	IsNeuling        bool
	PartnerName      string // free text, resolved against other registrations at allocation time
	Status           string
	RegistrationTime time.Time // orders the waiting list, FIFO
	OfferedAt        time.Time // zero unless the registration is or was OFFERED
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasPartner reports whether the registrant named a companion.
func (r *Registration) HasPartner() bool {
	return r.PartnerName != ""
}
