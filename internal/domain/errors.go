package domain

import "errors"

// Domain errors.
var (
	ErrEventNotFound         = errors.New("event not found")
	ErrEventClosed           = errors.New("event is not open for registration")
	ErrRegistrationNotFound  = errors.New("registration not found")
	ErrAlreadyRegistered     = errors.New("already registered for this event")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrOfferNotValid         = errors.New("offer is no longer valid")
	ErrNoWaitingRegistration = errors.New("no registration on the waiting list")
	ErrInvalidSeatLimit      = errors.New("seat limit must be positive")
	ErrNotAdmin              = errors.New("only admins can perform this action")
)
