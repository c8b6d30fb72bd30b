package input

import (
	"context"
	"time"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
)

type RegistrationUseCase interface {
	Register(ctx context.Context, eventID int64, userID, username, fullName string, isNeuling bool, partnerName string) (*entities.Registration, error)
	// Cancel marks the registration CANCELLED. It is idempotent; a freed
	// ACCEPTED seat triggers exactly one waiting-list promotion.
	Cancel(ctx context.Context, eventID int64, userID string) (domain.CancelOutcome, error)
	// RespondToOffer resolves an outstanding seat offer. A decline promotes
	// the next waiting registrant.
	RespondToOffer(ctx context.Context, eventID int64, userID string, accept bool) error
	UserRegistrations(ctx context.Context, userID string) ([]entities.Registration, error)
	GetRegistration(ctx context.Context, eventID int64, userID string) (*entities.Registration, error)
	// ExpireOffers declines offers extended before now minus the configured
	// timeout and promotes the next candidates. Returns the number expired.
	ExpireOffers(ctx context.Context, now time.Time) (int, error)
}
