package output

import (
	"context"
	"time"

	"eventbot/internal/domain/entities"
)

type RegistrationRepository interface {
	Create(ctx context.Context, registration *entities.Registration) error
	FindByEventIDAndUserID(ctx context.Context, eventID int64, userID string) (*entities.Registration, error)
	FindByEventID(ctx context.Context, eventID int64) ([]entities.Registration, error)
	FindByUserID(ctx context.Context, userID string) ([]entities.Registration, error)
	// FindPending returns all PENDING registrations for the event, in
	// registration order.
	FindPending(ctx context.Context, eventID int64) ([]entities.Registration, error)
	// FindWaiting returns WAITING registrations ordered by registration time
	// ascending (promotion order).
	FindWaiting(ctx context.Context, eventID int64) ([]entities.Registration, error)
	// FindOfferedBefore returns OFFERED registrations whose offer was extended
	// before cutoff, across all events.
	FindOfferedBefore(ctx context.Context, cutoff time.Time) ([]entities.Registration, error)
	UpdateStatus(ctx context.Context, eventID int64, userID string, status string) error
	MarkOffered(ctx context.Context, eventID int64, userID string, offeredAt time.Time) error
}
