package input

import (
	"context"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
)

type EventUseCase interface {
	CreateEvent(ctx context.Context, name string, seatLimit int) (*entities.Event, error)
	OpenEvent(ctx context.Context, eventID int64) (*entities.Event, error)
	// CloseEvent closes registration and runs the seat allocation for all
	// pending registrations.
	CloseEvent(ctx context.Context, eventID int64) (*domain.AllocationSummary, error)
	GetEvent(ctx context.Context, eventID int64) (*entities.Event, error)
	ListEvents(ctx context.Context) ([]entities.Event, error)
	ListEventsByOpen(ctx context.Context, isOpen bool) ([]entities.Event, error)
	ListRegistrations(ctx context.Context, eventID int64) ([]entities.Registration, error)
}
