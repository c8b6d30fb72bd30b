package output

import (
	"context"

	"eventbot/internal/domain/entities"
)

type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	FindByID(ctx context.Context, id int64) (*entities.Event, error)
	FindAll(ctx context.Context) ([]entities.Event, error)
	FindByOpen(ctx context.Context, isOpen bool) ([]entities.Event, error)
	SetOpen(ctx context.Context, id int64, isOpen bool) error
}
