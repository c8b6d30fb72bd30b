package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

// EventRepository implements output.EventRepository with pgx.
type EventRepository struct {
	db *pgxpool.Pool
}

func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO events (name, is_open, seat_limit)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		event.Name, event.IsOpen, event.SeatLimit,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id int64) (*entities.Event, error) {
	var e entities.Event
	err := r.db.QueryRow(ctx,
		`SELECT id, name, is_open, seat_limit, created_at
		 FROM events WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.Name, &e.IsOpen, &e.SeatLimit, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	return &e, nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]entities.Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, is_open, seat_limit, created_at
		 FROM events ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *EventRepository) FindByOpen(ctx context.Context, isOpen bool) ([]entities.Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, is_open, seat_limit, created_at
		 FROM events WHERE is_open = $1 ORDER BY id`,
		isOpen,
	)
	if err != nil {
		return nil, fmt.Errorf("list events by open: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *EventRepository) SetOpen(ctx context.Context, id int64, isOpen bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE events SET is_open = $1 WHERE id = $2`,
		isOpen, id,
	)
	if err != nil {
		return fmt.Errorf("set event open: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func scanEvents(rows pgx.Rows) ([]entities.Event, error) {
	var events []entities.Event
	for rows.Next() {
		var e entities.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.IsOpen, &e.SeatLimit, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
