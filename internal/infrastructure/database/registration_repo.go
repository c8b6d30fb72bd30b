package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
)

var _ output.RegistrationRepository = (*RegistrationRepository)(nil)

const registrationColumns = `id, event_id, user_id, username, full_name,
	is_admin, is_neuling, partner_name, status, registration_time,
	offered_at, created_at, updated_at`

// RegistrationRepository implements output.RegistrationRepository with pgx.
type RegistrationRepository struct {
	db *pgxpool.Pool
}

func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

func (r *RegistrationRepository) Create(ctx context.Context, registration *entities.Registration) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO registrations
		 (event_id, user_id, username, full_name, is_admin, is_neuling, partner_name, status, registration_time)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		registration.EventID, registration.UserID, registration.Username,
		registration.FullName, registration.IsAdmin, registration.IsNeuling,
		registration.PartnerName, registration.Status, registration.RegistrationTime,
	).Scan(&registration.ID, &registration.CreatedAt, &registration.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// unique (user_id, event_id)
			return domain.ErrAlreadyRegistered
		}
		return fmt.Errorf("create registration: %w", err)
	}
	return nil
}

func (r *RegistrationRepository) FindByEventIDAndUserID(ctx context.Context, eventID int64, userID string) (*entities.Registration, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+registrationColumns+`
		 FROM registrations WHERE event_id = $1 AND user_id = $2`,
		eventID, userID,
	)
	registration, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return registration, nil
}

func (r *RegistrationRepository) FindByEventID(ctx context.Context, eventID int64) ([]entities.Registration, error) {
	return r.query(ctx,
		`SELECT `+registrationColumns+`
		 FROM registrations WHERE event_id = $1 ORDER BY registration_time`,
		eventID,
	)
}

func (r *RegistrationRepository) FindByUserID(ctx context.Context, userID string) ([]entities.Registration, error) {
	return r.query(ctx,
		`SELECT `+registrationColumns+`
		 FROM registrations WHERE user_id = $1 ORDER BY registration_time`,
		userID,
	)
}

func (r *RegistrationRepository) FindPending(ctx context.Context, eventID int64) ([]entities.Registration, error) {
	return r.query(ctx,
		`SELECT `+registrationColumns+`
		 FROM registrations
		 WHERE event_id = $1 AND status = $2
		 ORDER BY registration_time`,
		eventID, domain.StatusPending,
	)
}

func (r *RegistrationRepository) FindWaiting(ctx context.Context, eventID int64) ([]entities.Registration, error) {
	return r.query(ctx,
		`SELECT `+registrationColumns+`
		 FROM registrations
		 WHERE event_id = $1 AND status = $2
		 ORDER BY registration_time ASC`,
		eventID, domain.StatusWaiting,
	)
}

func (r *RegistrationRepository) FindOfferedBefore(ctx context.Context, cutoff time.Time) ([]entities.Registration, error) {
	return r.query(ctx,
		`SELECT `+registrationColumns+`
		 FROM registrations
		 WHERE status = $1 AND offered_at IS NOT NULL AND offered_at < $2
		 ORDER BY offered_at`,
		domain.StatusOffered, cutoff,
	)
}

func (r *RegistrationRepository) UpdateStatus(ctx context.Context, eventID int64, userID string, status string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE registrations SET status = $1, updated_at = now()
		 WHERE event_id = $2 AND user_id = $3`,
		status, eventID, userID,
	)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRegistrationNotFound
	}
	return nil
}

func (r *RegistrationRepository) MarkOffered(ctx context.Context, eventID int64, userID string, offeredAt time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE registrations SET status = $1, offered_at = $2, updated_at = now()
		 WHERE event_id = $3 AND user_id = $4`,
		domain.StatusOffered, offeredAt, eventID, userID,
	)
	if err != nil {
		return fmt.Errorf("mark offered: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRegistrationNotFound
	}
	return nil
}

func (r *RegistrationRepository) query(ctx context.Context, sql string, args ...any) ([]entities.Registration, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query registrations: %w", err)
	}
	defer rows.Close()

	var registrations []entities.Registration
	for rows.Next() {
		registration, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		registrations = append(registrations, *registration)
	}
	return registrations, rows.Err()
}

func scanRegistration(row pgx.Row) (*entities.Registration, error) {
	var registration entities.Registration
	var offeredAt *time.Time
	err := row.Scan(
		&registration.ID, &registration.EventID, &registration.UserID,
		&registration.Username, &registration.FullName, &registration.IsAdmin,
		&registration.IsNeuling, &registration.PartnerName, &registration.Status,
		&registration.RegistrationTime, &offeredAt,
		&registration.CreatedAt, &registration.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if offeredAt != nil {
		registration.OfferedAt = *offeredAt
	}
	return &registration, nil
}
