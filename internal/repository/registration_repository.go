package repository

import (
	"context"
	"time"

	"community-pulse/internal/model"
	apperrors "community-pulse/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RegistrationRepository interface {
	Create(ctx context.Context, reg *model.Registration) (*model.Registration, error)
	FindByEventAndUser(ctx context.Context, eventID, userID int) (*model.Registration, error)
	ListByEventID(ctx context.Context, eventID int) ([]*model.Registration, error)
	ListByUserID(ctx context.Context, userID int) ([]*model.Registration, error)
	ListRegisteredUserIDs(ctx context.Context, eventID int) ([]int, error)
	Confirm(ctx context.Context, id int, attendees []string) (*model.Registration, error)
	Delete(ctx context.Context, id int) error
	CountAttendees(ctx context.Context, eventID int) (int, error)
}

type RegistrationRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewRegistrationRepository(pool *pgxpool.Pool) RegistrationRepository {
	return &RegistrationRepositoryImpl{
		pool: pool,
	}
}

const registrationColumns = `id, event_id, user_id, status, attendees, registered_at`

func scanRegistration(row pgx.Row) (*model.Registration, error) {
	var reg model.Registration
	err := row.Scan(
		&reg.ID,
		&reg.EventID,
		&reg.UserID,
		&reg.Status,
		&reg.Attendees,
		&reg.RegisteredAt,
	)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *RegistrationRepositoryImpl) Create(ctx context.Context, reg *model.Registration) (*model.Registration, error) {
	if reg.Attendees == nil {
		reg.Attendees = []string{}
	}

	query := `
		INSERT INTO registrations (event_id, user_id, status, attendees)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + registrationColumns + `
	`

	return scanRegistration(r.pool.QueryRow(ctx, query,
		reg.EventID, reg.UserID, reg.Status, reg.Attendees,
	))
}

func (r *RegistrationRepositoryImpl) FindByEventAndUser(ctx context.Context, eventID, userID int) (*model.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE event_id = $1 AND user_id = $2
	`

	reg, err := scanRegistration(r.pool.QueryRow(ctx, query, eventID, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrRegistrationNotFound
		}
		return nil, err
	}

	return reg, nil
}

func (r *RegistrationRepositoryImpl) ListByEventID(ctx context.Context, eventID int) ([]*model.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE event_id = $1
		ORDER BY registered_at
	`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}

	return r.scanRegistrations(rows)
}

func (r *RegistrationRepositoryImpl) ListByUserID(ctx context.Context, userID int) ([]*model.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE user_id = $1
		ORDER BY registered_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}

	return r.scanRegistrations(rows)
}

func (r *RegistrationRepositoryImpl) scanRegistrations(rows pgx.Rows) ([]*model.Registration, error) {
	defer rows.Close()

	regs := make([]*model.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return regs, nil
}

func (r *RegistrationRepositoryImpl) ListRegisteredUserIDs(ctx context.Context, eventID int) ([]int, error) {
	query := `
		SELECT user_id
		FROM registrations
		WHERE event_id = $1 AND status = $2
	`

	rows, err := r.pool.Query(ctx, query, eventID, model.RegistrationStatusRegistered)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	userIDs := make([]int, 0)
	for rows.Next() {
		var userID int
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, userID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return userIDs, nil
}

func (r *RegistrationRepositoryImpl) Confirm(ctx context.Context, id int, attendees []string) (*model.Registration, error) {
	query := `
		UPDATE registrations
		SET status = $1, attendees = $2, registered_at = $3
		WHERE id = $4
		RETURNING ` + registrationColumns + `
	`

	reg, err := scanRegistration(r.pool.QueryRow(ctx, query,
		model.RegistrationStatusRegistered, attendees, time.Now().UTC(), id,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrRegistrationNotFound
		}
		return nil, err
	}

	return reg, nil
}

func (r *RegistrationRepositoryImpl) Delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM registrations
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrRegistrationNotFound
	}

	return nil
}

func (r *RegistrationRepositoryImpl) CountAttendees(ctx context.Context, eventID int) (int, error) {
	query := `
		SELECT COALESCE(SUM(jsonb_array_length(attendees)), 0)
		FROM registrations
		WHERE event_id = $1 AND status = $2
	`

	var count int
	err := r.pool.QueryRow(ctx, query, eventID, model.RegistrationStatusRegistered).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
