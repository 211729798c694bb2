package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"community-pulse/internal/model"
	apperrors "community-pulse/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	List(ctx context.Context, filter model.ListEventsFilter) ([]*model.Event, error)
	Search(ctx context.Context, query string) ([]*model.Event, error)
	ListByOrganizerID(ctx context.Context, organizerID int) ([]*model.Event, error)
	ListPending(ctx context.Context) ([]*model.Event, error)
	FindByID(ctx context.Context, id int) (*model.Event, error)
	Update(ctx context.Context, id int, params model.UpdateEventParams) (*model.Event, error)
	SetApproval(ctx context.Context, id int, approved bool) error
	Delete(ctx context.Context, id int) error
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

const eventColumns = `id, event_id, title, description, location, category,
	       start_date, end_date, registration_start, registration_end,
	       image_path, organizer_id, is_approved, created_at, updated_at`

func scanEvent(row pgx.Row) (*model.Event, error) {
	var event model.Event
	err := row.Scan(
		&event.ID,
		&event.EventID,
		&event.Title,
		&event.Description,
		&event.Location,
		&event.Category,
		&event.StartDate,
		&event.EndDate,
		&event.RegistrationStart,
		&event.RegistrationEnd,
		&event.ImagePath,
		&event.OrganizerID,
		&event.IsApproved,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) scanEvents(rows pgx.Rows) ([]*model.Event, error) {
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := fmt.Sprintf(`
		INSERT INTO events (
			event_id, title, description, location, category,
			start_date, end_date, registration_start, registration_end,
			image_path, organizer_id, is_approved
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING %s
	`, eventColumns)

	return scanEvent(r.pool.QueryRow(ctx, query,
		event.EventID, event.Title, event.Description, event.Location, event.Category,
		event.StartDate, event.EndDate, event.RegistrationStart, event.RegistrationEnd,
		event.ImagePath, event.OrganizerID, event.IsApproved,
	))
}

func (r *EventRepositoryImpl) List(ctx context.Context, filter model.ListEventsFilter) ([]*model.Event, error) {
	conds := []string{}
	args := []interface{}{}
	argPos := 1

	if filter.ApprovedOnly {
		conds = append(conds, "is_approved = TRUE")
	}

	if filter.Category != nil {
		conds = append(conds, fmt.Sprintf("category = $%d", argPos))
		args = append(args, *filter.Category)
		argPos++
	}

	if filter.Upcoming {
		conds = append(conds, fmt.Sprintf("start_date >= $%d", argPos))
		args = append(args, time.Now().UTC())
		argPos++
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		%s
		ORDER BY start_date
	`, eventColumns, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return r.scanEvents(rows)
}

func (r *EventRepositoryImpl) Search(ctx context.Context, search string) ([]*model.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE is_approved = TRUE
		  AND (title ILIKE $1 OR description ILIKE $1 OR location ILIKE $1 OR category ILIKE $1)
		ORDER BY start_date
	`, eventColumns)

	rows, err := r.pool.Query(ctx, query, "%"+search+"%")
	if err != nil {
		return nil, err
	}

	return r.scanEvents(rows)
}

func (r *EventRepositoryImpl) ListByOrganizerID(ctx context.Context, organizerID int) ([]*model.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE organizer_id = $1
		ORDER BY created_at DESC
	`, eventColumns)

	rows, err := r.pool.Query(ctx, query, organizerID)
	if err != nil {
		return nil, err
	}

	return r.scanEvents(rows)
}

func (r *EventRepositoryImpl) ListPending(ctx context.Context) ([]*model.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE is_approved = FALSE
		ORDER BY created_at
	`, eventColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	return r.scanEvents(rows)
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE id = $1
	`, eventColumns)

	event, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

func (r *EventRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateEventParams) (*model.Event, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	appendSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if params.Title != nil {
		appendSet("title", *params.Title)
	}
	if params.Description != nil {
		appendSet("description", *params.Description)
	}
	if params.Location != nil {
		appendSet("location", *params.Location)
	}
	if params.Category != nil {
		appendSet("category", *params.Category)
	}
	if params.StartDate != nil {
		appendSet("start_date", *params.StartDate)
	}
	if params.EndDate != nil {
		appendSet("end_date", *params.EndDate)
	}
	if params.RegistrationStart != nil {
		appendSet("registration_start", *params.RegistrationStart)
	}
	if params.RegistrationEnd != nil {
		appendSet("registration_end", *params.RegistrationEnd)
	}
	if params.ImagePath != nil {
		appendSet("image_path", *params.ImagePath)
	}
	if params.IsApproved != nil {
		appendSet("is_approved", *params.IsApproved)
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	// add updated_at
	appendSet("updated_at", time.Now().UTC())

	// add id
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE events
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), argPos, eventColumns)

	event, err := scanEvent(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

func (r *EventRepositoryImpl) SetApproval(ctx context.Context, id int, approved bool) error {
	query := `
		UPDATE events
		SET is_approved = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := r.pool.Exec(ctx, query, approved, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

func (r *EventRepositoryImpl) Delete(ctx context.Context, id int) error {
	// registrations 與 notifications 由外鍵 ON DELETE CASCADE 一併清除
	query := `
		DELETE FROM events
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}
