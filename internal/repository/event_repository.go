package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-event-registry/internal/model"
	apperrors "go-event-registry/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	List(ctx context.Context) ([]*model.Event, error)
	FindByID(ctx context.Context, id int64) (*model.Event, error)
	FindOpenByName(ctx context.Context, name string) (*model.Event, error)
	FindOpenByOwner(ctx context.Context, owner string) (*model.Event, error)
	Update(ctx context.Context, id int64, params model.UpdateEventParams) (*model.Event, error)
	UpdateStatus(ctx context.Context, id int64, status model.EventStatus) (*model.Event, error)
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

const eventColumns = "id, name, description, location, date, owner, status, created_at, updated_at"

func scanEvent(row pgx.Row) (*model.Event, error) {
	var event model.Event
	err := row.Scan(
		&event.ID,
		&event.Name,
		&event.Description,
		&event.Location,
		&event.Date,
		&event.Owner,
		&event.Status,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	// id 由這裡配號而非 sequence：連續、從 1 開始、不跳號。
	// 寫入已由 service 的互斥鎖序列化，MAX(id)+1 不會撞號。
	query := `
		INSERT INTO events (id, name, description, location, date, owner, status)
		SELECT COALESCE(MAX(id), 0) + 1, $1, $2, $3, $4, $5, $6
		FROM events
		RETURNING ` + eventColumns

	created, err := scanEvent(r.pool.QueryRow(ctx, query,
		event.Name, event.Description, event.Location, event.Date, event.Owner, event.Status,
	))
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *EventRepositoryImpl) List(ctx context.Context) ([]*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY id ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id int64) (*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
	`
	event, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *EventRepositoryImpl) FindOpenByName(ctx context.Context, name string) (*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE name = $1 AND status = $2
	`
	event, err := scanEvent(r.pool.QueryRow(ctx, query, name, model.EventStatusOpen))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *EventRepositoryImpl) FindOpenByOwner(ctx context.Context, owner string) (*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE owner = $1 AND status = $2
		ORDER BY id ASC
		LIMIT 1
	`
	event, err := scanEvent(r.pool.QueryRow(ctx, query, owner, model.EventStatusOpen))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *EventRepositoryImpl) Update(ctx context.Context, id int64, params model.UpdateEventParams) (*model.Event, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	if params.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argPos))
		args = append(args, *params.Name)
		argPos++
	}

	if params.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", argPos))
		args = append(args, *params.Description)
		argPos++
	}

	if params.Location != nil {
		sets = append(sets, fmt.Sprintf("location = $%d", argPos))
		args = append(args, *params.Location)
		argPos++
	}

	if params.Date != nil {
		sets = append(sets, fmt.Sprintf("date = $%d", argPos))
		args = append(args, *params.Date)
		argPos++
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	// add updated_at
	sets = append(sets, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now().UTC())
	argPos++

	// add id
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE events
		SET %s
		WHERE id = $%d
		RETURNING `+eventColumns, strings.Join(sets, ", "), argPos)

	event, err := scanEvent(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *EventRepositoryImpl) UpdateStatus(ctx context.Context, id int64, status model.EventStatus) (*model.Event, error) {
	query := `
		UPDATE events
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + eventColumns

	event, err := scanEvent(r.pool.QueryRow(ctx, query, status, time.Now().UTC(), id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}
