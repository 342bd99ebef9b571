package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-gin-event-hub/internal/database"
	"go-gin-event-hub/internal/model"
	apperrors "go-gin-event-hub/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// PoolProvider 提供 Postgres 連線池，通常是 database.PoolCache
type PoolProvider interface {
	Acquire(ctx context.Context) (*pgxpool.Pool, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	List(ctx context.Context) ([]*model.Event, error)
	FindBySlug(ctx context.Context, slug string) (*model.Event, error)
	Update(ctx context.Context, id int, event *model.Event, changed model.Fields) (*model.Event, error)
}

type EventRepositoryImpl struct {
	pools PoolProvider
}

func NewEventRepository(pools PoolProvider) EventRepository {
	return &EventRepositoryImpl{
		pools: pools,
	}
}

const eventColumns = `id, event_id, title, slug, description, overview, image, venue, location,
		date, time, mode, audience, agenda, organizer, tags, created_at, updated_at`

func scanEvent(row pgx.Row) (*model.Event, error) {
	var event model.Event
	err := row.Scan(
		&event.ID,
		&event.EventID,
		&event.Title,
		&event.Slug,
		&event.Description,
		&event.Overview,
		&event.Image,
		&event.Venue,
		&event.Location,
		&event.Date,
		&event.Time,
		&event.Mode,
		&event.Audience,
		&event.Agenda,
		&event.Organizer,
		&event.Tags,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	pool, err := r.pools.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO events (event_id, title, slug, description, overview, image, venue, location,
			date, time, mode, audience, agenda, organizer, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + eventColumns

	created, err := scanEvent(pool.QueryRow(ctx, query,
		event.EventID, event.Title, event.Slug, event.Description, event.Overview, event.Image,
		event.Venue, event.Location, event.Date, event.Time, event.Mode, event.Audience,
		event.Agenda, event.Organizer, event.Tags,
	))
	if err != nil {
		return nil, translateError(err)
	}
	return created, nil
}

func (r *EventRepositoryImpl) List(ctx context.Context) ([]*model.Event, error) {
	pool, err := r.pools.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY created_at DESC, id DESC
	`
	rows, err := pool.Query(ctx, query)
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
	return events, rows.Err()
}

func (r *EventRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*model.Event, error) {
	pool, err := r.pools.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE slug = $1
	`
	event, err := scanEvent(pool.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, translateError(err)
	}
	return event, nil
}

// Update 只寫入 changed 內的欄位；title 修改時一併寫入 slug
func (r *EventRepositoryImpl) Update(ctx context.Context, id int, event *model.Event, changed model.Fields) (*model.Event, error) {
	sets, args := updateAssignments(event, changed)
	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	pool, err := r.pools.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	// add updated_at
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)+1))
	args = append(args, time.Now().UTC())

	// add id
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE events
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), len(args), eventColumns)

	updated, err := scanEvent(pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translateError(err)
	}
	return updated, nil
}

func updateAssignments(event *model.Event, changed model.Fields) ([]string, []interface{}) {
	columns := []struct {
		field model.Field
		value interface{}
	}{
		{model.FieldTitle, event.Title},
		{model.FieldSlug, event.Slug},
		{model.FieldDescription, event.Description},
		{model.FieldOverview, event.Overview},
		{model.FieldImage, event.Image},
		{model.FieldVenue, event.Venue},
		{model.FieldLocation, event.Location},
		{model.FieldDate, event.Date},
		{model.FieldTime, event.Time},
		{model.FieldMode, event.Mode},
		{model.FieldAudience, event.Audience},
		{model.FieldAgenda, event.Agenda},
		{model.FieldOrganizer, event.Organizer},
		{model.FieldTags, event.Tags},
	}

	sets := []string{}
	args := []interface{}{}
	for _, col := range columns {
		include := changed.Has(col.field)
		if col.field == model.FieldSlug {
			include = changed.Has(model.FieldTitle)
		}
		if !include {
			continue
		}
		args = append(args, col.value)
		sets = append(sets, fmt.Sprintf("%s = $%d", col.field, len(args)))
	}
	return sets, args
}

func translateError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrEventNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == database.SlugUniqueIndex {
		return fmt.Errorf("%w: %s", apperrors.ErrSlugConflict, pgErr.Detail)
	}
	return err
}
