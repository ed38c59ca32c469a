package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/eventboard/backend/internal/model"
	"github.com/jackc/pgx/v5"
)

const eventColumns = `
	id, created_by, title, description, image, category_ids,
	location, start_time, end_time, created_at, updated_at`

func (db *Postgres) ListEvents(ctx context.Context, filter model.EventFilter) ([]model.Event, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Title != "" {
		args = append(args, escapeLike(filter.Title))
		conds = append(conds, fmt.Sprintf("title ILIKE '%%' || $%d::text || '%%' ESCAPE '!'", len(args)))
	}
	if filter.Location != "" {
		args = append(args, escapeLike(filter.Location))
		conds = append(conds, fmt.Sprintf("location ILIKE '%%' || $%d::text || '%%' ESCAPE '!'", len(args)))
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		conds = append(conds, fmt.Sprintf("$%d = ANY(category_ids)", len(args)))
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY start_time ASC NULLS LAST, created_at ASC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *event)
	}
	return list, rows.Err()
}

func (db *Postgres) GetEventByID(ctx context.Context, id string) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return scanEvent(db.Pool.QueryRow(ctx, query, id))
}

func (db *Postgres) CreateEvent(ctx context.Context, event *model.Event) error {
	query := `
		INSERT INTO events (
			id, created_by, title, description, image, category_ids,
			location, start_time, end_time, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := db.Pool.Exec(ctx, query,
		event.ID,
		event.CreatedBy,
		event.Title,
		event.Description,
		event.Image,
		categoryIDs(event.CategoryIDs),
		event.Location,
		nullTime(event.StartTime),
		nullTime(event.EndTime),
		event.CreatedAt,
		event.UpdatedAt,
	)
	return translate(err)
}

func (db *Postgres) UpdateEvent(ctx context.Context, event *model.Event) error {
	query := `
		UPDATE events
		SET
			created_by = $2,
			title = $3,
			description = $4,
			image = $5,
			category_ids = $6,
			location = $7,
			start_time = $8,
			end_time = $9,
			updated_at = $10
		WHERE id = $1
	`
	tag, err := db.Pool.Exec(ctx, query,
		event.ID,
		event.CreatedBy,
		event.Title,
		event.Description,
		event.Image,
		categoryIDs(event.CategoryIDs),
		event.Location,
		nullTime(event.StartTime),
		nullTime(event.EndTime),
		event.UpdatedAt,
	)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *Postgres) DeleteEvent(ctx context.Context, id string) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanEvent(row pgx.Row) (*model.Event, error) {
	var (
		event      model.Event
		start, end *time.Time
	)
	err := row.Scan(
		&event.ID,
		&event.CreatedBy,
		&event.Title,
		&event.Description,
		&event.Image,
		&event.CategoryIDs,
		&event.Location,
		&start,
		&end,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, pgNotFound(err)
	}
	if start != nil {
		event.StartTime = *start
	}
	if end != nil {
		event.EndTime = *end
	}
	return &event, nil
}

func categoryIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// escapeLike makes a filter value match literally inside a LIKE pattern that
// declares ESCAPE '!'.
func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}
