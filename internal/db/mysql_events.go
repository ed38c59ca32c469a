package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/eventboard/backend/internal/model"
)

func (db *MySQL) ListEvents(ctx context.Context, filter model.EventFilter) ([]model.Event, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Title != "" {
		conds = append(conds, "title LIKE CONCAT('%', ?, '%') ESCAPE '!'")
		args = append(args, escapeLike(filter.Title))
	}
	if filter.Location != "" {
		conds = append(conds, "location LIKE CONCAT('%', ?, '%') ESCAPE '!'")
		args = append(args, escapeLike(filter.Location))
	}
	if filter.CategoryID != "" {
		conds = append(conds, "JSON_CONTAINS(category_ids, JSON_QUOTE(?))")
		args = append(args, filter.CategoryID)
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY start_time IS NULL, start_time ASC, created_at ASC`

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Event{}
	for rows.Next() {
		event, err := mysqlScanEvent(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *event)
	}
	return list, rows.Err()
}

func (db *MySQL) GetEventByID(ctx context.Context, id string) (*model.Event, error) {
	return mysqlScanEvent(db.DB.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id))
}

func (db *MySQL) CreateEvent(ctx context.Context, event *model.Event) error {
	cats, err := encodeCategoryIDs(event.CategoryIDs)
	if err != nil {
		return err
	}
	_, err = db.DB.ExecContext(ctx, `
		INSERT INTO events (
			id, created_by, title, description, image, category_ids,
			location, start_time, end_time, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		event.ID,
		event.CreatedBy,
		event.Title,
		event.Description,
		event.Image,
		cats,
		event.Location,
		nullTime(event.StartTime),
		nullTime(event.EndTime),
		event.CreatedAt,
		event.UpdatedAt,
	)
	return translate(err)
}

func (db *MySQL) UpdateEvent(ctx context.Context, event *model.Event) error {
	cats, err := encodeCategoryIDs(event.CategoryIDs)
	if err != nil {
		return err
	}
	res, err := db.DB.ExecContext(ctx, `
		UPDATE events
		SET created_by = ?, title = ?, description = ?, image = ?, category_ids = ?,
			location = ?, start_time = ?, end_time = ?, updated_at = ?
		WHERE id = ?
	`,
		event.CreatedBy,
		event.Title,
		event.Description,
		event.Image,
		cats,
		event.Location,
		nullTime(event.StartTime),
		nullTime(event.EndTime),
		event.UpdatedAt,
		event.ID,
	)
	return affectedOne(res, err)
}

func (db *MySQL) DeleteEvent(ctx context.Context, id string) error {
	res, err := db.DB.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	return affectedOne(res, err)
}

func mysqlScanEvent(row rowScanner) (*model.Event, error) {
	var (
		event      model.Event
		cats       []byte
		start, end sql.NullTime
	)
	err := row.Scan(
		&event.ID,
		&event.CreatedBy,
		&event.Title,
		&event.Description,
		&event.Image,
		&cats,
		&event.Location,
		&start,
		&end,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, sqlNotFound(err)
	}
	if err := json.Unmarshal(cats, &event.CategoryIDs); err != nil {
		return nil, err
	}
	if start.Valid {
		event.StartTime = start.Time
	}
	if end.Valid {
		event.EndTime = end.Time
	}
	return &event, nil
}
