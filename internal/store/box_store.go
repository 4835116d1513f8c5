package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/czhang/todobox/internal/model"
)

const boxColumns = "title, color, created_at, select_date_at, last_modified_at"

// InsertBox inserts a box and returns the assigned id. A conflicting
// explicit id is silently ignored per the insert contract.
func (s *SQLiteStore) InsertBox(ctx context.Context, box model.Box) (int64, error) {
	now := time.Now().UTC()
	if box.CreatedAt.IsZero() {
		box.CreatedAt = now
	}
	if box.SelectDateAt.IsZero() {
		box.SelectDateAt = now
	}
	box.LastModifiedAt = now

	args := []interface{}{
		box.Title, box.Color, box.CreatedAt.UTC(), box.SelectDateAt.UTC(),
		box.LastModifiedAt.UTC(),
	}

	if box.ID != 0 {
		_, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO todo_box (id, `+boxColumns+`)
			VALUES (?, ?, ?, ?, ?, ?)`,
			append([]interface{}{box.ID}, args...)...,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting box %d: %w", box.ID, err)
		}
		return box.ID, nil
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO todo_box (`+boxColumns+`) VALUES (?, ?, ?, ?, ?)`,
		args...,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting box: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading assigned box id: %w", err)
	}
	return id, nil
}

// UpdateBox replaces every field of the row matching the box's id.
// A missing row is a no-op per the update contract.
func (s *SQLiteStore) UpdateBox(ctx context.Context, box model.Box) error {
	box.LastModifiedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		UPDATE todo_box SET
			title = ?, color = ?, created_at = ?, select_date_at = ?,
			last_modified_at = ?
		WHERE id = ?`,
		box.Title, box.Color, box.CreatedAt.UTC(), box.SelectDateAt.UTC(),
		box.LastModifiedAt, box.ID,
	)
	if err != nil {
		return fmt.Errorf("updating box %d: %w", box.ID, err)
	}
	return nil
}

// DeleteBoxByID removes the box; the cascading foreign key removes every
// todo referencing it. Deleting a missing box is a no-op.
func (s *SQLiteStore) DeleteBoxByID(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM todo_box WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting box %d: %w", id, err)
	}
	return nil
}

// GetBoxes returns all boxes in insertion order.
func (s *SQLiteStore) GetBoxes(ctx context.Context) ([]model.Box, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, "+boxColumns+" FROM todo_box ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("querying boxes: %w", err)
	}
	defer rows.Close()

	var boxes []model.Box
	for rows.Next() {
		box, err := scanBox(rows)
		if err != nil {
			return nil, err
		}
		boxes = append(boxes, box)
	}
	return boxes, rows.Err()
}

// GetBoxByID retrieves a single box by id.
func (s *SQLiteStore) GetBoxByID(ctx context.Context, id int64) (*model.Box, error) {
	return s.getBox(ctx,
		"SELECT id, "+boxColumns+" FROM todo_box WHERE id = ?", id)
}

// GetBoxByIDAndDate retrieves a box only when its select date falls in
// [start, end).
func (s *SQLiteStore) GetBoxByIDAndDate(
	ctx context.Context,
	id int64,
	start, end time.Time,
) (*model.Box, error) {
	return s.getBox(ctx, `
		SELECT id, `+boxColumns+` FROM todo_box
		WHERE id = ? AND select_date_at >= ? AND select_date_at < ?`,
		id, start.UTC(), end.UTC())
}

// getBox runs a single-box select.
func (s *SQLiteStore) getBox(
	ctx context.Context,
	query string,
	args ...interface{},
) (*model.Box, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying box: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("querying box: %w", err)
		}
		return nil, fmt.Errorf("querying box: %w", sql.ErrNoRows)
	}
	box, err := scanBox(rows)
	if err != nil {
		return nil, err
	}
	return &box, nil
}

// scanBox scans a box row from a sqlx.Rows result set.
func scanBox(rows *sqlx.Rows) (model.Box, error) {
	var (
		box            model.Box
		lastModifiedAt sql.NullTime
	)

	err := rows.Scan(
		&box.ID, &box.Title, &box.Color, &box.CreatedAt, &box.SelectDateAt,
		&lastModifiedAt,
	)
	if err != nil {
		return model.Box{}, fmt.Errorf("scanning box row: %w", err)
	}

	// Rows written before migration v2 may predate the backfill.
	box.LastModifiedAt = lastModifiedAt.Time

	return box, nil
}
