package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"

	"github.com/sakif/travelvault/internal/apperror"
	"github.com/sakif/travelvault/internal/model"
)

type travelRepo struct {
	db *DB
}

// List returns the user's trips, most recent first. The date column is
// ISO-formatted TEXT, so ORDER BY ... DESC is chronological.
func (r *travelRepo) List(ctx context.Context, userID string) ([]model.TravelHistory, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT id, user_id, date, destination, notes
		 FROM travel_history WHERE user_id = ?
		 ORDER BY date DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing travel history for user %s: %w", userID, err)
	}
	defer rows.Close()

	// Non-nil even when empty, so the JSON response is [] rather than null.
	entries := []model.TravelHistory{}
	for rows.Next() {
		var t model.TravelHistory
		if err := rows.Scan(&t.ID, &t.UserID, &t.Date, &t.Destination, &t.Notes); err != nil {
			return nil, fmt.Errorf("sqlite: scanning travel entry: %w", err)
		}
		entries = append(entries, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: listing travel history: %w", err)
	}

	return entries, nil
}

func (r *travelRepo) Create(ctx context.Context, userID string, entry *model.TravelHistory) error {
	entry.ID = xid.New().String()
	entry.UserID = userID

	_, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO travel_history (id, user_id, date, destination, notes)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.ID,
		entry.UserID,
		entry.Date,
		entry.Destination,
		entry.Notes,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting travel entry: %w", err)
	}

	return nil
}

func (r *travelRepo) Update(ctx context.Context, id, userID string, patch model.TravelHistoryPatch) (*model.TravelHistory, error) {
	var t model.TravelHistory

	err := r.db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, date, destination, notes
		 FROM travel_history WHERE id = ? AND user_id = ?`,
		id, userID,
	).Scan(&t.ID, &t.UserID, &t.Date, &t.Destination, &t.Notes)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("travel entry", id)
		}
		return nil, fmt.Errorf("sqlite: getting travel entry %s: %w", id, err)
	}

	t.Apply(patch)

	_, err = r.db.conn.ExecContext(ctx,
		`UPDATE travel_history SET date = ?, destination = ?, notes = ?
		 WHERE id = ? AND user_id = ?`,
		t.Date,
		t.Destination,
		t.Notes,
		id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating travel entry %s: %w", id, err)
	}

	return &t, nil
}

func (r *travelRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	res, err := r.db.conn.ExecContext(ctx,
		`DELETE FROM travel_history WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("sqlite: deleting travel entry %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: deleting travel entry %s: %w", id, err)
	}
	return n > 0, nil
}
