package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"

	"github.com/sakif/travelvault/internal/apperror"
	"github.com/sakif/travelvault/internal/model"
)

type educationRepo struct {
	db *DB
}

func (r *educationRepo) List(ctx context.Context, userID string) ([]model.Education, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT id, user_id, institution, degree, start_date, end_date
		 FROM education WHERE user_id = ?
		 ORDER BY start_date DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing education for user %s: %w", userID, err)
	}
	defer rows.Close()

	records := []model.Education{}
	for rows.Next() {
		var e model.Education
		if err := rows.Scan(&e.ID, &e.UserID, &e.Institution, &e.Degree, &e.StartDate, &e.EndDate); err != nil {
			return nil, fmt.Errorf("sqlite: scanning education record: %w", err)
		}
		records = append(records, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: listing education: %w", err)
	}

	return records, nil
}

func (r *educationRepo) Create(ctx context.Context, userID string, education *model.Education) error {
	education.ID = xid.New().String()
	education.UserID = userID

	_, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO education (id, user_id, institution, degree, start_date, end_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		education.ID,
		education.UserID,
		education.Institution,
		education.Degree,
		education.StartDate,
		education.EndDate,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting education record %s: %w", education.Institution, err)
	}

	return nil
}

func (r *educationRepo) Update(ctx context.Context, id, userID string, patch model.EducationPatch) (*model.Education, error) {
	var e model.Education

	err := r.db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, institution, degree, start_date, end_date
		 FROM education WHERE id = ? AND user_id = ?`,
		id, userID,
	).Scan(&e.ID, &e.UserID, &e.Institution, &e.Degree, &e.StartDate, &e.EndDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("education record", id)
		}
		return nil, fmt.Errorf("sqlite: getting education record %s: %w", id, err)
	}

	e.Apply(patch)

	_, err = r.db.conn.ExecContext(ctx,
		`UPDATE education SET institution = ?, degree = ?, start_date = ?, end_date = ?
		 WHERE id = ? AND user_id = ?`,
		e.Institution,
		e.Degree,
		e.StartDate,
		e.EndDate,
		id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating education record %s: %w", id, err)
	}

	return &e, nil
}

func (r *educationRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	res, err := r.db.conn.ExecContext(ctx,
		`DELETE FROM education WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("sqlite: deleting education record %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: deleting education record %s: %w", id, err)
	}
	return n > 0, nil
}
