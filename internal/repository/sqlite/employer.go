package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"

	"github.com/sakif/travelvault/internal/apperror"
	"github.com/sakif/travelvault/internal/model"
)

type employerRepo struct {
	db *DB
}

func (r *employerRepo) List(ctx context.Context, userID string) ([]model.Employer, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT id, user_id, company_name, role, start_date, end_date, notes
		 FROM employers WHERE user_id = ?
		 ORDER BY start_date DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing employers for user %s: %w", userID, err)
	}
	defer rows.Close()

	employers := []model.Employer{}
	for rows.Next() {
		var e model.Employer
		if err := rows.Scan(&e.ID, &e.UserID, &e.CompanyName, &e.Role, &e.StartDate, &e.EndDate, &e.Notes); err != nil {
			return nil, fmt.Errorf("sqlite: scanning employer: %w", err)
		}
		employers = append(employers, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: listing employers: %w", err)
	}

	return employers, nil
}

func (r *employerRepo) Create(ctx context.Context, userID string, employer *model.Employer) error {
	employer.ID = xid.New().String()
	employer.UserID = userID

	_, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO employers (id, user_id, company_name, role, start_date, end_date, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		employer.ID,
		employer.UserID,
		employer.CompanyName,
		employer.Role,
		employer.StartDate,
		employer.EndDate,
		employer.Notes,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting employer %s: %w", employer.CompanyName, err)
	}

	return nil
}

func (r *employerRepo) Update(ctx context.Context, id, userID string, patch model.EmployerPatch) (*model.Employer, error) {
	var e model.Employer

	err := r.db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, company_name, role, start_date, end_date, notes
		 FROM employers WHERE id = ? AND user_id = ?`,
		id, userID,
	).Scan(&e.ID, &e.UserID, &e.CompanyName, &e.Role, &e.StartDate, &e.EndDate, &e.Notes)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("employer", id)
		}
		return nil, fmt.Errorf("sqlite: getting employer %s: %w", id, err)
	}

	e.Apply(patch)

	_, err = r.db.conn.ExecContext(ctx,
		`UPDATE employers SET company_name = ?, role = ?, start_date = ?, end_date = ?, notes = ?
		 WHERE id = ? AND user_id = ?`,
		e.CompanyName,
		e.Role,
		e.StartDate,
		e.EndDate,
		e.Notes,
		id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating employer %s: %w", id, err)
	}

	return &e, nil
}

func (r *employerRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	res, err := r.db.conn.ExecContext(ctx,
		`DELETE FROM employers WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("sqlite: deleting employer %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: deleting employer %s: %w", id, err)
	}
	return n > 0, nil
}
