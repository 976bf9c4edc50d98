package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"

	"github.com/sakif/travelvault/internal/apperror"
	"github.com/sakif/travelvault/internal/model"
)

type personalInfoRepo struct {
	db *DB
}

// Get returns the user's personal info record, or (nil, nil) if they
// haven't created one yet. "No record" is a normal state here, not an
// error; unlike the list collections, there is no empty slice to
// return instead.
func (r *personalInfoRepo) Get(ctx context.Context, userID string) (*model.PersonalInfo, error) {
	var p model.PersonalInfo

	err := r.db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, full_name, passport_number, dob
		 FROM personal_info WHERE user_id = ?`,
		userID,
	).Scan(
		&p.ID,
		&p.UserID,
		&p.FullName,
		&p.PassportNumber,
		&p.DOB,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("sqlite: getting personal info for user %s: %w", userID, err)
	}

	return &p, nil
}

// Create inserts the user's personal info record. The UNIQUE constraint
// on user_id enforces the singleton; a second create returns Conflict.
func (r *personalInfoRepo) Create(ctx context.Context, userID string, info *model.PersonalInfo) error {
	existing, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperror.Conflict("personal info", "record already exists for this user")
	}

	info.ID = xid.New().String()
	info.UserID = userID

	_, err = r.db.conn.ExecContext(ctx,
		`INSERT INTO personal_info (id, user_id, full_name, passport_number, dob)
		 VALUES (?, ?, ?, ?, ?)`,
		info.ID,
		info.UserID,
		info.FullName,
		info.PassportNumber,
		info.DOB,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting personal info for user %s: %w", userID, err)
	}

	return nil
}

// Update applies the patch to the record matching both id and userID.
// A record owned by someone else is reported as NotFound, identical to
// a record that doesn't exist.
func (r *personalInfoRepo) Update(ctx context.Context, id, userID string, patch model.PersonalInfoPatch) (*model.PersonalInfo, error) {
	var p model.PersonalInfo

	err := r.db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, full_name, passport_number, dob
		 FROM personal_info WHERE id = ? AND user_id = ?`,
		id, userID,
	).Scan(&p.ID, &p.UserID, &p.FullName, &p.PassportNumber, &p.DOB)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("personal info", id)
		}
		return nil, fmt.Errorf("sqlite: getting personal info %s: %w", id, err)
	}

	p.Apply(patch)

	_, err = r.db.conn.ExecContext(ctx,
		`UPDATE personal_info SET full_name = ?, passport_number = ?, dob = ?
		 WHERE id = ? AND user_id = ?`,
		p.FullName,
		p.PassportNumber,
		p.DOB,
		id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating personal info %s: %w", id, err)
	}

	return &p, nil
}

func (r *personalInfoRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	res, err := r.db.conn.ExecContext(ctx,
		`DELETE FROM personal_info WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("sqlite: deleting personal info %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: deleting personal info %s: %w", id, err)
	}
	return n > 0, nil
}
