package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"

	"github.com/sakif/travelvault/internal/apperror"
	"github.com/sakif/travelvault/internal/model"
)

type addressRepo struct {
	db *DB
}

func (r *addressRepo) List(ctx context.Context, userID string) ([]model.Address, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT id, user_id, address, city, state, country, from_date, to_date
		 FROM addresses WHERE user_id = ?
		 ORDER BY from_date DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing addresses for user %s: %w", userID, err)
	}
	defer rows.Close()

	addresses := []model.Address{}
	for rows.Next() {
		var a model.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.Address, &a.City, &a.State, &a.Country, &a.FromDate, &a.ToDate); err != nil {
			return nil, fmt.Errorf("sqlite: scanning address: %w", err)
		}
		addresses = append(addresses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: listing addresses: %w", err)
	}

	return addresses, nil
}

func (r *addressRepo) Create(ctx context.Context, userID string, address *model.Address) error {
	address.ID = xid.New().String()
	address.UserID = userID

	_, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO addresses (id, user_id, address, city, state, country, from_date, to_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		address.ID,
		address.UserID,
		address.Address,
		address.City,
		address.State,
		address.Country,
		address.FromDate,
		address.ToDate,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting address in %s: %w", address.City, err)
	}

	return nil
}

func (r *addressRepo) Update(ctx context.Context, id, userID string, patch model.AddressPatch) (*model.Address, error) {
	var a model.Address

	err := r.db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, address, city, state, country, from_date, to_date
		 FROM addresses WHERE id = ? AND user_id = ?`,
		id, userID,
	).Scan(&a.ID, &a.UserID, &a.Address, &a.City, &a.State, &a.Country, &a.FromDate, &a.ToDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("address", id)
		}
		return nil, fmt.Errorf("sqlite: getting address %s: %w", id, err)
	}

	a.Apply(patch)

	_, err = r.db.conn.ExecContext(ctx,
		`UPDATE addresses SET address = ?, city = ?, state = ?, country = ?, from_date = ?, to_date = ?
		 WHERE id = ? AND user_id = ?`,
		a.Address,
		a.City,
		a.State,
		a.Country,
		a.FromDate,
		a.ToDate,
		id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating address %s: %w", id, err)
	}

	return &a, nil
}

func (r *addressRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	res, err := r.db.conn.ExecContext(ctx,
		`DELETE FROM addresses WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("sqlite: deleting address %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: deleting address %s: %w", id, err)
	}
	return n > 0, nil
}
