package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"

	"github.com/sakif/travelvault/internal/apperror"
	"github.com/sakif/travelvault/internal/model"
)

type flightRepo struct {
	db *DB
}

// List returns the user's flights by departure time descending. SQLite
// sorts NULLs last in DESC order, so flights with no recorded departure
// end up at the bottom.
func (r *flightRepo) List(ctx context.Context, userID string) ([]model.Flight, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT id, user_id, flight_number, airline, departure_airport,
		        arrival_airport, departure_time, arrival_time, gate, status
		 FROM flights WHERE user_id = ?
		 ORDER BY departure_time DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing flights for user %s: %w", userID, err)
	}
	defer rows.Close()

	flights := []model.Flight{}
	for rows.Next() {
		var f model.Flight
		if err := rows.Scan(
			&f.ID,
			&f.UserID,
			&f.FlightNumber,
			&f.Airline,
			&f.DepartureAirport,
			&f.ArrivalAirport,
			&f.DepartureTime,
			&f.ArrivalTime,
			&f.Gate,
			&f.Status,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning flight: %w", err)
		}
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: listing flights: %w", err)
	}

	return flights, nil
}

func (r *flightRepo) Create(ctx context.Context, userID string, flight *model.Flight) error {
	flight.ID = xid.New().String()
	flight.UserID = userID

	_, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO flights (id, user_id, flight_number, airline, departure_airport,
		                      arrival_airport, departure_time, arrival_time, gate, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		flight.ID,
		flight.UserID,
		flight.FlightNumber,
		flight.Airline,
		flight.DepartureAirport,
		flight.ArrivalAirport,
		flight.DepartureTime,
		flight.ArrivalTime,
		flight.Gate,
		flight.Status,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting flight %s: %w", flight.FlightNumber, err)
	}

	return nil
}

func (r *flightRepo) Update(ctx context.Context, id, userID string, patch model.FlightPatch) (*model.Flight, error) {
	var f model.Flight

	err := r.db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, flight_number, airline, departure_airport,
		        arrival_airport, departure_time, arrival_time, gate, status
		 FROM flights WHERE id = ? AND user_id = ?`,
		id, userID,
	).Scan(
		&f.ID,
		&f.UserID,
		&f.FlightNumber,
		&f.Airline,
		&f.DepartureAirport,
		&f.ArrivalAirport,
		&f.DepartureTime,
		&f.ArrivalTime,
		&f.Gate,
		&f.Status,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("flight", id)
		}
		return nil, fmt.Errorf("sqlite: getting flight %s: %w", id, err)
	}

	f.Apply(patch)

	_, err = r.db.conn.ExecContext(ctx,
		`UPDATE flights SET flight_number = ?, airline = ?, departure_airport = ?,
		        arrival_airport = ?, departure_time = ?, arrival_time = ?, gate = ?, status = ?
		 WHERE id = ? AND user_id = ?`,
		f.FlightNumber,
		f.Airline,
		f.DepartureAirport,
		f.ArrivalAirport,
		f.DepartureTime,
		f.ArrivalTime,
		f.Gate,
		f.Status,
		id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating flight %s: %w", id, err)
	}

	return &f, nil
}

func (r *flightRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	res, err := r.db.conn.ExecContext(ctx,
		`DELETE FROM flights WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("sqlite: deleting flight %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: deleting flight %s: %w", id, err)
	}
	return n > 0, nil
}
