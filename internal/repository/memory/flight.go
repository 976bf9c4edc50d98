package memory

import (
	"context"
	"sort"

	"github.com/rs/xid"

	"github.com/sakif/travelvault/internal/apperror"
	"github.com/sakif/travelvault/internal/model"
)

type flightRepo struct {
	s *Store
}

func (r *flightRepo) List(ctx context.Context, userID string) ([]model.Flight, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	flights := []model.Flight{}
	for _, f := range r.s.flights {
		if f.UserID == userID {
			flights = append(flights, f)
		}
	}

	// Departure time descending, flights with no departure last,
	// matching the sqlite backend's NULL handling.
	sort.Slice(flights, func(i, j int) bool {
		a, b := flights[i].DepartureTime, flights[j].DepartureTime
		switch {
		case a == nil && b == nil:
			return flights[i].ID > flights[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.After(*b)
		default:
			return flights[i].ID > flights[j].ID
		}
	})

	return flights, nil
}

func (r *flightRepo) Create(ctx context.Context, userID string, flight *model.Flight) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	flight.ID = xid.New().String()
	flight.UserID = userID
	r.s.flights[flight.ID] = *flight

	return nil
}

func (r *flightRepo) Update(ctx context.Context, id, userID string, patch model.FlightPatch) (*model.Flight, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	f, ok := r.s.flights[id]
	if !ok || f.UserID != userID {
		return nil, apperror.NotFound("flight", id)
	}

	f.Apply(patch)
	r.s.flights[id] = f

	return &f, nil
}

func (r *flightRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	f, ok := r.s.flights[id]
	if !ok || f.UserID != userID {
		return false, nil
	}
	delete(r.s.flights, id)

	return true, nil
}
