package memory

import (
	"context"
	"sort"

	"github.com/rs/xid"

	"github.com/sakif/travelvault/internal/apperror"
	"github.com/sakif/travelvault/internal/model"
)

type employerRepo struct {
	s *Store
}

func (r *employerRepo) List(ctx context.Context, userID string) ([]model.Employer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	employers := []model.Employer{}
	for _, e := range r.s.employers {
		if e.UserID == userID {
			employers = append(employers, e)
		}
	}

	sort.Slice(employers, func(i, j int) bool {
		if !employers[i].StartDate.Equal(employers[j].StartDate.Time) {
			return employers[i].StartDate.After(employers[j].StartDate.Time)
		}
		return employers[i].ID > employers[j].ID
	})

	return employers, nil
}

func (r *employerRepo) Create(ctx context.Context, userID string, employer *model.Employer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	employer.ID = xid.New().String()
	employer.UserID = userID
	r.s.employers[employer.ID] = *employer

	return nil
}

func (r *employerRepo) Update(ctx context.Context, id, userID string, patch model.EmployerPatch) (*model.Employer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.employers[id]
	if !ok || e.UserID != userID {
		return nil, apperror.NotFound("employer", id)
	}

	e.Apply(patch)
	r.s.employers[id] = e

	return &e, nil
}

func (r *employerRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.employers[id]
	if !ok || e.UserID != userID {
		return false, nil
	}
	delete(r.s.employers, id)

	return true, nil
}
