package memory

import (
	"context"
	"sort"

	"github.com/rs/xid"

	"github.com/sakif/travelvault/internal/apperror"
	"github.com/sakif/travelvault/internal/model"
)

type educationRepo struct {
	s *Store
}

func (r *educationRepo) List(ctx context.Context, userID string) ([]model.Education, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	entries := []model.Education{}
	for _, e := range r.s.education {
		if e.UserID == userID {
			entries = append(entries, e)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].StartDate.Equal(entries[j].StartDate.Time) {
			return entries[i].StartDate.After(entries[j].StartDate.Time)
		}
		return entries[i].ID > entries[j].ID
	})

	return entries, nil
}

func (r *educationRepo) Create(ctx context.Context, userID string, education *model.Education) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	education.ID = xid.New().String()
	education.UserID = userID
	r.s.education[education.ID] = *education

	return nil
}

func (r *educationRepo) Update(ctx context.Context, id, userID string, patch model.EducationPatch) (*model.Education, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.education[id]
	if !ok || e.UserID != userID {
		return nil, apperror.NotFound("education record", id)
	}

	e.Apply(patch)
	r.s.education[id] = e

	return &e, nil
}

func (r *educationRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.education[id]
	if !ok || e.UserID != userID {
		return false, nil
	}
	delete(r.s.education, id)

	return true, nil
}
