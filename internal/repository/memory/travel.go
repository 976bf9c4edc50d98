package memory

import (
	"context"
	"sort"

	"github.com/rs/xid"

	"github.com/sakif/travelvault/internal/apperror"
	"github.com/sakif/travelvault/internal/model"
)

type travelRepo struct {
	s *Store
}

func (r *travelRepo) List(ctx context.Context, userID string) ([]model.TravelHistory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	entries := []model.TravelHistory{}
	for _, t := range r.s.travel {
		if t.UserID == userID {
			entries = append(entries, t)
		}
	}

	// Most recent first. Equal dates break on ID descending; xid is
	// time-ordered, so that puts the later insert first.
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date.Time) {
			return entries[i].Date.After(entries[j].Date.Time)
		}
		return entries[i].ID > entries[j].ID
	})

	return entries, nil
}

func (r *travelRepo) Create(ctx context.Context, userID string, entry *model.TravelHistory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	entry.ID = xid.New().String()
	entry.UserID = userID
	r.s.travel[entry.ID] = *entry

	return nil
}

func (r *travelRepo) Update(ctx context.Context, id, userID string, patch model.TravelHistoryPatch) (*model.TravelHistory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.travel[id]
	if !ok || t.UserID != userID {
		return nil, apperror.NotFound("travel entry", id)
	}

	t.Apply(patch)
	r.s.travel[id] = t

	return &t, nil
}

func (r *travelRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.travel[id]
	if !ok || t.UserID != userID {
		return false, nil
	}
	delete(r.s.travel, id)

	return true, nil
}
