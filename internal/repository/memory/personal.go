package memory

import (
	"context"

	"github.com/rs/xid"

	"github.com/sakif/travelvault/internal/apperror"
	"github.com/sakif/travelvault/internal/model"
)

type personalInfoRepo struct {
	s *Store
}

func (r *personalInfoRepo) Get(ctx context.Context, userID string) (*model.PersonalInfo, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.personal {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *personalInfoRepo) Create(ctx context.Context, userID string, info *model.PersonalInfo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.personal {
		if p.UserID == userID {
			return apperror.Conflict("personal info", "record already exists for this user")
		}
	}

	info.ID = xid.New().String()
	info.UserID = userID
	r.s.personal[info.ID] = *info

	return nil
}

func (r *personalInfoRepo) Update(ctx context.Context, id, userID string, patch model.PersonalInfoPatch) (*model.PersonalInfo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.personal[id]
	if !ok || p.UserID != userID {
		return nil, apperror.NotFound("personal info", id)
	}

	p.Apply(patch)
	r.s.personal[id] = p

	return &p, nil
}

func (r *personalInfoRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.personal[id]
	if !ok || p.UserID != userID {
		return false, nil
	}
	delete(r.s.personal, id)

	return true, nil
}
