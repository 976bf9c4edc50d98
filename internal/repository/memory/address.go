package memory

import (
	"context"
	"sort"

	"github.com/rs/xid"

	"github.com/sakif/travelvault/internal/apperror"
	"github.com/sakif/travelvault/internal/model"
)

type addressRepo struct {
	s *Store
}

func (r *addressRepo) List(ctx context.Context, userID string) ([]model.Address, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	addresses := []model.Address{}
	for _, a := range r.s.addresses {
		if a.UserID == userID {
			addresses = append(addresses, a)
		}
	}

	sort.Slice(addresses, func(i, j int) bool {
		if !addresses[i].FromDate.Equal(addresses[j].FromDate.Time) {
			return addresses[i].FromDate.After(addresses[j].FromDate.Time)
		}
		return addresses[i].ID > addresses[j].ID
	})

	return addresses, nil
}

func (r *addressRepo) Create(ctx context.Context, userID string, address *model.Address) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	address.ID = xid.New().String()
	address.UserID = userID
	r.s.addresses[address.ID] = *address

	return nil
}

func (r *addressRepo) Update(ctx context.Context, id, userID string, patch model.AddressPatch) (*model.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.addresses[id]
	if !ok || a.UserID != userID {
		return nil, apperror.NotFound("address", id)
	}

	a.Apply(patch)
	r.s.addresses[id] = a

	return &a, nil
}

func (r *addressRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.addresses[id]
	if !ok || a.UserID != userID {
		return false, nil
	}
	delete(r.s.addresses, id)

	return true, nil
}
