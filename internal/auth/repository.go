package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/standkas/standkas/internal/store"
)

// LockRepository persists the brute-force lock state.
type LockRepository struct {
	store store.Store
}

// NewLockRepository builds a repository over the given store.
func NewLockRepository(s store.Store) *LockRepository {
	return &LockRepository{store: s}
}

// Load reads the lock state. A missing record decodes to the open state.
func (r *LockRepository) Load(ctx context.Context) (LockState, error) {
	raw, err := r.store.Get(ctx, store.KeyAdminLock)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return LockState{}, nil
		}
		return LockState{}, err
	}
	var state LockState
	if err := json.Unmarshal(raw, &state); err != nil {
		return LockState{}, fmt.Errorf("%w: adminLock: %v", store.ErrCorruptRecord, err)
	}
	return state, nil
}

// Save writes the lock state.
func (r *LockRepository) Save(ctx context.Context, state LockState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, store.KeyAdminLock, raw)
}
