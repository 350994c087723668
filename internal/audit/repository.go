package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/standkas/standkas/internal/store"
)

// Repository persists the log record.
type Repository struct {
	store store.Store
}

// NewRepository builds a repository over the given store.
func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

// Load reads all log entries. A missing record yields an empty log.
func (r *Repository) Load(ctx context.Context) ([]Entry, error) {
	raw, err := r.store.Get(ctx, store.KeyLogs)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: logs: %v", store.ErrCorruptRecord, err)
	}
	return entries, nil
}

// Save writes all log entries.
func (r *Repository) Save(ctx context.Context, entries []Entry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, store.KeyLogs, raw)
}
