package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/standkas/standkas/internal/store"
)

// Repository persists the account record.
type Repository struct {
	store store.Store
}

// NewRepository builds a repository over the given store.
func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

// Load reads all accounts. A missing record yields an empty directory.
func (r *Repository) Load(ctx context.Context) ([]Account, error) {
	raw, err := r.store.Get(ctx, store.KeyAccounts)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var accounts []Account
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, fmt.Errorf("%w: accounts: %v", store.ErrCorruptRecord, err)
	}
	return accounts, nil
}

// Save writes all accounts. Digests persist verbatim; plaintext PINs never
// survive a save because migration runs before the first one.
func (r *Repository) Save(ctx context.Context, accounts []Account) error {
	raw, err := json.Marshal(accounts)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, store.KeyAccounts, raw)
}
