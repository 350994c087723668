package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/standkas/standkas/internal/store"
)

// Repository persists the product record.
type Repository struct {
	store store.Store
}

// NewRepository builds a repository over the given store.
func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

// Load reads all products. A missing record yields an empty directory.
func (r *Repository) Load(ctx context.Context) ([]Product, error) {
	raw, err := r.store.Get(ctx, store.KeyProducts)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("%w: products: %v", store.ErrCorruptRecord, err)
	}
	return products, nil
}

// Save writes all products.
func (r *Repository) Save(ctx context.Context, products []Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, store.KeyProducts, raw)
}
