package store

import (
	"context"
	"errors"
)

// Record keys for the four persisted state records.
const (
	KeyAccounts  = "accounts"
	KeyProducts  = "products"
	KeyLogs      = "logs"
	KeyAdminLock = "adminLock"
)

// ErrKeyNotFound indicates the record has never been written.
var ErrKeyNotFound = errors.New("store: key not found")

// ErrCorruptRecord indicates a stored record could not be decoded.
var ErrCorruptRecord = errors.New("store: corrupt record")

// Store abstracts the key-value persistence backing the till. Values are
// JSON-encoded by the callers; the store only moves bytes.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
