package localstore

import (
	"context"
	"errors"
)

var (
	// ErrKeyNotFound is returned when the requested key has no stored value.
	ErrKeyNotFound = errors.New("localstore: key not found")
	// ErrStorageUnavailable is returned when the backing medium cannot be
	// read or written.
	ErrStorageUnavailable = errors.New("localstore: storage unavailable")
)

// Store is the durable client-state interface. Implementations must be safe
// for concurrent use.
type Store interface {
	// Get returns the value for key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
