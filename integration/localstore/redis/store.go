package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/hashpool/poolkit/core/localstore"
)

// Store adapts a Redis client to the durable client storage interface.
// Values persist without TTL: the bearer token and preferences live until
// explicitly deleted, matching the localStorage semantics of the other
// implementations.
type Store struct {
	client *redis.Client
	prefix string
}

var _ localstore.Store = (*Store)(nil)

// NewStore wraps an established Redis client. All keys are namespaced
// under prefix so several applications can share one database.
func NewStore(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

// Get implements localstore.Store.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", localstore.ErrKeyNotFound
		}
		return "", errors.Join(localstore.ErrStorageUnavailable, err)
	}
	return value, nil
}

// Set implements localstore.Store.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return errors.Join(localstore.ErrStorageUnavailable, err)
	}
	return nil
}

// Delete implements localstore.Store. Deleting an absent key is not an
// error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return errors.Join(localstore.ErrStorageUnavailable, err)
	}
	return nil
}

// Close releases the underlying Redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
