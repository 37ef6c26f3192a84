package redis

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// ReferenceStore implements ports.MutableReferenceStore using Redis.
// Every schema name owns one set of keys.
type ReferenceStore struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*ReferenceStore)

// WithTTL sets the expiration of a schema's key set, refreshed on every Add.
func WithTTL(ttl time.Duration) Option {
	return func(s *ReferenceStore) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for the sets.
func WithPrefix(prefix string) Option {
	return func(s *ReferenceStore) {
		s.prefix = prefix
	}
}

// New creates a new Redis reference store with options.
func New(address, password string, db int, opts ...Option) *ReferenceStore {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis reference store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *ReferenceStore {
	store := &ReferenceStore{
		client: client,
		prefix: "aniame:refs:",
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *ReferenceStore) key(schemaName string) string {
	return s.prefix + schemaName
}

// Exists checks set membership with SISMEMBER.
func (s *ReferenceStore) Exists(ctx context.Context, schemaName, key string) (bool, error) {
	ok, err := s.client.SIsMember(ctx, s.key(schemaName), key).Result()
	if err != nil {
		return false, fmt.Errorf("redis error checking %s/%s: %w", schemaName, key, err)
	}
	return ok, nil
}

// Add registers keys with SADD.
func (s *ReferenceStore) Add(ctx context.Context, schemaName string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	members := make([]any, len(keys))
	for i, k := range keys {
		members[i] = k
	}

	pipe := s.client.TxPipeline()
	pipe.SAdd(ctx, s.key(schemaName), members...)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.key(schemaName), s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis error adding to %s: %w", schemaName, err)
	}
	return nil
}

// Remove forgets keys with SREM.
func (s *ReferenceStore) Remove(ctx context.Context, schemaName string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	members := make([]any, len(keys))
	for i, k := range keys {
		members[i] = k
	}
	if err := s.client.SRem(ctx, s.key(schemaName), members...).Err(); err != nil {
		return fmt.Errorf("redis error removing from %s: %w", schemaName, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *ReferenceStore) Close() error {
	return s.client.Close()
}
