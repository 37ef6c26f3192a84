package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/aniame/pkg/adapters/redis"
	"github.com/aretw0/aniame/pkg/ports"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisReferenceStore_Contract(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client)
	ports.RunReferenceStoreContract(t, store)
}

func TestRedisReferenceStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "person", "bob"))

	assert.True(t, mr.Exists("custom:app:person"), "Expected set with custom prefix to exist")
	ok, err := client.SIsMember(ctx, "custom:app:person", "bob").Result()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisReferenceStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(time.Second))
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "person", "bob"))
	ok, err := store.Exists(ctx, "person", "bob")
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(2 * time.Second)

	ok, err = store.Exists(ctx, "person", "bob")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisReferenceStore_BackendDown(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)
	mr.Close()

	_, err := store.Exists(context.Background(), "person", "bob")
	assert.Error(t, err)
}
