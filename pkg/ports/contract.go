package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunReferenceStoreContract runs a suite of tests to verify that a MutableReferenceStore
// implementation adheres to the defined interface contract.
func RunReferenceStoreContract(t *testing.T, store MutableReferenceStore) {
	ctx := context.Background()
	schemaName := "contract-" + time.Now().Format("20060102150405")

	t.Run("Add and Exists", func(t *testing.T) {
		require.NoError(t, store.Add(ctx, schemaName, "a", "b"))

		ok, err := store.Exists(ctx, schemaName, "a")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Exists(ctx, schemaName, "b")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Missing Key", func(t *testing.T) {
		ok, err := store.Exists(ctx, schemaName, "missing")
		require.NoError(t, err, "a missing key is not an error")
		assert.False(t, ok)
	})

	t.Run("Keys Are Scoped By Schema", func(t *testing.T) {
		require.NoError(t, store.Add(ctx, schemaName, "shared"))

		ok, err := store.Exists(ctx, schemaName+"-other", "shared")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, store.Add(ctx, schemaName, "gone"))
		require.NoError(t, store.Remove(ctx, schemaName, "gone", "never-added"))

		ok, err := store.Exists(ctx, schemaName, "gone")
		require.NoError(t, err)
		assert.False(t, ok, "Exists after Remove should be false")
	})

	t.Run("Idempotent Add", func(t *testing.T) {
		require.NoError(t, store.Add(ctx, schemaName, "twice"))
		require.NoError(t, store.Add(ctx, schemaName, "twice"))
		require.NoError(t, store.Remove(ctx, schemaName, "twice"))

		ok, err := store.Exists(ctx, schemaName, "twice")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
