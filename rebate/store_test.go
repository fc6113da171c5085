package rebate

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTierStoreImplementsInterface(t *testing.T) {
	var _ TierStore = (*InMemoryTierStore)(nil)
}

func TestInMemoryTierStoreAddGet(t *testing.T) {
	store := NewInMemoryTierStore()

	def := &TierDefinition{Key: "Base", Name: "Base tier", Expression: `1.0`}
	require.NoError(t, store.Add(def))
	assert.False(t, def.CreatedAt.IsZero())
	assert.Equal(t, def.CreatedAt, def.UpdatedAt)

	got, err := store.Get("Base")
	require.NoError(t, err)
	assert.Equal(t, "Base tier", got.Name)

	assert.Error(t, store.Add(&TierDefinition{Key: "Base", Expression: `2.0`}))
}

func TestInMemoryTierStoreGetMissing(t *testing.T) {
	store := NewInMemoryTierStore()

	_, err := store.Get("nope")
	assert.True(t, errors.Is(err, ErrTierNotFound))
}

func TestInMemoryTierStoreListOrdered(t *testing.T) {
	store := NewInMemoryTierStore()
	for _, key := range []string{"Tier2", "Base", "Tier1"} {
		require.NoError(t, store.Add(&TierDefinition{Key: key, Expression: `1.0`}))
	}

	defs, err := store.List()
	require.NoError(t, err)

	keys := make([]string, len(defs))
	for i, def := range defs {
		keys[i] = def.Key
	}
	assert.Equal(t, []string{"Base", "Tier1", "Tier2"}, keys)
}

func TestInMemoryTierStoreUpdatePreservesCreatedAt(t *testing.T) {
	store := NewInMemoryTierStore()
	require.NoError(t, store.Add(&TierDefinition{Key: "Base", Expression: `1.0`}))

	original, _ := store.Get("Base")
	createdAt := original.CreatedAt
	time.Sleep(time.Millisecond)

	updated := &TierDefinition{Key: "Base", Expression: `2.0`}
	require.NoError(t, store.Update(updated))

	assert.Equal(t, createdAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(createdAt))

	assert.Error(t, store.Update(&TierDefinition{Key: "Missing"}))
}

func TestInMemoryTierStoreDelete(t *testing.T) {
	store := NewInMemoryTierStore()
	require.NoError(t, store.Add(&TierDefinition{Key: "Base", Expression: `1.0`}))

	require.NoError(t, store.Delete("Base"))
	_, err := store.Get("Base")
	assert.Error(t, err)
	assert.Error(t, store.Delete("Base"))
}
