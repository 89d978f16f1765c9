package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreFreshness(t *testing.T) {
	store, err := NewStore(8, 5*time.Minute)
	require.NoError(t, err)

	now := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return now }

	store.Put("events", []byte(`[{"id":"1"}]`))

	// inside the TTL window the payload comes back byte-identical
	now = now.Add(4 * time.Minute)
	payload, fresh, ok := store.Get("events")
	require.True(t, ok)
	assert.True(t, fresh)
	assert.Equal(t, []byte(`[{"id":"1"}]`), payload)

	// past the TTL the entry is stale but still retrievable
	now = now.Add(2 * time.Minute)
	payload, fresh, ok = store.Get("events")
	require.True(t, ok)
	assert.False(t, fresh)
	assert.Equal(t, []byte(`[{"id":"1"}]`), payload)
}

func TestStoreOverwriteResetsTimestamp(t *testing.T) {
	store, err := NewStore(8, 5*time.Minute)
	require.NoError(t, err)

	now := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return now }

	store.Put("events", []byte(`old`))
	now = now.Add(10 * time.Minute)
	store.Put("events", []byte(`new`))

	payload, fresh, ok := store.Get("events")
	require.True(t, ok)
	assert.True(t, fresh)
	assert.Equal(t, []byte(`new`), payload)
}

func TestStoreMiss(t *testing.T) {
	store, err := NewStore(8, 0)
	require.NoError(t, err)

	_, _, ok := store.Get("absent")
	assert.False(t, ok)
}

func TestStoreRemove(t *testing.T) {
	store, err := NewStore(8, time.Minute)
	require.NoError(t, err)

	store.Put("events", []byte(`x`))
	store.Remove("events")

	_, _, ok := store.Get("events")
	assert.False(t, ok)
}
