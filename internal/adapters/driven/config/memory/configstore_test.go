package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("backend.url", "http://localhost:8080/api"))
	require.NoError(t, store.Set("ui.page_size", 20))
	require.NoError(t, store.Set("backend.requests_per_second", 2.5))
	require.NoError(t, store.Set("backend.persist", true))

	assert.Equal(t, "http://localhost:8080/api", store.GetString("backend.url"))
	assert.Equal(t, 20, store.GetInt("ui.page_size"))
	assert.InDelta(t, 2.5, store.GetFloat("backend.requests_per_second"), 1e-9)
	assert.True(t, store.GetBool("backend.persist"))
	assert.Equal(t, []string{
		"backend.persist", "backend.requests_per_second", "backend.url", "ui.page_size",
	}, store.Keys())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Missing(t *testing.T) {
	store := NewConfigStore()

	_, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("missing"))
	assert.Zero(t, store.GetInt("missing"))
	assert.Zero(t, store.GetFloat("missing"))
	assert.False(t, store.GetBool("missing"))
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
}
