package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knaw-huc/entity-annotator/internal/adapters/driven/config/memory"
	"github.com/knaw-huc/entity-annotator/internal/core/domain"
)

func TestSettingsService_Get_Defaults(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
	assert.Equal(t, domain.DefaultAppSettings(), svc.GetDefaults())
}

func TestSettingsService_SetAndGet(t *testing.T) {
	store := memory.NewConfigStore()
	svc := NewSettingsService(store)

	require.NoError(t, svc.Set(domain.KeyBackendURL, "http://annotator.example.org/api/"))
	require.NoError(t, svc.Set(domain.KeyBackendTimeout, "5"))
	require.NoError(t, svc.Set(domain.KeyBackendRate, "0"))
	require.NoError(t, svc.Set(domain.KeyBackendPersist, "true"))
	require.NoError(t, svc.Set(domain.KeyUIPageSize, "25"))
	require.NoError(t, svc.Set(domain.KeyUILogFile, "/tmp/annotator.log"))

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.Equal(t, "http://annotator.example.org/api", settings.Backend.URL)
	assert.Equal(t, 5*time.Second, settings.Backend.Timeout)
	assert.Zero(t, settings.Backend.RequestsPerSecond)
	assert.True(t, settings.Backend.Persist)
	assert.Equal(t, 25, settings.UI.PageSize)
	assert.Equal(t, "/tmp/annotator.log", settings.UI.LogFile)
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	tests := []struct {
		key   string
		value string
	}{
		{domain.KeyBackendTimeout, "soon"},
		{domain.KeyBackendTimeout, "0"},
		{domain.KeyUIPageSize, "-4"},
		{domain.KeyBackendRate, "-1"},
		{domain.KeyBackendRate, "fast"},
		{domain.KeyBackendPersist, "maybe"},
		{"backend.colour", "blue"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			assert.ErrorIs(t, svc.Set(tt.key, tt.value), domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_Path(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	assert.Equal(t, ":memory:", svc.Path())
}
