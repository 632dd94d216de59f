package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knaw-huc/entity-annotator/internal/adapters/driving/cli"
	"github.com/knaw-huc/entity-annotator/internal/core/domain"
)

func TestBuildServices_Defaults(t *testing.T) {
	dir := t.TempDir()

	s, err := buildServices(cli.Options{ConfigDir: dir})

	require.NoError(t, err)
	require.NoError(t, s.BackendErr)
	assert.Equal(t, domain.DefaultBackendURL, s.BackendURL)
	assert.Equal(t, domain.DefaultPageSize, s.PageSize)
	assert.NotNil(t, s.Resolver)
	assert.NotNil(t, s.Submitter)
	assert.NotNil(t, s.Terms)
	assert.NotNil(t, s.Statistics)
	require.NotNil(t, s.Export)
	assert.False(t, s.Export.CanSave())
	assert.Equal(t, filepath.Join(dir, "config.toml"), s.Settings.Path())
}

func TestBuildServices_ReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	config := `[backend]
url = "http://annotator.test/api/"
persist = true

[ui]
page_size = 25
log_file = "/tmp/annotator.log"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(config), 0o600))

	s, err := buildServices(cli.Options{ConfigDir: dir})

	require.NoError(t, err)
	require.NoError(t, s.BackendErr)
	assert.Equal(t, "http://annotator.test/api", s.BackendURL)
	assert.Equal(t, 25, s.PageSize)
	assert.Equal(t, "/tmp/annotator.log", s.LogFile)
	assert.True(t, s.Export.CanSave())
}

func TestBuildServices_BaseURLOverride(t *testing.T) {
	s, err := buildServices(cli.Options{ConfigDir: t.TempDir(), BaseURL: "http://override.test:9000/api/"})

	require.NoError(t, err)
	assert.Equal(t, "http://override.test:9000/api", s.BackendURL)
}

func TestBuildServices_InvalidBackendKeepsSettings(t *testing.T) {
	s, err := buildServices(cli.Options{ConfigDir: t.TempDir(), BaseURL: "not a url"})

	require.NoError(t, err)
	require.Error(t, s.BackendErr)
	assert.NotNil(t, s.Settings)
	assert.Nil(t, s.Resolver)
}
