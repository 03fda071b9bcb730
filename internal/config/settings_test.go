package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsNilSettings(t *testing.T) {
	t.Setenv("STUDIOOPS_HOME", t.TempDir())

	settings, err := Load()
	require.NoError(t, err)
	assert.Nil(t, settings)
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	t.Setenv("STUDIOOPS_HOME", t.TempDir())

	stale := 120
	debug := true
	original := &Settings{
		BackendURL:   "http://gym.example.com/api/v1",
		Debug:        &debug,
		DownloadDir:  "~/exports",
		StaleSeconds: &stale,
	}
	require.NoError(t, Save(original))

	loaded, err := Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "http://gym.example.com/api/v1", loaded.BackendURL)
	assert.Equal(t, 120, *loaded.StaleSeconds)
	assert.True(t, *loaded.Debug)
	assert.Nil(t, loaded.MaxLogFiles, "unset keys stay unset")
}

func TestLoad_MalformedFileFails(t *testing.T) {
	home := t.TempDir()
	t.Setenv("STUDIOOPS_HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "settings.json"), []byte("{not json"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestStaleTimeResolvers(t *testing.T) {
	var nilSettings *Settings
	assert.Equal(t, DefaultStaleTime, nilSettings.StaleTime())
	assert.Equal(t, DefaultDashboardStaleTime, nilSettings.DashboardStaleTime())

	stale := 600
	dashboard := 10
	s := &Settings{DashboardStaleSeconds: &dashboard, StaleSeconds: &stale}
	assert.Equal(t, 10*time.Minute, s.StaleTime())
	assert.Equal(t, 10*time.Second, s.DashboardStaleTime())

	zero := 0
	assert.Equal(t, DefaultStaleTime, (&Settings{StaleSeconds: &zero}).StaleTime())
}

func TestHomeDir_EnvOverride(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("STUDIOOPS_HOME", custom)

	dir, err := HomeDir()
	require.NoError(t, err)
	assert.Equal(t, custom, dir)
	assert.Equal(t, filepath.Join(custom, "studioops.db"), DBPath())
}

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(homeDir, "x"), ExpandPath("~/x"))
	assert.Equal(t, homeDir, ExpandPath("~"))
	assert.Equal(t, "/absolute/path", ExpandPath("/absolute/path"))
}
