package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roundbell/internal/core/model"
	"roundbell/internal/ui/preferences"
)

func TestStore_MissingFileReturnsDefaults(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "settings.yaml"))

	settings, err := store.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestStore_SaveThenLoad(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nested", "settings.yaml"))

	settings := preferences.DefaultSettings()
	settings.Timer = model.TimerConfig{Rounds: 5, WorkSeconds: 180, RestSeconds: 60}
	settings.AssetsDir = "/opt/roundbell/assets"
	settings.PlayerCommand = "ffplay"
	settings.KeepAwake = false
	settings.LogLevel = "debug"

	require.NoError(t, store.SaveSettings(settings))

	loaded, err := store.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestStore_InvalidTimerFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "rounds: 40\nwork_seconds: 62\nrest_seconds: 30\nassets_dir: /media\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	settings, err := NewStore(path).LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultTimerConfig(), settings.Timer)
	assert.Equal(t, "/media", settings.AssetsDir)
	assert.True(t, settings.KeepAwake, "absent keep_awake keeps the default")
}

func TestStore_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rounds: [unterminated"), 0o644))

	settings, err := NewStore(path).LoadSettings()
	require.Error(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}
