package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/borgmon/puzzle-alarm/pkg/models"
)

func TestLoadExplicitFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "alarm.yaml")
	body := "snooze_minutes: 9\ntheme: midnight\nmuted: true\ntick_interval: 500ms\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 9, cfg.SnoozeMinutes)
	require.Equal(t, "midnight", cfg.Theme)
	require.True(t, cfg.Muted)
	require.Equal(t, 500*time.Millisecond, cfg.TickInterval)
	// Untouched fields keep their defaults.
	require.Equal(t, models.DefaultSound, cfg.DefaultSound)
	require.Equal(t, models.DefaultSnoozeHoldSeconds, cfg.SnoozeHoldSeconds)
}

func TestLoadClampsSlowTick(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "alarm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_interval: 1m\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, models.DefaultTickInterval, cfg.TickInterval)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "alarm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("snooze_minutes: [nope"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "alarm.yaml")
	cfg := models.DefaultConfig()
	cfg.SnoozeMinutes = 12
	cfg.Theme = "sunrise"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)

	require.Error(t, Save(path, nil))
}
