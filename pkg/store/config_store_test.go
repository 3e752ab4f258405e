package store

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/require"

	"github.com/borgmon/puzzle-alarm/pkg/models"
)

func TestConfigStoreFallsBackToDefaults(t *testing.T) {
	defaults := models.DefaultConfig()
	defaults.SnoozeMinutes = 7
	defaults.Theme = "midnight"

	cs := NewConfigStore(test.NewApp(), defaults)
	cfg := cs.Load()

	require.Equal(t, 7, cfg.SnoozeMinutes)
	require.Equal(t, "midnight", cfg.Theme)
	require.Equal(t, defaults.TickInterval, cfg.TickInterval)
}

func TestConfigStoreSaveLoad(t *testing.T) {
	cs := NewConfigStore(test.NewApp(), nil)

	cfg := cs.Load()
	cfg.SnoozeMinutes = 15
	cfg.Theme = "sunrise"
	cfg.Muted = true
	cfg.SnoozeHoldSeconds = 0
	cs.Save(cfg)

	loaded := cs.Load()
	require.Equal(t, cfg, loaded)
}
