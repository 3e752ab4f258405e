package store

import (
	"time"

	"fyne.io/fyne/v2"

	"github.com/borgmon/puzzle-alarm/pkg/models"
)

const (
	prefSnoozeMinutes     = "snooze_minutes"
	prefTheme             = "theme"
	prefMuted             = "muted"
	prefAutoStart         = "auto_start"
	prefDefaultSound      = "default_sound"
	prefSnoozeHoldSeconds = "snooze_hold_seconds"
	prefTickIntervalMs    = "tick_interval_ms"
	prefLogLevel          = "log_level"
)

// ConfigStore keeps runtime settings in Fyne preferences. The app is created
// without a unique ID, so preferences live in memory for the process only.
type ConfigStore struct {
	app      fyne.App
	defaults *models.Config
}

// NewConfigStore creates a ConfigStore falling back to defaults for unset keys
func NewConfigStore(app fyne.App, defaults *models.Config) *ConfigStore {
	if defaults == nil {
		defaults = models.DefaultConfig()
	}
	return &ConfigStore{app: app, defaults: defaults}
}

// Load reads the current settings
func (cs *ConfigStore) Load() *models.Config {
	prefs := cs.app.Preferences()
	d := cs.defaults

	config := &models.Config{
		SnoozeMinutes:     prefs.IntWithFallback(prefSnoozeMinutes, d.SnoozeMinutes),
		Theme:             prefs.StringWithFallback(prefTheme, d.Theme),
		Muted:             prefs.BoolWithFallback(prefMuted, d.Muted),
		AutoStart:         prefs.BoolWithFallback(prefAutoStart, d.AutoStart),
		DefaultSound:      prefs.StringWithFallback(prefDefaultSound, d.DefaultSound),
		SnoozeHoldSeconds: prefs.IntWithFallback(prefSnoozeHoldSeconds, d.SnoozeHoldSeconds),
		TickInterval:      time.Duration(prefs.IntWithFallback(prefTickIntervalMs, int(d.TickInterval/time.Millisecond))) * time.Millisecond,
		LogLevel:          prefs.StringWithFallback(prefLogLevel, d.LogLevel),
	}
	config.Normalize()

	return config
}

// Save stores config
func (cs *ConfigStore) Save(config *models.Config) {
	prefs := cs.app.Preferences()

	prefs.SetInt(prefSnoozeMinutes, config.SnoozeMinutes)
	prefs.SetString(prefTheme, config.Theme)
	prefs.SetBool(prefMuted, config.Muted)
	prefs.SetBool(prefAutoStart, config.AutoStart)
	prefs.SetString(prefDefaultSound, config.DefaultSound)
	prefs.SetInt(prefSnoozeHoldSeconds, config.SnoozeHoldSeconds)
	prefs.SetInt(prefTickIntervalMs, int(config.TickInterval/time.Millisecond))
	prefs.SetString(prefLogLevel, config.LogLevel)
}
