package models

import "time"

// Config holds application settings. Nothing here outlives the process.
type Config struct {
	SnoozeMinutes     int           `yaml:"snooze_minutes"`      // minutes
	Theme             string        `yaml:"theme"`               // palette name
	Muted             bool          `yaml:"muted"`               // sessions run without sound
	AutoStart         bool          `yaml:"auto_start"`          // launch at login
	DefaultSound      string        `yaml:"default_sound"`       // used when the add dialog has no sound
	SnoozeHoldSeconds int           `yaml:"snooze_hold_seconds"` // 0 makes snooze a plain button
	TickInterval      time.Duration `yaml:"tick_interval"`       // at most one second
	LogLevel          string        `yaml:"log_level"`
}

// Defaults used when neither the config file nor flags say otherwise
const (
	DefaultSnoozeMinutes     = 5
	DefaultTheme             = "basic_light"
	DefaultSnoozeHoldSeconds = 2
	DefaultTickInterval      = time.Second
	DefaultLogLevel          = "info"

	MaxSnoozeMinutes     = 60
	MaxSnoozeHoldSeconds = 10
	MinTickInterval      = 100 * time.Millisecond
)

// DefaultConfig returns the built-in settings
func DefaultConfig() *Config {
	return &Config{
		SnoozeMinutes:     DefaultSnoozeMinutes,
		Theme:             DefaultTheme,
		DefaultSound:      DefaultSound,
		SnoozeHoldSeconds: DefaultSnoozeHoldSeconds,
		TickInterval:      DefaultTickInterval,
		LogLevel:          DefaultLogLevel,
	}
}

// Normalize fills empty fields with defaults and clamps ranges
func (c *Config) Normalize() {
	if c.SnoozeMinutes < 1 {
		c.SnoozeMinutes = DefaultSnoozeMinutes
	}
	if c.SnoozeMinutes > MaxSnoozeMinutes {
		c.SnoozeMinutes = MaxSnoozeMinutes
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.DefaultSound == "" {
		c.DefaultSound = DefaultSound
	}
	if c.SnoozeHoldSeconds < 0 {
		c.SnoozeHoldSeconds = 0
	}
	if c.SnoozeHoldSeconds > MaxSnoozeHoldSeconds {
		c.SnoozeHoldSeconds = MaxSnoozeHoldSeconds
	}
	if c.TickInterval <= 0 || c.TickInterval > DefaultTickInterval {
		c.TickInterval = DefaultTickInterval
	}
	if c.TickInterval < MinTickInterval {
		c.TickInterval = MinTickInterval
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}
