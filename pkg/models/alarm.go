package models

import (
	"path/filepath"
	"time"
)

// DefaultSound identifies the bundled alarm tone
const DefaultSound = "default"

// Alarm is one scheduled wake event
type Alarm struct {
	ID       int       // Monotonic, never reused
	Time     time.Time // When the alarm should fire
	Sound    string    // Path to an audio file or DefaultSound
	Active   bool      // Considered for firing
	Handling bool      // A trigger session is open for this alarm
}

// Due reports whether the alarm should fire at now
func (a Alarm) Due(now time.Time) bool {
	return a.Active && !a.Handling && !now.Before(a.Time)
}

// SoundName returns the display name of the alarm sound
func (a Alarm) SoundName() string {
	if a.Sound == "" || a.Sound == DefaultSound {
		return "Default"
	}
	return filepath.Base(a.Sound)
}

// NextOccurrence moves t forward one calendar day at a time until it is not before now.
// The wall-clock hour and minute are kept across DST changes.
func NextOccurrence(t, now time.Time) time.Time {
	for t.Before(now) {
		t = time.Date(t.Year(), t.Month(), t.Day()+1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	}
	return t
}

// TodayAt returns today's date at hour:minute in now's location
func TodayAt(now time.Time, hour, minute int) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
}
