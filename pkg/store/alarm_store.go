package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/borgmon/puzzle-alarm/pkg/models"
)

var (
	// ErrAlarmNotFound is returned for ids the store does not hold
	ErrAlarmNotFound = errors.New("alarm not found")
	// ErrAlreadyHandling is returned when a second session is requested for one alarm
	ErrAlreadyHandling = errors.New("alarm is already being handled")
)

// AlarmStore holds the alarms of the running process in creation order.
// Mutations are expected from the UI thread only; the lock keeps readers
// such as the tray menu consistent.
type AlarmStore struct {
	mu sync.RWMutex

	alarms []*models.Alarm
	lastID int
	now    func() time.Time
}

// Option configures an AlarmStore
type Option func(*AlarmStore)

// WithClock replaces time.Now as the store's notion of the current time
func WithClock(now func() time.Time) Option {
	return func(s *AlarmStore) {
		s.now = now
	}
}

// NewAlarmStore creates an empty store
func NewAlarmStore(opts ...Option) *AlarmStore {
	s := &AlarmStore{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create adds a new alarm. A target already in the past is moved to the next
// day at the same wall-clock time.
func (s *AlarmStore) Create(at time.Time, sound string, active bool) models.Alarm {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sound == "" {
		sound = models.DefaultSound
	}

	s.lastID++
	alarm := &models.Alarm{
		ID:     s.lastID,
		Time:   models.NextOccurrence(at, s.now()),
		Sound:  sound,
		Active: active,
	}
	s.alarms = append(s.alarms, alarm)

	return *alarm
}

// CreateAt adds an alarm for hour:minute today, or tomorrow if that has passed
func (s *AlarmStore) CreateAt(hour, minute int, sound string, active bool) models.Alarm {
	return s.Create(models.TodayAt(s.now(), hour, minute), sound, active)
}

// List returns copies of all alarms in creation order
func (s *AlarmStore) List() []models.Alarm {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Alarm, 0, len(s.alarms))
	for _, alarm := range s.alarms {
		result = append(result, *alarm)
	}
	return result
}

// Get returns a copy of the alarm with the given id
func (s *AlarmStore) Get(id int) (models.Alarm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alarm := s.find(id)
	if alarm == nil {
		return models.Alarm{}, ErrAlarmNotFound
	}
	return *alarm, nil
}

// MarkHandling flags the alarm as having an open trigger session
func (s *AlarmStore) MarkHandling(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	alarm := s.find(id)
	if alarm == nil {
		return ErrAlarmNotFound
	}
	if alarm.Handling {
		return ErrAlreadyHandling
	}
	alarm.Handling = true
	return nil
}

// ResolveSolved deactivates the alarm after its puzzle was answered
func (s *AlarmStore) ResolveSolved(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	alarm := s.find(id)
	if alarm == nil {
		return ErrAlarmNotFound
	}
	alarm.Active = false
	alarm.Handling = false
	return nil
}

// ResolveSnoozed re-arms the alarm snoozeMinutes from now
func (s *AlarmStore) ResolveSnoozed(id int, snoozeMinutes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	alarm := s.find(id)
	if alarm == nil {
		return ErrAlarmNotFound
	}
	alarm.Time = s.now().Add(time.Duration(snoozeMinutes) * time.Minute)
	alarm.Active = true
	alarm.Handling = false
	return nil
}

// SetActive toggles an alarm. Reactivating an alarm whose time has passed
// moves it to the next occurrence so it does not fire immediately.
func (s *AlarmStore) SetActive(id int, active bool) (models.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	alarm := s.find(id)
	if alarm == nil {
		return models.Alarm{}, ErrAlarmNotFound
	}
	if active && !alarm.Active {
		alarm.Time = models.NextOccurrence(alarm.Time, s.now())
	}
	alarm.Active = active
	return *alarm, nil
}

// Remove deletes an alarm. Its id is not reused.
func (s *AlarmStore) Remove(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, alarm := range s.alarms {
		if alarm.ID == id {
			s.alarms = append(s.alarms[:i], s.alarms[i+1:]...)
			return nil
		}
	}
	return ErrAlarmNotFound
}

// Upcoming returns active alarms not being handled that fire after now and
// before until, soonest first, at most limit entries. A zero until means no
// upper bound.
func (s *AlarmStore) Upcoming(now, until time.Time, limit int) []models.Alarm {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Alarm{}
	for _, alarm := range s.alarms {
		if alarm.Active && !alarm.Handling && alarm.Time.After(now) && (until.IsZero() || alarm.Time.Before(until)) {
			result = append(result, *alarm)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Time.Before(result[j].Time)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

func (s *AlarmStore) find(id int) *models.Alarm {
	for _, alarm := range s.alarms {
		if alarm.ID == id {
			return alarm
		}
	}
	return nil
}
