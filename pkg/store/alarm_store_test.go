package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/borgmon/puzzle-alarm/pkg/models"
)

func fixedClock(t time.Time) (func() time.Time, func(time.Duration)) {
	now := t
	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}

func TestCreateNormalizesPastTimeToTomorrow(t *testing.T) {
	t.Parallel()

	clock, _ := fixedClock(time.Date(2026, 5, 4, 2, 0, 0, 0, time.UTC))
	s := NewAlarmStore(WithClock(clock))

	alarm := s.CreateAt(1, 0, "", true)
	require.Equal(t, time.Date(2026, 5, 5, 1, 0, 0, 0, time.UTC), alarm.Time)
	require.Equal(t, models.DefaultSound, alarm.Sound)
	require.True(t, alarm.Active)
	require.False(t, alarm.Handling)

	later := s.CreateAt(3, 30, "/tmp/bell.wav", false)
	require.Equal(t, time.Date(2026, 5, 4, 3, 30, 0, 0, time.UTC), later.Time)
	require.False(t, later.Active)
}

func TestCreateAssignsMonotonicIDs(t *testing.T) {
	t.Parallel()

	clock, _ := fixedClock(time.Date(2026, 5, 4, 2, 0, 0, 0, time.UTC))
	s := NewAlarmStore(WithClock(clock))

	first := s.Create(clock().Add(time.Minute), "", true)
	second := s.Create(clock().Add(2*time.Minute), "", true)
	require.NoError(t, s.Remove(second.ID))
	third := s.Create(clock().Add(3*time.Minute), "", true)

	require.Equal(t, 1, first.ID)
	require.Equal(t, 2, second.ID)
	require.Equal(t, 3, third.ID)
}

func TestListKeepsInsertionOrderAndCopies(t *testing.T) {
	t.Parallel()

	clock, _ := fixedClock(time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC))
	s := NewAlarmStore(WithClock(clock))

	s.CreateAt(23, 0, "", true)
	s.CreateAt(13, 0, "", true)
	s.CreateAt(18, 0, "", true)

	list := s.List()
	require.Len(t, list, 3)
	require.Equal(t, []int{1, 2, 3}, []int{list[0].ID, list[1].ID, list[2].ID})

	list[0].Active = false
	got, err := s.Get(1)
	require.NoError(t, err)
	require.True(t, got.Active)
}

func TestMarkHandlingTwiceFails(t *testing.T) {
	t.Parallel()

	s := NewAlarmStore()
	alarm := s.Create(time.Now().Add(time.Hour), "", true)

	require.NoError(t, s.MarkHandling(alarm.ID))
	require.ErrorIs(t, s.MarkHandling(alarm.ID), ErrAlreadyHandling)
	require.ErrorIs(t, s.MarkHandling(42), ErrAlarmNotFound)
}

func TestResolveSolved(t *testing.T) {
	t.Parallel()

	s := NewAlarmStore()
	alarm := s.Create(time.Now().Add(time.Hour), "", true)
	require.NoError(t, s.MarkHandling(alarm.ID))

	require.NoError(t, s.ResolveSolved(alarm.ID))

	got, err := s.Get(alarm.ID)
	require.NoError(t, err)
	require.False(t, got.Active)
	require.False(t, got.Handling)
	require.ErrorIs(t, s.ResolveSolved(99), ErrAlarmNotFound)
}

func TestResolveSnoozed(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 5, 4, 7, 0, 0, 0, time.UTC)
	clock, advance := fixedClock(start)
	s := NewAlarmStore(WithClock(clock))
	alarm := s.Create(start, "", true)
	require.NoError(t, s.MarkHandling(alarm.ID))

	advance(42 * time.Second)
	require.NoError(t, s.ResolveSnoozed(alarm.ID, 5))

	got, err := s.Get(alarm.ID)
	require.NoError(t, err)
	require.Equal(t, start.Add(42*time.Second+5*time.Minute), got.Time)
	require.True(t, got.Active)
	require.False(t, got.Handling)
}

func TestSetActiveRearmsPastAlarm(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 5, 4, 7, 0, 0, 0, time.UTC)
	clock, advance := fixedClock(start)
	s := NewAlarmStore(WithClock(clock))
	alarm := s.Create(start, "", true)
	require.NoError(t, s.MarkHandling(alarm.ID))
	require.NoError(t, s.ResolveSolved(alarm.ID))

	advance(time.Hour)
	got, err := s.SetActive(alarm.ID, true)
	require.NoError(t, err)
	require.True(t, got.Active)
	require.Equal(t, start.AddDate(0, 0, 1), got.Time)

	_, err = s.SetActive(77, true)
	require.ErrorIs(t, err, ErrAlarmNotFound)
}

func TestUpcoming(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 5, 4, 6, 0, 0, 0, time.UTC)
	clock, _ := fixedClock(start)
	s := NewAlarmStore(WithClock(clock))

	late := s.CreateAt(22, 0, "", true)
	early := s.CreateAt(7, 0, "", true)
	s.CreateAt(8, 0, "", false)
	s.CreateAt(5, 0, "", true) // tomorrow

	end := time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC)
	got := s.Upcoming(start, end, 5)
	require.Len(t, got, 2)
	require.Equal(t, early.ID, got[0].ID)
	require.Equal(t, late.ID, got[1].ID)

	require.Len(t, s.Upcoming(start, end, 1), 1)

	unbounded := s.Upcoming(start, time.Time{}, 0)
	require.Len(t, unbounded, 3)
	require.Equal(t, late.ID, unbounded[1].ID)
}
