package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/borgmon/puzzle-alarm/pkg/models"
	"github.com/borgmon/puzzle-alarm/pkg/puzzle"
	"github.com/borgmon/puzzle-alarm/pkg/store"
)

type fixture struct {
	clock     *testClock
	store     *store.AlarmStore
	sounds    *fakeSounds
	presenter *recordingPresenter
	sched     *Scheduler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := &testClock{now: time.Date(2026, 10, 19, 6, 59, 0, 0, time.UTC)}
	alarms := store.NewAlarmStore(store.WithClock(clock.Now))
	sounds := &fakeSounds{}
	presenter := &recordingPresenter{}

	sched := New(alarms, Options{
		Sounds:        sounds,
		Presenter:     presenter,
		Puzzles:       puzzle.NewSeededGenerator(3, 4),
		SnoozeMinutes: 5,
	})

	return &fixture{clock: clock, store: alarms, sounds: sounds, presenter: presenter, sched: sched}
}

func waitSound(t *testing.T, sess *Session) {
	t.Helper()
	require.Eventually(t, sess.HasSound, 2*time.Second, time.Millisecond)
}

func (f *fixture) alarm(t *testing.T, id int) models.Alarm {
	t.Helper()
	a, err := f.store.Get(id)
	require.NoError(t, err)
	return a
}

func TestTickFiresDueAlarmOnce(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	a := f.store.Create(f.clock.Now().Add(time.Second), "/sounds/bell.wav", true)

	// Not yet due.
	require.Empty(t, f.sched.Tick(f.clock.Now()))

	f.clock.Advance(time.Second)
	started := f.sched.Tick(f.clock.Now())
	require.Len(t, started, 1)
	require.Equal(t, a.ID, started[0].Alarm.ID)
	require.True(t, started[0].Alarm.Handling)
	require.True(t, f.alarm(t, a.ID).Handling)
	require.Len(t, f.presenter.sessions, 1)
	waitSound(t, started[0])
	require.Equal(t, []string{"/sounds/bell.wav"}, f.sounds.playedSounds())

	// Handling alarms are not triggered again.
	for range 5 {
		f.clock.Advance(time.Second)
		require.Empty(t, f.sched.Tick(f.clock.Now()))
	}
	require.Len(t, f.sched.Sessions(), 1)
}

func TestTickSkipsInactiveAlarms(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.store.Create(f.clock.Now(), "", false)
	f.clock.Advance(time.Hour)

	require.Empty(t, f.sched.Tick(f.clock.Now()))
	require.Empty(t, f.sounds.playedSounds())
}

func TestDelayedTickFiresEveryOverdueAlarmOnce(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	first := f.store.Create(f.clock.Now().Add(time.Minute), "", true)
	second := f.store.Create(f.clock.Now().Add(2*time.Minute), "", true)
	future := f.store.Create(f.clock.Now().Add(time.Hour), "", true)

	f.clock.Advance(10 * time.Minute)
	started := f.sched.Tick(f.clock.Now())
	require.Len(t, started, 2)
	require.Equal(t, first.ID, started[0].Alarm.ID)
	require.Equal(t, second.ID, started[1].Alarm.ID)
	require.NotEqual(t, started[0].ID, started[1].ID)
	require.False(t, f.alarm(t, future.ID).Handling)

	require.Empty(t, f.sched.Tick(f.clock.Now()))
}

func TestSolveDeactivatesAlarm(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	a := f.store.Create(f.clock.Now().Add(time.Second), "", true)
	f.clock.Advance(time.Second)
	sess := f.sched.Tick(f.clock.Now())[0]
	waitSound(t, sess)

	require.True(t, sess.Submit(itoa(sess.Puzzle.Answer())))
	require.Equal(t, StateSolved, sess.State())
	require.True(t, f.sounds.handle(0).isStopped())

	got := f.alarm(t, a.ID)
	require.False(t, got.Active)
	require.False(t, got.Handling)
	require.Empty(t, f.sched.Sessions())

	f.clock.Advance(24 * time.Hour)
	require.Empty(t, f.sched.Tick(f.clock.Now()))
}

func TestSnoozeRearmsAfterWrongAnswers(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	a := f.store.Create(f.clock.Now().Add(time.Second), "", true)
	f.clock.Advance(time.Second)
	sess := f.sched.Tick(f.clock.Now())[0]
	waitSound(t, sess)

	require.False(t, sess.Submit("not a number"))
	require.False(t, sess.Submit(itoa(sess.Puzzle.Answer()+1)))
	require.Equal(t, 2, sess.Attempts())
	require.Equal(t, StatePlaying, sess.State())

	f.clock.Advance(20 * time.Second)
	snoozedAt := f.clock.Now()
	require.True(t, sess.Snooze())
	require.Equal(t, StateSnoozed, sess.State())
	require.True(t, f.sounds.handle(0).isStopped())

	got := f.alarm(t, a.ID)
	require.Equal(t, snoozedAt.Add(5*time.Minute), got.Time)
	require.True(t, got.Active)
	require.False(t, got.Handling)

	// Fires again once the snooze has elapsed, exactly once.
	f.clock.Advance(4 * time.Minute)
	require.Empty(t, f.sched.Tick(f.clock.Now()))
	f.clock.Advance(time.Minute)
	again := f.sched.Tick(f.clock.Now())
	require.Len(t, again, 1)
	require.Equal(t, a.ID, again[0].Alarm.ID)
	require.Empty(t, f.sched.Tick(f.clock.Now()))
}

func TestSnoozeUsesCurrentSetting(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	a := f.store.Create(f.clock.Now(), "", true)
	sess := f.sched.Tick(f.clock.Now())[0]

	f.sched.SetSnoozeMinutes(12)
	f.sched.SetSnoozeMinutes(0) // ignored
	require.Equal(t, 12, f.sched.SnoozeMinutes())

	sess.Snooze()
	require.Equal(t, f.clock.Now().Add(12*time.Minute), f.alarm(t, a.ID).Time)
}

func TestSoundFailureIsNotFatal(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.sounds.fail = true

	a := f.store.Create(f.clock.Now(), "/missing.mp3", true)
	started := f.sched.Tick(f.clock.Now())
	require.Len(t, started, 1)
	require.Len(t, f.presenter.sessions, 1)
	require.Eventually(t, func() bool { return len(f.sounds.playedSounds()) == 1 }, 2*time.Second, time.Millisecond)
	require.False(t, started[0].HasSound())

	require.True(t, started[0].Submit(itoa(started[0].Puzzle.Answer())))
	require.False(t, f.alarm(t, a.ID).Active)
}

func TestMutedSessionsSkipSound(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.sched.SetMuted(true)
	require.True(t, f.sched.Muted())

	f.store.Create(f.clock.Now(), "", true)
	started := f.sched.Tick(f.clock.Now())
	require.Len(t, started, 1)
	require.False(t, started[0].HasSound())
	require.Empty(t, f.sounds.playedSounds())
}

func TestRemovedAlarmResolvesQuietly(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	a := f.store.Create(f.clock.Now(), "", true)
	sess := f.sched.Tick(f.clock.Now())[0]
	require.NoError(t, f.store.Remove(a.ID))

	require.True(t, sess.Snooze())
	require.Empty(t, f.sched.Sessions())
}

func TestOnChangeAndSilence(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	changes := 0
	f.sched.OnChange(func() { changes++ })

	f.store.Create(f.clock.Now(), "", true)
	f.store.Create(f.clock.Now(), "", true)
	started := f.sched.Tick(f.clock.Now())
	require.Len(t, started, 2)
	require.Equal(t, 1, changes)
	waitSound(t, started[0])
	waitSound(t, started[1])

	f.sched.Silence()
	for _, h := range f.sounds.allHandles() {
		require.True(t, h.isStopped())
	}
	// Silencing does not resolve.
	require.Len(t, f.sched.Sessions(), 2)

	started[0].Snooze()
	require.Equal(t, 2, changes)
}

func TestSlowSoundDoesNotDelayTick(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.sounds.block = make(chan struct{})

	f.store.Create(f.clock.Now(), "/sounds/huge.mp3", true)
	f.store.Create(f.clock.Now(), "/sounds/huge.mp3", true)

	result := make(chan []*Session, 1)
	go func() { result <- f.sched.Tick(f.clock.Now()) }()

	var started []*Session
	select {
	case started = <-result:
	case <-time.After(time.Second):
		close(f.sounds.block)
		t.Fatal("tick waited for the sound player")
	}

	require.Len(t, started, 2)
	require.Len(t, f.presenter.sessions, 2)
	require.False(t, started[0].HasSound())

	close(f.sounds.block)
	waitSound(t, started[0])
	waitSound(t, started[1])
}

func TestSoundStartingAfterResolutionIsStopped(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.sounds.block = make(chan struct{})

	f.store.Create(f.clock.Now(), "", true)
	sess := f.sched.Tick(f.clock.Now())[0]
	require.True(t, sess.Submit(itoa(sess.Puzzle.Answer())))

	close(f.sounds.block)
	require.Eventually(t, func() bool {
		handles := f.sounds.allHandles()
		return len(handles) == 1 && handles[0].isStopped()
	}, 2*time.Second, time.Millisecond)
	require.False(t, sess.HasSound())
}
