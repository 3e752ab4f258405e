// Package scheduler decides when alarms fire and runs the puzzle sessions
// that silence them.
package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/borgmon/puzzle-alarm/pkg/audio"
	"github.com/borgmon/puzzle-alarm/pkg/logger"
	"github.com/borgmon/puzzle-alarm/pkg/models"
	"github.com/borgmon/puzzle-alarm/pkg/puzzle"
	"github.com/borgmon/puzzle-alarm/pkg/store"
)

// SoundPlayer starts a looping alarm sound
type SoundPlayer interface {
	PlayLoop(sound string) (audio.Handle, error)
}

// Presenter shows a freshly started session to the user. It must not block.
type Presenter interface {
	Present(s *Session)
}

// Options configures a Scheduler
type Options struct {
	Sounds        SoundPlayer
	Presenter     Presenter
	Puzzles       *puzzle.Generator
	SnoozeMinutes int
	Muted         bool
	Logger        *zap.SugaredLogger
}

// Scheduler scans the alarm store on every tick and opens one session per
// due alarm. Tick and session resolution are expected on the UI thread.
type Scheduler struct {
	store     *store.AlarmStore
	sounds    SoundPlayer
	presenter Presenter
	puzzles   *puzzle.Generator
	log       *zap.SugaredLogger

	snoozeMinutes atomic.Int64
	muted         atomic.Bool

	mu        sync.Mutex
	sessions  map[int]*Session
	listeners []func()
}

// New creates a Scheduler over alarms
func New(alarms *store.AlarmStore, opts Options) *Scheduler {
	if opts.Puzzles == nil {
		opts.Puzzles = puzzle.NewGenerator()
	}
	if opts.SnoozeMinutes < 1 {
		opts.SnoozeMinutes = models.DefaultSnoozeMinutes
	}

	s := &Scheduler{
		store:     alarms,
		sounds:    opts.Sounds,
		presenter: opts.Presenter,
		puzzles:   opts.Puzzles,
		log:       logger.OrNop(opts.Logger),
		sessions:  make(map[int]*Session),
	}
	s.snoozeMinutes.Store(int64(opts.SnoozeMinutes))
	s.muted.Store(opts.Muted)

	return s
}

// Run drives Tick from src until ctx is cancelled
func (s *Scheduler) Run(ctx context.Context, src TickSource) {
	src.Start(ctx, func(now time.Time) {
		s.Tick(now)
	})
}

// Tick fires every active alarm that is due at now and not already handled.
// It never waits for a session to be resolved.
func (s *Scheduler) Tick(now time.Time) []*Session {
	var started []*Session

	for _, alarm := range s.store.List() {
		if !alarm.Due(now) {
			continue
		}

		if err := s.store.MarkHandling(alarm.ID); err != nil {
			s.log.Errorw("cannot mark alarm as handling", "alarm_id", alarm.ID, "error", err)
			continue
		}
		alarm.Handling = true

		started = append(started, s.trigger(alarm, now))
	}

	if len(started) > 0 {
		s.notify()
	}

	return started
}

func (s *Scheduler) trigger(alarm models.Alarm, now time.Time) *Session {
	sess := newSession(alarm, s.puzzles.Next(), now, s.resolve)

	log := s.log.With("alarm_id", alarm.ID, "session_id", sess.ID)
	log.Infow("alarm triggered", "alarm_time", alarm.Time.Format(time.RFC3339), "sound", alarm.SoundName())

	switch {
	case s.muted.Load():
		log.Info("muted, session runs without sound")
	case s.sounds == nil:
		log.Warn("no sound player configured")
	default:
		go s.startSound(sess, log)
	}

	s.mu.Lock()
	s.sessions[alarm.ID] = sess
	s.mu.Unlock()

	if s.presenter != nil {
		s.presenter.Present(sess)
	}

	return sess
}

// startSound runs off the tick so a slow sound player never delays the
// puzzle. The session works the same with or without sound.
func (s *Scheduler) startSound(sess *Session, log *zap.SugaredLogger) {
	handle, err := s.sounds.PlayLoop(sess.Alarm.Sound)
	if err != nil {
		log.Warnw("alarm sound unavailable, continuing without audio", "error", err)
		return
	}
	if !sess.attachSound(handle) {
		log.Debug("session ended before its sound started")
	}
}

func (s *Scheduler) resolve(sess *Session, state State) {
	id := sess.Alarm.ID
	log := s.log.With("alarm_id", id, "session_id", sess.ID)

	var err error
	switch state {
	case StateSolved:
		err = s.store.ResolveSolved(id)
		log.Infow("alarm solved", "wrong_attempts", sess.Attempts())
	case StateSnoozed:
		minutes := s.SnoozeMinutes()
		err = s.store.ResolveSnoozed(id, minutes)
		log.Infow("alarm snoozed", "minutes", minutes)
	}
	if err != nil {
		if errors.Is(err, store.ErrAlarmNotFound) {
			log.Warn("alarm was removed while its session was open")
		} else {
			log.Errorw("cannot resolve alarm", "error", err)
		}
	}

	s.mu.Lock()
	if s.sessions[id] == sess {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	s.notify()
}

// Sessions returns the open sessions ordered by alarm id
func (s *Scheduler) Sessions() []*Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		result = append(result, sess)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Alarm.ID < result[j].Alarm.ID
	})
	return result
}

// SnoozeMinutes returns the snooze length used for new resolutions
func (s *Scheduler) SnoozeMinutes() int {
	return int(s.snoozeMinutes.Load())
}

// SetSnoozeMinutes changes the snooze length; values below one are ignored
func (s *Scheduler) SetSnoozeMinutes(minutes int) {
	if minutes < 1 {
		return
	}
	s.snoozeMinutes.Store(int64(minutes))
}

// Muted reports whether new sessions start without sound
func (s *Scheduler) Muted() bool {
	return s.muted.Load()
}

// SetMuted switches sound for new sessions. Open sessions keep playing.
func (s *Scheduler) SetMuted(muted bool) {
	s.muted.Store(muted)
}

// OnChange registers fn to run after any tick or resolution that changed alarms
func (s *Scheduler) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Silence stops the sound of every open session without resolving it.
// Used on shutdown.
func (s *Scheduler) Silence() {
	for _, sess := range s.Sessions() {
		sess.stopSound()
	}
}

func (s *Scheduler) notify() {
	s.mu.Lock()
	listeners := append([]func(){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
