package scheduler

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/borgmon/puzzle-alarm/pkg/audio"
	"github.com/borgmon/puzzle-alarm/pkg/models"
	"github.com/borgmon/puzzle-alarm/pkg/puzzle"
)

// State of a trigger session
type State int

const (
	StatePlaying State = iota // sound running, waiting for the user
	StateSolved               // puzzle answered, alarm switched off
	StateSnoozed              // alarm re-armed for later
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StateSolved:
		return "Solved"
	case StateSnoozed:
		return "Snoozed"
	default:
		return "Unknown"
	}
}

// Session is the sound and puzzle interaction for one due alarm. It ends
// exactly once, either solved or snoozed.
type Session struct {
	ID        string
	Alarm     models.Alarm // snapshot taken when the alarm fired
	Puzzle    puzzle.Puzzle
	StartedAt time.Time

	mu         sync.Mutex
	state      State
	attempts   int
	sound      audio.Handle
	silenced   bool
	onResolved []func(State)
	resolver   func(*Session, State)
	done       chan struct{}
}

func newSession(alarm models.Alarm, p puzzle.Puzzle, startedAt time.Time, resolver func(*Session, State)) *Session {
	return &Session{
		ID:        uuid.New().String(),
		Alarm:     alarm,
		Puzzle:    p,
		StartedAt: startedAt,
		state:     StatePlaying,
		resolver:  resolver,
		done:      make(chan struct{}),
	}
}

// Question returns the puzzle text
func (s *Session) Question() string {
	return s.Puzzle.Text()
}

// Submit checks answer. A correct answer solves the session and returns true;
// anything else leaves it playing.
func (s *Session) Submit(answer string) bool {
	s.mu.Lock()
	if s.state != StatePlaying {
		s.mu.Unlock()
		return false
	}
	if !s.Puzzle.Check(answer) {
		s.attempts++
		s.mu.Unlock()
		return false
	}
	s.mu.Unlock()

	return s.finish(StateSolved)
}

// Snooze ends the session and re-arms the alarm
func (s *Session) Snooze() bool {
	return s.finish(StateSnoozed)
}

// State returns the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Attempts returns the number of wrong answers so far
func (s *Session) Attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

// HasSound reports whether a sound loop is attached
func (s *Session) HasSound() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sound != nil
}

// Done is closed once the session is resolved
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// OnResolved registers fn to run after resolution. If the session is
// already resolved fn runs immediately.
func (s *Session) OnResolved(fn func(State)) {
	s.mu.Lock()
	if s.state == StatePlaying {
		s.onResolved = append(s.onResolved, fn)
		s.mu.Unlock()
		return
	}
	state := s.state
	s.mu.Unlock()

	fn(state)
}

// attachSound hands a started sound loop to the session. A loop that
// arrives after the session was resolved or silenced is stopped at once.
func (s *Session) attachSound(h audio.Handle) bool {
	s.mu.Lock()
	if s.state != StatePlaying || s.silenced {
		s.mu.Unlock()
		h.Stop()
		return false
	}
	s.sound = h
	s.mu.Unlock()
	return true
}

func (s *Session) stopSound() {
	s.mu.Lock()
	h := s.sound
	s.silenced = true
	s.mu.Unlock()

	if h != nil {
		h.Stop()
	}
}

func (s *Session) finish(state State) bool {
	s.mu.Lock()
	if s.state != StatePlaying {
		s.mu.Unlock()
		return false
	}
	s.state = state
	callbacks := s.onResolved
	s.onResolved = nil
	s.mu.Unlock()

	s.stopSound()
	if s.resolver != nil {
		s.resolver(s, state)
	}
	close(s.done)

	for _, fn := range callbacks {
		fn(state)
	}
	return true
}
