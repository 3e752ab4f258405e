package scheduler

import (
	"errors"
	"sync"
	"time"

	"github.com/borgmon/puzzle-alarm/pkg/audio"
)

type fakeHandle struct {
	mu      sync.Mutex
	stops   int
	done    chan struct{}
	stopped bool
}

func newFakeHandle() *fakeHandle {
	return &fakeHandle{done: make(chan struct{})}
}

func (h *fakeHandle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stops++
	if !h.stopped {
		h.stopped = true
		close(h.done)
	}
}

func (h *fakeHandle) Done() <-chan struct{} {
	return h.done
}

func (h *fakeHandle) isStopped() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopped
}

type fakeSounds struct {
	mu      sync.Mutex
	fail    bool
	block   chan struct{} // when set, PlayLoop waits for it to close
	played  []string
	handles []*fakeHandle
}

func (f *fakeSounds) PlayLoop(sound string) (audio.Handle, error) {
	if f.block != nil {
		<-f.block
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.played = append(f.played, sound)
	if f.fail {
		return nil, errors.New("no audio device")
	}
	h := newFakeHandle()
	f.handles = append(f.handles, h)
	return h, nil
}

func (f *fakeSounds) playedSounds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.played...)
}

func (f *fakeSounds) handle(i int) *fakeHandle {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.handles[i]
}

func (f *fakeSounds) allHandles() []*fakeHandle {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*fakeHandle(nil), f.handles...)
}

type recordingPresenter struct {
	sessions []*Session
}

func (p *recordingPresenter) Present(s *Session) {
	p.sessions = append(p.sessions, s)
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
