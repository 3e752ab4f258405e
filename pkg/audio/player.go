package audio

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"go.uber.org/zap"

	"github.com/borgmon/puzzle-alarm/pkg/logger"
)

// Output format of the shared audio context. Every sound is converted to it.
const (
	SampleRate   = 44100
	ChannelCount = 2
)

// PreviewDuration bounds sound previews from the add alarm dialog
const PreviewDuration = 5 * time.Second

const pollInterval = 10 * time.Millisecond

// Handle controls a running playback
type Handle interface {
	// Stop ends playback. Calling it more than once is fine.
	Stop()
	// Done is closed once playback has finished and resources are released.
	Done() <-chan struct{}
}

// stream is the part of *oto.Player the playback loop needs
type stream interface {
	Play()
	IsPlaying() bool
	Pause()
	Close() error
}

// Engine plays sounds through a single oto context. Oto allows one context
// per process, so create one Engine and share it.
type Engine struct {
	loader *Loader
	log    *zap.SugaredLogger

	once   sync.Once
	octx   *oto.Context
	ctxErr error
}

// NewEngine creates an Engine. The audio device is opened on first use.
func NewEngine(loader *Loader, log *zap.SugaredLogger) *Engine {
	return &Engine{loader: loader, log: logger.OrNop(log)}
}

func (e *Engine) context() (*oto.Context, error) {
	e.once.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: ChannelCount,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			e.ctxErr = fmt.Errorf("init audio context: %w", err)
			return
		}

		// Wait for the hardware audio devices to be ready
		<-readyChan

		e.octx = ctx
		e.log.Info("audio context initialized")
	})
	return e.octx, e.ctxErr
}

// opener loads and decodes sound, then returns a factory for fresh oto
// players over the samples. It runs on the playback goroutine.
func (e *Engine) opener(sound string) func() (func() stream, error) {
	return func() (func() stream, error) {
		raw, err := e.loader.Load(sound)
		if err != nil {
			return nil, err
		}

		data, err := Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("decode sound %q: %w", sound, err)
		}

		octx, err := e.context()
		if err != nil {
			return nil, err
		}

		return func() stream {
			return octx.NewPlayer(bytes.NewReader(data))
		}, nil
	}
}

// PlayLoop plays sound over and over until the returned handle is stopped.
// It returns at once. Decoding happens on the playback goroutine, which logs
// failures and closes Done.
func (e *Engine) PlayLoop(sound string) (Handle, error) {
	if err := e.loader.Check(sound); err != nil {
		return nil, err
	}

	return startPlayer(context.Background(), true, 0, e.opener(sound), e.log.With("sound", sound)), nil
}

// Preview plays sound once, cut off after PreviewDuration
func (e *Engine) Preview(sound string) (Handle, error) {
	if err := e.loader.Check(sound); err != nil {
		return nil, err
	}

	return startPlayer(context.Background(), false, PreviewDuration, e.opener(sound), e.log.With("sound", sound, "preview", true)), nil
}

// Player is a background playback task cancelled through its context
type Player struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	loop   bool
	log    *zap.SugaredLogger
}

// startPlayer launches playback in its own goroutine. prepare runs first on
// that goroutine. A positive limit stops it automatically once elapsed.
func startPlayer(parent context.Context, loop bool, limit time.Duration, prepare func() (func() stream, error), log *zap.SugaredLogger) *Player {
	p := &Player{
		done: make(chan struct{}),
		loop: loop,
		log:  log,
	}
	if limit > 0 {
		p.ctx, p.cancel = context.WithTimeout(parent, limit)
	} else {
		p.ctx, p.cancel = context.WithCancel(parent)
	}

	go p.run(prepare)

	return p
}

func (p *Player) run(prepare func() (func() stream, error)) {
	defer close(p.done)
	defer p.cancel()

	open, err := prepare()
	if err != nil {
		p.log.Warnw("sound unavailable, playback skipped", "error", err)
		return
	}

	// Stopped while loading
	if p.ctx.Err() != nil {
		return
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		s := open()
		s.Play()

		for s.IsPlaying() {
			select {
			case <-p.ctx.Done():
				s.Pause()
				if err := s.Close(); err != nil {
					p.log.Warnw("close audio player", "error", err)
				}
				p.log.Debug("playback stopped")
				return
			case <-ticker.C:
			}
		}

		if err := s.Close(); err != nil {
			p.log.Warnw("close audio player", "error", err)
		}

		if !p.loop {
			return
		}

		// Check if stop was requested between loops
		select {
		case <-p.ctx.Done():
			return
		default:
		}
	}
}

// Stop ends playback
func (p *Player) Stop() {
	if p == nil {
		return
	}
	p.cancel()
}

// Done is closed when the playback goroutine has exited
func (p *Player) Done() <-chan struct{} {
	return p.done
}
