// Package audio turns simulation cues into short synthesized tones using beep.
// Playback is best effort: when no output device is available the player
// disables itself and every cue is dropped.
package audio

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// ErrAudioUnavailable is returned by Start when no output can be opened.
var ErrAudioUnavailable = errors.New("audio unavailable")

const (
	sampleRate = beep.SampleRate(44100)
	queueSize  = 32
)

// Output is where mixed streamers are sent. The default is the system speaker.
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
}

type speakerOutput struct{}

func (speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

func (speakerOutput) Play(s beep.Streamer) {
	speaker.Play(s)
}

// Options configure a Player.
type Options struct {
	Muted  bool
	Logger *log.Logger
	Output Output
}

// Player plays cues without blocking the caller.
type Player struct {
	out     Output
	logger  *log.Logger
	queue   chan core.Cue
	enabled atomic.Bool
	dropped atomic.Int64
	muted   bool

	startOnce sync.Once
	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

// New creates a stopped player. Call Start to open the output.
func New(opts Options) *Player {
	if opts.Output == nil {
		opts.Output = speakerOutput{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Player{
		out:    opts.Output,
		logger: opts.Logger,
		queue:  make(chan core.Cue, queueSize),
		muted:  opts.Muted,
		done:   make(chan struct{}),
	}
}

// Start opens the output and begins consuming cues. On failure the player
// stays disabled and the error wraps ErrAudioUnavailable.
func (p *Player) Start() error {
	var startErr error
	p.startOnce.Do(func() {
		if p.muted {
			p.logger.Debug("audio muted")
			return
		}
		if err := p.out.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
			p.logger.Warn("audio disabled", "err", err)
			startErr = fmt.Errorf("audio: %w: %v", ErrAudioUnavailable, err)
			return
		}
		p.enabled.Store(true)
		p.wg.Add(1)
		go p.run()
	})
	return startErr
}

// Enabled reports whether cues are being played.
func (p *Player) Enabled() bool {
	return p.enabled.Load()
}

// Dropped returns how many cues were discarded because the queue was full.
func (p *Player) Dropped() int64 {
	return p.dropped.Load()
}

// Play queues a cue. It never blocks; the cue is dropped when the player is
// disabled or its queue is full.
func (p *Player) Play(c core.Cue) bool {
	if !p.enabled.Load() {
		return false
	}
	select {
	case p.queue <- c:
		return true
	default:
		p.dropped.Add(1)
		return false
	}
}

// PlayAll queues every cue in order.
func (p *Player) PlayAll(cues []core.Cue) {
	for _, c := range cues {
		p.Play(c)
	}
}

// Close stops the consumer. Pending cues are discarded.
func (p *Player) Close() {
	p.closeOnce.Do(func() {
		p.enabled.Store(false)
		close(p.done)
		p.wg.Wait()
	})
}

// run mixes every cue that is ready into one streamer per wake-up.
func (p *Player) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case c := <-p.queue:
			batch := []beep.Streamer{voice(c, sampleRate)}
		drain:
			for {
				select {
				case c := <-p.queue:
					batch = append(batch, voice(c, sampleRate))
				default:
					break drain
				}
			}
			p.out.Play(beep.Mix(batch...))
		}
	}
}
