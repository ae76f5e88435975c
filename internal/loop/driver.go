// Package loop schedules simulation frames. A Driver hands out one token per
// scheduling generation so a stopped or restarted loop never runs a stale
// frame, and it clamps the time step so stalls cannot blow up the physics.
package loop

import (
	"context"
	"errors"
	"sync"
	"time"
)

// MaxDelta is the largest time step a single frame may advance.
const MaxDelta = 20 * time.Millisecond

// ErrStopped is returned by Run when the driver is stopped from elsewhere.
var ErrStopped = errors.New("loop: stopped")

// Token identifies one scheduling generation. Zero is never valid.
type Token uint64

// StepFunc advances the game by dt.
type StepFunc func(dt time.Duration)

// Options configure a Driver.
type Options struct {
	Step StepFunc
	// OnHidden is called once when the display becomes hidden while running.
	OnHidden func()
	// MaxDelta caps dt. Defaults to MaxDelta.
	MaxDelta time.Duration
	// Nominal is the dt of the first frame after Start or after the display
	// becomes visible again. Defaults to 1/60 s.
	Nominal time.Duration
}

// Driver turns frame callbacks into clamped steps.
type Driver struct {
	opts Options

	mu      sync.Mutex
	token   Token
	running bool
	hidden  bool
	busy    bool
	last    time.Time
	frames  uint64
}

// New creates a stopped driver.
func New(opts Options) *Driver {
	if opts.MaxDelta <= 0 {
		opts.MaxDelta = MaxDelta
	}
	if opts.Nominal <= 0 {
		opts.Nominal = time.Second / 60
	}
	if opts.Nominal > opts.MaxDelta {
		opts.Nominal = opts.MaxDelta
	}
	return &Driver{opts: opts}
}

// Start begins a new generation and returns its token. Calling Start on a
// running driver returns the current token.
func (d *Driver) Start() Token {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return d.token
	}
	d.token++
	d.running = true
	d.last = time.Time{}
	return d.token
}

// Stop cancels the current token. Frames carrying it are ignored from now on.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running {
		return
	}
	d.running = false
	d.token++
}

// Running reports whether a generation is active.
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// Valid reports whether tok belongs to the active generation.
func (d *Driver) Valid(tok Token) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running && tok == d.token
}

// Frames returns how many steps have run.
func (d *Driver) Frames() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// Hidden reports whether the display is hidden.
func (d *Driver) Hidden() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hidden
}

// SetHidden records display visibility. Becoming hidden while running calls
// OnHidden; no time accumulates while hidden.
func (d *Driver) SetHidden(hidden bool) {
	d.mu.Lock()
	changed := d.hidden != hidden
	d.hidden = hidden
	d.last = time.Time{}
	notify := changed && hidden && d.running
	d.mu.Unlock()

	if notify && d.opts.OnHidden != nil {
		d.opts.OnHidden()
	}
}

// Frame runs one step for tok at now. It returns the dt that was applied and
// false when the frame was refused: stale token, hidden display, or a frame
// already in progress.
func (d *Driver) Frame(tok Token, now time.Time) (time.Duration, bool) {
	d.mu.Lock()
	if !d.running || tok != d.token || d.busy || d.hidden {
		d.mu.Unlock()
		return 0, false
	}
	dt := d.opts.Nominal
	if !d.last.IsZero() {
		dt = now.Sub(d.last)
	}
	if dt < 0 {
		dt = 0
	}
	if dt > d.opts.MaxDelta {
		dt = d.opts.MaxDelta
	}
	d.last = now
	d.busy = true
	d.frames++
	d.mu.Unlock()

	if d.opts.Step != nil {
		d.opts.Step(dt)
	}

	d.mu.Lock()
	d.busy = false
	d.mu.Unlock()
	return dt, true
}

// Run drives frames from a ticker until ctx is done or the driver is stopped.
func (d *Driver) Run(ctx context.Context, interval time.Duration) error {
	tok := d.Start()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.Stop()
			return ctx.Err()
		case now := <-ticker.C:
			if !d.Valid(tok) {
				return ErrStopped
			}
			d.Frame(tok, now)
		}
	}
}
