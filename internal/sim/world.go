package sim

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/flappy-arcade/internal/config"
)

// ErrInvalidWorld is returned when world constants cannot form a playable course.
var ErrInvalidWorld = errors.New("invalid world")

// World holds the per-session constants in logical units.
// Velocities and accelerations are per tick.
type World struct {
	Width           float64
	Height          float64
	GroundHeight    float64
	Gravity         float64
	JumpImpulse     float64
	MaxFallSpeed    float64
	ScrollSpeed     float64
	GapSize         float64
	MinMargin       float64
	ObstacleWidth   float64
	ObstacleSpacing float64
}

// Tuning is the subset of world constants that may change during a run.
type Tuning struct {
	ScrollSpeed     float64
	GapSize         float64
	ObstacleSpacing float64
}

// NewWorld validates w and returns it.
func NewWorld(w World) (World, error) {
	if err := w.Validate(); err != nil {
		return World{}, err
	}
	return w, nil
}

// WorldFromConfig builds a validated world from the YAML section.
func WorldFromConfig(c config.FlappyWorld) (World, error) {
	return NewWorld(World{
		Width:           c.Width,
		Height:          c.Height,
		GroundHeight:    c.GroundHeight,
		Gravity:         c.Gravity,
		JumpImpulse:     c.JumpImpulse,
		MaxFallSpeed:    c.MaxFallSpeed,
		ScrollSpeed:     c.ScrollSpeed,
		GapSize:         c.GapSize,
		MinMargin:       c.MinMargin,
		ObstacleWidth:   c.ObstacleWidth,
		ObstacleSpacing: c.ObstacleSpacing,
	})
}

// Validate checks the world invariants.
func (w World) Validate() error {
	switch {
	case w.Width <= 0 || w.Height <= 0:
		return fmt.Errorf("sim: %w: dimensions %gx%g must be positive", ErrInvalidWorld, w.Width, w.Height)
	case w.GroundHeight < 0:
		return fmt.Errorf("sim: %w: ground height %g is negative", ErrInvalidWorld, w.GroundHeight)
	case w.Gravity <= 0:
		return fmt.Errorf("sim: %w: gravity %g must be positive", ErrInvalidWorld, w.Gravity)
	case w.JumpImpulse >= 0:
		return fmt.Errorf("sim: %w: jump impulse %g must point up", ErrInvalidWorld, w.JumpImpulse)
	case w.MaxFallSpeed <= 0:
		return fmt.Errorf("sim: %w: max fall speed %g must be positive", ErrInvalidWorld, w.MaxFallSpeed)
	case w.ScrollSpeed <= 0:
		return fmt.Errorf("sim: %w: scroll speed %g must be positive", ErrInvalidWorld, w.ScrollSpeed)
	case w.ObstacleWidth <= 0 || w.ObstacleSpacing <= 0 || w.GapSize <= 0:
		return fmt.Errorf("sim: %w: obstacle width, spacing and gap must be positive", ErrInvalidWorld)
	case w.ObstacleSpacing <= w.ObstacleWidth:
		return fmt.Errorf("sim: %w: obstacle spacing %g must exceed obstacle width %g",
			ErrInvalidWorld, w.ObstacleSpacing, w.ObstacleWidth)
	case w.MinMargin < 0:
		return fmt.Errorf("sim: %w: min margin %g is negative", ErrInvalidWorld, w.MinMargin)
	case w.GapSize+2*w.MinMargin > w.PlayableHeight():
		return fmt.Errorf("sim: %w: gap %g with margins %g does not fit playable height %g",
			ErrInvalidWorld, w.GapSize, w.MinMargin, w.PlayableHeight())
	}
	return nil
}

// Tune replaces the tunable constants, keeping the old values if the
// result would be invalid.
func (w *World) Tune(t Tuning) error {
	next := *w
	next.ScrollSpeed = t.ScrollSpeed
	next.GapSize = t.GapSize
	next.ObstacleSpacing = t.ObstacleSpacing
	if err := next.Validate(); err != nil {
		return fmt.Errorf("sim: rejected tuning: %w", err)
	}
	*w = next
	return nil
}

// PlayableHeight is the vertical space above the ground.
func (w World) PlayableHeight() float64 {
	return w.Height - w.GroundHeight
}

// GroundY is the y coordinate of the ground surface.
func (w World) GroundY() float64 {
	return w.Height - w.GroundHeight
}

// GapTopRange returns the bounds for an obstacle's gap top.
func (w World) GapTopRange() (lo, hi float64) {
	return w.MinMargin, w.PlayableHeight() - w.GapSize - w.MinMargin
}
