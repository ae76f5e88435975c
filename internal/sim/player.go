package sim

import (
	"math"
	"time"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// Player is the controlled entity. X is fixed; the world scrolls past it.
type Player struct {
	X, Y    float64
	VY      float64
	Radius  float64
	Tilt    float64 // degrees, positive is nose down
	Effects Effects
	Combo   Combo

	lastFlap time.Duration
	flapped  bool
}

// PlayerTuning holds the player's handling constants.
type PlayerTuning struct {
	FlapCooldown time.Duration
	TiltUp       float64
	TiltMin      float64
	TiltMax      float64
	TiltFactor   float64
}

// TuningFromConfig converts the YAML player section.
func TuningFromConfig(c config.FlappyPlayer) PlayerTuning {
	return PlayerTuning{
		FlapCooldown: time.Duration(c.FlapCooldownMS) * time.Millisecond,
		TiltUp:       c.TiltUp,
		TiltMin:      c.TiltMin,
		TiltMax:      c.TiltMax,
		TiltFactor:   c.TiltFactor,
	}
}

// NewPlayer places a player at rest.
func NewPlayer(x, y, radius float64) Player {
	return Player{
		X:       x,
		Y:       y,
		Radius:  radius,
		Effects: make(Effects),
	}
}

// Pos returns the player's center.
func (p *Player) Pos() core.Vec {
	return core.Vec{X: p.X, Y: p.Y}
}

// Integrate advances vertical motion by frames ticks under the current
// speed multiplier.
func (p *Player) Integrate(w World, t PlayerTuning, frames float64) {
	m := p.Effects.SpeedMultiplier()
	p.VY += w.Gravity * m * frames
	if p.VY > w.MaxFallSpeed {
		p.VY = w.MaxFallSpeed
	}
	p.Y += p.VY * m * frames
	p.Tilt = core.ClampF(p.VY*t.TiltFactor, t.TiltMin, t.TiltMax)
}

// Jump applies the flap impulse. Flaps arriving within the cooldown of the
// previous accepted flap are ignored.
func (p *Player) Jump(w World, t PlayerTuning, now time.Duration) bool {
	if p.flapped && now-p.lastFlap < t.FlapCooldown {
		return false
	}
	p.flapped = true
	p.lastFlap = now
	p.VY = w.JumpImpulse
	p.Tilt = t.TiltUp
	return true
}

// Hover bobs the player around baseY before the first flap.
func (p *Player) Hover(baseY, amplitude float64, elapsed time.Duration) {
	p.Y = baseY + amplitude*math.Sin(elapsed.Seconds()*4)
	p.VY = 0
	p.Tilt = 0
}

// Invulnerable reports whether fatal collisions are ignored.
func (p *Player) Invulnerable() bool {
	return p.Effects.Invulnerable()
}

// Decrement advances every countdown on the player by one tick.
func (p *Player) Decrement() {
	p.Effects.Decrement()
	p.Combo.Decrement()
}

func (p Player) clone() Player {
	p.Effects = p.Effects.Clone()
	return p
}
