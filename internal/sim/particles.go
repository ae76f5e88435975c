package sim

import (
	"math"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// particleGravity pulls explosion debris down.
const particleGravity = 0.15

// EmitParticle appends p, dropping the oldest particles when the pool is at max.
func EmitParticle(st *State, p Particle, max int) {
	if max <= 0 {
		return
	}
	if over := len(st.Particles) + 1 - max; over > 0 {
		n := copy(st.Particles, st.Particles[over:])
		st.Particles = st.Particles[:n]
	}
	st.Particles = append(st.Particles, p)
}

// Burst emits n particles radiating from (x, y).
func Burst(st *State, rng Rand, x, y float64, n int, kind ParticleKind, color core.Color, speed float64, life, max int) {
	for i := 0; i < n; i++ {
		angle := rng.Float64() * 2 * math.Pi
		v := speed * (0.5 + rng.Float64()/2)
		l := life/2 + rng.Intn(life/2+1)
		EmitParticle(st, Particle{
			X:       x,
			Y:       y,
			VX:      math.Cos(angle) * v,
			VY:      math.Sin(angle) * v,
			Life:    l,
			MaxLife: l,
			Color:   color,
			Size:    1 + rng.Float64()*2,
			Kind:    kind,
		}, max)
	}
}

// Trail leaves a puff behind the player after a flap.
func Trail(st *State, rng Rand, color core.Color, max int) {
	p := st.Player
	for i := 0; i < 3; i++ {
		EmitParticle(st, Particle{
			X:       p.X - p.Radius,
			Y:       p.Y + between(rng, -p.Radius/2, p.Radius/2),
			VX:      -1 - rng.Float64(),
			VY:      between(rng, -0.5, 0.5),
			Life:    18,
			MaxLife: 18,
			Color:   color,
			Size:    1,
			Kind:    ParticleTrail,
		}, max)
	}
}

// UpdateParticles moves particles and removes expired ones.
func UpdateParticles(st *State, frames float64) {
	kept := st.Particles[:0]
	for _, p := range st.Particles {
		p.X += p.VX * frames
		p.Y += p.VY * frames
		if p.Kind == ParticleExplosion {
			p.VY += particleGravity * frames
		}
		p.Life--
		if p.Life > 0 {
			kept = append(kept, p)
		}
	}
	st.Particles = kept
}

// EmitWeather spawns this tick's weather particles.
func EmitWeather(st *State, rng Rand, max int) {
	w := st.World
	switch st.Weather {
	case WeatherRain:
		for i := 0; i < 2; i++ {
			emitSky(st, rng, Particle{VX: -1.5, VY: 7, Life: 80, Color: core.ColorBrightBlue, Size: 1}, max)
		}
	case WeatherSnow:
		if rng.Float64() < 0.6 {
			emitSky(st, rng, Particle{VX: between(rng, -0.6, 0.2), VY: 1.2, Life: 400, Color: core.ColorBrightWhite, Size: 1}, max)
		}
	case WeatherSandstorm:
		for i := 0; i < 2; i++ {
			EmitParticle(st, Particle{
				X: w.Width, Y: between(rng, 0, w.GroundY()),
				VX: -between(rng, 6, 10), VY: between(rng, -0.3, 0.3),
				Life: 90, MaxLife: 90, Color: core.ColorOrange, Size: 1, Kind: ParticleWeather,
			}, max)
		}
	case WeatherAsh:
		if rng.Float64() < 0.5 {
			emitSky(st, rng, Particle{VX: -0.8, VY: 1.5, Life: 320, Color: core.ColorGray, Size: 1}, max)
		}
	case WeatherFog:
		if rng.Float64() < 0.05 {
			EmitParticle(st, Particle{
				X: w.Width, Y: between(rng, w.GroundY()/3, w.GroundY()),
				VX: -0.7, Life: 600, MaxLife: 600, Color: core.ColorGray, Size: 3, Kind: ParticleWeather,
			}, max)
		}
	case WeatherAurora:
		if rng.Float64() < 0.1 {
			colors := []core.Color{core.ColorBrightGreen, core.ColorBrightCyan, core.ColorBrightMagenta}
			EmitParticle(st, Particle{
				X: between(rng, 0, w.Width), Y: between(rng, 0, w.Height/5),
				VX: -0.3, Life: 120, MaxLife: 120, Color: colors[rng.Intn(len(colors))], Size: 2, Kind: ParticleWeather,
			}, max)
		}
	}
}

// emitSky drops a weather particle from a random point above the world.
func emitSky(st *State, rng Rand, p Particle, max int) {
	p.X = between(rng, 0, st.World.Width*1.2)
	p.Y = 0
	p.MaxLife = p.Life
	p.Kind = ParticleWeather
	EmitParticle(st, p, max)
}
