// Package sim is the deterministic flappy simulation: world constants, the
// player, entity pools, collisions, the combo machine and scoring. It has no
// terminal or storage dependencies; a Session advances it one tick at a time.
package sim

import (
	"slices"
	"time"
)

// RunStats counts what happened during a single run.
type RunStats struct {
	Jumps    int
	Pipes    int
	PowerUps int
	Shields  int
	Coins    int // coins picked up, not currency earned
}

// State is the complete mutable simulation state. It is owned by a Session
// and handed by pointer to the subsystem functions.
type State struct {
	World       World
	Player      Player
	Obstacles   []Obstacle
	PowerUps    []PowerUp
	Coins       []Coin
	Particles   []Particle
	Decorations []Decoration

	Phase    Phase
	Score    int
	RunCoins int // currency earned this run
	Stats    RunStats

	Ticks    uint64        // playing ticks
	Clock    time.Duration // simulation time including ready phase
	PlayTime time.Duration
	Distance float64 // world units scrolled

	Biome        int
	Weather      WeatherKind
	WeatherTicks int

	LastCombo  ComboKind
	ComboFlash int // ticks left on the combo banner

	nextID uint64
}

func (st *State) newID() uint64 {
	st.nextID++
	return st.nextID
}

// Snapshot is a deep, read-only copy of the state for renderers.
type Snapshot struct {
	State
	Seed    int64
	Classic bool
	NewBest bool
}

// BiomeInfo returns the biome the snapshot was taken in.
func (s Snapshot) BiomeInfo() Biome {
	return Biomes[s.Biome%len(Biomes)]
}

func (st *State) clone() State {
	out := *st
	out.Player = st.Player.clone()
	out.Obstacles = slices.Clone(st.Obstacles)
	out.PowerUps = slices.Clone(st.PowerUps)
	out.Coins = slices.Clone(st.Coins)
	out.Particles = slices.Clone(st.Particles)
	out.Decorations = slices.Clone(st.Decorations)
	return out
}
