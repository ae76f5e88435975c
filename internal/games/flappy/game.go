// Package flappy adapts the flappy simulation to the arcade platform.
// It maps platform actions to simulation input and draws snapshots into a
// screen buffer; all game rules live in the sim package.
package flappy

import (
	"fmt"
	"time"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
	"github.com/vovakirdan/flappy-arcade/internal/sim"
)

// Game IDs registered by this package.
const (
	GameID        = "flappy"
	ClassicGameID = "flappy_classic"
)

// Game implements registry.Game on top of a sim.Session.
type Game struct {
	id      string
	title   string
	classic bool
	deps    registry.Deps

	session *sim.Session
	runtime core.RuntimeConfig
	debug   bool
	lastDT  time.Duration
	last    sim.Result
}

// New creates the full game with power-ups, coins and combos.
func New(deps registry.Deps) *Game {
	return &Game{id: GameID, title: "Flappy", deps: deps}
}

// NewClassic creates the variant with obstacles only.
func NewClassic(deps registry.Deps) *Game {
	return &Game{id: ClassicGameID, title: "Flappy Classic", classic: true, deps: deps}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset starts a new session. A zero Config in the deps selects the
// built-in defaults.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	fc := g.deps.Config
	if fc == (config.FlappyConfig{}) {
		fc = config.DefaultFlappyConfig()
	}

	s, err := sim.NewSession(sim.Options{
		Config:   fc,
		Seed:     cfg.Seed,
		TickRate: cfg.TickRate,
		Classic:  g.classic,
		Tracker:  g.deps.Tracker,
		Logger:   g.deps.Logger,
	})
	if err != nil {
		return fmt.Errorf("flappy: %w", err)
	}

	g.session = s
	g.runtime = cfg
	g.lastDT = 0
	g.last = sim.Result{}
	return nil
}

// Step maps the input frame and advances the session by dt.
func (g *Game) Step(dt time.Duration, in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{}
	}
	if in.Has(core.ActionDebug) {
		g.debug = !g.debug
	}

	g.lastDT = dt
	g.last = g.session.Tick(dt, sim.Input{
		Flap:    in.Has(core.ActionJump) || in.Has(core.ActionUp),
		Pause:   in.Has(core.ActionPause),
		Restart: in.Has(core.ActionRestart),
	})

	return core.StepResult{
		State:    g.State(),
		Cues:     g.last.Cues,
		Unlocked: g.last.Unlocked,
	}
}

// Pause suspends a running game.
func (g *Game) Pause() {
	if g.session != nil {
		g.session.Pause()
	}
}

// Debug reports whether the debug overlay is shown.
func (g *Game) Debug() bool {
	return g.debug
}

// Session exposes the underlying simulation, e.g. for replays.
func (g *Game) Session() *sim.Session {
	return g.session
}

// Snapshot returns a copy of the simulation state.
func (g *Game) Snapshot() sim.Snapshot {
	if g.session == nil {
		return sim.Snapshot{}
	}
	return g.session.Snapshot()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	st := g.session.State()
	return core.GameState{
		Score:    st.Score,
		Coins:    st.RunCoins,
		GameOver: st.Phase == sim.PhaseGameOver,
		Paused:   st.Phase == sim.PhasePaused,
		NewBest:  g.session.NewBest(),
	}
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func(deps registry.Deps) registry.Game {
		return New(deps)
	})
	registry.Register(ClassicGameID, func(deps registry.Deps) registry.Game {
		return NewClassic(deps)
	})
}
