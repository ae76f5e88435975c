package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
)

type traceEntry struct {
	y     float64
	score int
	phase Phase
}

// autopilot flaps when the player drops below the centre of the next gap.
func autopilot(st *State) bool {
	target := st.World.PlayableHeight() / 2
	for _, o := range st.Obstacles {
		if o.X+st.World.ObstacleWidth >= st.Player.X-st.Player.Radius {
			target = o.GapTop + st.World.GapSize/2
			break
		}
	}
	return st.Player.Y > target+8 && st.Player.VY >= 0
}

func runTrace(t *testing.T, seed int64, ticks int) []traceEntry {
	s := newTestSession(t, func(o *Options) { o.Seed = seed })
	out := make([]traceEntry, 0, ticks)
	for i := 0; i < ticks; i++ {
		flap := i == 0 || autopilot(s.State())
		s.Tick(frame, Input{Flap: flap})
		out = append(out, traceEntry{y: s.State().Player.Y, score: s.Score(), phase: s.Phase()})
	}
	return out
}

func TestDeterminismUnderFixedSeed(t *testing.T) {
	a := runTrace(t, 1234, 3000)
	b := runTrace(t, 1234, 3000)
	assert.Equal(t, a, b)
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := newTestSession(t, func(o *Options) { o.Seed = 1 })
	b := newTestSession(t, func(o *Options) { o.Seed = 2 })
	a.Tick(frame, Input{Flap: true})
	b.Tick(frame, Input{Flap: true})
	require.NotEmpty(t, a.State().Obstacles)
	require.NotEmpty(t, b.State().Obstacles)
	assert.NotEqual(t, a.State().Obstacles[0].GapTop, b.State().Obstacles[0].GapTop)
}

func TestReadyPhaseHoversUntilFlap(t *testing.T) {
	s := newTestSession(t, nil)
	tickN(s, 30, Input{})
	assert.Equal(t, PhaseReady, s.Phase())
	assert.Zero(t, s.State().Ticks)
	assert.Empty(t, s.State().Obstacles)

	res := s.Tick(frame, Input{Flap: true})
	assert.Equal(t, PhasePlaying, s.Phase())
	assert.Less(t, s.State().Player.VY, 0.0)
	require.NotEmpty(t, res.Cues)
	assert.Equal(t, core.CueJump, res.Cues[0].Name)
}

func TestInvulnerablePlayerNeverDies(t *testing.T) {
	s := newTestSession(t, nil)
	s.Start()
	st := s.State()

	for i := 0; i < 2000; i++ {
		st.Player.Effects.Set(EffectShield, 2)
		res := s.Tick(frame, Input{})
		require.False(t, res.GameOver, "tick %d", i)
		require.Equal(t, PhasePlaying, s.Phase(), "tick %d", i)
	}
}

func TestInvulnerableGroundContactLeavesPlayerAlone(t *testing.T) {
	s := newTestSession(t, nil)
	s.Start()
	st := s.State()
	p := &st.Player
	p.Effects.Set(EffectShield, 60)
	p.Y = st.World.GroundY() - p.Radius + 5
	p.VY = 4

	yBefore := p.Y
	res := s.Tick(frame, Input{})

	assert.False(t, res.GameOver)
	assert.Equal(t, PhasePlaying, s.Phase())
	assert.Greater(t, p.VY, 4.0, "gravity still applies")
	assert.Greater(t, p.Y, yBefore, "the player is not pushed back out of the ground")
}

func TestCrashEndsRunOnce(t *testing.T) {
	s := newTestSession(t, nil)
	s.Start()

	overs := 0
	var last Result
	for i := 0; i < 600; i++ {
		res := s.Tick(frame, Input{})
		if res.GameOver {
			overs++
			last = res
		}
	}
	assert.Equal(t, 1, overs)
	assert.Equal(t, PhaseGameOver, s.Phase())
	var names []core.CueName
	for _, c := range last.Cues {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, core.CueHit)
}

func TestScoreMonotonicAndPoolCaps(t *testing.T) {
	s := newTestSession(t, func(o *Options) {
		o.Config.Spawn.PowerUpRate = 0.5
		o.Config.Spawn.CoinRate = 0.5
		o.Seed = 99
	})
	st := s.State()
	prev := 0
	for i := 0; i < 5000 && s.Phase() != PhaseGameOver; i++ {
		s.Tick(frame, Input{Flap: i == 0 || autopilot(st)})
		require.GreaterOrEqual(t, st.Score, prev, "tick %d", i)
		require.LessOrEqual(t, len(st.PowerUps), s.cfg.Spawn.MaxPowerUps)
		require.LessOrEqual(t, len(st.Coins), s.cfg.Spawn.MaxCoins)
		require.LessOrEqual(t, len(st.Particles), s.cfg.Spawn.MaxParticles)
		prev = st.Score
	}
}

func TestPauseAndResume(t *testing.T) {
	s := newTestSession(t, nil)
	s.Start()
	s.Tick(frame, Input{})
	y := s.State().Player.Y

	s.Tick(frame, Input{Pause: true})
	assert.Equal(t, PhasePaused, s.Phase())
	tickN(s, 10, Input{})
	assert.Equal(t, y, s.State().Player.Y, "paused sessions do not move")

	s.Tick(frame, Input{Pause: true})
	assert.Equal(t, PhasePlaying, s.Phase())
	assert.NotEqual(t, y, s.State().Player.Y)

	s.Pause()
	assert.Equal(t, PhasePaused, s.Phase())
	s.Resume()
	assert.Equal(t, PhasePlaying, s.Phase())
}

func TestRestartAfterGameOver(t *testing.T) {
	s := newTestSession(t, nil)
	s.Start()
	tickN(s, 600, Input{})
	require.Equal(t, PhaseGameOver, s.Phase())

	s.Tick(frame, Input{Restart: true})
	assert.Equal(t, PhaseReady, s.Phase())
	assert.Zero(t, s.Score())
	assert.Equal(t, int64(43), s.Seed())
	assert.Empty(t, s.State().Obstacles)
}

func TestRestartIgnoredWhilePlaying(t *testing.T) {
	s := newTestSession(t, nil)
	s.Start()
	s.Tick(frame, Input{Restart: true})
	assert.Equal(t, PhasePlaying, s.Phase())
}

func TestClassicModeHasNoCollectibles(t *testing.T) {
	s := newTestSession(t, func(o *Options) {
		o.Classic = true
		o.Config.Spawn.PowerUpRate = 1
		o.Config.Spawn.CoinRate = 1
	})
	s.Start()
	st := s.State()
	for i := 0; i < 200; i++ {
		st.Player.Effects.Set(EffectShield, 2)
		s.Tick(frame, Input{})
	}
	assert.Empty(t, st.PowerUps)
	assert.Empty(t, st.Coins)
	assert.NotEmpty(t, st.Obstacles)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := newTestSession(t, nil)
	s.Tick(frame, Input{Flap: true})
	st := s.State()
	st.Player.Effects.Set(EffectMagnet, 50)

	snap := s.Snapshot()
	require.NotEmpty(t, snap.Obstacles)
	snap.Obstacles[0].X = -999
	snap.Player.Effects.Set(EffectMagnet, 1)
	snap.Particles = append(snap.Particles, Particle{Life: 1})

	assert.NotEqual(t, -999.0, st.Obstacles[0].X)
	assert.Equal(t, 50, st.Player.Effects.Remaining(EffectMagnet))
	assert.Equal(t, int64(42), snap.Seed)
}

func TestBiomeTransitionRetunes(t *testing.T) {
	s := newTestSession(t, func(o *Options) {
		o.Config.Spawn.PowerUpRate = 0
		o.Config.Spawn.CoinRate = 0
	})
	s.Start()
	st := s.State()
	base := st.World.ScrollSpeed

	st.Score = 9
	st.Obstacles = []Obstacle{{ID: 77, X: st.Player.X - st.World.ObstacleWidth - 1, GapTop: 100}}
	st.Player.Effects.Set(EffectShield, 10)
	s.Tick(frame, Input{})

	assert.Equal(t, 10, st.Score)
	assert.Equal(t, 1, st.Biome)
	assert.Greater(t, st.World.ScrollSpeed, base)
	assert.Less(t, st.World.GapSize, config.DefaultFlappyConfig().World.GapSize)
}

func TestSlowMotionScalesScroll(t *testing.T) {
	s := newTestSession(t, func(o *Options) {
		o.Config.Difficulty.Enabled = false
	})
	s.Start()
	st := s.State()
	st.Player.Effects.Set(EffectSlowMotion, 100)
	st.Obstacles = []Obstacle{{ID: 1, X: 300, GapTop: 100}}

	s.Tick(frame, Input{})
	assert.InDelta(t, 300-st.World.ScrollSpeed*0.5, st.Obstacles[0].X, 1e-9)
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.World.GapSize = 500
	_, err := NewSession(Options{Config: cfg})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
