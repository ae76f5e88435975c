package sim

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// comboFlashTicks is how long the combo banner stays up.
const comboFlashTicks = 90

// Options configure a Session.
type Options struct {
	Config   config.FlappyConfig
	Seed     int64
	TickRate int  // ticks per second; dt is normalised against it
	Classic  bool // no power-ups or coins
	Tracker  Tracker
	Logger   *log.Logger
	// Rand overrides the gameplay random stream. Used by tests.
	Rand Rand
}

// Input is the per-tick intent of the player.
type Input struct {
	Flap    bool
	Pause   bool // toggles pause
	Restart bool
}

// Result is what a single tick produced.
type Result struct {
	Cues     []core.Cue
	Unlocked []string
	Combo    ComboKind
	GameOver bool // the run ended on this tick
	NewBest  bool
}

// Session owns a State and advances it. It is not safe for concurrent use.
type Session struct {
	opts       Options
	cfg        config.FlappyConfig
	base       World
	tuning     PlayerTuning
	difficulty *config.DifficultyManager
	tracker    Tracker
	logger     *log.Logger
	frameDur   time.Duration

	seed    int64
	rng     Rand
	fx      Rand
	sky     *Skyline
	st      State
	newBest bool

	events   []Event
	cues     []core.Cue
	unlocked []string
}

// NewSession validates the configuration and starts a run in the ready phase.
func NewSession(opts Options) (*Session, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	base, err := WorldFromConfig(opts.Config.World)
	if err != nil {
		return nil, err
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}

	s := &Session{
		opts:       opts,
		cfg:        opts.Config,
		base:       base,
		tuning:     TuningFromConfig(opts.Config.Player),
		difficulty: config.NewDifficultyManager(opts.Config.Difficulty),
		tracker:    opts.Tracker,
		logger:     opts.Logger,
		frameDur:   time.Second / time.Duration(opts.TickRate),
	}
	if s.tracker == nil {
		s.tracker = nopTracker{}
	}
	s.Reset(opts.Seed)
	return s, nil
}

// Reset starts a fresh run with the given seed.
func (s *Session) Reset(seed int64) {
	s.seed = seed
	s.rng, s.fx = streams(seed)
	if s.opts.Rand != nil {
		s.rng = s.opts.Rand
	}
	s.sky = NewSkyline(seed)
	s.newBest = false

	s.st = State{
		World:  s.base,
		Player: NewPlayer(s.cfg.Player.X, s.startY(), s.cfg.Player.Radius),
		Phase:  PhaseReady,
	}
	s.retune()
	RollWeather(&s.st, s.fx)
	SpawnDecorations(&s.st, s.sky, s.cfg.Spawn.MaxDecorations)
}

// Restart begins the next run. Seeds advance by one so runs stay reproducible.
func (s *Session) Restart() {
	s.Reset(s.seed + 1)
}

func (s *Session) startY() float64 {
	return s.base.PlayableHeight() / 2
}

// Seed returns the seed of the current run.
func (s *Session) Seed() int64 { return s.seed }

// Classic reports whether collectibles are disabled.
func (s *Session) Classic() bool { return s.opts.Classic }

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase { return s.st.Phase }

// Score returns the current run score.
func (s *Session) Score() int { return s.st.Score }

// NewBest reports whether the finished run beat the stored best.
func (s *Session) NewBest() bool { return s.newBest }

// FrameDuration is the dt that counts as exactly one tick.
func (s *Session) FrameDuration() time.Duration { return s.frameDur }

// State exposes the live state. Renderers should use Snapshot instead.
func (s *Session) State() *State { return &s.st }

// Snapshot returns a deep copy of the state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:   s.st.clone(),
		Seed:    s.seed,
		Classic: s.opts.Classic,
		NewBest: s.newBest,
	}
}

// Start leaves the ready phase without a flap.
func (s *Session) Start() {
	if s.st.Phase == PhaseReady {
		s.st.Phase = PhasePlaying
		s.st.Player.Y = s.startY()
		s.st.Player.VY = 0
	}
}

// Pause suspends a running game, e.g. when the display is hidden.
func (s *Session) Pause() {
	if s.st.Phase == PhasePlaying {
		s.st.Phase = PhasePaused
	}
}

// Resume continues a paused game.
func (s *Session) Resume() {
	if s.st.Phase == PhasePaused {
		s.st.Phase = PhasePlaying
	}
}

// Tick advances the simulation by dt. The steps run in a fixed order:
// time, physics, spawn, collision and pickup, scoring, effect decrement,
// persistence.
func (s *Session) Tick(dt time.Duration, in Input) Result {
	s.events = s.events[:0]
	s.cues = nil
	s.unlocked = nil
	st := &s.st

	if in.Restart && (st.Phase == PhaseGameOver || st.Phase == PhasePaused) {
		s.Restart()
		return Result{}
	}
	if in.Pause {
		switch st.Phase {
		case PhasePlaying:
			st.Phase = PhasePaused
			return Result{}
		case PhasePaused:
			st.Phase = PhasePlaying
		}
	}
	if dt <= 0 {
		return Result{}
	}

	// time
	frames := float64(dt) / float64(s.frameDur)
	st.Clock += dt

	switch st.Phase {
	case PhasePaused:
		return Result{}
	case PhaseGameOver:
		UpdateParticles(st, frames)
		return Result{}
	case PhaseReady:
		if !in.Flap {
			s.idle(frames)
			return Result{}
		}
		st.Phase = PhasePlaying
	}
	st.Ticks++
	st.PlayTime += dt

	s.physics(frames, in.Flap)
	s.spawn()
	crashed, pickups := s.collide()
	var combo ComboKind
	if !crashed {
		combo = s.score(pickups)
	}
	s.decrement()
	gameOver := s.persist(crashed)

	return Result{
		Cues:     s.cues,
		Unlocked: s.unlocked,
		Combo:    combo,
		GameOver: gameOver,
		NewBest:  gameOver && s.newBest,
	}
}

// idle animates the ready screen: the player hovers and the sky scrolls.
func (s *Session) idle(frames float64) {
	st := &s.st
	st.Player.Hover(s.startY(), s.cfg.Player.HoverAmplitude, st.Clock)
	dx := st.World.ScrollSpeed * frames
	st.Distance += dx
	AdvanceDecorations(st, dx)
	SpawnDecorations(st, s.sky, s.cfg.Spawn.MaxDecorations)
	UpdateParticles(st, frames)
}

func (s *Session) physics(frames float64, flap bool) {
	st := &s.st
	if flap && st.Player.Jump(st.World, s.tuning, st.Clock) {
		st.Stats.Jumps++
		s.event(Event{Kind: EventJump})
		s.cue(core.CueJump)
		Trail(st, s.fx, core.ColorWhite, s.cfg.Spawn.MaxParticles)
	}
	st.Player.Integrate(st.World, s.tuning, frames)

	dx := st.World.ScrollSpeed * st.Player.Effects.SpeedMultiplier() * frames
	st.Distance += dx
	AdvanceObstacles(st, dx)
	AdvancePickups(st, dx, frames)
	AdvanceDecorations(st, dx)
	UpdateParticles(st, frames)

	CullObstacles(st)
	CullPickups(st, s.cfg.Pickup.PowerUpRadius, s.cfg.Pickup.CoinRadius)
}

func (s *Session) spawn() {
	st := &s.st
	biome := Biomes[st.Biome%len(Biomes)]
	SpawnObstacle(st, s.rng, biome.Obstacles)
	if !s.opts.Classic {
		sp := s.cfg.Spawn
		SpawnPowerUp(st, s.rng, sp.MaxPowerUps, sp.PowerUpRate*biome.PowerUpBonus, s.cfg.Pickup.PowerUpRadius)
		SpawnCoin(st, s.rng, sp, s.cfg.Pickup.CoinRadius)
	}
	SpawnDecorations(st, s.sky, s.cfg.Spawn.MaxDecorations)
	EmitWeather(st, s.fx, s.cfg.Spawn.MaxParticles)
}

func (s *Session) collide() (bool, []Pickup) {
	st := &s.st
	if CheckFatal(st) {
		return true, nil
	}
	return false, CheckPickups(st, s.cfg.Pickup)
}

// score applies pickups and obstacle passes, and handles biome transitions.
func (s *Session) score(pickups []Pickup) ComboKind {
	st := &s.st
	before := st.Score
	maxP := s.cfg.Spawn.MaxParticles
	fired := ComboNone

	for _, p := range pickups {
		switch p.Kind {
		case PickupPowerUp:
			st.Stats.PowerUps++
			if p.PowerUp == PowerUpShield {
				st.Stats.Shields++
			}
			combo := applyPowerUp(st, p.PowerUp, s.cfg.Effects, s.cfg.Scoring)
			s.event(Event{Kind: EventPowerUp, PowerUp: p.PowerUp})
			s.cue(core.CuePowerUp)
			Burst(st, s.fx, p.At.X, p.At.Y, 12, ParticleSparkle, core.ColorBrightMagenta, 2, 30, maxP)
			if combo != ComboNone {
				fired = combo
				st.LastCombo = combo
				st.ComboFlash = comboFlashTicks
				s.event(Event{Kind: EventCombo, Combo: combo})
				Burst(st, s.fx, st.Player.X, st.Player.Y, 24, ParticleSparkle, core.ColorBrightYellow, 3, 40, maxP)
			}
		case PickupCoin:
			earned := AwardCoin(st, p.Value)
			st.Stats.Coins++
			s.event(Event{Kind: EventCoin, Amount: earned})
			s.cue(core.CueCoin)
			Burst(st, s.fx, p.At.X, p.At.Y, 6, ParticleSparkle, core.ColorYellow, 1.5, 20, maxP)
		}
	}

	for n := MarkPassed(st); n > 0; n-- {
		AddScore(st, s.cfg.Scoring.ObstaclePoints)
		st.Stats.Pipes++
		s.event(Event{Kind: EventObstaclePassed})
		s.cue(core.CueScore)
	}

	if st.Score != before {
		s.event(Event{Kind: EventScore, Amount: st.Score})
	}

	if b := BiomeIndex(st.Score, s.cfg.Scoring.BiomeEvery); b != st.Biome {
		st.Biome = b
		RollWeather(st, s.fx)
		Burst(st, s.fx, st.World.Width/2, st.World.PlayableHeight()/2, 40, ParticleSparkle, Biomes[b].Hills, 4, 60, maxP)
		s.retune()
	}
	return fired
}

// retune applies the difficulty curve to the tunable world constants.
func (s *Session) retune() {
	st := &s.st
	t := Tuning{
		ScrollSpeed:     s.difficulty.Speed(s.base.ScrollSpeed, st.Score, int(st.Ticks)),
		GapSize:         s.difficulty.GapSize(s.base.GapSize, st.Score, int(st.Ticks)),
		ObstacleSpacing: s.difficulty.Spacing(s.base.ObstacleSpacing, st.Score, int(st.Ticks)),
	}
	if err := st.World.Tune(t); err != nil && s.logger != nil {
		s.logger.Warn("difficulty tuning rejected", "score", st.Score, "err", err)
	}
}

func (s *Session) decrement() {
	st := &s.st
	st.Player.Decrement()
	if st.ComboFlash > 0 {
		st.ComboFlash--
	}
	TickWeather(st, s.fx)
}

// persist hands this tick's events to the tracker and finishes the run on a
// crash. It reports whether the run ended.
func (s *Session) persist(crashed bool) bool {
	st := &s.st
	if len(s.events) > 0 {
		s.unlock(s.tracker.Track(s.events))
	}
	if !crashed {
		return false
	}

	st.Phase = PhaseGameOver
	s.cue(core.CueHit)
	Burst(st, s.fx, st.Player.X, st.Player.Y, 30, ParticleExplosion, core.ColorBrightRed, 3, 50, s.cfg.Spawn.MaxParticles)

	newBest, unlocked := s.tracker.FinishRun(RunSummary{
		Seed:     s.seed,
		Score:    st.Score,
		Coins:    st.RunCoins,
		Stats:    st.Stats,
		Ticks:    st.Ticks,
		PlayTime: st.PlayTime,
		Biome:    Biomes[st.Biome%len(Biomes)].Name,
		Perfect:  st.Score >= s.cfg.Scoring.PerfectRunScore && st.Stats.PowerUps == 0,
		Classic:  s.opts.Classic,
	})
	s.newBest = newBest
	s.unlock(unlocked)
	return true
}

func (s *Session) unlock(ids []string) {
	if len(ids) == 0 {
		return
	}
	s.unlocked = append(s.unlocked, ids...)
	s.cue(core.CueAchievement)
	Burst(&s.st, s.fx, s.st.Player.X, s.st.Player.Y, 16, ParticleSparkle, core.ColorBrightCyan, 2.5, 45, s.cfg.Spawn.MaxParticles)
}

func (s *Session) event(e Event) {
	s.events = append(s.events, e)
}

func (s *Session) cue(name core.CueName) {
	s.cues = append(s.cues, core.NewCue(name))
}
