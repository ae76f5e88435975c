// Package config provides YAML-based game configuration loading and
// difficulty management for flappy arcade.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a loaded configuration cannot produce a
// playable world.
var ErrInvalidConfig = errors.New("invalid configuration")

// FlappyConfig contains all configuration for the Flappy game.
type FlappyConfig struct {
	World      FlappyWorld      `yaml:"world"`
	Player     FlappyPlayer     `yaml:"player"`
	Spawn      FlappySpawn      `yaml:"spawn"`
	Pickup     FlappyPickup     `yaml:"pickup"`
	Effects    FlappyEffects    `yaml:"effects"`
	Scoring    FlappyScoring    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FlappyWorld defines the world constants in logical units.
// Velocities and accelerations are per tick.
type FlappyWorld struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	GroundHeight    float64 `yaml:"ground_height"`
	Gravity         float64 `yaml:"gravity"`
	JumpImpulse     float64 `yaml:"jump_impulse"`
	MaxFallSpeed    float64 `yaml:"max_fall_speed"`
	ScrollSpeed     float64 `yaml:"scroll_speed"`
	GapSize         float64 `yaml:"gap_size"`
	MinMargin       float64 `yaml:"min_margin"`
	ObstacleWidth   float64 `yaml:"obstacle_width"`
	ObstacleSpacing float64 `yaml:"obstacle_spacing"`
}

// FlappyPlayer defines player parameters.
type FlappyPlayer struct {
	X              float64 `yaml:"x"`
	Radius         float64 `yaml:"radius"`
	FlapCooldownMS int     `yaml:"flap_cooldown_ms"`
	TiltUp         float64 `yaml:"tilt_up"`
	TiltMin        float64 `yaml:"tilt_min"`
	TiltMax        float64 `yaml:"tilt_max"`
	TiltFactor     float64 `yaml:"tilt_factor"`
	HoverAmplitude float64 `yaml:"hover_amplitude"` // bob height in the ready phase
}

// FlappySpawn defines pool caps and per-tick spawn probabilities.
type FlappySpawn struct {
	MaxPowerUps    int     `yaml:"max_power_ups"`
	PowerUpRate    float64 `yaml:"power_up_rate"`
	MaxCoins       int     `yaml:"max_coins"`
	CoinRate       float64 `yaml:"coin_rate"`
	RareCoinChance float64 `yaml:"rare_coin_chance"`
	RareCoinValue  int     `yaml:"rare_coin_value"`
	MaxParticles   int     `yaml:"max_particles"`
	MaxDecorations int     `yaml:"max_decorations"`
}

// FlappyPickup defines pickup distances.
type FlappyPickup struct {
	PowerUpRadius   float64 `yaml:"power_up_radius"`
	CoinRadius      float64 `yaml:"coin_radius"`
	MagnetRange     float64 `yaml:"magnet_range"`
	MegaMagnetRange float64 `yaml:"mega_magnet_range"`
}

// FlappyEffects defines effect durations in ticks.
type FlappyEffects struct {
	Shield       int `yaml:"shield"`
	SlowMotion   int `yaml:"slow_motion"`
	Magnet       int `yaml:"magnet"`
	DoublePoints int `yaml:"double_points"`
	Rainbow      int `yaml:"rainbow"`
	SuperMode    int `yaml:"super_mode"`
	MegaMode     int `yaml:"mega_mode"`
	GodMode      int `yaml:"god_mode"`
	ComboWindow  int `yaml:"combo_window"`
}

// FlappyScoring defines point values and progression thresholds.
type FlappyScoring struct {
	ObstaclePoints     int `yaml:"obstacle_points"`
	ScorePowerUpPoints int `yaml:"score_power_up_points"`
	BiomeEvery         int `yaml:"biome_every"`
	PerfectRunScore    int `yaml:"perfect_run_score"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Multiplier added to speed at max difficulty
	GapReduction     float64 `yaml:"gap_reduction"`     // Gap size reduction at max difficulty
	SpacingReduction float64 `yaml:"spacing_reduction"` // Spacing reduction at max difficulty
	MinGap           float64 `yaml:"min_gap"`
	MinSpacing       float64 `yaml:"min_spacing"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q: %w", s, ErrInvalidConfig)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate reports every constraint the configuration breaks.
// The returned error wraps ErrInvalidConfig.
func (c FlappyConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	w := c.World
	check(w.Width > 0, "world.width must be positive, got %g", w.Width)
	check(w.Height > 0, "world.height must be positive, got %g", w.Height)
	check(w.GroundHeight >= 0, "world.ground_height must not be negative, got %g", w.GroundHeight)
	check(w.Gravity > 0, "world.gravity must be positive, got %g", w.Gravity)
	check(w.JumpImpulse < 0, "world.jump_impulse must be negative (upwards), got %g", w.JumpImpulse)
	check(w.MaxFallSpeed > 0, "world.max_fall_speed must be positive, got %g", w.MaxFallSpeed)
	check(w.ScrollSpeed > 0, "world.scroll_speed must be positive, got %g", w.ScrollSpeed)
	check(w.GapSize > 0, "world.gap_size must be positive, got %g", w.GapSize)
	check(w.MinMargin >= 0, "world.min_margin must not be negative, got %g", w.MinMargin)
	check(w.ObstacleWidth > 0, "world.obstacle_width must be positive, got %g", w.ObstacleWidth)
	check(w.ObstacleSpacing > 0, "world.obstacle_spacing must be positive, got %g", w.ObstacleSpacing)
	check(w.ObstacleSpacing > w.ObstacleWidth,
		"world.obstacle_spacing (%g) must exceed obstacle_width (%g)", w.ObstacleSpacing, w.ObstacleWidth)
	check(w.GapSize+2*w.MinMargin <= w.Height-w.GroundHeight,
		"world.gap_size + 2*min_margin (%g) exceeds playable height (%g)",
		w.GapSize+2*w.MinMargin, w.Height-w.GroundHeight)

	p := c.Player
	check(p.Radius > 0, "player.radius must be positive, got %g", p.Radius)
	check(p.X >= 0 && p.X < w.Width, "player.x must lie inside the world, got %g", p.X)
	check(p.FlapCooldownMS >= 0, "player.flap_cooldown_ms must not be negative, got %d", p.FlapCooldownMS)
	check(p.TiltMin <= p.TiltMax, "player.tilt_min must not exceed tilt_max")

	s := c.Spawn
	check(s.MaxPowerUps >= 0, "spawn.max_power_ups must not be negative")
	check(s.MaxCoins >= 0, "spawn.max_coins must not be negative")
	check(s.MaxParticles >= 0, "spawn.max_particles must not be negative")
	check(s.MaxDecorations >= 0, "spawn.max_decorations must not be negative")
	check(inUnit(s.PowerUpRate), "spawn.power_up_rate must be within [0, 1], got %g", s.PowerUpRate)
	check(inUnit(s.CoinRate), "spawn.coin_rate must be within [0, 1], got %g", s.CoinRate)
	check(inUnit(s.RareCoinChance), "spawn.rare_coin_chance must be within [0, 1], got %g", s.RareCoinChance)
	check(s.RareCoinValue > 0, "spawn.rare_coin_value must be positive")

	k := c.Pickup
	check(k.PowerUpRadius > 0, "pickup.power_up_radius must be positive")
	check(k.CoinRadius > 0, "pickup.coin_radius must be positive")
	check(k.MagnetRange >= k.CoinRadius, "pickup.magnet_range must be at least coin_radius")
	check(k.MegaMagnetRange >= k.MagnetRange, "pickup.mega_magnet_range must be at least magnet_range")

	e := c.Effects
	for _, f := range []struct {
		name  string
		ticks int
	}{
		{"shield", e.Shield}, {"slow_motion", e.SlowMotion}, {"magnet", e.Magnet},
		{"double_points", e.DoublePoints}, {"rainbow", e.Rainbow}, {"super_mode", e.SuperMode},
		{"mega_mode", e.MegaMode}, {"god_mode", e.GodMode}, {"combo_window", e.ComboWindow},
	} {
		check(f.ticks > 0, "effects.%s must be positive, got %d", f.name, f.ticks)
	}

	sc := c.Scoring
	check(sc.ObstaclePoints > 0, "scoring.obstacle_points must be positive")
	check(sc.ScorePowerUpPoints >= 0, "scoring.score_power_up_points must not be negative")
	check(sc.BiomeEvery > 0, "scoring.biome_every must be positive")

	d := c.Difficulty
	check(d.InitialLevel >= 0 && d.InitialLevel <= 1, "difficulty.initial_level must be within [0, 1]")
	check(d.Scaling.MinSpacing > w.ObstacleWidth,
		"difficulty.scaling.min_spacing (%g) must exceed world.obstacle_width (%g)", d.Scaling.MinSpacing, w.ObstacleWidth)
	switch d.Progression.Type {
	case "score", "time", "none", "":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type %q is not one of score, time, none", d.Progression.Type))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: %w: %w", ErrInvalidConfig, errors.Join(errs...))
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}
