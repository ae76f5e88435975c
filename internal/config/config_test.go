package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	cfg, err := ParseFlappy(defaultFlappyYAML)
	if err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultFlappyConfig()) {
		t.Errorf("embedded yaml and DefaultFlappyConfig differ:\n%+v\n%+v", cfg, DefaultFlappyConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FlappyConfig)
		field  string
	}{
		{"gap too large", func(c *FlappyConfig) { c.World.GapSize = 400 }, "playable height"},
		{"zero width", func(c *FlappyConfig) { c.World.Width = 0 }, "world.width"},
		{"negative ground", func(c *FlappyConfig) { c.World.GroundHeight = -1 }, "world.ground_height"},
		{"downward jump", func(c *FlappyConfig) { c.World.JumpImpulse = 3 }, "world.jump_impulse"},
		{"zero gravity", func(c *FlappyConfig) { c.World.Gravity = 0 }, "world.gravity"},
		{"rate above one", func(c *FlappyConfig) { c.Spawn.CoinRate = 1.5 }, "spawn.coin_rate"},
		{"zero combo window", func(c *FlappyConfig) { c.Effects.ComboWindow = 0 }, "effects.combo_window"},
		{"magnet smaller than coin", func(c *FlappyConfig) { c.Pickup.MagnetRange = 1 }, "pickup.magnet_range"},
		{"overlapping obstacles", func(c *FlappyConfig) { c.World.ObstacleSpacing = 10 }, "world.obstacle_spacing"},
		{"spacing floor below width", func(c *FlappyConfig) { c.Difficulty.Scaling.MinSpacing = 40 }, "min_spacing"},
		{"bad progression", func(c *FlappyConfig) { c.Difficulty.Progression.Type = "random" }, "progression.type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultFlappyConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, expected ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q should mention %q", err, tt.field)
			}
		})
	}
}

func TestValidateWorldInvariantBoundary(t *testing.T) {
	cfg := DefaultFlappyConfig()
	// 480 - 50 = 430 = 350 + 2*40
	cfg.World.GapSize = 350
	if err := cfg.Validate(); err != nil {
		t.Errorf("gap exactly filling the playable height should be valid: %v", err)
	}
}

func TestLoadFlappyCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flappy.yaml")
	data := []byte("world:\n  gravity: 0.5\nscoring:\n  biome_every: 5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, src, err := LoadFlappyWithSource(path)
	if err != nil {
		t.Fatalf("LoadFlappy() error = %v", err)
	}
	if src != SourceCustom {
		t.Errorf("source = %q, expected %q", src, SourceCustom)
	}
	if cfg.World.Gravity != 0.5 {
		t.Errorf("gravity = %v, expected 0.5", cfg.World.Gravity)
	}
	if cfg.Scoring.BiomeEvery != 5 {
		t.Errorf("biome_every = %d, expected 5", cfg.Scoring.BiomeEvery)
	}
	// Unset keys keep their defaults
	if cfg.World.Height != 480 {
		t.Errorf("height = %v, expected default 480", cfg.World.Height)
	}
}

func TestLoadFlappyErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFlappy(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should be an error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("world: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFlappy(bad); err == nil {
		t.Error("malformed yaml should be an error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("world:\n  gap_size: 1000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFlappy(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("impossible world should wrap ErrInvalidConfig, got %v", err)
	}
}

func TestMarshalRoundTripKeepsDefaults(t *testing.T) {
	out, err := MarshalFlappy(DefaultFlappyConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "gap_size: 110") {
		t.Errorf("marshalled yaml should use snake_case keys:\n%s", out)
	}
}

func TestApplyFlappyPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		level   float64
	}{
		{DifficultyEasy, true, 0.0},
		{DifficultyNormal, true, 0.3},
		{DifficultyHard, true, 0.7},
		{DifficultyFixed, false, 0.0},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultFlappyConfig()
			ApplyFlappyPreset(&cfg, tt.preset)
			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tt.enabled)
			}
			if cfg.Difficulty.InitialLevel != tt.level {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tt.level)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset %s produced an invalid config: %v", tt.preset, err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("unknown preset should wrap ErrInvalidConfig, got %v", err)
	}
}
