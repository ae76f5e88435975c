package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default Flappy configuration.
// It mirrors defaults/flappy.yaml and is used when the embedded file
// cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: FlappyWorld{
			Width:           400,
			Height:          480,
			GroundHeight:    50,
			Gravity:         0.25,
			JumpImpulse:     -5.0,
			MaxFallSpeed:    9.0,
			ScrollSpeed:     2.0,
			GapSize:         110,
			MinMargin:       40,
			ObstacleWidth:   52,
			ObstacleSpacing: 200,
		},
		Player: FlappyPlayer{
			X:              80,
			Radius:         12,
			FlapCooldownMS: 150,
			TiltUp:         -25,
			TiltMin:        -25,
			TiltMax:        90,
			TiltFactor:     6,
			HoverAmplitude: 6,
		},
		Spawn: FlappySpawn{
			MaxPowerUps:    2,
			PowerUpRate:    0.004,
			MaxCoins:       5,
			CoinRate:       0.02,
			RareCoinChance: 0.1,
			RareCoinValue:  5,
			MaxParticles:   300,
			MaxDecorations: 24,
		},
		Pickup: FlappyPickup{
			PowerUpRadius:   25,
			CoinRadius:      15,
			MagnetRange:     90,
			MegaMagnetRange: 150,
		},
		Effects: FlappyEffects{
			Shield:       300,
			SlowMotion:   300,
			Magnet:       480,
			DoublePoints: 600,
			Rainbow:      300,
			SuperMode:    300,
			MegaMode:     480,
			GodMode:      360,
			ComboWindow:  180,
		},
		Scoring: FlappyScoring{
			ObstaclePoints:     1,
			ScorePowerUpPoints: 5,
			BiomeEvery:         10,
			PerfectRunScore:    25,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 60,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  0.75,
				GapReduction:     20,
				SpacingReduction: 40,
				MinGap:           80,
				MinSpacing:       140,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "flappy", "flappy_classic":
		return defaultFlappyYAML
	default:
		return nil
	}
}
