package sim

import "github.com/vovakirdan/flappy-arcade/internal/core"

// ObstacleKind is the biome-specific look of an obstacle.
type ObstacleKind uint8

const (
	ObstaclePipe ObstacleKind = iota
	ObstacleCactus
	ObstacleIcicle
	ObstaclePillar
	ObstacleTower
	ObstacleCrystal
)

func (k ObstacleKind) String() string {
	switch k {
	case ObstaclePipe:
		return "pipe"
	case ObstacleCactus:
		return "cactus"
	case ObstacleIcicle:
		return "icicle"
	case ObstaclePillar:
		return "pillar"
	case ObstacleTower:
		return "tower"
	case ObstacleCrystal:
		return "crystal"
	default:
		return "unknown"
	}
}

// Obstacle is a vertical barrier with a passable gap.
type Obstacle struct {
	ID     uint64
	X      float64 // left edge
	GapTop float64
	Passed bool
	Kind   ObstacleKind
}

// PowerUpKind identifies a collectible power-up.
type PowerUpKind uint8

const (
	PowerUpShield PowerUpKind = iota
	PowerUpSlow
	PowerUpScore
	PowerUpMagnet
	PowerUpDouble
	PowerUpRainbow

	powerUpKinds = 6
)

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpShield:
		return "shield"
	case PowerUpSlow:
		return "slow"
	case PowerUpScore:
		return "score"
	case PowerUpMagnet:
		return "magnet"
	case PowerUpDouble:
		return "double"
	case PowerUpRainbow:
		return "rainbow"
	default:
		return "unknown"
	}
}

// PowerUp is a floating collectible that grants an effect.
type PowerUp struct {
	ID        uint64
	X, Y      float64
	Kind      PowerUpKind
	Collected bool
	Phase     float64 // animation clock
}

// Coin is a currency collectible.
type Coin struct {
	ID        uint64
	X, Y      float64
	Collected bool
	Phase     float64
	Value     int
}

// ParticleKind classifies cosmetic particles.
type ParticleKind uint8

const (
	ParticleTrail ParticleKind = iota
	ParticleSparkle
	ParticleExplosion
	ParticleWeather
)

// Particle is a short-lived cosmetic dot.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Life    int
	MaxLife int
	Color   core.Color
	Size    float64
	Kind    ParticleKind
}

// DecorationLayer selects a parallax layer.
type DecorationLayer uint8

const (
	LayerFar DecorationLayer = iota
	LayerNear
)

// Decoration is a background shape scrolled with parallax.
type Decoration struct {
	ID       uint64
	X        float64
	Width    float64
	Height   float64
	Layer    DecorationLayer
	Parallax float64
}

// Phase is the lifecycle stage of a run.
type Phase uint8

const (
	PhaseReady Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}
