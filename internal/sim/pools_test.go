package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
)

func TestSpawnObstacleSpacing(t *testing.T) {
	st := testState()
	kinds := []ObstacleKind{ObstaclePipe}

	require.True(t, SpawnObstacle(st, fixedRand{f: 0}, kinds))
	assert.Equal(t, 400.0, st.Obstacles[0].X)
	assert.Equal(t, 40.0, st.Obstacles[0].GapTop, "lowest draw maps to min margin")

	assert.False(t, SpawnObstacle(st, fixedRand{}, kinds), "spacing not yet reached")

	st.Obstacles[0].X = 199
	require.True(t, SpawnObstacle(st, fixedRand{f: 0.5}, kinds))
	assert.Len(t, st.Obstacles, 2)
	assert.Equal(t, 160.0, st.Obstacles[1].GapTop)
	assert.NotEqual(t, st.Obstacles[0].ID, st.Obstacles[1].ID)
}

func TestSpawnObstacleKindFromBiome(t *testing.T) {
	st := testState()
	SpawnObstacle(st, fixedRand{i: 1}, []ObstacleKind{ObstacleCactus, ObstaclePillar})
	assert.Equal(t, ObstaclePillar, st.Obstacles[0].Kind)
}

func TestMarkPassedOnce(t *testing.T) {
	st := testState()
	st.Obstacles = []Obstacle{{X: 27}, {X: 28}, {X: 200}}

	assert.Equal(t, 1, MarkPassed(st))
	assert.Equal(t, 0, MarkPassed(st))

	AdvanceObstacles(st, 2)
	assert.Equal(t, 1, MarkPassed(st))
	assert.True(t, st.Obstacles[1].Passed)
	assert.False(t, st.Obstacles[2].Passed)
}

func TestCullObstacles(t *testing.T) {
	st := testState()
	st.Obstacles = []Obstacle{{ID: 1, X: -53}, {ID: 2, X: -52}, {ID: 3, X: 10}}
	CullObstacles(st)
	require.Len(t, st.Obstacles, 2)
	assert.Equal(t, uint64(2), st.Obstacles[0].ID)
}

func TestPickupPoolCaps(t *testing.T) {
	st := testState()
	sp := config.DefaultFlappyConfig().Spawn
	always := fixedRand{f: 0}

	for i := 0; i < 20; i++ {
		SpawnPowerUp(st, always, sp.MaxPowerUps, sp.PowerUpRate, 25)
		SpawnCoin(st, always, sp, 15)
		assert.LessOrEqual(t, len(st.PowerUps), sp.MaxPowerUps)
		assert.LessOrEqual(t, len(st.Coins), sp.MaxCoins)
	}
	assert.Len(t, st.PowerUps, sp.MaxPowerUps)
	assert.Len(t, st.Coins, sp.MaxCoins)
	assert.Equal(t, sp.RareCoinValue, st.Coins[0].Value, "a zero draw is below the rare coin chance")
}

func TestSpawnRespectsRate(t *testing.T) {
	st := testState()
	sp := config.DefaultFlappyConfig().Spawn
	never := fixedRand{f: 0.99}

	assert.False(t, SpawnPowerUp(st, never, sp.MaxPowerUps, sp.PowerUpRate, 25))
	assert.False(t, SpawnCoin(st, never, sp, 15))
}

func TestCullPickups(t *testing.T) {
	st := testState()
	st.PowerUps = []PowerUp{{ID: 1, X: 50, Collected: true}, {ID: 2, X: -30}, {ID: 3, X: 50}}
	st.Coins = []Coin{{ID: 4, X: -16}, {ID: 5, X: 0}}

	CullPickups(st, 25, 15)
	require.Len(t, st.PowerUps, 1)
	assert.Equal(t, uint64(3), st.PowerUps[0].ID)
	require.Len(t, st.Coins, 1)
	assert.Equal(t, uint64(5), st.Coins[0].ID)
}

func TestParticleCapDropsOldest(t *testing.T) {
	st := testState()
	for i := 1; i <= 5; i++ {
		EmitParticle(st, Particle{Life: i, Color: core.ColorRed}, 3)
	}
	require.Len(t, st.Particles, 3)
	assert.Equal(t, 3, st.Particles[0].Life)
	assert.Equal(t, 5, st.Particles[2].Life)
}

func TestUpdateParticlesExpires(t *testing.T) {
	st := testState()
	st.Particles = []Particle{
		{X: 0, VX: 2, Life: 1},
		{X: 0, VX: 2, Life: 3, Kind: ParticleExplosion},
	}
	UpdateParticles(st, 1)
	require.Len(t, st.Particles, 1)
	assert.Equal(t, 2.0, st.Particles[0].X)
	assert.Equal(t, particleGravity, st.Particles[0].VY)
}

func TestDecorationsFillAndScroll(t *testing.T) {
	st := testState()
	sky := NewSkyline(7)

	SpawnDecorations(st, sky, 24)
	require.NotEmpty(t, st.Decorations)
	assert.LessOrEqual(t, len(st.Decorations), 24)
	for _, l := range []DecorationLayer{LayerFar, LayerNear} {
		assert.Greater(t, rightEdge(st.Decorations, l), st.World.Width, "layer %d reaches the right edge", l)
	}
	for _, d := range st.Decorations {
		assert.Greater(t, d.Height, 0.0)
	}

	before := len(st.Decorations)
	AdvanceDecorations(st, 10_000)
	assert.Less(t, len(st.Decorations), before, "far off-screen decorations are culled")

	// same seed, same skyline
	a, b := testState(), testState()
	SpawnDecorations(a, NewSkyline(3), 24)
	SpawnDecorations(b, NewSkyline(3), 24)
	assert.Equal(t, a.Decorations, b.Decorations)
}

func TestBiomeIndex(t *testing.T) {
	assert.Equal(t, 0, BiomeIndex(0, 10))
	assert.Equal(t, 0, BiomeIndex(9, 10))
	assert.Equal(t, 1, BiomeIndex(10, 10))
	assert.Equal(t, 0, BiomeIndex(10*len(Biomes), 10), "biomes cycle")
	assert.Equal(t, 0, BiomeIndex(50, 0))
}

func TestRollWeatherUsesBiomeSet(t *testing.T) {
	st := testState()
	st.Biome = 5 // volcano only has ash
	RollWeather(st, NewRand(1))
	assert.Equal(t, WeatherAsh, st.Weather)
	assert.GreaterOrEqual(t, st.WeatherTicks, weatherMinTicks)
	assert.Less(t, st.WeatherTicks, weatherMinTicks+weatherSpreadTicks)
}
