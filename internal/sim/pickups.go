package sim

import "github.com/vovakirdan/flappy-arcade/internal/config"

// bobSpeed is the animation clock advance per tick for collectibles.
const bobSpeed = 0.1

// SpawnPowerUp adds a power-up at the right edge with probability rate,
// provided the pool is below max.
func SpawnPowerUp(st *State, rng Rand, max int, rate, radius float64) bool {
	if len(st.PowerUps) >= max {
		return false
	}
	if rng.Float64() >= rate {
		return false
	}
	st.PowerUps = append(st.PowerUps, PowerUp{
		ID:   st.newID(),
		X:    st.World.Width + radius,
		Y:    spawnHeight(st.World, rng, radius),
		Kind: PowerUpKind(rng.Intn(powerUpKinds)),
	})
	return true
}

// SpawnCoin adds a coin at the right edge with probability cfg.CoinRate,
// provided the pool is below cfg.MaxCoins.
func SpawnCoin(st *State, rng Rand, cfg config.FlappySpawn, radius float64) bool {
	if len(st.Coins) >= cfg.MaxCoins {
		return false
	}
	if rng.Float64() >= cfg.CoinRate {
		return false
	}
	value := 1
	if rng.Float64() < cfg.RareCoinChance {
		value = cfg.RareCoinValue
	}
	st.Coins = append(st.Coins, Coin{
		ID:    st.newID(),
		X:     st.World.Width + radius,
		Y:     spawnHeight(st.World, rng, radius),
		Value: value,
	})
	return true
}

// spawnHeight picks a y inside the margins of the playable band.
func spawnHeight(w World, rng Rand, radius float64) float64 {
	lo := w.MinMargin + radius
	hi := w.GroundY() - w.MinMargin - radius
	return between(rng, lo, hi)
}

// AdvancePickups scrolls power-ups and coins and advances their animation.
func AdvancePickups(st *State, dx, frames float64) {
	for i := range st.PowerUps {
		st.PowerUps[i].X -= dx
		st.PowerUps[i].Phase += bobSpeed * frames
	}
	for i := range st.Coins {
		st.Coins[i].X -= dx
		st.Coins[i].Phase += bobSpeed * frames
	}
}

// CullPickups drops collected and off-screen collectibles, compacting in place.
func CullPickups(st *State, powerUpRadius, coinRadius float64) {
	powerUps := st.PowerUps[:0]
	for _, p := range st.PowerUps {
		if !p.Collected && p.X >= -powerUpRadius {
			powerUps = append(powerUps, p)
		}
	}
	st.PowerUps = powerUps

	coins := st.Coins[:0]
	for _, c := range st.Coins {
		if !c.Collected && c.X >= -coinRadius {
			coins = append(coins, c)
		}
	}
	st.Coins = coins
}
