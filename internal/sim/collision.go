package sim

import (
	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// Collides reports whether the player is touching the ground, the ceiling or
// any obstacle, regardless of effects.
func Collides(st *State) bool {
	p := &st.Player
	w := st.World
	if p.Y+p.Radius > w.GroundY() || p.Y-p.Radius < 0 {
		return true
	}
	for _, o := range st.Obstacles {
		if o.X < p.X+p.Radius && o.X+w.ObstacleWidth > p.X-p.Radius {
			if p.Y-p.Radius < o.GapTop || p.Y+p.Radius > o.GapTop+w.GapSize {
				return true
			}
		}
	}
	return false
}

// CheckFatal reports a collision that ends the run. It is always false
// while the player is invulnerable.
func CheckFatal(st *State) bool {
	if st.Player.Invulnerable() {
		return false
	}
	return Collides(st)
}

// PickupKind distinguishes what was picked up.
type PickupKind uint8

const (
	PickupPowerUp PickupKind = iota
	PickupCoin
)

// Pickup is a collectible taken this tick.
type Pickup struct {
	Kind    PickupKind
	PowerUp PowerUpKind
	Value   int
	At      core.Vec
}

// CheckPickups collects every power-up and coin in range of the player.
// Collected flags are set in the same pass, so each entity yields at most one pickup.
func CheckPickups(st *State, r config.FlappyPickup) []Pickup {
	var out []Pickup
	pos := st.Player.Pos()

	for i := range st.PowerUps {
		pu := &st.PowerUps[i]
		if pu.Collected {
			continue
		}
		at := core.Vec{X: pu.X, Y: pu.Y}
		if core.Dist(pos, at) < r.PowerUpRadius {
			pu.Collected = true
			out = append(out, Pickup{Kind: PickupPowerUp, PowerUp: pu.Kind, At: at})
		}
	}

	reach := r.CoinRadius
	fx := st.Player.Effects
	switch {
	case fx.Active(EffectMegaMode):
		reach = max(reach, r.MegaMagnetRange)
	case fx.Active(EffectMagnet):
		reach = max(reach, r.MagnetRange)
	}
	for i := range st.Coins {
		c := &st.Coins[i]
		if c.Collected {
			continue
		}
		at := core.Vec{X: c.X, Y: c.Y}
		if core.Dist(pos, at) < reach {
			c.Collected = true
			out = append(out, Pickup{Kind: PickupCoin, Value: c.Value, At: at})
		}
	}
	return out
}
