package sim

import "github.com/vovakirdan/flappy-arcade/internal/config"

// ComboKind names a combo produced by two power-ups in quick succession.
type ComboKind uint8

const (
	ComboNone ComboKind = iota
	ComboSuper
	ComboMega
	ComboGod
)

func (k ComboKind) String() string {
	switch k {
	case ComboSuper:
		return "SUPER"
	case ComboMega:
		return "MEGA"
	case ComboGod:
		return "GOD"
	default:
		return ""
	}
}

// comboRules lists the unordered pairs that fire a combo.
var comboRules = []struct {
	a, b  PowerUpKind
	combo ComboKind
}{
	{PowerUpShield, PowerUpSlow, ComboSuper},
	{PowerUpMagnet, PowerUpDouble, ComboMega},
	{PowerUpRainbow, PowerUpShield, ComboGod},
}

// Combo is the two-step combo machine. The zero value is idle.
type Combo struct {
	Window int // ticks left to complete a pair
	Last   PowerUpKind
	Armed  bool
}

// Register feeds a collected power-up into the machine. A matching pair
// fires and returns to idle; anything else re-arms with kind.
func (c *Combo) Register(kind PowerUpKind, window int) ComboKind {
	if c.Armed && c.Window > 0 {
		if combo := matchCombo(c.Last, kind); combo != ComboNone {
			*c = Combo{}
			return combo
		}
	}
	c.Armed = true
	c.Last = kind
	c.Window = window
	return ComboNone
}

// Decrement counts the window down; expiry returns to idle.
func (c *Combo) Decrement() {
	if c.Window <= 0 {
		return
	}
	c.Window--
	if c.Window == 0 {
		*c = Combo{}
	}
}

func matchCombo(a, b PowerUpKind) ComboKind {
	for _, r := range comboRules {
		if (r.a == a && r.b == b) || (r.a == b && r.b == a) {
			return r.combo
		}
	}
	return ComboNone
}

// applyPowerUp grants the normal effect of kind, then lets the combo machine
// override it. It returns the combo that fired, if any.
func applyPowerUp(st *State, kind PowerUpKind, eff config.FlappyEffects, scoring config.FlappyScoring) ComboKind {
	fx := st.Player.Effects
	switch kind {
	case PowerUpShield:
		fx.Set(EffectShield, eff.Shield)
	case PowerUpSlow:
		fx.Set(EffectSlowMotion, eff.SlowMotion)
	case PowerUpScore:
		AddScore(st, scoring.ScorePowerUpPoints)
	case PowerUpMagnet:
		fx.Set(EffectMagnet, eff.Magnet)
	case PowerUpDouble:
		fx.Set(EffectDoublePoints, eff.DoublePoints)
	case PowerUpRainbow:
		fx.Set(EffectRainbow, eff.Rainbow)
	}

	combo := st.Player.Combo.Register(kind, eff.ComboWindow)
	switch combo {
	case ComboSuper:
		fx.Set(EffectSuperMode, eff.SuperMode)
		fx.Set(EffectShield, eff.SuperMode)
	case ComboMega:
		fx.Set(EffectMegaMode, eff.MegaMode)
		fx.Set(EffectMagnet, eff.MegaMode)
		fx.Clear(EffectDoublePoints)
	case ComboGod:
		fx.Set(EffectGodMode, eff.GodMode)
		fx.Set(EffectRainbow, eff.GodMode)
		fx.Set(EffectShield, eff.GodMode)
	}
	return combo
}
