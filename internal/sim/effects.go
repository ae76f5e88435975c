package sim

// EffectKind tags a timed status effect on the player.
type EffectKind uint8

const (
	EffectShield EffectKind = iota
	EffectSlowMotion
	EffectMagnet
	EffectDoublePoints
	EffectRainbow
	EffectSuperMode
	EffectMegaMode
	EffectGodMode
)

// AllEffects lists every effect kind in display order.
var AllEffects = []EffectKind{
	EffectShield, EffectSlowMotion, EffectMagnet, EffectDoublePoints,
	EffectRainbow, EffectSuperMode, EffectMegaMode, EffectGodMode,
}

func (k EffectKind) String() string {
	switch k {
	case EffectShield:
		return "shield"
	case EffectSlowMotion:
		return "slow"
	case EffectMagnet:
		return "magnet"
	case EffectDoublePoints:
		return "double"
	case EffectRainbow:
		return "rainbow"
	case EffectSuperMode:
		return "super"
	case EffectMegaMode:
		return "mega"
	case EffectGodMode:
		return "god"
	default:
		return "unknown"
	}
}

// Effects maps each active effect to its remaining ticks.
// Absent keys and zero values both mean inactive.
type Effects map[EffectKind]int

// speedPriority resolves simultaneous speed effects: first active entry wins.
var speedPriority = []struct {
	kind EffectKind
	mult float64
}{
	{EffectGodMode, 0.8},
	{EffectSuperMode, 2.0},
	{EffectRainbow, 1.5},
	{EffectSlowMotion, 0.5},
}

// Aura is the visual state drawn around the player.
type Aura uint8

const (
	AuraNone Aura = iota
	AuraMega
	AuraSuper
	AuraGod
)

var auraPriority = []struct {
	kind EffectKind
	aura Aura
}{
	{EffectGodMode, AuraGod},
	{EffectSuperMode, AuraSuper},
	{EffectMegaMode, AuraMega},
}

// Active reports whether k has ticks remaining.
func (e Effects) Active(k EffectKind) bool {
	return e[k] > 0
}

// Remaining returns the ticks left on k.
func (e Effects) Remaining(k EffectKind) int {
	return e[k]
}

// Set starts or refreshes k for the given number of ticks.
func (e Effects) Set(k EffectKind, ticks int) {
	if ticks <= 0 {
		delete(e, k)
		return
	}
	e[k] = ticks
}

// Clear ends k immediately.
func (e Effects) Clear(k EffectKind) {
	delete(e, k)
}

// Decrement lowers every active counter by one tick, floored at zero.
func (e Effects) Decrement() {
	for k, v := range e {
		if v <= 1 {
			delete(e, k)
			continue
		}
		e[k] = v - 1
	}
}

// SpeedMultiplier returns the time dilation applied to physics and scroll.
func (e Effects) SpeedMultiplier() float64 {
	for _, p := range speedPriority {
		if e.Active(p.kind) {
			return p.mult
		}
	}
	return 1.0
}

// Invulnerable reports whether fatal collisions are currently ignored.
func (e Effects) Invulnerable() bool {
	return e.Active(EffectShield) || e.Active(EffectRainbow) ||
		e.Active(EffectSuperMode) || e.Active(EffectGodMode)
}

// Aura returns the highest-priority aura.
func (e Effects) Aura() Aura {
	for _, p := range auraPriority {
		if e.Active(p.kind) {
			return p.aura
		}
	}
	return AuraNone
}

// Clone returns an independent copy.
func (e Effects) Clone() Effects {
	out := make(Effects, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
