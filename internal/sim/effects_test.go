package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpeedMultiplierPriority(t *testing.T) {
	tests := []struct {
		name   string
		active []EffectKind
		want   float64
	}{
		{"none", nil, 1.0},
		{"slow", []EffectKind{EffectSlowMotion}, 0.5},
		{"rainbow", []EffectKind{EffectRainbow}, 1.5},
		{"rainbow beats slow", []EffectKind{EffectRainbow, EffectSlowMotion}, 1.5},
		{"super beats rainbow", []EffectKind{EffectSuperMode, EffectRainbow}, 2.0},
		{"god beats everything", []EffectKind{EffectGodMode, EffectSuperMode, EffectRainbow, EffectSlowMotion}, 0.8},
		{"shield has no speed effect", []EffectKind{EffectShield}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := make(Effects)
			for _, k := range tt.active {
				e.Set(k, 10)
			}
			assert.Equal(t, tt.want, e.SpeedMultiplier())
		})
	}
}

func TestInvulnerable(t *testing.T) {
	for _, k := range AllEffects {
		e := make(Effects)
		e.Set(k, 1)
		want := k == EffectShield || k == EffectRainbow || k == EffectSuperMode || k == EffectGodMode
		assert.Equal(t, want, e.Invulnerable(), "effect %s", k)
	}
	assert.False(t, Effects{}.Invulnerable())
}

func TestAuraPrecedence(t *testing.T) {
	e := make(Effects)
	assert.Equal(t, AuraNone, e.Aura())

	e.Set(EffectMegaMode, 5)
	assert.Equal(t, AuraMega, e.Aura())

	e.Set(EffectSuperMode, 5)
	assert.Equal(t, AuraSuper, e.Aura())

	e.Set(EffectGodMode, 5)
	assert.Equal(t, AuraGod, e.Aura())
}

func TestDecrementFloorsAtZero(t *testing.T) {
	e := make(Effects)
	e.Set(EffectShield, 2)
	e.Set(EffectMagnet, 1)

	e.Decrement()
	assert.Equal(t, 1, e.Remaining(EffectShield))
	assert.Equal(t, 0, e.Remaining(EffectMagnet))
	assert.False(t, e.Active(EffectMagnet))

	e.Decrement()
	e.Decrement()
	assert.Equal(t, 0, e.Remaining(EffectShield))
	assert.Empty(t, e)
}

func TestEffectsClone(t *testing.T) {
	e := make(Effects)
	e.Set(EffectShield, 10)
	c := e.Clone()
	c.Set(EffectShield, 1)
	c.Set(EffectGodMode, 5)

	assert.Equal(t, 10, e.Remaining(EffectShield))
	assert.False(t, e.Active(EffectGodMode))
}
