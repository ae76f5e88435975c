package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/flappy-arcade/internal/config"
)

func testTuning() PlayerTuning {
	return TuningFromConfig(config.DefaultFlappyConfig().Player)
}

func TestIntegrate(t *testing.T) {
	st := testState()
	p := &st.Player

	p.Integrate(st.World, testTuning(), 1)
	assert.InDelta(t, 0.25, p.VY, 1e-9)
	assert.InDelta(t, 240.25, p.Y, 1e-9)
	assert.InDelta(t, 1.5, p.Tilt, 1e-9)
}

func TestIntegrateUsesSpeedMultiplier(t *testing.T) {
	st := testState()
	p := &st.Player
	p.Effects.Set(EffectSlowMotion, 10)

	p.Integrate(st.World, testTuning(), 1)
	assert.InDelta(t, 0.125, p.VY, 1e-9)
	assert.InDelta(t, 240.0625, p.Y, 1e-9)
}

func TestIntegrateScalesWithFrames(t *testing.T) {
	st := testState()
	p := &st.Player

	p.Integrate(st.World, testTuning(), 0.5)
	assert.InDelta(t, 0.125, p.VY, 1e-9)
	assert.InDelta(t, 240.0625, p.Y, 1e-9)
}

func TestIntegrateClampsFallSpeedAndTilt(t *testing.T) {
	st := testState()
	p := &st.Player
	p.VY = 8.9
	tun := testTuning()
	tun.TiltFactor = 20

	p.Integrate(st.World, tun, 1)
	assert.Equal(t, st.World.MaxFallSpeed, p.VY)
	assert.Equal(t, 90.0, p.Tilt, "tilt is clamped to tilt_max")
}

func TestJumpCooldown(t *testing.T) {
	st := testState()
	p := &st.Player
	tun := testTuning()

	assert.True(t, p.Jump(st.World, tun, 0))
	assert.Equal(t, st.World.JumpImpulse, p.VY)
	assert.Equal(t, tun.TiltUp, p.Tilt)

	p.VY = 3
	assert.False(t, p.Jump(st.World, tun, 100*time.Millisecond), "flap inside the cooldown is ignored")
	assert.Equal(t, 3.0, p.VY)

	assert.True(t, p.Jump(st.World, tun, 150*time.Millisecond))
	assert.False(t, p.Jump(st.World, tun, 299*time.Millisecond))
	assert.True(t, p.Jump(st.World, tun, 300*time.Millisecond))
}
