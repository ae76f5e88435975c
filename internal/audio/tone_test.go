package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

func drain(s beep.Streamer) (total int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, wave := range []Wave{WaveSine, WaveSquare, WaveTriangle} {
		s := NewTone(440, 100*time.Millisecond, wave, 0.5, rate)
		total, peak := drain(s)
		assert.Equal(t, rate.N(100*time.Millisecond), total)
		assert.LessOrEqual(t, peak, 0.5)
		assert.Greater(t, peak, 0.0)
		assert.NoError(t, s.Err())
	}
}

func TestVoiceForEveryCue(t *testing.T) {
	rate := beep.SampleRate(8000)
	names := []core.CueName{
		core.CueJump, core.CueScore, core.CueHit,
		core.CuePowerUp, core.CueCoin, core.CueAchievement,
	}
	for _, name := range names {
		c := core.NewCue(name)
		total, peak := drain(voice(c, rate))
		assert.Equal(t, rate.N(c.Duration), total, name)
		assert.LessOrEqual(t, peak, 1.0, name)
	}
}
