package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// Wave selects the oscillator shape for a tone.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

// tone is a single decaying note.
type tone struct {
	freq     float64
	sweep    float64 // Hz per second
	wave     Wave
	volume   float64
	rate     beep.SampleRate
	pos      int
	duration int
	phase    float64
}

// NewTone returns a streamer that plays freq for d with a linear fade-out.
func NewTone(freq float64, d time.Duration, wave Wave, volume float64, rate beep.SampleRate) beep.Streamer {
	return &tone{
		freq:     freq,
		wave:     wave,
		volume:   volume,
		rate:     rate,
		duration: rate.N(d),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.duration {
			return i, i > 0
		}

		var val float64
		switch t.wave {
		case WaveSquare:
			if t.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveTriangle:
			val = 4*math.Abs(t.phase-0.5) - 1
		default:
			val = math.Sin(2 * math.Pi * t.phase)
		}

		envelope := 1 - float64(t.pos)/float64(t.duration)
		v := val * envelope * t.volume
		samples[i][0] = v
		samples[i][1] = v

		freq := t.freq + t.sweep*float64(t.pos)/float64(t.rate)
		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error {
	return nil
}

// voice maps a cue to its synthesis parameters.
func voice(c core.Cue, rate beep.SampleRate) beep.Streamer {
	t := &tone{
		freq:     c.Freq,
		wave:     WaveSine,
		volume:   0.25,
		rate:     rate,
		duration: rate.N(c.Duration),
	}
	switch c.Name {
	case core.CueJump:
		t.sweep = 1200
	case core.CueHit:
		t.wave = WaveSquare
		t.sweep = -200
		t.volume = 0.2
	case core.CuePowerUp:
		t.wave = WaveTriangle
		t.sweep = 1600
	case core.CueCoin:
		t.wave = WaveSquare
		t.volume = 0.12
	case core.CueAchievement:
		t.wave = WaveTriangle
		t.sweep = 400
	}
	return t
}
